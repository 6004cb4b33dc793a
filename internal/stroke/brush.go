package stroke

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Brush describes a brush as the capture pipeline sees it. Geometry
// generation itself lives behind pointer.Builder.
type Brush struct {
	ID   uuid.UUID
	Name string

	// SizeMin and SizeMax bound the absolute brush size in room space.
	SizeMin float32
	SizeMax float32

	// NeedsStraightEdgeProxy is set for brushes that cannot preview a
	// straight-edge stroke live; a proxy brush is drawn instead and the
	// real brush replays the result.
	NeedsStraightEdgeProxy bool

	// MaxControlPoints is the per-stroke geometry budget. Zero is unlimited.
	MaxControlPoints int

	// SpawnDistance is the minimum travel before a new control point is kept.
	SpawnDistance float32
}

// SizeFromNormalized maps f in [0,1] onto the brush's size range.
func (b Brush) SizeFromNormalized(f float32) float32 {
	return b.SizeMin + (b.SizeMax-b.SizeMin)*f
}

// Normalized maps an absolute size back into [0,1].
func (b Brush) Normalized(size float32) float32 {
	if b.SizeMax <= b.SizeMin {
		return 0
	}
	return (size - b.SizeMin) / (b.SizeMax - b.SizeMin)
}

// NewBrush returns a brush with a name-derived stable ID.
func NewBrush(name string) Brush {
	return Brush{
		ID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(normalizeName(name))),
		Name:    name,
		SizeMin: 0.01,
		SizeMax: 1,
	}
}

// DefaultCatalog returns the stock brushes. Smoke is drawn through a
// straight-edge proxy.
func DefaultCatalog() *Catalog {
	smoke := NewBrush("Smoke")
	smoke.NeedsStraightEdgeProxy = true
	return NewCatalog(NewBrush("Ink"), NewBrush("Marker"), smoke)
}

// Catalog resolves brushes by name. Names are compared after NFC
// normalization and case folding.
type Catalog struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]Brush
	byName map[string]uuid.UUID
}

// NewCatalog returns a catalog containing brushes.
func NewCatalog(brushes ...Brush) *Catalog {
	c := &Catalog{
		byID:   make(map[uuid.UUID]Brush),
		byName: make(map[string]uuid.UUID),
	}
	for _, b := range brushes {
		c.Add(b)
	}
	return c
}

// Add registers b, replacing any brush with the same ID.
func (c *Catalog) Add(b Brush) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[b.ID] = b
	c.byName[normalizeName(b.Name)] = b.ID
}

// Lookup returns the brush with the given name.
func (c *Catalog) Lookup(name string) (Brush, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byName[normalizeName(name)]
	if !ok {
		return Brush{}, fmt.Errorf("unknown brush %q", name)
	}
	return c.byID[id], nil
}

// Names returns all brush names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.byID))
	for _, b := range c.byID {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return norm.NFC.String(cases.Fold().String(norm.NFC.String(strings.TrimSpace(name))))
}
