package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/engine"
	"github.com/roach88/strokecap/internal/pointer"
	"github.com/roach88/strokecap/internal/symmetry"
)

//go:embed schema.cue
var schemaSrc string

// Config is the decoded configuration.
type Config struct {
	Pointers     Pointers     `json:"pointers"`
	Symmetry     Symmetry     `json:"symmetry"`
	StraightEdge StraightEdge `json:"straight_edge"`
	Sphere       Sphere       `json:"sphere"`
	Canvas       Canvas       `json:"canvas"`
	Haptics      Haptics      `json:"haptics"`
}

type Pointers struct {
	Capacity int `json:"capacity"`
	User     int `json:"user"`
}

type Symmetry struct {
	DebugCount  int       `json:"debug_count"`
	DebugOffset []float32 `json:"debug_offset"`
}

type StraightEdge struct {
	Enabled           bool    `json:"enabled"`
	DrawInFrames      int     `json:"drawin_frames"`
	MinPointsPerFrame int     `json:"min_points_per_frame"`
	Pressure          float32 `json:"pressure"`
}

type Sphere struct {
	MinBrushSize float32 `json:"min_brush_size"`
}

type Canvas struct {
	Scale float32 `json:"scale"`
}

type Haptics struct {
	DisallowedPulseSeconds float32 `json:"disallowed_pulse_seconds"`
}

// Error codes for configuration failures.
const (
	ErrCodeRead    = "CONFIG_READ"
	ErrCodeSyntax  = "CONFIG_SYNTAX"
	ErrCodeInvalid = "CONFIG_INVALID"
)

// Error is a configuration failure, positioned in the source document when
// CUE reports a position.
type Error struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the configuration an empty document produces.
func Default() Config {
	cfg, err := Parse("default.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Code: ErrCodeRead, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse validates src against the schema and decodes it. filename is used
// in error positions only.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, positioned(ErrCodeSyntax, err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return Config{}, positioned(ErrCodeSyntax, err)
	}

	v := def.Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, positioned(ErrCodeInvalid, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, positioned(ErrCodeInvalid, err)
	}
	return cfg, nil
}

// positioned converts the first CUE error into an *Error with its position.
func positioned(code string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &Error{Code: code, Message: err.Error()}
	}
	first := errs[0]
	e := &Error{Code: code, Message: first.Error()}
	if pos := errors.Positions(first); len(pos) > 0 {
		e.Pos = pos[0]
	}
	return e
}

// EngineSettings returns the engine tunables.
func (c Config) EngineSettings() engine.Settings {
	return engine.Settings{
		DrawInFrames:           c.StraightEdge.DrawInFrames,
		MinPointsPerFrame:      c.StraightEdge.MinPointsPerFrame,
		StraightEdgePressure:   c.StraightEdge.Pressure,
		CanvasScale:            c.Canvas.Scale,
		SphereMinBrushSize:     c.Sphere.MinBrushSize,
		DisallowedPulseSeconds: c.Haptics.DisallowedPulseSeconds,
	}
}

// DebugOffset returns the debug replica offset as a vector.
func (c Config) DebugOffset() mgl32.Vec3 {
	var v mgl32.Vec3
	copy(v[:], c.Symmetry.DebugOffset)
	return v
}

// NewPool builds a pointer pool sized and laid out by c.
func (c Config) NewPool(opts ...pointer.PoolOption) (*pointer.Pool, error) {
	sym := symmetry.New(symmetry.WithDebugLayout(c.Symmetry.DebugCount, c.DebugOffset()))
	opts = append([]pointer.PoolOption{pointer.WithSymmetry(sym)}, opts...)
	return pointer.NewPool(c.Pointers.Capacity, c.Pointers.User, opts...)
}
