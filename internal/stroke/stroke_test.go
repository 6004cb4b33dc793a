package stroke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strokecap/internal/controlpoint"
)

func TestFlags_Has(t *testing.T) {
	f := FlagIsGroupContinue
	assert.True(t, f.Has(FlagIsGroupContinue))
	assert.False(t, f.Has(FlagDeprecated1))
	assert.Equal(t, Flags(2), FlagIsGroupContinue)
}

func TestStroke_HeadTimestampMs(t *testing.T) {
	s := &Stroke{}
	assert.Equal(t, uint32(0), s.HeadTimestampMs())

	s.ControlPoints = []controlpoint.ControlPoint{{TimestampMs: 40}, {TimestampMs: 90}}
	assert.Equal(t, uint32(40), s.HeadTimestampMs())
}

func TestBrush_Size(t *testing.T) {
	b := Brush{SizeMin: 0.1, SizeMax: 0.5}
	assert.InDelta(t, 0.3, b.SizeFromNormalized(0.5), 1e-6)
	assert.InDelta(t, 0.5, b.Normalized(0.3), 1e-6)
	assert.Equal(t, float32(0), Brush{}.Normalized(1))
}

func TestCatalog_LookupNormalizesNames(t *testing.T) {
	// "Café" composed vs decomposed.
	composed := NewBrush("Café")
	c := NewCatalog(composed, NewBrush("Ink"))

	got, err := c.Lookup("  café ")
	require.NoError(t, err)
	assert.Equal(t, composed.ID, got.ID)

	_, err = c.Lookup("missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"Café", "Ink"}, c.Names())
}

func TestCatalog_LookupFoldsCase(t *testing.T) {
	c := NewCatalog(NewBrush("Straße"))

	got, err := c.Lookup("STRASSE")
	require.NoError(t, err)
	assert.Equal(t, "Straße", got.Name)
}

func TestNewBrush_StableID(t *testing.T) {
	assert.Equal(t, NewBrush("Ink").ID, NewBrush("ink").ID)
	assert.NotEqual(t, NewBrush("Ink").ID, NewBrush("Marker").ID)
}
