package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "mirror_line.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mirror_line", s.Name)
	assert.Equal(t, "single_plane", s.Symmetry)
	assert.True(t, s.StraightEdge)
	require.Len(t, s.Frames, 3)
	assert.Equal(t, []float32{1, 0, 0}, s.Frames[0].Position)
	assert.True(t, s.Frames[0].Draw)
	assert.Nil(t, s.Frames[2].Position)
	assert.Len(t, s.Assertions, 5)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "misspelled key"
frames:
  - draw: true
assertion:
  - type: stroke_count
`))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nframes: [{draw: true}]\nassertions: [{type: stroke_count}]",
			want: "name is required",
		},
		{
			name: "missing frames",
			yaml: "name: n\ndescription: d\nassertions: [{type: stroke_count}]",
			want: "frames list is required",
		},
		{
			name: "missing assertions",
			yaml: "name: n\ndescription: d\nframes: [{draw: true}]",
			want: "assertions list is required",
		},
		{
			name: "bad symmetry",
			yaml: "name: n\ndescription: d\nsymmetry: sixfold\nframes: [{draw: true}]\nassertions: [{type: stroke_count}]",
			want: "unknown symmetry mode",
		},
		{
			name: "short position",
			yaml: "name: n\ndescription: d\nframes: [{position: [1, 2]}]\nassertions: [{type: stroke_count}]",
			want: "position needs 3 components",
		},
		{
			name: "bad gesture",
			yaml: "name: n\ndescription: d\nframes: [{gesture: wave}]\nassertions: [{type: stroke_count}]",
			want: "unknown gesture",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\nframes: [{draw: true}]\nassertions: [{type: stroke_colour}]",
			want: "unknown assertion type",
		},
		{
			name: "final_state without state",
			yaml: "name: n\ndescription: d\nframes: [{draw: true}]\nassertions: [{type: final_state}]",
			want: "state is required",
		},
		{
			name: "endpoints with negative index",
			yaml: "name: n\ndescription: d\nframes: [{draw: true}]\nassertions: [{type: stroke_endpoints, index: -1, first: [0, 0, 0], last: [1, 0, 0]}]",
			want: "index must be non-negative",
		},
		{
			name: "endpoints without last",
			yaml: "name: n\ndescription: d\nframes: [{draw: true}]\nassertions: [{type: stroke_endpoints, first: [0, 0, 0]}]",
			want: "first and last need 3 components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScenarioFiles_AllParse(t *testing.T) {
	entries, err := os.ReadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		_, err := LoadScenario(filepath.Join("testdata", "scenarios", e.Name()))
		assert.NoError(t, err, e.Name())
	}
}
