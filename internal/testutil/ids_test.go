package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs_Generate(t *testing.T) {
	g := NewSequentialIDs("stroke")
	assert.Equal(t, "stroke-1", g.Generate())
	assert.Equal(t, "stroke-2", g.Generate())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "id-1", NewSequentialIDs("").Generate())
}
