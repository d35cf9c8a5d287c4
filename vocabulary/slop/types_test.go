package slop_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slop-at/slop/vocabulary/slop"
)

func TestEntityTypeValid(t *testing.T) {
	for _, et := range slop.EntityTypes() {
		assert.True(t, et.Valid(), "ontology type %s should be valid", et)
	}
	assert.False(t, slop.EntityType("Robot").Valid())
	assert.False(t, slop.EntityType("").Valid())
}

func TestEntityIRIStable(t *testing.T) {
	a := slop.EntityIRI("Ada Lovelace")
	b := slop.EntityIRI("  ada lovelace ")
	assert.Equal(t, a, b, "normalization should make the IRI case/space insensitive")
	assert.True(t, strings.HasPrefix(a, slop.EntityInstanceNamespace))
	assert.Contains(t, a, "ada-lovelace")
}

func TestEntityIRISlugBounded(t *testing.T) {
	long := strings.Repeat("very long entity name ", 10)
	iri := slop.EntityIRI(long)
	// hash segment + slug segment
	parts := strings.Split(strings.TrimPrefix(iri, slop.EntityInstanceNamespace), "/")
	assert.Len(t, parts, 2)
	assert.Len(t, parts[0], 8)
	assert.LessOrEqual(t, len(parts[1]), 50)
}

func TestSourceURL(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"no lines", 0, 0, "https://github.com/you/slops/blob/abc123/slops/a1b2c3d4.md"},
		{"single line", 3, 3, "https://github.com/you/slops/blob/abc123/slops/a1b2c3d4.md#L3"},
		{"range", 3, 7, "https://github.com/you/slops/blob/abc123/slops/a1b2c3d4.md#L3-L7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slop.SourceURL("you/slops", "abc123", "slops/a1b2c3d4.md", tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}
