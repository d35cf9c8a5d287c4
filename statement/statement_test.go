package statement_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slop-at/slop/statement"
	vocab "github.com/slop-at/slop/vocabulary/slop"
)

func TestNTriplesFormatting(t *testing.T) {
	set := &statement.Set{}
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredTitle, statement.Literal("Test"))
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredType, statement.IRI(vocab.ClassSlop))
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredConfidence, statement.Float(0.97))
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredLineStart, statement.Integer(3))

	out := set.NTriples()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " ."), "line should end with ' .': %s", line)
	}

	assert.Contains(t, out, `"Test" .`)
	assert.Contains(t, out, "<"+vocab.ClassSlop+"> .")
	assert.Contains(t, out, `"0.97"^^<`+vocab.XSDFloat+">")
	assert.Contains(t, out, `"3"^^<`+vocab.XSDInteger+">")
}

func TestLiteralEscaping(t *testing.T) {
	set := &statement.Set{}
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredTitle,
		statement.Literal("line\nbreak \"quoted\" back\\slash\ttab"))

	out := set.NTriples()
	assert.Contains(t, out, `"line\nbreak \"quoted\" back\\slash\ttab"`)
	// The serialized form must stay on one line.
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)
}

func TestInsertData(t *testing.T) {
	set := &statement.Set{}
	set.Add("https://slop.at/slop/a1b2c3d4", vocab.PredSlopID, statement.Literal("a1b2c3d4"))

	out := set.InsertData()
	assert.True(t, strings.HasPrefix(out, "INSERT DATA {\n"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `<https://slop.at/slop/a1b2c3d4> <`+vocab.PredSlopID+`> "a1b2c3d4" .`)
}
