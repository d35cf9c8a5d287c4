package statement_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slop-at/slop/document"
	"github.com/slop-at/slop/extract"
	"github.com/slop-at/slop/statement"
	vocab "github.com/slop-at/slop/vocabulary/slop"
)

var created = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testDoc() document.Document {
	return document.New("a1b2c3d4", "Test", "you", created, []string{"ai"},
		"Ada Lovelace worked with Babbage.\n")
}

func testEntities() []extract.Entity {
	return []extract.Entity{
		{Text: "Ada Lovelace", Type: vocab.EntityPerson, StartLine: 1, EndLine: 1, Confidence: 0.97},
		{Text: "Babbage", Type: vocab.EntityPerson, StartLine: 1, EndLine: 1, Confidence: 0.91},
	}
}

func TestDeriveDeterministic(t *testing.T) {
	first := statement.Derive(testDoc(), testEntities(), "you/slops", "main")
	second := statement.Derive(testDoc(), testEntities(), "you/slops", "main")
	assert.Equal(t, first, second)
	assert.Equal(t, first.NTriples(), second.NTriples())
}

func TestDeriveOrderIndependent(t *testing.T) {
	entities := testEntities()
	reversed := []extract.Entity{entities[1], entities[0]}

	a := statement.Derive(testDoc(), entities, "you/slops", "main")
	b := statement.Derive(testDoc(), reversed, "you/slops", "main")
	assert.Equal(t, a.NTriples(), b.NTriples())
}

func TestDeriveSlopMetadata(t *testing.T) {
	set := statement.Derive(testDoc(), nil, "you/slops", "main")
	out := set.NTriples()

	slopIRI := "<https://slop.at/slop/a1b2c3d4>"
	assert.Contains(t, out, slopIRI+" <"+vocab.PredType+"> <"+vocab.ClassSlop+"> .")
	assert.Contains(t, out, slopIRI+" <"+vocab.PredType+"> <"+vocab.ClassFileDataObject+"> .")
	assert.Contains(t, out, slopIRI+" <"+vocab.PredSlopID+`> "a1b2c3d4" .`)
	assert.Contains(t, out, slopIRI+" <"+vocab.PredFileName+`> "a1b2c3d4.md" .`)
	assert.Contains(t, out, slopIRI+" <"+vocab.PredTitle+`> "Test" .`)
	assert.Contains(t, out, slopIRI+" <"+vocab.PredCreator+`> "you" .`)
	assert.Contains(t, out, slopIRI+" <"+vocab.PredSubject+`> "ai" .`)
	assert.Contains(t, out, `"2026-03-14T09:26:53Z"^^<`+vocab.XSDDateTime+">")
	assert.Contains(t, out, "<https://github.com/you/slops/blob/main/slops/a1b2c3d4.md>")
}

func TestDeriveEmptyExtractionIsValid(t *testing.T) {
	set := statement.Derive(testDoc(), nil, "you/slops", "main")
	require.NotZero(t, set.Len())
	assert.NotContains(t, set.NTriples(), vocab.PredMentions)
}

func TestDeriveEntities(t *testing.T) {
	set := statement.Derive(testDoc(), testEntities(), "you/slops", "main")
	out := set.NTriples()

	adaIRI := vocab.EntityIRI("Ada Lovelace")
	assert.Contains(t, out, "<"+adaIRI+"> <"+vocab.PredType+"> <"+vocab.EntityPerson.ClassIRI()+"> .")
	assert.Contains(t, out, "<"+adaIRI+`> <`+vocab.PredName+`> "Ada Lovelace" .`)
	assert.Contains(t, out, "<https://slop.at/slop/a1b2c3d4> <"+vocab.PredMentions+"> <"+adaIRI+"> .")

	// Provenance: confidence, line anchors, and source URL.
	assert.Contains(t, out, `"0.97"^^<`+vocab.XSDFloat+">")
	assert.Contains(t, out, `"1"^^<`+vocab.XSDInteger+">")
	assert.Contains(t, out, "#L1>")
	assert.Contains(t, out, vocab.PredExtractedFrom)
	// Provenance nodes are skolemized, never blank.
	assert.NotContains(t, out, "_:")
}

func TestDeriveDeduplicatesSpans(t *testing.T) {
	entities := append(testEntities(), testEntities()...)
	set := statement.Derive(testDoc(), entities, "you/slops", "main")

	out := set.NTriples()
	mentions := strings.Count(out, vocab.PredMentions)
	assert.Equal(t, 2, mentions, "duplicate spans should be deduplicated")
}

func TestDeriveRepeatedMentionSharesNode(t *testing.T) {
	// Same surface form on different lines: one entity node, two provenance
	// records.
	entities := []extract.Entity{
		{Text: "Babbage", Type: vocab.EntityPerson, StartLine: 1, EndLine: 1, Confidence: 0.9},
		{Text: "Babbage", Type: vocab.EntityPerson, StartLine: 3, EndLine: 3, Confidence: 0.8},
	}
	set := statement.Derive(testDoc(), entities, "you/slops", "main")
	out := set.NTriples()

	nameCount := strings.Count(out, `"Babbage" .`)
	assert.Equal(t, 2, nameCount, "schema:name emitted once per occurrence")
	provCount := strings.Count(out, vocab.PredExtractedFrom)
	assert.Equal(t, 2, provCount)
}
