package statement

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/slop-at/slop/document"
	"github.com/slop-at/slop/extract"
	vocab "github.com/slop-at/slop/vocabulary/slop"
)

// provenanceNamespace is the base IRI for extraction provenance nodes.
// Provenance nodes are skolemized rather than blank: a blank node would
// mint a fresh resource on every INSERT, breaking publish idempotency.
const provenanceNamespace = "https://slop.at/provenance/"

// Derive builds the statement set for a slop from its persisted document
// and extraction result. It is a pure function of its arguments: the same
// document and entities always yield the identical ordered set, which is
// what makes retrying a graph publish safe from any process.
//
// remote and branch identify the browsable location of the document on the
// git host; they come from configuration, not from commit state, so a
// retry in a later session derives the same statements.
func Derive(doc document.Document, entities []extract.Entity, remote, branch string) *Set {
	set := &Set{}

	slopIRI := vocab.SlopIRI(doc.ID)
	docPath := document.PathFor(doc.ID)
	fileURL := vocab.SourceURL(remote, branch, docPath, 0, 0)

	// Slop metadata.
	set.Add(slopIRI, vocab.PredType, IRI(vocab.ClassFileDataObject))
	set.Add(slopIRI, vocab.PredType, IRI(vocab.ClassSlop))
	set.Add(slopIRI, vocab.PredSlopID, Literal(doc.ID))
	set.Add(slopIRI, vocab.PredFileName, Literal(path.Base(docPath)))
	set.Add(slopIRI, vocab.PredFileURL, IRI(fileURL))
	set.Add(slopIRI, vocab.PredTitle, Literal(doc.Title))
	set.Add(slopIRI, vocab.PredCreator, Literal(doc.Author))
	set.Add(slopIRI, vocab.PredCreated, TypedLiteral(doc.Created.UTC().Format(time.RFC3339), vocab.XSDDateTime))
	for _, tag := range doc.Tags {
		set.Add(slopIRI, vocab.PredSubject, Literal(tag))
	}

	// Entity and provenance statements. An empty extraction result leaves a
	// metadata-only set, which is valid.
	for _, entity := range dedupe(entities) {
		entityIRI := vocab.EntityIRI(entity.Text)

		set.Add(entityIRI, vocab.PredType, IRI(entity.Type.ClassIRI()))
		set.Add(entityIRI, vocab.PredName, Literal(entity.Text))
		set.Add(slopIRI, vocab.PredMentions, IRI(entityIRI))

		provIRI := provenanceIRI(doc.ID, entity)
		set.Add(provIRI, vocab.PredProvenanceOf, IRI(entityIRI))
		set.Add(provIRI, vocab.PredExtractedFrom, IRI(slopIRI))
		set.Add(provIRI, vocab.PredConfidence, Float(entity.Confidence))
		if entity.StartLine > 0 {
			set.Add(provIRI, vocab.PredLineStart, Integer(entity.StartLine))
			set.Add(provIRI, vocab.PredLineEnd, Integer(entity.EndLine))
			sourceURL := vocab.SourceURL(remote, branch, docPath, entity.StartLine, entity.EndLine)
			set.Add(provIRI, vocab.PredSourceURL, IRI(sourceURL))
		}
	}

	return set
}

// provenanceIRI returns the stable IRI for one extraction occurrence.
func provenanceIRI(slopID string, e extract.Entity) string {
	key := fmt.Sprintf("%s|%s|%d", strings.ToLower(strings.TrimSpace(e.Text)), e.Type, e.StartLine)
	sum := md5.Sum([]byte(key))
	return fmt.Sprintf("%s%s/%s", provenanceNamespace, slopID, hex.EncodeToString(sum[:])[:8])
}

// dedupe removes duplicate entity spans (same text, type, and start line)
// and sorts the remainder so derivation order is deterministic regardless
// of extractor output order.
func dedupe(entities []extract.Entity) []extract.Entity {
	seen := make(map[string]bool, len(entities))
	out := make([]extract.Entity, 0, len(entities))
	for _, e := range entities {
		key := fmt.Sprintf("%s|%s|%d", e.Text, e.Type, e.StartLine)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Text != out[j].Text {
			return out[i].Text < out[j].Text
		}
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].StartLine < out[j].StartLine
	})
	return out
}
