// Package extract defines the entity extraction capability and its
// implementations. The coordinator depends only on the Extractor interface,
// so the inference backend is pluggable and tests run against a
// deterministic implementation.
package extract

import (
	"context"
	"strings"

	vocab "github.com/slop-at/slop/vocabulary/slop"
)

// Entity is a typed mention extracted from slop text. Entities belong to
// exactly one slop; no cross-slop identity is established at this layer.
type Entity struct {
	// Text is the surface form as it appears in the content.
	Text string `json:"text" yaml:"text"`
	// Type is the know.dev entity class.
	Type vocab.EntityType `json:"type" yaml:"type"`
	// StartLine and EndLine are 1-indexed line references into the content.
	StartLine int `json:"start_line" yaml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line"`
	// Confidence is the extractor's score in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Extractor derives typed entities from free text. Implementations must not
// mutate or persist anything; extraction is treated as a pure function of
// the input text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}

// None is an Extractor that extracts nothing. Used when no extraction
// endpoint is configured: the slop is still published, with an empty
// entity set.
type None struct{}

// Extract returns no entities.
func (None) Extract(context.Context, string) ([]Entity, error) {
	return nil, nil
}

// LineOf converts a character offset into a 1-indexed line number.
func LineOf(text string, pos int) int {
	if pos < 0 {
		return 1
	}
	if pos >= len(text) {
		return strings.Count(text, "\n") + 1
	}
	return strings.Count(text[:pos], "\n") + 1
}
