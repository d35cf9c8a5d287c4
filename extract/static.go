package extract

import (
	"context"
	"strings"

	vocab "github.com/slop-at/slop/vocabulary/slop"
)

// Rule maps a literal term to an entity type.
type Rule struct {
	Term string
	Type vocab.EntityType
}

// Static is a deterministic Extractor that matches literal terms. It backs
// the test suite and offline operation: the same text always yields the
// same entities, in rule order.
type Static struct {
	rules      []Rule
	confidence float64
	err        error
}

// NewStatic creates a static extractor from rules. Matches are reported
// with a fixed confidence of 0.99.
func NewStatic(rules ...Rule) *Static {
	return &Static{rules: rules, confidence: 0.99}
}

// NewFailing creates an extractor that always fails with an outage error.
// Used to exercise graceful degradation.
func NewFailing(err error) *Static {
	return &Static{err: NewUnavailableError(err)}
}

// Extract scans text for each rule's term and emits one entity per
// occurrence, with line numbers derived from the match offset.
func (s *Static) Extract(_ context.Context, text string) ([]Entity, error) {
	if s.err != nil {
		return nil, s.err
	}

	var entities []Entity
	for _, rule := range s.rules {
		offset := 0
		for {
			idx := strings.Index(text[offset:], rule.Term)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(rule.Term)
			entities = append(entities, Entity{
				Text:       rule.Term,
				Type:       rule.Type,
				StartLine:  LineOf(text, start),
				EndLine:    LineOf(text, end-1),
				Confidence: s.confidence,
			})
			offset = end
		}
	}
	return entities, nil
}
