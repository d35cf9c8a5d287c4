package document_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slop-at/slop/document"
)

var created = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestRenderDeterministic(t *testing.T) {
	doc := document.New("a1b2c3d4", "Test", "you", created, []string{"ai", "history"}, "Ada Lovelace worked with Babbage.\n")

	first, err := doc.Render()
	require.NoError(t, err)
	second, err := doc.Render()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		content string
	}{
		{"simple", []string{"ai"}, "Ada Lovelace worked with Babbage.\n"},
		{"no tags", nil, "plain note\n"},
		{"empty content", []string{"x"}, ""},
		{"multiline", []string{"a", "b"}, "line one\nline two\n\nline four\n"},
		{"content with delimiter-ish lines", nil, "before\n----\nafter\n"},
		{"no trailing newline", nil, "no newline at end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New("a1b2c3d4", "Title: with punctuation", "you", created, tt.tags, tt.content)

			text, err := doc.Render()
			require.NoError(t, err)

			parsed, err := document.Parse(text)
			require.NoError(t, err)
			assert.Equal(t, doc, parsed)
		})
	}
}

func TestNewNormalizesTags(t *testing.T) {
	doc := document.New("a1b2c3d4", "T", "you", created, []string{"b", "a", "b", " a ", ""}, "c")
	assert.Equal(t, []string{"a", "b"}, doc.Tags)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no front matter", "just content\n"},
		{"unterminated", "---\nslop_id: a1b2c3d4\n"},
		{"missing id", "---\ntitle: T\nauthor: you\ncreated: 2026-03-14T09:26:53Z\n---\nbody"},
		{"bad timestamp", "---\nslop_id: a1b2c3d4\ntitle: T\nauthor: you\ncreated: yesterday\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := document.Parse(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "slops/a1b2c3d4.md", document.PathFor("a1b2c3d4"))
}
