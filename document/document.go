// Package document renders slops into their on-disk form: a YAML
// front-matter block followed by the raw content. Build and Parse are
// inverses, so a persisted document can always be recovered byte-exactly
// into the metadata and content it was built from.
package document

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// delimiter separates the front-matter block from the body.
const delimiter = "---"

// Document is a fully identified slop ready for persistence.
type Document struct {
	ID      string
	Title   string
	Author  string
	Created time.Time
	Tags    []string
	Content string
}

// frontMatter is the YAML metadata block. Created is serialized as RFC3339
// in UTC so rendering is independent of the local zone.
type frontMatter struct {
	ID      string   `yaml:"slop_id"`
	Title   string   `yaml:"title"`
	Author  string   `yaml:"author"`
	Created string   `yaml:"created"`
	Tags    []string `yaml:"tags,omitempty"`
}

// New builds a Document from a publish submission. Tags are deduplicated
// and sorted so the rendered form is deterministic; the creation time is
// truncated to whole seconds to survive the RFC3339 round-trip.
func New(id, title, author string, created time.Time, tags []string, content string) Document {
	return Document{
		ID:      id,
		Title:   title,
		Author:  author,
		Created: created.UTC().Truncate(time.Second),
		Tags:    normalizeTags(tags),
		Content: content,
	}
}

// normalizeTags deduplicates, trims, and sorts a tag set.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Render serializes the document to its on-disk form. Rendering is a pure
// function of the document fields: the same document always renders to
// byte-identical text.
func (d Document) Render() (string, error) {
	fm := frontMatter{
		ID:      d.ID,
		Title:   d.Title,
		Author:  d.Author,
		Created: d.Created.UTC().Format(time.RFC3339),
		Tags:    d.Tags,
	}

	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(delimiter)
	sb.WriteString("\n")
	sb.Write(meta)
	sb.WriteString(delimiter)
	sb.WriteString("\n")
	sb.WriteString(d.Content)
	return sb.String(), nil
}

// Parse recovers a Document from its on-disk form. It is the inverse of
// Render: metadata and content come back identical to what was supplied.
func Parse(text string) (Document, error) {
	rest, found := strings.CutPrefix(text, delimiter+"\n")
	if !found {
		return Document{}, fmt.Errorf("missing front matter delimiter")
	}

	metaText, content, found := strings.Cut(rest, "\n"+delimiter+"\n")
	if !found {
		return Document{}, fmt.Errorf("unterminated front matter block")
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(metaText+"\n"), &fm); err != nil {
		return Document{}, fmt.Errorf("parse front matter: %w", err)
	}
	if fm.ID == "" {
		return Document{}, fmt.Errorf("front matter missing slop_id")
	}

	created, err := time.Parse(time.RFC3339, fm.Created)
	if err != nil {
		return Document{}, fmt.Errorf("parse created timestamp: %w", err)
	}

	return Document{
		ID:      fm.ID,
		Title:   fm.Title,
		Author:  fm.Author,
		Created: created.UTC(),
		Tags:    fm.Tags,
		Content: content,
	}, nil
}

// PathFor derives the repository-relative path for a slop identifier.
// The path is a pure function of the identity, so repeated writes with the
// same identity overwrite rather than duplicate.
func PathFor(id string) string {
	return path.Join("slops", id+".md")
}
