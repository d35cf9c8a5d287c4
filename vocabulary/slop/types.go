package slop

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// EntityType is an entity class drawn from the know.dev ontology.
type EntityType string

// The closed set of entity types the extractor may produce. Anything outside
// this set is rejected at the extraction boundary.
const (
	EntityPerson       EntityType = "Person"
	EntityOrganization EntityType = "Organization"
	EntityPlace        EntityType = "Place"
	EntityEvent        EntityType = "Event"
	EntityMeeting      EntityType = "Meeting"
	EntityActivity     EntityType = "Activity"
	EntityConference   EntityType = "Conference"
	EntityDefinedTerm  EntityType = "DefinedTerm"
	EntityTopic        EntityType = "Topic"
	EntityFamily       EntityType = "Family"
	EntityCommunity    EntityType = "Community"
	EntityCompany      EntityType = "Company"
)

// EntityTypes lists every valid entity type in ontology order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityPerson,
		EntityOrganization,
		EntityPlace,
		EntityEvent,
		EntityMeeting,
		EntityActivity,
		EntityConference,
		EntityDefinedTerm,
		EntityTopic,
		EntityFamily,
		EntityCommunity,
		EntityCompany,
	}
}

// Valid reports whether t is a member of the ontology.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ClassIRI returns the know.dev class IRI for the entity type.
func (t EntityType) ClassIRI() string {
	return KnowNamespace + string(t)
}

// maxSlugLen bounds entity slugs so IRIs stay readable.
const maxSlugLen = 50

// EntityIRI returns the stable instance IRI for an entity surface form.
// The IRI is a pure function of the normalized text, so the same mention in
// any slop (or any retry) resolves to the same node.
func EntityIRI(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := md5.Sum([]byte(normalized))
	hash := hex.EncodeToString(sum[:])[:8]

	slug := strings.ReplaceAll(normalized, " ", "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return EntityInstanceNamespace + hash + "/" + slug
}

// SlopIRI returns the instance IRI for a slop identifier.
func SlopIRI(id string) string {
	return SlopInstanceNamespace + id
}

// SourceURL returns the browsable URL for a document path at a commit,
// with a line anchor when line numbers are known.
// remote is an "owner/repo" identifier on the configured git host.
func SourceURL(remote, ref, path string, lineStart, lineEnd int) string {
	url := fmt.Sprintf("https://github.com/%s/blob/%s/%s", remote, ref, path)
	switch {
	case lineStart <= 0:
		return url
	case lineEnd <= lineStart:
		return fmt.Sprintf("%s#L%d", url, lineStart)
	default:
		return fmt.Sprintf("%s#L%d-L%d", url, lineStart, lineEnd)
	}
}
