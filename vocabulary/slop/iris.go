// Package slop defines the ontology terms used when publishing knowledge
// notes to the graph store: the know.dev entity classes, the slop.at
// provenance predicates, and the standard vocabularies they build on.
package slop

// Namespace base IRIs.
const (
	// KnowNamespace is the know.dev ontology used for entity classes.
	KnowNamespace = "https://know.dev/"

	// SchemaNamespace is schema.org, used for entity names.
	SchemaNamespace = "https://schema.org/"

	// NFONamespace is the NEPOMUK file ontology, used to type slop documents.
	NFONamespace = "http://www.semanticdesktop.org/ontologies/2007/03/22/nfo#"

	// SlopNamespace is the slop.at ontology for slop-specific terms.
	SlopNamespace = "https://slop.at/ontology#"

	// DCTermsNamespace is Dublin Core terms, used for document metadata.
	DCTermsNamespace = "http://purl.org/dc/terms/"

	// RDFNamespace is the core RDF vocabulary.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// XSDNamespace is XML Schema datatypes, used for typed literals.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// EntityInstanceNamespace is the base IRI for extracted entity instances.
const EntityInstanceNamespace = "https://slop.at/entity/"

// SlopInstanceNamespace is the base IRI for published slops.
const SlopInstanceNamespace = "https://slop.at/slop/"

// Class IRIs.
const (
	// ClassSlop types a published knowledge note.
	ClassSlop = SlopNamespace + "Slop"

	// ClassFileDataObject types the persisted document file.
	ClassFileDataObject = NFONamespace + "FileDataObject"
)

// RDF core predicates.
const (
	PredType = RDFNamespace + "type"
)

// Dublin Core predicates for slop metadata.
const (
	PredTitle   = DCTermsNamespace + "title"
	PredCreator = DCTermsNamespace + "creator"
	PredCreated = DCTermsNamespace + "created"
	PredSubject = DCTermsNamespace + "subject"
)

// NFO predicates for the persisted file.
const (
	PredFileName = NFONamespace + "fileName"
	PredFileURL  = NFONamespace + "fileUrl"
)

// Slop ontology predicates.
const (
	// PredSlopID carries the stable 8-character slop identifier.
	PredSlopID = SlopNamespace + "slopId"

	// PredMentions links a slop to an entity extracted from its text.
	PredMentions = SlopNamespace + "mentions"

	// PredName is the surface form of an extracted entity.
	PredName = SchemaNamespace + "name"

	// Provenance predicates link an extraction back to its source.
	PredExtractedFrom = SlopNamespace + "extractedFrom"
	PredConfidence    = SlopNamespace + "confidence"
	PredLineStart     = SlopNamespace + "lineStart"
	PredLineEnd       = SlopNamespace + "lineEnd"
	PredSourceURL     = SlopNamespace + "sourceUrl"
	PredProvenanceOf  = SlopNamespace + "provenanceOf"
)

// XSD datatype IRIs for typed literals.
const (
	XSDFloat    = XSDNamespace + "float"
	XSDInteger  = XSDNamespace + "integer"
	XSDDateTime = XSDNamespace + "dateTime"
)
