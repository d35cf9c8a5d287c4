// Package statement models the graph statements derived from a published
// slop and their SPARQL/N-Triples serializations.
package statement

import (
	"fmt"
	"strconv"
	"strings"

	vocab "github.com/slop-at/slop/vocabulary/slop"
)

// ObjectKind discriminates triple object representations.
type ObjectKind int

const (
	// KindIRI is a resource reference.
	KindIRI ObjectKind = iota
	// KindLiteral is a plain string literal.
	KindLiteral
	// KindTypedLiteral is a literal with an XSD datatype.
	KindTypedLiteral
)

// Object is the object position of a triple.
type Object struct {
	Value    string
	Kind     ObjectKind
	Datatype string
}

// IRI returns an IRI object.
func IRI(value string) Object {
	return Object{Value: value, Kind: KindIRI}
}

// Literal returns a plain literal object.
func Literal(value string) Object {
	return Object{Value: value, Kind: KindLiteral}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Object {
	return Object{Value: value, Kind: KindTypedLiteral, Datatype: datatype}
}

// Integer returns an xsd:integer literal.
func Integer(v int) Object {
	return TypedLiteral(strconv.Itoa(v), vocab.XSDInteger)
}

// Float returns an xsd:float literal with a stable rendering.
func Float(v float64) Object {
	return TypedLiteral(strconv.FormatFloat(v, 'f', -1, 64), vocab.XSDFloat)
}

// Triple is one subject-predicate-object statement.
type Triple struct {
	Subject   string
	Predicate string
	Object    Object
}

// Set is an ordered collection of triples derived from one slop. Derivation
// is deterministic, so two sets built from the same inputs compare equal.
type Set struct {
	Triples []Triple
}

// Add appends a triple to the set.
func (s *Set) Add(subject, predicate string, object Object) {
	s.Triples = append(s.Triples, Triple{Subject: subject, Predicate: predicate, Object: object})
}

// Len returns the number of triples in the set.
func (s *Set) Len() int {
	return len(s.Triples)
}

// NTriples serializes the set in N-Triples form, one statement per line.
func (s *Set) NTriples() string {
	var sb strings.Builder
	for _, t := range s.Triples {
		sb.WriteString(formatTriple(t))
		sb.WriteString("\n")
	}
	return sb.String()
}

// InsertData renders the set as a SPARQL 1.1 INSERT DATA update. Inserting
// an already-present triple is a no-op by graph-store semantics, which is
// what makes re-sending the same set after a timeout safe.
func (s *Set) InsertData() string {
	var sb strings.Builder
	sb.WriteString("INSERT DATA {\n")
	for _, t := range s.Triples {
		sb.WriteString("  ")
		sb.WriteString(formatTriple(t))
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// formatTriple renders one statement without the trailing newline.
func formatTriple(t Triple) string {
	return fmt.Sprintf("<%s> <%s> %s .", t.Subject, t.Predicate, formatObject(t.Object))
}

// formatObject renders the object position per N-Triples rules.
func formatObject(o Object) string {
	switch o.Kind {
	case KindIRI:
		return fmt.Sprintf("<%s>", o.Value)
	case KindTypedLiteral:
		return fmt.Sprintf("\"%s\"^^<%s>", escapeString(o.Value), o.Datatype)
	default:
		return fmt.Sprintf("\"%s\"", escapeString(o.Value))
	}
}

// escapeString escapes special characters in literals for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
