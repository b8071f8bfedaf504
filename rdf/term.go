// Package rdf provides the mutable triple graph substrate the store maps
// logical IDs onto: terms, an indexed in-memory graph with a single
// reader/writer critical section, change listeners, and blank node
// allocation.
package rdf

import (
	"fmt"
	"strconv"

	"github.com/c360studio/spdxstore/vocabulary/std"
)

// Term is a graph node: a named node (IRI), an anonymous node
// (BlankNode), or a scalar Literal.
type Term interface {
	// Key returns the index key for the term. Keys are unique across
	// term kinds.
	Key() string

	// String returns the N-Triples form of the term.
	String() string
}

// IRI is a named node identified by a URI.
type IRI string

// Key implements Term.
func (i IRI) Key() string { return "<" + string(i) }

// String returns the N-Triples form.
func (i IRI) String() string { return "<" + string(i) + ">" }

// BlankNode is an anonymous node with graph-local identity only.
type BlankNode struct {
	// Label is the graph-local identity of the node.
	Label string
}

// Key implements Term.
func (b BlankNode) Key() string { return "_:" + b.Label }

// String returns the N-Triples form.
func (b BlankNode) String() string { return "_:" + b.Label }

// Literal is a typed scalar object value.
type Literal struct {
	// Value is the lexical form.
	Value string

	// Datatype is the XSD datatype IRI. Empty means xsd:string.
	Datatype IRI
}

// Key implements Term.
func (l Literal) Key() string { return "\"" + l.Value + "\"^^" + string(l.Datatype) }

// String returns the N-Triples form.
func (l Literal) String() string {
	if l.Datatype == "" || l.Datatype == IRI(std.XsdString) {
		return strconv.Quote(l.Value)
	}
	return strconv.Quote(l.Value) + "^^<" + string(l.Datatype) + ">"
}

// StringLiteral builds an xsd:string literal.
func StringLiteral(v string) Literal {
	return Literal{Value: v, Datatype: IRI(std.XsdString)}
}

// IntegerLiteral builds an xsd:integer literal.
func IntegerLiteral(v int) Literal {
	return Literal{Value: strconv.Itoa(v), Datatype: IRI(std.XsdInteger)}
}

// BooleanLiteral builds an xsd:boolean literal.
func BooleanLiteral(v bool) Literal {
	return Literal{Value: strconv.FormatBool(v), Datatype: IRI(std.XsdBoolean)}
}

// Triple is a (subject, predicate, object) fact. Subjects are IRIs or
// blank nodes; predicates are always IRIs.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// String returns the N-Triples form of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s <%s> %s .", t.Subject.String(), string(t.Predicate), t.Object.String())
}
