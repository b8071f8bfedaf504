package store

import (
	"fmt"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

// Value is the closed set of shapes a property can hold: scalar
// literals, a reference to a typed resource, a cross-document
// reference, or an enumerated individual.
type Value interface {
	isValue()

	// AssignableTo reports whether the value can stand where an
	// instance of the given category is expected.
	AssignableTo(cat spdx.Category, schema *ontology.Schema) bool
}

// String is a string literal value.
type String string

// Integer is an integer literal value.
type Integer int

// Boolean is a boolean literal value.
type Boolean bool

// TypedRef references a typed resource by URI.
type TypedRef struct {
	URI      string
	Category spdx.Category
}

// ExternalRef references an element in another document's namespace.
type ExternalRef struct {
	DocumentURI string
	ID          string
}

// Individual references an enumerated or sentinel resource directly
// by URI, without type bookkeeping.
type Individual struct {
	URI string
}

func (String) isValue()      {}
func (Integer) isValue()     {}
func (Boolean) isValue()     {}
func (TypedRef) isValue()    {}
func (ExternalRef) isValue() {}
func (Individual) isValue()  {}

func (String) AssignableTo(spdx.Category, *ontology.Schema) bool  { return false }
func (Integer) AssignableTo(spdx.Category, *ontology.Schema) bool { return false }
func (Boolean) AssignableTo(spdx.Category, *ontology.Schema) bool { return false }

// A typed reference is assignable when its category descends from the
// requested one.
func (v TypedRef) AssignableTo(cat spdx.Category, schema *ontology.Schema) bool {
	if v.Category == cat {
		return true
	}
	if schema == nil {
		return false
	}
	return schema.IsSubClassOf(rdf.IRI(spdx.TypeIRI(v.Category)), rdf.IRI(spdx.TypeIRI(cat)))
}

// An external reference's type lives in the other document, so only
// the base element category can be assumed.
func (ExternalRef) AssignableTo(cat spdx.Category, _ *ontology.Schema) bool {
	return cat == spdx.CategoryElement
}

func (Individual) AssignableTo(spdx.Category, *ontology.Schema) bool { return false }

func (v String) String() string  { return string(v) }
func (v Integer) String() string { return fmt.Sprintf("%d", int(v)) }
func (v Boolean) String() string { return fmt.Sprintf("%t", bool(v)) }

// TypedValue is the (URI, category, spec version) answer of
// Manager.TypedValue.
type TypedValue struct {
	URI         string
	Category    spdx.Category
	SpecVersion string
}
