// Package ontology answers type and cardinality questions from the
// embedded SPDX OWL schema. The schema graph is loaded once and never
// mutated, so all lookups run under read locks.
package ontology

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/rdf/codec"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

//go:embed spdx-ontology.ttl
var ontologyFS embed.FS

var (
	// ErrUnknownClass is returned when a class name has no ontology
	// definition and no generic fallback applies.
	ErrUnknownClass = errors.New("class not defined in ontology")

	// ErrUnknownProperty is returned when a property name has no
	// ontology definition.
	ErrUnknownProperty = errors.New("property not defined in ontology")

	// ErrSchemaGap is returned when the ontology declares no
	// cardinality restriction for a class/property pair, so no
	// schema-backed decision is possible.
	ErrSchemaGap = errors.New("no cardinality restriction in ontology")
)

// PrimitiveType classifies datatype property ranges.
type PrimitiveType string

const (
	PrimitiveString  PrimitiveType = "string"
	PrimitiveInteger PrimitiveType = "integer"
	PrimitiveBoolean PrimitiveType = "boolean"
)

// Property name drift between the public model vocabulary and the
// ontology resource. Lookups rename forward before querying; results
// surfaced to callers rename back.
var renameToOntology = map[string]string{
	"licenseInfoFromFiles":       "licenseInfoFromFile",
	"licenseInfoInFiles":         "licenseInfoInFile",
	"hasExtractedLicensingInfos": "hasExtractedLicensingInfo",
}

var renameFromOntology = func() map[string]string {
	m := make(map[string]string, len(renameToOntology))
	for pub, onto := range renameToOntology {
		m[onto] = pub
	}
	return m
}()

// RenameToOntology maps a public property name to the name the
// ontology uses for it. Names without drift pass through unchanged.
func RenameToOntology(property string) string {
	if onto, ok := renameToOntology[property]; ok {
		return onto
	}
	return property
}

// RenameFromOntology is the inverse of RenameToOntology.
func RenameFromOntology(property string) string {
	if pub, ok := renameFromOntology[property]; ok {
		return pub
	}
	return property
}

// Schema wraps the parsed ontology graph.
type Schema struct {
	g      *rdf.Graph
	logger *slog.Logger
}

// Load parses the embedded ontology. A nil logger falls back to
// slog.Default.
func Load(logger *slog.Logger) (*Schema, error) {
	data, err := ontologyFS.ReadFile("spdx-ontology.ttl")
	if err != nil {
		return nil, fmt.Errorf("reading embedded ontology: %w", err)
	}
	return LoadFrom(strings.NewReader(string(data)), logger)
}

// LoadFrom parses an ontology document from r, for deployments that
// override the embedded schema.
func LoadFrom(r io.Reader, logger *slog.Logger) (*Schema, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := rdf.NewGraph()
	if err := codec.DecodeTurtle(r, g); err != nil {
		return nil, fmt.Errorf("parsing ontology: %w", err)
	}
	return &Schema{g: g, logger: logger}, nil
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the process-wide schema, loading it on first use.
func Default() (*Schema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Load(nil)
	})
	return defaultSchema, defaultErr
}

// HasClass reports whether the ontology defines the named class.
func (s *Schema) HasClass(name string) bool {
	s.g.RLock()
	defer s.g.RUnlock()
	return s.isClass(rdf.IRI(spdx.TermsNamespace + name))
}

// HasProperty reports whether the ontology defines the named property,
// after drift renaming.
func (s *Schema) HasProperty(property string) bool {
	s.g.RLock()
	defer s.g.RUnlock()
	return s.g.HasSubject(rdf.IRI(spdx.PropertyIRI(RenameToOntology(property))))
}

// IsObjectProperty reports whether the named property is declared as
// an owl:ObjectProperty.
func (s *Schema) IsObjectProperty(property string) bool {
	s.g.RLock()
	defer s.g.RUnlock()
	p := rdf.IRI(spdx.PropertyIRI(RenameToOntology(property)))
	return s.g.Has(rdf.Triple{Subject: p, Predicate: std.RdfType, Object: rdf.IRI(std.OwlObjectProperty)})
}

// PropertyRange returns the primitive type of a datatype property's
// declared range. The second return is false when the property is
// unknown, has no range, or the range maps to no primitive; those
// cases are logged and the caller falls back to value inspection.
func (s *Schema) PropertyRange(property string) (PrimitiveType, bool) {
	s.g.RLock()
	defer s.g.RUnlock()

	p := rdf.IRI(spdx.PropertyIRI(RenameToOntology(property)))
	obj, n := s.g.FirstObject(p, std.RdfsRange)
	if n == 0 {
		s.logger.Warn("property has no declared range", slog.String("property", property))
		return "", false
	}
	iri, ok := obj.(rdf.IRI)
	if !ok {
		return "", false
	}
	switch iri {
	case std.XsdString, std.XsdAnyURI:
		return PrimitiveString, true
	case std.XsdBoolean:
		return PrimitiveBoolean, true
	case std.XsdInteger, std.XsdInt, std.XsdNonNegativeInteger:
		return PrimitiveInteger, true
	}
	if strings.HasPrefix(string(iri), "http://www.w3.org/2001/XMLSchema#") {
		s.logger.Warn("property range has no primitive mapping",
			slog.String("property", property),
			slog.String("range", string(iri)))
	}
	return "", false
}

// ClassRestrictions returns the class IRIs a value of the given
// property must belong to when attached to an instance of the given
// class. An undefined property is ErrUnknownProperty; a defined
// property with no class-valued restriction yields an empty result
// without error.
func (s *Schema) ClassRestrictions(class, property string) ([]rdf.IRI, error) {
	s.g.RLock()
	defer s.g.RUnlock()

	classIRI, err := s.resolveClass(class)
	if err != nil {
		return nil, err
	}
	prop := rdf.IRI(spdx.PropertyIRI(RenameToOntology(property)))
	if !s.g.HasSubject(prop) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, property)
	}

	seen := map[rdf.IRI]bool{}
	var out []rdf.IRI
	s.walk(classIRI, prop, map[string]bool{}, func(node rdf.Term) {
		for _, pred := range []rdf.IRI{std.OwlOnClass, std.OwlAllValuesFrom, std.OwlSomeValuesFrom} {
			for _, obj := range s.g.ForSubjectPredicate(node, pred) {
				iri, ok := obj.(rdf.IRI)
				if !ok || isXsdIRI(iri) {
					continue
				}
				if !seen[iri] {
					seen[iri] = true
					out = append(out, iri)
				}
			}
		}
	})
	return out, nil
}

// DataRestrictions returns the xsd datatype IRIs a literal value of
// the given property must carry when attached to an instance of the
// given class.
func (s *Schema) DataRestrictions(class, property string) ([]rdf.IRI, error) {
	s.g.RLock()
	defer s.g.RUnlock()

	classIRI, err := s.resolveClass(class)
	if err != nil {
		return nil, err
	}
	prop := rdf.IRI(spdx.PropertyIRI(RenameToOntology(property)))
	if !s.g.HasSubject(prop) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, property)
	}

	seen := map[rdf.IRI]bool{}
	var out []rdf.IRI
	s.walk(classIRI, prop, map[string]bool{}, func(node rdf.Term) {
		for _, pred := range []rdf.IRI{std.OwlOnDataRange, std.OwlAllValuesFrom, std.OwlSomeValuesFrom} {
			for _, obj := range s.g.ForSubjectPredicate(node, pred) {
				iri, ok := obj.(rdf.IRI)
				if !ok || !isXsdIRI(iri) {
					continue
				}
				if !seen[iri] {
					seen[iri] = true
					out = append(out, iri)
				}
			}
		}
	})
	return out, nil
}

// IsList reports whether the property holds multiple values on
// instances of the class. When several restrictions apply the loosest
// bound wins; an exact cardinality overrides maximum bounds. An
// undefined property is ErrUnknownProperty; a defined property with
// no cardinality restriction yields ErrSchemaGap.
func (s *Schema) IsList(class, property string) (bool, error) {
	s.g.RLock()
	defer s.g.RUnlock()

	classIRI, err := s.resolveClass(class)
	if err != nil {
		return false, err
	}
	prop := rdf.IRI(spdx.PropertyIRI(RenameToOntology(property)))
	if !s.g.HasSubject(prop) {
		return false, fmt.Errorf("%w: %s", ErrUnknownProperty, property)
	}

	var (
		exacts []int
		maxes  []int
		found  bool
	)
	s.walk(classIRI, prop, map[string]bool{}, func(node rdf.Term) {
		if v, ok := s.cardinalityValue(node, std.OwlCardinality, std.OwlQualifiedCardinality); ok {
			exacts = append(exacts, v)
			found = true
		}
		if v, ok := s.cardinalityValue(node, std.OwlMaxCardinality, std.OwlMaxQualifiedCardinality); ok {
			maxes = append(maxes, v)
			found = true
		}
		if _, ok := s.cardinalityValue(node, std.OwlMinCardinality, std.OwlMinQualifiedCardinality); ok {
			found = true
		}
	})
	if !found {
		return false, fmt.Errorf("%w: class %s property %s", ErrSchemaGap, class, property)
	}
	if len(exacts) > 0 {
		return loosest(exacts) != 1, nil
	}
	if len(maxes) > 0 {
		return loosest(maxes) != 1, nil
	}
	// Minimum-only restrictions leave the upper bound open.
	return true, nil
}

// IsSubClassOf reports whether sub is super or a transitive
// rdfs:subClassOf descendant of it.
func (s *Schema) IsSubClassOf(sub, super rdf.IRI) bool {
	s.g.RLock()
	defer s.g.RUnlock()
	return s.isSubClassOf(sub, super, map[string]bool{})
}

func (s *Schema) isSubClassOf(sub, super rdf.IRI, visited map[string]bool) bool {
	if sub == super {
		return true
	}
	if visited[string(sub)] {
		return false
	}
	visited[string(sub)] = true
	for _, obj := range s.g.ForSubjectPredicate(sub, std.RdfsSubClassOf) {
		parent, ok := obj.(rdf.IRI)
		if !ok {
			continue
		}
		if s.isSubClassOf(parent, super, visited) {
			return true
		}
	}
	return false
}

// walk visits every restriction node that constrains prop and is
// reachable from class via rdfs:subClassOf edges or owl:unionOf
// operands. Cycles terminate through the visited set.
func (s *Schema) walk(term rdf.Term, prop rdf.IRI, visited map[string]bool, visit func(node rdf.Term)) {
	key := term.Key()
	if visited[key] {
		return
	}
	visited[key] = true

	if list, n := s.g.FirstObject(term, std.OwlUnionOf); n > 0 {
		for _, operand := range s.listMembers(list) {
			s.walk(operand, prop, visited, visit)
		}
		return
	}

	for _, o := range s.g.ForSubjectPredicate(term, std.RdfsSubClassOf) {
		if s.isRestriction(o) {
			if on, n := s.g.FirstObject(o, std.OwlOnProperty); n > 0 && on.Key() == prop.Key() {
				visit(o)
			}
			continue
		}
		s.walk(o, prop, visited, visit)
	}
}

func (s *Schema) isRestriction(term rdf.Term) bool {
	obj, n := s.g.FirstObject(term, std.RdfType)
	if n == 0 {
		return false
	}
	iri, ok := obj.(rdf.IRI)
	return ok && string(iri) == std.OwlRestriction
}

func (s *Schema) isClass(iri rdf.IRI) bool {
	return s.g.Has(rdf.Triple{Subject: iri, Predicate: std.RdfType, Object: rdf.IRI(std.OwlClass)})
}

// resolveClass maps a class name to its ontology IRI. Unknown names
// that look like generic element placeholders fall back to the base
// element classes; anything else is ErrUnknownClass.
func (s *Schema) resolveClass(name string) (rdf.IRI, error) {
	iri := rdf.IRI(spdx.TermsNamespace + name)
	if s.isClass(iri) {
		return iri, nil
	}
	switch {
	case strings.Contains(name, "Item"):
		s.logger.Debug("generic item class, using SpdxItem restrictions", slog.String("class", name))
		return rdf.IRI(spdx.TypeIRI(spdx.CategoryItem)), nil
	case strings.Contains(name, "Element"):
		s.logger.Debug("generic element class, using SpdxElement restrictions", slog.String("class", name))
		return rdf.IRI(spdx.TypeIRI(spdx.CategoryElement)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownClass, name)
}

// listMembers walks an rdf:first/rdf:rest chain.
func (s *Schema) listMembers(head rdf.Term) []rdf.Term {
	var out []rdf.Term
	seen := map[string]bool{}
	cell := head
	for {
		key := cell.Key()
		if iri, ok := cell.(rdf.IRI); ok && string(iri) == std.RdfNil {
			return out
		}
		if seen[key] {
			return out
		}
		seen[key] = true
		first, n := s.g.FirstObject(cell, std.RdfFirst)
		if n > 0 {
			out = append(out, first)
		}
		rest, n := s.g.FirstObject(cell, std.RdfRest)
		if n == 0 {
			return out
		}
		cell = rest
	}
}

func (s *Schema) cardinalityValue(node rdf.Term, preds ...rdf.IRI) (int, bool) {
	for _, pred := range preds {
		obj, n := s.g.FirstObject(node, pred)
		if n == 0 {
			continue
		}
		lit, ok := obj.(rdf.Literal)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(lit.Value)
		if err != nil {
			s.logger.Warn("non-integer cardinality in ontology",
				slog.String("value", lit.Value))
			continue
		}
		return v, true
	}
	return 0, false
}

func isXsdIRI(iri rdf.IRI) bool {
	return strings.HasPrefix(string(iri), "http://www.w3.org/2001/XMLSchema#")
}

func loosest(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
