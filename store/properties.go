package store

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

// propIRI expands a public property name to the predicate the graph
// stores, applying the ontology's naming drift first.
func (m *Manager) propIRI(prop string) rdf.IRI {
	return rdf.IRI(spdx.PropertyIRI(ontology.RenameToOntology(prop)))
}

// PropertyValueNames returns the de-duplicated, sorted property names
// present on the ID's resource, excluding the type assertion and with
// ontology-internal names mapped back to their public aliases.
func (m *Manager) PropertyValueNames(id string) ([]string, error) {
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, t := range m.g.ForSubject(res.node) {
		if t.Predicate == m.typePred {
			continue
		}
		local, ok := spdx.PropertyLocalName(string(t.Predicate))
		if !ok {
			continue
		}
		name := ontology.RenameFromOntology(local)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SetValue replaces every stored value for (id, prop) with the single
// supplied value. The reserved documentNamespace property sets the
// graph's default prefix instead of writing a triple.
func (m *Manager) SetValue(id, prop string, v Value) error {
	if prop == "" {
		return fmt.Errorf("property name must not be empty")
	}
	if prop == spdx.PropDocumentNamespace {
		s, ok := v.(String)
		if !ok {
			return fmt.Errorf("%w: documentNamespace takes a string", ErrUnsupportedValueType)
		}
		m.g.SetDefaultPrefix(string(s))
		return nil
	}

	m.g.Lock()
	defer m.g.Unlock()

	res, err := m.resolve(id)
	if err != nil {
		return err
	}
	obj, err := m.encodeValue(v, true)
	if err != nil {
		return err
	}
	p := m.propIRI(prop)
	for _, old := range m.g.ForSubjectPredicate(res.node, p) {
		m.g.Remove(rdf.Triple{Subject: res.node, Predicate: p, Object: old})
	}
	m.g.Add(rdf.Triple{Subject: res.node, Predicate: p, Object: obj})
	return nil
}

// GetPropertyValue returns the single decoded value for (id, prop).
// The boolean is false when no value is stored; more than one stored
// value is ErrMultipleValues. Listed license resources that exist by
// reference only fall back to the external registry's data.
func (m *Manager) GetPropertyValue(id, prop string) (Value, bool, error) {
	if prop == "" {
		return nil, false, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return nil, false, err
	}
	objs := m.g.ForSubjectPredicate(res.node, m.propIRI(prop))
	switch len(objs) {
	case 0:
		if m.listedNode(res) {
			if s, ok := m.reg.LicenseProperty(id, ontology.RenameToOntology(prop)); ok {
				return String(s), true, nil
			}
		}
		return nil, false, nil
	case 1:
		return m.decodeTerm(objs[0], prop), true, nil
	}
	return nil, false, fmt.Errorf("%w: %s on %s has %d values", ErrMultipleValues, prop, id, len(objs))
}

// RemoveProperty deletes every triple for (id, prop).
func (m *Manager) RemoveProperty(id, prop string) error {
	if prop == "" {
		return fmt.Errorf("property name must not be empty")
	}
	m.g.Lock()
	defer m.g.Unlock()

	res, err := m.resolve(id)
	if err != nil {
		return err
	}
	p := m.propIRI(prop)
	for _, old := range m.g.ForSubjectPredicate(res.node, p) {
		m.g.Remove(rdf.Triple{Subject: res.node, Predicate: p, Object: old})
	}
	return nil
}

func (m *Manager) listedNode(res resolution) bool {
	if res.fromRegistry {
		return true
	}
	iri, ok := res.node.(rdf.IRI)
	return ok && spdx.InListedLicenseNamespace(string(iri))
}

// encodeValue maps a value variant to its graph term. create controls
// whether a typed reference get-or-creates its target; membership
// checks encode without mutating. Caller holds the appropriate lock.
func (m *Manager) encodeValue(v Value, create bool) (rdf.Term, error) {
	switch v := v.(type) {
	case String:
		return rdf.StringLiteral(string(v)), nil
	case Integer:
		return rdf.IntegerLiteral(int(v)), nil
	case Boolean:
		return rdf.BooleanLiteral(bool(v)), nil
	case TypedRef:
		if v.URI == "" {
			return nil, fmt.Errorf("%w: typed reference without URI", ErrUnsupportedValueType)
		}
		if spdx.IsAnonID(v.URI) {
			node := rdf.BlankNode{Label: spdx.AnonLabel(v.URI)}
			if create {
				m.g.Add(rdf.Triple{Subject: node, Predicate: m.typePred, Object: rdf.IRI(spdx.TypeIRI(v.Category))})
			}
			return node, nil
		}
		if create {
			return m.getOrCreateURI(v.URI, v.Category), nil
		}
		return rdf.IRI(v.URI), nil
	case ExternalRef:
		if v.DocumentURI == "" || v.ID == "" {
			return nil, fmt.Errorf("%w: external reference needs document and id", ErrUnsupportedValueType)
		}
		return rdf.IRI(spdx.ElementURI(v.DocumentURI, v.ID)), nil
	case Individual:
		if v.URI == "" {
			return nil, fmt.Errorf("%w: individual without URI", ErrUnsupportedValueType)
		}
		if spdx.IsAnonID(v.URI) {
			return rdf.BlankNode{Label: spdx.AnonLabel(v.URI)}, nil
		}
		return rdf.IRI(v.URI), nil
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrUnsupportedValueType)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValueType, v)
}

// decodeTerm maps a stored object term back to a value variant.
// Caller holds at least the read lock.
func (m *Manager) decodeTerm(obj rdf.Term, prop string) Value {
	switch obj := obj.(type) {
	case rdf.Literal:
		return m.decodeLiteral(obj, prop)
	case rdf.IRI:
		return m.decodeResource(obj)
	case rdf.BlankNode:
		if cat, ok := m.subjectCategory(obj); ok {
			return TypedRef{URI: spdx.AnonID(obj.Label), Category: cat}
		}
		return Individual{URI: spdx.AnonID(obj.Label)}
	}
	return nil
}

// decodeLiteral consults the schema's declared range to distinguish
// string-encoded booleans and integers from true strings, falling
// back to the literal's own datatype tag.
func (m *Manager) decodeLiteral(lit rdf.Literal, prop string) Value {
	primitive, ok := m.schema.PropertyRange(prop)
	if !ok {
		switch lit.Datatype {
		case rdf.IRI(std.XsdBoolean):
			primitive = ontology.PrimitiveBoolean
		case rdf.IRI(std.XsdInteger), rdf.IRI(std.XsdInt), rdf.IRI(std.XsdNonNegativeInteger):
			primitive = ontology.PrimitiveInteger
		default:
			return String(lit.Value)
		}
	}
	switch primitive {
	case ontology.PrimitiveBoolean:
		b, err := strconv.ParseBool(lit.Value)
		if err == nil {
			return Boolean(b)
		}
	case ontology.PrimitiveInteger:
		n, err := strconv.Atoi(lit.Value)
		if err == nil {
			return Integer(n)
		}
	}
	return String(lit.Value)
}

// decodeResource distinguishes the four resource shapes: external
// cross-document reference, typed reference (license categories
// narrowed to listed license), inferred listed license, and bare
// individual.
func (m *Manager) decodeResource(node rdf.IRI) Value {
	uri := string(node)
	if doc, id, ok := spdx.ParseExternalElementURI(m.ns, uri); ok {
		return ExternalRef{DocumentURI: doc, ID: id}
	}
	if cat, ok := m.subjectCategory(node); ok {
		if spdx.IsLicenseCategory(cat) {
			cat = spdx.CategoryListedLicense
		}
		return TypedRef{URI: uri, Category: cat}
	}
	if spdx.InListedLicenseNamespace(uri) && !spdx.IsSentinelIRI(uri) {
		return TypedRef{URI: uri, Category: spdx.CategoryListedLicense}
	}
	return Individual{URI: uri}
}
