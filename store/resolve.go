package store

import (
	"fmt"
	"sort"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

// resolution is the outcome of mapping a logical ID to a graph node.
type resolution struct {
	node rdf.Term
	cat  spdx.Category

	// fromRegistry marks a type synthesized from an external registry
	// answer rather than read from a graph assertion. Never written
	// back to the graph.
	fromRegistry bool
}

// resolve maps a logical ID to its graph resource. Caller holds at
// least the read side of the graph section.
//
// Order: anonymous pattern, document-local URI, listed license URI in
// both schemes, external registries. Named nodes must carry a type
// assertion resolvable to a known category unless a registry claims
// the ID.
func (m *Manager) resolve(id string) (resolution, error) {
	if id == "" {
		return resolution{}, fmt.Errorf("%w: empty id", ErrInvalidID)
	}

	if spdx.IsAnonID(id) {
		node := rdf.BlankNode{Label: spdx.AnonLabel(id)}
		cat, _ := m.subjectCategory(node)
		m.countResolved("anonymous")
		return resolution{node: node, cat: cat}, nil
	}

	local := rdf.IRI(spdx.ElementURI(m.ns, id))
	if m.g.HasSubject(local) {
		cat, ok := m.subjectCategory(local)
		if !ok {
			m.countResolveError("untyped")
			return resolution{}, fmt.Errorf("%w: %s has no recognized type assertion", ErrInvalidID, id)
		}
		m.countResolved("document")
		return resolution{node: local, cat: cat}, nil
	}

	for _, uri := range []string{spdx.ListedLicenseURI(id), spdx.ListedLicenseURIAlt(id)} {
		node := rdf.IRI(uri)
		if !m.g.HasSubject(node) {
			continue
		}
		if cat, ok := m.subjectCategory(node); ok {
			m.countResolved("listed")
			return resolution{node: node, cat: cat}, nil
		}
	}

	switch {
	case m.reg.IsListedLicenseID(id):
		m.countResolved("registry")
		return resolution{
			node:         rdf.IRI(spdx.ListedLicenseURI(id)),
			cat:          spdx.CategoryListedLicense,
			fromRegistry: true,
		}, nil
	case m.reg.IsListedExceptionID(id):
		m.countResolved("registry")
		return resolution{
			node:         rdf.IRI(spdx.ListedLicenseURI(id)),
			cat:          spdx.CategoryLicenseException,
			fromRegistry: true,
		}, nil
	case m.reg.IsReferenceType(id):
		m.countResolved("registry")
		return resolution{
			node:         rdf.IRI(spdx.ReferenceTypeNamespace + id),
			cat:          spdx.CategoryReferenceType,
			fromRegistry: true,
		}, nil
	}

	// Listed license IDs arrive in arbitrary casing; resolve them to
	// the registry's canonical spelling before giving up.
	if canonical, ok := m.reg.CanonicalLicenseID(id); ok {
		m.countResolved("registry")
		return resolution{
			node:         rdf.IRI(spdx.ListedLicenseURI(canonical)),
			cat:          spdx.CategoryListedLicense,
			fromRegistry: true,
		}, nil
	}

	m.countResolveError("unresolved")
	return resolution{}, fmt.Errorf("%w: %s", ErrInvalidID, id)
}

// subjectCategory reads a subject's type assertion and resolves it to
// a known category. Caller holds the graph lock.
func (m *Manager) subjectCategory(s rdf.Term) (spdx.Category, bool) {
	obj, n := m.g.FirstObject(s, m.typePred)
	if n == 0 {
		return "", false
	}
	iri, ok := obj.(rdf.IRI)
	if !ok {
		return "", false
	}
	return spdx.CategoryFromIRI(string(iri))
}

// Exists reports whether the ID resolves to a node carrying a type
// statement. Never returns an error for a missing ID.
func (m *Manager) Exists(id string) bool {
	if id == "" {
		return false
	}
	m.g.RLock()
	defer m.g.RUnlock()

	if spdx.IsAnonID(id) {
		node := rdf.BlankNode{Label: spdx.AnonLabel(id)}
		_, n := m.g.FirstObject(node, m.typePred)
		return n > 0
	}
	for _, uri := range []string{
		spdx.ElementURI(m.ns, id),
		spdx.ListedLicenseURI(id),
		spdx.ListedLicenseURIAlt(id),
	} {
		node := rdf.IRI(uri)
		if !m.g.HasSubject(node) {
			continue
		}
		_, n := m.g.FirstObject(node, m.typePred)
		return n > 0
	}
	if m.reg.IsListedLicenseID(id) || m.reg.IsListedExceptionID(id) || m.reg.IsReferenceType(id) {
		return true
	}
	_, ok := m.reg.CanonicalLicenseID(id)
	return ok
}

// Create idempotently ensures a typed resource exists for the ID and
// returns its node. The namespace follows the type: listed license
// and exception categories live under the listed license namespace
// whether or not the registry knows the ID, anonymous IDs stay
// anonymous, everything else is document-local.
func (m *Manager) Create(id string, cat spdx.Category) (rdf.Term, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if !spdx.Known(cat) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidID, cat)
	}

	var node rdf.Term
	switch {
	case spdx.IsAnonID(id):
		node = rdf.BlankNode{Label: spdx.AnonLabel(id)}
	case cat == spdx.CategoryListedLicense || cat == spdx.CategoryLicenseException:
		node = rdf.IRI(spdx.ListedLicenseURI(id))
	default:
		node = rdf.IRI(spdx.ElementURI(m.ns, id))
	}

	m.g.Lock()
	m.g.Add(rdf.Triple{Subject: node, Predicate: m.typePred, Object: rdf.IRI(spdx.TypeIRI(cat))})
	m.g.Unlock()
	return node, nil
}

// getOrCreateURI ensures a typed resource exists for an explicit URI.
// Caller holds the write section.
func (m *Manager) getOrCreateURI(uri string, cat spdx.Category) rdf.IRI {
	node := rdf.IRI(uri)
	m.g.Add(rdf.Triple{Subject: node, Predicate: m.typePred, Object: rdf.IRI(spdx.TypeIRI(cat))})
	return node
}

// Delete removes every triple whose subject is the ID's resource.
// Triples referencing the resource as an object stay; dangling
// references are the caller's concern.
func (m *Manager) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	var node rdf.Term
	if spdx.IsAnonID(id) {
		node = rdf.BlankNode{Label: spdx.AnonLabel(id)}
	} else {
		node = rdf.IRI(spdx.ElementURI(m.ns, id))
	}
	m.g.Lock()
	m.g.RemoveSubject(node)
	m.g.Unlock()
	return nil
}

// TypedValue returns the (URI, category, spec version) of a resolvable
// typed ID. The second return is false for unknown or untyped IDs;
// no error is ever raised for an absent ID.
func (m *Manager) TypedValue(id string) (TypedValue, bool) {
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil || res.cat == "" {
		return TypedValue{}, false
	}
	uri := ""
	if iri, ok := res.node.(rdf.IRI); ok {
		uri = string(iri)
	}
	return TypedValue{URI: uri, Category: res.cat, SpecVersion: m.specVersion}, true
}

// AllItems enumerates every typed resource in the document namespace,
// optionally filtered to one category. Results are ordered by URI.
func (m *Manager) AllItems(typeFilter spdx.Category) []TypedValue {
	m.g.RLock()
	defer m.g.RUnlock()

	var out []TypedValue
	for _, s := range m.g.Subjects() {
		if _, ok := m.localID(s); !ok {
			continue
		}
		cat, ok := m.subjectCategory(s)
		if !ok {
			continue
		}
		if typeFilter != "" && cat != typeFilter {
			continue
		}
		out = append(out, TypedValue{
			URI:         string(s.(rdf.IRI)),
			Category:    cat,
			SpecVersion: m.specVersion,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

func (m *Manager) countResolved(ns string) {
	if m.metrics != nil {
		m.metrics.RecordIDResolved(ns)
	}
}

func (m *Manager) countResolveError(reason string) {
	if m.metrics != nil {
		m.metrics.RecordResolveError(reason)
	}
}
