package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

// IsCollectionProperty reports whether the ontology declares (resource
// type, prop) multi-valued. When the ontology has no restriction for
// the pair the decision falls back to the observed value count, which
// conflates declared and observed cardinality; the fallback is logged.
func (m *Manager) IsCollectionProperty(id, prop string) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	isList, err := m.schema.IsList(string(res.cat), prop)
	if err == nil {
		return isList, nil
	}
	if !errors.Is(err, ontology.ErrSchemaGap) {
		return false, err
	}

	n := len(m.g.ForSubjectPredicate(res.node, m.propIRI(prop)))
	m.warnSchemaGap("isCollectionProperty", res.cat, prop)
	return n > 1, nil
}

// IsCollectionMembersAssignableTo reports whether every member of the
// (id, prop) collection can stand where an instance of cat is
// expected. The declared ontology restriction decides when present;
// otherwise the stored values themselves are inspected. Empty
// collections are vacuously assignable.
func (m *Manager) IsCollectionMembersAssignableTo(id, prop string, cat spdx.Category) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	return m.assignableTo(res, prop, cat, "isCollectionMembersAssignableTo")
}

// IsPropertyValueAssignableTo is the single-value form of
// IsCollectionMembersAssignableTo. An absent value is vacuously
// assignable.
func (m *Manager) IsPropertyValueAssignableTo(id, prop string, cat spdx.Category) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	return m.assignableTo(res, prop, cat, "isPropertyValueAssignableTo")
}

// assignableTo holds the shared ontology-first, stored-data-fallback
// decision. Caller holds at least the read lock.
func (m *Manager) assignableTo(res resolution, prop string, cat spdx.Category, op string) (bool, error) {
	classRs, err := m.schema.ClassRestrictions(string(res.cat), prop)
	if err != nil {
		return false, err
	}
	dataRs, err := m.schema.DataRestrictions(string(res.cat), prop)
	if err != nil {
		return false, err
	}

	if len(classRs) > 0 {
		want := rdf.IRI(spdx.TypeIRI(cat))
		for _, r := range classRs {
			if !m.schema.IsSubClassOf(r, want) {
				return false, nil
			}
		}
		return true, nil
	}
	if len(dataRs) > 0 {
		// Literal-valued property: no class instance fits.
		return false, nil
	}

	// Ontology gap: inspect what is actually stored.
	m.warnSchemaGap(op, res.cat, prop)
	for _, o := range m.g.ForSubjectPredicate(res.node, m.propIRI(prop)) {
		v := m.decodeTerm(o, prop)
		if v == nil || !v.AssignableTo(cat, m.schema) {
			return false, nil
		}
	}
	return true, nil
}

func (m *Manager) warnSchemaGap(op string, cat spdx.Category, prop string) {
	m.logger.Warn("ontology has no restriction, deciding from stored data",
		slog.String("operation", op),
		slog.String("class", string(cat)),
		slog.String("property", prop))
	if m.metrics != nil {
		m.metrics.RecordSchemaGapFallback(op)
	}
}
