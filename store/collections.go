package store

import (
	"fmt"

	"github.com/c360studio/spdxstore/rdf"
)

// Collection operations treat (id, prop) as a set of values: zero or
// more triples, no duplicates.

// CollectionSize returns the number of stored values for (id, prop).
func (m *Manager) CollectionSize(id, prop string) (int, error) {
	if prop == "" {
		return 0, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return 0, err
	}
	return len(m.g.ForSubjectPredicate(res.node, m.propIRI(prop))), nil
}

// CollectionContains reports whether the collection holds the value.
// The check never creates the value's target resource.
func (m *Manager) CollectionContains(id, prop string, v Value) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	obj, err := m.encodeValue(v, false)
	if err != nil {
		return false, err
	}
	for _, o := range m.g.ForSubjectPredicate(res.node, m.propIRI(prop)) {
		if o.Key() == obj.Key() {
			return true, nil
		}
	}
	return false, nil
}

// AddValueToCollection adds a value, returning false when it was
// already present.
func (m *Manager) AddValueToCollection(id, prop string, v Value) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.Lock()
	defer m.g.Unlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	obj, err := m.encodeValue(v, true)
	if err != nil {
		return false, err
	}
	return m.g.Add(rdf.Triple{Subject: res.node, Predicate: m.propIRI(prop), Object: obj}), nil
}

// RemoveValueFromCollection removes a value, returning false when it
// was absent.
func (m *Manager) RemoveValueFromCollection(id, prop string, v Value) (bool, error) {
	if prop == "" {
		return false, fmt.Errorf("property name must not be empty")
	}
	m.g.Lock()
	defer m.g.Unlock()

	res, err := m.resolve(id)
	if err != nil {
		return false, err
	}
	obj, err := m.encodeValue(v, false)
	if err != nil {
		return false, err
	}
	return m.g.Remove(rdf.Triple{Subject: res.node, Predicate: m.propIRI(prop), Object: obj}), nil
}

// ClearValueCollection removes every value for (id, prop).
func (m *Manager) ClearValueCollection(id, prop string) error {
	return m.RemoveProperty(id, prop)
}

// ValueList returns the decoded values for (id, prop) in the graph's
// deterministic object order.
func (m *Manager) ValueList(id, prop string) ([]Value, error) {
	if prop == "" {
		return nil, fmt.Errorf("property name must not be empty")
	}
	m.g.RLock()
	defer m.g.RUnlock()

	res, err := m.resolve(id)
	if err != nil {
		return nil, err
	}
	objs := m.g.ForSubjectPredicate(res.node, m.propIRI(prop))
	out := make([]Value, 0, len(objs))
	for _, o := range objs {
		out = append(out, m.decodeTerm(o, prop))
	}
	return out, nil
}
