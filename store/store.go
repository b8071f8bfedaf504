package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
)

// Store routes document URIs to their managers, constructing a
// manager and a fresh graph lazily on the first write to a namespace.
type Store struct {
	mu       sync.RWMutex
	managers map[string]*Manager
	graphs   map[string]*rdf.Graph
	opts     []Option
}

// New creates an empty store. The options are applied to every
// manager the store constructs.
func New(opts ...Option) *Store {
	return &Store{
		managers: map[string]*Manager{},
		graphs:   map[string]*rdf.Graph{},
		opts:     opts,
	}
}

// Manager returns the manager for a document URI. With createIfMissing
// a fresh graph and manager are constructed; without it an unknown
// namespace is ErrUnknownDocument.
func (s *Store) Manager(documentURI string, createIfMissing bool) (*Manager, error) {
	if documentURI == "" {
		return nil, fmt.Errorf("document URI must not be empty")
	}
	s.mu.RLock()
	m, ok := s.managers[documentURI]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}
	if !createIfMissing {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, documentURI)
	}
	return s.attach(documentURI, rdf.NewGraph())
}

// AttachGraph builds a manager over an externally populated graph,
// typically one filled by the codec. Attaching a second graph for the
// same document URI is an error.
func (s *Store) AttachGraph(documentURI string, g *rdf.Graph) (*Manager, error) {
	if documentURI == "" {
		return nil, fmt.Errorf("document URI must not be empty")
	}
	s.mu.RLock()
	_, exists := s.managers[documentURI]
	s.mu.RUnlock()
	if exists {
		return nil, fmt.Errorf("document %s already attached", documentURI)
	}
	return s.attach(documentURI, g)
}

func (s *Store) attach(documentURI string, g *rdf.Graph) (*Manager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.managers[documentURI]; ok {
		return m, nil
	}
	m, err := NewManager(documentURI, g, s.opts...)
	if err != nil {
		return nil, err
	}
	s.managers[documentURI] = m
	s.graphs[documentURI] = g
	return m, nil
}

// Graph returns the graph backing a document namespace.
func (s *Store) Graph(documentURI string) (*rdf.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[documentURI]
	return g, ok
}

// Namespaces lists the attached document URIs in sorted order.
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.managers))
	for ns := range s.managers {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Close closes every manager. The store stays usable; closed
// namespaces are rebuilt on the next write.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ns, m := range s.managers {
		m.Close()
		delete(s.managers, ns)
		delete(s.graphs, ns)
	}
}

// Exists reports whether the ID exists in the document. Unknown
// namespaces answer false rather than erroring.
func (s *Store) Exists(documentURI, id string) bool {
	m, err := s.Manager(documentURI, false)
	if err != nil {
		return false
	}
	return m.Exists(id)
}

// Create ensures a typed resource exists, building the document's
// manager on demand.
func (s *Store) Create(documentURI, id string, cat spdx.Category) error {
	m, err := s.Manager(documentURI, true)
	if err != nil {
		return err
	}
	_, err = m.Create(id, cat)
	return err
}

// SetValue delegates to the document's manager, building it on demand.
func (s *Store) SetValue(documentURI, id, prop string, v Value) error {
	m, err := s.Manager(documentURI, true)
	if err != nil {
		return err
	}
	return m.SetValue(id, prop, v)
}

// GetPropertyValue delegates to the document's manager.
func (s *Store) GetPropertyValue(documentURI, id, prop string) (Value, bool, error) {
	m, err := s.Manager(documentURI, false)
	if err != nil {
		return nil, false, err
	}
	return m.GetPropertyValue(id, prop)
}

// NextID delegates to the document's manager, building it on demand.
func (s *Store) NextID(documentURI string, t IDType) (string, error) {
	m, err := s.Manager(documentURI, true)
	if err != nil {
		return "", err
	}
	return m.NextID(t)
}

// Delete delegates to the document's manager.
func (s *Store) Delete(documentURI, id string) error {
	m, err := s.Manager(documentURI, false)
	if err != nil {
		return err
	}
	return m.Delete(id)
}
