package rdf

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ChangeListener observes graph mutations. Callbacks run synchronously
// inside the graph's write critical section; implementations must not
// re-enter the graph and may only take independent locks.
type ChangeListener interface {
	// TripleAdded fires after t is inserted. firstForSubject is true
	// when t is the first statement for its subject.
	TripleAdded(t Triple, firstForSubject bool)

	// TripleRemoved fires after t is removed. lastForSubject is true
	// when the subject has no statements left.
	TripleRemoved(t Triple, lastForSubject bool)
}

// Graph is a mutable in-memory triple multigraph with set semantics on
// identical triples.
//
// Locking: the graph exposes one reader/writer critical section via
// Lock/Unlock/RLock/RUnlock. All other methods assume the caller holds
// the appropriate side of that section; they never acquire it themselves.
// Listener registration is the only self-locking operation.
type Graph struct {
	mu sync.RWMutex

	// spo[subjectKey][predicate][objectKey] = triple
	spo map[string]map[IRI]map[string]Triple

	// subjectTerms maps subject keys back to terms for enumeration.
	subjectTerms map[string]Term

	// statementCount per subject key.
	statementCount map[string]int

	listenerMu sync.Mutex
	listeners  map[int]ChangeListener
	nextHandle int

	blankSalt    string
	blankCounter atomic.Int64

	defaultPrefix atomic.Value // string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	g := &Graph{
		spo:            make(map[string]map[IRI]map[string]Triple),
		subjectTerms:   make(map[string]Term),
		statementCount: make(map[string]int),
		listeners:      make(map[int]ChangeListener),
		blankSalt:      uuid.NewString()[:8],
	}
	g.defaultPrefix.Store("")
	return g
}

// Lock acquires exclusive write access to the critical section.
func (g *Graph) Lock() { g.mu.Lock() }

// Unlock releases exclusive write access.
func (g *Graph) Unlock() { g.mu.Unlock() }

// RLock acquires shared read access to the critical section.
func (g *Graph) RLock() { g.mu.RLock() }

// RUnlock releases shared read access.
func (g *Graph) RUnlock() { g.mu.RUnlock() }

// Register adds a change listener and returns its deregistration
// function. Safe to call without holding the critical section.
func (g *Graph) Register(l ChangeListener) func() {
	g.listenerMu.Lock()
	handle := g.nextHandle
	g.nextHandle++
	g.listeners[handle] = l
	g.listenerMu.Unlock()
	return func() {
		g.listenerMu.Lock()
		delete(g.listeners, handle)
		g.listenerMu.Unlock()
	}
}

func (g *Graph) snapshotListeners() []ChangeListener {
	g.listenerMu.Lock()
	defer g.listenerMu.Unlock()
	out := make([]ChangeListener, 0, len(g.listeners))
	for _, l := range g.listeners {
		out = append(out, l)
	}
	return out
}

// NewBlankNode allocates a fresh anonymous node. The label carries a
// per-graph salt so generated labels never collide with labels read from
// a serialized document.
func (g *Graph) NewBlankNode() BlankNode {
	n := g.blankCounter.Add(1)
	return BlankNode{Label: fmt.Sprintf("b%d-%s", n, g.blankSalt)}
}

// SetDefaultPrefix records the graph's default namespace prefix, used by
// the serializers as the empty-prefix base IRI.
func (g *Graph) SetDefaultPrefix(ns string) {
	g.defaultPrefix.Store(ns)
}

// DefaultPrefix returns the default namespace prefix, empty if unset.
func (g *Graph) DefaultPrefix() string {
	return g.defaultPrefix.Load().(string)
}

// Add inserts t, returning false if the identical triple is already
// present. Fires TripleAdded on every registered listener after a real
// insertion. Caller must hold the write lock.
func (g *Graph) Add(t Triple) bool {
	sk := t.Subject.Key()
	preds, ok := g.spo[sk]
	if !ok {
		preds = make(map[IRI]map[string]Triple)
		g.spo[sk] = preds
		g.subjectTerms[sk] = t.Subject
	}
	objs, ok := preds[t.Predicate]
	if !ok {
		objs = make(map[string]Triple)
		preds[t.Predicate] = objs
	}
	if _, exists := objs[t.Object.Key()]; exists {
		return false
	}
	objs[t.Object.Key()] = t
	g.statementCount[sk]++
	first := g.statementCount[sk] == 1
	for _, l := range g.snapshotListeners() {
		l.TripleAdded(t, first)
	}
	return true
}

// Remove deletes t, returning false if it was not present. Fires
// TripleRemoved after a real deletion. Caller must hold the write lock.
func (g *Graph) Remove(t Triple) bool {
	sk := t.Subject.Key()
	preds, ok := g.spo[sk]
	if !ok {
		return false
	}
	objs, ok := preds[t.Predicate]
	if !ok {
		return false
	}
	if _, exists := objs[t.Object.Key()]; !exists {
		return false
	}
	delete(objs, t.Object.Key())
	if len(objs) == 0 {
		delete(preds, t.Predicate)
	}
	g.statementCount[sk]--
	last := g.statementCount[sk] == 0
	if last {
		delete(g.spo, sk)
		delete(g.subjectTerms, sk)
		delete(g.statementCount, sk)
	}
	for _, l := range g.snapshotListeners() {
		l.TripleRemoved(t, last)
	}
	return true
}

// Has reports whether the identical triple is present. Caller must hold
// a read lock.
func (g *Graph) Has(t Triple) bool {
	if objs, ok := g.spo[t.Subject.Key()][t.Predicate]; ok {
		_, present := objs[t.Object.Key()]
		return present
	}
	return false
}

// HasSubject reports whether any statement has s as its subject. Caller
// must hold a read lock.
func (g *Graph) HasSubject(s Term) bool {
	return g.statementCount[s.Key()] > 0
}

// SubjectStatementCount returns the number of statements with subject s.
// Caller must hold a read lock.
func (g *Graph) SubjectStatementCount(s Term) int {
	return g.statementCount[s.Key()]
}

// ForSubject returns every triple with subject s in deterministic order.
// Caller must hold a read lock.
func (g *Graph) ForSubject(s Term) []Triple {
	preds, ok := g.spo[s.Key()]
	if !ok {
		return nil
	}
	var out []Triple
	for _, objs := range preds {
		for _, t := range objs {
			out = append(out, t)
		}
	}
	sortTriples(out)
	return out
}

// ForSubjectPredicate returns the objects of every (s, p, *) triple in
// deterministic order. Caller must hold a read lock.
func (g *Graph) ForSubjectPredicate(s Term, p IRI) []Term {
	objs, ok := g.spo[s.Key()][p]
	if !ok {
		return nil
	}
	out := make([]Term, 0, len(objs))
	for _, t := range objs {
		out = append(out, t.Object)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// FirstObject returns the single object of (s, p, *) if exactly one
// exists; the second return is the statement count for the pair. Caller
// must hold a read lock.
func (g *Graph) FirstObject(s Term, p IRI) (Term, int) {
	objs := g.ForSubjectPredicate(s, p)
	if len(objs) == 0 {
		return nil, 0
	}
	return objs[0], len(objs)
}

// Subjects returns every distinct subject term in deterministic order.
// Caller must hold a read lock.
func (g *Graph) Subjects() []Term {
	out := make([]Term, 0, len(g.subjectTerms))
	for _, s := range g.subjectTerms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Triples returns every triple in the graph in deterministic order.
// Caller must hold a read lock.
func (g *Graph) Triples() []Triple {
	var out []Triple
	for _, preds := range g.spo {
		for _, objs := range preds {
			for _, t := range objs {
				out = append(out, t)
			}
		}
	}
	sortTriples(out)
	return out
}

// RemoveSubject deletes every triple with subject s, returning the number
// removed. Caller must hold the write lock.
func (g *Graph) RemoveSubject(s Term) int {
	removed := 0
	for _, t := range g.ForSubject(s) {
		if g.Remove(t) {
			removed++
		}
	}
	return removed
}

// Len returns the total number of triples. Caller must hold a read lock.
func (g *Graph) Len() int {
	n := 0
	for _, c := range g.statementCount {
		n += c
	}
	return n
}

func sortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Subject.Key() != ts[j].Subject.Key() {
			return ts[i].Subject.Key() < ts[j].Subject.Key()
		}
		if ts[i].Predicate != ts[j].Predicate {
			return ts[i].Predicate < ts[j].Predicate
		}
		return ts[i].Object.Key() < ts[j].Object.Key()
	})
}
