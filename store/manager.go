// Package store maps opaque logical IDs onto graph resources for one
// SPDX document per manager: namespace resolution, monotonic ID
// counters, the case-insensitive ID index, and all property-level
// graph operations. A facade routes document URIs to managers.
package store

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/c360studio/spdxstore/listed"
	"github.com/c360studio/spdxstore/metric"
	"github.com/c360studio/spdxstore/ontology"
	"github.com/c360studio/spdxstore/rdf"
	"github.com/c360studio/spdxstore/vocabulary/spdx"
	"github.com/c360studio/spdxstore/vocabulary/std"
)

// LatestSpecVersion tags values produced for documents that declare no
// spec version of their own.
const LatestSpecVersion = "SPDX-2.3"

// IDType selects the counter family for NextID.
type IDType int

const (
	// IDAnonymous allocates a graph-local anonymous node ID.
	IDAnonymous IDType = iota
	// IDSPDXRef draws from the element ref counter.
	IDSPDXRef
	// IDLicenseRef draws from the license ref counter.
	IDLicenseRef
	// IDDocumentRef draws from the external document ref counter.
	IDDocumentRef
	// IDListedLicense has no generator; requesting it is an error.
	IDListedLicense
)

// Manager owns the ID discipline for one document namespace over one
// graph. Counters and the case index stay consistent with the graph
// through a change listener registered at construction; Close
// unregisters it.
type Manager struct {
	ns      string
	g       *rdf.Graph
	schema  *ontology.Schema
	reg     listed.Registry
	logger  *slog.Logger
	metrics *metric.Metrics

	typePred rdf.IRI

	// counterMu is independent of the graph lock: counter updates run
	// inside the change listener, which fires while the graph's write
	// section is held. Every access takes the write side, since even a
	// read of the next ID consumes it.
	counterMu      sync.Mutex
	nextSPDXRef    int
	nextLicenseRef int
	nextDocRef     int

	// lower-cased id -> canonical case-preserving id
	caseIndex sync.Map

	specVersion string

	deregister func()
}

// Option configures a Manager.
type Option func(*Manager)

// WithSchema supplies a shared ontology schema. Defaults to the
// process-wide schema.
func WithSchema(s *ontology.Schema) Option {
	return func(m *Manager) { m.schema = s }
}

// WithRegistry supplies the listed license registry. Defaults to the
// embedded registry.
func WithRegistry(r listed.Registry) Option {
	return func(m *Manager) { m.reg = r }
}

// WithLogger supplies a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics enables metric recording.
func WithMetrics(mt *metric.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// changeTracker adapts the manager to the graph listener interface
// without exporting the callbacks on Manager itself.
type changeTracker struct {
	m *Manager
}

func (c changeTracker) TripleAdded(t rdf.Triple, firstForSubject bool) {
	if !firstForSubject {
		return
	}
	c.m.observeSubject(t.Subject)
	if c.m.metrics != nil {
		c.m.metrics.RecordTriples(c.m.ns, c.m.g.Len())
	}
}

func (c changeTracker) TripleRemoved(t rdf.Triple, lastForSubject bool) {
	if !lastForSubject {
		return
	}
	c.m.forgetSubject(t.Subject)
	if c.m.metrics != nil {
		c.m.metrics.RecordTriples(c.m.ns, c.m.g.Len())
	}
}

// NewManager binds a manager to one document namespace and one graph.
// Construction scans existing subjects to bootstrap the counters and
// case index, registers the change listener, and caches the document's
// spec version.
func NewManager(docNamespace string, g *rdf.Graph, opts ...Option) (*Manager, error) {
	if docNamespace == "" {
		return nil, fmt.Errorf("document namespace must not be empty")
	}
	m := &Manager{
		ns:       docNamespace,
		g:        g,
		logger:   slog.Default(),
		typePred: rdf.IRI(std.RdfType),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.schema == nil {
		s, err := ontology.Default()
		if err != nil {
			return nil, fmt.Errorf("loading default schema: %w", err)
		}
		m.schema = s
	}
	if m.reg == nil {
		m.reg = listed.Default()
	}
	m.logger = m.logger.With(slog.String("document", docNamespace))

	// The scan and the listener registration share one critical
	// section so no mutation can slip between them.
	g.Lock()
	for _, s := range g.Subjects() {
		m.observeSubject(s)
	}
	m.specVersion = m.readSpecVersion()
	m.deregister = g.Register(changeTracker{m})
	g.Unlock()

	if m.metrics != nil {
		m.metrics.RecordManagerStarted()
	}
	return m, nil
}

// Close unregisters the change listener. The manager must not be used
// afterwards.
func (m *Manager) Close() {
	if m.deregister != nil {
		m.deregister()
		m.deregister = nil
	}
}

// DocumentNamespace returns the namespace the manager is bound to.
func (m *Manager) DocumentNamespace() string {
	return m.ns
}

// SpecVersion returns the cached document spec version.
func (m *Manager) SpecVersion() string {
	return m.specVersion
}

// localID extracts the logical ID of a subject inside the document
// namespace. Anonymous subjects and foreign URIs yield false.
func (m *Manager) localID(s rdf.Term) (string, bool) {
	iri, ok := s.(rdf.IRI)
	if !ok {
		return "", false
	}
	return spdx.IDFromElementURI(m.ns, string(iri))
}

// observeSubject folds a subject's ID into the counters and the case
// index. Runs during bootstrap and on a subject's first triple.
func (m *Manager) observeSubject(s rdf.Term) {
	id, ok := m.localID(s)
	if !ok {
		return
	}
	m.observeCounter(id)
	m.trackCase(id)
}

func (m *Manager) observeCounter(id string) {
	for _, f := range []struct {
		pattern interface{ FindStringSubmatch(string) []string }
		next    *int
	}{
		{spdx.GeneratedSPDXRefPattern, &m.nextSPDXRef},
		{spdx.GeneratedLicenseRefPattern, &m.nextLicenseRef},
		{spdx.GeneratedDocumentRefPattern, &m.nextDocRef},
	} {
		match := f.pattern.FindStringSubmatch(id)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		m.counterMu.Lock()
		if n >= *f.next {
			*f.next = n + 1
		}
		m.counterMu.Unlock()
		return
	}
}

func (m *Manager) trackCase(id string) {
	if !caseTracked(id) {
		return
	}
	prev, loaded := m.caseIndex.Swap(strings.ToLower(id), id)
	if loaded && prev != id {
		m.logger.Warn("id differs from an existing id only in case, index replaced",
			slog.String("previous", prev.(string)),
			slog.String("id", id))
		if m.metrics != nil {
			m.metrics.RecordCaseCollision()
		}
	}
}

// forgetSubject drops the case index entry once the subject's last
// statement is gone. The entry survives if another casing owns it.
func (m *Manager) forgetSubject(s rdf.Term) {
	id, ok := m.localID(s)
	if !ok || !caseTracked(id) {
		return
	}
	m.caseIndex.CompareAndDelete(strings.ToLower(id), id)
}

// readSpecVersion reads the document resource's spec version, falling
// back to the latest supported version. Caller holds the graph lock.
func (m *Manager) readSpecVersion() string {
	docType := rdf.IRI(spdx.TypeIRI(spdx.CategoryDocument))
	versionPred := rdf.IRI(spdx.PropertyIRI(spdx.PropSpecVersion))
	for _, s := range m.g.Subjects() {
		if _, ok := m.localID(s); !ok {
			continue
		}
		if !m.g.Has(rdf.Triple{Subject: s, Predicate: m.typePred, Object: docType}) {
			continue
		}
		obj, n := m.g.FirstObject(s, versionPred)
		if n == 0 {
			break
		}
		lit, ok := obj.(rdf.Literal)
		if !ok || lit.Value == "" {
			break
		}
		return lit.Value
	}
	return LatestSpecVersion
}

// NextID issues a fresh generated ID for the requested family. Each
// issued suffix is strictly greater than every suffix observed so far
// in that family, whether issued here or loaded from graph content.
func (m *Manager) NextID(t IDType) (string, error) {
	switch t {
	case IDAnonymous:
		b := m.g.NewBlankNode()
		if m.metrics != nil {
			m.metrics.RecordIDIssued("anonymous")
		}
		return spdx.AnonID(b.Label), nil
	case IDSPDXRef:
		return m.issue(&m.nextSPDXRef, "spdxref", spdx.GeneratedSPDXRef), nil
	case IDLicenseRef:
		return m.issue(&m.nextLicenseRef, "licenseref", spdx.GeneratedLicenseRef), nil
	case IDDocumentRef:
		return m.issue(&m.nextDocRef, "documentref", spdx.GeneratedDocumentRef), nil
	case IDListedLicense:
		return "", ErrNoGenerator
	}
	return "", fmt.Errorf("unknown id type %d", t)
}

func (m *Manager) issue(next *int, family string, format func(int) string) string {
	m.counterMu.Lock()
	n := *next
	*next = n + 1
	m.counterMu.Unlock()
	if m.metrics != nil {
		m.metrics.RecordIDIssued(family)
	}
	return format(n)
}

// CaseSensitiveID looks up the canonical casing recorded for a
// lower-cased ID. Returns false if the ID was never seen.
func (m *Manager) CaseSensitiveID(idLower string) (string, bool) {
	v, ok := m.caseIndex.Load(idLower)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Lock acquires the graph's exclusive write section. Held locks must
// not be combined with the manager's own operations, which acquire
// the section themselves.
func (m *Manager) Lock() { m.g.Lock() }

// Unlock releases the write section.
func (m *Manager) Unlock() { m.g.Unlock() }

// RLock acquires the graph's shared read section.
func (m *Manager) RLock() { m.g.RLock() }

// RUnlock releases the read section.
func (m *Manager) RUnlock() { m.g.RUnlock() }

func caseTracked(id string) bool {
	return strings.HasPrefix(id, spdx.PrefixSPDXRef) || strings.HasPrefix(id, spdx.PrefixLicenseRef)
}
