// Package graph publishes store mutations to the knowledge graph
// ingestion stream. The feed is strictly optional: store semantics
// never depend on it, and a nil NATS client degrades to a no-op.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/spdxstore/rdf"
)

// IngestSubject is the stream subject for graph entity ingestion.
const IngestSubject = "graph.ingest.entity"

// tripleSource tags published triples with their producer.
const tripleSource = "spdxstore"

// Publisher mirrors graph mutations onto the ingestion stream. It
// implements rdf.ChangeListener: callbacks run inside the graph's
// write section, so they only buffer; Flush does the network work.
type Publisher struct {
	nc     *natsclient.Client
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string][]message.Triple
}

// NewPublisher creates a publisher over a NATS client. A nil client
// is accepted; the publisher then buffers and discards on Flush.
func NewPublisher(nc *natsclient.Client, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		nc:      nc,
		logger:  logger,
		pending: map[string][]message.Triple{},
	}
}

// TripleAdded buffers an added triple under its subject entity.
func (p *Publisher) TripleAdded(t rdf.Triple, _ bool) {
	mt := toMessageTriple(t)
	p.mu.Lock()
	p.pending[mt.Subject] = append(p.pending[mt.Subject], mt)
	p.mu.Unlock()
}

// TripleRemoved drops any buffered add for the removed triple. The
// feed is add-only; consumers reconcile removals from full snapshots.
func (p *Publisher) TripleRemoved(t rdf.Triple, _ bool) {
	mt := toMessageTriple(t)
	p.mu.Lock()
	defer p.mu.Unlock()
	buf := p.pending[mt.Subject]
	for i, have := range buf {
		if have.Predicate == mt.Predicate && have.Object == mt.Object {
			p.pending[mt.Subject] = append(buf[:i], buf[i+1:]...)
			break
		}
	}
	if len(p.pending[mt.Subject]) == 0 {
		delete(p.pending, mt.Subject)
	}
}

// Flush publishes one EntityPayload per buffered entity and clears
// the buffer. Without a NATS client the buffer is discarded.
func (p *Publisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.pending
	p.pending = map[string][]message.Triple{}
	p.mu.Unlock()

	if p.nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	for id, triples := range batch {
		payload := &EntityPayload{ResourceID: id, Statements: triples, UpdatedAt: now}
		if err := payload.Validate(); err != nil {
			return fmt.Errorf("entity payload %s: %w", id, err)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal entity %s: %w", id, err)
		}
		if err := p.nc.PublishToStream(ctx, IngestSubject, data); err != nil {
			return fmt.Errorf("publish entity %s: %w", id, err)
		}
		p.logger.Debug("published entity",
			slog.String("entity", id),
			slog.Int("triples", len(triples)))
	}
	return nil
}

// Pending returns the number of buffered entities.
func (p *Publisher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// toMessageTriple flattens a graph triple into the stream triple
// shape: term keys for nodes, lexical forms for literals.
func toMessageTriple(t rdf.Triple) message.Triple {
	var obj any
	switch o := t.Object.(type) {
	case rdf.Literal:
		obj = o.Value
	case rdf.IRI:
		obj = string(o)
	case rdf.BlankNode:
		obj = o.Key()
	default:
		obj = t.Object.String()
	}
	return message.Triple{
		Subject:    t.Subject.Key(),
		Predicate:  string(t.Predicate),
		Object:     obj,
		Source:     tripleSource,
		Timestamp:  time.Now(),
		Confidence: 1.0,
	}
}
