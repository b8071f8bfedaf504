package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/c360studio/spdxstore/rdf"
)

func TestPublisherBuffersMutations(t *testing.T) {
	p := NewPublisher(nil, nil)
	g := rdf.NewGraph()
	dereg := g.Register(p)
	defer dereg()

	subject := rdf.IRI("https://example.com/doc#SPDXRef-pkg")
	namePred := rdf.IRI("http://spdx.org/rdf/terms#name")
	typePred := rdf.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")

	g.Lock()
	g.Add(rdf.Triple{Subject: subject, Predicate: typePred, Object: rdf.IRI("http://spdx.org/rdf/terms#SpdxPackage")})
	g.Add(rdf.Triple{Subject: subject, Predicate: namePred, Object: rdf.StringLiteral("pkg")})
	g.Unlock()

	if got := p.Pending(); got != 1 {
		t.Fatalf("Pending = %d, want 1 entity", got)
	}

	// A removal cancels the buffered add for the same triple.
	g.Lock()
	g.Remove(rdf.Triple{Subject: subject, Predicate: namePred, Object: rdf.StringLiteral("pkg")})
	g.Unlock()

	p.mu.Lock()
	buffered := len(p.pending[subject.Key()])
	p.mu.Unlock()
	if buffered != 1 {
		t.Errorf("buffered triples = %d, want 1 after cancellation", buffered)
	}

	// Flush without a NATS client discards instead of failing.
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := p.Pending(); got != 0 {
		t.Errorf("Pending after flush = %d, want 0", got)
	}
}

func TestEntityPayloadValidate(t *testing.T) {
	p := &EntityPayload{}
	if err := p.Validate(); err == nil {
		t.Error("empty resource ID must fail validation")
	}
	p.ResourceID = "https://example.com/doc#SPDXRef-pkg"
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEntityPayloadWireShape(t *testing.T) {
	payload := &EntityPayload{
		ResourceID: "https://example.com/doc#SPDXRef-pkg",
		Statements: []message.Triple{{
			Subject:   "<https://example.com/doc#SPDXRef-pkg",
			Predicate: "http://spdx.org/rdf/terms#name",
			Object:    "pkg",
		}},
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// Consumers key on the id/triples/updated_at field names.
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"id", "triples", "updated_at"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("wire format missing %q", field)
		}
	}

	var got EntityPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.EntityID() != payload.ResourceID {
		t.Errorf("EntityID = %q", got.EntityID())
	}
	if len(got.Triples()) != 1 || got.Triples()[0].Predicate != "http://spdx.org/rdf/terms#name" {
		t.Errorf("Triples = %+v", got.Triples())
	}
}
