// Package storage persists serialized SPDX documents in NATS KV, keyed
// by document namespace.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// BucketDocuments is the KV bucket holding document snapshots.
const BucketDocuments = "SPDX_DOCUMENTS"

// Snapshot is one serialized document revision.
type Snapshot struct {
	// Namespace is the document namespace URI the snapshot belongs to.
	Namespace string `json:"namespace"`
	// SpecVersion is the document's declared SPDX spec version.
	SpecVersion string `json:"spec_version"`
	// Format names the serialization of Document: "turtle" or "ntriples".
	Format string `json:"format"`
	// Document is the serialized document body.
	Document string `json:"document"`
	// Resources is the number of typed resources in the document
	// namespace at snapshot time.
	Resources int `json:"resources"`
	// RevisionID uniquely identifies this snapshot write.
	RevisionID string `json:"revision_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NamespaceKey maps a namespace URI onto a KV-safe key. Distinct
// namespaces that differ only in characters outside the KV alphabet can
// collide; the namespace inside the snapshot is authoritative.
func NamespaceKey(namespace string) string {
	var sb strings.Builder
	for _, r := range namespace {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// DocumentStore provides snapshot storage backed by NATS KV.
type DocumentStore struct {
	kv jetstream.KeyValue
}

// Connect dials NATS and returns a DocumentStore over a fresh JetStream
// context. The caller owns the returned connection.
func Connect(ctx context.Context, url string) (*DocumentStore, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("spdxstore"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}
	ds, err := NewDocumentStore(ctx, js)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return ds, nc, nil
}

// NewDocumentStore creates a DocumentStore with the given JetStream
// context, creating the KV bucket if it doesn't exist.
func NewDocumentStore(ctx context.Context, js jetstream.JetStream) (*DocumentStore, error) {
	kv, err := getOrCreateBucket(ctx, js, BucketDocuments)
	if err != nil {
		return nil, fmt.Errorf("create documents bucket: %w", err)
	}
	return &DocumentStore{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "SPDX document snapshots",
		History:     5, // Keep last 5 revisions
	})
}

// Put writes a snapshot, stamping its revision and timestamp.
func (s *DocumentStore) Put(ctx context.Context, snap *Snapshot) error {
	if snap.Namespace == "" {
		return fmt.Errorf("snapshot namespace must not be empty")
	}
	snap.RevisionID = uuid.New().String()
	snap.UpdatedAt = time.Now()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if _, err := s.kv.Put(ctx, NamespaceKey(snap.Namespace), data); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Get retrieves the latest snapshot for a namespace.
func (s *DocumentStore) Get(ctx context.Context, namespace string) (*Snapshot, error) {
	entry, err := s.kv.Get(ctx, NamespaceKey(namespace))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(entry.Value(), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// List returns the latest snapshot of every stored namespace.
func (s *DocumentStore) List(ctx context.Context) ([]*Snapshot, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshot keys: %w", err)
	}

	snapshots := make([]*Snapshot, 0, len(keys))
	for _, key := range keys {
		entry, err := s.kv.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var snap Snapshot
		if err := json.Unmarshal(entry.Value(), &snap); err != nil {
			continue
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, nil
}

// Delete removes the snapshot history for a namespace.
func (s *DocumentStore) Delete(ctx context.Context, namespace string) error {
	if err := s.kv.Delete(ctx, NamespaceKey(namespace)); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
