package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "graph",
		Category:    "entity",
		Version:     "v1",
		Description: "SPDX resource payload for graph ingestion with triples",
		Factory:     func() any { return &EntityPayload{} },
	})
	if err != nil {
		panic("failed to register EntityPayload: " + err.Error())
	}
}

// EntityType is the message type for graph entity payloads.
var EntityType = message.Type{Domain: "graph", Category: "entity", Version: "v1"}

// EntityPayload implements message.Payload for one store resource and
// the triples buffered against it. Publisher.Flush emits one payload
// per resource.
type EntityPayload struct {
	ResourceID string           `json:"id"`
	Statements []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (e *EntityPayload) EntityID() string          { return e.ResourceID }
func (e *EntityPayload) Triples() []message.Triple { return e.Statements }
func (e *EntityPayload) Schema() message.Type      { return EntityType }

func (e *EntityPayload) Validate() error {
	if e.ResourceID == "" {
		return errors.New("resource ID is required")
	}
	return nil
}

func (e *EntityPayload) MarshalJSON() ([]byte, error) {
	type plain EntityPayload
	return json.Marshal((*plain)(e))
}

func (e *EntityPayload) UnmarshalJSON(data []byte) error {
	type plain EntityPayload
	return json.Unmarshal(data, (*plain)(e))
}
