package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAllCollectors(t *testing.T) {
	m := NewMetrics()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))

	// Registering the same collectors twice must fail.
	assert.Error(t, NewMetrics().Register(registry))
}

func TestRecordersGather(t *testing.T) {
	m := NewMetrics()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))

	m.RecordIDIssued("SPDXRef")
	m.RecordIDIssued("SPDXRef")
	m.RecordIDIssued("LicenseRef")
	m.RecordIDResolved("document")
	m.RecordResolveError("invalid_id")
	m.RecordCaseCollision()
	m.RecordSchemaGapFallback("is_collection")
	m.RecordTriples("https://example.com/doc", 42)
	m.RecordManagerStarted()

	families, err := registry.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	for _, mf := range families {
		for _, mm := range mf.GetMetric() {
			if c := mm.GetCounter(); c != nil {
				byName[mf.GetName()] += c.GetValue()
			}
			if g := mm.GetGauge(); g != nil {
				byName[mf.GetName()] += g.GetValue()
			}
		}
	}

	assert.Equal(t, 3.0, byName["spdxstore_ids_issued_total"])
	assert.Equal(t, 1.0, byName["spdxstore_ids_resolved_total"])
	assert.Equal(t, 1.0, byName["spdxstore_ids_resolve_errors_total"])
	assert.Equal(t, 1.0, byName["spdxstore_ids_case_collisions_total"])
	assert.Equal(t, 1.0, byName["spdxstore_ontology_schema_gap_fallbacks_total"])
	assert.Equal(t, 42.0, byName["spdxstore_graph_triples"])
	assert.Equal(t, 1.0, byName["spdxstore_store_managers_started_total"])
}
