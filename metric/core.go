// Package metric defines the store-level prometheus metrics.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all store-level metrics (not document-specific)
type Metrics struct {
	// ID manager metrics
	IDsIssued      *prometheus.CounterVec
	IDsResolved    *prometheus.CounterVec
	ResolveErrors  *prometheus.CounterVec
	CaseCollisions prometheus.Counter

	// Ontology metrics
	SchemaGapFallbacks *prometheus.CounterVec

	// Graph metrics
	TriplesTotal    *prometheus.GaugeVec
	ManagersStarted prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all store metrics
func NewMetrics() *Metrics {
	return &Metrics{
		IDsIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "ids",
				Name:      "issued_total",
				Help:      "Total number of generated IDs issued, by counter family",
			},
			[]string{"family"},
		),

		IDsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "ids",
				Name:      "resolved_total",
				Help:      "Total number of logical ID resolutions, by namespace",
			},
			[]string{"namespace"},
		),

		ResolveErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "ids",
				Name:      "resolve_errors_total",
				Help:      "Total number of failed logical ID resolutions",
			},
			[]string{"reason"},
		),

		CaseCollisions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "ids",
				Name:      "case_collisions_total",
				Help:      "Total number of case-index entries replaced by an ID differing only in case",
			},
		),

		SchemaGapFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "ontology",
				Name:      "schema_gap_fallbacks_total",
				Help:      "Total number of decisions made from stored data because the ontology had no restriction",
			},
			[]string{"operation"},
		),

		TriplesTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "spdxstore",
				Subsystem: "graph",
				Name:      "triples",
				Help:      "Current number of triples in the graph, by document namespace",
			},
			[]string{"namespace"},
		),

		ManagersStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "spdxstore",
				Subsystem: "store",
				Name:      "managers_started_total",
				Help:      "Total number of document managers constructed",
			},
		),
	}
}

// Register registers all metrics with the provided registry
func (c *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.IDsIssued,
		c.IDsResolved,
		c.ResolveErrors,
		c.CaseCollisions,
		c.SchemaGapFallbacks,
		c.TriplesTotal,
		c.ManagersStarted,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// RecordIDIssued increments the issued counter for an ID family
func (c *Metrics) RecordIDIssued(family string) {
	c.IDsIssued.WithLabelValues(family).Inc()
}

// RecordIDResolved increments the resolution counter for a namespace
func (c *Metrics) RecordIDResolved(namespace string) {
	c.IDsResolved.WithLabelValues(namespace).Inc()
}

// RecordResolveError increments the failed resolution counter
func (c *Metrics) RecordResolveError(reason string) {
	c.ResolveErrors.WithLabelValues(reason).Inc()
}

// RecordCaseCollision increments the case-index replacement counter
func (c *Metrics) RecordCaseCollision() {
	c.CaseCollisions.Inc()
}

// RecordSchemaGapFallback increments the ontology fallback counter
func (c *Metrics) RecordSchemaGapFallback(operation string) {
	c.SchemaGapFallbacks.WithLabelValues(operation).Inc()
}

// RecordTriples updates the triple gauge for a document namespace
func (c *Metrics) RecordTriples(namespace string, n int) {
	c.TriplesTotal.WithLabelValues(namespace).Set(float64(n))
}

// RecordManagerStarted increments the manager construction counter
func (c *Metrics) RecordManagerStarted() {
	c.ManagersStarted.Inc()
}
