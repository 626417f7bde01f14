package fallback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	storageCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_storage_calls_total",
			Help: "Storage façade calls by serving backend and outcome",
		},
		[]string{"backend", "operation", "outcome"}, // backend: "durable", "memory"; outcome: "ok", "caller_error", "fault"
	)

	storageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_storage_fallbacks_total",
			Help: "Calls re-issued against the in-memory store after a durable fault",
		},
		[]string{"operation"},
	)

	graphOrphanLinks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "knowledge_graph_orphan_links_total",
			Help: "Links dropped from mixed-provenance knowledge graphs",
		},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "knowledge_storage_breaker_state",
			Help: "Durable store circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
