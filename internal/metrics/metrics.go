// Package metrics exposes Prometheus instrumentation for retrieval and
// context assembly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Context sources reported by ContextBuilds.
const (
	SourceAssembled = "assembled"
	SourceFallback  = "fallback"
)

var (
	RetrievalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnrag_retrieval_duration_seconds",
			Help:    "Duration of knowledge-base retrieval calls in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"}, // "search", "search_by_category"
	)

	RetrievalCollectionSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnrag_retrieval_collection_size",
			Help:    "Number of documents scored per retrieval call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"operation"},
	)

	RetrievalErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrag_retrieval_errors_total",
			Help: "Total number of rejected retrieval calls",
		},
		[]string{"operation", "reason"},
	)

	ContextBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrag_context_builds_total",
			Help: "Total number of context blocks built, by source",
		},
		[]string{"source"}, // "assembled", "fallback"
	)

	CompletionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrag_completion_requests_total",
			Help: "Total number of completion requests, by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnrag_external_requests_total",
			Help: "Total number of video and news API requests, by service and outcome",
		},
		[]string{"service", "outcome"},
	)
)

// RecordRetrieval records one retrieval call over size documents.
func RecordRetrieval(operation string, size int, duration time.Duration) {
	RetrievalDuration.WithLabelValues(operation).Observe(duration.Seconds())
	RetrievalCollectionSize.WithLabelValues(operation).Observe(float64(size))
}

// RecordRetrievalError counts a rejected retrieval call.
func RecordRetrievalError(operation, reason string) {
	RetrievalErrors.WithLabelValues(operation, reason).Inc()
}

// RecordContextBuild counts a context block by its source.
func RecordContextBuild(source string) {
	ContextBuilds.WithLabelValues(source).Inc()
}

// RecordCompletion counts a completion request outcome.
func RecordCompletion(err error) {
	if err != nil {
		CompletionRequests.WithLabelValues("error").Inc()
		return
	}
	CompletionRequests.WithLabelValues("success").Inc()
}

// RecordExternalRequest counts one video or news API attempt.
func RecordExternalRequest(service string, err error) {
	if err != nil {
		ExternalRequests.WithLabelValues(service, "error").Inc()
		return
	}
	ExternalRequests.WithLabelValues(service, "success").Inc()
}
