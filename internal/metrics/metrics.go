// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Hub API Metrics
	HubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_requests_total",
			Help: "Total number of requests sent to the hosting platform API",
		},
		[]string{"operation", "status_code"},
	)

	HubRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hub_request_duration_seconds",
			Help:    "Duration of hosting platform API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)

	HubRateLimitWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_rate_limit_waits_total",
			Help: "Total number of requests delayed by the client rate limiter",
		},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Number of rows per dataset artifact produced by the last run",
		},
		[]string{"artifact"}, // raw, cleaned, train, test
	)

	DatasetImputedCells = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_imputed_cells_total",
			Help: "Total number of missing cells filled during cleaning",
		},
		[]string{"strategy"}, // median, mode
	)

	DatasetRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_dropped_total",
			Help: "Total number of rows removed during cleaning",
		},
		[]string{"reason"}, // missing_label
	)

	DatasetSource = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_loads_total",
			Help: "Total number of dataset loads by source",
		},
		[]string{"source"}, // remote, local
	)

	// Upload Metrics
	UploadFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_files_total",
			Help: "Total number of files processed by the uploaders",
		},
		[]string{"procedure", "result"}, // result: uploaded, skipped, failed
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upload_bytes_total",
			Help: "Total number of bytes committed to remote repositories",
		},
		[]string{"procedure"},
	)

	// Run Metrics
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Duration of a procedure run in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"procedure"},
	)

	RunExitCode = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_run_exit_code",
			Help: "Exit code of the last run (0=success)",
		},
		[]string{"procedure"},
	)

	RunLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_run_last_success_timestamp",
			Help: "Unix timestamp of the last successful run",
		},
		[]string{"procedure"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordHubRequest records a hosting platform API call.
// A statusCode of 0 means the request never produced a response.
func RecordHubRequest(operation string, statusCode int, duration time.Duration) {
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	HubRequestsTotal.WithLabelValues(operation, code).Inc()
	HubRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordUpload records the outcome of one file in an upload procedure.
func RecordUpload(procedure, result string, bytes int64) {
	UploadFilesTotal.WithLabelValues(procedure, result).Inc()
	if result == "uploaded" && bytes > 0 {
		UploadBytesTotal.WithLabelValues(procedure).Add(float64(bytes))
	}
}

// RecordRun records the end of a procedure run.
func RecordRun(procedure string, duration time.Duration, exitCode int) {
	RunDuration.WithLabelValues(procedure).Observe(duration.Seconds())
	RunExitCode.WithLabelValues(procedure).Set(float64(exitCode))
	if exitCode == 0 {
		RunLastSuccess.WithLabelValues(procedure).Set(float64(time.Now().Unix()))
	}
}

// RecordBreakerTransition records a circuit breaker state change and
// updates the state gauge.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, for pickup by a node_exporter textfile collector.
// An empty path is a no-op.
func WriteTextfile(path string) error {
	return writeTextfile(path, prometheus.DefaultGatherer)
}

func writeTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, g)
}
