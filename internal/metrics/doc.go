// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

/*
Package metrics provides Prometheus instrumentation for the pipeline tools.

The tools are short-lived, so nothing is served over HTTP. Instead the
command writes the default registry to a textfile at exit when
METRICS_TEXTFILE is set, for collection by node_exporter's textfile
collector:

	defer metrics.WriteTextfile(cfg.Metrics.Textfile)

# Available Metrics

Hub API:
  - hub_requests_total{operation, status_code}
  - hub_request_duration_seconds{operation}
  - hub_rate_limit_waits_total

Dataset:
  - dataset_rows{artifact}
  - dataset_imputed_cells_total{strategy}
  - dataset_rows_dropped_total{reason}
  - dataset_loads_total{source}

Uploads:
  - upload_files_total{procedure, result}
  - upload_bytes_total{procedure}

Runs and circuit breaker:
  - pipeline_run_duration_seconds{procedure}
  - pipeline_run_exit_code{procedure}
  - pipeline_run_last_success_timestamp{procedure}
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}
*/
package metrics
