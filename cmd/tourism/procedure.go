// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"context"
	"time"

	"github.com/tomtom215/tourism-pipeline/internal/config"
	"github.com/tomtom215/tourism-pipeline/internal/hub"
	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// procedureFunc is the body of a procedure. It advances the tracker through
// its stages and returns the error that failed the run.
type procedureFunc func(ctx context.Context, cfg *config.Config, api hub.API, tracker *pipeline.Tracker) error

// runProcedure loads configuration, sets up logging and the hub client, runs
// fn and records the outcome. Configuration errors are returned before any
// network or file access.
func runProcedure(ctx context.Context, name string, fn procedureFunc) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		File:      cfg.Logging.File,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close log file")
		}
	}()

	ctx = logging.WithNewRunID(ctx)
	logging.Ctx(ctx).Info().
		Str("procedure", name).
		Str("endpoint", cfg.Hub.Endpoint).
		Str("version", version).
		Msg("Starting")

	tracker := pipeline.NewTracker(name)
	err = fn(ctx, cfg, newHubAPI(cfg), tracker)
	if err != nil {
		err = tracker.Fail(ctx, err)
	} else {
		err = tracker.Finish(ctx)
	}

	metrics.RecordRun(name, time.Since(start), pipeline.ExitCode(err))
	if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
		logging.Ctx(ctx).Warn().Err(werr).Str("path", cfg.Metrics.Textfile).Msg("Failed to write metrics textfile")
	}
	return err
}

// newHubAPI builds the rate-limited hub client behind a circuit breaker.
func newHubAPI(cfg *config.Config) hub.API {
	client := hub.NewClient(hub.Options{
		Endpoint:          cfg.Hub.Endpoint,
		Token:             cfg.Hub.Token,
		Revision:          cfg.Hub.Revision,
		UserAgent:         hub.DefaultUserAgent + "/" + version,
		Timeout:           cfg.Hub.Timeout,
		RequestsPerSecond: cfg.Hub.RequestsPerSecond,
	})
	return hub.NewBreakerClient(client, hub.BreakerSettings{
		ConsecutiveFailures: cfg.Hub.BreakerFailures,
	})
}
