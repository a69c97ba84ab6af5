// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type runIDKey struct{}

// NewRunID returns a short random identifier for one command invocation.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// WithRunID attaches id to ctx; Ctx adds it to every entry.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// WithNewRunID attaches a fresh run ID to ctx.
func WithNewRunID(ctx context.Context) context.Context {
	return WithRunID(ctx, NewRunID())
}

// RunID returns the run ID attached to ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Ctx returns the process logger tagged with the run ID of ctx.
//
//	logging.Ctx(ctx).Info().Str("file", name).Msg("Uploading file")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	if id := RunID(ctx); id != "" {
		l = l.With().Str("run_id", id).Logger()
	}
	return &l
}
