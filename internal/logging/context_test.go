// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRunID(t *testing.T) {
	t.Parallel()

	a, b := NewRunID(), NewRunID()
	if len(a) != 8 || a == b {
		t.Errorf("NewRunID() = %q, %q; want distinct 8-character IDs", a, b)
	}

	ctx := context.Background()
	if id := RunID(ctx); id != "" {
		t.Errorf("RunID(empty) = %q", id)
	}
	if id := RunID(WithRunID(ctx, "abc12345")); id != "abc12345" {
		t.Errorf("RunID() = %q, want abc12345", id)
	}
	if id := RunID(WithNewRunID(ctx)); len(id) != 8 {
		t.Errorf("RunID(WithNewRunID) = %q", id)
	}
}

func TestCtxTagsRunID(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(zerolog.New(&buf))
	defer SetLogger(prev)

	Ctx(WithRunID(context.Background(), "run-0001")).Info().Msg("stage started")
	Ctx(context.Background()).Info().Msg("untagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"run_id":"run-0001"`) {
		t.Errorf("first entry missing run_id: %s", lines[0])
	}
	if strings.Contains(lines[1], "run_id") {
		t.Errorf("second entry has run_id: %s", lines[1])
	}
}
