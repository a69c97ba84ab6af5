// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestTrackerHappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker("prepare")

	for _, next := range []Stage{StageLoad, StageProcess, StagePublish} {
		if err := tr.Advance(ctx, next); err != nil {
			t.Fatalf("Advance(%s) error = %v", next, err)
		}
	}
	if err := tr.Finish(ctx); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if tr.Stage() != StageDone {
		t.Errorf("Stage() = %s, want done", tr.Stage())
	}
	if got := len(tr.History()); got != 4 {
		t.Errorf("expected 4 transitions, got %d", got)
	}
}

func TestTrackerSkipsStages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker("deploy")

	if err := tr.Advance(ctx, StageLoad); err != nil {
		t.Fatal(err)
	}
	if err := tr.Advance(ctx, StagePublish); err != nil {
		t.Fatalf("expected skipping Process to be allowed: %v", err)
	}
}

func TestTrackerRejectsBackwardTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker("prepare")
	_ = tr.Advance(ctx, StageProcess)

	if err := tr.Advance(ctx, StageLoad); err == nil {
		t.Error("expected error moving backwards")
	}
	if err := tr.Advance(ctx, StageFailed); err == nil {
		t.Error("expected Advance to refuse Failed; use Fail")
	}
}

func TestTrackerFail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker("prepare")
	_ = tr.Advance(ctx, StageLoad)

	cause := NewDataError("no dataset", nil)
	if err := tr.Fail(ctx, cause); !errors.Is(err, cause) {
		t.Errorf("Fail() returned %v, want the original error", err)
	}
	if tr.Stage() != StageFailed {
		t.Errorf("Stage() = %s, want failed", tr.Stage())
	}
	if !errors.Is(tr.Err(), cause) {
		t.Errorf("Err() = %v", tr.Err())
	}
	if err := tr.Advance(ctx, StageDone); err == nil {
		t.Error("expected no transition out of Failed")
	}
}
