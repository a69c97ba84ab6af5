// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
)

// Stage is a step of a procedure run.
type Stage int

const (
	StageInit Stage = iota
	StageLoad
	StageProcess
	StagePublish
	StageDone
	StageFailed
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageLoad:
		return "load"
	case StageProcess:
		return "process"
	case StagePublish:
		return "publish"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is allowed.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// Transition records one stage change.
type Transition struct {
	From Stage
	To   Stage
	At   time.Time
}

// Tracker follows a procedure through Init → Load → Process → Publish → Done.
// Stages only move forward; any stage may move to Failed. Not safe for
// concurrent use.
type Tracker struct {
	procedure string
	current   Stage
	started   time.Time
	history   []Transition
	err       error
	now       func() time.Time
}

// NewTracker creates a tracker in the Init stage.
func NewTracker(procedure string) *Tracker {
	t := &Tracker{
		procedure: procedure,
		current:   StageInit,
		now:       time.Now,
	}
	t.started = t.now()
	return t
}

// Stage returns the current stage.
func (t *Tracker) Stage() Stage {
	return t.current
}

// Err returns the error that failed the run, if any.
func (t *Tracker) Err() error {
	return t.err
}

// History returns the recorded transitions.
func (t *Tracker) History() []Transition {
	out := make([]Transition, len(t.history))
	copy(out, t.history)
	return out
}

// Advance moves to the next stage. Skipping stages is allowed (the deployer
// has no Process stage); moving backwards or out of a terminal stage is not.
func (t *Tracker) Advance(ctx context.Context, next Stage) error {
	if t.current.Terminal() {
		return fmt.Errorf("%s: cannot leave terminal stage %s", t.procedure, t.current)
	}
	if next <= t.current || next == StageFailed {
		return fmt.Errorf("%s: invalid transition %s -> %s", t.procedure, t.current, next)
	}
	t.record(next)
	logging.Ctx(ctx).Debug().
		Str("procedure", t.procedure).
		Str("stage", next.String()).
		Msg("Stage started")
	return nil
}

// Fail moves the run to Failed and returns err unchanged so callers can write
// `return tracker.Fail(ctx, err)`.
func (t *Tracker) Fail(ctx context.Context, err error) error {
	if t.current.Terminal() {
		return err
	}
	from := t.current
	t.err = err
	t.record(StageFailed)
	logging.Ctx(ctx).Error().
		Err(err).
		Str("procedure", t.procedure).
		Str("stage", from.String()).
		Msg("Procedure failed")
	return err
}

// Finish moves the run to Done.
func (t *Tracker) Finish(ctx context.Context) error {
	if err := t.Advance(ctx, StageDone); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Str("procedure", t.procedure).
		Dur("elapsed", t.now().Sub(t.started)).
		Msg("Procedure completed")
	return nil
}

func (t *Tracker) record(next Stage) {
	t.history = append(t.history, Transition{From: t.current, To: next, At: t.now()})
	t.current = next
}
