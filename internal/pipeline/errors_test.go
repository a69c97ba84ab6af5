// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"configuration", NewConfigurationError("HF_TOKEN not set", nil), ExitConfiguration},
		{"data", NewDataError("label column missing", nil), ExitData},
		{"wrapped data", fmt.Errorf("clean: %w", NewDataError("x", cause)), ExitData},
		{"repository", &RemoteRepositoryError{RepoID: "a/b", Op: "create", Cause: cause}, ExitRepository},
		{"upload", &UploadError{File: "Xtrain.csv", RepoID: "a/b", Cause: cause}, ExitUpload},
		{"other", cause, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUploadErrorMessage(t *testing.T) {
	t.Parallel()

	err := &UploadError{
		File:       "Xtest.csv",
		RepoID:     "owner/data",
		StatusCode: 401,
		Failure:    UploadFailureUnauthorized,
		Cause:      errors.New("invalid credentials"),
	}

	msg := err.Error()
	for _, want := range []string{"Xtest.csv", "owner/data", "HTTP 401", "unauthorized", "invalid credentials"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !strings.Contains(err.Guidance(), "HF_TOKEN") {
		t.Errorf("Guidance() = %q, want token hint", err.Guidance())
	}
	if !errors.Is(err, err.Cause) {
		t.Error("expected UploadError to unwrap to its cause")
	}
}

func TestUploadFailureString(t *testing.T) {
	t.Parallel()

	tests := map[UploadFailure]string{
		UploadFailureOther:        "other",
		UploadFailureUnauthorized: "unauthorized",
		UploadFailureForbidden:    "forbidden",
		UploadFailureNotFound:     "not-found",
	}
	for failure, want := range tests {
		if got := failure.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", failure, got, want)
		}
	}
}

func TestDataErrorDetails(t *testing.T) {
	t.Parallel()

	err := NewDataError("deployment folder not found", nil).
		WithDetail("path", "/work/TourismProject/deployment").
		WithDetail("cwd", "/work")

	if len(err.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(err.Details))
	}
	if err.Details[0].Key != "path" || err.Details[1].Value != "/work" {
		t.Errorf("unexpected details: %+v", err.Details)
	}
	if err.Error() != "deployment folder not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
