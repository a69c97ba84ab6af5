// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package pipeline

import (
	"errors"
	"fmt"
)

// ConfigurationError reports missing or invalid configuration, such as an
// absent HF_TOKEN.
type ConfigurationError struct {
	Message string
	Cause   error
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// DataError reports a problem with input data or local files: a missing label
// column, a dataset absent at both locations, a missing artifact.
type DataError struct {
	Message string
	Cause   error

	// Details carries optional diagnostics (ordered key/value pairs) that the
	// command layer prints alongside the message.
	Details []Detail
}

// Detail is one diagnostic line attached to a DataError.
type Detail struct {
	Key   string
	Value string
}

// NewDataError creates a data error.
func NewDataError(message string, cause error) *DataError {
	return &DataError{Message: message, Cause: cause}
}

// WithDetail appends a diagnostic line and returns the error.
func (e *DataError) WithDetail(key, value string) *DataError {
	e.Details = append(e.Details, Detail{Key: key, Value: value})
	return e
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *DataError) Unwrap() error {
	return e.Cause
}

// RemoteRepositoryError reports a failure to inspect or create a remote
// repository.
type RemoteRepositoryError struct {
	RepoID string
	Op     string
	Cause  error
}

// Error implements the error interface.
func (e *RemoteRepositoryError) Error() string {
	return fmt.Sprintf("%s repository %q failed: %v", e.Op, e.RepoID, e.Cause)
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *RemoteRepositoryError) Unwrap() error {
	return e.Cause
}

// UploadFailure classifies why an upload was rejected.
type UploadFailure int

const (
	UploadFailureOther UploadFailure = iota
	UploadFailureUnauthorized
	UploadFailureForbidden
	UploadFailureNotFound
)

// String returns the failure classification for logs.
func (f UploadFailure) String() string {
	switch f {
	case UploadFailureUnauthorized:
		return "unauthorized"
	case UploadFailureForbidden:
		return "forbidden"
	case UploadFailureNotFound:
		return "not-found"
	default:
		return "other"
	}
}

// UploadError reports a failed file or folder upload. Uploads are fail-fast:
// files after File in the batch were not attempted.
type UploadError struct {
	File       string
	RepoID     string
	StatusCode int
	Failure    UploadFailure
	Cause      error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	msg := fmt.Sprintf("upload of %s to %s failed", e.File, e.RepoID)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d, %s)", e.StatusCode, e.Failure)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error unwrapping.
func (e *UploadError) Unwrap() error {
	return e.Cause
}

// Guidance returns an operator-facing hint for the failure class.
func (e *UploadError) Guidance() string {
	switch e.Failure {
	case UploadFailureUnauthorized:
		return "401 Unauthorized: check HF_TOKEN and token scopes (needs write access)"
	case UploadFailureForbidden:
		return "403 Forbidden: the token cannot write to this repository"
	case UploadFailureNotFound:
		return "404 Not Found: repository does not exist or repo id is incorrect"
	default:
		return ""
	}
}

// Exit codes returned by the tourism command.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitData          = 3
	ExitRepository    = 4
	ExitUpload        = 5
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var cfgErr *ConfigurationError
	var dataErr *DataError
	var repoErr *RemoteRepositoryError
	var uploadErr *UploadError

	switch {
	case errors.As(err, &cfgErr):
		return ExitConfiguration
	case errors.As(err, &dataErr):
		return ExitData
	case errors.As(err, &repoErr):
		return ExitRepository
	case errors.As(err, &uploadErr):
		return ExitUpload
	default:
		return ExitFailure
	}
}
