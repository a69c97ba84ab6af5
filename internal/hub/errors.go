// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// maxErrorBodySize bounds how much of an error response is kept.
const maxErrorBodySize = 4 * 1024

// Error codes sent by the hub in the X-Error-Code header.
const (
	ErrorCodeRepoNotFound     = "RepoNotFound"
	ErrorCodeRevisionNotFound = "RevisionNotFound"
	ErrorCodeEntryNotFound    = "EntryNotFound"
	ErrorCodeGated            = "GatedRepo"
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Op         string // repo_info, create_repo, commit, download
	URL        string
	StatusCode int
	Code       string // X-Error-Code
	Message    string // X-Error-Message, or the "error" field of a JSON body
	Body       string // bounded excerpt
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	switch {
	case e.Message != "":
		fmt.Fprintf(&b, ": %s", e.Message)
	case e.Body != "":
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

// newStatusError builds a StatusError from a response. The body is consumed
// but not closed.
func newStatusError(op string, resp *http.Response) *StatusError {
	se := &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Code:       resp.Header.Get("X-Error-Code"),
		Message:    resp.Header.Get("X-Error-Message"),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		se.URL = resp.Request.URL.Redacted()
	}

	body := readBodyForError(resp.Body)
	se.Body = strings.TrimSpace(string(body))
	if se.Message == "" {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			se.Message = payload.Error
		}
	}
	return se
}

// readBodyForError reads at most maxErrorBodySize bytes of r.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether err means the repository, revision or file does
// not exist. The hub answers 401 RepoNotFound for repositories the caller
// cannot see, which is treated as not found.
func IsNotFound(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	if se.StatusCode == http.StatusNotFound {
		return true
	}
	return se.StatusCode == http.StatusUnauthorized && se.Code == ErrorCodeRepoNotFound
}

// IsUnauthorized reports whether err is a credential rejection.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized && se.Code != ErrorCodeRepoNotFound
}

// IsForbidden reports whether err is a permission rejection.
func IsForbidden(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusForbidden
}

// IsClientError reports whether err is a 4xx response. These say nothing
// about the health of the service.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 &&
		se.StatusCode != http.StatusTooManyRequests
}
