// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/tourism-pipeline/internal/hub"
	"github.com/tomtom215/tourism-pipeline/internal/ledger"
	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// Procedure is the metrics label for dataset publishing.
const Procedure = "prepare"

// CommitSuffix is appended to per-file commit summaries.
const CommitSuffix = " with tourism-pipeline"

// Upload outcomes recorded per file.
const (
	ResultUploaded = "uploaded"
	ResultSkipped  = "skipped"
	ResultFailed   = "failed"
)

// Repositories is the subset of the hub API used to publish files.
type Repositories interface {
	RepoInfo(ctx context.Context, ref hub.RepoRef) (*hub.RepoInfo, error)
	CreateRepo(ctx context.Context, ref hub.RepoRef, private bool) (string, error)
	hub.Committer
}

// FileResult describes what happened to one file.
type FileResult struct {
	LocalPath  string
	PathInRepo string
	Bytes      int64
	CommitOID  string
	Skipped    bool
}

// Result summarizes a publish run.
type Result struct {
	RepoID  string
	Created bool
	RepoURL string
	Files   []FileResult

	// Recorded is the number of ledger entries for the repository before
	// this run. Zero without a ledger.
	Recorded int
}

// Uploaded returns the number of files actually sent to the hub.
func (r *Result) Uploaded() int {
	n := 0
	for _, f := range r.Files {
		if !f.Skipped {
			n++
		}
	}
	return n
}

// Publisher uploads local files to a dataset repository one at a time.
type Publisher struct {
	api    Repositories
	ledger *ledger.Ledger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLedger skips files already recorded with the same content and
// records every successful upload.
func WithLedger(l *ledger.Ledger) Option {
	return func(p *Publisher) {
		p.ledger = l
	}
}

// NewPublisher creates a Publisher.
func NewPublisher(api Repositories, opts ...Option) *Publisher {
	p := &Publisher{api: api}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureRepo creates the dataset repository as public when it does not
// exist. It reports whether the repository was created.
func (p *Publisher) EnsureRepo(ctx context.Context, ref hub.RepoRef) (bool, string, error) {
	log := logging.Ctx(ctx)

	_, err := p.api.RepoInfo(ctx, ref)
	if err == nil {
		log.Info().Str("repo_id", ref.ID).Msg("Repository already exists, using it")
		return false, "", nil
	}
	if !hub.IsNotFound(err) {
		return false, "", &pipeline.RemoteRepositoryError{RepoID: ref.ID, Op: "inspect", Cause: err}
	}

	log.Info().Str("repo_id", ref.ID).Msg("Repository not found, creating it")
	url, err := p.api.CreateRepo(ctx, ref, false)
	if err != nil {
		return false, "", &pipeline.RemoteRepositoryError{RepoID: ref.ID, Op: "create", Cause: err}
	}
	log.Info().Str("repo_id", ref.ID).Str("url", url).Msg("Repository created")
	return true, url, nil
}

// Publish ensures the dataset repository exists and uploads each file
// under its base name. The first failure stops the batch; files after it
// are not attempted.
func (p *Publisher) Publish(ctx context.Context, repoID string, files []string) (*Result, error) {
	ref := hub.Dataset(repoID)
	result := &Result{RepoID: repoID}

	created, url, err := p.EnsureRepo(ctx, ref)
	if err != nil {
		return result, err
	}
	result.Created = created
	result.RepoURL = url

	if p.ledger != nil {
		entries, err := p.ledger.Entries(ctx, repoID)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("repo_id", repoID).Msg("Failed to read upload ledger")
		} else {
			result.Recorded = len(entries)
			logging.Ctx(ctx).Debug().Str("repo_id", repoID).Int("recorded", len(entries)).Msg("Upload ledger loaded")
		}
	}

	for _, file := range files {
		fr, err := p.publishFile(ctx, ref, file)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, *fr)
	}

	logging.Ctx(ctx).Info().
		Str("repo_id", repoID).
		Int("uploaded", result.Uploaded()).
		Int("skipped", len(result.Files)-result.Uploaded()).
		Msg("All files uploaded successfully")
	return result, nil
}

func (p *Publisher) publishFile(ctx context.Context, ref hub.RepoRef, file string) (*FileResult, error) {
	log := logging.Ctx(ctx)
	pathInRepo := filepath.Base(file)
	fr := &FileResult{LocalPath: file, PathInRepo: pathInRepo}

	info, err := os.Stat(file)
	if err != nil {
		metrics.RecordUpload(Procedure, ResultFailed, 0)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pipeline.NewDataError(
				fmt.Sprintf("file missing: %s; ensure the preparation step created it", file), err).
				WithDetail("file", file)
		}
		return nil, pipeline.NewDataError(fmt.Sprintf("cannot read %s", file), err).WithDetail("file", file)
	}
	fr.Bytes = info.Size()

	var sum string
	if p.ledger != nil {
		sum, _, err = ledger.HashFile(file)
		if err != nil {
			return nil, pipeline.NewDataError(fmt.Sprintf("cannot hash %s", file), err).WithDetail("file", file)
		}
		done, err := p.ledger.Published(ctx, ref.ID, pathInRepo, sum)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Upload ledger lookup failed, uploading anyway")
		} else if done {
			log.Info().Str("file", file).Str("path_in_repo", pathInRepo).Msg("File unchanged since last upload, skipping")
			metrics.RecordUpload(Procedure, ResultSkipped, 0)
			fr.Skipped = true
			return fr, nil
		}
	}

	log.Info().Str("file", file).Str("path_in_repo", pathInRepo).Msg("Uploading file")
	commit, err := hub.UploadFile(ctx, p.api, ref, file, pathInRepo, "Upload "+pathInRepo+CommitSuffix)
	if err != nil {
		metrics.RecordUpload(Procedure, ResultFailed, 0)
		return nil, newUploadError(file, ref.ID, err)
	}
	fr.CommitOID = commit.CommitOID
	metrics.RecordUpload(Procedure, ResultUploaded, fr.Bytes)
	log.Info().Str("file", file).Str("commit", commit.CommitOID).Msg("Uploaded file")

	if p.ledger != nil {
		entry := ledger.Entry{
			RepoID:     ref.ID,
			Path:       pathInRepo,
			SHA256:     sum,
			Size:       fr.Bytes,
			CommitOID:  commit.CommitOID,
			UploadedAt: time.Now().UTC(),
		}
		if err := p.ledger.Record(ctx, entry); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to record upload in ledger")
		}
	}
	return fr, nil
}

func newUploadError(file, repoID string, err error) *pipeline.UploadError {
	return &pipeline.UploadError{
		File:       file,
		RepoID:     repoID,
		StatusCode: hub.StatusCode(err),
		Failure:    Classify(err),
		Cause:      err,
	}
}

// Classify maps a hub error to an upload failure class. The status code
// decides: a 401 is an authorization failure even when the hub tags it
// RepoNotFound.
func Classify(err error) pipeline.UploadFailure {
	switch {
	case hub.StatusCode(err) == http.StatusUnauthorized:
		return pipeline.UploadFailureUnauthorized
	case hub.IsNotFound(err):
		return pipeline.UploadFailureNotFound
	case hub.IsForbidden(err):
		return pipeline.UploadFailureForbidden
	default:
		return pipeline.UploadFailureOther
	}
}
