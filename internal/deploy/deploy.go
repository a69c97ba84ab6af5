// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package deploy

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/tourism-pipeline/internal/hub"
	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
	"github.com/tomtom215/tourism-pipeline/internal/publish"
)

// Procedure is the metrics label for space deployment.
const Procedure = "deploy"

// CommitSummary is the summary of the deployment commit.
const CommitSummary = "Upload folder using tourism-pipeline"

// Result describes a completed deployment.
type Result struct {
	RepoID    string
	Folder    string // absolute
	Files     []string
	Bytes     int64
	CommitOID string
	CommitURL string
}

// Deployer uploads an application folder to a Space.
type Deployer struct {
	api hub.Committer
	out io.Writer
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithDiagnostics makes the deployer print a listing of the working
// directory to w when the folder is missing.
func WithDiagnostics(w io.Writer) Option {
	return func(d *Deployer) {
		d.out = w
	}
}

// NewDeployer creates a Deployer.
func NewDeployer(api hub.Committer, opts ...Option) *Deployer {
	d := &Deployer{api: api}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy uploads the whole tree below folder to the Space repoID as a
// single commit.
func (d *Deployer) Deploy(ctx context.Context, repoID, folder string) (*Result, error) {
	log := logging.Ctx(ctx)

	abs, err := d.Check(folder)
	if err != nil {
		return nil, err
	}

	log.Info().Str("folder", abs).Str("repo_id", repoID).Msg("Uploading deployment folder")
	commit, paths, err := hub.UploadFolder(ctx, d.api, hub.Space(repoID), abs, CommitSummary)
	if err != nil {
		if paths == nil {
			// Nothing was sent: the tree could not be read or is empty.
			return nil, pipeline.NewDataError(fmt.Sprintf("cannot collect deployment folder %s", abs), err).
				WithDetail("folder", abs)
		}
		for range paths {
			metrics.RecordUpload(Procedure, "failed", 0)
		}
		return nil, &pipeline.UploadError{
			File:       abs,
			RepoID:     repoID,
			StatusCode: hub.StatusCode(err),
			Failure:    publish.Classify(err),
			Cause:      err,
		}
	}

	result := &Result{
		RepoID:    repoID,
		Folder:    abs,
		Files:     paths,
		CommitOID: commit.CommitOID,
		CommitURL: commit.CommitURL,
	}
	for _, p := range paths {
		var size int64
		if info, err := os.Stat(filepath.Join(abs, filepath.FromSlash(p))); err == nil {
			size = info.Size()
		}
		result.Bytes += size
		metrics.RecordUpload(Procedure, "uploaded", size)
	}

	log.Info().
		Str("repo_id", repoID).
		Int("files", len(paths)).
		Int64("bytes", result.Bytes).
		Str("commit", commit.CommitOID).
		Msg("Deployment folder uploaded")
	return result, nil
}

// Check resolves folder to an absolute path and verifies it is a directory.
// On failure the DataError carries the working directory listing, which is
// also printed to the diagnostics writer.
func (d *Deployer) Check(folder string) (string, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", pipeline.NewDataError(fmt.Sprintf("cannot resolve deployment folder %s", folder), err)
	}
	if err := d.checkFolder(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// checkFolder returns a DataError carrying the absolute path, the working
// directory and its listing when abs is not a directory.
func (d *Deployer) checkFolder(abs string) error {
	info, statErr := os.Stat(abs)
	if statErr == nil && info.IsDir() {
		return nil
	}
	if statErr == nil {
		statErr = fmt.Errorf("%s is not a directory", abs)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "(unknown)"
	}
	entries, listErr := ListDir(cwd)

	dataErr := pipeline.NewDataError(fmt.Sprintf("deployment folder not found: %s", abs), statErr).
		WithDetail("folder", abs).
		WithDetail("cwd", cwd)
	if listErr != nil {
		dataErr.WithDetail("listing", "unavailable: "+listErr.Error())
	} else {
		dataErr.WithDetail("listing", joinNames(entries))
	}

	logging.Error().Str("folder", abs).Str("cwd", cwd).Msg("Deployment folder does not exist")
	if d.out != nil && listErr == nil {
		fmt.Fprintf(d.out, "Contents of %s:\n", cwd)
		RenderListing(d.out, entries)
	}
	return dataErr
}

func joinNames(entries []Entry) string {
	if len(entries) == 0 {
		return "(empty)"
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		if e.Dir {
			names[i] += "/"
		}
	}
	return strings.Join(names, ", ")
}
