// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// RemoteOpener opens a remote file by URI. *hub.Client implements it.
type RemoteOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Source tells which location served a dataset.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Loader reads the raw dataset, preferring the remote copy.
type Loader struct {
	remote RemoteOpener
}

// NewLoader creates a Loader. A nil remote goes straight to the local file.
func NewLoader(remote RemoteOpener) *Loader {
	return &Loader{remote: remote}
}

// Load reads remoteURI, falling back once to localPath on any failure. When
// neither can be read the error is a *pipeline.DataError naming both.
func (l *Loader) Load(ctx context.Context, remoteURI, localPath string) (*Frame, Source, error) {
	logger := logging.Ctx(ctx)

	var remoteErr error
	if l.remote != nil && remoteURI != "" {
		frame, err := l.loadRemote(ctx, remoteURI)
		if err == nil {
			logger.Info().Str("uri", remoteURI).Int("rows", frame.Nrow()).Msg("Loaded dataset from remote")
			recordLoad(SourceRemote, frame)
			return frame, SourceRemote, nil
		}
		remoteErr = err
		logger.Warn().Err(err).Str("uri", remoteURI).Msg("Could not load dataset from remote, trying local copy")
	}

	frame, err := loadLocal(localPath)
	if err != nil {
		derr := pipeline.NewDataError(
			fmt.Sprintf("no dataset found at %s and local file %s is unavailable", remoteURI, localPath), err).
			WithDetail("remote", remoteURI).
			WithDetail("local", localPath)
		if remoteErr != nil {
			derr = derr.WithDetail("remote_error", remoteErr.Error())
		}
		return nil, "", derr
	}

	logger.Info().Str("path", localPath).Int("rows", frame.Nrow()).Msg("Loaded dataset from local file")
	recordLoad(SourceLocal, frame)
	return frame, SourceLocal, nil
}

func (l *Loader) loadRemote(ctx context.Context, uri string) (*Frame, error) {
	rc, err := l.remote.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadCSV(rc)
}

func loadLocal(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	frame, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

func recordLoad(source Source, frame *Frame) {
	metrics.DatasetSource.WithLabelValues(string(source)).Inc()
	metrics.DatasetRows.WithLabelValues("raw").Set(float64(frame.Nrow()))
}

