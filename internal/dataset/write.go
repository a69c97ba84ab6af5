// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// Split artifact file names, in upload order.
const (
	XTrainFile = "Xtrain.csv"
	XTestFile  = "Xtest.csv"
	YTrainFile = "ytrain.csv"
	YTestFile  = "ytest.csv"
)

// WriteCSV writes f to path, creating parent directories and replacing any
// existing file.
func WriteCSV(f *Frame, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WriteSplit writes the four split files into dir and returns their paths
// in upload order: Xtrain, Xtest, ytrain, ytest.
func WriteSplit(s *SplitResult, dir string) ([]string, error) {
	artifacts := []struct {
		name  string
		frame *Frame
	}{
		{XTrainFile, s.XTrain},
		{XTestFile, s.XTest},
		{YTrainFile, s.YTrain},
		{YTestFile, s.YTest},
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.name)
		if err := WriteCSV(a.frame, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
