// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restore resets the process logger after a test that calls Init.
func restore(t *testing.T) {
	t.Helper()
	prev := Logger()
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		_ = Close()
		SetLogger(prev)
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitFormats(t *testing.T) {
	restore(t)

	tests := []struct {
		format   string
		wantJSON bool
	}{
		{"json", true},
		{"console", false},
		{"", false},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Init(Config{Level: "info", Format: tt.format, Output: &buf})
		Info().Str("repo_id", "owner/data").Msg("Repository created")

		out := buf.String()
		if !strings.Contains(out, "Repository created") {
			t.Errorf("format %q: message missing: %s", tt.format, out)
		}
		if got := strings.Contains(out, `"level":"info"`); got != tt.wantJSON {
			t.Errorf("format %q: JSON = %v, output %s", tt.format, got, out)
		}
	}
}

func TestInitLevelFilters(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	Init(Config{Level: "warning", Format: "json", Output: &buf})

	Debug().Msg("debug entry")
	Info().Msg("info entry")
	Warn().Msg("warn entry")
	Error().Msg("error entry")

	out := buf.String()
	for _, s := range []string{"debug entry", "info entry"} {
		if strings.Contains(out, s) {
			t.Errorf("%q should be filtered: %s", s, out)
		}
	}
	for _, s := range []string{"warn entry", "error entry"} {
		if !strings.Contains(out, s) {
			t.Errorf("%q missing: %s", s, out)
		}
	}
}

func TestInitFileSink(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "tourism.log")
	Init(Config{Level: "info", Format: "console", File: logFile, Output: &buf})
	Info().Str("file", "Xtrain.csv").Msg("Uploaded file")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"file":"Xtrain.csv"`) {
		t.Errorf("log file should hold JSON entries, got: %s", data)
	}
	if !strings.Contains(buf.String(), "Uploaded file") {
		t.Errorf("primary output missing entry: %s", buf.String())
	}
	if err := Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

type failingCloser struct{ bytes.Buffer }

func (*failingCloser) Close() error { return errors.New("disk gone") }

func TestInitReportsPreviousSinkCloseError(t *testing.T) {
	restore(t)

	mu.Lock()
	fileSink = &failingCloser{}
	mu.Unlock()

	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})

	out := buf.String()
	if !strings.Contains(out, "Failed to close previous log file") || !strings.Contains(out, "disk gone") {
		t.Errorf("output = %q", out)
	}
	mu.RLock()
	defer mu.RUnlock()
	if fileSink != nil {
		t.Error("previous sink should be released")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" Error ", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
