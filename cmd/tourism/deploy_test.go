// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/tourism-pipeline/internal/config"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
	"github.com/tomtom215/tourism-pipeline/internal/testinfra"
)

func TestDeployFolderMissingFailsInLoadStage(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	cfg := &config.Config{
		Hub: config.HubConfig{Endpoint: fake.URL(), Token: "hf_test", Timeout: time.Second, BreakerFailures: 3},
		Deploy: config.DeployConfig{
			RepoID: "owner/app",
			Folder: filepath.Join(t.TempDir(), "deployment"),
		},
	}

	var out, errOut bytes.Buffer
	cmd := newDeployCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	tracker := pipeline.NewTracker("deploy")
	err := deployFolder(context.Background(), cfg, newHubAPI(cfg), tracker, cmd)
	if pipeline.ExitCode(err) != pipeline.ExitData {
		t.Fatalf("deployFolder() error = %v, want data error", err)
	}
	if tracker.Stage() != pipeline.StageLoad {
		t.Errorf("stage = %s, want %s", tracker.Stage(), pipeline.StageLoad)
	}
	if errOut.Len() == 0 {
		t.Error("no diagnostics printed")
	}
	if n := len(fake.Requests()); n != 0 {
		t.Errorf("hub requests = %d, want 0", n)
	}
}
