// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tourism-pipeline/internal/config"
	"github.com/tomtom215/tourism-pipeline/internal/deploy"
	"github.com/tomtom215/tourism-pipeline/internal/hub"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Upload the deployment folder to the hosting Space",
		Long: `deploy uploads every file below DEPLOY_FOLDER to the Space named by
HF_REPO_ID as a single commit. .git and .cache/huggingface are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcedure(cmd.Context(), "deploy", func(ctx context.Context, cfg *config.Config, api hub.API, tracker *pipeline.Tracker) error {
				return deployFolder(ctx, cfg, api, tracker, cmd)
			})
		},
	}
}

func deployFolder(ctx context.Context, cfg *config.Config, api hub.API, tracker *pipeline.Tracker, cmd *cobra.Command) error {
	deployer := deploy.NewDeployer(api, deploy.WithDiagnostics(cmd.ErrOrStderr()))

	if err := tracker.Advance(ctx, pipeline.StageLoad); err != nil {
		return err
	}
	folder, err := deployer.Check(cfg.Deploy.Folder)
	if err != nil {
		return err
	}

	if err := tracker.Advance(ctx, pipeline.StagePublish); err != nil {
		return err
	}
	result, err := deployer.Deploy(ctx, cfg.Deploy.RepoID, folder)
	if err != nil {
		return err
	}
	cmd.Printf("Deployed %d file(s) from %s to Space %s (commit %s)\n",
		len(result.Files), result.Folder, result.RepoID, result.CommitOID)
	return nil
}
