// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return pipeline.ExitCode(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "tourism",
		Short: "Prepare and publish the tourism dataset, and deploy the prediction Space",
		Long: `tourism runs the operational steps of the tourism package purchase
prediction project.

  prepare  load, clean and split the tourism dataset and upload the splits
           to the dataset repository
  deploy   upload the application folder to the hosting Space

Settings come from environment variables (a .env file is honoured).
HF_TOKEN is always required.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newPrepareCmd(),
		newDeployCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("tourism %s (commit %s)\n", version, commit)
		},
	}
}
