// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/tourism-pipeline/internal/config"
	"github.com/tomtom215/tourism-pipeline/internal/dataset"
	"github.com/tomtom215/tourism-pipeline/internal/hub"
	"github.com/tomtom215/tourism-pipeline/internal/ledger"
	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
	"github.com/tomtom215/tourism-pipeline/internal/publish"
)

func newPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Clean and split the tourism dataset and upload the splits",
		Long: `prepare reads the tourism dataset from the dataset repository (falling
back to LOCAL_DATASET_PATH), drops identifier columns and unlabeled rows,
fills gaps with the column median or mode, writes the cleaned dataset and
the Xtrain/Xtest/ytrain/ytest splits, then uploads the four split files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcedure(cmd.Context(), "prepare", func(ctx context.Context, cfg *config.Config, api hub.API, tracker *pipeline.Tracker) error {
				return prepare(ctx, cfg, api, tracker, cmd)
			})
		},
	}
}

func prepare(ctx context.Context, cfg *config.Config, api hub.API, tracker *pipeline.Tracker, cmd *cobra.Command) error {
	log := logging.Ctx(ctx)
	pc := cfg.Prepare

	if err := tracker.Advance(ctx, pipeline.StageLoad); err != nil {
		return err
	}
	frame, source, err := dataset.NewLoader(api).Load(ctx, pc.RemoteURI(), pc.LocalPath)
	if err != nil {
		return err
	}
	log.Info().Str("source", string(source)).Int("rows", frame.Nrow()).Int("columns", frame.Ncol()).Msg("Dataset loaded")

	if err := tracker.Advance(ctx, pipeline.StageProcess); err != nil {
		return err
	}
	cleaned, report, err := dataset.Clean(frame, dataset.CleanOptions{
		LabelColumn: pc.LabelColumn,
		DropColumns: pc.DropColumns,
	})
	if err != nil {
		return err
	}
	log.Info().
		Strs("dropped_columns", report.DroppedColumns).
		Int("dropped_rows", report.DroppedRows).
		Int("imputed_cells", report.Imputed()).
		Int("rows", report.Rows).
		Msg("Dataset cleaned")
	for _, imp := range report.Imputations {
		log.Debug().Str("column", imp.Column).Str("strategy", imp.Strategy).Str("value", imp.Value).Int("count", imp.Count).Msg("Filled missing values")
	}

	if err := dataset.WriteCSV(cleaned, pc.CleanedPath); err != nil {
		return err
	}
	log.Info().Str("path", pc.CleanedPath).Msg("Cleaned dataset saved")

	split, err := dataset.Split(cleaned, dataset.SplitOptions{
		LabelColumn: pc.LabelColumn,
		TestSize:    pc.TestSize,
		Seed:        pc.Seed,
		Stratify:    pc.Stratify,
	})
	if err != nil {
		return err
	}
	files, err := dataset.WriteSplit(split, pc.SplitDir)
	if err != nil {
		return err
	}
	log.Info().
		Int("train_rows", len(split.TrainIndex)).
		Int("test_rows", len(split.TestIndex)).
		Bool("stratified", split.Stratified).
		Str("dir", pc.SplitDir).
		Msg("Dataset split saved")

	if err := tracker.Advance(ctx, pipeline.StagePublish); err != nil {
		return err
	}
	var opts []publish.Option
	if pc.LedgerPath != "" {
		l, err := ledger.Open(pc.LedgerPath)
		if err != nil {
			return fmt.Errorf("upload ledger: %w", err)
		}
		defer func() {
			if err := l.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close upload ledger")
			}
		}()
		opts = append(opts, publish.WithLedger(l))
	}

	result, err := publish.NewPublisher(api, opts...).Publish(ctx, pc.RepoID, files)
	if err != nil {
		return err
	}
	cmd.Printf("Published %d file(s) to dataset %s (%d unchanged)\n",
		result.Uploaded(), result.RepoID, len(result.Files)-result.Uploaded())
	return nil
}
