// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// DotEnvFile is read before environment variables are applied. Variables
// already present in the process environment win.
const DotEnvFile = ".env"

// DefaultRepoID is the repository used for both the dataset and the Space
// unless overridden.
const DefaultRepoID = "AshwiniBokade/Tourism-Project-Asgnmt"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Hub: HubConfig{
			Token:             "", // required, HF_TOKEN
			Endpoint:          "https://huggingface.co",
			Revision:          "main",
			Timeout:           60 * time.Second,
			RequestsPerSecond: 5,
			BreakerFailures:   3,
		},
		Prepare: PrepareConfig{
			RepoID:      DefaultRepoID,
			RemoteFile:  "tourism.csv",
			LocalPath:   "TourismProject/data/tourism.csv",
			CleanedPath: "TourismProject/data/tourism_cleaned.csv",
			SplitDir:    ".",
			LabelColumn: "ProdTaken",
			DropColumns: []string{"CustomerID", "Unnamed: 0"},
			TestSize:    0.2,
			Seed:        42,
			Stratify:    false,
			LedgerPath:  "", // resume disabled: uploads are fail-fast
		},
		Deploy: DeployConfig{
			RepoID: DefaultRepoID,
			Folder: "TourismProject/deployment",
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults
//  2. Environment Variables: override any setting (.env file applied first)
//
// There is no config file layer: the access token and every override come
// from the process environment.
//
// Every failure is returned as a *pipeline.ConfigurationError.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, pipeline.NewConfigurationError("failed to read "+DotEnvFile, err)
	}

	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, pipeline.NewConfigurationError("failed to load defaults", err)
	}

	// Layer 2: environment variables (highest priority)
	// HF_TOKEN -> hub.token, SPLIT_SEED -> prepare.seed, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, pipeline.NewConfigurationError("failed to load environment variables", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, pipeline.NewConfigurationError("failed to process slice fields", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, pipeline.NewConfigurationError("failed to unmarshal configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"prepare.drop_columns",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			continue // already a slice (defaults)
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Hub
	"hf_token":                "hub.token",
	"hf_endpoint":             "hub.endpoint",
	"hub_revision":            "hub.revision",
	"hub_timeout":             "hub.timeout",
	"hub_requests_per_second": "hub.requests_per_second",
	"hub_breaker_failures":    "hub.breaker_failures",

	// Dataset publisher
	"hf_dataset_repo_id":   "prepare.repo_id",
	"dataset_file":         "prepare.remote_file",
	"local_dataset_path":   "prepare.local_path",
	"cleaned_dataset_path": "prepare.cleaned_path",
	"split_dir":            "prepare.split_dir",
	"label_column":         "prepare.label_column",
	"drop_columns":         "prepare.drop_columns",
	"test_size":            "prepare.test_size",
	"split_seed":           "prepare.seed",
	"stratify":             "prepare.stratify",
	"upload_ledger_path":   "prepare.ledger_path",

	// Space deployer
	"hf_repo_id":    "deploy.repo_id",
	"deploy_folder": "deploy.folder",

	// Metrics
	"metrics_textfile": "metrics.textfile",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_file":   "logging.file",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never pollute the configuration.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
