// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the prepare and deploy commands.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: the identifiers and paths the pipeline has always used
//  2. Environment Variables: override any setting (a .env file is read first)
//
// Config is immutable after Load() and passed explicitly into each procedure.
type Config struct {
	Hub     HubConfig     `koanf:"hub"`
	Prepare PrepareConfig `koanf:"prepare"`
	Deploy  DeployConfig  `koanf:"deploy"`
	Metrics MetricsConfig `koanf:"metrics"`
	Logging LoggingConfig `koanf:"logging"`
}

// HubConfig holds settings for the hosting platform API.
type HubConfig struct {
	Token             string        `koanf:"token" env:"HF_TOKEN" validate:"required"`
	Endpoint          string        `koanf:"endpoint" env:"HF_ENDPOINT" validate:"required,url"`
	Revision          string        `koanf:"revision" env:"HUB_REVISION" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" env:"HUB_TIMEOUT" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" env:"HUB_REQUESTS_PER_SECOND" validate:"gte=0"`
	BreakerFailures   uint32        `koanf:"breaker_failures" env:"HUB_BREAKER_FAILURES" validate:"gte=1"`
}

// PrepareConfig holds settings for the dataset publisher.
type PrepareConfig struct {
	RepoID      string   `koanf:"repo_id" env:"HF_DATASET_REPO_ID" validate:"required,repoid"`
	RemoteFile  string   `koanf:"remote_file" env:"DATASET_FILE" validate:"required"`
	LocalPath   string   `koanf:"local_path" env:"LOCAL_DATASET_PATH" validate:"required"`
	CleanedPath string   `koanf:"cleaned_path" env:"CLEANED_DATASET_PATH" validate:"required"`
	SplitDir    string   `koanf:"split_dir" env:"SPLIT_DIR" validate:"required"`
	LabelColumn string   `koanf:"label_column" env:"LABEL_COLUMN" validate:"required"`
	DropColumns []string `koanf:"drop_columns" env:"DROP_COLUMNS"`
	TestSize    float64  `koanf:"test_size" env:"TEST_SIZE" validate:"gt=0,lt=1"`
	Seed        int64    `koanf:"seed" env:"SPLIT_SEED"`
	Stratify    bool     `koanf:"stratify" env:"STRATIFY"`
	LedgerPath  string   `koanf:"ledger_path" env:"UPLOAD_LEDGER_PATH"`
}

// RemoteURI returns the hf:// location of the raw dataset.
func (p *PrepareConfig) RemoteURI() string {
	return fmt.Sprintf("hf://datasets/%s/%s", p.RepoID, p.RemoteFile)
}

// DeployConfig holds settings for the Space deployer.
type DeployConfig struct {
	RepoID string `koanf:"repo_id" env:"HF_REPO_ID" validate:"required,repoid"`
	Folder string `koanf:"folder" env:"DEPLOY_FOLDER" validate:"required"`
}

// MetricsConfig holds settings for the run metrics export.
type MetricsConfig struct {
	// Textfile is the path of a Prometheus textfile-collector file written at
	// exit. Empty disables the export.
	Textfile string `koanf:"textfile" env:"METRICS_TEXTFILE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
	Caller bool   `koanf:"caller" env:"LOG_CALLER"`
	File   string `koanf:"file" env:"LOG_FILE"`
}
