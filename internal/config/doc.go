// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

/*
Package config provides configuration loading for the tourism pipeline tools.

Configuration is layered with Koanf v2:
  - Defaults: the repository identifiers and paths the pipeline has always used
  - Environment: any setting below; a .env file in the working directory is
    read first and never overrides variables already exported

There is deliberately no configuration file. HF_TOKEN in particular is only
ever taken from the environment.

# Configuration Structure

  - HubConfig: access token, endpoint, revision, timeout, rate and breaker
  - PrepareConfig: dataset repository, raw and cleaned paths, split settings
  - DeployConfig: Space repository and deployment folder
  - MetricsConfig: optional Prometheus textfile export
  - LoggingConfig: zerolog level, format, caller and rotating file

# Environment Variables

Hub (HubConfig):
  - HF_TOKEN: access token (required)
  - HF_ENDPOINT: API base URL (default: https://huggingface.co)
  - HUB_REVISION: target branch (default: main)
  - HUB_TIMEOUT: per-request timeout (default: 60s)
  - HUB_REQUESTS_PER_SECOND: client rate limit, 0 disables (default: 5)
  - HUB_BREAKER_FAILURES: consecutive failures before the breaker opens (default: 3)

Dataset publisher (PrepareConfig):
  - HF_DATASET_REPO_ID: dataset repository (default: AshwiniBokade/Tourism-Project-Asgnmt)
  - DATASET_FILE: raw file name inside the repository (default: tourism.csv)
  - LOCAL_DATASET_PATH: local fallback (default: TourismProject/data/tourism.csv)
  - CLEANED_DATASET_PATH: cleaned output (default: TourismProject/data/tourism_cleaned.csv)
  - SPLIT_DIR: directory for Xtrain.csv and friends (default: .)
  - LABEL_COLUMN: target column (default: ProdTaken)
  - DROP_COLUMNS: comma-separated identifier columns (default: CustomerID,Unnamed: 0)
  - TEST_SIZE: test fraction (default: 0.2)
  - SPLIT_SEED: shuffle seed (default: 42)
  - STRATIFY: preserve label proportions (default: false)
  - UPLOAD_LEDGER_PATH: badger directory enabling resumable uploads (default: disabled)

Space deployer (DeployConfig):
  - HF_REPO_ID: Space repository (default: AshwiniBokade/Tourism-Project-Asgnmt)
  - DEPLOY_FOLDER: folder to upload (default: TourismProject/deployment)

Ambient:
  - METRICS_TEXTFILE, LOG_LEVEL, LOG_FORMAT, LOG_CALLER, LOG_FILE

# Usage

	cfg, err := config.Load()
	if err != nil {
	    // err is a *pipeline.ConfigurationError
	}

Validation uses go-playground/validator struct tags through the validation
package, followed by cross-field checks. Every failure is reported as a
*pipeline.ConfigurationError so callers map it to the configuration exit code.
*/
package config
