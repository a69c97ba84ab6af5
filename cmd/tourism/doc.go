// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

/*
Command tourism runs the operational procedures of the tourism package
purchase prediction project.

# Procedures

	tourism prepare   load, clean, split and publish the dataset
	tourism deploy    upload the application folder to the Space
	tourism version   print build information

Each procedure moves through the stages Init, Load, Process, Publish and
Done, or Failed on the first error. There are no retries; an upload batch
stops at the first rejected file.

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables (a .env file in the working directory is loaded first)
  - Built-in defaults

HF_TOKEN is required by prepare and deploy. Without it the command exits
with status 2 before touching the network or the file system.

Commonly set variables:
  - HF_DATASET_REPO_ID: dataset repository for prepare
  - HF_REPO_ID: Space for deploy
  - LOCAL_DATASET_PATH: fallback dataset file
  - DEPLOY_FOLDER: folder uploaded by deploy
  - UPLOAD_LEDGER_PATH: enables skipping already published files
  - METRICS_TEXTFILE: Prometheus textfile written at exit

# Exit Status

	0  success
	1  unexpected failure
	2  configuration error
	3  data error (missing input, missing label column, missing folder)
	4  remote repository could not be inspected or created
	5  upload rejected

# Signal Handling

SIGINT and SIGTERM cancel the run context; in-flight hub requests are
aborted and the procedure fails.
*/
package main
