// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package deploy uploads a local application folder to a hub Space as a
// single commit. When the folder is missing the returned *pipeline.DataError
// carries the resolved path, the working directory and its listing.
package deploy
