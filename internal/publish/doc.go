// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package publish uploads prepared dataset artifacts to a hub dataset
// repository.
//
// The repository is created as a public dataset when it does not exist.
// Files are then uploaded one commit per file, in the order given, under
// their base names. The first failed upload aborts the batch with a
// *pipeline.UploadError whose Failure field classifies the rejection.
//
// With WithLedger, files whose content hash was already recorded for the
// repository are skipped, so an interrupted batch can be re-run.
package publish
