// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package pipeline holds what both procedures share at the top level: the
// stage tracker (Init → Load → Process → Publish → Done, or Failed) and the
// typed error kinds the command maps to exit codes.
//
// Error kinds:
//   - ConfigurationError: missing token, invalid settings (exit 2)
//   - DataError: missing label column, dataset or artifact (exit 3)
//   - RemoteRepositoryError: repository lookup or creation failed (exit 4)
//   - UploadError: a file or folder upload was rejected (exit 5)
//
// Any other error exits with 1.
package pipeline
