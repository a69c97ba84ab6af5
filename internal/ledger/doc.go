// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package ledger keeps a BadgerDB record of files already published to a
// repository, keyed by repository and path and carrying the content
// SHA-256. The publisher consults it to resume an interrupted batch without
// re-uploading unchanged files. It is only used when UPLOAD_LEDGER_PATH is
// set; without it uploads are plain fail-fast.
package ledger
