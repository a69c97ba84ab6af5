// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package logging holds the process-wide zerolog logger used by the tourism
// commands.
//
//	logging.Init(logging.Config{Level: "info", Format: "console", Timestamp: true})
//	defer logging.Close()
//
//	ctx = logging.WithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Str("repo_id", repoID).Msg("Repository created")
//
// Entries go to stderr; stdout is left for command results. With
// Config.File set, JSON entries are also written to a rotating file
// (lumberjack). Levels and formats come from LOG_LEVEL, LOG_FORMAT,
// LOG_CALLER and LOG_FILE through internal/config.
//
// Always terminate an entry with .Msg() or .Send(); an unterminated event
// is never written.
package logging
