// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package validation provides struct validation using go-playground/validator v10.
//
// It exposes a thread-safe singleton validator that reports fields by their
// `env` struct tag and registers a `repoid` rule for hub repository ids.
//
//	type HubConfig struct {
//	    Token    string `env:"HF_TOKEN" validate:"required"`
//	    Endpoint string `env:"HF_ENDPOINT" validate:"required,url"`
//	}
//
//	if err := validation.ValidateStruct(&cfg.Hub); err != nil {
//	    return err // "HF_TOKEN is required"
//	}
package validation
