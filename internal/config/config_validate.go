// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
	"github.com/tomtom215/tourism-pipeline/internal/validation"
)

// Validate checks that required configuration is present and valid.
// Failures are returned as *pipeline.ConfigurationError.
func (c *Config) Validate() error {
	if c.Hub.Token == "" {
		return pipeline.NewConfigurationError("HF_TOKEN is not set; export an access token with write permission", nil)
	}

	if se := validation.ValidateStruct(c); se != nil {
		return pipeline.NewConfigurationError("invalid configuration", se)
	}

	if err := c.validateHub(); err != nil {
		return err
	}

	return c.validatePrepare()
}

// validateHub validates the endpoint beyond what struct tags can express.
func (c *Config) validateHub() error {
	if err := validateHTTPURL(c.Hub.Endpoint, "HF_ENDPOINT"); err != nil {
		return pipeline.NewConfigurationError("invalid hub endpoint", err)
	}
	if strings.ContainsAny(c.Hub.Token, " \t\r\n") {
		return pipeline.NewConfigurationError("HF_TOKEN must not contain whitespace", nil)
	}
	return nil
}

// validatePrepare validates cross-field constraints of the dataset publisher.
func (c *Config) validatePrepare() error {
	for _, col := range c.Prepare.DropColumns {
		if col == c.Prepare.LabelColumn {
			return pipeline.NewConfigurationError(
				fmt.Sprintf("DROP_COLUMNS must not contain the label column %q", c.Prepare.LabelColumn), nil)
		}
	}
	return nil
}

// validateHTTPURL accepts only a bare http(s) base address: scheme and
// host, optionally a trailing slash.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s: %w", fieldName, err)
	}
	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s: scheme must be http or https, got %q", fieldName, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s: host is required", fieldName)
	case strings.Trim(u.Path, "/") != "":
		return fmt.Errorf("%s: expected a base URL without path, got %q", fieldName, u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("%s: query and fragment are not allowed", fieldName)
	}
	return nil
}
