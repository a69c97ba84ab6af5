// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type testConfig struct {
	Token    string  `env:"HF_TOKEN" validate:"required"`
	Endpoint string  `env:"HF_ENDPOINT" validate:"required,url"`
	RepoID   string  `env:"HF_REPO_ID" validate:"required,repoid"`
	TestSize float64 `env:"TEST_SIZE" validate:"gt=0,lt=1"`
	Format   string  `validate:"oneof=json console"`
	Name     string  `env:"-" validate:"max=5"`
}

func validTestConfig() testConfig {
	return testConfig{
		Token:    "hf_xxx",
		Endpoint: "https://huggingface.co",
		RepoID:   "owner/dataset",
		TestSize: 0.2,
		Format:   "json",
		Name:     "ok",
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	cfg := validTestConfig()
	if err := ValidateStruct(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*testConfig)
		wantField string
		wantMsg   string
	}{
		{"missing token", func(c *testConfig) { c.Token = "" }, "HF_TOKEN", "HF_TOKEN is required"},
		{"bad endpoint", func(c *testConfig) { c.Endpoint = "not a url" }, "HF_ENDPOINT", "must be a valid URL"},
		{"bad repo id", func(c *testConfig) { c.RepoID = "owner/name/extra" }, "HF_REPO_ID", "owner/name"},
		{"test size too large", func(c *testConfig) { c.TestSize = 1 }, "TEST_SIZE", "less than 1"},
		{"test size zero", func(c *testConfig) { c.TestSize = 0 }, "TEST_SIZE", "greater than 0"},
		{"bad format", func(c *testConfig) { c.Format = "xml" }, "Format", "one of: json console"},
		{"name too long", func(c *testConfig) { c.Name = "toolong" }, "Name", "at most 5 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validTestConfig()
			tt.mutate(&cfg)

			err := ValidateStruct(&cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("expected 1 field error, got %d: %v", len(err.Errors()), err)
			}
			fe := err.Errors()[0]
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := validTestConfig()
	cfg.Token = ""
	cfg.RepoID = ""

	err := ValidateStruct(&cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

func TestRepoIDPattern(t *testing.T) {
	t.Parallel()

	valid := []string{"owner/name", "AshwiniBokade/Tourism-Project-Asgnmt", "dataset", "org.ai/data_v2"}
	invalid := []string{"", "/name", "owner/", "a/b/c", "owner/na me"}

	for _, id := range valid {
		if !repoIDPattern.MatchString(id) {
			t.Errorf("expected %q to be valid", id)
		}
	}
	for _, id := range invalid {
		if repoIDPattern.MatchString(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
