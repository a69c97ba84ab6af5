// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import "testing"

func TestParseURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    URI
		wantErr bool
	}{
		{
			name: "dataset file",
			raw:  "hf://datasets/AshwiniBokade/Tourism-Project-Asgnmt/tourism.csv",
			want: URI{Repo: Dataset("AshwiniBokade/Tourism-Project-Asgnmt"), Path: "tourism.csv"},
		},
		{
			name: "dataset with revision and nested path",
			raw:  "hf://datasets/owner/data@v1.0/raw/tourism.csv",
			want: URI{Repo: Dataset("owner/data"), Revision: "v1.0", Path: "raw/tourism.csv"},
		},
		{
			name: "encoded revision",
			raw:  "hf://datasets/owner/data@refs%2Fpr%2F3/x.csv",
			want: URI{Repo: Dataset("owner/data"), Revision: "refs/pr/3", Path: "x.csv"},
		},
		{
			name: "space",
			raw:  "hf://spaces/owner/app/app.py",
			want: URI{Repo: Space("owner/app"), Path: "app.py"},
		},
		{
			name: "model without prefix",
			raw:  "hf://owner/model/config.json",
			want: URI{Repo: RepoRef{ID: "owner/model", Type: RepoTypeModel}, Path: "config.json"},
		},
		{
			name: "repository only",
			raw:  "hf://datasets/owner/data",
			want: URI{Repo: Dataset("owner/data")},
		},
		{name: "wrong scheme", raw: "s3://bucket/key", wantErr: true},
		{name: "missing name", raw: "hf://datasets/owner", wantErr: true},
		{name: "empty revision", raw: "hf://datasets/owner/data@/x.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseURI(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURI(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseURI(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestURIStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"hf://datasets/owner/data/tourism.csv",
		"hf://spaces/owner/app@dev/app.py",
		"hf://datasets/owner/data@refs%2Fpr%2F3/x.csv",
	} {
		u, err := ParseURI(raw)
		if err != nil {
			t.Fatalf("ParseURI(%q) error = %v", raw, err)
		}
		if got := u.String(); got != raw {
			t.Errorf("String() = %q, want %q", got, raw)
		}
	}
}

func TestRepoRefPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref     RepoRef
		apiPath string
		str     string
	}{
		{Dataset("owner/data"), "/api/datasets/owner/data", "datasets/owner/data"},
		{Space("owner/app"), "/api/spaces/owner/app", "spaces/owner/app"},
		{RepoRef{ID: "owner/m", Type: RepoTypeModel}, "/api/models/owner/m", "owner/m"},
	}
	for _, tt := range tests {
		if got := tt.ref.apiPath(); got != tt.apiPath {
			t.Errorf("apiPath() = %q, want %q", got, tt.apiPath)
		}
		if got := tt.ref.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}
