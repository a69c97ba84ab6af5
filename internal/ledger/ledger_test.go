// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndPublished(t *testing.T) {
	t.Parallel()

	l := openTestLedger(t)
	ctx := context.Background()

	ok, err := l.Published(ctx, "owner/data", "Xtrain.csv", "abc")
	if err != nil || ok {
		t.Fatalf("Published() on empty ledger = %v, %v", ok, err)
	}

	if err := l.Record(ctx, Entry{RepoID: "owner/data", Path: "Xtrain.csv", SHA256: "abc", CommitOID: "c1"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	tests := []struct {
		repo, path, sha string
		want            bool
	}{
		{"owner/data", "Xtrain.csv", "abc", true},
		{"owner/data", "Xtrain.csv", "changed", false},
		{"owner/data", "Xtest.csv", "abc", false},
		{"owner/other", "Xtrain.csv", "abc", false},
	}
	for _, tt := range tests {
		got, err := l.Published(ctx, tt.repo, tt.path, tt.sha)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Published(%s, %s, %s) = %v, want %v", tt.repo, tt.path, tt.sha, got, tt.want)
		}
	}

	entry, err := l.Lookup(ctx, "owner/data", "Xtrain.csv")
	if err != nil || entry == nil {
		t.Fatalf("Lookup() = %v, %v", entry, err)
	}
	if entry.CommitOID != "c1" || entry.UploadedAt.IsZero() {
		t.Errorf("entry = %+v", entry)
	}
}

func TestEntriesByRepo(t *testing.T) {
	t.Parallel()

	l := openTestLedger(t)
	ctx := context.Background()
	for _, e := range []Entry{
		{RepoID: "owner/data", Path: "ytest.csv", SHA256: "4"},
		{RepoID: "owner/data", Path: "Xtrain.csv", SHA256: "1"},
		{RepoID: "owner/data2", Path: "Xtrain.csv", SHA256: "9"},
	} {
		if err := l.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := l.Entries(ctx, "owner/data")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Path != "Xtrain.csv" || entries[1].Path != "ytest.csv" {
		t.Errorf("Entries() = %+v", entries)
	}
}

func TestPersistentLedger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	l, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := l.Record(ctx, Entry{RepoID: "owner/data", Path: "x.csv", SHA256: "h"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Lookup(ctx, "owner/data", "x.csv"); !errors.Is(err, ErrClosed) {
		t.Errorf("Lookup after Close error = %v, want ErrClosed", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	ok, err := reopened.Published(ctx, "owner/data", "x.csv", "h")
	if err != nil || !ok {
		t.Errorf("Published() after reopen = %v, %v; want true", ok, err)
	}
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	sum, size, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sum != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" || size != 5 {
		t.Errorf("HashFile() = %s, %d", sum, size)
	}
	if _, _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
