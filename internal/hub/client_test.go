// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/tourism-pipeline/internal/testinfra"
)

func newTestClient(t *testing.T, fake *testinfra.FakeHub) *Client {
	t.Helper()
	return NewClient(Options{
		Endpoint: fake.URL(),
		Token:    "hf_test",
		Timeout:  5 * time.Second,
	})
}

func TestClientRepoInfo(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	fake.AddRepo("dataset", "owner/data", map[string][]byte{"b.csv": nil, "a.csv": nil})
	client := newTestClient(t, fake)

	info, err := client.RepoInfo(context.Background(), Dataset("owner/data"))
	if err != nil {
		t.Fatalf("RepoInfo() error = %v", err)
	}
	if info.ID != "owner/data" {
		t.Errorf("ID = %q, want owner/data", info.ID)
	}
	if got := info.Files(); !reflect.DeepEqual(got, []string{"a.csv", "b.csv"}) {
		t.Errorf("Files() = %v", got)
	}

	reqs := fake.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0].Authorization != "Bearer hf_test" {
		t.Errorf("Authorization = %q", reqs[0].Authorization)
	}
	if !strings.HasPrefix(reqs[0].UserAgent, DefaultUserAgent) {
		t.Errorf("User-Agent = %q", reqs[0].UserAgent)
	}

	_, err = client.RepoInfo(context.Background(), Dataset("owner/missing"))
	if !IsNotFound(err) {
		t.Errorf("RepoInfo(missing) error = %v, want not found", err)
	}
}

func TestClientCreateRepo(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	client := newTestClient(t, fake)
	ctx := context.Background()

	url, err := client.CreateRepo(ctx, Dataset("owner/data"), false)
	if err != nil {
		t.Fatalf("CreateRepo() error = %v", err)
	}
	if !strings.HasSuffix(url, "/datasets/owner/data") {
		t.Errorf("url = %q", url)
	}
	repo, ok := fake.Repo("dataset", "owner/data")
	if !ok || repo.Private {
		t.Errorf("repo = %+v, ok = %v; want public dataset", repo, ok)
	}

	// Conflict means it already exists.
	if _, err := client.CreateRepo(ctx, Dataset("owner/data"), false); err != nil {
		t.Errorf("CreateRepo(existing) error = %v, want nil", err)
	}

	fake.Fail(testinfra.RouteCreateRepo, http.StatusForbidden, "", "no write access", 1)
	_, err = client.CreateRepo(ctx, Dataset("owner/other"), false)
	if !IsForbidden(err) {
		t.Errorf("CreateRepo() error = %v, want forbidden", err)
	}
}

func TestClientCommitAndOpen(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	fake.AddRepo("dataset", "owner/data", nil)
	client := newTestClient(t, fake)
	ctx := context.Background()

	info, err := client.Commit(ctx, Dataset("owner/data"), &CommitRequest{
		Summary:     "Upload two files",
		Description: "split artifacts",
		Operations: []Operation{
			{PathInRepo: "Xtrain.csv", Content: []byte("a\n1\n")},
			{PathInRepo: "nested/ytrain.csv", Content: []byte("y\n0\n")},
		},
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if info.CommitOID == "" || info.CommitURL == "" {
		t.Errorf("CommitInfo = %+v", info)
	}

	repo, _ := fake.Repo("dataset", "owner/data")
	if len(repo.Commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(repo.Commits))
	}
	c := repo.Commits[0]
	if c.Summary != "Upload two files" || c.Description != "split artifacts" || c.Revision != "main" {
		t.Errorf("commit = %+v", c)
	}
	if !reflect.DeepEqual(c.Files, []string{"Xtrain.csv", "nested/ytrain.csv"}) {
		t.Errorf("commit files = %v", c.Files)
	}

	rc, err := client.Open(ctx, "hf://datasets/owner/data/nested/ytrain.csv")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "y\n0\n" {
		t.Errorf("Open() content = %q", data)
	}

	_, err = client.Open(ctx, "hf://datasets/owner/data/missing.csv")
	if !IsNotFound(err) {
		t.Errorf("Open(missing) error = %v, want not found", err)
	}
}

func TestClientCommitRejectsBadInput(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	client := newTestClient(t, fake)
	ctx := context.Background()

	if _, err := client.Commit(ctx, Dataset("owner/data"), &CommitRequest{Summary: "empty"}); err == nil {
		t.Error("expected error for empty commit")
	}
	for _, p := range []string{"", "/abs.csv", "../up.csv", "a//b"} {
		_, err := client.Commit(ctx, Dataset("owner/data"), &CommitRequest{
			Summary:    "bad",
			Operations: []Operation{{PathInRepo: p}},
		})
		if err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
	if n := len(fake.Requests()); n != 0 {
		t.Errorf("requests sent = %d, want 0", n)
	}
}

func TestClientUnauthorizedCommit(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	fake.Token = "hf_other"
	fake.AddRepo("dataset", "owner/data", nil)
	client := newTestClient(t, fake)

	_, err := client.Commit(context.Background(), Dataset("owner/data"), &CommitRequest{
		Summary:    "x",
		Operations: []Operation{{PathInRepo: "x.csv", Content: []byte("x")}},
	})
	if !IsUnauthorized(err) {
		t.Fatalf("Commit() error = %v, want unauthorized", err)
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error should carry the hub message, got %q", err)
	}
}

func TestUploadHelpers(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	fake.AddRepo("space", "owner/app", nil)
	client := newTestClient(t, fake)
	ctx := context.Background()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "app.py"), "print('hi')")
	mustWrite(t, filepath.Join(dir, "requirements.txt"), "gradio")
	mustWrite(t, filepath.Join(dir, "assets", "logo.txt"), "logo")
	mustWrite(t, filepath.Join(dir, ".git", "HEAD"), "ref")
	mustWrite(t, filepath.Join(dir, ".cache", "huggingface", "lock"), "x")
	mustWrite(t, filepath.Join(dir, ".cache", "other"), "kept")

	_, paths, err := UploadFolder(ctx, client, Space("owner/app"), dir, "Upload folder using tourism-pipeline")
	if err != nil {
		t.Fatalf("UploadFolder() error = %v", err)
	}
	want := []string{".cache/other", "app.py", "assets/logo.txt", "requirements.txt"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	repo, _ := fake.Repo("space", "owner/app")
	if len(repo.Commits) != 1 {
		t.Fatalf("commits = %d, want exactly 1", len(repo.Commits))
	}
	if string(repo.Files["assets/logo.txt"]) != "logo" {
		t.Errorf("assets/logo.txt = %q", repo.Files["assets/logo.txt"])
	}

	if _, err := UploadFile(ctx, client, Space("owner/app"), filepath.Join(dir, "app.py"), "main.py", ""); err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	repo, _ = fake.Repo("space", "owner/app")
	if got := repo.Commits[len(repo.Commits)-1].Summary; got != "Upload main.py" {
		t.Errorf("default summary = %q", got)
	}

	if _, _, err := UploadFolder(ctx, client, Space("owner/app"), t.TempDir(), ""); err == nil {
		t.Error("expected error for empty folder")
	}
}

func TestClientRateLimit(t *testing.T) {
	t.Parallel()

	fake := testinfra.NewFakeHub(t)
	fake.AddRepo("dataset", "owner/data", nil)
	client := NewClient(Options{Endpoint: fake.URL(), RequestsPerSecond: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := client.RepoInfo(ctx, Dataset("owner/data")); err != nil {
		t.Fatalf("first request error = %v", err)
	}
	// The second request would wait about a second, longer than the context allows.
	if _, err := client.RepoInfo(ctx, Dataset("owner/data")); err == nil {
		t.Error("expected rate limiter to refuse within the deadline")
	}
	if got := fake.Count(testinfra.RouteRepoInfo); got != 1 {
		t.Errorf("requests reaching the hub = %d, want 1", got)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
