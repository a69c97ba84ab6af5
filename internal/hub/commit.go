// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Operation adds or replaces one file in a commit.
type Operation struct {
	PathInRepo string
	Content    []byte
}

// CommitRequest describes a single commit.
type CommitRequest struct {
	Summary     string
	Description string
	Revision    string // empty means the client default
	Operations  []Operation
}

// CommitInfo is returned by a successful commit.
type CommitInfo struct {
	CommitURL      string `json:"commitUrl"`
	CommitOID      string `json:"commitOid"`
	PullRequestURL string `json:"pullRequestUrl,omitempty"`
}

// Committer is the part of API needed to upload files.
type Committer interface {
	Commit(ctx context.Context, ref RepoRef, req *CommitRequest) (*CommitInfo, error)
}

// ndjsonLine is one line of the commit payload.
type ndjsonLine struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type commitHeader struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

type commitFile struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Encoding string `json:"encoding"`
}

// encodeCommit renders the NDJSON body: a header line followed by one line
// per file with base64 content.
func encodeCommit(req *CommitRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	if err := enc.Encode(ndjsonLine{Key: "header", Value: commitHeader{
		Summary:     req.Summary,
		Description: req.Description,
	}}); err != nil {
		return nil, err
	}

	for _, op := range req.Operations {
		if err := enc.Encode(ndjsonLine{Key: "file", Value: commitFile{
			Content:  base64.StdEncoding.EncodeToString(op.Content),
			Path:     op.PathInRepo,
			Encoding: "base64",
		}}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Commit creates one commit containing every operation of req.
func (c *Client) Commit(ctx context.Context, ref RepoRef, req *CommitRequest) (*CommitInfo, error) {
	if len(req.Operations) == 0 {
		return nil, fmt.Errorf("commit: no files to commit")
	}
	for _, op := range req.Operations {
		if !validPathInRepo(op.PathInRepo) {
			return nil, fmt.Errorf("commit: invalid path in repo %q", op.PathInRepo)
		}
	}

	payload, err := encodeCommit(req)
	if err != nil {
		return nil, fmt.Errorf("commit: failed to encode payload: %w", err)
	}

	revision := req.Revision
	if revision == "" {
		revision = c.revision
	}
	reqURL := c.endpoint + ref.apiPath() + "/commit/" + url.PathEscape(revision)

	resp, err := c.do(ctx, "commit", http.MethodPost, reqURL, "application/x-ndjson", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info CommitInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("commit: failed to decode response: %w", err)
	}
	return &info, nil
}

// validPathInRepo rejects empty, absolute and parent-relative paths.
func validPathInRepo(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// UploadFile commits a single local file to pathInRepo.
func UploadFile(ctx context.Context, api Committer, ref RepoRef, localPath, pathInRepo, summary string) (*CommitInfo, error) {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", localPath, err)
	}
	if summary == "" {
		summary = "Upload " + pathInRepo
	}
	return api.Commit(ctx, ref, &CommitRequest{
		Summary:    summary,
		Operations: []Operation{{PathInRepo: pathInRepo, Content: content}},
	})
}

// DefaultIgnoreDirs are never uploaded by UploadFolder.
var DefaultIgnoreDirs = []string{".git", ".cache/huggingface"}

// CollectFolder reads every regular file below root into operations, with
// slash-separated paths relative to root, sorted by path. Directories
// listed in ignoreDirs (relative, slash-separated) are skipped whole.
func CollectFolder(root string, ignoreDirs []string) ([]Operation, error) {
	var ops []Operation
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && ignored(rel, ignoreDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		ops = append(ops, Operation{PathInRepo: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", root, err)
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].PathInRepo < ops[j].PathInRepo })
	return ops, nil
}

func ignored(rel string, ignoreDirs []string) bool {
	for _, dir := range ignoreDirs {
		dir = path.Clean(dir)
		if rel == dir {
			return true
		}
	}
	return false
}

// UploadFolder commits the whole tree below folder as a single commit.
// It returns the commit and the paths that were included.
func UploadFolder(ctx context.Context, api Committer, ref RepoRef, folder, summary string) (*CommitInfo, []string, error) {
	ops, err := CollectFolder(folder, DefaultIgnoreDirs)
	if err != nil {
		return nil, nil, err
	}
	if len(ops) == 0 {
		return nil, nil, fmt.Errorf("upload folder %s: no files to upload", folder)
	}

	paths := make([]string, len(ops))
	for i, op := range ops {
		paths[i] = op.PathInRepo
	}

	if summary == "" {
		summary = "Upload folder"
	}
	info, err := api.Commit(ctx, ref, &CommitRequest{Summary: summary, Operations: ops})
	if err != nil {
		return nil, paths, err
	}
	return info, paths, nil
}
