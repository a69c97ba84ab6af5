// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
)

// DefaultEndpoint is the public hub.
const DefaultEndpoint = "https://huggingface.co"

// DefaultUserAgent identifies the tools to the hub.
const DefaultUserAgent = "tourism-pipeline"

// API is the subset of hub operations used by the publisher, the deployer
// and the dataset loader. *Client and *BreakerClient implement it.
type API interface {
	RepoInfo(ctx context.Context, ref RepoRef) (*RepoInfo, error)
	CreateRepo(ctx context.Context, ref RepoRef, private bool) (string, error)
	Commit(ctx context.Context, ref RepoRef, req *CommitRequest) (*CommitInfo, error)
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Options configures a Client.
type Options struct {
	Endpoint          string
	Token             string
	Revision          string // default branch for commits and downloads
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client-side limiting

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the hub REST API. It is safe for concurrent use.
type Client struct {
	endpoint  string
	token     string
	revision  string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Client from opts, filling unset fields with defaults.
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Revision == "" {
		opts.Revision = "main"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	return &Client{
		endpoint:  strings.TrimRight(opts.Endpoint, "/"),
		token:     opts.Token,
		revision:  opts.Revision,
		userAgent: opts.UserAgent,
		client:    httpClient,
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// Endpoint returns the base URL of the hub.
func (c *Client) Endpoint() string { return c.endpoint }

// RepoInfo is the subset of repository metadata the tools read.
type RepoInfo struct {
	ID           string    `json:"id"`
	SHA          string    `json:"sha"`
	Private      bool      `json:"private"`
	LastModified time.Time `json:"lastModified"`
	Siblings     []struct {
		RFilename string `json:"rfilename"`
	} `json:"siblings"`
}

// Files lists the paths in the repository at its current revision.
func (r *RepoInfo) Files() []string {
	files := make([]string, 0, len(r.Siblings))
	for _, s := range r.Siblings {
		files = append(files, s.RFilename)
	}
	return files
}

// RepoInfo fetches repository metadata. A missing repository yields an
// error for which IsNotFound is true.
func (c *Client) RepoInfo(ctx context.Context, ref RepoRef) (*RepoInfo, error) {
	resp, err := c.do(ctx, "repo_info", http.MethodGet, c.endpoint+ref.apiPath(), "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info RepoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("repo_info: failed to decode response: %w", err)
	}
	return &info, nil
}

type createRepoRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Type         string `json:"type,omitempty"`
	Private      bool   `json:"private"`
}

// CreateRepo creates a repository and returns its URL. A repository that
// already exists is not an error; the returned URL is then empty.
func (c *Client) CreateRepo(ctx context.Context, ref RepoRef, private bool) (string, error) {
	owner, name := ref.split()
	reqBody := createRepoRequest{Name: name, Organization: owner, Private: private}
	if ref.Type != RepoTypeModel {
		reqBody.Type = string(ref.Type)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("create_repo: failed to encode request: %w", err)
	}

	resp, err := c.do(ctx, "create_repo", http.MethodPost, c.endpoint+"/api/repos/create", "application/json", bytes.NewReader(payload))
	if err != nil {
		if StatusCode(err) == http.StatusConflict {
			logging.Ctx(ctx).Debug().Str("repo", ref.String()).Msg("Repository already exists")
			return "", nil
		}
		return "", err
	}
	defer resp.Body.Close()

	var created struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("create_repo: failed to decode response: %w", err)
	}
	return created.URL, nil
}

// ResolveURL returns the download URL of a file.
func (c *Client) ResolveURL(ref RepoRef, revision, path string) string {
	if revision == "" {
		revision = c.revision
	}
	return fmt.Sprintf("%s/%s%s/resolve/%s/%s",
		c.endpoint, ref.urlPrefix(), escapePath(ref.ID), url.PathEscape(revision), escapePath(path))
}

// Open downloads the file named by an hf:// URI. The caller closes the
// returned reader.
func (c *Client) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	u, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if u.Path == "" {
		return nil, fmt.Errorf("download: %s does not name a file", uri)
	}

	resp, err := c.do(ctx, "download", http.MethodGet, c.ResolveURL(u.Repo, u.Revision, u.Path), "", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// do sends a request and returns the response when the status is 2xx.
// Any other status is returned as a *StatusError with the body closed.
func (c *Client) do(ctx context.Context, op, method, reqURL, contentType string, body io.Reader) (*http.Response, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request failed: %w", op, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logger := logging.Ctx(ctx)
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordHubRequest(op, 0, time.Since(start))
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	metrics.RecordHubRequest(op, resp.StatusCode, time.Since(start))

	logger.Debug().
		Str("component", "hub").
		Str("op", op).
		Str("method", method).
		Str("url", req.URL.Redacted()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Hub request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newStatusError(op, resp)
	}
	return resp, nil
}

// wait blocks until the rate limiter admits a request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter.Allow() {
		return nil
	}
	metrics.HubRateLimitWaits.Inc()
	return c.limiter.Wait(ctx)
}
