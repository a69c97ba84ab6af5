// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package testinfra

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// Route names used for request recording and failure injection.
const (
	RouteRepoInfo   = "repo_info"
	RouteCreateRepo = "create_repo"
	RouteCommit     = "commit"
	RouteResolve    = "resolve"
)

// HubRequest is a recorded request.
type HubRequest struct {
	Route         string
	Method        string
	Path          string
	Authorization string
	UserAgent     string
	ContentType   string
	Body          []byte
}

// HubCommit is a commit received by the fake.
type HubCommit struct {
	OID         string
	Revision    string
	Summary     string
	Description string
	Files       []string
}

// HubRepo is the state of a repository held by the fake.
type HubRepo struct {
	Type    string // model, dataset, space
	ID      string
	Private bool
	Files   map[string][]byte
	Commits []HubCommit
}

// hubFailure is an injected error response.
type hubFailure struct {
	status    int
	errorCode string
	message   string
	remaining int // <= 0 means every request
}

// FakeHub is an in-process stand-in for the hub REST API. It keeps
// repositories in memory, records every request and can be told to fail
// specific routes.
type FakeHub struct {
	Server *httptest.Server

	// Token, when set, is the only accepted bearer token.
	Token string

	mu       sync.Mutex
	repos    map[string]*HubRepo
	requests []HubRequest
	failures map[string]*hubFailure
	commits  int
}

// NewFakeHub starts a fake hub that is shut down when the test ends.
func NewFakeHub(t testing.TB) *FakeHub {
	t.Helper()

	f := &FakeHub{
		repos:    make(map[string]*HubRepo),
		failures: make(map[string]*hubFailure),
	}

	r := chi.NewRouter()
	for _, kind := range []string{"datasets", "spaces", "models"} {
		r.Get("/api/"+kind+"/{owner}/{name}", f.route(RouteRepoInfo, func(w http.ResponseWriter, r *http.Request) {
			f.handleRepoInfo(w, r, kind)
		}))
		r.Post("/api/"+kind+"/{owner}/{name}/commit/{rev}", f.route(RouteCommit, func(w http.ResponseWriter, r *http.Request) {
			f.handleCommit(w, r, kind)
		}))
	}
	for _, kind := range []string{"datasets", "spaces"} {
		r.Get("/"+kind+"/{owner}/{name}/resolve/{rev}/*", f.route(RouteResolve, func(w http.ResponseWriter, r *http.Request) {
			f.handleResolve(w, r, kind)
		}))
	}
	r.Post("/api/repos/create", f.route(RouteCreateRepo, f.handleCreateRepo))

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake.
func (f *FakeHub) URL() string {
	return f.Server.URL
}

// AddRepo creates a repository with the given files.
func (f *FakeHub) AddRepo(repoType, id string, files map[string][]byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo := &HubRepo{Type: repoType, ID: id, Files: make(map[string][]byte)}
	for p, content := range files {
		repo.Files[p] = append([]byte(nil), content...)
	}
	f.repos[repoKey(repoType, id)] = repo
}

// Repo returns a copy of a repository's state.
func (f *FakeHub) Repo(repoType, id string) (HubRepo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo, ok := f.repos[repoKey(repoType, id)]
	if !ok {
		return HubRepo{}, false
	}
	cp := *repo
	cp.Files = make(map[string][]byte, len(repo.Files))
	for p, content := range repo.Files {
		cp.Files[p] = append([]byte(nil), content...)
	}
	cp.Commits = append([]HubCommit(nil), repo.Commits...)
	return cp, true
}

// Fail makes the next times requests to route answer with status. The
// errorCode and message are sent in X-Error-Code and X-Error-Message.
// times <= 0 fails every request until ClearFailures.
func (f *FakeHub) Fail(route string, status int, errorCode, message string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = &hubFailure{status: status, errorCode: errorCode, message: message, remaining: times}
}

// ClearFailures removes every injected failure.
func (f *FakeHub) ClearFailures() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = make(map[string]*hubFailure)
}

// Requests returns every recorded request in arrival order.
func (f *FakeHub) Requests() []HubRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]HubRequest(nil), f.requests...)
}

// Routes returns the route names of every recorded request in arrival order.
func (f *FakeHub) Routes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	routes := make([]string, len(f.requests))
	for i, r := range f.requests {
		routes[i] = r.Route
	}
	return routes
}

// Count returns how many requests reached route.
func (f *FakeHub) Count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

// route records the request, applies authentication and injected failures,
// then calls next.
func (f *FakeHub) route(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		f.mu.Lock()
		f.requests = append(f.requests, HubRequest{
			Route:         name,
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			UserAgent:     r.Header.Get("User-Agent"),
			ContentType:   r.Header.Get("Content-Type"),
			Body:          body,
		})
		failure := f.takeFailure(name)
		f.mu.Unlock()

		if failure != nil {
			writeHubError(w, failure.status, failure.errorCode, failure.message)
			return
		}
		if f.Token != "" && r.Header.Get("Authorization") != "Bearer "+f.Token {
			writeHubError(w, http.StatusUnauthorized, "", "Invalid credentials in Authorization header")
			return
		}
		next(w, r)
	}
}

// takeFailure must be called with mu held.
func (f *FakeHub) takeFailure(route string) *hubFailure {
	failure, ok := f.failures[route]
	if !ok {
		return nil
	}
	if failure.remaining > 0 {
		failure.remaining--
		if failure.remaining == 0 {
			delete(f.failures, route)
		}
	}
	return failure
}

func (f *FakeHub) handleRepoInfo(w http.ResponseWriter, r *http.Request, kind string) {
	id := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")

	f.mu.Lock()
	repo, ok := f.repos[repoKey(singular(kind), id)]
	var siblings []map[string]string
	if ok {
		paths := make([]string, 0, len(repo.Files))
		for p := range repo.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			siblings = append(siblings, map[string]string{"rfilename": p})
		}
	}
	f.mu.Unlock()

	if !ok {
		writeHubError(w, http.StatusNotFound, "RepoNotFound", "Repository not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       repo.ID,
		"sha":      fmt.Sprintf("%040x", len(repo.Commits)),
		"private":  repo.Private,
		"siblings": siblings,
	})
}

type createRequest struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Type         string `json:"type"`
	Private      bool   `json:"private"`
}

func (f *FakeHub) handleCreateRepo(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeHubError(w, http.StatusBadRequest, "", "invalid create request")
		return
	}
	repoType := req.Type
	if repoType == "" {
		repoType = "model"
	}
	id := req.Name
	if req.Organization != "" {
		id = req.Organization + "/" + req.Name
	}
	url := f.Server.URL + "/" + plural(repoType) + "/" + id

	f.mu.Lock()
	defer f.mu.Unlock()
	key := repoKey(repoType, id)
	if _, exists := f.repos[key]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "You already created this " + repoType + " repo", "url": url})
		return
	}
	f.repos[key] = &HubRepo{Type: repoType, ID: id, Private: req.Private, Files: make(map[string][]byte)}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

type ndjsonLine struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (f *FakeHub) handleCommit(w http.ResponseWriter, r *http.Request, kind string) {
	id := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")
	commit := HubCommit{Revision: chi.URLParam(r, "rev")}
	files := make(map[string][]byte)

	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 64<<20)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var line ndjsonLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			writeHubError(w, http.StatusBadRequest, "", "malformed commit line")
			return
		}
		switch line.Key {
		case "header":
			var h struct {
				Summary     string `json:"summary"`
				Description string `json:"description"`
			}
			if err := json.Unmarshal(line.Value, &h); err != nil {
				writeHubError(w, http.StatusBadRequest, "", "malformed header")
				return
			}
			commit.Summary, commit.Description = h.Summary, h.Description
		case "file":
			var fv struct {
				Content  string `json:"content"`
				Path     string `json:"path"`
				Encoding string `json:"encoding"`
			}
			if err := json.Unmarshal(line.Value, &fv); err != nil || fv.Encoding != "base64" {
				writeHubError(w, http.StatusBadRequest, "", "malformed file")
				return
			}
			content, err := base64.StdEncoding.DecodeString(fv.Content)
			if err != nil {
				writeHubError(w, http.StatusBadRequest, "", "invalid base64 content")
				return
			}
			files[fv.Path] = content
			commit.Files = append(commit.Files, fv.Path)
		default:
			writeHubError(w, http.StatusBadRequest, "", "unknown key "+line.Key)
			return
		}
	}
	if commit.Summary == "" {
		writeHubError(w, http.StatusBadRequest, "", "missing commit header")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[repoKey(singular(kind), id)]
	if !ok {
		writeHubError(w, http.StatusNotFound, "RepoNotFound", "Repository not found")
		return
	}
	f.commits++
	commit.OID = fmt.Sprintf("%040x", f.commits)
	for p, content := range files {
		repo.Files[p] = content
	}
	repo.Commits = append(repo.Commits, commit)

	writeJSON(w, http.StatusOK, map[string]string{
		"commitUrl": f.Server.URL + "/" + kind + "/" + id + "/commit/" + commit.OID,
		"commitOid": commit.OID,
	})
}

func (f *FakeHub) handleResolve(w http.ResponseWriter, r *http.Request, kind string) {
	id := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")
	path := chi.URLParam(r, "*")

	f.mu.Lock()
	repo, ok := f.repos[repoKey(singular(kind), id)]
	var content []byte
	var found bool
	if ok {
		content, found = repo.Files[path]
	}
	f.mu.Unlock()

	switch {
	case !ok:
		writeHubError(w, http.StatusNotFound, "RepoNotFound", "Repository not found")
	case !found:
		writeHubError(w, http.StatusNotFound, "EntryNotFound", path+" does not exist")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write(content) //nolint:errcheck
	}
}

func writeHubError(w http.ResponseWriter, status int, errorCode, message string) {
	if errorCode != "" {
		w.Header().Set("X-Error-Code", errorCode)
	}
	if message != "" {
		w.Header().Set("X-Error-Message", message)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func repoKey(repoType, id string) string {
	return repoType + ":" + id
}

func singular(kind string) string {
	switch kind {
	case "datasets":
		return "dataset"
	case "spaces":
		return "space"
	default:
		return "model"
	}
}

func plural(repoType string) string {
	switch repoType {
	case "dataset":
		return "datasets"
	case "space":
		return "spaces"
	default:
		return "models"
	}
}
