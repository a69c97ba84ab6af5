// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package hub

import (
	"fmt"
	"net/url"
	"strings"
)

// RepoType identifies the kind of hosted repository.
type RepoType string

const (
	RepoTypeModel   RepoType = "model"
	RepoTypeDataset RepoType = "dataset"
	RepoTypeSpace   RepoType = "space"
)

// URIScheme is the scheme of remote file locations, e.g.
// hf://datasets/owner/name@main/tourism.csv
const URIScheme = "hf://"

// RepoRef names a repository on the hub.
type RepoRef struct {
	ID   string // owner/name or name
	Type RepoType
}

// Dataset returns a reference to a dataset repository.
func Dataset(id string) RepoRef { return RepoRef{ID: id, Type: RepoTypeDataset} }

// Space returns a reference to a Space repository.
func Space(id string) RepoRef { return RepoRef{ID: id, Type: RepoTypeSpace} }

func (r RepoRef) String() string {
	return r.urlPrefix() + r.ID
}

// apiPath is the REST path of the repository, e.g. /api/datasets/owner/name.
func (r RepoRef) apiPath() string {
	return "/api/" + r.kind() + "/" + escapePath(r.ID)
}

// kind is the plural path segment used by the API.
func (r RepoRef) kind() string {
	switch r.Type {
	case RepoTypeDataset:
		return "datasets"
	case RepoTypeSpace:
		return "spaces"
	default:
		return "models"
	}
}

// urlPrefix is the prefix used by file resolution URLs. Models have none.
func (r RepoRef) urlPrefix() string {
	switch r.Type {
	case RepoTypeDataset:
		return "datasets/"
	case RepoTypeSpace:
		return "spaces/"
	default:
		return ""
	}
}

// owner and name split the ID; owner is empty for bare names.
func (r RepoRef) split() (owner, name string) {
	if i := strings.IndexByte(r.ID, '/'); i >= 0 {
		return r.ID[:i], r.ID[i+1:]
	}
	return "", r.ID
}

// URI is a parsed hf:// location.
type URI struct {
	Repo     RepoRef
	Revision string // empty means the client default
	Path     string // path of the file inside the repository
}

func (u URI) String() string {
	var b strings.Builder
	b.WriteString(URIScheme)
	b.WriteString(u.Repo.urlPrefix())
	b.WriteString(u.Repo.ID)
	if u.Revision != "" {
		b.WriteByte('@')
		b.WriteString(url.PathEscape(u.Revision))
	}
	if u.Path != "" {
		b.WriteByte('/')
		b.WriteString(u.Path)
	}
	return b.String()
}

// ParseURI parses hf://[datasets/|spaces/|models/]owner/name[@revision][/path].
// The revision may be percent-encoded (refs%2Fpr%2F1).
func ParseURI(raw string) (URI, error) {
	rest, ok := strings.CutPrefix(raw, URIScheme)
	if !ok {
		return URI{}, fmt.Errorf("invalid hub URI %q: missing %s scheme", raw, URIScheme)
	}

	u := URI{Repo: RepoRef{Type: RepoTypeModel}}
	switch {
	case strings.HasPrefix(rest, "datasets/"):
		u.Repo.Type = RepoTypeDataset
		rest = strings.TrimPrefix(rest, "datasets/")
	case strings.HasPrefix(rest, "spaces/"):
		u.Repo.Type = RepoTypeSpace
		rest = strings.TrimPrefix(rest, "spaces/")
	case strings.HasPrefix(rest, "models/"):
		rest = strings.TrimPrefix(rest, "models/")
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return URI{}, fmt.Errorf("invalid hub URI %q: expected owner/name", raw)
	}

	owner, name := parts[0], parts[1]
	if i := strings.IndexByte(name, '@'); i >= 0 {
		rev, err := url.PathUnescape(name[i+1:])
		if err != nil {
			return URI{}, fmt.Errorf("invalid hub URI %q: bad revision: %w", raw, err)
		}
		if rev == "" {
			return URI{}, fmt.Errorf("invalid hub URI %q: empty revision", raw)
		}
		name, u.Revision = name[:i], rev
	}
	if name == "" {
		return URI{}, fmt.Errorf("invalid hub URI %q: empty repository name", raw)
	}
	u.Repo.ID = owner + "/" + name

	if len(parts) == 3 {
		u.Path = strings.Trim(parts[2], "/")
	}
	return u, nil
}

// escapePath escapes each segment of a slash-separated path.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
