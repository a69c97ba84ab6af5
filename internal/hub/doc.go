// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

/*
Package hub is a client for the hosting platform's REST API.

It covers what the pipeline needs: repository metadata, repository
creation, NDJSON commits (one header line, then one base64 file line per
operation) and file downloads addressed by hf:// URIs.

	client := hub.NewClient(hub.Options{
	    Endpoint:          cfg.Hub.Endpoint,
	    Token:             cfg.Hub.Token,
	    Timeout:           cfg.Hub.Timeout,
	    RequestsPerSecond: cfg.Hub.RequestsPerSecond,
	})
	api := hub.NewBreakerClient(client, hub.BreakerSettings{ConsecutiveFailures: 3})

	rc, err := api.Open(ctx, "hf://datasets/owner/name/tourism.csv")

Every non-2xx response is a *StatusError. IsNotFound, IsUnauthorized and
IsForbidden classify it; IsNotFound also accepts a 401 carrying X-Error-Code
RepoNotFound, since the hub hides repositories the caller cannot see. Only
repository lookups rely on that; upload failures are classified by status.

Requests are paced by a golang.org/x/time/rate limiter. BreakerClient adds
a sony/gobreaker circuit breaker that only counts transport failures and
5xx/429 responses.
*/
package hub
