// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

// Package testinfra provides test infrastructure shared by package tests.
//
// # Fake Hub
//
// FakeHub is an httptest server routed with chi that implements the parts
// of the hub REST API the tools use: repository info, repository creation,
// NDJSON commits and file resolution. It keeps repositories in memory,
// records every request and injects failures per route:
//
//	func TestPublish(t *testing.T) {
//	    fake := testinfra.NewFakeHub(t)
//	    fake.Fail(testinfra.RouteCommit, http.StatusUnauthorized, "", "Invalid credentials", 1)
//
//	    client := hub.NewClient(hub.Options{Endpoint: fake.URL(), Token: "hf_test"})
//	    // ...
//
//	    if got := fake.Count(testinfra.RouteCommit); got != 1 {
//	        t.Errorf("commits = %d, want 1", got)
//	    }
//	}
package testinfra
