// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package deploy

import (
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Entry is one top-level item of a directory listing.
type Entry struct {
	Name string
	Dir  bool
	Size int64
}

// ListDir returns the top-level entries of dir sorted by name.
func ListDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		e := Entry{Name: de.Name(), Dir: de.IsDir()}
		if info, err := de.Info(); err == nil && !e.Dir {
			e.Size = info.Size()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// RenderListing writes entries as a table.
func RenderListing(w io.Writer, entries []Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Type", "Size"})
	for _, e := range entries {
		kind, size := "file", strconv.FormatInt(e.Size, 10)
		if e.Dir {
			kind, size = "dir", "-"
		}
		table.Append([]string{e.Name, kind, size})
	}
	table.Render()
}
