// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// printError writes a fatal error for the operator: the message, any
// diagnostics as a table, and upload guidance.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var dataErr *pipeline.DataError
	if errors.As(err, &dataErr) && len(dataErr.Details) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Detail", "Value"})
		table.SetAutoWrapText(false)
		for _, d := range dataErr.Details {
			table.Append([]string{d.Key, d.Value})
		}
		table.Render()
	}

	var uploadErr *pipeline.UploadError
	if errors.As(err, &uploadErr) {
		if hint := uploadErr.Guidance(); hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", hint)
		}
	}
}
