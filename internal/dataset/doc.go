// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

/*
Package dataset loads, cleans, splits and writes the tourism dataset.

Frames are gota DataFrames of string series: every cell keeps its original
text, and the tokens in MissingTokens mark a cell as missing. A column is
numeric when every present value parses as a number.

	frame, source, err := dataset.NewLoader(hubClient).Load(ctx, cfg.Prepare.RemoteURI(), cfg.Prepare.LocalPath)
	cleaned, report, err := dataset.Clean(frame, dataset.CleanOptions{
	    LabelColumn: "ProdTaken",
	    DropColumns: []string{"CustomerID", "Unnamed: 0"},
	})
	split, err := dataset.Split(cleaned, dataset.SplitOptions{LabelColumn: "ProdTaken", TestSize: 0.2, Seed: 42})
	paths, err := dataset.WriteSplit(split, ".")

Clean fills numeric gaps with the median and categorical gaps with the mode
(smallest value on ties), and is idempotent. Split draws a permutation from
a seeded math/rand source, so the same seed always yields the same split.
*/
package dataset
