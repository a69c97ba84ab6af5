// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MissingTokens are the cell values read as missing.
var MissingTokens = []string{"", "NA", "NaN", "nan", "<NA>", "<nil>", "null", "NULL", "None", "N/A", "n/a"}

// unnamedPrefix names columns whose header cell is empty, e.g. the index
// column written by many CSV exporters.
const unnamedPrefix = "Unnamed: "

// Frame is a tabular dataset whose cells are text with a missing flag. It is
// backed by a gota DataFrame of string series so values round-trip exactly.
type Frame struct {
	df dataframe.DataFrame
}

// ReadCSV parses a CSV document with a header row. Rows shorter than the
// header are padded with missing cells; longer rows are an error.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return FromRecords(records)
	}

	width := len(records[0])
	for i, rec := range records[1:] {
		switch {
		case len(rec) > width:
			return nil, fmt.Errorf("parse csv: row %d has %d fields, header has %d", i+1, len(rec), width)
		case len(rec) < width:
			padded := make([]string, width)
			copy(padded, rec)
			records[i+1] = padded
		}
	}
	return FromRecords(records)
}

// FromRecords builds a Frame from a header row followed by data rows.
// Empty header cells become "Unnamed: <index>" and repeated names get a
// ".<n>" suffix.
func FromRecords(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, errors.New("parse csv: no header row")
	}

	header := normalizeHeader(records[0])
	rows := make([][]string, 0, len(records))
	rows = append(rows, header)
	rows = append(rows, records[1:]...)

	df := dataframe.LoadRecords(rows,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	return &Frame{df: df}, nil
}

func normalizeHeader(raw []string) []string {
	header := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = unnamedPrefix + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		}
		seen[name] = 0
		header[i] = name
	}
	return header
}

func wrap(df dataframe.DataFrame) (*Frame, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	return &Frame{df: df}, nil
}

// Nrow returns the number of data rows.
func (f *Frame) Nrow() int { return f.df.Nrow() }

// Ncol returns the number of columns.
func (f *Frame) Ncol() int { return f.df.Ncol() }

// Names returns the column names in order.
func (f *Frame) Names() []string { return f.df.Names() }

// HasColumn reports whether name is a column.
func (f *Frame) HasColumn(name string) bool {
	for _, n := range f.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the values of a column and their missing flags. Missing
// cells have an empty value.
func (f *Frame) Column(name string) (values []string, missing []bool) {
	s := f.df.Col(name)
	missing = s.IsNaN()
	values = s.Records()
	for i := range values {
		if missing[i] {
			values[i] = ""
		}
	}
	return values, missing
}

// Records returns the header followed by every row, with missing cells
// rendered empty.
func (f *Frame) Records() [][]string {
	names := f.df.Names()
	out := make([][]string, f.df.Nrow()+1)
	out[0] = append([]string(nil), names...)
	for i := 1; i < len(out); i++ {
		out[i] = make([]string, len(names))
	}
	for j, name := range names {
		values, _ := f.Column(name)
		for i, v := range values {
			out[i+1][j] = v
		}
	}
	return out
}

// Equal reports whether both frames have the same columns, values and
// missing cells.
func (f *Frame) Equal(o *Frame) bool {
	if f.Nrow() != o.Nrow() || f.Ncol() != o.Ncol() {
		return false
	}
	on := o.Names()
	for j, name := range f.Names() {
		if on[j] != name {
			return false
		}
		av, am := f.Column(name)
		bv, bm := o.Column(name)
		for i := range av {
			if av[i] != bv[i] || am[i] != bm[i] {
				return false
			}
		}
	}
	return true
}

// WriteCSV writes the frame with a header row. Missing cells are written
// empty.
func (f *Frame) WriteCSV(w io.Writer) error {
	out := f.df
	for _, name := range f.df.Names() {
		values, missing := f.Column(name)
		if !anyTrue(missing) {
			continue
		}
		// A plain "" string element is not missing, so gota writes it as is.
		out = out.Mutate(series.New(values, series.String, name))
	}
	if out.Err != nil {
		return out.Err
	}
	return out.WriteCSV(w)
}

func (f *Frame) subset(rows []int) (*Frame, error) {
	return wrap(f.df.Subset(rows))
}

func (f *Frame) drop(cols []string) (*Frame, error) {
	return wrap(f.df.Drop(cols))
}

func (f *Frame) selectColumns(cols []string) (*Frame, error) {
	return wrap(f.df.Select(cols))
}

func (f *Frame) replaceColumn(name string, values []string) (*Frame, error) {
	return wrap(f.df.Mutate(series.New(values, series.String, name)))
}

func anyTrue(flags []bool) bool {
	for _, b := range flags {
		if b {
			return true
		}
	}
	return false
}
