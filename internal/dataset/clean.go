// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"

	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// Imputation strategies.
const (
	StrategyMedian = "median"
	StrategyMode   = "mode"
)

// CleanOptions configures Clean.
type CleanOptions struct {
	LabelColumn string
	DropColumns []string // removed when present
}

// Imputation records how the gaps of one column were filled.
type Imputation struct {
	Column   string
	Strategy string
	Value    string
	Count    int
}

// CleanReport summarizes what Clean changed.
type CleanReport struct {
	DroppedColumns []string
	DroppedRows    int
	Imputations    []Imputation
	Rows           int
}

// Imputed returns the total number of filled cells.
func (r *CleanReport) Imputed() int {
	n := 0
	for _, imp := range r.Imputations {
		n += imp.Count
	}
	return n
}

// Clean removes identifier columns and rows without a label, then fills
// missing numeric cells with the column median and missing categorical cells
// with the column mode. Cleaning a clean frame changes nothing.
func Clean(f *Frame, opts CleanOptions) (*Frame, *CleanReport, error) {
	report := &CleanReport{}

	var present []string
	for _, col := range opts.DropColumns {
		if f.HasColumn(col) {
			present = append(present, col)
		}
	}
	if len(present) > 0 {
		var err error
		if f, err = f.drop(present); err != nil {
			return nil, nil, fmt.Errorf("drop columns: %w", err)
		}
		report.DroppedColumns = present
	}

	if !f.HasColumn(opts.LabelColumn) {
		return nil, nil, pipeline.NewDataError(
			fmt.Sprintf("label column %q not found", opts.LabelColumn), nil).
			WithDetail("label_column", opts.LabelColumn).
			WithDetail("columns", fmt.Sprint(f.Names()))
	}

	_, labelMissing := f.Column(opts.LabelColumn)
	keep := make([]int, 0, len(labelMissing))
	for i, missing := range labelMissing {
		if !missing {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, nil, pipeline.NewDataError(
			fmt.Sprintf("no rows with a %q label", opts.LabelColumn), nil).
			WithDetail("rows", strconv.Itoa(f.Nrow()))
	}
	if len(keep) < f.Nrow() {
		report.DroppedRows = f.Nrow() - len(keep)
		var err error
		if f, err = f.subset(keep); err != nil {
			return nil, nil, fmt.Errorf("drop unlabeled rows: %w", err)
		}
	}

	for _, name := range f.Names() {
		values, missing := f.Column(name)
		imp, ok := impute(name, values, missing)
		if !ok {
			continue
		}
		for i := range values {
			if missing[i] {
				values[i] = imp.Value
			}
		}
		var err error
		if f, err = f.replaceColumn(name, values); err != nil {
			return nil, nil, fmt.Errorf("impute %s: %w", name, err)
		}
		report.Imputations = append(report.Imputations, imp)
	}

	report.Rows = f.Nrow()
	report.record()
	return f, report, nil
}

func (r *CleanReport) record() {
	metrics.DatasetRows.WithLabelValues("cleaned").Set(float64(r.Rows))
	if r.DroppedRows > 0 {
		metrics.DatasetRowsDropped.WithLabelValues("missing_label").Add(float64(r.DroppedRows))
	}
	for _, imp := range r.Imputations {
		metrics.DatasetImputedCells.WithLabelValues(imp.Strategy).Add(float64(imp.Count))
	}
}

// impute chooses the fill value for a column. It returns false when the
// column has no gaps or no value to fill them with.
func impute(name string, values []string, missing []bool) (Imputation, bool) {
	present := make([]string, 0, len(values))
	gaps := 0
	for i, v := range values {
		if missing[i] {
			gaps++
			continue
		}
		present = append(present, v)
	}
	if gaps == 0 || len(present) == 0 {
		return Imputation{}, false
	}

	if nums, ok := parseNumeric(present); ok {
		return Imputation{
			Column:   name,
			Strategy: StrategyMedian,
			Value:    strconv.FormatFloat(median(nums), 'f', -1, 64),
			Count:    gaps,
		}, true
	}
	return Imputation{Column: name, Strategy: StrategyMode, Value: mode(present), Count: gaps}, true
}

// parseNumeric reports whether every value is a plain decimal number.
// Digit separators and hexadecimal literals are text.
func parseNumeric(values []string) ([]float64, bool) {
	nums := make([]float64, len(values))
	for i, v := range values {
		if !isDecimal(v) {
			return nil, false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = f
	}
	return nums, true
}

func isDecimal(v string) bool {
	if strings.Contains(v, "_") {
		return false
	}
	unsigned := strings.TrimLeft(v, "+-")
	return !strings.HasPrefix(strings.ToLower(unsigned), "0x")
}

// median averages the two middle values for even counts.
func median(nums []float64) float64 {
	return series.Floats(nums).Median()
}

// mode returns the most frequent value; ties go to the smallest value.
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := "", 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}
