// Tourism Pipeline - Dataset Publishing and Space Deployment Tooling
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tourism-pipeline

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/tomtom215/tourism-pipeline/internal/logging"
	"github.com/tomtom215/tourism-pipeline/internal/metrics"
	"github.com/tomtom215/tourism-pipeline/internal/pipeline"
)

// Split defaults.
const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42
)

// SplitOptions configures Split.
type SplitOptions struct {
	LabelColumn string
	TestSize    float64 // fraction of rows in the test side, 0 < TestSize < 1
	Seed        int64
	Stratify    bool
}

// SplitResult holds the four split tables. Row i of XTrain and YTrain come
// from row TrainIndex[i] of the input frame, and likewise for the test side.
type SplitResult struct {
	XTrain, XTest *Frame
	YTrain, YTest *Frame
	TrainIndex    []int
	TestIndex     []int
	Stratified    bool
}

// Split partitions the rows of f into train and test sides with a
// seeded permutation. The test side has ceil(TestSize*n) rows. With
// Stratify, each label class contributes to the test side in proportion to
// its size.
func Split(f *Frame, opts SplitOptions) (*SplitResult, error) {
	if opts.TestSize <= 0 || opts.TestSize >= 1 {
		return nil, pipeline.NewDataError(fmt.Sprintf("test size %v must be between 0 and 1", opts.TestSize), nil)
	}
	if !f.HasColumn(opts.LabelColumn) {
		return nil, pipeline.NewDataError(fmt.Sprintf("label column %q not found", opts.LabelColumn), nil).
			WithDetail("label_column", opts.LabelColumn)
	}

	n := f.Nrow()
	nTest := int(math.Ceil(opts.TestSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, pipeline.NewDataError(
			fmt.Sprintf("cannot split %d rows with test size %v: one side would be empty", n, opts.TestSize), nil).
			WithDetail("rows", strconv.Itoa(n))
	}

	rng := rand.New(rand.NewSource(opts.Seed)) //nolint:gosec // reproducible split, not security sensitive

	result := &SplitResult{}
	if opts.Stratify {
		labels, _ := f.Column(opts.LabelColumn)
		if train, test, ok := stratifiedIndexes(labels, nTest, rng); ok {
			result.TrainIndex, result.TestIndex, result.Stratified = train, test, true
		}
	}
	if !result.Stratified {
		perm := rng.Perm(n)
		result.TestIndex = perm[:nTest]
		result.TrainIndex = perm[nTest:]
	}

	var err error
	if result.XTrain, result.YTrain, err = sides(f, result.TrainIndex, opts.LabelColumn); err != nil {
		return nil, fmt.Errorf("build train side: %w", err)
	}
	if result.XTest, result.YTest, err = sides(f, result.TestIndex, opts.LabelColumn); err != nil {
		return nil, fmt.Errorf("build test side: %w", err)
	}
	metrics.DatasetRows.WithLabelValues("train").Set(float64(nTrain))
	metrics.DatasetRows.WithLabelValues("test").Set(float64(nTest))
	return result, nil
}

func sides(f *Frame, rows []int, label string) (x, y *Frame, err error) {
	part, err := f.subset(rows)
	if err != nil {
		return nil, nil, err
	}
	if x, err = part.drop([]string{label}); err != nil {
		return nil, nil, err
	}
	if y, err = part.selectColumns([]string{label}); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// stratifiedIndexes assigns nTest rows to the test side with per-class
// quotas by largest remainder. It returns false, and the caller falls back
// to a plain split, when the label has a single class or any class has
// fewer than two rows.
func stratifiedIndexes(labels []string, nTest int, rng *rand.Rand) (train, test []int, ok bool) {
	byClass := make(map[string][]int)
	for i, v := range labels {
		byClass[v] = append(byClass[v], i)
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	if len(classes) < 2 {
		logging.Info().Int("classes", len(classes)).Msg("Label has a single class, splitting without stratification")
		return nil, nil, false
	}
	for _, c := range classes {
		if len(byClass[c]) < 2 {
			logging.Warn().Str("class", c).Int("rows", len(byClass[c])).
				Msg("Label class has fewer than 2 rows, splitting without stratification")
			return nil, nil, false
		}
	}

	n := len(labels)
	quotas := make(map[string]int, len(classes))
	type remainder struct {
		class string
		frac  float64
	}
	rems := make([]remainder, 0, len(classes))
	assigned := 0
	for _, c := range classes {
		exact := float64(nTest) * float64(len(byClass[c])) / float64(n)
		q := int(math.Floor(exact))
		quotas[c] = q
		assigned += q
		rems = append(rems, remainder{class: c, frac: exact - float64(q)})
	}
	sort.SliceStable(rems, func(i, j int) bool {
		if rems[i].frac != rems[j].frac {
			return rems[i].frac > rems[j].frac
		}
		return len(byClass[rems[i].class]) > len(byClass[rems[j].class])
	})
	for i := 0; assigned < nTest; i = (i + 1) % len(rems) {
		c := rems[i].class
		if quotas[c] < len(byClass[c]) {
			quotas[c]++
			assigned++
		}
	}

	for _, c := range classes {
		idx := append([]int(nil), byClass[c]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		test = append(test, idx[:quotas[c]]...)
		train = append(train, idx[quotas[c]:]...)
	}
	rng.Shuffle(len(test), func(i, j int) { test[i], test[j] = test[j], test[i] })
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	return train, test, true
}
