// Copyright 2019, LightStep Inc.

package uniformity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ExcessKurtosis returns the fourth central moment of x divided by the
// square of its second central moment, minus 3.  Moments are
// population moments (no small-sample correction).  The result is NaN
// when x is empty or has zero variance.
func ExcessKurtosis(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	m2 := stat.Moment(2, x, nil)
	if m2 == 0 {
		return math.NaN()
	}
	m4 := stat.Moment(4, x, nil)
	return m4/(m2*m2) - 3
}

// ValueCounts returns the distinct values of x in ascending order
// together with the number of times each occurs.  x is not modified.
func ValueCounts(x []float64) (values, counts []float64) {
	if len(x) == 0 {
		return nil, nil
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			values = append(values, v)
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
	}
	return values, counts
}

// ChiSquare tests obs against the hypothesis that every category is
// equally likely, returning Pearson's statistic and its p-value with
// len(obs)-1 degrees of freedom.  With fewer than two categories the
// p-value is NaN.
func ChiSquare(obs []float64) (statistic, pvalue float64) {
	if len(obs) == 0 {
		return math.NaN(), math.NaN()
	}

	mean := stat.Mean(obs, nil)
	exp := make([]float64, len(obs))
	for i := range exp {
		exp[i] = mean
	}
	statistic = stat.ChiSquare(obs, exp)

	if len(obs) < 2 {
		return statistic, math.NaN()
	}
	dist := distuv.ChiSquared{K: float64(len(obs) - 1)}
	return statistic, dist.Survival(statistic)
}
