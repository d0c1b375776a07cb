// Copyright 2019, LightStep Inc.

package uniformity_test

import (
	"math"
	"testing"

	"github.com/lightstep/uniformity"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// evenly returns each of 1..k repeated n times.
func evenly(k, n int) []float64 {
	var out []float64
	for r := 0; r < n; r++ {
		for v := 1; v <= k; v++ {
			out = append(out, float64(v))
		}
	}
	return out
}

func TestExcessKurtosis(t *testing.T) {
	require.InDelta(t, -1.36, uniformity.ExcessKurtosis([]float64{1, 2, 3, 4}), 1e-12)

	require.True(t, math.IsNaN(uniformity.ExcessKurtosis(nil)))
	require.True(t, math.IsNaN(uniformity.ExcessKurtosis([]float64{2, 2, 2})))

	// Discrete uniform on k points: -6(k²+1) / 5(k²-1).
	for _, k := range []int{2, 7, 19, 100} {
		kk := float64(k * k)
		require.InDelta(t, -6*(kk+1)/(5*(kk-1)), uniformity.ExcessKurtosis(evenly(k, 3)), 1e-9)
	}
}

func TestExcessKurtosisNormal(t *testing.T) {
	normal := distuv.Normal{Mu: 10, Sigma: 3, Src: rand.NewSource(98887)}

	x := make([]float64, 100000)
	for i := range x {
		x[i] = normal.Rand()
	}
	require.InDelta(t, 0, uniformity.ExcessKurtosis(x), 0.1)
}

func TestValueCounts(t *testing.T) {
	x := []float64{3, 1, 2, 3, 3, 1}
	values, counts := uniformity.ValueCounts(x)

	require.Equal(t, []float64{1, 2, 3}, values)
	require.Equal(t, []float64{2, 1, 3}, counts)
	require.Equal(t, []float64{3, 1, 2, 3, 3, 1}, x)

	values, counts = uniformity.ValueCounts(nil)
	require.Nil(t, values)
	require.Nil(t, counts)
}

func TestChiSquare(t *testing.T) {
	for _, test := range []struct {
		obs       []float64
		statistic float64
		pvalue    float64
	}{
		{[]float64{16, 18, 16, 14, 12, 12}, 2, 0.8491450360846096},
		{[]float64{10, 10, 10}, 0, 1},
		{[]float64{90, 10}, 64, 1.2441921148543513e-15},
	} {
		statistic, pvalue := uniformity.ChiSquare(test.obs)
		require.InDelta(t, test.statistic, statistic, 1e-9, "%v", test.obs)
		require.InDelta(t, test.pvalue, pvalue, 1e-9, "%v", test.obs)
	}
}

func TestChiSquareSingleCategory(t *testing.T) {
	statistic, pvalue := uniformity.ChiSquare([]float64{5})
	require.Equal(t, 0., statistic)
	require.True(t, math.IsNaN(pvalue))

	statistic, pvalue = uniformity.ChiSquare(nil)
	require.True(t, math.IsNaN(statistic))
	require.True(t, math.IsNaN(pvalue))
}
