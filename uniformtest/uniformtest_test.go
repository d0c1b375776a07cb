// Copyright 2019, LightStep Inc.

package uniformtest_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/lightstep/uniformity/uniformtest"
	"github.com/stretchr/testify/require"
)

type mockT struct {
	failed   bool
	failNow  bool
	messages []string
}

func (m *mockT) Errorf(format string, args ...interface{}) {
	m.failed = true
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

func (m *mockT) FailNow() {
	m.failNow = true
}

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

func TestAssertUniform(t *testing.T) {
	m := &mockT{}
	require.True(t, uniformtest.AssertUniform(m, evenly(19, 10)))
	require.False(t, m.failed)

	m = &mockT{}
	require.False(t, uniformtest.AssertUniform(m, []float64{1, 1, 1, 1}, "constant"))
	require.True(t, m.failed)
	require.False(t, m.failNow)
	require.Len(t, m.messages, 1)
	require.Contains(t, m.messages[0], "kurtosis")
	require.Contains(t, m.messages[0], "constant")
}

func TestRequireUniform(t *testing.T) {
	m := &mockT{}
	uniformtest.RequireUniform(m, evenly(19, 10))
	require.False(t, m.failNow)

	m = &mockT{}
	uniformtest.RequireUniform(m, []float64{5})
	require.True(t, m.failed)
	require.True(t, m.failNow)
}

func TestAssertLogUniform(t *testing.T) {
	// Powers of two with evenly spread exponents.
	var sample []float64
	for r := 0; r < 10; r++ {
		for e := 0; e < 19; e++ {
			sample = append(sample, math.Pow(2, float64(e)))
		}
	}

	m := &mockT{}
	require.True(t, uniformtest.AssertLogUniform(m, sample, 2))
	require.False(t, m.failed)

	// The same values are far from uniform without the transform.
	m = &mockT{}
	require.False(t, uniformtest.AssertUniform(m, sample))
	require.True(t, m.failed)
}

func TestRequireLogUniformInvalid(t *testing.T) {
	m := &mockT{}
	uniformtest.RequireLogUniform(m, []float64{1, 0, 2}, 10)
	require.True(t, m.failNow)
	require.Len(t, m.messages, 1)
	require.Contains(t, m.messages[0], "Invalid sample")
}

func TestWithTestingT(t *testing.T) {
	uniformtest.RequireUniform(t, evenly(7, 30))

	var decades []float64
	for r := 0; r < 2; r++ {
		for e := 0.; e <= 6; e++ {
			decades = append(decades, math.Pow(10, e))
		}
	}
	uniformtest.RequireLogUniform(t, decades, 10)
}
