// Copyright 2019, LightStep Inc.

// Package uniformtest reports uniformity checks through a test
// framework in the style of testify's assert and require packages.
package uniformtest

import (
	"errors"

	"github.com/lightstep/uniformity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tHelper interface {
	Helper()
}

// AssertUniform marks t as failed unless sample passes
// uniformity.Check.  It returns whether the assertion held.
func AssertUniform(t assert.TestingT, sample []float64, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, uniformity.Check(sample), msgAndArgs...)
}

// AssertLogUniform marks t as failed unless sample passes
// uniformity.CheckLog in base.
func AssertLogUniform(t assert.TestingT, sample []float64, base float64, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return report(t, uniformity.CheckLog(sample, base), msgAndArgs...)
}

// RequireUniform is AssertUniform followed by t.FailNow on failure.
func RequireUniform(t require.TestingT, sample []float64, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertUniform(t, sample, msgAndArgs...) {
		t.FailNow()
	}
}

// RequireLogUniform is AssertLogUniform followed by t.FailNow on
// failure.
func RequireLogUniform(t require.TestingT, sample []float64, base float64, msgAndArgs ...interface{}) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertLogUniform(t, sample, base, msgAndArgs...) {
		t.FailNow()
	}
}

// report distinguishes statistical failures from malformed input in
// the failure message.
func report(t assert.TestingT, err error, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err == nil {
		return true
	}
	var f *uniformity.Failure
	if errors.As(err, &f) {
		return assert.Fail(t, f.Error(), msgAndArgs...)
	}
	return assert.Fail(t, "Invalid sample: "+err.Error(), msgAndArgs...)
}
