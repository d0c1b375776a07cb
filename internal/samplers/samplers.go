// Copyright 2019, LightStep Inc.

// Package samplers provides the random search-space domains that the
// uniformity tests exercise: uniform and log-uniform, continuous and
// integer.
package samplers

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws n observations from a fixed distribution.
type Sampler interface {
	Sample(n int) []float64
}

type uniform struct {
	dist distuv.Uniform
}

type logUniform struct {
	base float64
	dist distuv.Uniform
}

type randInt struct {
	lo, hi float64
	dist   distuv.Uniform
}

type logRandInt struct {
	lo, hi float64
	log    logUniform
}

// Uniform samples real numbers uniformly from [lo, hi).
func Uniform(lo, hi float64, src rand.Source) Sampler {
	checkRange(lo, hi)
	return uniform{dist: distuv.Uniform{Min: lo, Max: hi, Src: src}}
}

// LogUniform samples real numbers from [lo, hi) such that their
// logarithms in base are uniformly distributed.
func LogUniform(lo, hi, base float64, src rand.Source) Sampler {
	checkRange(lo, hi)
	if !(lo > 0) {
		panic(fmt.Sprint("Log-uniform lower bound must be positive: ", lo))
	}
	checkBase(base)
	return newLogUniform(lo, hi, base, src)
}

// RandInt samples integers uniformly from [lo, hi).
func RandInt(lo, hi int, src rand.Source) Sampler {
	checkRange(float64(lo), float64(hi))
	return randInt{
		lo:   float64(lo),
		hi:   float64(hi),
		dist: distuv.Uniform{Min: float64(lo), Max: float64(hi), Src: src},
	}
}

// LogRandInt samples integers from [lo, hi) by truncating a
// log-uniform draw on [lo, hi).
func LogRandInt(lo, hi int, base float64, src rand.Source) Sampler {
	checkRange(float64(lo), float64(hi))
	if lo <= 0 {
		panic(fmt.Sprint("Log-uniform lower bound must be positive: ", lo))
	}
	checkBase(base)
	return logRandInt{
		lo:  float64(lo),
		hi:  float64(hi),
		log: newLogUniform(float64(lo), float64(hi), base, src),
	}
}

func newLogUniform(lo, hi, base float64, src rand.Source) logUniform {
	lb := math.Log(base)
	return logUniform{
		base: base,
		dist: distuv.Uniform{Min: math.Log(lo) / lb, Max: math.Log(hi) / lb, Src: src},
	}
}

func (u uniform) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = u.dist.Rand()
	}
	return out
}

func (l logUniform) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pow(l.base, l.dist.Rand())
	}
	return out
}

func (r randInt) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = clampInt(r.dist.Rand(), r.lo, r.hi)
	}
	return out
}

func (r logRandInt) Sample(n int) []float64 {
	out := r.log.Sample(n)
	for i, v := range out {
		out[i] = clampInt(v, r.lo, r.hi)
	}
	return out
}

// clampInt truncates v and keeps it inside [lo, hi) against rounding
// at the upper bound.
func clampInt(v, lo, hi float64) float64 {
	v = math.Floor(v)
	if v >= hi {
		v = hi - 1
	}
	if v < lo {
		v = lo
	}
	return v
}

func checkRange(lo, hi float64) {
	if !(lo < hi) {
		panic(fmt.Sprintf("Invalid sampling range [%v, %v)", lo, hi))
	}
}

func checkBase(base float64) {
	if !(base > 0) || base == 1 || math.IsInf(base, 0) {
		panic(fmt.Sprint("Invalid log base: ", base))
	}
}
