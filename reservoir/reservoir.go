// Copyright 2019, LightStep Inc.

// Package reservoir collects a fixed-size uniform sample from a stream
// of sampler output, so that long runs can be checked for uniformity
// with bounded memory.
package reservoir

import (
	"math/rand"
)

// Number is the set of item types that can be turned into a sample
// for the uniformity checker.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Reservoir keeps a uniform sample of the items it has observed using
// Algorithm R from "Random sampling with a reservoir" by Jeffrey
// Vitter (1985).
// https://en.wikipedia.org/wiki/Reservoir_sampling#Algorithm_R
type Reservoir[T any] struct {
	capacity int
	observed int
	buffer   []T
	rnd      *rand.Rand
}

// New returns a reservoir holding at most capacity items, drawing
// replacement decisions from rnd.
func New[T any](capacity int, rnd *rand.Rand) *Reservoir[T] {
	r := &Reservoir[T]{}
	r.Init(capacity, rnd)
	return r
}

// Init resets r to an empty reservoir holding at most capacity items.
func (r *Reservoir[T]) Init(capacity int, rnd *rand.Rand) {
	*r = Reservoir[T]{
		capacity: capacity,
		buffer:   make([]T, 0, capacity),
		rnd:      rnd,
	}
}

// Add observes item.  Once the reservoir is full, item replaces a
// random entry with probability capacity/observed.
func (r *Reservoir[T]) Add(item T) {
	r.observed++

	if len(r.buffer) < r.capacity {
		r.buffer = append(r.buffer, item)
		return
	}

	index := r.rnd.Intn(r.observed)
	if index < r.capacity {
		r.buffer[index] = item
	}
}

// Get returns the i'th kept item.
func (r *Reservoir[T]) Get(i int) T {
	return r.buffer[i]
}

// Size returns the number of kept items, at most Capacity().
func (r *Reservoir[T]) Size() int {
	return len(r.buffer)
}

// Capacity returns the maximum number of kept items.
func (r *Reservoir[T]) Capacity() int {
	return r.capacity
}

// Count returns the number of items observed.
func (r *Reservoir[T]) Count() int {
	return r.observed
}

// Values returns a copy of the kept items.
func (r *Reservoir[T]) Values() []T {
	out := make([]T, len(r.buffer))
	copy(out, r.buffer)
	return out
}

// Float64s returns the kept items of r as a sample for the checker.
func Float64s[T Number](r *Reservoir[T]) []float64 {
	out := make([]float64, len(r.buffer))
	for i, v := range r.buffer {
		out[i] = float64(v)
	}
	return out
}
