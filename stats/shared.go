package stats

import (
	"cmp"
	"slices"
)

// DefaultSampleCap bounds the distinct-value sets kept by Sampler when no
// explicit cap is configured.
const DefaultSampleCap = 5

// Counter counts observations. The zero value is ready to use.
type Counter uint64

// Observe records one observation.
func (c *Counter) Observe() { *c++ }

// Coalesce merges another counter into this one.
func (c *Counter) Coalesce(other Counter) { *c += Counter(other) }

// MinMax tracks the lowest and highest value observed. Nil bounds mean no
// observation yet.
type MinMax[T cmp.Ordered] struct {
	Min *T `json:"min,omitempty"`
	Max *T `json:"max,omitempty"`
}

// Observe widens the bounds to include v.
func (m *MinMax[T]) Observe(v T) {
	if m.Min == nil || v < *m.Min {
		vv := v
		m.Min = &vv
	}
	if m.Max == nil || v > *m.Max {
		vv := v
		m.Max = &vv
	}
}

// Coalesce widens the bounds to include the other range.
func (m *MinMax[T]) Coalesce(other MinMax[T]) {
	if other.Min != nil {
		m.Observe(*other.Min)
	}
	if other.Max != nil {
		m.Observe(*other.Max)
	}
}

// Sampler keeps up to Cap distinct samples in sorted order. Once more
// distinct values show up the set stops being exhaustive and further values
// are dropped; aggregate stats elsewhere keep accumulating.
type Sampler[T cmp.Ordered] struct {
	Values     []T  `json:"values,omitempty"`
	Overflowed bool `json:"overflowed,omitempty"`
	Cap        int  `json:"cap,omitempty"`
}

func (s *Sampler[T]) cap() int {
	if s.Cap > 0 {
		return s.Cap
	}
	return DefaultSampleCap
}

// Exhaustive reports whether Values holds every distinct value ever observed.
func (s *Sampler[T]) Exhaustive() bool { return !s.Overflowed }

// Observe inserts v into the sample set, respecting the cap.
func (s *Sampler[T]) Observe(v T) {
	i, found := slices.BinarySearch(s.Values, v)
	if found {
		return
	}
	if len(s.Values) >= s.cap() {
		s.Overflowed = true
		return
	}
	s.Values = slices.Insert(s.Values, i, v)
}

// Coalesce unions the two sample sets, trimming back to the cap.
func (s *Sampler[T]) Coalesce(other Sampler[T]) {
	s.Overflowed = s.Overflowed || other.Overflowed
	for _, v := range other.Values {
		i, found := slices.BinarySearch(s.Values, v)
		if found {
			continue
		}
		s.Values = slices.Insert(s.Values, i, v)
	}
	if len(s.Values) > s.cap() {
		s.Values = s.Values[:s.cap()]
		s.Overflowed = true
	}
}

// CountingSet records distinct values together with their occurrence counts.
type CountingSet[T comparable] map[T]uint64

// Observe adds one occurrence of v.
func (s *CountingSet[T]) Observe(v T) {
	if *s == nil {
		*s = CountingSet[T]{}
	}
	(*s)[v]++
}

// Coalesce sums the occurrence counts of the other set into this one.
func (s *CountingSet[T]) Coalesce(other CountingSet[T]) {
	if len(other) == 0 {
		return
	}
	if *s == nil {
		*s = CountingSet[T]{}
	}
	for k, n := range other {
		(*s)[k] += n
	}
}

// Len returns the number of distinct values recorded.
func (s CountingSet[T]) Len() int { return len(s) }
