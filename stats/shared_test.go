package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMaxObserve(t *testing.T) {
	var m MinMax[int64]
	assert.Nil(t, m.Min)
	assert.Nil(t, m.Max)

	m.Observe(5)
	m.Observe(-3)
	m.Observe(4)

	require.NotNil(t, m.Min)
	require.NotNil(t, m.Max)
	assert.Equal(t, int64(-3), *m.Min)
	assert.Equal(t, int64(5), *m.Max)
}

func TestMinMaxCoalesce(t *testing.T) {
	var a, b MinMax[int]
	a.Observe(1)
	a.Observe(10)
	b.Observe(-5)
	b.Observe(3)

	a.Coalesce(b)
	assert.Equal(t, -5, *a.Min)
	assert.Equal(t, 10, *a.Max)

	var empty MinMax[int]
	a.Coalesce(empty)
	assert.Equal(t, -5, *a.Min)
	assert.Equal(t, 10, *a.Max)
}

func TestSamplerKeepsDistinctSorted(t *testing.T) {
	var s Sampler[int64]
	for _, v := range []int64{3, 1, 3, 2, 1} {
		s.Observe(v)
	}
	assert.Equal(t, []int64{1, 2, 3}, s.Values)
	assert.True(t, s.Exhaustive())
}

func TestSamplerOverflow(t *testing.T) {
	s := Sampler[int64]{Cap: 3}
	for v := int64(0); v < 10; v++ {
		s.Observe(v)
	}
	assert.Len(t, s.Values, 3)
	assert.False(t, s.Exhaustive())

	// A value that is already sampled does not count as overflow pressure.
	s2 := Sampler[int64]{Cap: 3}
	s2.Observe(1)
	s2.Observe(1)
	s2.Observe(1)
	assert.True(t, s2.Exhaustive())
}

func TestSamplerCoalesce(t *testing.T) {
	a := Sampler[string]{Cap: 3}
	b := Sampler[string]{Cap: 3}
	a.Observe("a")
	a.Observe("b")
	b.Observe("b")
	b.Observe("c")

	a.Coalesce(b)
	assert.Equal(t, []string{"a", "b", "c"}, a.Values)
	assert.True(t, a.Exhaustive())

	b.Observe("d")
	b.Observe("e")
	a.Coalesce(b)
	assert.Len(t, a.Values, 3)
	assert.False(t, a.Exhaustive())
}

func TestCountingSet(t *testing.T) {
	var s CountingSet[string]
	s.Observe("x")
	s.Observe("x")
	s.Observe("y")
	assert.Equal(t, uint64(2), s["x"])
	assert.Equal(t, 2, s.Len())

	var other CountingSet[string]
	other.Observe("x")
	s.Coalesce(other)
	assert.Equal(t, uint64(3), s["x"])

	// Coalescing into a nil set allocates it.
	var dst CountingSet[string]
	dst.Coalesce(s)
	assert.Equal(t, uint64(3), dst["x"])
}
