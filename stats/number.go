package stats

// Number constrains the numeric leaf contexts to the two wire-level numeric
// shapes the engine distinguishes.
type Number interface {
	~int64 | ~float64
}

// NumberContext accumulates statistics for a numeric leaf: observation count,
// exact bounds, sign/fraction flags and a bounded distinct-value sample.
type NumberContext[T Number] struct {
	Count   Counter    `json:"count"`
	Samples Sampler[T] `json:"samples,omitempty"`
	MinMax[T]
	HasNegative bool `json:"hasNegative,omitempty"`
	HasFraction bool `json:"hasFraction,omitempty"`
}

// NewNumberContext returns a context whose sampler honors the given cap.
func NewNumberContext[T Number](sampleCap int) *NumberContext[T] {
	return &NumberContext[T]{Samples: Sampler[T]{Cap: sampleCap}}
}

// Observe records one numeric value. Fractional detection is the caller's
// business since only it sees the raw token.
func (c *NumberContext[T]) Observe(v T) {
	c.Count.Observe()
	c.Samples.Observe(v)
	c.MinMax.Observe(v)
	if v < 0 {
		c.HasNegative = true
	}
}

// Coalesce merges the other context into this one.
func (c *NumberContext[T]) Coalesce(other *NumberContext[T]) {
	if other == nil {
		return
	}
	c.Count.Coalesce(other.Count)
	c.Samples.Coalesce(other.Samples)
	c.MinMax.Coalesce(other.MinMax)
	c.HasNegative = c.HasNegative || other.HasNegative
	c.HasFraction = c.HasFraction || other.HasFraction
}
