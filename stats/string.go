package stats

import "strings"

// Strings that usually mean "no value" in messy exports. Occurrences are
// counted so downstream users can spot columns that fake nullability.
var suspiciousStrings = map[string]struct{}{
	"n/a": {}, "na": {}, "nan": {}, "null": {}, "none": {}, "nil": {},
	"?": {}, "-": {}, "/": {}, "": {}, " ": {}, "  ": {},
}

// StringContext accumulates statistics for a string leaf.
//
// Patterns narrows monotonically: the first sample initializes it to every
// matching detector, each further sample intersects it. Once empty it stays
// empty, so the surviving names are guaranteed to hold for every sample.
type StringContext struct {
	Count      Counter             `json:"count"`
	Samples    Sampler[string]     `json:"samples,omitempty"`
	Length     MinMax[int]         `json:"length"`
	Patterns   []string            `json:"patterns,omitempty"`
	Suspicious CountingSet[string] `json:"suspicious,omitempty"`
}

// NewStringContext returns a context whose sampler honors the given cap.
func NewStringContext(sampleCap int) *StringContext {
	return &StringContext{Samples: Sampler[string]{Cap: sampleCap}}
}

// Observe records one string value against the configured detector set.
func (c *StringContext) Observe(v string, patterns []Pattern) {
	first := c.Count == 0
	c.Count.Observe()
	c.Samples.Observe(v)
	c.Length.Observe(len(v))
	if _, ok := suspiciousStrings[strings.ToLower(v)]; ok {
		c.Suspicious.Observe(v)
	}
	if first {
		c.Patterns = matchingNames(v, patterns)
		return
	}
	if len(c.Patterns) > 0 {
		c.Patterns = intersectNames(c.Patterns, matchingNames(v, patterns))
	}
}

// Coalesce merges the other context into this one; pattern sets intersect.
func (c *StringContext) Coalesce(other *StringContext) {
	if other == nil {
		return
	}
	switch {
	case other.Count == 0:
	case c.Count == 0:
		c.Patterns = append([]string(nil), other.Patterns...)
	default:
		c.Patterns = intersectNames(c.Patterns, other.Patterns)
	}
	c.Count.Coalesce(other.Count)
	c.Samples.Coalesce(other.Samples)
	c.Length.Coalesce(other.Length)
	c.Suspicious.Coalesce(other.Suspicious)
}

// HasPattern reports whether the named detector still holds for every sample.
func (c *StringContext) HasPattern(name string) bool {
	for _, n := range c.Patterns {
		if n == name {
			return true
		}
	}
	return false
}
