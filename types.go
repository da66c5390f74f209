package fieldlens

import "github.com/fieldlens/fieldlens/stats"

// Format tags a self-describing serialization format in the driver registry.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCBOR Format = "cbor"
	FormatXML  Format = "xml"
)

// Severity expresses how a streaming condition is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Options bundles inference configuration. The zero value is usable:
// default sample cap, default pattern set, no depth or size limits.
type Options struct {
	// SampleCap bounds every distinct-value sample set kept by leaf
	// contexts. Zero means stats.DefaultSampleCap.
	SampleCap int
	// Patterns is the string detector set. Nil means stats.DefaultPatterns.
	Patterns []stats.Pattern
	// MaxDepth aborts a document whose nesting exceeds the limit (0 = off).
	MaxDepth int
	// MaxBytes aborts a document larger than the limit (0 = off).
	MaxBytes int64
	// OnDuplicateKey controls duplicate object keys at the stream level.
	// Ignore still counts duplicates in FieldStatus; Warn additionally
	// reports them to IssueSink; Error aborts the document.
	OnDuplicateKey Severity
	// IssueSink, when set, receives recoverable conditions (duplicate keys,
	// aggregator mismatches) that never abort inference. Sampler overflow is
	// not reported here; it is recorded on the schema as Sampler.Overflowed.
	IssueSink func(Issue)
	// NewAggregator, when set, attaches a fresh Aggregator to every node the
	// driver creates. See Aggregator.
	NewAggregator func(kind Kind) Aggregator
}

func (o Options) patterns() []stats.Pattern {
	if o.Patterns != nil {
		return o.Patterns
	}
	return stats.DefaultPatterns()
}

func (o Options) sink(i Issue) {
	if o.IssueSink != nil {
		o.IssueSink(i)
	}
}
