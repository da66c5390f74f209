package fieldlens

// Aggregator is a user-supplied statistic attached to a schema node. The
// driver calls Observe for every value the node absorbs; Coalesce folds the
// aggregators of merged trees together.
//
// Merging dispatches on Tag: when two nodes carry aggregators with different
// tags the left one survives unchanged and an aggregator_mismatch issue is
// reported, so a merge never corrupts custom state.
type Aggregator interface {
	// Tag identifies the aggregator implementation. Merge pairs only equal
	// tags.
	Tag() string
	// Observe folds one observed value into the aggregate. Scalars arrive as
	// bool, int64, float64, string or []byte; nulls as nil; containers are
	// observed as their element/field values, not as a whole.
	Observe(v any)
	// Merge folds another aggregator with the same tag into this one.
	Merge(other Aggregator)
	// Clone returns an independent deep copy.
	Clone() Aggregator
}

// coalesceAggregators merges src into dst, honoring the tag contract.
// The returned aggregator replaces dst's slot.
func coalesceAggregators(dst, src Aggregator, path string, issues *Issues) Aggregator {
	switch {
	case src == nil:
		return dst
	case dst == nil:
		return src.Clone()
	case dst.Tag() != src.Tag():
		*issues = append(*issues, Issue{
			Path:    path,
			Code:    CodeAggregatorMismatch,
			Message: "aggregator " + dst.Tag() + " cannot merge with " + src.Tag(),
		})
		return dst
	default:
		dst.Merge(src)
		return dst
	}
}
