package fieldlens

import (
	"slices"

	"github.com/fieldlens/fieldlens/stats"
)

// StructuralEqual reports whether two schemas describe the same shape:
// kinds, field names, nesting, nullability, and surviving string pattern
// flags. Volatile statistics (counts, bounds, samples) are ignored, which is
// exactly the equivalence merge order is allowed to vary under.
func StructuralEqual(a, b *Schema) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if (a.Nulls > 0) != (b.Nulls > 0) {
		return false
	}
	switch a.Kind {
	case KindString:
		return equalPatternSets(a.Str, b.Str)
	case KindSequence:
		if (a.Elem == nil) != (b.Elem == nil) {
			return false
		}
		if a.Elem == nil {
			return true
		}
		return equalFieldStatus(a.Elem.Status, b.Elem.Status) &&
			StructuralEqual(a.Elem.Schema, b.Elem.Schema)
	case KindStruct:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for name, fa := range a.Fields {
			fb, ok := b.Fields[name]
			if !ok {
				return false
			}
			if !equalFieldStatus(fa.Status, fb.Status) {
				return false
			}
			if !StructuralEqual(fa.Schema, fb.Schema) {
				return false
			}
		}
		return true
	case KindUnion:
		if len(a.Variants) != len(b.Variants) {
			return false
		}
		// Variants carry at most one branch per kind, so sorting by kind
		// yields a canonical order on both sides.
		va := sortedByKind(a.Variants)
		vb := sortedByKind(b.Variants)
		for i := range va {
			if !StructuralEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// equalFieldStatus compares presence qualitatively: which situations occurred
// at all, not how often.
func equalFieldStatus(a, b FieldStatus) bool {
	return (a.Null > 0) == (b.Null > 0) &&
		(a.Missing > 0) == (b.Missing > 0) &&
		(a.Duplicate > 0) == (b.Duplicate > 0)
}

func equalPatternSets(a, b *stats.StringContext) bool {
	var pa, pb []string
	if a != nil {
		pa = a.Patterns
	}
	if b != nil {
		pb = b.Patterns
	}
	if len(pa) != len(pb) {
		return false
	}
	pa = slices.Clone(pa)
	pb = slices.Clone(pb)
	slices.Sort(pa)
	slices.Sort(pb)
	return slices.Equal(pa, pb)
}

func sortedByKind(vs []*Schema) []*Schema {
	out := slices.Clone(vs)
	slices.SortFunc(out, func(a, b *Schema) int { return int(a.Kind) - int(b.Kind) })
	return out
}
