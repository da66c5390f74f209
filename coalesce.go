package fieldlens

import "slices"

// Coalesce folds other into s. Both trees may come from independent inference
// runs; the merge is associative and commutative up to structural equality,
// so fan-out/fan-in pipelines can combine partial schemas in any order.
//
// other is never mutated. The returned issues report aggregator tag
// mismatches; the merge itself always succeeds.
func (s *Schema) Coalesce(other *Schema) Issues {
	var issues Issues
	s.coalesce(other, "", &issues)
	return issues
}

// CoalesceAll merges every schema into a single fresh tree, leaving the
// inputs untouched.
func CoalesceAll(schemas ...*Schema) (*Schema, Issues) {
	out := NewSchema()
	var issues Issues
	for _, sc := range schemas {
		issues = append(issues, out.Coalesce(sc)...)
	}
	return out, issues
}

func (s *Schema) coalesce(other *Schema, path string, issues *Issues) {
	if other == nil {
		return
	}
	if other.Kind == KindUnknown {
		s.Nulls += other.Nulls
		s.Agg = coalesceAggregators(s.Agg, other.Agg, path, issues)
		return
	}
	if s.Kind == KindUnknown {
		agg := s.Agg
		nulls := s.Nulls
		*s = *other.Clone()
		s.Nulls += nulls
		s.Agg = coalesceAggregators(agg, other.Agg, path, issues)
		return
	}

	// Null absorption: a null side folds into the counterpart's null
	// account instead of widening the shape.
	if other.Kind == KindNull {
		s.Nulls += other.ObservationCount()
		s.Agg = coalesceAggregators(s.Agg, other.Agg, path, issues)
		return
	}
	if s.Kind == KindNull {
		nulls := s.ObservationCount()
		agg := s.Agg
		*s = *other.Clone()
		s.Nulls += nulls
		s.Agg = coalesceAggregators(agg, other.Agg, path, issues)
		return
	}

	if s.Kind == KindUnion {
		s.coalesceIntoUnion(other, path, issues)
		return
	}
	if other.Kind == KindUnion {
		s.promoteToUnion()
		s.coalesceIntoUnion(other, path, issues)
		return
	}

	if s.Kind != other.Kind {
		s.promoteToUnion()
		s.coalesceIntoUnion(other, path, issues)
		return
	}

	s.Nulls += other.Nulls
	s.Agg = coalesceAggregators(s.Agg, other.Agg, path, issues)
	switch s.Kind {
	case KindBoolean:
		s.Bool.Coalesce(other.Bool)
	case KindInteger:
		s.Int.Coalesce(other.Int)
	case KindFloat:
		s.Float.Coalesce(other.Float)
	case KindString:
		s.Str.Coalesce(other.Str)
	case KindBytes:
		s.Bytes.Coalesce(other.Bytes)
	case KindSequence:
		s.Seq.Coalesce(other.Seq)
		s.coalesceElem(other, path, issues)
	case KindStruct:
		s.coalesceStruct(other, path, issues)
	}
}

func (s *Schema) coalesceElem(other *Schema, path string, issues *Issues) {
	switch {
	case other.Elem == nil:
	case s.Elem == nil:
		s.Elem = other.Elem.clone()
	default:
		s.Elem.Status.coalesce(other.Elem.Status)
		s.Elem.Schema.coalesce(other.Elem.Schema, path+"/elements", issues)
	}
}

func (s *Schema) coalesceStruct(other *Schema, path string, issues *Issues) {
	// Record counts before the merge decide how much absence the fields that
	// exist on only one side accumulate.
	selfRecords := uint64(0)
	if s.Struct != nil {
		selfRecords = uint64(s.Struct.Count)
	}
	otherRecords := uint64(0)
	if other.Struct != nil {
		otherRecords = uint64(other.Struct.Count)
	}
	s.Struct.Coalesce(other.Struct)

	if s.Fields == nil && len(other.Fields) > 0 {
		s.Fields = make(map[string]*Field, len(other.Fields))
	}
	for name, of := range other.Fields {
		if f, ok := s.Fields[name]; ok {
			f.Status.coalesce(of.Status)
			f.Schema.coalesce(of.Schema, path+"/fields/"+name, issues)
			continue
		}
		nf := of.clone()
		nf.Status.Missing += selfRecords
		s.Fields[name] = nf
	}
	for name, f := range s.Fields {
		if _, ok := other.Fields[name]; !ok {
			f.Status.Missing += otherRecords
		}
	}
}

// promoteToUnion rewraps the node as a one-variant union. Null accounting
// stays on the union wrapper so null never becomes a branch.
func (s *Schema) promoteToUnion() {
	inner := *s
	inner.Nulls = 0
	s.Null = nil
	s.Bool = nil
	s.Int = nil
	s.Float = nil
	s.Str = nil
	s.Bytes = nil
	s.Seq = nil
	s.Struct = nil
	s.Elem = nil
	s.Fields = nil
	s.Kind = KindUnion
	s.Variants = []*Schema{&inner}
	s.Agg = nil
}

// coalesceIntoUnion folds other into the union s. Variants pair up by kind,
// so each kind occupies at most one slot and merge order cannot change the
// final shape.
func (s *Schema) coalesceIntoUnion(other *Schema, path string, issues *Issues) {
	if other.Kind != KindUnion {
		s.Nulls += other.Nulls
		branch := other.Clone()
		branch.Nulls = 0
		s.mergeVariant(branch, path, issues)
		return
	}
	s.Nulls += other.Nulls
	for _, v := range other.Variants {
		s.mergeVariant(v.Clone(), path, issues)
	}
}

// mergeVariant owns branch: it is either coalesced into an existing variant
// of the same kind or appended.
func (s *Schema) mergeVariant(branch *Schema, path string, issues *Issues) {
	for _, v := range s.Variants {
		if v.Kind == branch.Kind {
			v.coalesce(branch, path+"/variants", issues)
			return
		}
	}
	s.Variants = append(s.Variants, branch)
	sortVariants(s.Variants)
}

// sortVariants keeps branches in kind order so the interchange encoding of a
// union does not depend on the order inputs arrived in.
func sortVariants(vs []*Schema) {
	slices.SortFunc(vs, func(a, b *Schema) int { return int(a.Kind) - int(b.Kind) })
}
