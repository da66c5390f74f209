package fieldlens

import "github.com/fieldlens/fieldlens/stats"

// XMLTextField is the synthetic member name the XML driver uses for element
// character data, and XMLAttrPrefix marks attribute members.
const (
	XMLTextField  = "$value"
	XMLAttrPrefix = "@"
)

// CleanupXML rewrites, in place, the structural artifacts XML mapping leaves
// behind:
//
//   - a struct whose only member is the text field collapses into the text's
//     own schema,
//   - a member that appeared multiple times per parent element becomes a
//     sequence of its value schema,
//   - an empty struct (from <tag/>) becomes a null node.
//
// Apply it once, after the last XML input, before rendering. Inputs from
// other formats do not need it but are not harmed by it.
func CleanupXML(s *Schema) {
	if s == nil {
		return
	}
	switch s.Kind {
	case KindSequence:
		if s.Elem != nil {
			CleanupXML(s.Elem.Schema)
		}
	case KindStruct:
		for name, f := range s.Fields {
			CleanupXML(f.Schema)
			if f.Status.Duplicate > 0 {
				s.Fields[name] = repeatedToSequence(f)
			}
		}
		collapseTextOnly(s)
		emptyStructToNull(s)
	case KindUnion:
		for _, v := range s.Variants {
			CleanupXML(v)
		}
	}
}

// repeatedToSequence rewraps a member that XML repeated under one parent as
// a sequence member. The element statistics are reconstructed from the
// presence counters, so bounds reflect occurrences rather than positions.
func repeatedToSequence(f *Field) *Field {
	seq := &Schema{Kind: KindSequence, Seq: &stats.SequenceContext{}}
	seq.Seq.Count = stats.Counter(f.Status.Present)
	seq.Elem = &Field{
		Status: FieldStatus{Present: f.Status.Present + f.Status.Duplicate, Null: f.Status.Null},
		Schema: f.Schema,
	}
	return &Field{
		Status: FieldStatus{Present: f.Status.Present, Missing: f.Status.Missing},
		Schema: seq,
	}
}

// collapseTextOnly replaces <tag>text</tag> structs, whose only member is
// the synthetic text field, with the text schema itself.
func collapseTextOnly(s *Schema) {
	if len(s.Fields) != 1 {
		return
	}
	f, ok := s.Fields[XMLTextField]
	if !ok {
		return
	}
	nulls := s.Nulls + f.Status.Null
	agg := s.Agg
	*s = *f.Schema
	s.Nulls += nulls
	if s.Agg == nil {
		s.Agg = agg
	}
}

// emptyStructToNull degrades <tag/> elements, which decode as structs with
// no members, to null observations.
func emptyStructToNull(s *Schema) {
	if s.Kind != KindStruct || len(s.Fields) != 0 {
		return
	}
	count := s.Nulls
	if s.Struct != nil {
		count += uint64(s.Struct.Count)
	}
	*s = Schema{Kind: KindNull, Null: &stats.NullContext{Count: stats.Counter(count)}}
}
