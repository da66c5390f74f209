package fieldlens

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/fieldlens/fieldlens/stats"
)

// EncodeSchema renders the schema in its stable interchange form: a JSON
// document with a "type" discriminator per node and map keys in sorted
// order, so equal schemas always encode to equal bytes.
//
// Aggregators do not survive interchange; re-attach them after decoding if
// custom statistics should keep accumulating.
func EncodeSchema(s *Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("fieldlens: cannot encode nil schema")
	}
	return json.Marshal(s)
}

// DecodeSchema restores a schema from its interchange form. The decoded tree
// is fully functional: it can keep absorbing observations and coalesce with
// live trees. Nodes whose context object was omitted from the input (a
// truncated or hand-edited file) are repaired with empty contexts rather
// than rejected.
func DecodeSchema(data []byte) (*Schema, error) {
	s := NewSchema()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, Issue{Path: "/", Code: CodeDecodeError, Message: "invalid schema interchange: " + err.Error(), Cause: err}
	}
	s.normalize()
	return s, nil
}

// normalize repairs a decoded tree so inference and coalescing can rely on
// the Kind/context pairing: every node gets the context its kind requires,
// absent child schemas become unknown nodes, and null union branches drop.
func (s *Schema) normalize() {
	switch s.Kind {
	case KindNull:
		if s.Null == nil {
			s.Null = &stats.NullContext{}
		}
	case KindBoolean:
		if s.Bool == nil {
			s.Bool = &stats.BooleanContext{}
		}
	case KindInteger:
		if s.Int == nil {
			s.Int = stats.NewNumberContext[int64](0)
		}
	case KindFloat:
		if s.Float == nil {
			s.Float = stats.NewNumberContext[float64](0)
		}
	case KindString:
		if s.Str == nil {
			s.Str = stats.NewStringContext(0)
		}
	case KindBytes:
		if s.Bytes == nil {
			s.Bytes = &stats.BytesContext{}
		}
	case KindSequence:
		if s.Seq == nil {
			s.Seq = &stats.SequenceContext{}
		}
	case KindStruct:
		if s.Struct == nil {
			s.Struct = &stats.StructContext{}
		}
	}
	if s.Elem != nil {
		if s.Elem.Schema == nil {
			s.Elem.Schema = NewSchema()
		}
		s.Elem.Schema.normalize()
	}
	for name, f := range s.Fields {
		if f == nil {
			f = &Field{}
			s.Fields[name] = f
		}
		if f.Schema == nil {
			f.Schema = NewSchema()
		}
		f.Schema.normalize()
	}
	if s.Variants != nil {
		kept := s.Variants[:0]
		for _, v := range s.Variants {
			if v == nil {
				continue
			}
			v.normalize()
			kept = append(kept, v)
		}
		s.Variants = kept
		sortVariants(s.Variants)
	}
}
