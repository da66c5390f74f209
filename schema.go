package fieldlens

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/fieldlens/fieldlens/stats"
)

// Kind discriminates the shape a schema node has settled on.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindBytes
	KindSequence
	KindStruct
	KindUnion
)

var kindNames = [...]string{
	KindUnknown:  "Unknown",
	KindNull:     "Null",
	KindBoolean:  "Boolean",
	KindInteger:  "Integer",
	KindFloat:    "Float",
	KindString:   "String",
	KindBytes:    "Bytes",
	KindSequence: "Sequence",
	KindStruct:   "Struct",
	KindUnion:    "Union",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON renders the kind as its stable name so the interchange form is
// readable and version-tolerant.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("fieldlens: invalid kind %d", int(k))
	}
	return json.Marshal(kindNames[k])
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("fieldlens: unknown kind %q", name)
}

// Schema is one node of the inferred shape tree. Exactly the context slots
// matching Kind are populated; the rest stay nil and are omitted from the
// interchange form.
//
// Nulls counts null observations absorbed by this node. Null never becomes a
// union branch: any node silently accepts null and records it here (or, for
// a pure-null node, Kind is KindNull and Null carries the count).
type Schema struct {
	Kind  Kind   `json:"type"`
	Nulls uint64 `json:"nulls,omitempty"`

	Null  *stats.NullContext             `json:"null,omitempty"`
	Bool  *stats.BooleanContext          `json:"boolean,omitempty"`
	Int   *stats.NumberContext[int64]    `json:"integer,omitempty"`
	Float *stats.NumberContext[float64]  `json:"float,omitempty"`
	Str   *stats.StringContext           `json:"string,omitempty"`
	Bytes *stats.BytesContext            `json:"bytes,omitempty"`
	Seq   *stats.SequenceContext         `json:"sequence,omitempty"`
	Struct *stats.StructContext          `json:"struct,omitempty"`

	// Elem describes sequence elements; nil for a sequence that only ever
	// observed empty arrays.
	Elem *Field `json:"elements,omitempty"`
	// Fields maps struct member names to their field records.
	Fields map[string]*Field `json:"fields,omitempty"`
	// Variants holds the branches of a union, at most one per kind.
	Variants []*Schema `json:"variants,omitempty"`

	// Agg is the optional custom aggregator attached to this node. It does
	// not survive the interchange form.
	Agg Aggregator `json:"-"`
}

// NewSchema returns an empty schema ready to absorb observations.
func NewSchema() *Schema { return &Schema{Kind: KindUnknown} }

// Field is a struct member or sequence element: shape plus presence
// accounting relative to the parent.
type Field struct {
	Status FieldStatus `json:"status"`
	Schema *Schema     `json:"schema"`
}

// FieldStatus counts how a field appeared across parent records. For struct
// members Present + Null + Missing equals the parent's record count.
type FieldStatus struct {
	Present   uint64 `json:"present"`
	Null      uint64 `json:"null,omitempty"`
	Missing   uint64 `json:"missing,omitempty"`
	Duplicate uint64 `json:"duplicate,omitempty"`
}

// MayBeNull reports whether the field was ever observed as null.
func (s FieldStatus) MayBeNull() bool { return s.Null > 0 }

// Required reports whether the field appeared, non-null, in every record.
func (s FieldStatus) Required() bool { return s.Missing == 0 && s.Null == 0 }

func (s *FieldStatus) coalesce(other FieldStatus) {
	s.Present += other.Present
	s.Null += other.Null
	s.Missing += other.Missing
	s.Duplicate += other.Duplicate
}

// ObservationCount returns how many values this node absorbed, nulls
// included.
func (s *Schema) ObservationCount() uint64 {
	if s == nil {
		return 0
	}
	var n uint64
	switch s.Kind {
	case KindNull:
		if s.Null != nil {
			return uint64(s.Null.Count)
		}
		return s.Nulls
	case KindBoolean:
		if s.Bool != nil {
			n = uint64(s.Bool.Count)
		}
	case KindInteger:
		if s.Int != nil {
			n = uint64(s.Int.Count)
		}
	case KindFloat:
		if s.Float != nil {
			n = uint64(s.Float.Count)
		}
	case KindString:
		if s.Str != nil {
			n = uint64(s.Str.Count)
		}
	case KindBytes:
		if s.Bytes != nil {
			n = uint64(s.Bytes.Count)
		}
	case KindSequence:
		if s.Seq != nil {
			n = uint64(s.Seq.Count)
		}
	case KindStruct:
		if s.Struct != nil {
			n = uint64(s.Struct.Count)
		}
	case KindUnion:
		for _, v := range s.Variants {
			n += v.ObservationCount()
		}
		return n + s.Nulls
	}
	return n + s.Nulls
}

// Clone deep-copies the schema tree, aggregators included.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{Kind: s.Kind, Nulls: s.Nulls}
	if s.Null != nil {
		c := *s.Null
		out.Null = &c
	}
	if s.Bool != nil {
		c := *s.Bool
		out.Bool = &c
	}
	if s.Int != nil {
		out.Int = cloneNumber(s.Int)
	}
	if s.Float != nil {
		out.Float = cloneNumber(s.Float)
	}
	if s.Str != nil {
		out.Str = cloneString(s.Str)
	}
	if s.Bytes != nil {
		c := *s.Bytes
		out.Bytes = &c
	}
	if s.Seq != nil {
		c := *s.Seq
		out.Seq = &c
	}
	if s.Struct != nil {
		c := *s.Struct
		out.Struct = &c
	}
	if s.Elem != nil {
		out.Elem = s.Elem.clone()
	}
	if s.Fields != nil {
		out.Fields = make(map[string]*Field, len(s.Fields))
		for name, f := range s.Fields {
			out.Fields[name] = f.clone()
		}
	}
	if s.Variants != nil {
		out.Variants = make([]*Schema, len(s.Variants))
		for i, v := range s.Variants {
			out.Variants[i] = v.Clone()
		}
	}
	if s.Agg != nil {
		out.Agg = s.Agg.Clone()
	}
	return out
}

func (f *Field) clone() *Field {
	if f == nil {
		return nil
	}
	return &Field{Status: f.Status, Schema: f.Schema.Clone()}
}

func cloneNumber[T stats.Number](c *stats.NumberContext[T]) *stats.NumberContext[T] {
	out := *c
	out.Samples.Values = append([]T(nil), c.Samples.Values...)
	return &out
}

func cloneString(c *stats.StringContext) *stats.StringContext {
	out := *c
	out.Samples.Values = append([]string(nil), c.Samples.Values...)
	out.Patterns = append([]string(nil), c.Patterns...)
	if c.Suspicious != nil {
		out.Suspicious = make(stats.CountingSet[string], len(c.Suspicious))
		for k, v := range c.Suspicious {
			out.Suspicious[k] = v
		}
	}
	return &out
}
