package fieldlens

import (
	"io"
	"math"
	"strconv"

	"github.com/fieldlens/fieldlens/internal/engine"
	"github.com/fieldlens/fieldlens/stats"
)

// Infer folds one more input into the schema with default options. The
// schema accumulates: calling Infer repeatedly refines the same tree.
//
// Inference is transactional per document: when decoding fails mid-way the
// schema keeps exactly the state it had before the call and the error
// carries the structured issues.
func Infer(s *Schema, src Source) error {
	return InferWith(s, src, Options{})
}

// InferWith is Infer with explicit options.
func InferWith(s *Schema, src Source, opt Options) error {
	ts, err := src.open(opt)
	if err != nil {
		return AsIssues(err)
	}
	return inferTokens(s, ts, opt)
}

// InferValue folds an already-decoded dynamic value (maps, slices, scalars)
// into the schema. Useful when the data never passed through a serialization
// format.
func InferValue(s *Schema, v any, opt Options) error {
	return inferTokens(s, engine.ReplayValue(v), opt)
}

func inferTokens(s *Schema, ts engine.TokenSource, opt Options) error {
	// Stage into a fresh tree so a mid-document failure cannot leave the
	// accumulated schema half-updated.
	staged := NewSchema()
	w := &walker{src: ts, opt: opt, patterns: opt.patterns()}

	seen := false
	for {
		tok, err := w.src.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return AsIssues(err)
		}
		seen = true
		if err := w.value(tok, staged); err != nil {
			return AsIssues(err)
		}
	}
	if !seen {
		return Issues{{Path: "/", Code: CodeDecodeError, Message: "empty document"}}
	}

	for _, i := range s.Coalesce(staged) {
		opt.sink(i)
	}
	return nil
}

type walker struct {
	src      engine.TokenSource
	opt      Options
	patterns []stats.Pattern
}

func (w *walker) next() (engine.Token, error) {
	tok, err := w.src.NextToken()
	if err == io.EOF {
		return engine.Token{}, Issue{Path: "/", Code: CodeDecodeError, Message: "unexpected end of document"}
	}
	return tok, err
}

// value absorbs one value, whose first token is tok, into node.
func (w *walker) value(tok engine.Token, node *Schema) error {
	switch tok.Kind {
	case engine.KindNull:
		w.observeNull(node)
		return nil
	case engine.KindBool:
		n := w.promote(node, KindBoolean)
		n.Bool.Observe(tok.Bool)
		w.observeAgg(n, tok.Bool)
		return nil
	case engine.KindNumber:
		return w.number(tok, node)
	case engine.KindString:
		n := w.promote(node, KindString)
		n.Str.Observe(tok.String, w.patterns)
		w.observeAgg(n, tok.String)
		return nil
	case engine.KindBytes:
		n := w.promote(node, KindBytes)
		n.Bytes.Observe(tok.Bytes)
		w.observeAgg(n, tok.Bytes)
		return nil
	case engine.KindBeginArray:
		return w.sequence(node)
	case engine.KindBeginObject:
		return w.record(node)
	default:
		return Issue{Path: "/", Code: CodeUnsupportedShape, Message: "unexpected token " + strconv.Itoa(int(tok.Kind))}
	}
}

func (w *walker) number(tok engine.Token, node *Schema) error {
	raw := tok.Number
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		n := w.promote(node, KindInteger)
		n.Int.Observe(i)
		w.observeAgg(n, i)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Issue{Path: "/", Code: CodeDecodeError, Message: "invalid number " + strconv.Quote(raw), Cause: err}
	}
	n := w.promote(node, KindFloat)
	n.Float.Observe(f)
	if f != math.Trunc(f) {
		n.Float.HasFraction = true
	}
	w.observeAgg(n, f)
	return nil
}

func (w *walker) sequence(node *Schema) error {
	n := w.promote(node, KindSequence)
	length := 0
	for {
		tok, err := w.next()
		if err != nil {
			return err
		}
		if tok.Kind == engine.KindEndArray {
			break
		}
		if n.Elem == nil {
			n.Elem = &Field{Schema: w.newNode()}
		}
		if tok.Kind == engine.KindNull {
			n.Elem.Status.Null++
		} else {
			n.Elem.Status.Present++
		}
		if err := w.value(tok, n.Elem.Schema); err != nil {
			return err
		}
		length++
	}
	n.Seq.Observe(length)
	return nil
}

func (w *walker) record(node *Schema) error {
	n := w.promote(node, KindStruct)
	n.Struct.Observe()
	// Records folded into this node before the current one; a field seen for
	// the first time now was missing from all of them.
	prior := uint64(n.Struct.Count) - 1
	if n.Fields == nil {
		n.Fields = map[string]*Field{}
	}
	seen := map[string]bool{}
	for {
		tok, err := w.next()
		if err != nil {
			return err
		}
		if tok.Kind == engine.KindEndObject {
			break
		}
		if tok.Kind != engine.KindKey {
			return Issue{Path: "/", Code: CodeUnsupportedShape, Message: "expected object key"}
		}
		name := tok.String
		f, ok := n.Fields[name]
		if !ok {
			f = &Field{Schema: w.newNode()}
			f.Status.Missing = prior
			n.Fields[name] = f
		}
		vtok, err := w.next()
		if err != nil {
			return err
		}
		if seen[name] {
			f.Status.Duplicate++
		} else {
			seen[name] = true
			if vtok.Kind == engine.KindNull {
				f.Status.Null++
			} else {
				f.Status.Present++
			}
		}
		if err := w.value(vtok, f.Schema); err != nil {
			return err
		}
	}
	for name, f := range n.Fields {
		if !seen[name] {
			f.Status.Missing++
		}
	}
	return nil
}

// observeNull folds a null into the node: a fresh node settles on the null
// kind, anything else absorbs the null into its count without widening.
func (w *walker) observeNull(node *Schema) {
	if node.Kind == KindUnknown {
		node.Kind = KindNull
		node.Null = &stats.NullContext{}
		if w.opt.NewAggregator != nil && node.Agg == nil {
			node.Agg = w.opt.NewAggregator(KindNull)
		}
	}
	if node.Kind == KindNull {
		node.Null.Observe()
	} else {
		node.Nulls++
	}
	if node.Agg != nil {
		node.Agg.Observe(nil)
	}
}

// promote steers node toward kind and returns the branch to observe into:
// the node itself, or the matching union variant when the node has already
// seen conflicting kinds.
func (w *walker) promote(node *Schema, kind Kind) *Schema {
	switch node.Kind {
	case KindUnknown:
		w.settle(node, kind)
		return node
	case kind:
		return node
	case KindNull:
		node.Nulls += uint64(node.Null.Count)
		node.Null = nil
		w.settle(node, kind)
		return node
	case KindUnion:
	default:
		node.promoteToUnion()
	}
	for _, v := range node.Variants {
		if v.Kind == kind {
			return v
		}
	}
	v := w.newNode()
	w.settle(v, kind)
	node.Variants = append(node.Variants, v)
	sortVariants(node.Variants)
	return v
}

// settle fixes an unknown node on its first observed kind, allocating the
// matching context and the optional aggregator.
func (w *walker) settle(node *Schema, kind Kind) {
	node.Kind = kind
	switch kind {
	case KindBoolean:
		node.Bool = &stats.BooleanContext{}
	case KindInteger:
		node.Int = stats.NewNumberContext[int64](w.opt.SampleCap)
	case KindFloat:
		node.Float = stats.NewNumberContext[float64](w.opt.SampleCap)
	case KindString:
		node.Str = stats.NewStringContext(w.opt.SampleCap)
	case KindBytes:
		node.Bytes = &stats.BytesContext{}
	case KindSequence:
		node.Seq = &stats.SequenceContext{}
	case KindStruct:
		node.Struct = &stats.StructContext{}
	}
	if w.opt.NewAggregator != nil && node.Agg == nil {
		node.Agg = w.opt.NewAggregator(kind)
	}
}

func (w *walker) newNode() *Schema { return NewSchema() }

func (w *walker) observeAgg(node *Schema, v any) {
	if node.Agg != nil {
		node.Agg.Observe(v)
	}
}
