package engine

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"
)

// ReplayValue turns an already-decoded value tree into a TokenSource.
// Drivers whose underlying library cannot stream (TOML, CBOR) decode the
// whole document and replay it through here. Map keys are emitted in sorted
// order so replayed streams are deterministic.
func ReplayValue(v any) TokenSource {
	s := &sliceSource{}
	s.toks = appendValueTokens(s.toks, v)
	return s
}

// NewSliceSource wraps an already-built token slice. Drivers that must
// decode the whole document before tokenizing use this as their output.
func NewSliceSource(toks []Token) TokenSource {
	return &sliceSource{toks: toks}
}

type sliceSource struct {
	toks []Token
	pos  int
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 { return -1 }

func appendValueTokens(toks []Token, v any) []Token {
	switch t := v.(type) {
	case nil:
		return append(toks, Token{Kind: KindNull, Offset: -1})
	case bool:
		return append(toks, Token{Kind: KindBool, Bool: t, Offset: -1})
	case string:
		return append(toks, Token{Kind: KindString, String: t, Offset: -1})
	case []byte:
		return append(toks, Token{Kind: KindBytes, Bytes: t, Offset: -1})
	case int:
		return append(toks, numberToken(strconv.FormatInt(int64(t), 10)))
	case int64:
		return append(toks, numberToken(strconv.FormatInt(t, 10)))
	case uint64:
		return append(toks, numberToken(strconv.FormatUint(t, 10)))
	case float32:
		return append(toks, numberToken(strconv.FormatFloat(float64(t), 'g', -1, 32)))
	case float64:
		return append(toks, numberToken(strconv.FormatFloat(t, 'g', -1, 64)))
	case time.Time:
		// TOML datetimes surface as time.Time; keep them textual.
		return append(toks, Token{Kind: KindString, String: t.Format(time.RFC3339), Offset: -1})
	case []any:
		toks = append(toks, Token{Kind: KindBeginArray, Offset: -1})
		for _, e := range t {
			toks = appendValueTokens(toks, e)
		}
		return append(toks, Token{Kind: KindEndArray, Offset: -1})
	case map[string]any:
		toks = append(toks, Token{Kind: KindBeginObject, Offset: -1})
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			toks = append(toks, Token{Kind: KindKey, String: k, Offset: -1})
			toks = appendValueTokens(toks, t[k])
		}
		return append(toks, Token{Kind: KindEndObject, Offset: -1})
	default:
		// Unknown dynamic types degrade to their string form rather than
		// aborting the document.
		return append(toks, Token{Kind: KindString, String: fmt.Sprint(t), Offset: -1})
	}
}

func numberToken(raw string) Token {
	return Token{Kind: KindNumber, Number: raw, Offset: -1}
}

// Tokens collects every token of a source into a replayable slice source.
// Useful for drivers that want to pre-tokenize and for tests.
func Tokens(src TokenSource) (TokenSource, error) {
	out := &sliceSource{}
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out.toks = append(out.toks, tok)
	}
}
