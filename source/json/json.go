// Package json is the default JSON driver, backed by encoding/json's
// streaming decoder. It handles concatenated top-level values (JSON Lines)
// without buffering the whole input.
package json

import (
	"encoding/json"
	"io"

	"github.com/fieldlens/fieldlens/internal/engine"
)

// Open returns a token source over r.
func Open(r io.Reader) (engine.TokenSource, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &tokenSource{dec: dec}, nil
}

type frame struct {
	object    bool
	expectKey bool
}

type tokenSource struct {
	dec   *json.Decoder
	stack []frame
}

func (s *tokenSource) NextToken() (engine.Token, error) {
	t, err := s.dec.Token()
	if err != nil {
		return engine.Token{}, err
	}
	off := s.dec.InputOffset()

	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectKey: true})
			return engine.Token{Kind: engine.KindBeginObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, frame{})
			return engine.Token{Kind: engine.KindBeginArray, Offset: off}, nil
		case '}':
			s.pop()
			return engine.Token{Kind: engine.KindEndObject, Offset: off}, nil
		default: // ']'
			s.pop()
			return engine.Token{Kind: engine.KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectKey {
			s.stack[n-1].expectKey = false
			return engine.Token{Kind: engine.KindKey, String: v, Offset: off}, nil
		}
		s.afterValue()
		return engine.Token{Kind: engine.KindString, String: v, Offset: off}, nil
	case json.Number:
		s.afterValue()
		return engine.Token{Kind: engine.KindNumber, Number: v.String(), Offset: off}, nil
	case bool:
		s.afterValue()
		return engine.Token{Kind: engine.KindBool, Bool: v, Offset: off}, nil
	default: // nil
		s.afterValue()
		return engine.Token{Kind: engine.KindNull, Offset: off}, nil
	}
}

func (s *tokenSource) Location() int64 { return s.dec.InputOffset() }

func (s *tokenSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.afterValue()
}

// afterValue flips the enclosing object frame back to expecting a key once a
// complete value has been emitted.
func (s *tokenSource) afterValue() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectKey = true
	}
}
