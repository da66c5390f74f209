// Package fastjson is an alternative JSON driver backed by valyala/fastjson.
// It parses the whole document up front and replays it as tokens, trading
// streaming for raw parse speed on in-memory payloads. Rebind the json
// format with Use:
//
//	fastjson.Use()
package fastjson

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/fieldlens/fieldlens"
	"github.com/fieldlens/fieldlens/internal/engine"
)

// Driver returns the fastjson-backed JSON driver.
func Driver() fieldlens.Driver { return fieldlens.DriverFunc(Open) }

// Use rebinds the json format tag to this driver for the whole process.
func Use() { fieldlens.RegisterFormat(fieldlens.FormatJSON, Driver()) }

// Open parses everything readable from r and returns a replaying token
// source.
func Open(r io.Reader) (engine.TokenSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	toks, err := appendValue(nil, v)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceSource(toks), nil
}

func appendValue(toks []engine.Token, v *fastjson.Value) ([]engine.Token, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return append(toks, engine.Token{Kind: engine.KindNull, Offset: -1}), nil
	case fastjson.TypeTrue:
		return append(toks, engine.Token{Kind: engine.KindBool, Bool: true, Offset: -1}), nil
	case fastjson.TypeFalse:
		return append(toks, engine.Token{Kind: engine.KindBool, Offset: -1}), nil
	case fastjson.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return append(toks, engine.Token{Kind: engine.KindString, String: string(sb), Offset: -1}), nil
	case fastjson.TypeNumber:
		return append(toks, engine.Token{Kind: engine.KindNumber, Number: numberText(v), Offset: -1}), nil
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return nil, err
		}
		toks = append(toks, engine.Token{Kind: engine.KindBeginArray, Offset: -1})
		for _, e := range a {
			toks, err = appendValue(toks, e)
			if err != nil {
				return nil, err
			}
		}
		return append(toks, engine.Token{Kind: engine.KindEndArray, Offset: -1}), nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, err
		}
		toks = append(toks, engine.Token{Kind: engine.KindBeginObject, Offset: -1})
		var verr error
		o.Visit(func(key []byte, val *fastjson.Value) {
			if verr != nil {
				return
			}
			toks = append(toks, engine.Token{Kind: engine.KindKey, String: string(key), Offset: -1})
			toks, verr = appendValue(toks, val)
		})
		if verr != nil {
			return nil, verr
		}
		return append(toks, engine.Token{Kind: engine.KindEndObject, Offset: -1}), nil
	default:
		return nil, fmt.Errorf("fastjson: unsupported value type %v", v.Type())
	}
}

// numberText recovers the numeric text: exact integers stay integral so the
// inference side keeps them in the integer domain.
func numberText(v *fastjson.Value) string {
	if i, err := v.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, _ := v.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
