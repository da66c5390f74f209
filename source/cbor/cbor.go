// Package cbor is the CBOR driver, backed by fxamacker/cbor. Concatenated
// data items are replayed as consecutive top-level values; byte strings stay
// byte strings instead of degrading to text.
package cbor

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/fieldlens/fieldlens/internal/engine"
)

var decMode cbor.DecMode

func init() {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

// Open decodes every data item readable from r and returns a replaying token
// source. Maps with non-string keys fail decoding rather than guessing a
// textual form.
func Open(r io.Reader) (engine.TokenSource, error) {
	dec := decMode.NewDecoder(r)
	var toks []engine.Token
	for {
		var item any
		err := dec.Decode(&item)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		src := engine.ReplayValue(item)
		for {
			tok, terr := src.NextToken()
			if terr == io.EOF {
				break
			}
			if terr != nil {
				return nil, terr
			}
			toks = append(toks, tok)
		}
	}
	return engine.NewSliceSource(toks), nil
}
