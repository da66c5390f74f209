// Package xml is the XML driver, backed by encoding/xml's token scanner.
//
// XML has no native notion of arrays, numbers or booleans, so the mapping is
// structural: every element becomes an object, attributes become "@name"
// members, character data becomes a "$value" member, and repeated child
// elements surface as duplicate keys. CleanupXML in the root package rewrites
// those artifacts into sequences and plain values once inference is done.
package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fieldlens/fieldlens/internal/engine"
)

const (
	textField  = "$value"
	attrPrefix = "@"
)

// Open tokenizes the document readable from r. The root element's content is
// the document value; the root tag name itself is dropped.
func Open(r io.Reader) (engine.TokenSource, error) {
	dec := xml.NewDecoder(r)
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xml: document has no root element")
		}
		if err != nil {
			return nil, err
		}
		start, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		toks, err := appendElement(nil, dec, start)
		if err != nil {
			return nil, err
		}
		return engine.NewSliceSource(toks), nil
	}
}

// appendElement consumes everything up to start's matching end tag and
// appends the element as one object value.
func appendElement(toks []engine.Token, dec *xml.Decoder, start xml.StartElement) ([]engine.Token, error) {
	toks = append(toks, engine.Token{Kind: engine.KindBeginObject, Offset: -1})
	for _, attr := range start.Attr {
		toks = append(toks,
			engine.Token{Kind: engine.KindKey, String: attrPrefix + attr.Name.Local, Offset: -1},
			engine.Token{Kind: engine.KindString, String: attr.Value, Offset: -1},
		)
	}

	var text strings.Builder
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("xml: unclosed element <%s>", start.Name.Local)
		}
		if err != nil {
			return nil, err
		}
		switch tt := t.(type) {
		case xml.StartElement:
			toks = append(toks, engine.Token{Kind: engine.KindKey, String: tt.Name.Local, Offset: -1})
			toks, err = appendElement(toks, dec, tt)
			if err != nil {
				return nil, err
			}
		case xml.CharData:
			text.WriteString(string(tt))
		case xml.EndElement:
			if s := strings.TrimSpace(text.String()); s != "" {
				toks = append(toks,
					engine.Token{Kind: engine.KindKey, String: textField, Offset: -1},
					engine.Token{Kind: engine.KindString, String: s, Offset: -1},
				)
			}
			return append(toks, engine.Token{Kind: engine.KindEndObject, Offset: -1}), nil
		}
	}
}
