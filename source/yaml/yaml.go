// Package yaml is the YAML driver, backed by gopkg.in/yaml.v3's node API.
// Multi-document streams are replayed as consecutive top-level values.
package yaml

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fieldlens/fieldlens/internal/engine"
)

// Open decodes every document readable from r and returns a replaying token
// source.
func Open(r io.Reader) (engine.TokenSource, error) {
	dec := yaml.NewDecoder(r)
	var toks []engine.Token
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		toks, err = appendNode(toks, &doc)
		if err != nil {
			return nil, err
		}
	}
	return engine.NewSliceSource(toks), nil
}

func appendNode(toks []engine.Token, n *yaml.Node) ([]engine.Token, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return append(toks, engine.Token{Kind: engine.KindNull, Offset: -1}), nil
		}
		return appendNode(toks, n.Content[0])
	case yaml.AliasNode:
		return appendNode(toks, n.Alias)
	case yaml.SequenceNode:
		toks = append(toks, engine.Token{Kind: engine.KindBeginArray, Offset: -1})
		for _, c := range n.Content {
			var err error
			toks, err = appendNode(toks, c)
			if err != nil {
				return nil, err
			}
		}
		return append(toks, engine.Token{Kind: engine.KindEndArray, Offset: -1}), nil
	case yaml.MappingNode:
		toks = append(toks, engine.Token{Kind: engine.KindBeginObject, Offset: -1})
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			toks = append(toks, engine.Token{Kind: engine.KindKey, String: key.Value, Offset: -1})
			var err error
			toks, err = appendNode(toks, n.Content[i+1])
			if err != nil {
				return nil, err
			}
		}
		return append(toks, engine.Token{Kind: engine.KindEndObject, Offset: -1}), nil
	case yaml.ScalarNode:
		return appendScalar(toks, n)
	default:
		return nil, fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

// appendScalar maps a resolved scalar by its tag. Numeric scalars are
// normalized to decimal text so bases and separators from the YAML side do
// not leak into number parsing.
func appendScalar(toks []engine.Token, n *yaml.Node) ([]engine.Token, error) {
	switch n.Tag {
	case "!!null":
		return append(toks, engine.Token{Kind: engine.KindNull, Offset: -1}), nil
	case "!!bool":
		v := strings.EqualFold(n.Value, "true") || strings.EqualFold(n.Value, "yes") || strings.EqualFold(n.Value, "on")
		return append(toks, engine.Token{Kind: engine.KindBool, Bool: v, Offset: -1}), nil
	case "!!int":
		i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil {
			// Out of int64 range; hand the raw text to the float path.
			return append(toks, engine.Token{Kind: engine.KindNumber, Number: n.Value, Offset: -1}), nil
		}
		return append(toks, engine.Token{Kind: engine.KindNumber, Number: strconv.FormatInt(i, 10), Offset: -1}), nil
	case "!!float":
		f, err := parseYAMLFloat(n.Value)
		if err != nil {
			return nil, fmt.Errorf("yaml: invalid float %q at line %d", n.Value, n.Line)
		}
		return append(toks, engine.Token{Kind: engine.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64), Offset: -1}), nil
	case "!!binary":
		raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("yaml: invalid binary scalar at line %d: %w", n.Line, err)
		}
		return append(toks, engine.Token{Kind: engine.KindBytes, Bytes: raw, Offset: -1}), nil
	default:
		// !!str, !!timestamp and custom tags all surface as strings.
		return append(toks, engine.Token{Kind: engine.KindString, String: n.Value, Offset: -1}), nil
	}
}

func parseYAMLFloat(v string) (float64, error) {
	switch strings.ToLower(v) {
	case ".inf", "+.inf":
		return strconv.ParseFloat("+Inf", 64)
	case "-.inf":
		return strconv.ParseFloat("-Inf", 64)
	case ".nan":
		return strconv.ParseFloat("NaN", 64)
	}
	return strconv.ParseFloat(strings.ReplaceAll(v, "_", ""), 64)
}
