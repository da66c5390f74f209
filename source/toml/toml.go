// Package toml is the TOML driver, backed by pelletier/go-toml. TOML has no
// streaming decode, so the document is unmarshaled into dynamic values and
// replayed as tokens.
package toml

import (
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/fieldlens/fieldlens/internal/engine"
)

// Open unmarshals the document readable from r and returns a replaying token
// source. Datetimes surface as RFC 3339 strings.
func Open(r io.Reader) (engine.TokenSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return engine.ReplayValue(doc), nil
}
