// Package jsonschema holds a small JSON Schema (draft 2020-12) document
// model, just rich enough for the constraints inference can actually prove:
// types, required members, enums from exhaustive samples, and numeric and
// length bounds.
package jsonschema

import json "github.com/goccy/go-json"

// Schema is one JSON Schema object. Zero-valued fields are omitted from the
// encoded form.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty"`
	Enum        []any              `json:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	MinLength   *int               `json:"minLength,omitempty"`
	MaxLength   *int               `json:"maxLength,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
	Format      string             `json:"format,omitempty"`
	Pattern     string             `json:"pattern,omitempty"`
}

// Draft is the dialect identifier stamped on rendered root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// MarshalIndent encodes the schema with map keys sorted, so equal schemas
// produce byte-equal documents.
func (s *Schema) MarshalIndent(indent string) ([]byte, error) {
	return json.MarshalIndent(s, "", indent)
}
