package fieldlens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlens/fieldlens"
)

func inferXML(t *testing.T, doc string) *fieldlens.Schema {
	t.Helper()
	s := fieldlens.NewSchema()
	require.NoError(t, fieldlens.Infer(s, fieldlens.XMLBytes([]byte(doc))))
	return s
}

func TestCleanupCollapsesTextElements(t *testing.T) {
	s := inferXML(t, `<person><name>ada</name></person>`)

	// Before cleanup: name is a struct holding only the text member.
	name := s.Fields["name"].Schema
	require.Equal(t, fieldlens.KindStruct, name.Kind)
	require.Contains(t, name.Fields, fieldlens.XMLTextField)

	fieldlens.CleanupXML(s)
	name = s.Fields["name"].Schema
	assert.Equal(t, fieldlens.KindString, name.Kind)
}

func TestCleanupRepeatedElementsBecomeSequences(t *testing.T) {
	s := inferXML(t, `<library><book>a</book><book>b</book><book>c</book></library>`)
	fieldlens.CleanupXML(s)

	book := s.Fields["book"]
	require.Equal(t, fieldlens.KindSequence, book.Schema.Kind)
	assert.Equal(t, uint64(3), book.Schema.Elem.Status.Present)
	assert.Equal(t, fieldlens.KindString, book.Schema.Elem.Schema.Kind)
	assert.Equal(t, uint64(0), book.Status.Duplicate)
}

func TestCleanupEmptyElementsBecomeNull(t *testing.T) {
	s := inferXML(t, `<doc><gap/><kept>x</kept></doc>`)
	fieldlens.CleanupXML(s)

	assert.Equal(t, fieldlens.KindNull, s.Fields["gap"].Schema.Kind)
	assert.Equal(t, fieldlens.KindString, s.Fields["kept"].Schema.Kind)
}

func TestCleanupKeepsAttributes(t *testing.T) {
	s := inferXML(t, `<item id="7"><price>10</price></item>`)
	fieldlens.CleanupXML(s)

	require.Contains(t, s.Fields, "@id")
	assert.Equal(t, fieldlens.KindString, s.Fields["@id"].Schema.Kind)
	assert.True(t, s.Fields["@id"].Schema.Str.HasPattern("integer"))
}

func TestCleanupIsHarmlessOnCleanTrees(t *testing.T) {
	s := infer(t, `{"a": [1, 2], "b": "x"}`)
	before := encode(t, s)
	fieldlens.CleanupXML(s)
	assert.Equal(t, before, encode(t, s))
}
