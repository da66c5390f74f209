package toml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlens/fieldlens"
)

func inferTOML(t *testing.T, doc string) *fieldlens.Schema {
	t.Helper()
	s := fieldlens.NewSchema()
	require.NoError(t, fieldlens.Infer(s, fieldlens.TOMLBytes([]byte(doc))))
	return s
}

func TestScalarsAndTables(t *testing.T) {
	s := inferTOML(t, `
title = "demo"
count = 4
ratio = 0.25
active = true

[owner]
name = "ada"
`)
	require.Equal(t, fieldlens.KindStruct, s.Kind)
	assert.Equal(t, fieldlens.KindString, s.Fields["title"].Schema.Kind)
	assert.Equal(t, fieldlens.KindInteger, s.Fields["count"].Schema.Kind)
	assert.Equal(t, fieldlens.KindFloat, s.Fields["ratio"].Schema.Kind)
	assert.Equal(t, fieldlens.KindBoolean, s.Fields["active"].Schema.Kind)

	owner := s.Fields["owner"].Schema
	require.Equal(t, fieldlens.KindStruct, owner.Kind)
	assert.Equal(t, fieldlens.KindString, owner.Fields["name"].Schema.Kind)
}

func TestArrayOfTables(t *testing.T) {
	s := inferTOML(t, `
[[servers]]
host = "a"
port = 1

[[servers]]
host = "b"
`)
	servers := s.Fields["servers"].Schema
	require.Equal(t, fieldlens.KindSequence, servers.Kind)
	elem := servers.Elem.Schema
	require.Equal(t, fieldlens.KindStruct, elem.Kind)
	assert.Equal(t, uint64(2), elem.Fields["host"].Status.Present)
	assert.Equal(t, uint64(1), elem.Fields["port"].Status.Missing)
}

func TestDatetimeBecomesString(t *testing.T) {
	s := inferTOML(t, "when = 2021-06-01T12:00:00Z\n")
	when := s.Fields["when"].Schema
	assert.Equal(t, fieldlens.KindString, when.Kind)
}

func TestInvalidTOML(t *testing.T) {
	s := fieldlens.NewSchema()
	err := fieldlens.Infer(s, fieldlens.TOMLBytes([]byte("= broken")))
	require.Error(t, err)
	assert.Equal(t, fieldlens.CodeDecodeError, fieldlens.AsIssues(err)[0].Code)
}
