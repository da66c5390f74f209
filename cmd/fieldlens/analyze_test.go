package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlens/fieldlens"
)

func TestResolveFormat(t *testing.T) {
	f, err := resolveFormat("", "data/users.jsonl")
	require.NoError(t, err)
	assert.Equal(t, fieldlens.FormatJSON, f)

	f, err = resolveFormat("", "conf.yml")
	require.NoError(t, err)
	assert.Equal(t, fieldlens.FormatYAML, f)

	_, err = resolveFormat("", "notes.txt")
	assert.Error(t, err)

	f, err = resolveFormat("toml", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, fieldlens.FormatTOML, f)

	_, err = resolveFormat("csv", "x.csv")
	assert.Error(t, err)
}

func TestAnalyzeFilesMergesConcurrently(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"x": 1}`), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(`{"x": 2, "y": "s"}`), 0o644))

	schemas, sawXML, err := analyzeFiles([]string{a, b}, analyzeFlags{workers: 2}, fieldlens.Options{})
	require.NoError(t, err)
	assert.False(t, sawXML)
	require.Len(t, schemas, 2)

	merged, issues := fieldlens.CoalesceAll(schemas...)
	assert.Empty(t, issues)
	assert.Equal(t, uint64(2), uint64(merged.Struct.Count))
	assert.Equal(t, uint64(1), merged.Fields["y"].Status.Missing)
}
