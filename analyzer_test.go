package fieldlens_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlens/fieldlens"
	_ "github.com/fieldlens/fieldlens/target/raw"
)

func TestAnalyzerAccumulates(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 1}`))))
	require.NoError(t, a.InferReader(fieldlens.FormatJSON, strings.NewReader(`{"x": 2, "y": true}`)))

	s := a.Schema()
	assert.Equal(t, uint64(2), uint64(s.Struct.Count))
	assert.Equal(t, uint64(2), s.Fields["x"].Status.Present)
}

func TestAnalyzerSchemaIsACopy(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 1}`))))

	snap := a.Schema()
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 2}`))))
	assert.Equal(t, uint64(1), uint64(snap.Struct.Count))
	assert.Equal(t, uint64(2), uint64(a.Schema().Struct.Count))
}

func TestAnalyzerMerge(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 1}`))))

	other := fieldlens.NewSchema()
	require.NoError(t, fieldlens.Infer(other, fieldlens.JSONBytes([]byte(`{"x": "s"}`))))
	a.Merge(other)

	x := a.Schema().Fields["x"].Schema
	assert.Equal(t, fieldlens.KindUnion, x.Kind)
}

func TestAnalyzerMergeLogsIssues(t *testing.T) {
	a := fieldlens.NewAnalyzer(tallyOptions())
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`1`))))

	other := fieldlens.NewSchema()
	require.NoError(t, fieldlens.InferWith(other, fieldlens.JSONBytes([]byte(`2`)), fieldlens.Options{
		NewAggregator: func(fieldlens.Kind) fieldlens.Aggregator { return fixed{} },
	}))
	a.Merge(other)

	issues := a.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, fieldlens.CodeAggregatorMismatch, issues[0].Code)

	// A clean merge adds nothing to the log.
	a.Merge(infer(t, `3`))
	assert.Len(t, a.Issues(), 1)
}

func TestAnalyzerClear(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 1}`))))
	a.Clear()
	assert.Equal(t, fieldlens.KindUnknown, a.Schema().Kind)
	assert.Empty(t, a.Issues())
}

func TestAnalyzerRecordsIssues(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{OnDuplicateKey: fieldlens.Warn})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"k": 1, "k": 2}`))))

	issues := a.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, fieldlens.CodeDuplicateKey, issues[0].Code)
	assert.Equal(t, "/k", issues[0].Path)
}

func TestAnalyzerRender(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	require.NoError(t, a.Infer(fieldlens.JSONBytes([]byte(`{"x": 1}`))))

	out, err := a.Render("raw", fieldlens.RenderConfig{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"type": "Struct"`)

	_, err = a.Render("nope", fieldlens.RenderConfig{})
	assert.Error(t, err)
}

func TestAnalyzerConcurrentInfer(t *testing.T) {
	a := fieldlens.NewAnalyzer(fieldlens.Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.Infer(fieldlens.JSONBytes([]byte(`{"n": 1}`)))
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(16), uint64(a.Schema().Struct.Count))
}
