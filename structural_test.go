package fieldlens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/fieldlens"
)

func TestStructuralEqualIgnoresCounts(t *testing.T) {
	a := infer(t, `{"x": 1}`)
	b := infer(t, `{"x": 100}`, `{"x": 200}`, `{"x": 300}`)
	assert.True(t, fieldlens.StructuralEqual(a, b))
}

func TestStructuralEqualKindMismatch(t *testing.T) {
	a := infer(t, `{"x": 1}`)
	b := infer(t, `{"x": "s"}`)
	assert.False(t, fieldlens.StructuralEqual(a, b))
}

func TestStructuralEqualFieldSets(t *testing.T) {
	a := infer(t, `{"x": 1}`)
	b := infer(t, `{"x": 1, "y": 2}`)
	assert.False(t, fieldlens.StructuralEqual(a, b))
}

func TestStructuralEqualNullability(t *testing.T) {
	a := infer(t, `[1]`)
	b := infer(t, `[1, null]`)
	assert.False(t, fieldlens.StructuralEqual(a, b))
}

func TestStructuralEqualPatternFlags(t *testing.T) {
	a := infer(t, `"2021-01-01"`)
	b := infer(t, `"9999-99-99"`) // also date-shaped
	c := infer(t, `"plain"`)
	assert.True(t, fieldlens.StructuralEqual(a, b))
	assert.False(t, fieldlens.StructuralEqual(a, c))
}

func TestStructuralEqualUnionOrderInsensitive(t *testing.T) {
	a := infer(t, `[1, "x"]`)
	b := infer(t, `["x", 1]`)
	assert.True(t, fieldlens.StructuralEqual(a, b))
}

func TestStructuralEqualNil(t *testing.T) {
	assert.True(t, fieldlens.StructuralEqual(nil, nil))
	assert.False(t, fieldlens.StructuralEqual(nil, fieldlens.NewSchema()))
}
