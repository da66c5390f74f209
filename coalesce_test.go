package fieldlens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldlens/fieldlens"
)

func encode(t *testing.T, s *fieldlens.Schema) []byte {
	t.Helper()
	out, err := fieldlens.EncodeSchema(s)
	require.NoError(t, err)
	return out
}

func TestCoalesceCommutative(t *testing.T) {
	a := infer(t, `{"id": 1, "tag": "x"}`)
	b := infer(t, `{"id": 2.5, "extra": true}`)

	ab, issues := fieldlens.CoalesceAll(a, b)
	assert.Empty(t, issues)
	ba, issues := fieldlens.CoalesceAll(b, a)
	assert.Empty(t, issues)

	assert.True(t, fieldlens.StructuralEqual(ab, ba))
	assert.Equal(t, encode(t, ab), encode(t, ba))
}

func TestCoalesceAssociative(t *testing.T) {
	a := infer(t, `{"v": 1}`)
	b := infer(t, `{"v": "s"}`)
	c := infer(t, `{"v": null, "w": [1]}`)

	left, _ := fieldlens.CoalesceAll(a, b)
	left.Coalesce(c)

	rightInner, _ := fieldlens.CoalesceAll(b, c)
	right := a.Clone()
	right.Coalesce(rightInner)

	assert.True(t, fieldlens.StructuralEqual(left, right))
	assert.Equal(t, encode(t, left), encode(t, right))
}

func TestCoalesceSelfCopyDoublesCounts(t *testing.T) {
	a := infer(t, `{"n": -5, "d": "2024-01-01"}`)

	merged, issues := fieldlens.CoalesceAll(a, a.Clone())
	assert.Empty(t, issues)
	assert.True(t, fieldlens.StructuralEqual(a, merged))

	// Counts double; bounds and pattern flags stay what one copy had.
	assert.Equal(t, uint64(2), uint64(merged.Struct.Count))
	n := merged.Fields["n"].Schema
	assert.Equal(t, uint64(2), uint64(n.Int.Count))
	assert.Equal(t, int64(-5), *n.Int.Min)
	assert.Equal(t, int64(-5), *n.Int.Max)
	d := merged.Fields["d"].Schema
	assert.Equal(t, uint64(2), uint64(d.Str.Count))
	assert.True(t, d.Str.HasPattern("date-iso"))
	assert.Equal(t, []string{"2024-01-01"}, d.Str.Samples.Values)
}

func TestCoalesceDoesNotMutateArgument(t *testing.T) {
	a := infer(t, `{"x": 1}`)
	b := infer(t, `{"x": 2}`)
	before := encode(t, b)

	a.Coalesce(b)
	assert.Equal(t, before, encode(t, b))
}

func TestCoalesceEmptyIsIdentity(t *testing.T) {
	a := infer(t, `{"x": [1, "s"]}`)
	before := encode(t, a)

	a.Coalesce(fieldlens.NewSchema())
	assert.Equal(t, before, encode(t, a))

	fresh := fieldlens.NewSchema()
	fresh.Coalesce(a)
	assert.Equal(t, before, encode(t, fresh))
}

func TestCoalesceDisjointFieldsBecomeOptional(t *testing.T) {
	a := infer(t, `{"a": 1}`)
	b := infer(t, `{"b": 2}`)

	merged, _ := fieldlens.CoalesceAll(a, b)
	require.Equal(t, fieldlens.KindStruct, merged.Kind)
	assert.Equal(t, uint64(2), uint64(merged.Struct.Count))

	fa := merged.Fields["a"]
	fb := merged.Fields["b"]
	assert.Equal(t, uint64(1), fa.Status.Present)
	assert.Equal(t, uint64(1), fa.Status.Missing)
	assert.Equal(t, uint64(1), fb.Status.Present)
	assert.Equal(t, uint64(1), fb.Status.Missing)
}

func TestCoalesceNullAbsorption(t *testing.T) {
	a := infer(t, `null`)
	b := infer(t, `42`)

	ab, _ := fieldlens.CoalesceAll(a, b)
	require.Equal(t, fieldlens.KindInteger, ab.Kind)
	assert.Equal(t, uint64(1), ab.Nulls)
	assert.Equal(t, uint64(2), ab.ObservationCount())

	ba, _ := fieldlens.CoalesceAll(b, a)
	assert.Equal(t, encode(t, ab), encode(t, ba))
}

func TestCoalesceMergesUnionBranchesByKind(t *testing.T) {
	a := infer(t, `[1, "x"]`)
	b := infer(t, `["y", 2]`)

	merged, _ := fieldlens.CoalesceAll(a, b)
	elem := merged.Elem.Schema
	require.Equal(t, fieldlens.KindUnion, elem.Kind)
	require.Len(t, elem.Variants, 2)
	for _, v := range elem.Variants {
		switch v.Kind {
		case fieldlens.KindInteger:
			assert.Equal(t, uint64(2), uint64(v.Int.Count))
		case fieldlens.KindString:
			assert.Equal(t, uint64(2), uint64(v.Str.Count))
		default:
			t.Fatalf("unexpected branch kind %v", v.Kind)
		}
	}
}

func TestCoalesceUnionWithScalar(t *testing.T) {
	a := infer(t, `[1, "x"]`)
	b := infer(t, `[2]`)

	merged, _ := fieldlens.CoalesceAll(a, b)
	elem := merged.Elem.Schema
	require.Equal(t, fieldlens.KindUnion, elem.Kind)
	assert.Len(t, elem.Variants, 2)

	// Same result with the scalar side as the receiver.
	merged2, _ := fieldlens.CoalesceAll(b, a)
	assert.Equal(t, encode(t, merged), encode(t, merged2))
}

func TestCoalesceNumericBounds(t *testing.T) {
	a := infer(t, `{"n": 10}`)
	b := infer(t, `{"n": -5}`)

	merged, _ := fieldlens.CoalesceAll(a, b)
	n := merged.Fields["n"].Schema
	assert.Equal(t, int64(-5), *n.Int.Min)
	assert.Equal(t, int64(10), *n.Int.Max)
	assert.True(t, n.Int.HasNegative)
}

func TestCoalescePatternIntersection(t *testing.T) {
	a := infer(t, `"2021-01-01"`)
	b := infer(t, `"hello"`)

	merged, _ := fieldlens.CoalesceAll(a, b)
	assert.Empty(t, merged.Str.Patterns)

	c := infer(t, `"1999-12-31"`)
	d := infer(t, `"2000-06-15"`)
	merged2, _ := fieldlens.CoalesceAll(c, d)
	assert.True(t, merged2.Str.HasPattern("date-iso"))
}

func TestCoalesceAllEmptyInput(t *testing.T) {
	merged, issues := fieldlens.CoalesceAll()
	assert.Empty(t, issues)
	assert.Equal(t, fieldlens.KindUnknown, merged.Kind)
}
