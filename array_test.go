package zval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCanonicalizesKeys(t *testing.T) {
	a := NewArray()
	a.Set(String("8"), String("eight"))
	a.Set(Int(8), String("huit"))
	a.Set(String("08"), String("zero eight"))
	a.Set(Bool(true), String("one"))

	assert.Equal(t, 3, a.Count())
	assert.Equal(t, 2, a.IntCount())
	assert.Equal(t, 1, a.StringCount())
	assert.Equal(t, String("huit"), a.Get(String("8")))
	assert.Equal(t, String("zero eight"), a.Get(String("08")))
	assert.Equal(t, String("one"), a.Get(Int(1)))
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	a := NewArray()
	a.Set(String("b"), Int(1))
	a.Set(Int(10), Int(2))
	a.Set(String("a"), Int(3))
	a.Set(String("b"), Int(4))

	assert.Equal(t, []Key{StringKey("b"), IntKey(10), StringKey("a")}, keysOf(a))
	assert.Equal(t, Int(4), a.Get(String("b")))
}

func TestGetUndefinedKey(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	assert.Equal(t, Null(), a.Get(String("missing")))
	assert.Equal(t, Null(), a.Get(Int(3)))
	assert.Equal(t, Null(), a.GetQuiet(Int(4)))

	require.Len(t, *diags, 2)
	assert.Equal(t, Diagnostic{Kind: UndefinedKey, Message: `Undefined array key "missing"`}, (*diags)[0])
	assert.Equal(t, Diagnostic{Kind: UndefinedKey, Message: `Undefined array key 3`}, (*diags)[1])
}

func TestIllegalKeys(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	a.Set(ArrayValue(NewArray()), Int(1))
	assert.Equal(t, 0, a.Count())
	assert.False(t, a.Has(ObjectValue(NewStdClass())))

	require.Len(t, *diags, 1)
	assert.Equal(t, IllegalKeyType, (*diags)[0].Kind)
	assert.Equal(t, "Cannot access offset of type array on array", (*diags)[0].Message)
}

func TestFloatKeys(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	a.Set(Float(2.0), String("exact"))
	a.Set(Float(1.5), String("lossy"))

	assert.Equal(t, String("exact"), a.Get(Int(2)))
	assert.Equal(t, String("lossy"), a.Get(Int(1)))
	assert.Equal(t, []DiagnosticKind{ImplicitFloatKey}, kinds(*diags))
	assert.Equal(t, "Implicit conversion from float 1.5 to int loses precision", (*diags)[0].Message)
	assert.True(t, (*diags)[0].Kind.Deprecation())
}

func TestHasAndIsSet(t *testing.T) {
	a := NewArray()
	a.Set(String("null"), Null())
	a.Set(String("zero"), Int(0))

	assert.True(t, a.Has(String("null")))
	assert.False(t, a.IsSet(String("null")))
	assert.True(t, a.IsSet(String("zero")))
	assert.False(t, a.Has(String("missing")))
}

func TestAppend(t *testing.T) {
	a := NewArray()

	k, err := a.Append(String("a"))
	require.NoError(t, err)
	assert.Equal(t, IntKey(0), k)

	a.Set(Int(5), String("five"))
	k, err = a.Append(String("six"))
	require.NoError(t, err)
	assert.Equal(t, IntKey(6), k)

	a.Set(String("x"), Null())
	k, err = a.Append(Null())
	require.NoError(t, err)
	assert.Equal(t, IntKey(7), k)
}

func TestAppendNegativeKeys(t *testing.T) {
	a := NewArray()
	a.Set(Int(-5), Null())

	k, err := a.Append(Null())
	require.NoError(t, err)
	assert.Equal(t, IntKey(-4), k)
}

func TestAppendAfterRemovingMaximum(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int64
		remove   int64
		expected int64
	}{
		{"maximum removed", []int64{5, 6}, 6, 6},
		{"middle removed", []int64{5, 6, 7}, 6, 8},
		{"only key removed", []int64{3}, 3, 0},
		{"smaller key removed", []int64{9, 2}, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArray()
			for _, k := range tt.keys {
				a.Set(Int(k), Int(k))
			}

			assert.True(t, a.Remove(Int(tt.remove)))
			k, err := a.Append(Null())
			require.NoError(t, err)
			assert.Equal(t, IntKey(tt.expected), k)
		})
	}
}

func TestMaxIntKeyIsRecomputedLazily(t *testing.T) {
	a := NewArray()
	a.Set(Int(1), Null())
	a.Set(Int(4), Null())
	a.Set(String("s"), Null())

	a.Remove(Int(4))
	assert.True(t, a.table.maxStale)

	m, ok := a.MaxIntKey()
	assert.True(t, ok)
	assert.Equal(t, int64(1), m)
	assert.False(t, a.table.maxStale)

	a.Remove(Int(1))
	_, ok = a.MaxIntKey()
	assert.False(t, ok)
}

func TestAppendOverflow(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	a.Set(Int(math.MaxInt64), Null())

	_, err := a.Append(Null())
	assert.ErrorIs(t, err, ErrNextElementOccupied)
	assert.Equal(t, 1, a.Count())
	assert.Equal(t, []DiagnosticKind{NextElementOccupied}, kinds(*diags))
}

func TestRemovePreservesOrder(t *testing.T) {
	a := FromList(String("a"), String("b"), String("c"), String("d"))

	assert.True(t, a.Remove(Int(1)))
	assert.False(t, a.Remove(Int(1)))
	a.Set(String("e"), String("e"))

	assert.Equal(t, []Key{IntKey(0), IntKey(2), IntKey(3), StringKey("e")}, keysOf(a))

	v, ok := a.RemoveKey(IntKey(0))
	assert.True(t, ok)
	assert.Equal(t, String("a"), v)
	assert.Equal(t, 3, a.Count())
}

func TestCopyOnWrite(t *testing.T) {
	a := FromList(Int(1), Int(2))
	b := ArrayValue(a).assigned().Array()
	assert.Same(t, a.table, b.table)

	b.Set(Int(0), Int(10))
	assert.NotSame(t, a.table, b.table)
	assert.Equal(t, Int(1), a.Get(Int(0)))
	assert.Equal(t, Int(10), b.Get(Int(0)))
}

func TestSelfAssignmentStoresOldContents(t *testing.T) {
	a := FromList(Int(1))
	a.Set(String("self"), ArrayValue(a))

	inner := a.Get(String("self")).Array()
	require.NotNil(t, inner)
	assert.Equal(t, 1, inner.Count())
	assert.Equal(t, 2, a.Count())
}

func TestNestedArraysAreSeparatedOnWrite(t *testing.T) {
	a := NewArray()
	a.EnsureArray(String("inner")).Set(Int(0), String("x"))

	b := a.Clone()
	b.EnsureArray(String("inner")).Set(Int(0), String("y"))

	assert.Equal(t, String("x"), a.Get(String("inner")).Array().Get(Int(0)))
	assert.Equal(t, String("y"), b.Get(String("inner")).Array().Get(Int(0)))
}

func TestCopyOnWriteMetrics(t *testing.T) {
	m := &recordingMetrics{}
	require.NoError(t, Init(WithMetrics(m)))
	t.Cleanup(Shutdown)

	a := FromList(Int(1))
	b := a.Clone()
	b.Set(Int(1), Int(2))
	b.Set(Int(2), Int(3))

	assert.Equal(t, 1, m.separations)
}

func TestReturnInPlace(t *testing.T) {
	a := FromList(Int(1))
	a.ReturnInPlace()

	v := ArrayValue(a).assigned()
	assert.Same(t, a, v.Array())
	assert.Equal(t, int32(1), a.table.refs)

	w := ArrayValue(a).assigned()
	assert.NotSame(t, a, w.Array())
	assert.Equal(t, int32(2), a.table.refs)
}

func TestRelease(t *testing.T) {
	a := FromList(Int(1))
	b := a.Clone()
	b.Release()

	assert.Equal(t, int32(1), a.table.refs)
	assert.Equal(t, 0, b.Count())
}

func TestReferences(t *testing.T) {
	a := FromList(Int(1), Int(2))
	b := a.Clone()

	r := a.GetRef(Int(0))
	r.Set(String("via ref"))
	assert.Equal(t, String("via ref"), a.Get(Int(0)))
	assert.Equal(t, Int(1), b.Get(Int(0)), "promotion must not be observed by other holders")

	a.Set(Int(0), String("via set"))
	assert.Equal(t, String("via set"), r.Get())

	// a copy keeps the reference shared, like $c = $a in PHP
	c := a.Clone()
	c.Set(Int(0), String("via copy"))
	assert.Equal(t, String("via copy"), a.Get(Int(0)))
}

func TestGetRefCreatesMissingKeys(t *testing.T) {
	a := NewArray()
	r := a.GetRef(String("k"))
	assert.Equal(t, Null(), r.Get())
	assert.True(t, a.Has(String("k")))

	r.Set(Int(42))
	assert.Equal(t, Int(42), a.Get(String("k")))
}

func TestSetRefAndAppendRef(t *testing.T) {
	r := NewReference(Int(1))

	a := NewArray()
	a.SetRef(String("x"), r)
	k, err := a.AppendRef(r)
	require.NoError(t, err)
	assert.Equal(t, IntKey(0), k)

	r.Set(Int(2))
	assert.Equal(t, Int(2), a.Get(String("x")))
	assert.Equal(t, Int(2), a.Get(Int(0)))

	a.Set(Int(0), Int(3))
	assert.Equal(t, Int(3), a.Get(String("x")))
}

func TestNilReferencesBindNewCells(t *testing.T) {
	a := NewArray()
	a.SetRef(String("x"), nil)
	k, err := a.AppendRef(nil)
	require.NoError(t, err)

	assert.Equal(t, Null(), a.Get(String("x")))
	assert.Equal(t, Null(), a.Get(k.Value()))
	assert.True(t, a.Has(String("x")))

	a.Set(String("x"), Int(1))
	assert.Equal(t, Int(1), a.Get(String("x")))
	assert.Equal(t, Null(), a.Get(k.Value()))
	assert.Equal(t, Null(), RefValue(nil).Deref())
}

func TestEnsureArray(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	a.Set(String("null"), Null())
	a.Set(String("false"), Bool(false))
	a.Set(String("scalar"), Int(1))

	a.EnsureArray(String("missing")).Set(Int(0), Int(1))
	a.EnsureArray(String("null")).Set(Int(0), Int(1))
	a.EnsureArray(String("false")).Set(Int(0), Int(1))
	assert.Nil(t, a.EnsureArray(String("scalar")))

	assert.Equal(t, 1, a.Get(String("missing")).Array().Count())
	assert.Equal(t, 1, a.Get(String("null")).Array().Count())
	assert.Equal(t, 1, a.Get(String("false")).Array().Count())
	assert.Equal(t, Int(1), a.Get(String("scalar")))
	assert.Equal(t, []DiagnosticKind{FalseToArray, MisusedAsArray}, kinds(*diags))
}

func TestEnsureArrayThroughReference(t *testing.T) {
	r := NewReference(Null())
	a := NewArray()
	a.SetRef(Int(0), r)

	a.EnsureArray(Int(0)).Set(String("k"), String("v"))

	inner := r.Get().Array()
	require.NotNil(t, inner)
	assert.Equal(t, String("v"), inner.Get(String("k")))
}

func TestEnsureObject(t *testing.T) {
	diags := captureDiagnostics(t)

	a := NewArray()
	o := a.EnsureObject(String("o"))
	std, ok := o.Object().(*StdClass)
	require.True(t, ok)
	std.Set("p", Int(1))

	assert.Same(t, std, a.EnsureObject(String("o")).Object())
	assert.Equal(t, Int(1), a.Get(String("o")).Object().(*StdClass).Get("p"))

	a.Set(String("s"), String("str"))
	assert.True(t, a.EnsureObject(String("s")).IsNull())
	require.Len(t, *diags, 1)
	assert.Equal(t, Diagnostic{Kind: MisusedAsObject, Message: "Attempt to assign property on string"}, (*diags)[0])
}

func TestDeepCopy(t *testing.T) {
	obj := NewStdClass()
	r := NewReference(Int(1))

	a := NewArray()
	a.EnsureArray(String("nested")).Set(Int(0), Int(1))
	a.Set(String("obj"), ObjectValue(obj))
	a.SetRef(String("ref"), r)

	cloned := a.DeepCopy(CopyCloned)
	assigned := a.DeepCopy(CopyAssigned)

	assert.NotSame(t, a.Get(String("nested")).Array().table, cloned.Get(String("nested")).Array().table)
	assert.Same(t, obj, cloned.Get(String("obj")).Object())

	r.Set(Int(2))
	assert.Equal(t, Int(2), cloned.Get(String("ref")))
	assert.Equal(t, Int(1), assigned.Get(String("ref")))
	assert.True(t, StrictEquals(ArrayValue(a), ArrayValue(cloned)))
}

func TestDeepCopyReturnedInPlace(t *testing.T) {
	a := FromList(Int(1))
	assert.NotSame(t, a, a.DeepCopy(CopyReturned))

	a.ReturnInPlace()
	assert.Same(t, a, a.DeepCopy(CopyReturned))
}

func TestDeepCopyCycle(t *testing.T) {
	a := selfReferencing()
	c := a.DeepCopy(CopyAssigned)

	assert.Equal(t, 1, c.Count())
	assert.False(t, a.table.visited)
}

func TestEnterLeave(t *testing.T) {
	a := FromList(Int(1))
	b := a.Clone()

	require.True(t, a.Enter())
	assert.False(t, b.Enter(), "holders of the same storage share the guard")
	a.Leave()
	assert.True(t, b.Enter())
	b.Leave()
}

func TestFreeSlotsAreReused(t *testing.T) {
	a := FromList(Int(0), Int(1), Int(2))
	a.Remove(Int(1))
	a.Set(String("x"), Int(3))

	assert.Len(t, a.table.slots, 3)
	assert.Equal(t, []Key{IntKey(0), IntKey(2), StringKey("x")}, keysOf(a))
}
