package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

func newTestGlobals(t *testing.T) (*symbols.Table, *names.Table) {
	t.Helper()
	nt := names.New()
	return symbols.NewTable(nt), nt
}

func intType() types.Type {
	return types.NewClassType(types.BuiltinClassRef(types.IdxInteger))
}

func strType() types.Type {
	return types.NewClassType(types.BuiltinClassRef(types.IdxString))
}

func objType() types.Type {
	return types.NewClassType(types.BuiltinClassRef(types.IdxObject))
}

func TestIsSubTypeReflexiveForAllKinds(t *testing.T) {
	gs, _ := newTestGlobals(t)
	cases := []types.Type{
		intType(), strType(), objType(), types.Top, types.Bottom, types.Untyped,
		types.NewOrType(intType(), strType()),
		types.NewAndType(intType(), strType()),
		types.NewTupleType([]types.Type{intType(), strType()}),
	}
	for _, c := range cases {
		require.True(t, IsSubType(gs, c, c))
	}
}

func TestSentinelLaws(t *testing.T) {
	gs, _ := newTestGlobals(t)
	require.True(t, IsSubType(gs, types.Bottom, intType()))
	require.True(t, IsSubType(gs, intType(), types.Top))
	require.False(t, IsSubType(gs, types.Top, intType()))
	require.False(t, IsSubType(gs, intType(), types.Bottom))
	require.True(t, IsSubType(gs, types.Untyped, intType()))
	require.True(t, IsSubType(gs, intType(), types.Untyped))
}

func TestClassSubtypingFollowsHierarchy(t *testing.T) {
	gs, _ := newTestGlobals(t)
	require.True(t, IsSubType(gs, intType(), objType()))
	require.False(t, IsSubType(gs, objType(), intType()))
}

func TestOrTypeSubtypingRules(t *testing.T) {
	gs, _ := newTestGlobals(t)
	orT := types.NewOrType(intType(), strType())
	require.True(t, IsSubType(gs, intType(), orT))
	require.True(t, IsSubType(gs, strType(), orT))
	require.True(t, IsSubType(gs, orT, objType()))
	require.False(t, IsSubType(gs, objType(), orT))
}

func TestAndTypeSubtypingRules(t *testing.T) {
	gs, _ := newTestGlobals(t)
	andT := types.NewAndType(intType(), objType())
	require.True(t, IsSubType(gs, andT, intType()))
	require.True(t, IsSubType(gs, andT, objType()))
	require.True(t, IsSubType(gs, intType(), andT))
}

func TestTupleSubtypingIsCovariantAndLengthRelated(t *testing.T) {
	gs, _ := newTestGlobals(t)
	short := types.NewTupleType([]types.Type{objType()})
	long := types.NewTupleType([]types.Type{intType(), strType()})
	require.True(t, IsSubType(gs, long, short))
	require.False(t, IsSubType(gs, short, long))
}

func TestShapeSubtypingIsCovariantOverSharedKeys(t *testing.T) {
	gs, _ := newTestGlobals(t)
	keyA := types.SymbolLiteral(names.NoName)
	narrow := types.NewShapeType([]types.LiteralValue{keyA}, []types.Type{intType()})
	wide := types.NewShapeType([]types.LiteralValue{keyA}, []types.Type{objType()})
	require.True(t, IsSubType(gs, narrow, wide))
}

func TestLubIsUpperBound(t *testing.T) {
	gs, _ := newTestGlobals(t)
	lub := Lub(gs, intType(), strType())
	require.True(t, IsSubType(gs, intType(), lub))
	require.True(t, IsSubType(gs, strType(), lub))
}

func TestLubOfSubtypeAndSupertypeIsSupertype(t *testing.T) {
	gs, _ := newTestGlobals(t)
	require.True(t, Equiv(gs, Lub(gs, intType(), objType()), objType()))
}

func TestGlbIsLowerBound(t *testing.T) {
	gs, _ := newTestGlobals(t)
	glb := Glb(gs, intType(), objType())
	require.True(t, IsSubType(gs, glb, intType()))
	require.True(t, IsSubType(gs, glb, objType()))
}

func TestLubCommutativity(t *testing.T) {
	gs, _ := newTestGlobals(t)
	a := Lub(gs, intType(), strType())
	b := Lub(gs, strType(), intType())
	require.True(t, Equiv(gs, a, b))
}

// TestGlbCommutativity mirrors TestLubCommutativity: spec.md:268-271 names
// glb commutativity alongside lub's as a required lattice law.
func TestGlbCommutativity(t *testing.T) {
	gs, _ := newTestGlobals(t)
	a := Glb(gs, intType(), objType())
	b := Glb(gs, objType(), intType())
	require.True(t, Equiv(gs, a, b))
}

// TestIsSubTypeIsTransitive exercises spec.md:268-271's transitivity law
// over a three-level class chain plus the sentinels, where a <: b <: c
// must imply a <: c.
func TestIsSubTypeIsTransitive(t *testing.T) {
	gs, _ := newTestGlobals(t)
	require.True(t, IsSubType(gs, intType(), objType()))
	require.True(t, IsSubType(gs, objType(), types.Top))
	require.True(t, IsSubType(gs, intType(), types.Top))

	require.True(t, IsSubType(gs, types.Bottom, intType()))
	require.True(t, IsSubType(gs, intType(), objType()))
	require.True(t, IsSubType(gs, types.Bottom, objType()))
}

// TestLubIsIdempotent and TestGlbIsIdempotent cover spec.md:268-271's
// idempotence law: lub(T,T) ≡ T and glb(T,T) ≡ T for representative
// ground, sentinel, and proxy types.
func TestLubIsIdempotent(t *testing.T) {
	gs, _ := newTestGlobals(t)
	for _, typ := range []types.Type{
		intType(), objType(), types.Top, types.Bottom, types.Untyped,
		types.NewOrType(intType(), strType()),
		types.NewTupleType([]types.Type{intType(), strType()}),
	} {
		require.True(t, Equiv(gs, Lub(gs, typ, typ), typ))
	}
}

func TestGlbIsIdempotent(t *testing.T) {
	gs, _ := newTestGlobals(t)
	for _, typ := range []types.Type{
		intType(), objType(), types.Top, types.Bottom, types.Untyped,
		types.NewOrType(intType(), strType()),
		types.NewTupleType([]types.Type{intType(), strType()}),
	} {
		require.True(t, Equiv(gs, Glb(gs, typ, typ), typ))
	}
}

// TestGlbOfUnrelatedProxyKindsIsBottom is the regression case spec.md
// §4.4.3 calls for directly: a TupleType and a ShapeType share no
// possible inhabitant, so their glb must be bottom rather than an
// uninhabited AndType of the two.
func TestGlbOfUnrelatedProxyKindsIsBottom(t *testing.T) {
	gs, _ := newTestGlobals(t)
	key := types.SymbolLiteral(names.NoName)
	tuple := types.NewTupleType([]types.Type{intType()})
	shape := types.NewShapeType([]types.LiteralValue{key}, []types.Type{intType()})
	require.True(t, Equiv(gs, Glb(gs, tuple, shape), types.Bottom))
}

func TestEquivIsReflexive(t *testing.T) {
	gs, _ := newTestGlobals(t)
	require.True(t, Equiv(gs, intType(), intType()))
}

func TestDropSubtypesOfRemovesMatchingDisjunct(t *testing.T) {
	gs, _ := newTestGlobals(t)
	orT := types.NewOrType(intType(), strType())
	dropped := DropSubtypesOf(gs, orT, intType())
	require.True(t, Equiv(gs, dropped, strType()))
}

func TestDropSubtypesOfEverythingYieldsBottom(t *testing.T) {
	gs, _ := newTestGlobals(t)
	dropped := DropSubtypesOf(gs, intType(), objType())
	require.True(t, Equiv(gs, dropped, types.Bottom))
}

func TestCanBeTruthyAndFalsy(t *testing.T) {
	gs, _ := newTestGlobals(t)
	nilT := types.NewClassType(types.BuiltinClassRef(types.IdxNilClass))

	require.False(t, CanBeTruthy(gs, nilT))
	require.True(t, CanBeFalsy(gs, nilT))

	require.True(t, CanBeTruthy(gs, intType()))
	require.False(t, CanBeFalsy(gs, intType()))

	mixed := types.NewOrType(intType(), nilT)
	require.True(t, CanBeTruthy(gs, mixed))
	require.True(t, CanBeFalsy(gs, mixed))
}

func TestApproximateSubtractNeverAddsValues(t *testing.T) {
	gs, _ := newTestGlobals(t)
	orT := types.NewOrType(intType(), strType())
	result := ApproximateSubtract(gs, orT, intType())
	require.True(t, IsSubType(gs, result, orT))
}
