package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassTypeIsInterned(t *testing.T) {
	sym := BuiltinClassRef(IdxInteger)
	a := NewClassType(sym)
	b := NewClassType(sym)
	require.True(t, a == b, "expected the same *ClassType pointer for the same symbol")
}

func TestSentinelsAreDistinctByUnderlyingSymbol(t *testing.T) {
	require.NotEqual(t, Top.Sym, Bottom.Sym)
	require.NotEqual(t, Top.Sym, Untyped.Sym)
	require.NotEqual(t, Bottom.Sym, Untyped.Sym)
}

func TestTupleUnderlyingIsArray(t *testing.T) {
	tup := NewTupleType([]Type{NewClassType(BuiltinClassRef(IdxInteger))})
	require.Equal(t, ArrayClass, Underlying(tup).Sym)
	require.True(t, IsProxy(tup))
}

func TestShapeGetLooksUpByLiteralEquality(t *testing.T) {
	keys := []LiteralValue{StringLiteral("path")}
	values := []Type{NewClassType(BuiltinClassRef(IdxString))}
	shape := NewShapeType(keys, values)

	v, ok := shape.Get(StringLiteral("path"))
	require.True(t, ok)
	require.Equal(t, values[0], v)

	_, ok = shape.Get(StringLiteral("missing"))
	require.False(t, ok)
}

func TestLiteralValueEqualRequiresSameKind(t *testing.T) {
	require.False(t, IntLiteral(0).Equal(BoolLiteral(false)))
	require.True(t, IntLiteral(3).Equal(IntLiteral(3)))
	require.False(t, IntLiteral(3).Equal(IntLiteral(4)))
}

func TestDisplayRendersOrAndAndWithoutPanicking(t *testing.T) {
	i := NewClassType(BuiltinClassRef(IdxInteger))
	s := NewClassType(BuiltinClassRef(IdxString))
	or := NewOrType(i, s)
	and := NewAndType(or, i)
	require.NotEmpty(t, Display(or))
	require.NotEmpty(t, Display(and))
}
