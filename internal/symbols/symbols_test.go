package symbols

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/types"
)

func newTestTable(t *testing.T) (*Table, *names.Table) {
	t.Helper()
	nt := names.New()
	return NewTable(nt), nt
}

func TestEnterClassDedupesByOwnerAndName(t *testing.T) {
	st, nt := newTestTable(t)
	foo := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Foo"))
	bar1 := st.EnterClass(foo, nt.EnterUTF8("bar"))
	bar2 := st.EnterClass(foo, nt.EnterUTF8("bar"))
	require.Equal(t, bar1, bar2)
}

func TestEnterMethodDedupesByOwnerAndName(t *testing.T) {
	st, nt := newTestTable(t)
	foo := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Foo"))
	m1 := st.EnterMethod(foo, nt.EnterUTF8("bar"))
	m2 := st.EnterMethod(foo, nt.EnterUTF8("bar"))
	require.Equal(t, m1, m2)
}

func TestDerivesFromIsStrictAncestry(t *testing.T) {
	st, nt := newTestTable(t)
	myClass := st.EnterClass(types.NoSymbol, nt.EnterUTF8("MyClass"))
	st.ClassData(myClass).SuperClass = types.BuiltinClassRef(types.IdxObject)

	require.False(t, st.DerivesFrom(myClass, myClass))
	require.True(t, st.DerivesFrom(myClass, types.BuiltinClassRef(types.IdxObject)))
	require.True(t, st.DerivesFrom(myClass, types.BuiltinClassRef(types.IdxBasicObject)))
	require.False(t, st.DerivesFrom(types.BuiltinClassRef(types.IdxObject), myClass))
}

func TestDerivesFromTerminatesOnCycle(t *testing.T) {
	st, nt := newTestTable(t)
	a := st.EnterClass(types.NoSymbol, nt.EnterUTF8("A"))
	b := st.EnterClass(types.NoSymbol, nt.EnterUTF8("B"))
	st.ClassData(a).SuperClass = b
	st.ClassData(b).SuperClass = a // malformed on purpose

	require.NotPanics(t, func() {
		st.DerivesFrom(a, types.BuiltinClassRef(types.IdxObject))
	})
}

func TestFindMemberTransitiveWalksAncestors(t *testing.T) {
	st, nt := newTestTable(t)
	myClass := st.EnterClass(types.NoSymbol, nt.EnterUTF8("MyClass"))
	st.ClassData(myClass).SuperClass = types.BuiltinClassRef(types.IdxObject)

	toS := nt.EnterUTF8("to_s")
	require.False(t, st.FindMember(myClass, toS).Exists())
	require.True(t, st.FindMemberTransitive(myClass, toS).Exists())
}

func TestLookupSingletonClassIsIdempotent(t *testing.T) {
	st, nt := newTestTable(t)
	c := st.EnterClass(types.NoSymbol, nt.EnterUTF8("C"))

	s1 := st.LookupSingletonClass(c)
	s2 := st.LookupSingletonClass(c)
	require.Equal(t, s1, s2)

	ss := st.LookupSingletonClass(s1)
	require.Equal(t, s1, st.AttachedClass(ss))
}

func TestDealiasFollowsAliasTarget(t *testing.T) {
	st, nt := newTestTable(t)
	animal := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Animal"))
	pet := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Pet"))
	st.ClassData(pet).AliasTarget = animal

	require.Equal(t, animal, st.Dealias(pet))
	require.Equal(t, animal, st.Dealias(animal), "a non-alias symbol dealiases to itself")
}

func TestDealiasChainsThroughMultipleAliases(t *testing.T) {
	st, nt := newTestTable(t)
	animal := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Animal"))
	pet := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Pet"))
	companion := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Companion"))
	st.ClassData(pet).AliasTarget = animal
	st.ClassData(companion).AliasTarget = pet

	require.Equal(t, animal, st.Dealias(companion))
}

func TestDealiasDetectsCycle(t *testing.T) {
	st, nt := newTestTable(t)
	a := st.EnterClass(types.NoSymbol, nt.EnterUTF8("A"))
	b := st.EnterClass(types.NoSymbol, nt.EnterUTF8("B"))
	st.ClassData(a).AliasTarget = b
	st.ClassData(b).AliasTarget = a // malformed on purpose

	require.NotPanics(t, func() {
		st.Dealias(a)
	})
}

func TestArityFastRejectsTooFewOrTooManyArgs(t *testing.T) {
	st, nt := newTestTable(t)
	calc := st.EnterClass(types.NoSymbol, nt.EnterUTF8("Calculator"))
	add := st.EnterMethod(calc, nt.EnterUTF8("add"))
	intType := types.NewClassType(types.BuiltinClassRef(types.IdxInteger))
	st.MethodData(add).Arguments = []Argument{
		{Name: nt.EnterUTF8("a"), Type: intType},
		{Name: nt.EnterUTF8("b"), Type: intType},
	}

	require.True(t, st.FastRejectArgumentCount(add, 1))
	require.False(t, st.FastRejectArgumentCount(add, 2))
	require.True(t, st.FastRejectArgumentCount(add, 3))
}
