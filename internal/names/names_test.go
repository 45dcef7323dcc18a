package names

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnterUTF8Deduplicates(t *testing.T) {
	tbl := New()
	a := tbl.EnterUTF8("foo")
	b := tbl.EnterUTF8("foo")
	require.Equal(t, a, b)
	require.True(t, a.Exists())
}

func TestNoNameDoesNotExist(t *testing.T) {
	require.False(t, NoName.Exists())
}

func TestConstantWrapsUTF8(t *testing.T) {
	tbl := New()
	base := tbl.EnterUTF8("Foo")
	c1 := tbl.EnterConstant(base)
	c2 := tbl.EnterConstant(base)
	require.Equal(t, c1, c2)
	require.NotEqual(t, base, c1)
	require.Equal(t, "Foo", tbl.ShortName(c1))
}

func TestEnterUniqueDedupesOnFullKey(t *testing.T) {
	tbl := New()
	base := tbl.EnterUTF8("Foo")
	u1 := tbl.EnterUnique(1, base, 0)
	u2 := tbl.EnterUnique(1, base, 0)
	u3 := tbl.EnterUnique(1, base, 1)
	require.Equal(t, u1, u2)
	require.NotEqual(t, u1, u3)
}

func TestUniqueNeverEqualsUTF8WithSamePrintableForm(t *testing.T) {
	tbl := New()
	base := tbl.EnterUTF8("Foo")
	unique := tbl.EnterUnique(2, base, 0)
	plain, _ := tbl.Lookup("Foo")
	require.NotEqual(t, plain, unique)
}

func TestBuildSubstitutionIsStableAcrossKinds(t *testing.T) {
	src := New()
	srcBase := src.EnterUTF8("foo")
	srcConst := src.EnterConstant(src.EnterUTF8("Bar"))
	srcUnique := src.EnterUnique(1, srcBase, 0)

	dst := New()
	subst := dst.BuildSubstitution(src)

	require.Equal(t, dst.EnterUTF8("foo"), subst[srcBase])
	require.Equal(t, dst.EnterConstant(dst.EnterUTF8("Bar")), subst[srcConst])
	require.Equal(t, dst.EnterUnique(1, subst[srcBase], 0), subst[srcUnique])
}

func TestInternIsDeterministicAcrossRuns(t *testing.T) {
	build := func() []Ref {
		tbl := New()
		var refs []Ref
		for _, s := range []string{"alpha", "beta", "gamma", "alpha"} {
			refs = append(refs, tbl.EnterUTF8(s))
		}
		return refs
	}
	require.Equal(t, build(), build())
}
