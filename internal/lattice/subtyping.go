// Package lattice implements the three mutually-recursive computations
// spec.md §4.4 calls out: IsSubType, Lub, and Glb, plus the narrowing
// helpers in §4.5. It is grounded on
// original_source/core/types/subtyping.cc for the decision-procedure
// shape (identity fast path, sentinel handling, proxy-vs-proxy,
// proxy-vs-ground, then the ground kind-ordering swap) and on
// original_source/infer/Types.cc for dropSubtypesOf/canBeTruthy.
package lattice

import (
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// IsSubType decides whether t1 <: t2 under gs's class hierarchy.
func IsSubType(gs *symbols.Table, t1, t2 types.Type) bool {
	// 1. Identity fast path (spec.md §4.4.1 step 1).
	if sameIdentity(t1, t2) {
		return true
	}

	// 2. Sentinel handling (step 2).
	if isUntyped(t1) || isUntyped(t2) {
		return true
	}
	if isBottom(t1) {
		return true
	}
	if isTop(t2) {
		return true
	}
	if isTop(t1) {
		// Only top is a subtype of top, and that was already caught by
		// the identity fast path since Top is interned.
		return false
	}
	if isBottom(t2) {
		// Nothing nontrivial is a subtype of bottom; t1 being bottom was
		// handled above, and t1 can't be identical to Bottom here either.
		return false
	}

	// 3 & 4. Proxy handling.
	isProxy1 := types.IsProxy(t1)
	isProxy2 := types.IsProxy(t2)
	switch {
	case isProxy1 && isProxy2:
		if ok, decided := proxyVsProxy(gs, t1, t2); decided {
			return ok
		}
		// Different proxy kinds: fall through to underlying comparison.
		return IsSubType(gs, types.Underlying(t1), types.Underlying(t2))
	case isProxy1 && !isProxy2:
		return IsSubType(gs, types.Underlying(t1), t2)
	case !isProxy1 && isProxy2:
		// A non-proxy is never a subtype of a proxy.
		return false
	}

	// 5. Ground case.
	return isSubTypeGround(gs, t1, t2)
}

func sameIdentity(t1, t2 types.Type) bool {
	// Composite Type variants are pointers (see internal/types), so an
	// interface-to-interface comparison here is a pointer-identity check
	// for anything but the rare case of two different concrete pointer
	// types being compared, which == handles correctly by being false.
	return t1 == t2
}

func isTop(t types.Type) bool {
	ct, ok := t.(*types.ClassType)
	return ok && ct == types.Top
}

func isBottom(t types.Type) bool {
	ct, ok := t.(*types.ClassType)
	return ok && ct == types.Bottom
}

func isUntyped(t types.Type) bool {
	ct, ok := t.(*types.ClassType)
	return ok && ct == types.Untyped
}

// proxyVsProxy handles the TupleType/ShapeType/LiteralType matching rules
// in spec.md §4.4.1 step 3. The bool result is meaningless unless decided
// is true; when the two proxies are of different variants, decided is
// false and the caller falls back to underlying-class comparison.
func proxyVsProxy(gs *symbols.Table, p1, p2 types.Type) (ok bool, decided bool) {
	switch a := p1.(type) {
	case *types.TupleType:
		b, same := p2.(*types.TupleType)
		if !same {
			return false, false
		}
		return tupleSubtype(gs, a, b), true

	case *types.ShapeType:
		b, same := p2.(*types.ShapeType)
		if !same {
			return false, false
		}
		return shapeSubtype(gs, a, b), true

	case *types.LiteralType:
		b, same := p2.(*types.LiteralType)
		if !same {
			return false, false
		}
		return a.Underlying == b.Underlying && a.Raw.Equal(b.Raw), true
	}
	return false, false
}

// tupleSubtype: covariant, long tuples are subtypes of short tuples —
// TupleType(a) <: TupleType(b) iff len(a) >= len(b) and each of the first
// len(b) elements of a is a subtype of the corresponding element of b.
func tupleSubtype(gs *symbols.Table, a, b *types.TupleType) bool {
	if len(a.Elems) < len(b.Elems) {
		return false
	}
	for i := range b.Elems {
		if !IsSubType(gs, a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}

// shapeSubtype: covariant — ShapeType(k1,v1) <: ShapeType(k2,v2) iff every
// key in k2 appears in k1 and each corresponding value in v1 is a subtype
// of the one in v2.
func shapeSubtype(gs *symbols.Table, a, b *types.ShapeType) bool {
	for i, key := range b.Keys {
		v1, ok := a.Get(key)
		if !ok {
			return false
		}
		if !IsSubType(gs, v1, b.Values[i]) {
			return false
		}
	}
	return true
}

// isSubTypeGround covers And/Or/Class combinations once proxies have been
// stripped, per spec.md §4.4.1 step 5. Kind ordering is ClassType=1 <
// AndType=2 < OrType=3, and the spec permits normalizing kind(t1) <=
// kind(t2) and swapping otherwise to halve the number of cases that must
// be written out.
func isSubTypeGround(gs *symbols.Table, t1, t2 types.Type) bool {
	if kindRank(t1) > kindRank(t2) {
		return isSubTypeGroundOrdered(gs, t2, t1, true)
	}
	return isSubTypeGroundOrdered(gs, t1, t2, false)
}

func kindRank(t types.Type) int {
	switch t.(type) {
	case *types.ClassType:
		return 1
	case *types.AndType:
		return 2
	case *types.OrType:
		return 3
	case *types.AppliedType:
		return 1 // treated like a ClassType for ordering purposes
	case *types.AliasType:
		return 1
	default:
		return 1
	}
}

// isSubTypeGroundOrdered assumes kindRank(a) <= kindRank(b) unless
// swapped is true, in which case a and b have already been exchanged from
// the caller's original (t1, t2) and the roles of "subtype of" must be
// read accordingly: swapped means the original call was
// isSubType(bigger-kind, smaller-kind), so we must still answer the
// question "is the ORIGINAL t1 <: the ORIGINAL t2", not "is a <: b".
func isSubTypeGroundOrdered(gs *symbols.Table, a, b types.Type, swapped bool) bool {
	if !swapped {
		return dispatchGround(gs, a, b)
	}
	// a, b here are (originalT2, originalT1); we need originalT1 <: originalT2,
	// i.e. b <: a under the same case analysis with roles reversed.
	return dispatchGroundReversed(gs, a, b)
}

// dispatchGround answers "is t1 <: t2" when kindRank(t1) <= kindRank(t2).
func dispatchGround(gs *symbols.Table, t1, t2 types.Type) bool {
	switch l := t1.(type) {
	case *types.OrType:
		// (Or, _): left <: t2 && right <: t2
		return IsSubType(gs, l.Left, t2) && IsSubType(gs, l.Right, t2)
	}
	switch r := t2.(type) {
	case *types.AndType:
		// (_, And): t1 <: left && t1 <: right
		return IsSubType(gs, t1, r.Left) && IsSubType(gs, t1, r.Right)
	case *types.OrType:
		// (_, Or): t1 <: left || t1 <: right
		return IsSubType(gs, t1, r.Left) || IsSubType(gs, t1, r.Right)
	}
	switch l := t1.(type) {
	case *types.AndType:
		// (And, _): left <: t2 || right <: t2
		return IsSubType(gs, l.Left, t2) || IsSubType(gs, l.Right, t2)
	}
	return classGroundSubtype(gs, t1, t2)
}

// dispatchGroundReversed answers "is t1 <: t2" given the same pair but
// arriving with kindRank(t2) <= kindRank(t1) (a, b passed in as
// (t2, t1)); it mirrors dispatchGround with the receiver/operand swapped
// back to the original question.
func dispatchGroundReversed(gs *symbols.Table, t2, t1 types.Type) bool {
	switch l := t1.(type) {
	case *types.OrType:
		return IsSubType(gs, l.Left, t2) && IsSubType(gs, l.Right, t2)
	}
	switch r := t2.(type) {
	case *types.AndType:
		return IsSubType(gs, t1, r.Left) && IsSubType(gs, t1, r.Right)
	case *types.OrType:
		return IsSubType(gs, t1, r.Left) || IsSubType(gs, t1, r.Right)
	}
	switch l := t1.(type) {
	case *types.AndType:
		return IsSubType(gs, l.Left, t2) || IsSubType(gs, l.Right, t2)
	}
	return classGroundSubtype(gs, t1, t2)
}

// classGroundSubtype is reached once neither side is And/Or: both must be
// ClassType (or AppliedType/AliasType, compared by their head symbol).
// (Class, Class): name-equal or t1.symbol.derivesFrom(t2.symbol).
func classGroundSubtype(gs *symbols.Table, t1, t2 types.Type) bool {
	sym1, ok1 := classSymbol(gs, t1)
	sym2, ok2 := classSymbol(gs, t2)
	if !ok1 || !ok2 {
		return false
	}
	if sym1 == sym2 {
		return true
	}
	return gs.DerivesFrom(sym1, sym2)
}

// classSymbol extracts the head class symbol of a ClassType, AppliedType
// (erasing type arguments), or AliasType (dealiased, via gs.Dealias, so a
// late-bound constant reference compares equal to / derives from its
// target rather than its own alias symbol).
func classSymbol(gs *symbols.Table, t types.Type) (types.SymbolRef, bool) {
	switch v := t.(type) {
	case *types.ClassType:
		return v.Sym, true
	case *types.AppliedType:
		return v.Class, true
	case *types.AliasType:
		return gs.Dealias(v.Sym), true
	default:
		return types.NoSymbol, false
	}
}

// Equiv is mutual subtyping.
func Equiv(gs *symbols.Table, t1, t2 types.Type) bool {
	return IsSubType(gs, t1, t2) && IsSubType(gs, t2, t1)
}
