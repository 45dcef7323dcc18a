package lattice

import (
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// Lub computes the least upper bound of t1 and t2: the most specific type
// both are subtypes of. Grounded on original_source/infer/Types.cc's
// Types::lub, which short-circuits on sentinel/identity cases before
// falling back to constructing an OrType — the fallback is always sound
// (a union is always an upper bound) even when it isn't the tightest
// possible answer, which is the same approximation the original makes.
func Lub(gs *symbols.Table, t1, t2 types.Type) types.Type {
	if sameIdentity(t1, t2) {
		return t1
	}
	if isBottom(t1) {
		return t2
	}
	if isBottom(t2) {
		return t1
	}
	if isUntyped(t1) || isUntyped(t2) {
		return types.Untyped
	}
	if isTop(t1) || isTop(t2) {
		return types.Top
	}

	if IsSubType(gs, t1, t2) {
		return t2
	}
	if IsSubType(gs, t2, t1) {
		return t1
	}

	// Two proxies of the same kind may have a tighter ground lub than
	// "OrType of the two proxies" — spec.md §9's documented decision is to
	// compute it against their Underlying classes instead of keeping the
	// proxies alive inside the Or, since a union of two tuple literals
	// isn't itself usefully proxy-shaped.
	if types.IsProxy(t1) && types.IsProxy(t2) {
		return Lub(gs, types.Underlying(t1), types.Underlying(t2))
	}
	if types.IsProxy(t1) {
		t1 = types.Underlying(t1)
	}
	if types.IsProxy(t2) {
		t2 = types.Underlying(t2)
	}
	if sameIdentity(t1, t2) {
		return t1
	}

	return types.NewOrType(t1, t2)
}

// Glb computes the greatest lower bound: the most general type both t1 and
// t2 are supertypes of. Falls back to constructing an AndType, which is
// always sound (an intersection is always a lower bound).
func Glb(gs *symbols.Table, t1, t2 types.Type) types.Type {
	if sameIdentity(t1, t2) {
		return t1
	}
	if isTop(t1) {
		return t2
	}
	if isTop(t2) {
		return t1
	}
	if isUntyped(t1) || isUntyped(t2) {
		return types.Untyped
	}
	if isBottom(t1) || isBottom(t2) {
		return types.Bottom
	}

	if IsSubType(gs, t1, t2) {
		return t1
	}
	if IsSubType(gs, t2, t1) {
		return t2
	}

	// spec.md §4.4.3: "on two unrelated proxy kinds, return bottom" — a
	// TupleType and a ShapeType (say) share no possible inhabitant, so an
	// AndType of the two would be uninhabited without the lattice saying
	// so. Proxies of the same kind fall back to their Underlying classes,
	// mirroring Lub's same-kind-proxy handling in this file.
	if types.IsProxy(t1) && types.IsProxy(t2) {
		if sameProxyVariant(t1, t2) {
			return Glb(gs, types.Underlying(t1), types.Underlying(t2))
		}
		return types.Bottom
	}
	if types.IsProxy(t1) {
		t1 = types.Underlying(t1)
	}
	if types.IsProxy(t2) {
		t2 = types.Underlying(t2)
	}
	if sameIdentity(t1, t2) {
		return t1
	}

	return types.NewAndType(t1, t2)
}

// sameProxyVariant reports whether t1 and t2 are both proxies of the same
// concrete variant (TupleType/ShapeType/LiteralType). Callers must check
// types.IsProxy(t1) && types.IsProxy(t2) first.
func sameProxyVariant(t1, t2 types.Type) bool {
	switch t1.(type) {
	case *types.TupleType:
		_, ok := t2.(*types.TupleType)
		return ok
	case *types.ShapeType:
		_, ok := t2.(*types.ShapeType)
		return ok
	case *types.LiteralType:
		_, ok := t2.(*types.LiteralType)
		return ok
	default:
		return false
	}
}

// DropSubtypesOf removes every disjunct of t that is a subtype of target,
// returning the narrowed type. Grounded on
// original_source/infer/Types.cc's Types::dropSubtypesOf, used by flow-
// sensitive narrowing after an `is_a?`/`===` check fails. Non-OrType input
// is returned unchanged unless it is itself a subtype of target, in which
// case the result is Bottom (nothing remains).
func DropSubtypesOf(gs *symbols.Table, t, target types.Type) types.Type {
	if or, ok := t.(*types.OrType); ok {
		left := DropSubtypesOf(gs, or.Left, target)
		right := DropSubtypesOf(gs, or.Right, target)
		switch {
		case isBottom(left):
			return right
		case isBottom(right):
			return left
		default:
			return types.NewOrType(left, right)
		}
	}
	if IsSubType(gs, t, target) {
		return types.Bottom
	}
	return t
}

// ApproximateSubtract computes an upper-bound approximation of "t1 minus
// t2" for narrowing purposes: it behaves exactly like DropSubtypesOf(t1,
// t2) for OrType receivers, and conservatively returns t1 unchanged for
// any ground type that isn't itself entirely removed, matching
// original_source/infer/Types.cc's documented stance that subtraction over
// a nominal lattice is not generally precise, so the result should always
// err toward keeping more possibilities rather than fewer.
func ApproximateSubtract(gs *symbols.Table, t1, t2 types.Type) types.Type {
	return DropSubtypesOf(gs, t1, t2)
}

// CanBeTruthy reports whether any value of type t could be truthy — false
// only for NilClass and FalseClass (and Bottom, vacuously).
func CanBeTruthy(gs *symbols.Table, t types.Type) bool {
	if isUntyped(t) {
		return true
	}
	return !IsSubType(gs, t, falsyUnion())
}

// CanBeFalsy reports whether any value of type t could be falsy — nil or
// false are the only falsy values in the source language. An OrType is
// falsy-capable if either disjunct is; any other ground type is
// falsy-capable only if it is, or is a supertype or subtype of, NilClass
// or FalseClass.
func CanBeFalsy(gs *symbols.Table, t types.Type) bool {
	if isBottom(t) {
		return false
	}
	if isUntyped(t) || isTop(t) {
		return true
	}
	if or, ok := t.(*types.OrType); ok {
		return CanBeFalsy(gs, or.Left) || CanBeFalsy(gs, or.Right)
	}
	nilT := types.NewClassType(types.BuiltinClassRef(types.IdxNilClass))
	falseT := types.NewClassType(types.BuiltinClassRef(types.IdxFalseClass))
	return IsSubType(gs, nilT, t) || IsSubType(gs, falseT, t) ||
		IsSubType(gs, t, nilT) || IsSubType(gs, t, falseT)
}

func falsyUnion() types.Type {
	nilT := types.NewClassType(types.BuiltinClassRef(types.IdxNilClass))
	falseT := types.NewClassType(types.BuiltinClassRef(types.IdxFalseClass))
	return types.NewOrType(nilT, falseT)
}
