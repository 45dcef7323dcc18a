package symbols

import (
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/types"
)

// ArityInfo is a precomputed summary of a method's formal parameter shape,
// grounded on original_source/core/ArityHash.cc: the original computes a
// hash of a method's arity to fast-reject obviously-wrong call sites
// before doing the full argument-matching walk. This implementation keeps
// the summary itself (not a hash of it) since internal/dispatch needs the
// actual counts anyway; the performance win is the same — one cheap
// struct comparison against the call site's shape before the general
// algorithm runs.
type ArityInfo struct {
	RequiredPositional int
	OptionalPositional int
	HasRest            bool
	HasBlock           bool
	RequiredKeywords   []names.Ref
	OptionalKeywords   []names.Ref
	HasKeywordRest     bool
}

// MinPositional/MaxPositional describe the acceptable positional-argument
// count range; MaxPositional is -1 when HasRest makes it unbounded.
func (a ArityInfo) MinPositional() int {
	return a.RequiredPositional
}

func (a ArityInfo) MaxPositional() int {
	if a.HasRest {
		return -1
	}
	return a.RequiredPositional + a.OptionalPositional
}

// Arity computes (and caches on the MethodSymbol) the ArityInfo for a
// method ref. Safe to call concurrently; the cache is populated once and
// never invalidated, matching the "symbols are mutated until the resolver
// completes, then frozen" lifecycle in spec.md §3 — by the time dispatch
// calls this, Arguments is no longer changing, but spec.md §5 still
// allows many goroutines to race to populate the cache the first time, so
// m.arityMu guards the read-check-write.
func (t *Table) Arity(ref types.SymbolRef) ArityInfo {
	m := t.MethodData(ref)

	m.arityMu.Lock()
	defer m.arityMu.Unlock()

	if m.arity != nil {
		return *m.arity
	}
	var info ArityInfo
	for _, arg := range m.Arguments {
		switch {
		case arg.Flags.IsBlock():
			info.HasBlock = true
		case arg.Flags.IsKeywordRest():
			info.HasKeywordRest = true
		case arg.Flags.IsKeyword():
			if arg.Flags.Has(ArgOptional) {
				info.OptionalKeywords = append(info.OptionalKeywords, arg.Name)
			} else {
				info.RequiredKeywords = append(info.RequiredKeywords, arg.Name)
			}
		case arg.Flags.IsRest():
			info.HasRest = true
		case arg.Flags.Has(ArgOptional):
			info.OptionalPositional++
		default:
			info.RequiredPositional++
		}
	}
	m.arity = &info
	return info
}

// FastRejectArgumentCount reports whether a call with positionalCount
// positional arguments is obviously incompatible with ref's arity,
// without walking the full argument-matching state machine in
// internal/dispatch. A false result does not imply the call is valid —
// only that the cheap check didn't rule it out.
func (t *Table) FastRejectArgumentCount(ref types.SymbolRef, positionalCount int) bool {
	a := t.Arity(ref)
	if positionalCount < a.MinPositional() {
		return true
	}
	if max := a.MaxPositional(); max >= 0 && positionalCount > max {
		return true
	}
	return false
}
