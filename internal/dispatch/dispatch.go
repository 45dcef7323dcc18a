// Package dispatch implements dispatchCall: resolving a call site
// (receiver type, method name, argument types) to a result type while
// posting structured diagnostics for any mismatch. Grounded on
// original_source/core/types/Types.cc's per-variant dispatchCall methods
// (ClassType::dispatchCall, OrType::dispatchCall, the unfinished
// AndType::dispatchCall) and on the argument-matching walk the original
// implements as one long imperative method; here it is a small explicit
// state machine over the consumed argument index, mirroring the teacher's
// preference for an index-driven parser loop (internal/js_parser) over a
// recursive-descent-per-flag-combination approach.
package dispatch

import (
	"fmt"

	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/lattice"
	"github.com/gradualrb/rbkernel/internal/metrics"
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/suggest"
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// TypeAndOrigins pairs an inferred Type with the source locations that
// contributed to it, matching spec.md §4's "TypeAndOrigins" entity and
// §6's "pre-computed TypeAndOrigins" per-CFG-variable input.
type TypeAndOrigins struct {
	Type    types.Type
	Origins []diagnostics.Loc
}

// Call resolves receiver.fun(args...) against gs, posting diagnostics to
// sink and returning a best-effort result type. It never aborts on a bad
// call site: a method that cannot be found yields untyped plus a posted
// Error, and argument mismatches are posted while the method's declared
// result type is still returned, per spec.md §7's propagation policy.
func Call(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, receiver types.Type, fun names.Ref, args []TypeAndOrigins, block *TypeAndOrigins, loc diagnostics.Loc) types.Type {
	if collector == nil {
		collector = metrics.NoOp{}
	}
	collector.Inc("dispatch.call")
	return dispatchOn(gs, collector, sink, receiver, fun, args, block, loc)
}

func dispatchOn(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, receiver types.Type, fun names.Ref, args []TypeAndOrigins, block *TypeAndOrigins, loc diagnostics.Loc) types.Type {
	if types.IsProxy(receiver) {
		return dispatchOn(gs, collector, sink, types.Underlying(receiver), fun, args, block, loc)
	}

	switch r := receiver.(type) {
	case *types.ClassType:
		if r == types.Untyped {
			collector.Inc("dispatch.untyped_receiver")
			return types.Untyped
		}
		return dispatchClass(gs, collector, sink, r, fun, args, block, loc)

	case *types.OrType:
		collector.Inc("dispatch.or_receiver")
		leftResult := dispatchOn(gs, collector, sink, r.Left, fun, args, block, loc)
		rightResult := dispatchOn(gs, collector, sink, r.Right, fun, args, block, loc)
		return lattice.Lub(gs, leftResult, rightResult)

	case *types.AndType:
		// AndType.dispatchCall is left-undefined by the source. This
		// implementation's documented choice: try the left operand first
		// (a silent memberExists probe); if the method isn't found there
		// at all, retry against the right and use that result and its
		// diagnostics instead. If both sides are missing the method, the
		// left side's UnknownMethod is the one actually posted.
		collector.Inc("dispatch.and_receiver")
		leftFound := memberExists(gs, r.Left, fun)
		if leftFound {
			return dispatchOn(gs, collector, sink, r.Left, fun, args, block, loc)
		}
		rightFound := memberExists(gs, r.Right, fun)
		if rightFound {
			return dispatchOn(gs, collector, sink, r.Right, fun, args, block, loc)
		}
		return dispatchOn(gs, collector, sink, r.Left, fun, args, block, loc)

	case *types.AppliedType:
		return dispatchClassRef(gs, collector, sink, r.Class, displayNameFor(gs, receiver), fun, args, block, loc)

	case *types.AliasType:
		return dispatchOn(gs, collector, sink, types.NewClassType(gs.Dealias(r.Sym)), fun, args, block, loc)

	default:
		collector.Inc("dispatch.unsupported_receiver")
		return types.Untyped
	}
}

// memberExists is the "would dispatch find a method at all" probe
// AndType.dispatchCall's left-then-right strategy needs, without posting
// any diagnostics or committing to argument matching.
func memberExists(gs *symbols.Table, receiver types.Type, fun names.Ref) bool {
	receiver = stripToClass(receiver)
	ct, ok := receiver.(*types.ClassType)
	if !ok {
		return true // conservatively assume present for shapes this probe doesn't model
	}
	if ct == types.Untyped {
		return true
	}
	return gs.FindMemberTransitive(ct.Sym, fun).Exists()
}

func stripToClass(t types.Type) types.Type {
	if types.IsProxy(t) {
		return types.Underlying(t)
	}
	return t
}

func dispatchClass(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, r *types.ClassType, fun names.Ref, args []TypeAndOrigins, block *TypeAndOrigins, loc diagnostics.Loc) types.Type {
	return dispatchClassRef(gs, collector, sink, r.Sym, gs.ShortName(r.Sym), fun, args, block, loc)
}

func dispatchClassRef(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, classSym types.SymbolRef, receiverDisplay string, fun names.Ref, args []TypeAndOrigins, block *TypeAndOrigins, loc diagnostics.Loc) types.Type {
	method := gs.FindMemberTransitive(classSym, fun)
	if !method.Exists() || method.Kind() != types.KindMethod {
		collector.Inc("dispatch.unknown_method")
		sink.Post(unknownMethodError(gs, classSym, receiverDisplay, fun, loc))
		return types.Untyped
	}

	if gs.FastRejectArgumentCount(method, len(args)) {
		collector.Inc("dispatch.arity_fast_reject")
	}

	matchArguments(gs, collector, sink, method, args, block, loc)

	result := gs.MethodData(method).ResultType
	if result == nil {
		return types.Untyped
	}
	return result
}

func unknownMethodError(gs *symbols.Table, classSym types.SymbolRef, receiverDisplay string, fun names.Ref, loc diagnostics.Loc) diagnostics.Error {
	funName := gs.Names().ShortName(fun)
	header := fmt.Sprintf("Method %s does not exist on %s", funName, receiverDisplay)
	if corrected, ok := suggestMethodName(gs, classSym, funName); ok {
		header = fmt.Sprintf("%s (did you mean %s?)", header, corrected)
	}
	return diagnostics.Error{
		Kind:   diagnostics.UnknownMethod,
		Loc:    loc,
		Header: header,
	}
}

// suggestMethodName collects every method name visible on classSym
// (transitively through ancestors, deduped) and asks internal/suggest for
// the closest match to the name actually used at the call site.
func suggestMethodName(gs *symbols.Table, classSym types.SymbolRef, typo string) (string, bool) {
	candidates := gs.VisibleMethodNames(classSym)
	if len(candidates) == 0 {
		return "", false
	}
	return suggest.New(candidates).Correct(typo)
}

func displayNameFor(gs *symbols.Table, t types.Type) string {
	return types.Display(t)
}
