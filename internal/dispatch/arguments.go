package dispatch

import (
	"fmt"

	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/lattice"
	"github.com/gradualrb/rbkernel/internal/metrics"
	"github.com/gradualrb/rbkernel/internal/suggest"
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// matchArguments walks method's formal parameter list against args in
// lockstep, per spec.md §4.4.5's five-step algorithm. It posts every
// mismatch it finds to sink and never returns early: a bad argument at
// position 2 doesn't suppress checking position 3.
func matchArguments(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, method types.SymbolRef, args []TypeAndOrigins, block *TypeAndOrigins, loc diagnostics.Loc) {
	m := gs.MethodData(method)
	formals := m.Arguments

	positional, keywordFormals, rest, keywordRest, blockFormal := splitFormals(formals)

	// Step 2/3: if the method takes keywords, the trailing actual (if a
	// ShapeType, or absent) is split off before positional matching so
	// positional consumption never eats the keyword shape.
	actuals := args
	var keywordActual *TypeAndOrigins
	if len(keywordFormals) > 0 || keywordRest != nil {
		actuals, keywordActual = splitTrailingShape(args)
	}

	// Step 1: positional matching.
	ai := 0
	for _, formal := range positional {
		if ai >= len(actuals) {
			if !formal.Flags.Has(symbols.ArgOptional) {
				collector.Inc("dispatch.arg_count_mismatch")
				sink.Post(argCountError(loc, len(formals), len(args)))
			}
			continue
		}
		checkPositional(gs, collector, sink, formal, actuals[ai], loc)
		ai++
	}
	if rest != nil {
		for ai < len(actuals) {
			checkPositional(gs, collector, sink, *rest, actuals[ai], loc)
			ai++
		}
	} else if ai < len(actuals) {
		// Step 4: leftover positional actuals with no rest formal to
		// absorb them.
		collector.Inc("dispatch.arg_count_mismatch")
		sink.Post(argCountError(loc, len(positional), len(actuals)))
	}

	// Step 2/3: keyword matching.
	matchKeywords(gs, collector, sink, keywordFormals, keywordRest, keywordActual, loc)

	// Step 5: block.
	if blockFormal != nil && block == nil && !blockFormal.Flags.Has(symbols.ArgOptional) {
		collector.Inc("dispatch.arg_count_mismatch")
		sink.Post(argCountError(loc, len(formals), len(args)))
	}
}

func splitFormals(formals []symbols.Argument) (positional []symbols.Argument, keyword []symbols.Argument, rest *symbols.Argument, keywordRest *symbols.Argument, block *symbols.Argument) {
	for i := range formals {
		f := formals[i]
		switch {
		case f.Flags.IsBlock():
			block = &formals[i]
		case f.Flags.IsKeywordRest():
			keywordRest = &formals[i]
		case f.Flags.IsKeyword():
			keyword = append(keyword, f)
		case f.Flags.IsRest():
			rest = &formals[i]
		default:
			positional = append(positional, f)
		}
	}
	return
}

// splitTrailingShape removes and returns the last actual if it is a
// ShapeType (the caller's keyword-argument hash literal), leaving the rest
// for positional matching.
func splitTrailingShape(args []TypeAndOrigins) ([]TypeAndOrigins, *TypeAndOrigins) {
	if len(args) == 0 {
		return args, nil
	}
	last := args[len(args)-1]
	t := stripToClass(last.Type)
	if _, isShape := last.Type.(*types.ShapeType); isShape {
		return args[:len(args)-1], &last
	}
	// An untyped Hash trailing actual is treated as present-but-opaque:
	// step 3 says untyped hashes silently satisfy keyword formals, so it
	// is consumed here too rather than falling through to positional
	// matching (which would misreport it as an extra positional arg).
	if ct, ok := t.(*types.ClassType); ok && (ct == types.Untyped || ct.Sym == types.BuiltinClassRef(types.IdxHash)) {
		return args[:len(args)-1], &last
	}
	return args, nil
}

func checkPositional(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, formal symbols.Argument, actual TypeAndOrigins, loc diagnostics.Loc) {
	if formal.Type == nil {
		return
	}
	if !lattice.IsSubType(gs, actual.Type, formal.Type) {
		collector.Inc("dispatch.arg_type_mismatch")
		sink.Post(argMismatchError(gs, loc, formal.Type, actual))
	}
}

func matchKeywords(gs *symbols.Table, collector metrics.Collector, sink diagnostics.Sink, keywordFormals []symbols.Argument, keywordRest *symbols.Argument, actual *TypeAndOrigins, loc diagnostics.Loc) {
	if len(keywordFormals) == 0 && keywordRest == nil {
		return
	}

	if actual == nil {
		// Step 3: no trailing shape/hash passed at all; every required
		// keyword is missing.
		for _, kw := range keywordFormals {
			if !kw.Flags.Has(symbols.ArgOptional) {
				collector.Inc("dispatch.missing_keyword")
				sink.Post(argCountError(loc, len(keywordFormals), 0))
			}
		}
		return
	}

	shape, isShape := actual.Type.(*types.ShapeType)
	if !isShape {
		// Untyped/opaque Hash: permit it to silently satisfy every formal
		// (step 3's documented soundness tradeoff).
		return
	}

	declared := make(map[string]bool, len(keywordFormals))
	var declaredNames []string
	for _, kw := range keywordFormals {
		name := gs.Names().ShortName(kw.Name)
		declared[name] = true
		declaredNames = append(declaredNames, name)
		value, ok := shape.Get(types.SymbolLiteral(kw.Name))
		if !ok {
			if !kw.Flags.Has(symbols.ArgOptional) {
				collector.Inc("dispatch.missing_keyword")
				sink.Post(argCountError(loc, len(keywordFormals), len(shape.Keys)))
			}
			continue
		}
		if kw.Type != nil && !lattice.IsSubType(gs, value, kw.Type) {
			collector.Inc("dispatch.arg_type_mismatch")
			sink.Post(argMismatchError(gs, loc, kw.Type, TypeAndOrigins{Type: value, Origins: actual.Origins}))
		}
	}

	if keywordRest != nil {
		return
	}
	for _, key := range shape.Keys {
		if key.Kind != types.LiteralSymbol {
			continue
		}
		name := gs.Names().ShortName(key.Sym)
		if !declared[name] {
			collector.Inc("dispatch.unknown_keyword")
			header := fmt.Sprintf("Unrecognized keyword argument %s", name)
			if corrected, ok := suggest.New(declaredNames).Correct(name); ok {
				header = fmt.Sprintf("%s (did you mean %s?)", header, corrected)
			}
			sink.Post(diagnostics.Error{
				Kind:   diagnostics.UnknownKeyword,
				Loc:    loc,
				Header: header,
			})
		}
	}
}

func argCountError(loc diagnostics.Loc, expected, got int) diagnostics.Error {
	return diagnostics.Error{
		Kind:   diagnostics.MethodArgumentCountMismatch,
		Loc:    loc,
		Header: fmt.Sprintf("Wrong number of arguments: expected %d, got %d", expected, got),
	}
}

func argMismatchError(gs *symbols.Table, loc diagnostics.Loc, expected types.Type, actual TypeAndOrigins) diagnostics.Error {
	sections := []diagnostics.Section{
		{Heading: "Expected", Lines: []diagnostics.DetailLine{{Loc: loc, Message: types.Display(expected)}}},
	}
	var gotLines []diagnostics.DetailLine
	for _, o := range actual.Origins {
		gotLines = append(gotLines, diagnostics.DetailLine{Loc: o, Message: types.Display(actual.Type)})
	}
	if len(gotLines) == 0 {
		gotLines = []diagnostics.DetailLine{{Loc: loc, Message: types.Display(actual.Type)}}
	}
	sections = append(sections, diagnostics.Section{Heading: "Got", Lines: gotLines})

	return diagnostics.Error{
		Kind:     diagnostics.MethodArgumentMismatch,
		Loc:      loc,
		Header:   fmt.Sprintf("Argument type mismatch: expected %s, got %s", types.Display(expected), types.Display(actual.Type)),
		Sections: sections,
	}
}
