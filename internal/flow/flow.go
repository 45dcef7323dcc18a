// Package flow is the minimal, in-scope stand-in for "the surrounding
// compiler" spec.md §6 describes feeding the kernel: a sequence of CFG
// basic blocks, each a sequence of instructions, each instruction either a
// method call to resolve or a narrowing check. It does not parse source,
// build a real control-flow graph, or implement anything beyond calling
// internal/dispatch and internal/lattice per instruction and recording
// the result against the instruction's destination variable — grounded on
// the teacher's internal/graph package's shape of "a linear pass over
// nodes collecting per-node results," generalized from a module
// dependency graph to a block-of-instructions list.
package flow

import (
	"github.com/gradualrb/rbkernel/internal/config"
	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/dispatch"
	"github.com/gradualrb/rbkernel/internal/lattice"
	"github.com/gradualrb/rbkernel/internal/metrics"
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// Var is a CFG-local variable reference, opaque to the kernel (spec.md
// §6: "CFG-local refs"); any comparable value naming a variable slot
// works, so callers are free to use their own numbering.
type Var int

// Instruction is one statement in a basic block. Exactly one of Call or
// Narrow should be non-nil/non-zero; a block is simply []Instruction.
type Instruction struct {
	// Dest is the variable this instruction binds, if any.
	Dest Var

	// Call, when non-nil, is a method-call instruction: receiver, method
	// name, positional actuals, optional trailing keyword shape already
	// folded into Args, optional block, and the call-site location.
	Call *CallInstruction

	// Narrow, when non-nil, is a type-test narrowing instruction (e.g. an
	// `is_a?` check that failed, requiring the tested variable's type to
	// be narrowed for the following instructions).
	Narrow *NarrowInstruction
}

// CallInstruction carries everything dispatch.Call needs.
type CallInstruction struct {
	Receiver Var
	Method   names.Ref
	Args     []Var
	Block    *Var
	Loc      diagnostics.Loc
}

// NarrowInstruction removes the parts of Subject's current type that are
// subtypes of Target, per spec.md §4.5's dropSubtypesOf/approximateSubtract.
type NarrowInstruction struct {
	Subject Var
	Target  types.Type
	// Subtract selects approximateSubtract over dropSubtypesOf; both are
	// sound, but approximateSubtract is the one spec.md §4.5 names for
	// narrowing a compound "what" type rather than a single class test.
	Subtract bool
}

// Block is a single basic block: a straight-line instruction sequence.
type Block []Instruction

// Result is what Run hands back: the final type of every variable in the
// environment (the initial entries plus every variable an instruction
// bound) and every posted error. It keeps only the Type per variable; no
// origin locations are recorded.
type Result struct {
	Types  map[Var]types.Type
	Errors []diagnostics.Error
}

// Run walks blocks in order, threading a single Var->Type environment
// through every instruction (spec.md §6: "per CFG basic block ... a
// sequence of instructions"). Block boundaries (branches, merges) are out
// of scope here — real flow-sensitive merging is the surrounding
// compiler's job; this just demonstrates the kernel's narrow interface
// end to end.
func Run(gs *config.GlobalState, opts config.Options, initial map[Var]types.Type, blocks []Block) Result {
	if opts.Metrics == nil {
		opts.Metrics = metrics.NoOp{}
	}
	env := make(map[Var]types.Type, len(initial))
	for v, t := range initial {
		env[v] = t
	}

	log := diagnostics.NewLog()
	st := gs.Symbols()

	for _, block := range blocks {
		for _, instr := range block {
			switch {
			case instr.Call != nil:
				runCall(st, opts, log, env, instr.Dest, instr.Call)
			case instr.Narrow != nil:
				runNarrow(st, env, instr.Narrow)
			}
		}
	}

	return Result{Types: env, Errors: log.Errors()}
}

func runCall(st *symbols.Table, opts config.Options, log *diagnostics.Log, env map[Var]types.Type, dest Var, call *CallInstruction) {
	receiver, ok := env[call.Receiver]
	if !ok {
		receiver = types.Untyped
	}

	args := make([]dispatch.TypeAndOrigins, len(call.Args))
	for i, v := range call.Args {
		t, ok := env[v]
		if !ok {
			t = types.Untyped
		}
		args[i] = dispatch.TypeAndOrigins{Type: t, Origins: []diagnostics.Loc{call.Loc}}
	}

	var block *dispatch.TypeAndOrigins
	if call.Block != nil {
		t, ok := env[*call.Block]
		if !ok {
			t = types.Untyped
		}
		block = &dispatch.TypeAndOrigins{Type: t, Origins: []diagnostics.Loc{call.Loc}}
	}

	result := dispatch.Call(st, opts.Metrics, log, receiver, call.Method, args, block, call.Loc)
	env[dest] = result
}

func runNarrow(st *symbols.Table, env map[Var]types.Type, n *NarrowInstruction) {
	current, ok := env[n.Subject]
	if !ok {
		current = types.Untyped
	}
	if n.Subtract {
		env[n.Subject] = lattice.ApproximateSubtract(st, current, n.Target)
	} else {
		env[n.Subject] = lattice.DropSubtypesOf(st, current, n.Target)
	}
}
