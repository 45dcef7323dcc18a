// Package config implements the builder/freeze lifecycle spec.md §3
// Ownership and §5 Concurrency describe for GlobalState: a single-writer
// mutable phase during name/symbol resolution, then a frozen, read-only
// phase safe for unsynchronized concurrent reads by multiple
// internal/flow workers. Grounded on the teacher's options-struct-plus-
// global-state split in internal/config/config.go (a mutable Options
// built up by the CLI/API layer, then handed unchanged to the rest of the
// pipeline) generalized from "build options" to "the whole symbol
// universe."
package config

import (
	"github.com/gradualrb/rbkernel/internal/metrics"
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/symbols"
)

// Builder owns the mutable arenas during resolution. It is not safe for
// concurrent use; spec.md §5's "single writer holds exclusive access"
// applies to every method here.
type Builder struct {
	names   *names.Table
	symbols *symbols.Table
}

// NewBuilder returns a Builder with the builtin names and symbols already
// populated (spec.md §4.2), ready for a resolver to add user-defined
// classes, methods, and fields.
func NewBuilder() *Builder {
	nt := names.New()
	st := symbols.NewTable(nt)
	return &Builder{names: nt, symbols: st}
}

// Names and Symbols expose the underlying tables for mutation during the
// build phase. After Freeze, entering a symbol panics
// (symbols.Table.checkMutable); the name table is not sealed and still
// accepts new names.
func (b *Builder) Names() *names.Table     { return b.names }
func (b *Builder) Symbols() *symbols.Table { return b.symbols }

// Freeze seals the builder's tables and returns the read-only GlobalState
// the kernel's dispatch/lattice entry points take. Calling any Enter*
// method on the returned GlobalState's symbol table panics, which is the
// enforcement mechanism spec.md §5 allows ("implementations may enforce
// this with a runtime flag + assertions"). Only the symbol table is
// frozen: the name table's Enter* methods keep working after Freeze, and
// callers such as cmd/rbcheck intern call-site method names through it.
func (b *Builder) Freeze() *GlobalState {
	b.symbols.Freeze()
	return &GlobalState{names: b.names, symbols: b.symbols}
}

// GlobalState is the frozen, concurrency-safe view of the symbol universe
// that internal/lattice and internal/dispatch operate over. There is no
// lock: every read-only method here and on the underlying tables is safe
// to call from multiple goroutines at once, per spec.md §5's
// "append-only arena discipline and absence of interior mutation
// guarantee data-race freedom."
type GlobalState struct {
	names   *names.Table
	symbols *symbols.Table
}

func (g *GlobalState) Names() *names.Table     { return g.names }
func (g *GlobalState) Symbols() *symbols.Table { return g.symbols }

// Options bundles the handful of knobs the surrounding pipeline plumbs
// into dispatch — a metrics collector today; a future resolver might add
// e.g. a strictness level, but spec.md names no other tunables in scope.
type Options struct {
	Metrics metrics.Collector
}

// DefaultOptions returns an Options with a no-op metrics collector, safe
// to use when the caller doesn't care about counters.
func DefaultOptions() Options {
	return Options{Metrics: metrics.NoOp{}}
}
