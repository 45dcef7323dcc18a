// Package diagnostics is the kernel's error sink. The lattice and dispatch
// packages never abort on a single bad call site: they post a structured
// Error here and keep going, returning a best-effort result type to the
// caller.
package diagnostics

// Loc is a source location as handed to the kernel by the surrounding
// compiler. The kernel treats it as opaque data to attach to an Error; it
// never reads or renders file contents itself (that belongs to the parser
// and CFG builder, both out of scope here).
type Loc struct {
	File   string
	Line   int // 1-based
	Column int // 0-based
}

// DetailLine is one line of an error's explanatory section, e.g. the
// "Expected Integer" or "Got String" half of a mismatch.
type DetailLine struct {
	Loc     Loc
	Message string
}

// Section groups detail lines under a heading, e.g. "Expected:" vs "Got:".
type Section struct {
	Heading string
	Lines   []DetailLine
}

// Error is the kernel's structured diagnostic record, matching the
// conceptual format in spec.md §6.
type Error struct {
	Kind     Kind
	Loc      Loc
	Header   string
	Sections []Section
}

// Sink receives posted errors. Log and Discard below are the
// implementations in this package; internal/flow (and through it
// cmd/rbcheck) posts into a Log.
type Sink interface {
	Post(Error)
}

// Log is the default in-process Sink: it accumulates errors in memory,
// mirroring the teacher's logger.Log{AddMsg} shape but without the
// terminal-rendering half of that package, which has no analogue here.
type Log struct {
	errors []Error
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Post(e Error) {
	l.errors = append(l.errors, e)
}

func (l *Log) Errors() []Error {
	return l.errors
}

func (l *Log) HasErrors() bool {
	return len(l.errors) > 0
}

// discard is a Sink that drops everything. Useful when a caller only wants
// the result Type from a lattice/dispatch call and doesn't care about
// diagnostics (e.g. internal property tests that only check lattice laws).
type discard struct{}

func (discard) Post(Error) {}

// Discard is a shared no-op Sink.
var Discard Sink = discard{}
