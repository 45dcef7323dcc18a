// Package names implements the kernel's NameTable: an append-only interned
// string table partitioned into three arenas (UTF-8 source identifiers,
// compound constant names, and synthetically-generated unique names), each
// addressed by a small tagged handle. Names are never removed once entered;
// handles are stable for the lifetime of the table.
package names

import "fmt"

// Kind tags which arena a Ref points into.
type Kind uint8

const (
	UTF8 Kind = iota
	Constant
	Unique
)

const (
	kindBits  = 2
	indexBits = 32 - kindBits
	indexMask = 1<<indexBits - 1
)

// Ref is the handle every name is addressed by: a 2-bit kind tag packed
// with a 30-bit arena index, following the teacher's Ref/Index32
// bit-packing idiom (internal/js_ast.Ref, internal/ast.Index32) adapted
// from a two-field (source,inner) pair to a single packed word, since the
// kernel has only one NameTable per GlobalState rather than one per parsed
// file.
type Ref struct {
	packed uint32
}

// NoName is the zero value: it never refers to an entered name. It exists
// so Ref can be used as a map key or struct field without an extra
// "present" bool, mirroring Symbols::noClassOrModule() in spec.md §3.
var NoName = Ref{}

func makeRef(kind Kind, index uint32) Ref {
	if index > indexMask {
		panic("names: arena overflow")
	}
	// +1 so index 0 inside any arena is distinguishable from NoName.
	return Ref{packed: uint32(kind)<<indexBits | (index + 1)}
}

func (r Ref) Exists() bool {
	return r.packed != 0
}

func (r Ref) Kind() Kind {
	return Kind(r.packed >> indexBits)
}

func (r Ref) index() uint32 {
	return (r.packed & indexMask) - 1
}

// ErrOverflow describes an arena exceeding the handle's addressable range.
// The Enter* methods do not return it: they return a bare Ref, and
// makeRef panics with "names: arena overflow" instead. In practice the
// overflow is unreachable for any real program.
type ErrOverflow struct{ Arena string }

func (e ErrOverflow) Error() string {
	return fmt.Sprintf("names: %s arena overflow", e.Arena)
}

type uniqueKey struct {
	kind    uint8
	base    Ref
	counter uint32
}

type uniqueRecord struct {
	kind    uint8
	base    Ref
	counter uint32
}

// Table is the NameTable. The zero value is not ready to use; call New.
type Table struct {
	utf8       []string
	utf8Lookup map[string]Ref

	// Constant names wrap a UTF8 Ref; e.g. "Foo" (a constant) vs "foo" (a
	// plain identifier) share no storage but Constant's base field lets
	// Show reconstruct the printable text.
	constants       []Ref
	constantsLookup map[Ref]Ref

	uniques       []uniqueRecord
	uniquesLookup map[uniqueKey]Ref
}

func New() *Table {
	return &Table{
		utf8Lookup:      make(map[string]Ref),
		constantsLookup: make(map[Ref]Ref),
		uniquesLookup:   make(map[uniqueKey]Ref),
	}
}

// EnterUTF8 deduplicates s into the UTF-8 arena, returning the existing
// handle if s was interned before.
func (t *Table) EnterUTF8(s string) Ref {
	if ref, ok := t.utf8Lookup[s]; ok {
		return ref
	}
	idx := uint32(len(t.utf8))
	t.utf8 = append(t.utf8, s)
	ref := makeRef(UTF8, idx)
	t.utf8Lookup[s] = ref
	return ref
}

// EnterConstant wraps a UTF8 Ref as a constant name (used for "Foo" vs.
// "foo" in spec.md §4.1).
func (t *Table) EnterConstant(base Ref) Ref {
	if base.Kind() != UTF8 {
		panic("names: EnterConstant requires a UTF8 base")
	}
	if ref, ok := t.constantsLookup[base]; ok {
		return ref
	}
	idx := uint32(len(t.constants))
	t.constants = append(t.constants, base)
	ref := makeRef(Constant, idx)
	t.constantsLookup[base] = ref
	return ref
}

// EnterUnique generates a fresh synthetic name distinct from any source
// name. The tuple (kind, base, counter) is the deduplication key, per
// spec.md §4.1 — calling this twice with the same tuple returns the same
// Ref, matching the singleton-class naming use case in internal/symbols.
func (t *Table) EnterUnique(kind uint8, base Ref, counter uint32) Ref {
	key := uniqueKey{kind: kind, base: base, counter: counter}
	if ref, ok := t.uniquesLookup[key]; ok {
		return ref
	}
	idx := uint32(len(t.uniques))
	t.uniques = append(t.uniques, uniqueRecord{kind: kind, base: base, counter: counter})
	ref := makeRef(Unique, idx)
	t.uniquesLookup[key] = ref
	return ref
}

// Lookup is a non-inserting UTF-8 lookup.
func (t *Table) Lookup(s string) (Ref, bool) {
	ref, ok := t.utf8Lookup[s]
	return ref, ok
}

// ShortName is the human-readable suffix: the raw identifier for UTF8, the
// wrapped identifier for Constant, and a synthetic "<unique:N>" form for
// Unique names that have no source spelling.
func (t *Table) ShortName(ref Ref) string {
	switch ref.Kind() {
	case UTF8:
		return t.utf8[ref.index()]
	case Constant:
		return t.ShortName(t.constants[ref.index()])
	case Unique:
		rec := t.uniques[ref.index()]
		return fmt.Sprintf("<%s:%s#%d>", uniqueKindName(rec.kind), t.ShortName(rec.base), rec.counter)
	default:
		panic("names: invalid ref kind")
	}
}

// Show is the fully-qualified rendering. The plain NameTable has no notion
// of nesting (that lives in internal/symbols, where owners chain), so Show
// is currently identical to ShortName; it is kept as a distinct method so
// callers don't need to change call sites if qualification is added later.
func (t *Table) Show(ref Ref) string {
	return t.ShortName(ref)
}

var uniqueKindNames = map[uint8]string{}

// RegisterUniqueKind lets other packages (internal/symbols, for singleton
// classes) give their uint8 unique-name kinds a printable label without
// this package needing to know about them.
func RegisterUniqueKind(kind uint8, label string) {
	uniqueKindNames[kind] = label
}

func uniqueKindName(kind uint8) string {
	if label, ok := uniqueKindNames[kind]; ok {
		return label
	}
	return "unique"
}

// BuildSubstitution builds a map from every Ref in src to the equivalent
// Ref in dst, inserting names as needed. Spec.md §4.1 calls this out as a
// per-file, built-once-and-reused map; exposing it as a method on the
// destination table keeps that contract explicit at the call site.
func (dst *Table) BuildSubstitution(src *Table) map[Ref]Ref {
	subst := make(map[Ref]Ref, len(src.utf8)+len(src.constants)+len(src.uniques))
	for _, s := range src.utf8 {
		srcRef, _ := src.Lookup(s)
		subst[srcRef] = dst.EnterUTF8(s)
	}
	for i, base := range src.constants {
		srcRef := makeRef(Constant, uint32(i))
		subst[srcRef] = dst.EnterConstant(subst[base])
	}
	for i, rec := range src.uniques {
		srcRef := makeRef(Unique, uint32(i))
		subst[srcRef] = dst.EnterUnique(rec.kind, subst[rec.base], rec.counter)
	}
	return subst
}
