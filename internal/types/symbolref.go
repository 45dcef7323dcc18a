package types

// SymbolKind tags which of the SymbolTable's five arenas a SymbolRef
// addresses (spec.md §3: "a 3-bit kind and a 29-bit index").
type SymbolKind uint8

const (
	KindClass SymbolKind = iota
	KindMethod
	KindField
	KindTypeMember
	KindTypeArg
)

func (k SymbolKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindTypeMember:
		return "typeMember"
	case KindTypeArg:
		return "typeArg"
	default:
		return "invalid"
	}
}

const (
	symKindBits  = 3
	symIndexBits = 32 - symKindBits
	symIndexMask = 1<<symIndexBits - 1
)

// SymbolRef is defined here rather than in internal/symbols because Type
// (ClassType, AppliedType, AliasType) must be able to hold a reference to
// the symbol it names without internal/types importing internal/symbols
// (which itself needs Type for a method's ResultType and an Argument's
// Type). SymbolRef is pure data — a tagged handle — so it can live on
// whichever side of that mutual dependency doesn't create a cycle; the
// actual Symbol records and all arena bookkeeping live in
// internal/symbols.Table.
type SymbolRef struct {
	packed uint32
}

// NoSymbol is Symbols::noClassOrModule() from spec.md §3: the reserved
// zero handle. MakeSymbolRef stores index+1, so NoSymbol is the only ref
// whose packed word is 0 and Exists() is false only for it; a made ref at
// arena index 0 (e.g. the <root> builtin) still exists.
var NoSymbol = SymbolRef{}

func MakeSymbolRef(kind SymbolKind, index uint32) SymbolRef {
	if index > symIndexMask {
		panic("types: symbol arena overflow")
	}
	return SymbolRef{packed: uint32(kind)<<symIndexBits | (index + 1)}
}

func (r SymbolRef) Exists() bool {
	return r.packed != 0
}

func (r SymbolRef) Kind() SymbolKind {
	return SymbolKind(r.packed >> symIndexBits)
}

// Index is the position within the arena Kind() selects. internal/symbols
// uses this to index into its arenas; no other package should need it.
func (r SymbolRef) Index() uint32 {
	return (r.packed & symIndexMask) - 1
}
