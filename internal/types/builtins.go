package types

// BuiltinClassNames is the fixed, documented order spec.md §4.2 requires
// internal/symbols.NewTable to pre-populate its class arena with. Each
// name's position here is its permanent arena index, exposed below as a
// named constant so call sites can refer to builtins without a lookup —
// "expose them as constants" per spec.md §9's design notes.
var BuiltinClassNames = []string{
	"<root>",
	"Object",
	"BasicObject",
	"Class",
	"Module",
	"TrueClass",
	"FalseClass",
	"NilClass",
	"Integer",
	"Float",
	"String",
	"Symbol",
	"Array",
	"Hash",
	"Set",
	"Regexp",
	"Range",
	"Proc",
	"Exception",
	"StandardError",
	"T",
	"T::Array",
	"T::Hash",
	"T::Enumerable",
	"Kernel",
	"Singleton",
	"Struct",
	"<top>",
	"<bottom>",
	"<untyped>",
	"StubModule",
	"StubMixin",
	"StubSuperClass",
	"Magic",
}

// Indices into BuiltinClassNames / the class arena. Kept as untyped int
// constants (not SymbolKind) since they are arena positions, not kind tags.
const (
	IdxRoot = iota
	IdxObject
	IdxBasicObject
	IdxClass
	IdxModule
	IdxTrueClass
	IdxFalseClass
	IdxNilClass
	IdxInteger
	IdxFloat
	IdxString
	IdxSymbol
	IdxArray
	IdxHash
	IdxSet
	IdxRegexp
	IdxRange
	IdxProc
	IdxException
	IdxStandardError
	IdxT
	IdxTArray
	IdxTHash
	IdxTEnumerable
	IdxKernel
	IdxSingleton
	IdxStruct
	IdxTop
	IdxBottom
	IdxUntyped
	IdxStubModule
	IdxStubMixin
	IdxStubSuperClass
	IdxMagic
	NumBuiltinClasses
)

func init() {
	if len(BuiltinClassNames) != NumBuiltinClasses {
		panic("types: BuiltinClassNames out of sync with builtin index constants")
	}
}

// BuiltinClassRef returns the fixed SymbolRef for the builtin at position
// idx in BuiltinClassNames.
func BuiltinClassRef(idx int) SymbolRef {
	return MakeSymbolRef(KindClass, uint32(idx))
}

// Sentinels, interned once per process (spec.md §3: "structurally interned
// — a single allocation per program is sufficient").
var (
	Top     = internClass(BuiltinClassRef(IdxTop))
	Bottom  = internClass(BuiltinClassRef(IdxBottom))
	Untyped = internClass(BuiltinClassRef(IdxUntyped))

	ObjectClass = BuiltinClassRef(IdxObject)
	ArrayClass  = BuiltinClassRef(IdxArray)
	HashClass   = BuiltinClassRef(IdxHash)
)
