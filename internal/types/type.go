// Package types is the algebraic-data-type representation of the gradual
// type lattice: ClassType, AppliedType, AndType, OrType, TupleType,
// ShapeType, LiteralType, AliasType, plus the three sentinels Top, Bottom,
// Untyped. It mirrors the teacher's tagged-union-over-an-interface style
// for AST nodes (internal/js_ast's E*/S* node families, each a distinct Go
// type satisfying a small marker interface, dispatched with a type switch
// instead of internal/jsast's own runtime type assertions chain) adapted
// from expression nodes to type-lattice variants.
package types

import (
	"sync"
)

// Type is the closed sum. Composite variants are represented as pointers
// so that equal structural values constructed through the same path share
// storage identity; spec.md §3 Ownership requires only that "equal types
// be treatable by pointer identity as a fast path in isSubType", not that
// every construction path dedupes — ClassType (which includes the three
// sentinels) is the one worth interning because it recurs constantly.
type Type interface {
	isType()
}

// ClassType is the nominal leaf: a direct reference to a class/module
// symbol, with no type arguments.
type ClassType struct {
	Sym SymbolRef
}

func (*ClassType) isType() {}

var (
	classInterningMu    sync.Mutex
	classInterningCache = map[SymbolRef]*ClassType{}
)

// internClass is the single allocation-per-symbol path used for sentinels
// and any other ClassType a caller wants fast-pathed. NewClassType calls
// this too, so every ClassType for a given symbol is the same pointer.
// spec.md §5 allows many type-checking threads to read a frozen
// GlobalState concurrently, and dispatch/lattice construct fresh
// ClassTypes on those threads (e.g. dealiased receivers, Nil/False
// probes), so the cache needs its own lock rather than relying on the
// single-writer discipline that protects the symbol/name arenas.
func internClass(sym SymbolRef) *ClassType {
	classInterningMu.Lock()
	defer classInterningMu.Unlock()
	if ct, ok := classInterningCache[sym]; ok {
		return ct
	}
	ct := &ClassType{Sym: sym}
	classInterningCache[sym] = ct
	return ct
}

// NewClassType returns the canonical *ClassType for sym.
func NewClassType(sym SymbolRef) *ClassType {
	return internClass(sym)
}

// AppliedType is a generic instantiation: a class symbol applied to type
// arguments, e.g. T::Array[Integer].
type AppliedType struct {
	Class SymbolRef
	Args  []Type
}

func (*AppliedType) isType() {}

func NewAppliedType(class SymbolRef, args []Type) *AppliedType {
	return &AppliedType{Class: class, Args: args}
}

// AndType is an intersection.
type AndType struct {
	Left, Right Type
}

func (*AndType) isType() {}

func NewAndType(left, right Type) *AndType {
	return &AndType{Left: left, Right: right}
}

// OrType is a union.
type OrType struct {
	Left, Right Type
}

func (*OrType) isType() {}

func NewOrType(left, right Type) *OrType {
	return &OrType{Left: left, Right: right}
}

// TupleType is a proxy for a fixed-length, element-wise-typed array
// literal like [A, B, C]. Underlying is always the plain Array ClassType,
// per spec.md §3 "Proxy types ... carry an underlying nominal
// class type".
type TupleType struct {
	Elems      []Type
	Underlying *ClassType
}

func (*TupleType) isType() {}

func NewTupleType(elems []Type) *TupleType {
	return &TupleType{Elems: elems, Underlying: NewClassType(ArrayClass)}
}

// ShapeType is a proxy for a typed hash literal like {k1: V1, k2: V2}.
// Keys and Values are parallel slices; Keys are always LiteralValue with
// Kind LiteralSymbol or LiteralString, matching how the source language
// spells hash-literal keys.
type ShapeType struct {
	Keys       []LiteralValue
	Values     []Type
	Underlying *ClassType
}

func (*ShapeType) isType() {}

func NewShapeType(keys []LiteralValue, values []Type) *ShapeType {
	if len(keys) != len(values) {
		panic("types: ShapeType keys/values length mismatch")
	}
	return &ShapeType{Keys: keys, Values: values, Underlying: NewClassType(HashClass)}
}

// Get returns the value type for a key literal, and whether it was found.
func (s *ShapeType) Get(key LiteralValue) (Type, bool) {
	for i, k := range s.Keys {
		if k.Equal(key) {
			return s.Values[i], true
		}
	}
	return nil, false
}

// LiteralType is a proxy for a single literal value (an integer, float,
// string, symbol, or bool constant), narrower than its Underlying nominal
// class.
type LiteralType struct {
	Underlying *ClassType
	Raw        LiteralValue
}

func (*LiteralType) isType() {}

func NewLiteralType(underlying *ClassType, raw LiteralValue) *LiteralType {
	return &LiteralType{Underlying: underlying, Raw: raw}
}

// AliasType is a late-bound constant reference: a name that resolves to
// another type once its target symbol is dealiased (internal/symbols.Dealias).
type AliasType struct {
	Sym SymbolRef
}

func (*AliasType) isType() {}

func NewAliasType(sym SymbolRef) *AliasType {
	return &AliasType{Sym: sym}
}

// IsSentinel reports whether t is one of Top, Bottom, Untyped.
func IsSentinel(t Type) bool {
	ct, ok := t.(*ClassType)
	return ok && (ct == Top || ct == Bottom || ct == Untyped)
}

// Underlying returns t.Underlying for a proxy type, or t itself (asserted
// to a *ClassType) for a ground ClassType. It panics for any other kind,
// since every non-proxy Type the kernel constructs is either a ClassType
// or must be compared via its own case in isSubType/lub/glb before this
// is reached; spec.md §9 calls out the source's redundant double-cast
// here and asks implementers to fold the two paths into one assertion.
func Underlying(t Type) *ClassType {
	switch v := t.(type) {
	case *TupleType:
		return v.Underlying
	case *ShapeType:
		return v.Underlying
	case *LiteralType:
		return v.Underlying
	case *ClassType:
		return v
	default:
		panic("types: Underlying called on a non-proxy, non-ClassType variant")
	}
}

// IsProxy reports whether t is a Tuple/Shape/Literal proxy type.
func IsProxy(t Type) bool {
	switch t.(type) {
	case *TupleType, *ShapeType, *LiteralType:
		return true
	default:
		return false
	}
}

// displayShortName is set once by internal/symbols at GlobalState
// construction so Display can render symbol names without internal/types
// importing internal/symbols. A nil func falls back to a placeholder
// rendering, which is enough for tests that never call SetSymbolDisplay.
var displayShortName func(SymbolRef) string

// SetSymbolDisplay lets internal/symbols register how to render a
// SymbolRef's name once the SymbolTable exists, breaking the otherwise
// circular "types needs symbols' names, symbols needs types' Type" edge.
func SetSymbolDisplay(shortName func(SymbolRef) string) {
	displayShortName = shortName
}

func symbolDisplayName(sym SymbolRef) string {
	if displayShortName != nil {
		return displayShortName(sym)
	}
	return "?"
}
