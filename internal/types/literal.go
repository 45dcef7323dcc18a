package types

import "github.com/gradualrb/rbkernel/internal/names"

// LiteralKind tags which field of LiteralValue holds the raw value.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralSymbol
	LiteralBool
)

// LiteralValue is the "raw" half of a LiteralType / a ShapeType key. Only
// one field is meaningful, selected by Kind; this mirrors the teacher's
// preference for a flat struct with a discriminant over an interface when
// the variant set is small, fixed, and performance-sensitive (e.g.
// js_ast's E-node Data fields).
type LiteralValue struct {
	Kind LiteralKind
	Int  int64
	Flt  float64
	Str  string
	Sym  names.Ref
	Bool bool
}

func IntLiteral(v int64) LiteralValue    { return LiteralValue{Kind: LiteralInt, Int: v} }
func FloatLiteral(v float64) LiteralValue { return LiteralValue{Kind: LiteralFloat, Flt: v} }
func StringLiteral(v string) LiteralValue { return LiteralValue{Kind: LiteralString, Str: v} }
func SymbolLiteral(v names.Ref) LiteralValue {
	return LiteralValue{Kind: LiteralSymbol, Sym: v}
}
func BoolLiteral(v bool) LiteralValue { return LiteralValue{Kind: LiteralBool, Bool: v} }

// Equal compares two literal values by kind and raw value. Two literals of
// different kinds are never equal, even if e.g. one is int 0 and the
// other bool false.
func (l LiteralValue) Equal(other LiteralValue) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LiteralInt:
		return l.Int == other.Int
	case LiteralFloat:
		return l.Flt == other.Flt
	case LiteralString:
		return l.Str == other.Str
	case LiteralSymbol:
		return l.Sym == other.Sym
	case LiteralBool:
		return l.Bool == other.Bool
	default:
		return false
	}
}
