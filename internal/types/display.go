package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders t for diagnostics. ClassType renders as its symbol's
// full name; OrType/AndType use "|"/"&" with parenthesization driven by
// the other operand's kind (spec.md §4.3); proxies show
// "Underlying(value)", "[e1, e2]", or "{k => v}".
func Display(t Type) string {
	var b strings.Builder
	writeType(&b, t, 0)
	return b.String()
}

// precedence: higher binds tighter. And binds tighter than Or, matching
// the kind ordering in spec.md §4.3 (ClassType=1 < AndType=2 < OrType=3).
func precedence(t Type) int {
	switch t.(type) {
	case *OrType:
		return 1
	case *AndType:
		return 2
	default:
		return 3
	}
}

func writeType(b *strings.Builder, t Type, minPrec int) {
	switch v := t.(type) {
	case *ClassType:
		b.WriteString(symbolDisplayName(v.Sym))

	case *AppliedType:
		b.WriteString(symbolDisplayName(v.Class))
		b.WriteByte('[')
		for i, a := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, a, 0)
		}
		b.WriteByte(']')

	case *OrType:
		writeBinary(b, v.Left, v.Right, "|", precedence(v), minPrec)

	case *AndType:
		writeBinary(b, v.Left, v.Right, "&", precedence(v), minPrec)

	case *TupleType:
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeType(b, e, 0)
		}
		b.WriteByte(']')

	case *ShapeType:
		b.WriteByte('{')
		for i, k := range v.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(displayLiteral(k))
			b.WriteString(" => ")
			writeType(b, v.Values[i], 0)
		}
		b.WriteByte('}')

	case *LiteralType:
		fmt.Fprintf(b, "%s(%s)", symbolDisplayName(v.Underlying.Sym), displayLiteral(v.Raw))

	case *AliasType:
		b.WriteString(symbolDisplayName(v.Sym))

	default:
		b.WriteString("<invalid type>")
	}
}

func writeBinary(b *strings.Builder, left, right Type, op string, myPrec, minPrec int) {
	needParens := myPrec < minPrec
	if needParens {
		b.WriteByte('(')
	}
	writeType(b, left, myPrec)
	b.WriteString(" ")
	b.WriteString(op)
	b.WriteString(" ")
	writeType(b, right, myPrec+1)
	if needParens {
		b.WriteByte(')')
	}
}

func displayLiteral(l LiteralValue) string {
	switch l.Kind {
	case LiteralInt:
		return strconv.FormatInt(l.Int, 10)
	case LiteralFloat:
		return strconv.FormatFloat(l.Flt, 'g', -1, 64)
	case LiteralString:
		return strconv.Quote(l.Str)
	case LiteralSymbol:
		return ":" + symbolShortNameForLiteral(l)
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	default:
		return "?"
	}
}

// symbolShortNameForLiteral is intentionally minimal: names.Ref has no
// dependency here, so rendering falls back to a fixed placeholder unless
// internal/symbols wires a real renderer through SetLiteralSymbolDisplay.
var literalSymbolDisplay func(l LiteralValue) string

func symbolShortNameForLiteral(l LiteralValue) string {
	if literalSymbolDisplay != nil {
		return literalSymbolDisplay(l)
	}
	return "sym"
}

// SetLiteralSymbolDisplay lets internal/symbols register a names.Table
// lookup for rendering LiteralSymbol raw values.
func SetLiteralSymbolDisplay(f func(l LiteralValue) string) {
	literalSymbolDisplay = f
}
