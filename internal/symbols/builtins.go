package symbols

import (
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/types"
)

// superclassOf records, by builtin index, which other builtin index is
// each builtin's direct superclass. A builtin with no entry has no
// superclass (root-like sentinels, modules, and Magic). This table is deliberately small — it
// exists to make the end-to-end dispatch scenarios in spec.md §8 work
// (e.g. Integer#to_s found via Object), not to model the real standard
// library's full hierarchy.
var superclassOf = map[int]int{
	types.IdxObject:        types.IdxBasicObject,
	types.IdxClass:         types.IdxModule,
	types.IdxTrueClass:     types.IdxObject,
	types.IdxFalseClass:    types.IdxObject,
	types.IdxNilClass:      types.IdxObject,
	types.IdxInteger:       types.IdxObject,
	types.IdxFloat:         types.IdxObject,
	types.IdxString:        types.IdxObject,
	types.IdxSymbol:        types.IdxObject,
	types.IdxArray:         types.IdxObject,
	types.IdxHash:          types.IdxObject,
	types.IdxSet:           types.IdxObject,
	types.IdxRegexp:        types.IdxObject,
	types.IdxRange:         types.IdxObject,
	types.IdxProc:          types.IdxObject,
	types.IdxException:     types.IdxObject,
	types.IdxStandardError: types.IdxException,
	types.IdxStruct:        types.IdxObject,
}

var moduleBuiltins = map[int]bool{
	types.IdxModule:        true,
	types.IdxT:             true,
	types.IdxTArray:        true,
	types.IdxTHash:         true,
	types.IdxTEnumerable:   true,
	types.IdxKernel:        true,
	types.IdxSingleton:     true,
	types.IdxStubModule:    true,
	types.IdxStubMixin:     true,
}

// singletonUniqueKind tags synthetic singleton-class names entered into
// the shared NameTable via names.Table.EnterUnique.
const singletonUniqueKind uint8 = 1

func init() {
	names.RegisterUniqueKind(singletonUniqueKind, "singleton class")
}

// NewTable builds a Table pre-populated with the builtin symbols spec.md
// §4.2 requires, each at the fixed index types.BuiltinClassRef expects.
// nt is the NameTable backing this symbol table's names (spec.md §3
// Ownership: both are owned by a single GlobalState).
func NewTable(nt *names.Table) *Table {
	t := newEmptyTable(nt)

	root := types.NoSymbol
	for i, name := range types.BuiltinClassNames {
		nameRef := nt.EnterUTF8(name)
		ref := t.EnterClass(root, nameRef)
		if ref != types.BuiltinClassRef(i) {
			panic("symbols: builtin class table index drifted out of sync with internal/types")
		}
		if moduleBuiltins[i] {
			t.ClassData(ref).Flags |= FlagModule
		}
	}

	for idx, superIdx := range superclassOf {
		ref := types.BuiltinClassRef(idx)
		t.ClassData(ref).SuperClass = types.BuiltinClassRef(superIdx)
	}

	wireObjectMethods(t, nt)

	types.SetSymbolDisplay(t.FullName)
	types.SetLiteralSymbolDisplay(func(l types.LiteralValue) string {
		if l.Kind != types.LiteralSymbol {
			return "?"
		}
		return nt.ShortName(l.Sym)
	})

	return t
}

// wireObjectMethods defines the handful of builtin methods the dispatch
// scenarios in spec.md §8 exercise (Object#to_s, found by
// FindMemberTransitive on every builtin class whose superclass chain
// reaches Object), plus Kernel#puts.
func wireObjectMethods(t *Table, nt *names.Table) {
	object := types.BuiltinClassRef(types.IdxObject)
	toS := nt.EnterUTF8("to_s")
	ref := t.EnterMethod(object, toS)
	t.MethodData(ref).ResultType = types.NewClassType(types.BuiltinClassRef(types.IdxString))

	kernel := types.BuiltinClassRef(types.IdxKernel)
	puts := nt.EnterUTF8("puts")
	putsRef := t.EnterMethod(kernel, puts)
	t.MethodData(putsRef).ResultType = types.NewClassType(types.BuiltinClassRef(types.IdxNilClass))
}
