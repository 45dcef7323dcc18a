// Package symbols implements the kernel's SymbolTable: five disjoint
// append-only arenas (classes/modules, methods, fields/static-fields, type
// members, type arguments), each addressed by a tagged types.SymbolRef.
// This mirrors internal/js_ast's Symbol/Ref design (a flat arena of
// records referenced by a small handle, with SymbolFlags as an orthogonal
// bitset) generalized from the teacher's single per-file symbol table to
// the spec's five-arena, whole-program table, and grounded on
// original_source/core/SymbolRef.h for the kind split and the
// singleton-class linkage in ancestry.go.
package symbols

import (
	"sync"

	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/types"
)

// ClassFlags are orthogonal bits on a class/module symbol.
type ClassFlags uint8

const (
	FlagModule ClassFlags = 1 << iota
	FlagAbstractClass
	FlagFinalClass
	FlagSingletonClass
)

func (f ClassFlags) Has(flag ClassFlags) bool { return f&flag != 0 }

// ClassSymbol is a nominal entity: a class or module declaration.
type ClassSymbol struct {
	Owner       types.SymbolRef
	Name        names.Ref
	Flags       ClassFlags
	SuperClass  types.SymbolRef
	Mixins      []types.SymbolRef
	Members     map[names.Ref]types.SymbolRef
	TypeMembers []types.SymbolRef
	Locs        []diagnostics.Loc

	// AliasTarget is types.NoSymbol unless this symbol stands for a
	// `TypeAlias` — a late-bound constant reference that Dealias should
	// follow to find the real definition (spec.md §4.2 dealias).
	AliasTarget types.SymbolRef
}

// MethodFlags are orthogonal bits on a method symbol.
type MethodFlags uint8

const (
	FlagAbstractMethod MethodFlags = 1 << iota
	FlagFinalMethod
	FlagPrivate
	FlagProtected
	FlagOverloaded
)

func (f MethodFlags) Has(flag MethodFlags) bool { return f&flag != 0 }

// ArgFlags are the orthogonal parameter-flag classes spec.md §4.4.5 lists:
// positional-required (no flags set), positional-optional, rest,
// keyword-required, keyword-optional, keyword-rest, block. "Required" is
// the absence of Optional; keyword-ness and repeated-ness and block-ness
// are each their own bit so the combination (e.g. keyword + repeated =
// keyword-rest) falls out naturally instead of needing a separate enum
// value per combination.
type ArgFlags uint8

const (
	ArgKeyword ArgFlags = 1 << iota
	ArgOptional
	ArgRepeated
	ArgBlock
	ArgShadow
)

func (f ArgFlags) Has(flag ArgFlags) bool { return f&flag != 0 }
func (f ArgFlags) IsKeyword() bool        { return f.Has(ArgKeyword) }
func (f ArgFlags) IsRest() bool           { return f.Has(ArgRepeated) && !f.Has(ArgKeyword) }
func (f ArgFlags) IsKeywordRest() bool    { return f.Has(ArgRepeated) && f.Has(ArgKeyword) }
func (f ArgFlags) IsBlock() bool          { return f.Has(ArgBlock) }

// Argument is one formal parameter, owned by its enclosing method symbol.
type Argument struct {
	Name       names.Ref
	Type       types.Type
	Flags      ArgFlags
	DefaultLoc diagnostics.Loc
}

// MethodSymbol is a callable.
type MethodSymbol struct {
	Owner      types.SymbolRef
	Name       names.Ref
	Flags      MethodFlags
	Arguments  []Argument
	ResultType types.Type
	Locs       []diagnostics.Loc

	// arityMu guards arity: internal/dispatch's FastRejectArgumentCount can
	// be called from multiple goroutines reading the same frozen
	// GlobalState (spec.md §5), so the lazily-populated cache needs its
	// own lock rather than relying on the table's single-writer-until-
	// frozen discipline, the same fix internal/types.internClass got.
	arityMu sync.Mutex
	arity   *ArityInfo
}

// FieldSymbol covers both instance fields and static fields; spec.md §3
// groups them into one arena.
type FieldFlags uint8

const (
	FlagStaticField FieldFlags = 1 << iota
)

type FieldSymbol struct {
	Owner      types.SymbolRef
	Name       names.Ref
	Flags      FieldFlags
	ResultType types.Type
	Locs       []diagnostics.Loc
}

// TypeMemberSymbol is a generic type parameter declared on a class
// (e.g. the "Elem" in a generic container).
type TypeMemberSymbol struct {
	Owner types.SymbolRef
	Name  names.Ref
	Bound types.Type
	Locs  []diagnostics.Loc
}

// TypeArgSymbol is a type argument bound at an AppliedType call site.
type TypeArgSymbol struct {
	Owner types.SymbolRef
	Name  names.Ref
	Value types.Type
}

type ownerNameKey struct {
	owner types.SymbolRef
	name  names.Ref
}

// Table is the SymbolTable. Use NewTable, never the zero value, so the
// builtin symbols (spec.md §4.2) are pre-populated at their documented
// fixed indices.
type Table struct {
	names *names.Table

	classes     []*ClassSymbol
	methods     []*MethodSymbol
	fields      []*FieldSymbol
	typeMembers []*TypeMemberSymbol
	typeArgs    []*TypeArgSymbol

	classKey      map[ownerNameKey]types.SymbolRef
	methodKey     map[ownerNameKey]types.SymbolRef
	fieldKey      map[ownerNameKey]types.SymbolRef
	typeMemberKey map[ownerNameKey]types.SymbolRef
	typeArgKey    map[ownerNameKey]types.SymbolRef

	singletonOf map[types.SymbolRef]types.SymbolRef // attached class -> singleton class
	attachedOf  map[types.SymbolRef]types.SymbolRef  // singleton class -> attached class

	frozen bool
}

func newEmptyTable(nt *names.Table) *Table {
	return &Table{
		names:         nt,
		classKey:      make(map[ownerNameKey]types.SymbolRef),
		methodKey:     make(map[ownerNameKey]types.SymbolRef),
		fieldKey:      make(map[ownerNameKey]types.SymbolRef),
		typeMemberKey: make(map[ownerNameKey]types.SymbolRef),
		typeArgKey:    make(map[ownerNameKey]types.SymbolRef),
		singletonOf:   make(map[types.SymbolRef]types.SymbolRef),
		attachedOf:    make(map[types.SymbolRef]types.SymbolRef),
	}
}

// Freeze marks the table read-only. Past this point, internal/config
// requires that no goroutine call an Enter* method; spec.md §5 relies on
// that discipline, not on a lock, for data-race-free concurrent reads.
func (t *Table) Freeze() {
	t.frozen = true
}

func (t *Table) checkMutable() {
	if t.frozen {
		panic("symbols: table is frozen")
	}
}

func (t *Table) EnterClass(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	t.checkMutable()
	key := ownerNameKey{owner, name}
	if ref, ok := t.classKey[key]; ok {
		return ref
	}
	idx := uint32(len(t.classes))
	t.classes = append(t.classes, &ClassSymbol{
		Owner:      owner,
		Name:       name,
		SuperClass: types.NoSymbol,
		Members:    make(map[names.Ref]types.SymbolRef),
	})
	ref := types.MakeSymbolRef(types.KindClass, idx)
	t.classKey[key] = ref
	t.addMember(owner, name, ref)
	return ref
}

func (t *Table) EnterMethod(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	t.checkMutable()
	key := ownerNameKey{owner, name}
	if ref, ok := t.methodKey[key]; ok {
		return ref
	}
	idx := uint32(len(t.methods))
	t.methods = append(t.methods, &MethodSymbol{
		Owner:      owner,
		Name:       name,
		ResultType: types.Untyped,
	})
	ref := types.MakeSymbolRef(types.KindMethod, idx)
	t.methodKey[key] = ref
	t.addMember(owner, name, ref)
	return ref
}

func (t *Table) EnterField(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	t.checkMutable()
	key := ownerNameKey{owner, name}
	if ref, ok := t.fieldKey[key]; ok {
		return ref
	}
	idx := uint32(len(t.fields))
	t.fields = append(t.fields, &FieldSymbol{
		Owner:      owner,
		Name:       name,
		ResultType: types.Untyped,
	})
	ref := types.MakeSymbolRef(types.KindField, idx)
	t.fieldKey[key] = ref
	t.addMember(owner, name, ref)
	return ref
}

func (t *Table) EnterTypeMember(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	t.checkMutable()
	key := ownerNameKey{owner, name}
	if ref, ok := t.typeMemberKey[key]; ok {
		return ref
	}
	idx := uint32(len(t.typeMembers))
	t.typeMembers = append(t.typeMembers, &TypeMemberSymbol{Owner: owner, Name: name, Bound: types.Untyped})
	ref := types.MakeSymbolRef(types.KindTypeMember, idx)
	t.typeMemberKey[key] = ref
	if cls, ok := t.classOf(owner); ok {
		cls.TypeMembers = append(cls.TypeMembers, ref)
	}
	return ref
}

func (t *Table) EnterTypeArgument(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	t.checkMutable()
	key := ownerNameKey{owner, name}
	if ref, ok := t.typeArgKey[key]; ok {
		return ref
	}
	idx := uint32(len(t.typeArgs))
	t.typeArgs = append(t.typeArgs, &TypeArgSymbol{Owner: owner, Name: name, Value: types.Untyped})
	ref := types.MakeSymbolRef(types.KindTypeArg, idx)
	t.typeArgKey[key] = ref
	return ref
}

// addMember registers name -> ref in owner's Members map, if owner refers
// to a class symbol (fields and methods are always owned by a class;
// nested classes are too). No-op for types.NoSymbol (root-level entries).
func (t *Table) addMember(owner types.SymbolRef, name names.Ref, ref types.SymbolRef) {
	if cls, ok := t.classOf(owner); ok {
		cls.Members[name] = ref
	}
}

func (t *Table) classOf(ref types.SymbolRef) (*ClassSymbol, bool) {
	if !ref.Exists() || ref.Kind() != types.KindClass {
		return nil, false
	}
	idx := int(ref.Index())
	if idx < 0 || idx >= len(t.classes) {
		return nil, false
	}
	return t.classes[idx], true
}

// ClassData borrows the ClassSymbol ref addresses. Panics if ref is not a
// class handle, matching spec.md §3's "a handle of one kind must never be
// used to index another arena".
func (t *Table) ClassData(ref types.SymbolRef) *ClassSymbol {
	cls, ok := t.classOf(ref)
	if !ok {
		panic("symbols: ClassData called with a non-class SymbolRef")
	}
	return cls
}

func (t *Table) MethodData(ref types.SymbolRef) *MethodSymbol {
	if !ref.Exists() || ref.Kind() != types.KindMethod {
		panic("symbols: MethodData called with a non-method SymbolRef")
	}
	return t.methods[ref.Index()]
}

func (t *Table) FieldData(ref types.SymbolRef) *FieldSymbol {
	if !ref.Exists() || ref.Kind() != types.KindField {
		panic("symbols: FieldData called with a non-field SymbolRef")
	}
	return t.fields[ref.Index()]
}

func (t *Table) TypeMemberData(ref types.SymbolRef) *TypeMemberSymbol {
	if !ref.Exists() || ref.Kind() != types.KindTypeMember {
		panic("symbols: TypeMemberData called with a non-type-member SymbolRef")
	}
	return t.typeMembers[ref.Index()]
}

func (t *Table) TypeArgData(ref types.SymbolRef) *TypeArgSymbol {
	if !ref.Exists() || ref.Kind() != types.KindTypeArg {
		panic("symbols: TypeArgData called with a non-type-arg SymbolRef")
	}
	return t.typeArgs[ref.Index()]
}

// Names returns the NameTable this symbol table's names were interned
// into, so callers (internal/dispatch, cmd/rbcheck) don't need to thread
// a second handle around.
func (t *Table) Names() *names.Table {
	return t.names
}

// ShortName renders a symbol's simple name via the underlying NameTable.
func (t *Table) ShortName(ref types.SymbolRef) string {
	switch ref.Kind() {
	case types.KindClass:
		return t.names.ShortName(t.ClassData(ref).Name)
	case types.KindMethod:
		return t.names.ShortName(t.MethodData(ref).Name)
	case types.KindField:
		return t.names.ShortName(t.FieldData(ref).Name)
	case types.KindTypeMember:
		return t.names.ShortName(t.TypeMemberData(ref).Name)
	case types.KindTypeArg:
		return t.names.ShortName(t.TypeArgData(ref).Name)
	default:
		return "?"
	}
}

// FullName renders "Owner::name" for display, walking owners until the
// root or an owner without a printable name is hit.
func (t *Table) FullName(ref types.SymbolRef) string {
	if !ref.Exists() {
		return "<none>"
	}
	owner := t.ownerOf(ref)
	name := t.ShortName(ref)
	if !owner.Exists() || owner == types.BuiltinClassRef(types.IdxRoot) {
		return name
	}
	return t.FullName(owner) + "::" + name
}

func (t *Table) ownerOf(ref types.SymbolRef) types.SymbolRef {
	switch ref.Kind() {
	case types.KindClass:
		return t.ClassData(ref).Owner
	case types.KindMethod:
		return t.MethodData(ref).Owner
	case types.KindField:
		return t.FieldData(ref).Owner
	case types.KindTypeMember:
		return t.TypeMemberData(ref).Owner
	case types.KindTypeArg:
		return t.TypeArgData(ref).Owner
	default:
		return types.NoSymbol
	}
}
