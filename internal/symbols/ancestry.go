package symbols

import (
	"github.com/gradualrb/rbkernel/internal/names"
	"github.com/gradualrb/rbkernel/internal/types"
)

// DerivesFrom walks class's superclass chain and mixins transitively,
// returning true if ancestor appears. It is strict ancestry: a class
// never derives from itself (spec.md §4.2, "derivesFrom on a class's own
// symbol returns false"). The walk is bounded by the number of class
// symbols in the table so a malformed (cyclic) table still terminates,
// per spec.md §4.2's invariant.
func (t *Table) DerivesFrom(class, ancestor types.SymbolRef) bool {
	if !class.Exists() || !ancestor.Exists() {
		return false
	}
	visited := make(map[types.SymbolRef]bool, len(t.classes))
	var walk []types.SymbolRef
	walk = append(walk, t.directAncestors(class)...)

	limit := len(t.classes) + 1
	for len(walk) > 0 && limit > 0 {
		limit--
		next := walk[0]
		walk = walk[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		if next == ancestor {
			return true
		}
		walk = append(walk, t.directAncestors(next)...)
	}
	return false
}

func (t *Table) directAncestors(class types.SymbolRef) []types.SymbolRef {
	cls, ok := t.classOf(class)
	if !ok {
		return nil
	}
	out := make([]types.SymbolRef, 0, 1+len(cls.Mixins))
	if cls.SuperClass.Exists() {
		out = append(out, cls.SuperClass)
	}
	out = append(out, cls.Mixins...)
	return out
}

// FindMember looks up name directly on owner (no ancestor search).
// Returns types.NoSymbol rather than panicking if absent, per spec.md
// §4.2.
func (t *Table) FindMember(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	cls, ok := t.classOf(owner)
	if !ok {
		return types.NoSymbol
	}
	if ref, ok := cls.Members[name]; ok {
		return ref
	}
	return types.NoSymbol
}

// FindMemberTransitive looks up name on owner, then its ancestors
// (superclass chain, then mixins), in declaration order, stopping at the
// first match.
func (t *Table) FindMemberTransitive(owner types.SymbolRef, name names.Ref) types.SymbolRef {
	if ref := t.FindMember(owner, name); ref.Exists() {
		return ref
	}
	cls, ok := t.classOf(owner)
	if !ok {
		return types.NoSymbol
	}
	if cls.SuperClass.Exists() {
		if ref := t.FindMemberTransitive(cls.SuperClass, name); ref.Exists() {
			return ref
		}
	}
	for _, mixin := range cls.Mixins {
		if ref := t.FindMemberTransitive(mixin, name); ref.Exists() {
			return ref
		}
	}
	return types.NoSymbol
}

// LookupSingletonClass returns the unique singleton class attached to
// classSym, creating it on demand and linking it via two synthetic member
// names, "<singleton class>" (on the attached class) and "<attached
// class>" (on the singleton class), per spec.md §4.2. Calling this again
// with a singleton class itself (to get the singleton-of-a-singleton) is
// not special-cased: the same construction applied to the singleton
// produces a class whose attached class is that singleton, which is
// exactly the idempotence spec.md §8 tests for.
func (t *Table) LookupSingletonClass(classSym types.SymbolRef) types.SymbolRef {
	if existing, ok := t.singletonOf[classSym]; ok {
		return existing
	}
	owner := t.ownerOf(classSym)
	base := t.classNameRef(classSym)
	uniqueName := t.names.EnterUnique(singletonUniqueKind, base, 0)

	singleton := t.EnterClass(owner, uniqueName)
	t.ClassData(singleton).Flags |= FlagSingletonClass
	t.ClassData(singleton).SuperClass = t.ClassData(classSym).SuperClass

	t.singletonOf[classSym] = singleton
	t.attachedOf[singleton] = classSym

	singletonMemberName := t.names.EnterUTF8("<singleton class>")
	attachedMemberName := t.names.EnterUTF8("<attached class>")
	t.ClassData(classSym).Members[singletonMemberName] = singleton
	t.ClassData(singleton).Members[attachedMemberName] = classSym

	return singleton
}

// AttachedClass returns the class a singleton class was created for, or
// types.NoSymbol if singleton is not a singleton class.
func (t *Table) AttachedClass(singleton types.SymbolRef) types.SymbolRef {
	if ref, ok := t.attachedOf[singleton]; ok {
		return ref
	}
	return types.NoSymbol
}

func (t *Table) classNameRef(ref types.SymbolRef) names.Ref {
	if cls, ok := t.classOf(ref); ok {
		return cls.Name
	}
	return names.NoName
}

// Dealias follows ClassSymbol.AliasTarget until it reaches a symbol that
// isn't itself an alias, detecting cycles by bounding the walk to the
// number of class symbols. A cyclic alias chain is a malformed program;
// Dealias returns the first symbol it reaches a second time (for A -> B ->
// A, that is A) rather than looping forever.
func (t *Table) Dealias(ref types.SymbolRef) types.SymbolRef {
	visited := make(map[types.SymbolRef]bool)
	current := ref
	for {
		cls, ok := t.classOf(current)
		if !ok || !cls.AliasTarget.Exists() {
			return current
		}
		if visited[current] {
			return current
		}
		visited[current] = true
		current = cls.AliasTarget
	}
}
