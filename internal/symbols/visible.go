package symbols

import "github.com/gradualrb/rbkernel/internal/types"

// VisibleMethodNames collects the short names of every method reachable
// from owner via FindMemberTransitive's ancestry walk (self, superclass
// chain, then mixins), deduped. Used by internal/dispatch to build the
// vocabulary for an UnknownMethod "did you mean" suggestion.
func (t *Table) VisibleMethodNames(owner types.SymbolRef) []string {
	seen := make(map[string]bool)
	var out []string
	visited := make(map[types.SymbolRef]bool)
	t.collectMethodNames(owner, seen, &out, visited)
	return out
}

func (t *Table) collectMethodNames(owner types.SymbolRef, seen map[string]bool, out *[]string, visited map[types.SymbolRef]bool) {
	if visited[owner] {
		return
	}
	visited[owner] = true
	cls, ok := t.classOf(owner)
	if !ok {
		return
	}
	for _, member := range cls.Members {
		if member.Kind() != types.KindMethod {
			continue
		}
		name := t.ShortName(member)
		if !seen[name] {
			seen[name] = true
			*out = append(*out, name)
		}
	}
	if cls.SuperClass.Exists() {
		t.collectMethodNames(cls.SuperClass, seen, out, visited)
	}
	for _, mixin := range cls.Mixins {
		t.collectMethodNames(mixin, seen, out, visited)
	}
}
