// rbcheck is a small cobra CLI that exercises the kernel end to end
// against a YAML fixture file, grounded on the teacher's demo/cmd/main.go
// (a cobra root command with subcommands wrapping a "runner" that does
// the real work) generalized from running transformation scenarios to
// running type-dispatch scenarios over a symbol table built from the
// fixture.
package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gradualrb/rbkernel/internal/config"
	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/flow"
	"github.com/gradualrb/rbkernel/internal/symbols"
	"github.com/gradualrb/rbkernel/internal/types"
)

// Fixture is the on-disk shape a rbcheck YAML file takes: a handful of
// user-defined classes (each with a superclass and a method list) plus a
// list of call sites to dispatch against the resulting symbol table.
type Fixture struct {
	Classes []ClassFixture `yaml:"classes"`
	Calls   []CallFixture  `yaml:"calls"`
}

type ClassFixture struct {
	Name  string `yaml:"name"`
	Super string `yaml:"super"`

	// Alias, when set, makes this class declaration a type alias for the
	// named class: the fixture's Name resolves to a types.AliasType
	// wrapping this class's own symbol, and that symbol's AliasTarget is
	// the named class (spec.md §4.2's dealias). Super and Methods are
	// ignored for an alias entry — an alias has no hierarchy or members of
	// its own; every lookup goes through its target once dealiased.
	Alias string `yaml:"alias"`

	Methods []MethodFixture `yaml:"methods"`
}

type MethodFixture struct {
	Name   string       `yaml:"name"`
	Result string       `yaml:"result"`
	Args   []ArgFixture `yaml:"args"`
}

// ArgFixture's flag fields mirror symbols.ArgFlags' bit split directly
// (keyword/optional/rest/block, independently settable) rather than
// collapsing them into a single "kind" enum, so a fixture can express
// e.g. a keyword-rest argument the same way the kernel's own Argument
// type does: ArgKeyword and ArgRepeated both set.
type ArgFixture struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Keyword  bool   `yaml:"keyword"`
	Optional bool   `yaml:"optional"`
	Rest     bool   `yaml:"rest"`
	Block    bool   `yaml:"block"`
}

type CallFixture struct {
	File     string   `yaml:"file"`
	Line     int      `yaml:"line"`
	Receiver string   `yaml:"receiver"`
	Method   string   `yaml:"method"`
	Args     []string `yaml:"args"`
}

func loadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rbcheck: reading %s: %w", path, err)
	}
	var fx Fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return nil, fmt.Errorf("rbcheck: parsing %s: %w", path, err)
	}
	return &fx, nil
}

// classTable resolves a fixture type name ("String", "MyClass", a
// trailing "?" for T.nilable-style union-with-nil, or "" / "Untyped" for
// the untyped sentinel) to a kernel types.Type. Built once per fixture
// from the builtin class names plus every fixture-declared class, so
// forward references between fixture classes (B declared before A, B's
// superclass is A) resolve regardless of declaration order. st is nil
// until buildSymbols wires it in; resolveType only needs st to tell an
// alias class apart from an ordinary one, so a nil st (as in tests that
// only exercise builtin lookups) degrades to "never an alias" rather
// than panicking.
type classTable struct {
	byName map[string]types.SymbolRef
	st     *symbols.Table
}

func newClassTable() classTable {
	byName := make(map[string]types.SymbolRef, len(types.BuiltinClassNames))
	for idx, name := range types.BuiltinClassNames {
		byName[name] = types.BuiltinClassRef(idx)
	}
	return classTable{byName: byName}
}

func (ct classTable) resolveType(name string) (types.Type, error) {
	if name == "" || name == "Untyped" {
		return types.Untyped, nil
	}
	nilable := strings.HasSuffix(name, "?")
	base := strings.TrimSuffix(name, "?")
	ref, ok := ct.byName[base]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", base)
	}
	var t types.Type
	if ct.st != nil && ct.st.ClassData(ref).AliasTarget.Exists() {
		t = types.NewAliasType(ref)
	} else {
		t = types.NewClassType(ref)
	}
	if nilable {
		t = types.NewOrType(t, types.NewClassType(types.BuiltinClassRef(types.IdxNilClass)))
	}
	return t, nil
}

func argFlags(a ArgFixture) symbols.ArgFlags {
	var f symbols.ArgFlags
	if a.Keyword {
		f |= symbols.ArgKeyword
	}
	if a.Optional {
		f |= symbols.ArgOptional
	}
	if a.Rest {
		f |= symbols.ArgRepeated
	}
	if a.Block {
		f |= symbols.ArgBlock
	}
	return f
}

// buildSymbols enters every fixture class, wires up superclasses, then
// enters every method and its arguments, in three passes so a class's
// superclass or a method's argument/result type may name any other
// fixture class regardless of declaration order.
func buildSymbols(fx *Fixture, b *config.Builder) (classTable, error) {
	ct := newClassTable()
	ct.st = b.Symbols()

	for _, cf := range fx.Classes {
		if _, exists := ct.byName[cf.Name]; exists {
			return classTable{}, fmt.Errorf("rbcheck: class %q collides with a builtin class", cf.Name)
		}
		ref := b.Symbols().EnterClass(types.NoSymbol, b.Names().EnterUTF8(cf.Name))
		ct.byName[cf.Name] = ref
	}

	for _, cf := range fx.Classes {
		if cf.Alias != "" {
			targetRef, ok := ct.byName[cf.Alias]
			if !ok {
				return classTable{}, fmt.Errorf("rbcheck: class %q: unknown alias target %q", cf.Name, cf.Alias)
			}
			b.Symbols().ClassData(ct.byName[cf.Name]).AliasTarget = targetRef
			continue
		}
		super := cf.Super
		if super == "" {
			super = "Object"
		}
		superRef, ok := ct.byName[super]
		if !ok {
			return classTable{}, fmt.Errorf("rbcheck: class %q: unknown superclass %q", cf.Name, super)
		}
		b.Symbols().ClassData(ct.byName[cf.Name]).SuperClass = superRef
	}

	for _, cf := range fx.Classes {
		if cf.Alias != "" {
			continue
		}
		owner := ct.byName[cf.Name]
		for _, mf := range cf.Methods {
			methodRef := b.Symbols().EnterMethod(owner, b.Names().EnterUTF8(mf.Name))
			resultType, err := ct.resolveType(mf.Result)
			if err != nil {
				return classTable{}, fmt.Errorf("rbcheck: %s#%s: result type: %w", cf.Name, mf.Name, err)
			}
			method := b.Symbols().MethodData(methodRef)
			method.ResultType = resultType
			method.Arguments = make([]symbols.Argument, len(mf.Args))
			for i, af := range mf.Args {
				argType, err := ct.resolveType(af.Type)
				if err != nil {
					return classTable{}, fmt.Errorf("rbcheck: %s#%s: arg %q: %w", cf.Name, mf.Name, af.Name, err)
				}
				method.Arguments[i] = symbols.Argument{
					Name:  b.Names().EnterUTF8(af.Name),
					Type:  argType,
					Flags: argFlags(af),
				}
			}
		}
	}

	return ct, nil
}

// callSite is one resolved call, ready to render: the label callers
// print it under, and the flow.Var its inferred result lands on.
type callSite struct {
	label string
	dest  flow.Var
}

// buildBlocks turns every fixture call into one single-instruction
// flow.Block plus an initial environment entry per operand, so
// flow.Run's per-instruction dispatch does the real work; rbcheck itself
// never calls internal/dispatch directly.
func buildBlocks(fx *Fixture, gs *config.GlobalState, ct classTable) ([]flow.Block, map[flow.Var]types.Type, []callSite, error) {
	initial := make(map[flow.Var]types.Type)
	var blocks []flow.Block
	var sites []callSite
	next := flow.Var(0)
	nt := gs.Names()

	for _, call := range fx.Calls {
		recvType, err := ct.resolveType(call.Receiver)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("rbcheck: call %s#%s: receiver: %w", call.Receiver, call.Method, err)
		}
		recvVar := next
		next++
		initial[recvVar] = recvType

		argVars := make([]flow.Var, len(call.Args))
		for i, argType := range call.Args {
			t, err := ct.resolveType(argType)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("rbcheck: call %s#%s: arg %d: %w", call.Receiver, call.Method, i, err)
			}
			v := next
			next++
			initial[v] = t
			argVars[i] = v
		}

		destVar := next
		next++
		blocks = append(blocks, flow.Block{
			{
				Dest: destVar,
				Call: &flow.CallInstruction{
					Receiver: recvVar,
					Method:   nt.EnterUTF8(call.Method),
					Args:     argVars,
					Loc:      diagnostics.Loc{File: call.File, Line: call.Line},
				},
			},
		})
		sites = append(sites, callSite{
			label: fmt.Sprintf("%s#%s", call.Receiver, call.Method),
			dest:  destVar,
		})
	}

	return blocks, initial, sites, nil
}
