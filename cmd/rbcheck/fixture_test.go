package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gradualrb/rbkernel/internal/config"
	"github.com/gradualrb/rbkernel/internal/diagnostics"
	"github.com/gradualrb/rbkernel/internal/flow"
	"github.com/gradualrb/rbkernel/internal/types"
)

func TestLoadFixtureParsesYAML(t *testing.T) {
	path := writeTempFixture(t, `
classes:
  - name: Animal
    super: Object
    methods:
      - name: speak
        result: String
  - name: Dog
    super: Animal

calls:
  - file: app.rb
    line: 3
    receiver: Dog
    method: speak
`)

	fx, err := loadFixture(path)
	require.NoError(t, err)
	require.Len(t, fx.Classes, 2)
	require.Equal(t, "Animal", fx.Classes[0].Name)
	require.Equal(t, "Dog", fx.Classes[1].Name)
	require.Equal(t, "Animal", fx.Classes[1].Super)
	require.Len(t, fx.Calls, 1)
	require.Equal(t, "Dog", fx.Calls[0].Receiver)
}

func TestBuildSymbolsWiresInheritedMethod(t *testing.T) {
	fx := &Fixture{
		Classes: []ClassFixture{
			{Name: "Animal", Super: "Object", Methods: []MethodFixture{
				{Name: "speak", Result: "String"},
			}},
			{Name: "Dog", Super: "Animal"},
		},
	}

	b := config.NewBuilder()
	ct, err := buildSymbols(fx, b)
	require.NoError(t, err)

	dog := ct.byName["Dog"]
	animal := ct.byName["Animal"]
	require.True(t, b.Symbols().DerivesFrom(dog, animal))

	speak := b.Names().EnterUTF8("speak")
	require.True(t, b.Symbols().FindMemberTransitive(dog, speak).Exists())
}

func TestBuildSymbolsRejectsBuiltinCollision(t *testing.T) {
	fx := &Fixture{Classes: []ClassFixture{{Name: "String"}}}
	b := config.NewBuilder()
	_, err := buildSymbols(fx, b)
	require.Error(t, err)
}

func TestBuildSymbolsRejectsUnknownSuperclass(t *testing.T) {
	fx := &Fixture{Classes: []ClassFixture{{Name: "Dog", Super: "NoSuchClass"}}}
	b := config.NewBuilder()
	_, err := buildSymbols(fx, b)
	require.Error(t, err)
}

func TestBuildSymbolsWiresAliasTarget(t *testing.T) {
	fx := &Fixture{
		Classes: []ClassFixture{
			{Name: "Animal", Super: "Object", Methods: []MethodFixture{
				{Name: "speak", Result: "String"},
			}},
			{Name: "Pet", Alias: "Animal"},
		},
	}

	b := config.NewBuilder()
	ct, err := buildSymbols(fx, b)
	require.NoError(t, err)

	pet := ct.byName["Pet"]
	animal := ct.byName["Animal"]
	require.Equal(t, animal, b.Symbols().Dealias(pet))

	typ, err := ct.resolveType("Pet")
	require.NoError(t, err)
	_, isAlias := typ.(*types.AliasType)
	require.True(t, isAlias, "resolveType(%q) should produce an AliasType once AliasTarget is set", "Pet")
}

func TestBuildSymbolsRejectsUnknownAliasTarget(t *testing.T) {
	fx := &Fixture{Classes: []ClassFixture{{Name: "Pet", Alias: "NoSuchClass"}}}
	b := config.NewBuilder()
	_, err := buildSymbols(fx, b)
	require.Error(t, err)
}

func TestRunCheckEndToEndDispatchesThroughAlias(t *testing.T) {
	fx := &Fixture{
		Classes: []ClassFixture{
			{Name: "Animal", Super: "Object", Methods: []MethodFixture{
				{Name: "speak", Result: "String"},
			}},
			{Name: "Pet", Alias: "Animal"},
		},
		Calls: []CallFixture{
			{File: "app.rb", Line: 1, Receiver: "Pet", Method: "speak"},
		},
	}

	b := config.NewBuilder()
	ct, err := buildSymbols(fx, b)
	require.NoError(t, err)
	gs := b.Freeze()

	blocks, initial, sites, err := buildBlocks(fx, gs, ct)
	require.NoError(t, err)
	require.Len(t, sites, 1)

	result := flow.Run(gs, config.DefaultOptions(), initial, blocks)
	require.Empty(t, result.Errors, "dispatching #speak on an aliased receiver should dealias to Animal and succeed")
}

func TestResolveTypeHandlesNilableSuffix(t *testing.T) {
	config.NewBuilder() // wires types.SetSymbolDisplay for types.Display below
	ct := newClassTable()
	typ, err := ct.resolveType("String?")
	require.NoError(t, err)
	require.Equal(t, "String | NilClass", types.Display(typ))
}

func TestResolveTypeDefaultsEmptyNameToUntyped(t *testing.T) {
	ct := newClassTable()
	typ, err := ct.resolveType("")
	require.NoError(t, err)
	require.Equal(t, types.Untyped, typ)
}

func TestRunCheckEndToEndReportsUnknownMethod(t *testing.T) {
	fx := &Fixture{
		Classes: []ClassFixture{{Name: "Dog", Super: "Object"}},
		Calls: []CallFixture{
			{File: "app.rb", Line: 5, Receiver: "Dog", Method: "bark"},
		},
	}

	b := config.NewBuilder()
	ct, err := buildSymbols(fx, b)
	require.NoError(t, err)
	gs := b.Freeze()

	blocks, initial, sites, err := buildBlocks(fx, gs, ct)
	require.NoError(t, err)
	require.Len(t, sites, 1)

	result := flow.Run(gs, config.DefaultOptions(), initial, blocks)
	require.Len(t, result.Errors, 1)
	require.Equal(t, diagnostics.UnknownMethod, result.Errors[0].Kind)
}

func writeTempFixture(t *testing.T, contents string) string {
	t.Helper()
	path := t.TempDir() + "/fixture.yaml"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
