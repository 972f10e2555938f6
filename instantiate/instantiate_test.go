// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package instantiate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/instantiate"
	"github.com/mcdoc-lang/mcdoc/parser"
	"github.com/mcdoc-lang/mcdoc/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSingleModule(t *testing.T, src string) (*symtab.Table, *symtab.Module) {
	t.Helper()

	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(src))
	require.NoError(t, err)

	tbl := symtab.NewTable()
	tbl.AddFile(ast.NewPath("m"), f)
	require.Empty(t, tbl.Diags)

	mod, ok := tbl.Modules["::m"]
	require.True(t, ok)

	return tbl, mod
}

func TestInstantiateReferenceToStruct(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
struct Bar { a: int }
type Alias = Bar
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Alias"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	result, diags := instantiate.Instantiate(context.Background(), env, decl.Alias.Value)
	require.Empty(t, diags)

	st, ok := result.(*ast.StructType)
	require.True(t, ok)
	require.Len(t, st.Fields, 1)
}

func TestInstantiateGenericSubstitution(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
struct Box<T> { value: T }
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Box"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	env.Bindings["T"] = &ast.BooleanType{}

	result, diags := instantiate.Instantiate(context.Background(), env, decl.Struct.Body)
	require.Empty(t, diags)

	st := result.(*ast.StructType)
	nf := st.Fields[0].(*ast.NamedField)
	_, ok = nf.Type.(*ast.BooleanType)
	assert.True(t, ok)
}

func TestInstantiateUnknownPathDiagnosed(t *testing.T) {
	tbl, mod := loadSingleModule(t, `type Alias = Missing`)

	decl, _ := tbl.Lookup(ast.NewPath("m", "Alias"))

	env := instantiate.NewEnv(tbl, mod)
	_, diags := instantiate.Instantiate(context.Background(), env, decl.Alias.Value)
	require.Len(t, diags, 1)
	assert.Equal(t, "unknown-path", string(diags[0].Code))
}

func TestInstantiateDispatcherDynamicIndexYieldsFallbackUnion(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
dispatch minecraft:r[uniform] to { min: int }
dispatch minecraft:r[binomial] to { n: int }
dispatch minecraft:r[%none] to { min: int }
type Q = minecraft:r[[type]]
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Q"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	result, diags := instantiate.Instantiate(context.Background(), env, decl.Alias.Value)
	require.Empty(t, diags)

	ut, ok := result.(*ast.UnionType)
	require.True(t, ok)
	// %none is excluded from the fallback union; uniform and binomial remain.
	assert.Len(t, ut.Members, 2)
	require.Len(t, ut.Attrs(), 1)
	assert.Equal(t, "nonexhaustive", ut.Attrs()[0].Name)
}

func TestInstantiateDispatcherCommaKeysUnion(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
dispatch minecraft:r[uniform, %none] to { min: int }
type Q = minecraft:r[uniform, %none]
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Q"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	result, diags := instantiate.Instantiate(context.Background(), env, decl.Alias.Value)
	require.Empty(t, diags)

	ut, ok := result.(*ast.UnionType)
	require.True(t, ok)
	assert.Len(t, ut.Members, 2)
}

func TestInstantiateStructSpreadPropagatesAttributes(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
#[since(1)]
struct Base { a: int }

#[since(2)]
enum(int) Mode { On = 1 }

struct Combined {
    ...Base,
    ...Mode,
    b: string,
}
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Combined"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	result, diags := instantiate.Instantiate(context.Background(), env, decl.Struct.Body)
	require.Empty(t, diags)

	st, ok := result.(*ast.StructType)
	require.True(t, ok)
	// the spread struct's field is inlined, the non-struct spread target
	// contributes no fields, and both targets' own attributes propagate.
	require.Len(t, st.Fields, 2)
	require.Len(t, st.Attrs(), 2)
	assert.Equal(t, "since", st.Attrs()[0].Name)
	assert.Equal(t, "since", st.Attrs()[1].Name)
}

func TestInstantiateDispatcher(t *testing.T) {
	tbl, mod := loadSingleModule(t, `
dispatch minecraft:test[set_count] to { count: int }
type Q = minecraft:test[set_count]
`)

	decl, ok := tbl.Lookup(ast.NewPath("m", "Q"))
	require.True(t, ok)

	env := instantiate.NewEnv(tbl, mod)
	result, diags := instantiate.Instantiate(context.Background(), env, decl.Alias.Value)
	require.Empty(t, diags)

	st, ok := result.(*ast.StructType)
	require.True(t, ok)
	require.Len(t, st.Fields, 1)
}
