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

package symtab_test

import (
	"strings"
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/parser"
	"github.com/mcdoc-lang/mcdoc/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()

	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(src))
	require.NoError(t, err)

	return f
}

func TestDuplicateDeclarationDiagnosed(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.AddFile(ast.NewPath("foo"), mustParse(t, `
struct Bar {}
struct Bar {}
`))

	require.Len(t, tbl.Diags, 1)
	assert.Equal(t, "duplicate-declaration", string(tbl.Diags[0].Code))
}

func TestDuplicateDispatchKeyDiagnosed(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.AddFile(ast.NewPath("foo"), mustParse(t, `
dispatch minecraft:loot_function[set_count] to {}
dispatch minecraft:loot_function[set_count] to {}
`))

	require.Len(t, tbl.Diags, 1)
	assert.Equal(t, "duplicate-dispatch-key", string(tbl.Diags[0].Code))
}

func TestResolveAbsoluteAndSuper(t *testing.T) {
	tbl := symtab.NewTable()
	mod := &symtab.Module{Path: ast.NewPath("a", "b"), Decls: map[string]*symtab.Decl{}, Uses: map[string]ast.Path{}}

	abs, err := tbl.Resolve(mod, ast.Path{Absolute: true, Segments: []string{"x", "y"}}, nil)
	require.Nil(t, err)
	assert.Equal(t, "::x::y", abs.String())

	sup, err := tbl.Resolve(mod, ast.Path{SuperCount: 1, Segments: []string{"z"}}, nil)
	require.Nil(t, err)
	assert.Equal(t, "::a::z", sup.String())
}

func TestResolveSuperPastRoot(t *testing.T) {
	tbl := symtab.NewTable()
	mod := &symtab.Module{Path: ast.NewPath("a"), Decls: map[string]*symtab.Decl{}, Uses: map[string]ast.Path{}}

	_, err := tbl.Resolve(mod, ast.Path{SuperCount: 2, Segments: []string{"z"}}, nil)
	require.NotNil(t, err)
	assert.Equal(t, "super-past-root", string(err.Code))
}

func TestLookupAfterAddFile(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.AddFile(ast.NewPath("foo"), mustParse(t, `struct Bar { a: int }`))

	decl, ok := tbl.Lookup(ast.NewPath("foo", "Bar"))
	require.True(t, ok)
	assert.Equal(t, symtab.DeclStruct, decl.Kind)
	assert.Equal(t, "Bar", decl.Struct.Name)
}

func TestUseAliasResolution(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.AddFile(ast.NewPath("other"), mustParse(t, `struct Target {}`))
	tbl.AddFile(ast.NewPath("foo"), mustParse(t, `
use ::other::Target as T
type Alias = T
`))

	foo := mustGetModule(t, tbl, "foo")
	canonical, err := tbl.Resolve(foo, ast.Path{Segments: []string{"T"}}, nil)
	require.Nil(t, err)
	assert.Equal(t, "::other::Target", canonical.String())
}

func mustGetModule(t *testing.T, tbl *symtab.Table, path string) *symtab.Module {
	t.Helper()

	m, ok := tbl.Modules["::"+path]
	require.True(t, ok)

	return m
}
