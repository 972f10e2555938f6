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

package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/engine"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	return dir
}

func TestLoadAndResolve(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"data/foo.mcdoc": `struct Bar { a: int }`,
	})

	eng, diags := engine.Load(dir, engine.Options{})
	require.Empty(t, diags)
	require.Empty(t, eng.Diagnostics())

	decl, ok := eng.Resolve(ast.NewPath("data", "foo", "Bar"))
	require.True(t, ok)
	require.Equal(t, "Bar", decl.Struct.Name)
}

func TestLoadReportsDuplicateDeclaration(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.mcdoc": "struct X {}\nstruct X {}\n",
	})

	_, diags := engine.Load(dir, engine.Options{})
	require.Len(t, diags, 1)
	require.Equal(t, "duplicate-declaration", string(diags[0].Code))
}

func TestInstantiateThroughEngine(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"m.mcdoc": `
struct Bar { a: int }
type Alias = Bar
`,
	})

	eng, diags := engine.Load(dir, engine.Options{})
	require.Empty(t, diags)

	typ, diags := eng.Instantiate(context.Background(), ast.NewPath("m", "Alias"), nil)
	require.Empty(t, diags)

	st, ok := typ.(*ast.StructType)
	require.True(t, ok)
	require.Len(t, st.Fields, 1)
}

func TestInstantiateUnknownPath(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"m.mcdoc": `struct X {}`,
	})

	eng, diags := engine.Load(dir, engine.Options{})
	require.Empty(t, diags)

	_, diags = eng.Instantiate(context.Background(), ast.NewPath("m", "Missing"), nil)
	require.Len(t, diags, 1)
	require.Equal(t, "unknown-path", string(diags[0].Code))
}

func TestAssignableAndSimplifyThroughEngine(t *testing.T) {
	eng, diags := engine.Load(t.TempDir(), engine.Options{})
	require.Empty(t, diags)

	require.True(t, eng.Assignable(&ast.BooleanType{}, &ast.AnyType{}))

	u := &ast.UnionType{Members: []ast.TypeExpr{&ast.BooleanType{}, &ast.UnionType{}}}
	simplified := eng.Simplify(u)

	_, ok := simplified.(*ast.BooleanType)
	require.True(t, ok)
}
