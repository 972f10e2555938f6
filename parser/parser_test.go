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

package parser_test

import (
	"strings"
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseType(t *testing.T, src string) ast.TypeExpr {
	t.Helper()

	f, err := parser.ParseFile("t.mcdoc", strings.NewReader("type _ = "+src))
	require.NoError(t, err)
	require.Len(t, f.Forms, 1)

	alias, ok := f.Forms[0].(*ast.TypeAlias)
	require.True(t, ok)

	return alias.Value
}

func TestParsePrimitives(t *testing.T) {
	_, ok := parseType(t, "any").(*ast.AnyType)
	assert.True(t, ok)

	_, ok = parseType(t, "boolean").(*ast.BooleanType)
	assert.True(t, ok)

	st, ok := parseType(t, "string").(*ast.StringType)
	require.True(t, ok)
	assert.Nil(t, st.LenRange)

	num, ok := parseType(t, "int@0..10").(*ast.NumericType)
	require.True(t, ok)
	assert.Equal(t, ast.KindInt, num.Kind)
	require.NotNil(t, num.ValueRange)
	assert.Equal(t, int64(0), *num.ValueRange.LoInt)
	assert.Equal(t, int64(10), *num.ValueRange.HiInt)
}

func TestParseUnsafe(t *testing.T) {
	_, ok := parseType(t, "unsafe").(*ast.UnsafeType)
	assert.True(t, ok)
}

func TestParseListVsPrimArray(t *testing.T) {
	list, ok := parseType(t, "string[]").(*ast.ListType)
	require.True(t, ok)
	_, ok = list.Elem.(*ast.StringType)
	assert.True(t, ok)

	arr, ok := parseType(t, "byte[]").(*ast.PrimArrayType)
	require.True(t, ok)
	assert.Equal(t, ast.KindByte, arr.ElemKind)
}

func TestParseTuple(t *testing.T) {
	tt, ok := parseType(t, "[int, string]").(*ast.TupleType)
	require.True(t, ok)
	assert.Len(t, tt.Elems, 2)

	one, ok := parseType(t, "[int,]").(*ast.TupleType)
	require.True(t, ok)
	assert.Len(t, one.Elems, 1)
}

func TestParseSingleElementBracketWithoutCommaIsList(t *testing.T) {
	lt, ok := parseType(t, "[byte]").(*ast.ListType)
	require.True(t, ok)

	num, ok := lt.Elem.(*ast.NumericType)
	require.True(t, ok)
	assert.Equal(t, ast.KindByte, num.Kind)
}

func TestParseUnion(t *testing.T) {
	u, ok := parseType(t, "int | string | boolean").(*ast.UnionType)
	require.True(t, ok)
	assert.Len(t, u.Members, 3)
}

func TestParseStruct(t *testing.T) {
	st, ok := parseType(t, `{
		a: int,
		b?: string,
		...Other,
	}`).(*ast.StructType)
	require.True(t, ok)
	require.Len(t, st.Fields, 3)

	a, ok := st.Fields[0].(*ast.NamedField)
	require.True(t, ok)
	assert.Equal(t, "a", a.Key.Text)
	assert.False(t, a.Optional)

	b, ok := st.Fields[1].(*ast.NamedField)
	require.True(t, ok)
	assert.True(t, b.Optional)

	_, ok = st.Fields[2].(*ast.SpreadField)
	assert.True(t, ok)
}

func TestParseReferenceWithGenerics(t *testing.T) {
	r, ok := parseType(t, "Foo<int, string>").(*ast.ReferenceType)
	require.True(t, ok)
	assert.Equal(t, "Foo", r.Path.Last())
	assert.Len(t, r.TypeArgs, 2)
}

func TestParseDispatcherWithStaticKeys(t *testing.T) {
	d, ok := parseType(t, `minecraft:loot_function[set_count]`).(*ast.DispatcherType)
	require.True(t, ok)
	assert.Equal(t, "minecraft", d.Registry.Namespace)
	require.Len(t, d.Indices, 1)

	si, ok := d.Indices[0].(*ast.StaticIndex)
	require.True(t, ok)
	assert.Equal(t, ast.StaticIdent, si.Key.Kind)
	assert.Equal(t, "set_count", si.Key.Text)
}

func TestParseDispatcherWithCommaSeparatedKeys(t *testing.T) {
	d, ok := parseType(t, `minecraft:r[uniform, %none]`).(*ast.DispatcherType)
	require.True(t, ok)
	require.Len(t, d.Indices, 2)

	first, ok := d.Indices[0].(*ast.StaticIndex)
	require.True(t, ok)
	assert.Equal(t, "uniform", first.Key.Text)

	second, ok := d.Indices[1].(*ast.StaticIndex)
	require.True(t, ok)
	assert.Equal(t, ast.StaticNone, second.Key.Kind)
}

func TestParseDynamicIndexViaNestedBracket(t *testing.T) {
	d, ok := parseType(t, `minecraft:r[[type]]`).(*ast.DispatcherType)
	require.True(t, ok)
	require.Len(t, d.Indices, 1)

	di, ok := d.Indices[0].(*ast.DynamicIndex)
	require.True(t, ok)
	require.Len(t, di.Accessor, 1)
	assert.Equal(t, ast.AccessorIdent, di.Accessor[0].Kind)
	assert.Equal(t, "type", di.Accessor[0].Text)
}

func TestParseDispatchStmtWithCommaSeparatedKeys(t *testing.T) {
	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(
		`dispatch minecraft:r[uniform, %none] to { min?: int, max?: int }`))
	require.NoError(t, err)
	require.Len(t, f.Forms, 1)

	d, ok := f.Forms[0].(*ast.DispatchStmt)
	require.True(t, ok)
	require.Len(t, d.Keys, 2)
	assert.Equal(t, "uniform", d.Keys[0].Text)
	assert.Equal(t, ast.StaticNone, d.Keys[1].Kind)
}

func TestParseEnumDef(t *testing.T) {
	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(`enum(string) Color {
		Red = "red",
		Green = "green",
	}`))
	require.NoError(t, err)
	require.Len(t, f.Forms, 1)

	def, ok := f.Forms[0].(*ast.EnumDef)
	require.True(t, ok)
	assert.Equal(t, "Color", def.Name)
	require.Len(t, def.Body.Variants, 2)
	assert.Equal(t, "red", *def.Body.Variants[0].StrValue)
}

func TestParseUseStmtWithAlias(t *testing.T) {
	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(`use ::foo::Bar as Baz`))
	require.NoError(t, err)
	require.Len(t, f.Forms, 1)

	u, ok := f.Forms[0].(*ast.UseStmt)
	require.True(t, ok)
	assert.Equal(t, "Baz", u.Alias)
	assert.True(t, u.Target.Absolute)
	assert.Equal(t, []string{"foo", "Bar"}, u.Target.Segments)
}

func TestParseReservedWordAsIdentifierFails(t *testing.T) {
	_, err := parser.ParseFile("t.mcdoc", strings.NewReader(`struct struct {}`))
	assert.Error(t, err)
}

func TestParseDocCommentAndAttribute(t *testing.T) {
	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(`
/// does a thing
#[since(19)]
struct Foo {}
`))
	require.NoError(t, err)
	require.Len(t, f.Forms, 1)

	def, ok := f.Forms[0].(*ast.StructDef)
	require.True(t, ok)
	assert.Equal(t, "does a thing", def.Doc())
	require.Len(t, def.Attrs(), 1)
	assert.Equal(t, "since", def.Attrs()[0].Name)
}
