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

package ast_test

import (
	"strings"
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/parser"
	"github.com/stretchr/testify/require"
)

// assertStablePrint checks that printing is idempotent under re-parsing:
// parse(print(f)) must print back to the exact same text. Byte-for-byte
// equality with the original source isn't required since Print normalizes
// whitespace, but the fixed point it reaches must be stable.
func assertStablePrint(t *testing.T, src string) string {
	t.Helper()

	f, err := parser.ParseFile("t.mcdoc", strings.NewReader(src))
	require.NoError(t, err)

	once := ast.Print(f)

	reparsed, err := parser.ParseFile("t.mcdoc", strings.NewReader(once))
	require.NoError(t, err, "reparsing printed output:\n%s", once)

	twice := ast.Print(reparsed)
	require.Equal(t, once, twice)

	return once
}

func TestPrintStructRoundTrip(t *testing.T) {
	assertStablePrint(t, `
struct Foo {
    a: int,
    b?: string,
    ...Bar,
}
`)
}

func TestPrintEnumRoundTrip(t *testing.T) {
	assertStablePrint(t, `
enum(string) Color {
    Red = "red",
    Green = "green",
}
`)
}

func TestPrintUnionAndTupleRoundTrip(t *testing.T) {
	out := assertStablePrint(t, `type Alias = [int, string] | boolean`)
	require.Contains(t, out, "[int, string]")
	require.Contains(t, out, "boolean")
}

func TestPrintDispatchAndInjectionRoundTrip(t *testing.T) {
	assertStablePrint(t, `
dispatch minecraft:loot_function[set_count] to { count: int }
inject struct minecraft:loot_function[set_count] {
    extra?: boolean,
}
`)
}

func TestPrintUseStmtRoundTrip(t *testing.T) {
	out := assertStablePrint(t, `use ::foo::Bar as Baz`)
	require.Contains(t, out, "use ::foo::Bar as Baz")
}

func TestPrintGenericRoundTrip(t *testing.T) {
	assertStablePrint(t, `struct Box<T> { value: T }`)
}

func TestPrintUnsafeRoundTrip(t *testing.T) {
	out := assertStablePrint(t, `type Alias = unsafe`)
	require.Contains(t, out, "unsafe")
}

func TestPrintDispatchCommaKeysRoundTrip(t *testing.T) {
	out := assertStablePrint(t, `dispatch minecraft:r[uniform, %none] to { min?: int }`)
	require.Contains(t, out, "[uniform][%none]")
}

func TestPrintDynamicIndexViaNestedBracketRoundTrip(t *testing.T) {
	out := assertStablePrint(t, `
struct Holder {
    v: minecraft:r[[type]],
}
`)
	require.Contains(t, out, "[[type]]")
}
