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

package simplify_test

import (
	"testing"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/simplify"
	"github.com/stretchr/testify/assert"
)

func litInt(kind ast.NumKind, v int64) *ast.LiteralNumberType {
	return &ast.LiteralNumberType{Value: ast.TypedNumber{Kind: kind, IntVal: v}}
}

func ranged(lo, hi int64) *ast.Range {
	l, h := lo, hi

	return &ast.Range{LoInt: &l, HiInt: &h}
}

func TestAssignableBottomAndAny(t *testing.T) {
	opts := simplify.Options{}
	bottom := &ast.UnionType{}

	assert.True(t, simplify.Assignable(opts, bottom, &ast.BooleanType{}))
	assert.True(t, simplify.Assignable(opts, &ast.BooleanType{}, &ast.AnyType{}))
	assert.False(t, simplify.Assignable(opts, &ast.AnyType{}, bottom))
}

func TestAssignableAnyIsUnsafe(t *testing.T) {
	opts := simplify.Options{AnyIsUnsafe: true}

	assert.False(t, simplify.Assignable(opts, &ast.BooleanType{}, &ast.AnyType{}))
	assert.True(t, simplify.Assignable(opts, &ast.AnyType{}, &ast.AnyType{}))
}

func TestAssignableUnsafeIsAlwaysTopAndBottom(t *testing.T) {
	opts := simplify.Options{AnyIsUnsafe: false}

	assert.True(t, simplify.Assignable(opts, &ast.UnsafeType{}, &ast.BooleanType{}))
	assert.True(t, simplify.Assignable(opts, &ast.BooleanType{}, &ast.UnsafeType{}))
	assert.True(t, simplify.Assignable(opts, &ast.UnsafeType{}, &ast.UnionType{}))
}

func TestAssignableNumericRanges(t *testing.T) {
	opts := simplify.Options{}

	narrow := &ast.NumericType{Kind: ast.KindInt, ValueRange: ranged(0, 10)}
	wide := &ast.NumericType{Kind: ast.KindInt, ValueRange: ranged(0, 100)}

	assert.True(t, simplify.Assignable(opts, narrow, wide))
	assert.False(t, simplify.Assignable(opts, wide, narrow))
}

func TestAssignableLiteralIntoRange(t *testing.T) {
	opts := simplify.Options{}

	lit := litInt(ast.KindInt, 5)
	rangedType := &ast.NumericType{Kind: ast.KindInt, ValueRange: ranged(0, 10)}

	assert.True(t, simplify.Assignable(opts, lit, rangedType))

	outOfRange := litInt(ast.KindInt, 50)
	assert.False(t, simplify.Assignable(opts, outOfRange, rangedType))
}

func TestAssignableStructWidthSubtyping(t *testing.T) {
	opts := simplify.Options{}

	wide := &ast.StructType{Fields: []ast.StructField{
		&ast.NamedField{Key: ast.FieldKey{Text: "a"}, Type: &ast.BooleanType{}},
		&ast.NamedField{Key: ast.FieldKey{Text: "b"}, Type: &ast.BooleanType{}},
	}}

	narrow := &ast.StructType{Fields: []ast.StructField{
		&ast.NamedField{Key: ast.FieldKey{Text: "a"}, Type: &ast.BooleanType{}},
	}}

	assert.True(t, simplify.Assignable(opts, wide, narrow))
	assert.False(t, simplify.Assignable(opts, narrow, wide))
}

func TestAssignableStructOptionalField(t *testing.T) {
	opts := simplify.Options{}

	from := &ast.StructType{}
	to := &ast.StructType{Fields: []ast.StructField{
		&ast.NamedField{Key: ast.FieldKey{Text: "a"}, Type: &ast.BooleanType{}, Optional: true},
	}}

	assert.True(t, simplify.Assignable(opts, from, to))
}

func TestSimplifyFlattenAndDedupe(t *testing.T) {
	opts := simplify.Options{}

	inner := &ast.UnionType{Members: []ast.TypeExpr{&ast.BooleanType{}, &ast.StringType{}}}
	outer := &ast.UnionType{Members: []ast.TypeExpr{inner, &ast.BooleanType{}}}

	simplified := simplify.Simplify(opts, outer)

	u, ok := simplified.(*ast.UnionType)
	if !ok {
		t.Fatalf("expected *ast.UnionType, got %T", simplified)
	}

	assert.Len(t, u.Members, 2)
}

func TestSimplifyDropsBottomAndUnwrapsSingleton(t *testing.T) {
	opts := simplify.Options{}

	u := &ast.UnionType{Members: []ast.TypeExpr{&ast.UnionType{}, &ast.BooleanType{}}}

	simplified := simplify.Simplify(opts, u)
	_, ok := simplified.(*ast.BooleanType)
	assert.True(t, ok)
}

func TestSimplifyIdempotent(t *testing.T) {
	opts := simplify.Options{}

	u := &ast.UnionType{Members: []ast.TypeExpr{&ast.BooleanType{}, &ast.StringType{}, &ast.UnionType{}}}

	once := simplify.Simplify(opts, u)
	twice := simplify.Simplify(opts, once)

	assert.Equal(t, once, twice)
}
