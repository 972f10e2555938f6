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

package ast

import "github.com/mcdoc-lang/mcdoc/token"

// NumKind is one of mcdoc's six numeric primitive kinds.
type NumKind string

const (
	KindByte   NumKind = "byte"
	KindShort  NumKind = "short"
	KindInt    NumKind = "int"
	KindLong   NumKind = "long"
	KindFloat  NumKind = "float"
	KindDouble NumKind = "double"
)

// IsFloatKind reports whether kind is a floating point numeric kind.
func (k NumKind) IsFloatKind() bool {
	return k == KindFloat || k == KindDouble
}

// Base is embedded by every TypeExpr and every top-level form: it carries
// the source position plus the attribute list and doc comment that may
// precede any of them (the "prelim", see spec.md glossary).
type Base struct {
	token.Position
	AttrList []Attribute
	DocText  string
}

func (b *Base) Attrs() []Attribute      { return b.AttrList }
func (b *Base) SetAttrs(a []Attribute)  { b.AttrList = a }
func (b *Base) Doc() string             { return b.DocText }
func (b *Base) SetDoc(d string)         { b.DocText = d }

// TypeExpr is the recursive core of the mcdoc grammar (spec.md §3.1).
type TypeExpr interface {
	token.Node
	Attrs() []Attribute
	SetAttrs([]Attribute)
	Doc() string
	SetDoc(string)
	typeExprNode()
}

// AnyType is the "any" top type. It is assignable from everything; whether
// it is also assignable to everything (i.e. behaves as UnsafeType) is
// governed by the simplify.Options.AnyIsUnsafe toggle.
type AnyType struct{ Base }

func (*AnyType) typeExprNode() {}

// UnsafeType is the "unsafe" type: unconditionally both top and bottom, so
// it is always assignable to and from any other type regardless of config
// (spec.md §4.5.1/§9). Unlike AnyType, this is not configurable.
type UnsafeType struct{ Base }

func (*UnsafeType) typeExprNode() {}

// BooleanType is the "boolean" primitive.
type BooleanType struct{ Base }

func (*BooleanType) typeExprNode() {}

// StringType is "string", optionally constrained by a length range.
type StringType struct {
	Base
	LenRange *Range
}

func (*StringType) typeExprNode() {}

// LiteralBoolType is a literal "true" or "false" used as a type.
type LiteralBoolType struct {
	Base
	Value bool
}

func (*LiteralBoolType) typeExprNode() {}

// LiteralStringType is a literal quoted string used as a type.
type LiteralStringType struct {
	Base
	Value string
}

func (*LiteralStringType) typeExprNode() {}

// LiteralNumberType is a single typed number literal used as a type.
type LiteralNumberType struct {
	Base
	Value TypedNumber
}

func (*LiteralNumberType) typeExprNode() {}

// TypedNumber is a numeric literal tagged with its numeric kind, as
// produced by a TypedNum token or inferred from an untyped Int/Float.
type TypedNumber struct {
	Kind    NumKind
	IsFloat bool
	IntVal  int64
	FltVal  float64
}

// AsFloat64 returns the literal's value widened to float64, regardless of
// whether it was written as an integer or a float.
func (n TypedNumber) AsFloat64() float64 {
	if n.IsFloat {
		return n.FltVal
	}

	return float64(n.IntVal)
}

// NumericType is one of the six numeric primitives, optionally constrained
// by a value range.
type NumericType struct {
	Base
	Kind       NumKind
	ValueRange *Range
}

func (*NumericType) typeExprNode() {}

// PrimArrayType is a primitive array (byte[], int[], or long[] in NBT
// terms), with optional element-value and array-length ranges.
type PrimArrayType struct {
	Base
	ElemKind  NumKind
	ElemRange *Range
	LenRange  *Range
}

func (*PrimArrayType) typeExprNode() {}

// ListType is a homogeneous list, optionally constrained by a length range.
type ListType struct {
	Base
	Elem     TypeExpr
	LenRange *Range
}

func (*ListType) typeExprNode() {}

// TupleType is an ordered, fixed-arity sequence of types. A one-element
// tuple must be written with a trailing comma in source ("[int,]"); without
// it, "[int]" parses as a ListType instead — see parser.parseTupleType.
type TupleType struct {
	Base
	Elems []TypeExpr
}

func (*TupleType) typeExprNode() {}

// StructType is an ordered sequence of named fields and spreads.
type StructType struct {
	Base
	Fields []StructField
}

func (*StructType) typeExprNode() {}

// EnumBaseKind is either a NumKind or "string".
type EnumBaseKind string

const EnumBaseString EnumBaseKind = "string"

// EnumType is a closed set of named literal variants over a base kind.
type EnumType struct {
	Base
	BaseKind EnumBaseKind
	Variants []EnumVariant
}

func (*EnumType) typeExprNode() {}

// ReferenceType names another declaration, optionally with generic type
// arguments.
type ReferenceType struct {
	Base
	Path     Path
	TypeArgs []TypeExpr
}

func (*ReferenceType) typeExprNode() {}

// DispatcherType looks a type up in a global, resource-location-keyed
// dispatch registry.
type DispatcherType struct {
	Base
	Registry ResourceLocation
	Indices  []Index
}

func (*DispatcherType) typeExprNode() {}

// UnionType is an alternation of member types. An empty union is the
// bottom type.
type UnionType struct {
	Base
	Members []TypeExpr
}

func (*UnionType) typeExprNode() {}

// IndexedType applies one or more indices to a base type that is itself a
// reference, dispatcher, struct, or another indexed type.
type IndexedType struct {
	Base
	BaseExpr TypeExpr
	Indices  []Index
}

func (*IndexedType) typeExprNode() {}
