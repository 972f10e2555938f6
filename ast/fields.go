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

// FieldKey is one of the three forms a struct field key may take: a bare
// identifier, a quoted string, or a computed "[TypeExpr]" key. Identifier
// and string keys compare equal by their textual content; a computed key
// never compares equal to a static key (spec.md §4.4.1).
type FieldKey struct {
	Text       string
	IsComputed bool
	Computed   TypeExpr
}

// StructField is either a Named field or a Spread.
type StructField interface {
	token.Node
	structFieldNode()
}

// NamedField is "key?: Type" or "key: Type".
type NamedField struct {
	Base
	Key      FieldKey
	Optional bool
	Type     TypeExpr
}

func (*NamedField) structFieldNode() {}

// SpreadField is "...Type", in-lining Type's fields (or, if Type does not
// instantiate to a struct, only its attributes) into the enclosing struct.
type SpreadField struct {
	Base
	Type TypeExpr
}

func (*SpreadField) structFieldNode() {}

// EnumVariant is one named, literal-valued member of an EnumType.
type EnumVariant struct {
	Base
	Name      string
	NumValue  *TypedNumber
	StrValue  *string
}

// Index is either a Static or a Dynamic index applied to a dispatcher,
// struct, or (via IndexedType) another instantiated type.
type Index interface {
	token.Node
	indexNode()
}

// StaticKeyKind discriminates the six forms a StaticKey may take.
type StaticKeyKind int

const (
	StaticFallback StaticKeyKind = iota
	StaticNone
	StaticUnknown
	StaticIdent
	StaticString
	StaticResLoc
)

// StaticKey is a compile-time-known dispatch or struct-field key.
type StaticKey struct {
	Kind   StaticKeyKind
	Text   string
	ResLoc ResourceLocation
}

func (k StaticKey) String() string {
	switch k.Kind {
	case StaticFallback:
		return "%fallback"
	case StaticNone:
		return "%none"
	case StaticUnknown:
		return "%unknown"
	case StaticResLoc:
		return k.ResLoc.String()
	default:
		return k.Text
	}
}

// StaticIndex is a "[key]" index with a compile-time-known key.
type StaticIndex struct {
	Base
	Key StaticKey
}

func (*StaticIndex) indexNode() {}

// AccessorKeyKind discriminates the four forms an AccessorKey may take.
type AccessorKeyKind int

const (
	AccessorKeyMarker AccessorKeyKind = iota
	AccessorParent
	AccessorIdent
	AccessorString
)

// AccessorKey is one hop of a Dynamic index's accessor chain.
type AccessorKey struct {
	Kind AccessorKeyKind
	Text string
}

// DynamicIndex is a "[accessor]" index resolved against runtime data; the
// engine can only produce its fallback union (spec.md §4.4.1), tagging it
// "nonexhaustive".
type DynamicIndex struct {
	Base
	Accessor []AccessorKey
}

func (*DynamicIndex) indexNode() {}

// Range describes a half-open/closed numeric interval. Either end may be
// absent (open). IsFloat distinguishes an int range from a float range;
// mixing kinds is a parse-time error.
type Range struct {
	IsFloat        bool
	LoInt, HiInt   *int64
	LoFlt, HiFlt   *float64
	ExclusiveLower bool
	ExclusiveUpper bool
}

// HasLower reports whether the range has a lower bound.
func (r *Range) HasLower() bool {
	if r == nil {
		return false
	}

	return r.LoInt != nil || r.LoFlt != nil
}

// HasUpper reports whether the range has an upper bound.
func (r *Range) HasUpper() bool {
	if r == nil {
		return false
	}

	return r.HiInt != nil || r.HiFlt != nil
}

// LowerF returns the lower bound widened to float64.
func (r *Range) LowerF() float64 {
	if r.IsFloat {
		return *r.LoFlt
	}

	return float64(*r.LoInt)
}

// UpperF returns the upper bound widened to float64.
func (r *Range) UpperF() float64 {
	if r.IsFloat {
		return *r.HiFlt
	}

	return float64(*r.HiInt)
}
