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

package simplify

import "github.com/mcdoc-lang/mcdoc/ast"

// Assignable reports whether a value of type from may be used where a
// value of type to is expected, per the compositional rules of spec.md
// §4.5.1. Both from and to must already be instantiated (no unresolved
// ReferenceType/DispatcherType/IndexedType nodes).
func Assignable(opts Options, from, to ast.TypeExpr) bool {
	// unsafe is unconditionally both top and bottom, independent of
	// opts.AnyIsUnsafe: it is assignable to and from anything (spec.md
	// §4.5.1/§9), unlike AnyType whose bottom-ness is the configurable case.
	if _, ok := from.(*ast.UnsafeType); ok {
		return true
	}

	if _, ok := to.(*ast.UnsafeType); ok {
		return true
	}

	if isBottom(from) {
		return true
	}

	if isBottom(to) {
		return isBottom(from)
	}

	if fu, ok := from.(*ast.UnionType); ok {
		for _, m := range fu.Members {
			if !Assignable(opts, m, to) {
				return false
			}
		}

		return true
	}

	if tu, ok := to.(*ast.UnionType); ok {
		for _, m := range tu.Members {
			if Assignable(opts, from, m) {
				return true
			}
		}

		if opts.ProfileAssignable != nil && opts.ProfileAssignable(from, to) {
			return true
		}

		return false
	}

	if _, ok := to.(*ast.AnyType); ok {
		if opts.AnyIsUnsafe {
			_, fromIsAny := from.(*ast.AnyType)

			return fromIsAny
		}

		return true
	}

	if _, ok := from.(*ast.AnyType); ok {
		if opts.AnyIsUnsafe {
			_, toIsAny := to.(*ast.AnyType)

			return toIsAny
		}
		// any-is-top: an unconstrained "any" is only assignable to another
		// "any" unless the profile says otherwise, since it carries no
		// structural guarantee to check against to.
		return opts.ProfileAssignable != nil && opts.ProfileAssignable(from, to)
	}

	if ok := structuralAssignable(opts, from, to); ok {
		return true
	}

	if opts.ProfileAssignable != nil {
		return opts.ProfileAssignable(from, to)
	}

	return false
}

func structuralAssignable(opts Options, from, to ast.TypeExpr) bool {
	switch tv := to.(type) {
	case *ast.BooleanType:
		switch from.(type) {
		case *ast.BooleanType, *ast.LiteralBoolType:
			return true
		}

		return false

	case *ast.LiteralBoolType:
		fv, ok := from.(*ast.LiteralBoolType)

		return ok && fv.Value == tv.Value

	case *ast.StringType:
		switch fv := from.(type) {
		case *ast.StringType:
			return rangeSubset(fv.LenRange, tv.LenRange)
		case *ast.LiteralStringType:
			return rangeContainsInt(tv.LenRange, int64(len(fv.Value)))
		}

		return false

	case *ast.LiteralStringType:
		fv, ok := from.(*ast.LiteralStringType)

		return ok && fv.Value == tv.Value

	case *ast.NumericType:
		switch fv := from.(type) {
		case *ast.NumericType:
			return fv.Kind == tv.Kind && rangeSubset(fv.ValueRange, tv.ValueRange)
		case *ast.LiteralNumberType:
			return fv.Value.Kind == tv.Kind && rangeContainsNum(tv.ValueRange, fv.Value)
		}

		return false

	case *ast.LiteralNumberType:
		fv, ok := from.(*ast.LiteralNumberType)

		return ok && fv.Value.Kind == tv.Value.Kind && fv.Value.AsFloat64() == tv.Value.AsFloat64()

	case *ast.PrimArrayType:
		fv, ok := from.(*ast.PrimArrayType)
		if !ok {
			return false
		}

		return fv.ElemKind == tv.ElemKind && rangeSubset(fv.ElemRange, tv.ElemRange) && rangeSubset(fv.LenRange, tv.LenRange)

	case *ast.ListType:
		fv, ok := from.(*ast.ListType)

		return ok && Assignable(opts, fv.Elem, tv.Elem) && rangeSubset(fv.LenRange, tv.LenRange)

	case *ast.TupleType:
		fv, ok := from.(*ast.TupleType)
		if !ok || len(fv.Elems) != len(tv.Elems) {
			return false
		}

		for i := range tv.Elems {
			if !Assignable(opts, fv.Elems[i], tv.Elems[i]) {
				return false
			}
		}

		return true

	case *ast.StructType:
		fv, ok := from.(*ast.StructType)

		return ok && structAssignable(opts, fv, tv)

	case *ast.EnumType:
		fv, ok := from.(*ast.EnumType)

		return ok && enumAssignable(fv, tv)

	default:
		return false
	}
}

// structAssignable implements width subtyping: every required field of to
// must be present in from with an assignable type; optional fields of to
// may be absent from from.
func structAssignable(opts Options, from, to *ast.StructType) bool {
	for _, tf := range to.Fields {
		tnf, ok := tf.(*ast.NamedField)
		if !ok || tnf.Key.IsComputed {
			continue
		}

		var matched *ast.NamedField

		for _, ff := range from.Fields {
			fnf, ok := ff.(*ast.NamedField)
			if !ok || fnf.Key.IsComputed {
				continue
			}

			if fnf.Key.Text == tnf.Key.Text {
				matched = fnf

				break
			}
		}

		if matched == nil {
			if !tnf.Optional {
				return false
			}

			continue
		}

		if !Assignable(opts, matched.Type, tnf.Type) {
			return false
		}
	}

	return true
}

func enumAssignable(from, to *ast.EnumType) bool {
	if from.BaseKind != to.BaseKind {
		return false
	}

	for _, fv := range from.Variants {
		found := false

		for _, tv := range to.Variants {
			if fv.Name != tv.Name {
				continue
			}

			if fv.StrValue != nil && tv.StrValue != nil && *fv.StrValue == *tv.StrValue {
				found = true
			} else if fv.NumValue != nil && tv.NumValue != nil && fv.NumValue.AsFloat64() == tv.NumValue.AsFloat64() {
				found = true
			}

			break
		}

		if !found {
			return false
		}
	}

	return true
}

func rangeSubset(from, to *ast.Range) bool {
	if to == nil {
		return true
	}

	if from == nil {
		return false
	}

	if to.HasLower() {
		if !from.HasLower() || from.LowerF() < to.LowerF() {
			return false
		}

		if to.ExclusiveLower && !from.ExclusiveLower && from.LowerF() == to.LowerF() {
			return false
		}
	}

	if to.HasUpper() {
		if !from.HasUpper() || from.UpperF() > to.UpperF() {
			return false
		}

		if to.ExclusiveUpper && !from.ExclusiveUpper && from.UpperF() == to.UpperF() {
			return false
		}
	}

	return true
}

func rangeContainsInt(r *ast.Range, v int64) bool {
	return rangeContainsFloat(r, float64(v))
}

func rangeContainsNum(r *ast.Range, n ast.TypedNumber) bool {
	return rangeContainsFloat(r, n.AsFloat64())
}

func rangeContainsFloat(r *ast.Range, v float64) bool {
	if r == nil {
		return true
	}

	if r.HasLower() {
		if v < r.LowerF() || (r.ExclusiveLower && v == r.LowerF()) {
			return false
		}
	}

	if r.HasUpper() {
		if v > r.UpperF() || (r.ExclusiveUpper && v == r.UpperF()) {
			return false
		}
	}

	return true
}
