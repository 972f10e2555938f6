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

package instantiate

import (
	"context"
	"fmt"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/diag"
	"github.com/mcdoc-lang/mcdoc/symtab"
)

// Instantiate walks expr, substituting generic bindings, resolving
// references, dispatch lookups, indices, and struct spreads, and returns
// the resulting (still ast.TypeExpr-shaped) instantiated tree along with
// any diagnostics raised while doing so. ctx is checked between recursive
// steps so a caller can cancel a runaway or merely slow expansion
// (spec.md §5).
func Instantiate(ctx context.Context, env *Env, expr ast.TypeExpr) (ast.TypeExpr, diag.List) {
	if err := ctx.Err(); err != nil {
		return expr, diag.List{diag.NewError("", expr, err.Error())}
	}

	switch v := expr.(type) {
	case *ast.AnyType, *ast.UnsafeType, *ast.BooleanType, *ast.StringType, *ast.LiteralBoolType,
		*ast.LiteralStringType, *ast.LiteralNumberType, *ast.NumericType, *ast.PrimArrayType:
		return expr, nil

	case *ast.ListType:
		elem, diags := Instantiate(ctx, env.enterLazy(), v.Elem)
		lt := &ast.ListType{Elem: elem, LenRange: v.LenRange}
		lt.Position = v.Position
		lt.AttrList = v.AttrList
		lt.DocText = v.DocText

		return lt, diags

	case *ast.TupleType:
		var diags diag.List

		elems := make([]ast.TypeExpr, len(v.Elems))

		for i, e := range v.Elems {
			inst, d := Instantiate(ctx, env, e)
			elems[i] = inst
			diags = append(diags, d...)
		}

		tt := &ast.TupleType{Elems: elems}
		tt.Position = v.Position

		return tt, diags

	case *ast.UnionType:
		var diags diag.List

		members := make([]ast.TypeExpr, len(v.Members))

		for i, m := range v.Members {
			inst, d := Instantiate(ctx, env, m)
			members[i] = inst
			diags = append(diags, d...)
		}

		ut := &ast.UnionType{Members: members}
		ut.Position = v.Position

		return ut, diags

	case *ast.StructType:
		return instantiateStruct(ctx, env, v)

	case *ast.ReferenceType:
		return instantiateReference(ctx, env, v)

	case *ast.DispatcherType:
		return instantiateDispatcher(ctx, env, v)

	case *ast.IndexedType:
		return instantiateIndexed(ctx, env, v)

	case *ast.EnumType:
		return expr, nil

	default:
		return expr, diag.List{diag.NewError("", expr, fmt.Sprintf("instantiate: unhandled type expr %T", expr))}
	}
}

func instantiateStruct(ctx context.Context, env *Env, st *ast.StructType) (ast.TypeExpr, diag.List) {
	var diags diag.List

	var fields []ast.StructField

	attrs := append([]ast.Attribute{}, st.AttrList...)

	for _, f := range st.Fields {
		switch fv := f.(type) {
		case *ast.NamedField:
			typ, d := Instantiate(ctx, env.enterLazy(), fv.Type)
			diags = append(diags, d...)

			nf := &ast.NamedField{Key: fv.Key, Optional: fv.Optional, Type: typ}
			nf.Base = fv.Base
			fields = append(fields, nf)

		case *ast.SpreadField:
			spread, d := Instantiate(ctx, env, fv.Type)
			diags = append(diags, d...)

			// the spread target's own attributes always propagate to the
			// enclosing struct, whether or not it resolved to a struct
			// (spec.md §4.4.3).
			attrs = append(attrs, spread.Attrs()...)

			if inner, ok := spread.(*ast.StructType); ok {
				fields = append(fields, inner.Fields...)
			}
		}
	}

	out := &ast.StructType{Fields: fields}
	out.Position = st.Position
	out.AttrList = attrs
	out.DocText = st.DocText

	return out, diags
}

// substitute performs capture-free textual substitution of generic type
// parameters, replacing any single-segment, non-absolute ReferenceType
// whose name is bound in env with its bound TypeExpr.
func substitute(env *Env, expr ast.TypeExpr) ast.TypeExpr {
	switch v := expr.(type) {
	case *ast.ReferenceType:
		if len(v.TypeArgs) == 0 && !v.Path.Absolute && v.Path.SuperCount == 0 && len(v.Path.Segments) == 1 {
			if bound, ok := env.Bindings[v.Path.Segments[0]]; ok {
				return bound
			}
		}

		args := make([]ast.TypeExpr, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = substitute(env, a)
		}

		r := &ast.ReferenceType{Path: v.Path, TypeArgs: args}
		r.Position = v.Position
		r.AttrList = v.AttrList
		r.DocText = v.DocText

		return r

	case *ast.ListType:
		lt := &ast.ListType{Elem: substitute(env, v.Elem), LenRange: v.LenRange}
		lt.Position = v.Position

		return lt

	case *ast.TupleType:
		elems := make([]ast.TypeExpr, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = substitute(env, e)
		}

		tt := &ast.TupleType{Elems: elems}
		tt.Position = v.Position

		return tt

	case *ast.UnionType:
		members := make([]ast.TypeExpr, len(v.Members))
		for i, m := range v.Members {
			members[i] = substitute(env, m)
		}

		ut := &ast.UnionType{Members: members}
		ut.Position = v.Position

		return ut

	case *ast.StructType:
		fields := make([]ast.StructField, len(v.Fields))

		for i, f := range v.Fields {
			switch fv := f.(type) {
			case *ast.NamedField:
				nf := &ast.NamedField{Key: fv.Key, Optional: fv.Optional, Type: substitute(env, fv.Type)}
				nf.Base = fv.Base
				fields[i] = nf
			case *ast.SpreadField:
				sf := &ast.SpreadField{Type: substitute(env, fv.Type)}
				sf.Base = fv.Base
				fields[i] = sf
			}
		}

		st := &ast.StructType{Fields: fields}
		st.Position = v.Position

		return st

	default:
		return expr
	}
}

func instantiateReference(ctx context.Context, env *Env, ref *ast.ReferenceType) (ast.TypeExpr, diag.List) {
	substituted := substitute(env, ref)
	if substituted != ref {
		return Instantiate(ctx, env, substituted)
	}

	canonical, derr := env.Table.Resolve(env.Module, ref.Path, ref)
	if derr != nil {
		return ref, diag.List{*derr}
	}

	decl, ok := env.Table.Lookup(canonical)
	if !ok {
		return ref, diag.List{diag.NewError(diag.UnknownPath, ref, fmt.Sprintf("unknown path %q", canonical.String()))}
	}

	pathKey := canonical.String()

	if depth, visiting := env.visiting[pathKey]; visiting && env.lazyDepth == depth {
		return ref, diag.List{diag.NewError(diag.CycleWithoutLaziness, ref,
			fmt.Sprintf("%q recursively references itself with no intervening list or struct field", canonical.String()))}
	}

	tps := decl.TypeParams()

	if len(tps) != len(ref.TypeArgs) {
		return ref, diag.List{diag.NewError(diag.TypeArgCountMismatch, ref,
			fmt.Sprintf("%q takes %d type argument(s), got %d", canonical.String(), len(tps), len(ref.TypeArgs)))}
	}

	bindings := map[string]ast.TypeExpr{}

	for i, tp := range tps {
		bindings[tp.Name] = ref.TypeArgs[i]
	}

	child := env.child(decl.Module, bindings)
	child.visiting = copyVisiting(env.visiting)
	child.visiting[pathKey] = env.lazyDepth

	switch decl.Kind {
	case symtab.DeclStruct:
		out, d := Instantiate(ctx, child, decl.Struct.Body)
		if st, ok := out.(*ast.StructType); ok {
			st.AttrList = append(append([]ast.Attribute{}, decl.Struct.AttrList...), st.AttrList...)
		}

		return out, d
	case symtab.DeclEnum:
		et := *decl.Enum.Body
		et.AttrList = append(append([]ast.Attribute{}, decl.Enum.AttrList...), et.AttrList...)

		return &et, nil
	default:
		return Instantiate(ctx, child, decl.Alias.Value)
	}
}

func copyVisiting(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func instantiateDispatcher(ctx context.Context, env *Env, d *ast.DispatcherType) (ast.TypeExpr, diag.List) {
	if len(d.Indices) == 0 {
		return d, nil
	}

	var diags diag.List

	var members []ast.TypeExpr

	nonexhaustive := false

	for _, idx := range d.Indices {
		switch v := idx.(type) {
		case *ast.StaticIndex:
			if v.Key.Kind == ast.StaticFallback {
				diags = append(diags, diag.NewError(diag.FallbackOnDispatchLHS, idx,
					"%fallback cannot be used to select a dispatch entry"))

				continue
			}

			entry, ok := env.Table.LookupDispatch(d.Registry, v.Key)
			if !ok {
				diags = append(diags, diag.NewError(diag.UnknownDispatcherRegistry, d,
					fmt.Sprintf("no entry for key %q in registry %q", v.Key.String(), d.Registry.String())))

				continue
			}

			target := entry.Target

			for _, inj := range env.Table.InjectionsFor(d.Registry, v.Key) {
				target = mergeInjection(target, inj)
			}

			childEnv := env.child(entry.Module, map[string]ast.TypeExpr{})
			childEnv.visiting = env.visiting

			inst, id := Instantiate(ctx, childEnv, target)
			diags = append(diags, id...)
			members = append(members, inst)

		case *ast.DynamicIndex:
			// A runtime lookup: the instantiated value is the fallback
			// union of every registered case (including %fallback,
			// excluding %none/%unknown), tagged nonexhaustive (spec.md
			// §4.4.1).
			fallback, fd := instantiateDispatchFallback(ctx, env, d.Registry)
			diags = append(diags, fd...)
			members = append(members, fallback...)
			nonexhaustive = true
		}
	}

	if len(members) == 0 {
		return d, diags
	}

	if len(members) == 1 && !nonexhaustive {
		return members[0], diags
	}

	ut := &ast.UnionType{Members: members}
	ut.Position = d.Position

	if nonexhaustive {
		ut.AttrList = append(ut.AttrList, nonexhaustiveAttr())
	}

	return ut, diags
}

// instantiateDispatchFallback instantiates every case registered in
// registry except %none and %unknown, for the fallback union a dynamic
// dispatcher index resolves to (spec.md §4.4.1).
func instantiateDispatchFallback(ctx context.Context, env *Env, registry ast.ResourceLocation) ([]ast.TypeExpr, diag.List) {
	var diags diag.List

	var members []ast.TypeExpr

	for _, entry := range env.Table.AllEntries(registry) {
		target := entry.Target

		for _, inj := range env.Table.InjectionsFor(registry, entry.Key) {
			target = mergeInjection(target, inj)
		}

		childEnv := env.child(entry.Module, map[string]ast.TypeExpr{})
		childEnv.visiting = env.visiting

		inst, id := Instantiate(ctx, childEnv, target)
		diags = append(diags, id...)
		members = append(members, inst)
	}

	return members, diags
}

// nonexhaustiveAttr builds the attribute tagging a fallback union as
// produced from an unresolved dynamic index rather than a concrete key.
func nonexhaustiveAttr() ast.Attribute {
	return ast.Attribute{Name: "nonexhaustive"}
}

// mergeInjection in-lines an Injection's fields/variants into target,
// producing a new StructType/EnumType (spec.md §3.2.3).
func mergeInjection(target ast.TypeExpr, inj *ast.Injection) ast.TypeExpr {
	switch v := target.(type) {
	case *ast.StructType:
		st := &ast.StructType{Fields: append(append([]ast.StructField{}, v.Fields...), inj.Fields...)}
		st.Position = v.Position

		return st
	case *ast.EnumType:
		et := &ast.EnumType{BaseKind: v.BaseKind, Variants: append(append([]ast.EnumVariant{}, v.Variants...), inj.Variants...)}
		et.Position = v.Position

		return et
	default:
		return target
	}
}

func instantiateIndexed(ctx context.Context, env *Env, it *ast.IndexedType) (ast.TypeExpr, diag.List) {
	base, diags := Instantiate(ctx, env, it.BaseExpr)

	st, ok := base.(*ast.StructType)
	if !ok {
		diags = append(diags, diag.NewError(diag.StaticKeyOnNonDispatcherStruct, it,
			"an index can only be applied to a struct or dispatcher type"))

		return base, diags
	}

	var members []ast.TypeExpr

	nonexhaustive := false

	for _, idx := range it.Indices {
		switch v := idx.(type) {
		case *ast.StaticIndex:
			found := false

			for _, f := range st.Fields {
				nf, ok := f.(*ast.NamedField)
				if !ok || nf.Key.IsComputed {
					continue
				}

				if nf.Key.Text == v.Key.Text {
					inst, d := Instantiate(ctx, env, nf.Type)
					diags = append(diags, d...)
					members = append(members, inst)
					found = true

					break
				}
			}

			if !found {
				diags = append(diags, diag.NewError(diag.UnknownPath, idx,
					fmt.Sprintf("struct has no field %q", v.Key.String())))
			}

		case *ast.DynamicIndex:
			// A runtime lookup over a struct's own fields resolves to the
			// fallback union of every field's type, tagged nonexhaustive
			// (spec.md §4.4.1, "on a struct: same fallback union over all
			// field types").
			for _, f := range st.Fields {
				nf, ok := f.(*ast.NamedField)
				if !ok {
					continue
				}

				inst, d := Instantiate(ctx, env, nf.Type)
				diags = append(diags, d...)
				members = append(members, inst)
			}

			nonexhaustive = true
		}
	}

	if len(members) == 1 && !nonexhaustive {
		return members[0], diags
	}

	ut := &ast.UnionType{Members: members}
	ut.Position = it.Position

	if nonexhaustive {
		ut.AttrList = append(ut.AttrList, nonexhaustiveAttr())
	}

	return ut, diags
}

