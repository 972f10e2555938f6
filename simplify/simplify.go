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

// Package simplify implements assignability checking and union
// simplification over instantiated type trees (spec.md §4.5).
package simplify

import "github.com/mcdoc-lang/mcdoc/ast"

// Options tunes the engine's top/bottom semantics and lets a data validator
// profile veto or allow otherwise-unrelated assignments (spec.md §4.5.3,
// §7).
type Options struct {
	// AnyIsUnsafe, when true, makes "any" assignable only from/to itself
	// and the bottom type, instead of behaving as a universal top type.
	AnyIsUnsafe bool
	// ProfileAssignable, if set, is consulted after the structural rules
	// fail, letting a data validator profile recognize assignments the
	// core engine cannot (e.g. a domain-specific literal coercion).
	ProfileAssignable func(from, to ast.TypeExpr) bool
}

// Simplify flattens nested unions, drops empty-union (bottom) members,
// collapses members that are mutually assignable (keeping the first), and
// unwraps a single-member union to its sole member. Simplify is idempotent:
// Simplify(Simplify(t)) always equals Simplify(t).
func Simplify(opts Options, t ast.TypeExpr) ast.TypeExpr {
	u, ok := t.(*ast.UnionType)
	if !ok {
		return t
	}

	flat := flatten(opts, u.Members)

	var kept []ast.TypeExpr

	for _, m := range flat {
		if isBottom(m) {
			continue
		}

		shadowed := false

		for _, k := range kept {
			if Assignable(opts, m, k) && Assignable(opts, k, m) {
				shadowed = true

				break
			}
		}

		if !shadowed {
			kept = append(kept, m)
		}
	}

	if len(kept) == 0 {
		out := &ast.UnionType{}
		out.Position = u.Position

		return out
	}

	if len(kept) == 1 {
		return kept[0]
	}

	out := &ast.UnionType{Members: kept}
	out.Position = u.Position

	return out
}

func flatten(opts Options, members []ast.TypeExpr) []ast.TypeExpr {
	var out []ast.TypeExpr

	for _, m := range members {
		simplified := Simplify(opts, m)

		if nested, ok := simplified.(*ast.UnionType); ok {
			out = append(out, nested.Members...)

			continue
		}

		out = append(out, simplified)
	}

	return out
}

func isBottom(t ast.TypeExpr) bool {
	u, ok := t.(*ast.UnionType)

	return ok && len(u.Members) == 0
}
