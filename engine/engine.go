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

// Package engine wires symtab, instantiate, and simplify behind the query
// facade an external caller (a source loader, a data validator, an LSP) is
// expected to use (spec.md §6).
package engine

import (
	"context"
	"fmt"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/diag"
	"github.com/mcdoc-lang/mcdoc/instantiate"
	"github.com/mcdoc-lang/mcdoc/simplify"
	"github.com/mcdoc-lang/mcdoc/symtab"
	"github.com/mcdoc-lang/mcdoc/token"
)

// pathNode anchors a diagnostic raised from a public Engine call (which has
// no source token to point at) at a synthetic zero position naming the
// path involved.
func pathNode(p ast.Path) token.Node {
	pos := token.Pos{File: p.String()}

	return token.NewNode(pos, pos)
}

// Options configures engine behavior that is otherwise opinion-free in the
// core type system: top/bottom semantics and a pluggable data validator
// profile hook consulted by Assignable.
type Options struct {
	AnyIsUnsafe       bool
	ProfileAssignable func(from, to ast.TypeExpr) bool
}

// Engine is the loaded, query-ready state of one mcdoc project.
type Engine struct {
	table   *symtab.Table
	cache   *instantiate.Cache
	opts    Options
	loadErr diag.List
}

// Load builds an Engine from every ".mcdoc" file under root.
func Load(root string, opts Options) (*Engine, diag.List) {
	table, diags := symtab.LoadDir(root)

	return &Engine{table: table, cache: instantiate.NewCache(), opts: opts, loadErr: diags}, diags
}

// Diagnostics returns every diagnostic raised while loading the project:
// parse errors, duplicate declarations, duplicate dispatch keys.
func (e *Engine) Diagnostics() diag.List {
	return e.loadErr
}

// Resolve looks up the declaration at path, relative to the project root
// module ("::").
func (e *Engine) Resolve(path ast.Path) (*symtab.Decl, bool) {
	return e.table.Lookup(path)
}

// Instantiate fully instantiates the declaration at path with the given
// type arguments, returning its resolved, spread-expanded type tree.
func (e *Engine) Instantiate(ctx context.Context, path ast.Path, typeArgs []ast.TypeExpr) (ast.TypeExpr, diag.List) {
	decl, ok := e.table.Lookup(path)
	if !ok {
		return nil, diag.List{diag.NewError(diag.UnknownPath, pathNode(path), fmt.Sprintf("unknown path %q", path.String()))}
	}

	tps := decl.TypeParams()
	if len(tps) != len(typeArgs) {
		return nil, diag.List{diag.NewError(diag.TypeArgCountMismatch, pathNode(path),
			fmt.Sprintf("%q takes %d type argument(s), got %d", path.String(), len(tps), len(typeArgs)))}
	}

	key := cacheKey(path, typeArgs)

	typ, diags := e.cache.Do(key, func() (ast.TypeExpr, diag.List) {
		env := instantiate.NewEnv(e.table, decl.Module)

		for i, tp := range tps {
			env.Bindings[tp.Name] = typeArgs[i]
		}

		var body ast.TypeExpr

		switch decl.Kind {
		case symtab.DeclStruct:
			body = decl.Struct.Body
		case symtab.DeclEnum:
			return decl.Enum.Body, nil
		default:
			body = decl.Alias.Value
		}

		return instantiate.Instantiate(ctx, env, body)
	})

	return typ, diags
}

// Dispatch resolves a dispatcher expression with its indices already
// attached (as built by the parser for a DispatcherType type expression).
func (e *Engine) Dispatch(ctx context.Context, root *symtab.Module, d *ast.DispatcherType) (ast.TypeExpr, diag.List) {
	env := instantiate.NewEnv(e.table, root)

	return instantiate.Instantiate(ctx, env, d)
}

// Assignable reports whether a value of type from may be used where a
// value of type to is expected. Both types must already be instantiated.
func (e *Engine) Assignable(from, to ast.TypeExpr) bool {
	return simplify.Assignable(simplify.Options{AnyIsUnsafe: e.opts.AnyIsUnsafe, ProfileAssignable: e.opts.ProfileAssignable}, from, to)
}

// Simplify flattens and de-duplicates a union type.
func (e *Engine) Simplify(t ast.TypeExpr) ast.TypeExpr {
	return simplify.Simplify(simplify.Options{AnyIsUnsafe: e.opts.AnyIsUnsafe, ProfileAssignable: e.opts.ProfileAssignable}, t)
}

func cacheKey(path ast.Path, typeArgs []ast.TypeExpr) string {
	s := path.String()

	for _, a := range typeArgs {
		// generic arguments are themselves already-instantiated trees at
		// the engine's public boundary; their identity is their printed
		// form, which is good enough as a memoization key component.
		s += "!" + ast.Print(&ast.File{Forms: []ast.TopLevelForm{&ast.TypeAlias{Name: "_", Value: a}}})
	}

	return s
}
