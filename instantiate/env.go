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

// Package instantiate implements the type instantiation engine: generic
// substitution, index resolution, struct-spread resolution, and cycle
// detection over the symbol table built by package symtab (spec.md §4.4).
package instantiate

import (
	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/symtab"
)

// Env carries the state threaded through one top-level Instantiate call:
// the symbol table, the current module (for relative path resolution), and
// the generic-parameter bindings in scope.
type Env struct {
	Table    *symtab.Table
	Module   *symtab.Module
	Bindings map[string]ast.TypeExpr
	visiting map[string]int // decl path -> depth at which it was entered, for cycle detection
	lazyDepth int
}

// NewEnv creates a root Env for instantiating references found in mod.
func NewEnv(t *symtab.Table, mod *symtab.Module) *Env {
	return &Env{Table: t, Module: mod, Bindings: map[string]ast.TypeExpr{}, visiting: map[string]int{}}
}

// child returns a new Env for entering a declaration of module mod with
// fresh generic bindings, sharing the visiting set so cycles are detected
// across the whole call tree.
func (e *Env) child(mod *symtab.Module, bindings map[string]ast.TypeExpr) *Env {
	return &Env{Table: e.Table, Module: mod, Bindings: bindings, visiting: e.visiting, lazyDepth: e.lazyDepth}
}

// enterLazy returns an Env marking that subsequent instantiation happens
// behind a lazy boundary (list elements, struct field types): a cycle
// crossing such a boundary is not diagnosed, since a Lazy handle defers the
// actual recursive expansion instead of looping forever (spec.md §4.4.5,
// §5).
func (e *Env) enterLazy() *Env {
	return &Env{Table: e.Table, Module: e.Module, Bindings: e.Bindings, visiting: e.visiting, lazyDepth: e.lazyDepth + 1}
}
