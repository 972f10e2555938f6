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

// Package symtab builds the canonical symbol table of a set of parsed
// mcdoc files: module paths, declarations, use-aliases, dispatch
// registries, and queued injections (spec.md §3.2/§4.3).
package symtab

import (
	"fmt"
	"sort"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/diag"
	"github.com/mcdoc-lang/mcdoc/token"
)

// DeclKind discriminates what a Decl names.
type DeclKind int

const (
	DeclStruct DeclKind = iota
	DeclEnum
	DeclAlias
)

// Decl is one named top-level declaration, reachable by its canonical path.
type Decl struct {
	Kind   DeclKind
	Path   ast.Path
	Module *Module
	Struct *ast.StructDef
	Enum   *ast.EnumDef
	Alias  *ast.TypeAlias
}

func (d *Decl) Node() token.Node {
	switch d.Kind {
	case DeclStruct:
		return d.Struct
	case DeclEnum:
		return d.Enum
	default:
		return d.Alias
	}
}

func (d *Decl) TypeParams() []ast.TypeParam {
	switch d.Kind {
	case DeclStruct:
		return d.Struct.TypeParams
	case DeclAlias:
		return d.Alias.TypeParams
	default:
		return nil
	}
}

// Module is the set of declarations and use-aliases contributed by every
// file sharing one canonical module path. A "mod.mcdoc" file's forms
// collapse into the Module of its directory, the same Module as a file
// named after that directory ("foo/mod.mcdoc" and "foo.mcdoc" both feed
// "::foo").
type Module struct {
	Path  ast.Path
	Decls map[string]*Decl
	Uses  map[string]ast.Path
}

func newModule(path ast.Path) *Module {
	return &Module{Path: path, Decls: map[string]*Decl{}, Uses: map[string]ast.Path{}}
}

// DispatchEntry is one "dispatch registry[key] to Type" registration.
type DispatchEntry struct {
	Registry ast.ResourceLocation
	Key      ast.StaticKey
	Target   ast.TypeExpr
	Module   *Module
	Node     token.Node
}

// Table is the fully loaded, cross-file symbol table.
type Table struct {
	Modules map[string]*Module
	// Dispatch maps a registry name to its entries, keyed by the string
	// form of the static key.
	Dispatch map[string]map[string]*DispatchEntry
	// Injections maps a registry name to the key strings that have queued
	// injections, and from there to the injections themselves. Keys use the
	// static key's String() form, so the %fallback key is "%fallback".
	Injections map[string]map[string][]*ast.Injection
	Diags      diag.List
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{
		Modules:    map[string]*Module{},
		Dispatch:   map[string]map[string]*DispatchEntry{},
		Injections: map[string]map[string][]*ast.Injection{},
	}
}

func (t *Table) module(path ast.Path) *Module {
	key := path.String()

	m, ok := t.Modules[key]
	if !ok {
		m = newModule(path)
		t.Modules[key] = m
	}

	return m
}

// AddFile registers every top-level form of f into the module at modPath,
// diagnosing duplicate declarations and duplicate dispatch keys.
func (t *Table) AddFile(modPath ast.Path, f *ast.File) {
	mod := t.module(modPath)

	for _, form := range f.Forms {
		switch v := form.(type) {
		case *ast.StructDef:
			t.addDecl(mod, v.Name, &Decl{Kind: DeclStruct, Path: mod.Path.Join(v.Name), Module: mod, Struct: v})
		case *ast.EnumDef:
			t.addDecl(mod, v.Name, &Decl{Kind: DeclEnum, Path: mod.Path.Join(v.Name), Module: mod, Enum: v})
		case *ast.TypeAlias:
			t.addDecl(mod, v.Name, &Decl{Kind: DeclAlias, Path: mod.Path.Join(v.Name), Module: mod, Alias: v})
		case *ast.UseStmt:
			canonical, err := t.Resolve(mod, v.Target, v)
			if err != nil {
				t.Diags.Add(*err)

				continue
			}

			mod.Uses[v.Alias] = canonical
		case *ast.DispatchStmt:
			t.addDispatch(mod, v)
		case *ast.Injection:
			t.queueInjection(v)
		}
	}
}

func (t *Table) addDecl(mod *Module, name string, d *Decl) {
	if existing, ok := mod.Decls[name]; ok {
		t.Diags.Add(diag.NewError(diag.DuplicateDeclaration, d.Node(),
			fmt.Sprintf("%q is already declared in this module", name),
			token.NewErrDetail(existing.Node(), "first declared here")))

		return
	}

	mod.Decls[name] = d
}

func (t *Table) addDispatch(mod *Module, v *ast.DispatchStmt) {
	reg := v.Registry.String()

	keys := v.Keys
	if len(keys) == 0 {
		keys = []ast.StaticKey{{Kind: ast.StaticFallback}}
	}

	for _, key := range keys {
		m, ok := t.Dispatch[reg]
		if !ok {
			m = map[string]*DispatchEntry{}
			t.Dispatch[reg] = m
		}

		keyStr := key.String()

		if existing, ok := m[keyStr]; ok {
			t.Diags.Add(diag.NewError(diag.DuplicateDispatchKey, v,
				fmt.Sprintf("duplicate dispatch key %q in registry %q", keyStr, reg),
				token.NewErrDetail(existing.Node, "first registered here")))

			continue
		}

		m[keyStr] = &DispatchEntry{Registry: v.Registry, Key: key, Target: v.Target, Module: mod, Node: v}
	}
}

func (t *Table) queueInjection(inj *ast.Injection) {
	reg := inj.Registry.String()

	keys := inj.Keys
	if len(keys) == 0 {
		keys = []ast.StaticKey{{Kind: ast.StaticFallback}}
	}

	for _, key := range keys {
		m, ok := t.Injections[reg]
		if !ok {
			m = map[string][]*ast.Injection{}
			t.Injections[reg] = m
		}

		keyStr := key.String()
		m[keyStr] = append(m[keyStr], inj)
	}
}

// Resolve turns a source-form Path, written in the context of mod, into a
// canonical, root-anchored Path. It does not check that the result names an
// existing declaration; use Lookup for that.
func (t *Table) Resolve(mod *Module, p ast.Path, node token.Node) (ast.Path, *diag.Diagnostic) {
	if p.Absolute {
		return ast.NewPath(p.Segments...), nil
	}

	if p.SuperCount > 0 {
		base := mod.Path.Segments
		if p.SuperCount > len(base) {
			d := diag.NewError(diag.SuperPastRoot, node, "super path climbs above the module root")

			return ast.Path{}, &d
		}

		base = base[:len(base)-p.SuperCount]

		return ast.NewPath(append(append([]string{}, base...), p.Segments...)...), nil
	}

	if len(p.Segments) > 0 {
		if target, ok := mod.Uses[p.Segments[0]]; ok {
			return target.Join(p.Segments[1:]...), nil
		}
	}

	return mod.Path.Join(p.Segments...), nil
}

// Lookup finds the declaration at exactly the given canonical path: the
// last segment names a declaration in the module named by the others; no
// other module is searched (mcdoc has no package-private visibility: every
// declaration is reachable by its canonical path from anywhere once
// resolved).
func (t *Table) Lookup(path ast.Path) (*Decl, bool) {
	if len(path.Segments) == 0 {
		return nil, false
	}

	parent, ok := path.Parent()
	if !ok {
		return nil, false
	}

	mod, ok := t.Modules[parent.String()]
	if !ok {
		return nil, false
	}

	d, ok := mod.Decls[path.Last()]

	return d, ok
}

// LookupDispatch finds the registered target for a key in a dispatch
// registry, falling back to %fallback, then nil if no entry matches.
func (t *Table) LookupDispatch(registry ast.ResourceLocation, key ast.StaticKey) (*DispatchEntry, bool) {
	m, ok := t.Dispatch[registry.String()]
	if !ok {
		return nil, false
	}

	if e, ok := m[key.String()]; ok {
		return e, true
	}

	if e, ok := m[(ast.StaticKey{Kind: ast.StaticFallback}).String()]; ok {
		return e, true
	}

	return nil, false
}

// AllEntries returns every case registered in registry, including
// %fallback but excluding %none and %unknown, sorted by key text for
// deterministic output. This is the set a dynamic index resolves to as the
// fallback union (spec.md §4.4.1).
func (t *Table) AllEntries(registry ast.ResourceLocation) []*DispatchEntry {
	m, ok := t.Dispatch[registry.String()]
	if !ok {
		return nil
	}

	var out []*DispatchEntry

	for _, e := range m {
		if e.Key.Kind == ast.StaticNone || e.Key.Kind == ast.StaticUnknown {
			continue
		}

		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})

	return out
}

// InjectionsFor returns the injections queued against a registry/key pair,
// plus any queued against %fallback.
func (t *Table) InjectionsFor(registry ast.ResourceLocation, key ast.StaticKey) []*ast.Injection {
	m, ok := t.Injections[registry.String()]
	if !ok {
		return nil
	}

	out := append([]*ast.Injection{}, m[key.String()]...)

	if key.Kind != ast.StaticFallback {
		out = append(out, m[(ast.StaticKey{Kind: ast.StaticFallback}).String()]...)
	}

	return out
}
