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

import "strings"

// Path is a sequence of identifier segments. A canonical Path is always
// root-anchored: "::foo::bar" and the in-source form "foo::bar" (written
// relative to the current module) both end up as Path{"foo", "bar"} once
// symtab resolves them; Absolute and SuperCount record how the source form
// was written, and symtab.Resolve uses them to anchor the path.
type Path struct {
	Segments []string
	// SuperCount is the number of leading "super" segments written in
	// source, before resolution. Zero for absolute and plain relative
	// paths.
	SuperCount int
	// Absolute is true if the source path started with "::".
	Absolute bool
}

// NewPath builds an absolute Path from plain segments, used by callers that
// already hold a canonical path (e.g. symtab after resolution).
func NewPath(segments ...string) Path {
	return Path{Segments: append([]string{}, segments...), Absolute: true}
}

func (p Path) String() string {
	return "::" + strings.Join(p.Segments, "::")
}

// Join returns a new Path with extra segments appended.
func (p Path) Join(segments ...string) Path {
	out := Path{Segments: append(append([]string{}, p.Segments...), segments...), Absolute: p.Absolute}

	return out
}

// Parent returns p with its last segment removed, and false if p is empty.
func (p Path) Parent() (Path, bool) {
	if len(p.Segments) == 0 {
		return p, false
	}

	return Path{Segments: p.Segments[:len(p.Segments)-1], Absolute: p.Absolute}, true
}

// Last returns the final segment, or "" if p is empty.
func (p Path) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}

	return p.Segments[len(p.Segments)-1]
}

// Equal reports whether two canonical paths name the same declaration.
func (p Path) Equal(o Path) bool {
	if len(p.Segments) != len(o.Segments) {
		return false
	}

	for i := range p.Segments {
		if p.Segments[i] != o.Segments[i] {
			return false
		}
	}

	return true
}

// ResourceLocation is a "namespace:path/segments" identifier, distinguished
// lexically from a plain identifier by the presence of an interior ':'.
type ResourceLocation struct {
	Namespace string
	Path      string
}

func (r ResourceLocation) String() string {
	return r.Namespace + ":" + r.Path
}
