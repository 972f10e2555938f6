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

// Attribute is a single "#[name]" or "#[name(value, ...)]" prelim
// attached to a declaration or type expression; the parser does not accept
// the "#[name = value]" or "#[name TreeValue]" forms. The engine does not
// interpret attribute content itself; it is opaque metadata that a data
// validator profile may inspect (spec.md §4.4.4, §7).
type Attribute struct {
	token.Position
	Name  string
	Value *AttrValue
}

// AttrValue is one node of the attribute value tree. Exactly one of the
// fields is set, except List and Call which may legitimately be nil/empty.
// The tree is produced by the participle-based grammar in attrgrammar.go.
type AttrValue struct {
	Ident *string      `parser:"  @Ident"`
	Str   *string      `parser:"| @String"`
	Num   *float64     `parser:"| @Float | @Int"`
	Bool  *bool        `parser:"| (@\"true\" | \"false\")"`
	Call  *AttrCall    `parser:"| @@"`
	List  *AttrList    `parser:"| @@"`
}

// AttrCall is "name(arg, arg, ...)" inside an attribute value tree, e.g.
// the "until(21)" in "#[deprecated(until(21))]".
type AttrCall struct {
	Name string       `parser:"@Ident"`
	Args []*AttrValue `parser:"\"(\" (@@ (\",\" @@)*)? \")\""`
}

// AttrList is a bracketed, comma-separated list inside an attribute value.
type AttrList struct {
	Items []*AttrValue `parser:"\"[\" (@@ (\",\" @@)*)? \"]\""`
}
