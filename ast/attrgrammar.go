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

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// attrLexer is a small, self-contained lexer for attribute value trees. The
// main mcdoc grammar is hand-rolled (see the token and parser packages) but
// attribute values are a closed, declarative sub-grammar, so participle is
// used here the same way it was used for the whole grammar before this
// repository existed.
var attrLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `[-+]?\d+\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `"(\\.|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[()\[\],]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var attrParser = participle.MustBuild[AttrValue](
	participle.Lexer(attrLexer),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// ParseAttrValue parses one attribute value tree from its source text. The
// parser passes an attribute's parenthesized arguments here re-wrapped in
// brackets, so "#[since(19)]" arrives as "[19]".
func ParseAttrValue(src string) (*AttrValue, error) {
	return attrParser.ParseString("", src)
}
