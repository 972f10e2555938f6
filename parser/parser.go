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

// Package parser implements the recursive-descent mcdoc parser: it turns a
// token.Lexer's token stream into an ast.File.
package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/token"
)

// Parser consumes an entire file's token stream up front into a slice, then
// walks it with arbitrary lookahead. mcdoc source files are small enough
// that this is simpler than a streaming lookahead buffer, and it lets the
// tuple/list and struct/enum-body disambiguation logic (parser.go,
// typeexpr.go) peek as far as it needs without bookkeeping.
type Parser struct {
	filename string
	src      []byte
	toks     []token.Token
	pos      int
}

// New tokenizes r in full and returns a Parser ready to parse it. The raw
// source bytes are retained so that attribute value trees, whose grammar is
// parsed separately (see parseAttributeGroup in toplevel.go), can be
// re-sliced by byte offset.
func New(filename string, r io.Reader) (*Parser, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lex := token.NewLexer(filename, bytes.NewReader(src))

	var toks []token.Token

	for {
		tk, err := lex.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		toks = append(toks, tk)
	}

	return &Parser{filename: filename, src: src, toks: toks}, nil
}

// sliceOffsets returns the raw source text in the half-open byte range
// [from, to), used to recover an attribute value's original text for
// ast.ParseAttrValue.
func (p *Parser) sliceOffsets(from, to int) string {
	if from < 0 || to > len(p.src) || from > to {
		return ""
	}

	return string(p.src[from:to])
}

// ParseFile parses the whole token stream as a File.
func ParseFile(filename string, r io.Reader) (*ast.File, error) {
	p, err := New(filename, r)
	if err != nil {
		return nil, err
	}

	return p.parseFile()
}

func (p *Parser) endPos() token.Pos {
	if len(p.toks) == 0 {
		return token.Pos{File: p.filename, Line: 1, Col: 1}
	}

	return p.toks[len(p.toks)-1].End()
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.toks)
}

// peek returns the token n positions ahead of the cursor (0 = current),
// or nil past the end of input.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i < 0 || i >= len(p.toks) {
		return nil
	}

	return p.toks[i]
}

func (p *Parser) cur() token.Token {
	return p.peek(0)
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	p.pos++

	return t
}

func (p *Parser) here() token.Node {
	if t := p.cur(); t != nil {
		return t
	}

	end := p.endPos()

	return token.NewNode(end, end)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return token.NewPosError(p.here(), fmt.Sprintf(format, args...))
}

// isPunct reports whether the current token is a Punct with the given value.
func (p *Parser) isPunct(val string) bool {
	t := p.cur()
	if t == nil || t.TokenType() != token.TypePunct {
		return false
	}

	return t.(*token.Punct).Value == val
}

// isPunctAt reports whether the token n ahead is a Punct with the given value.
func (p *Parser) isPunctAt(n int, val string) bool {
	t := p.peek(n)
	if t == nil || t.TokenType() != token.TypePunct {
		return false
	}

	return t.(*token.Punct).Value == val
}

func (p *Parser) isIdentAt(n int, val string) bool {
	t := p.peek(n)
	if t == nil || t.TokenType() != token.TypeIdent {
		return false
	}

	return t.(*token.Ident).Value == val
}

func (p *Parser) expectPunct(val string) (*token.Punct, error) {
	if !p.isPunct(val) {
		return nil, p.errorf("expected %q, got %s", val, p.describeCur())
	}

	return p.advance().(*token.Punct), nil
}

func (p *Parser) describeCur() string {
	t := p.cur()
	if t == nil {
		return "end of file"
	}

	switch v := t.(type) {
	case *token.Ident:
		return fmt.Sprintf("identifier %q", v.Value)
	case *token.Punct:
		return fmt.Sprintf("%q", v.Value)
	default:
		return string(t.TokenType())
	}
}

func (p *Parser) expectIdent() (*token.Ident, error) {
	t := p.cur()
	if t == nil || t.TokenType() != token.TypeIdent {
		return nil, p.errorf("expected identifier, got %s", p.describeCur())
	}

	id := t.(*token.Ident)

	if token.IsReserved(id.Value) {
		return nil, token.NewPosError(t, fmt.Sprintf("%q is a reserved word and cannot be used as an identifier", id.Value))
	}

	p.advance()

	return id, nil
}

// expectKeyword consumes an Ident token whose value is exactly kw (reserved
// words are only valid here, never as declaration names).
func (p *Parser) expectKeyword(kw string) error {
	t := p.cur()
	if t == nil || t.TokenType() != token.TypeIdent || t.(*token.Ident).Value != kw {
		return p.errorf("expected %q, got %s", kw, p.describeCur())
	}

	p.advance()

	return nil
}

func (p *Parser) isKeyword(kw string) bool {
	t := p.cur()

	return t != nil && t.TokenType() == token.TypeIdent && t.(*token.Ident).Value == kw
}
