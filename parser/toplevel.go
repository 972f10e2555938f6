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

package parser

import (
	"strings"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/token"
)

func (p *Parser) parseFile() (*ast.File, error) {
	begin := token.Pos{File: p.filename, Line: 1, Col: 1}

	f := &ast.File{Path: p.filename}
	f.BeginPos = begin

	for !p.eof() {
		form, err := p.parseTopLevelForm()
		if err != nil {
			return nil, err
		}

		f.Forms = append(f.Forms, form)
	}

	f.EndPos = p.endPos()

	return f, nil
}

// prelim holds the attribute list and doc comment that may precede any
// declaration, field, or enum variant (spec.md glossary, "prelim").
type prelim struct {
	attrs []ast.Attribute
	doc   string
}

func (p *Parser) parsePrelim() (prelim, error) {
	var out prelim

	var docLines []string

	for {
		switch {
		case p.isPunct(token.Hash):
			attrs, err := p.parseAttributeGroup()
			if err != nil {
				return out, err
			}

			out.attrs = append(out.attrs, attrs...)
		case p.cur() != nil && p.cur().TokenType() == token.TypeDocComment:
			docLines = append(docLines, p.advance().(*token.DocComment).Value)
		default:
			out.doc = strings.Join(docLines, "\n")

			return out, nil
		}
	}
}

// parseAttributeGroup parses one "#[name, name(args), ...]" group.
func (p *Parser) parseAttributeGroup() ([]ast.Attribute, error) {
	start := p.here()

	if _, err := p.expectPunct(token.Hash); err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(token.BracketOpen); err != nil {
		return nil, err
	}

	var attrs []ast.Attribute

	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		attr := ast.Attribute{Position: token.Position{BeginPos: name.Begin()}, Name: name.Value}

		if p.isPunct(token.ParenOpen) {
			valStart := p.cur().Begin().Offset

			p.advance()

			depth := 1
			for depth > 0 {
				if p.eof() {
					return nil, p.errorf("unterminated attribute argument list")
				}

				if p.isPunct(token.ParenOpen) {
					depth++
				} else if p.isPunct(token.ParenClose) {
					depth--

					if depth == 0 {
						break
					}
				}

				p.advance()
			}

			valEnd := p.cur().Begin().Offset
			src := p.sliceOffsets(valStart+1, valEnd)

			p.advance() // consume the matching ')'

			val, perr := ast.ParseAttrValue("[" + src + "]")
			if perr != nil {
				return nil, token.NewPosError(p.here(), "invalid attribute value").SetCause(perr)
			}

			attr.Value = val
		}

		attr.EndPos = p.here().Begin()
		attrs = append(attrs, attr)

		if p.isPunct(token.Comma) {
			p.advance()

			continue
		}

		break
	}

	if _, err := p.expectPunct(token.BracketClose); err != nil {
		return nil, err
	}

	_ = start

	return attrs, nil
}

func (pr prelim) apply(b *ast.Base) {
	b.AttrList = pr.attrs
	b.DocText = pr.doc
}

func (p *Parser) parseTopLevelForm() (ast.TopLevelForm, error) {
	pr, err := p.parsePrelim()
	if err != nil {
		return nil, err
	}

	start := p.here().Begin()

	switch {
	case p.isKeyword("use"):
		return p.parseUseStmt(start)
	case p.isKeyword("struct"):
		return p.parseStructDef(start, pr)
	case p.isKeyword("enum"):
		return p.parseEnumDef(start, pr)
	case p.isKeyword("type"):
		return p.parseTypeAlias(start, pr)
	case p.isKeyword("dispatch"):
		return p.parseDispatchStmt(start)
	case p.isKeyword("inject"):
		return p.parseInjection(start)
	default:
		return nil, p.errorf("expected a top-level form (struct, enum, type, use, dispatch, inject), got %s", p.describeCur())
	}
}

func (p *Parser) parsePath() (ast.Path, error) {
	var path ast.Path

	if p.isPunct(token.PathSep) {
		path.Absolute = true
		p.advance()
	}

	for p.isKeyword("super") {
		path.SuperCount++
		p.advance()

		if _, err := p.expectPunct(token.PathSep); err != nil {
			return path, err
		}
	}

	for {
		id, err := p.expectIdent()
		if err != nil {
			return path, err
		}

		path.Segments = append(path.Segments, id.Value)

		if p.isPunct(token.PathSep) && p.peek(1) != nil && p.peek(1).TokenType() == token.TypeIdent {
			p.advance()

			continue
		}

		break
	}

	return path, nil
}

func (p *Parser) parseUseStmt(start token.Pos) (*ast.UseStmt, error) {
	if err := p.expectKeyword("use"); err != nil {
		return nil, err
	}

	target, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	alias := target.Last()

	if p.isKeyword("as") {
		p.advance()

		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		alias = id.Value
	}

	u := &ast.UseStmt{Target: target, Alias: alias}
	u.BeginPos = start
	u.EndPos = p.here().Begin()

	return u, nil
}

func (p *Parser) parseTypeParams() ([]ast.TypeParam, error) {
	if !p.isPunct(token.AngleOpen) {
		return nil, nil
	}

	p.advance()

	var params []ast.TypeParam

	for {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		tp := ast.TypeParam{Name: id.Value}
		tp.BeginPos = id.Begin()
		tp.EndPos = id.End()
		params = append(params, tp)

		if p.isPunct(token.Comma) {
			p.advance()

			continue
		}

		break
	}

	if _, err := p.expectPunct(token.AngleClose); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *Parser) parseStructDef(start token.Pos, pr prelim) (*ast.StructDef, error) {
	if err := p.expectKeyword("struct"); err != nil {
		return nil, err
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	tps, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}

	body, err := p.parseStructBody()
	if err != nil {
		return nil, err
	}

	d := &ast.StructDef{Name: name.Value, TypeParams: tps, Body: body}
	pr.apply(&d.Base)
	d.BeginPos = start
	d.EndPos = p.here().Begin()

	return d, nil
}

func (p *Parser) parseEnumDef(start token.Pos, pr prelim) (*ast.EnumDef, error) {
	if err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(token.ParenOpen); err != nil {
		return nil, err
	}

	// the base kind is one of the reserved type keywords, so expectIdent
	// (which rejects reserved words) cannot be used here.
	kindTok, ok := p.cur().(*token.Ident)
	if !ok || (kindTok.Value != string(ast.EnumBaseString) && numKeywords[kindTok.Value] == "") {
		return nil, p.errorf("expected an enum base kind, got %s", p.describeCur())
	}

	p.advance()

	if _, err := p.expectPunct(token.ParenClose); err != nil {
		return nil, err
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	body, err := p.parseEnumBody(ast.EnumBaseKind(kindTok.Value))
	if err != nil {
		return nil, err
	}

	d := &ast.EnumDef{Name: name.Value, Body: body}
	pr.apply(&d.Base)
	d.BeginPos = start
	d.EndPos = p.here().Begin()

	return d, nil
}

func (p *Parser) parseTypeAlias(start token.Pos, pr prelim) (*ast.TypeAlias, error) {
	if err := p.expectKeyword("type"); err != nil {
		return nil, err
	}

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	tps, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(token.Assign); err != nil {
		return nil, err
	}

	val, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	d := &ast.TypeAlias{Name: name.Value, TypeParams: tps, Value: val}
	pr.apply(&d.Base)
	d.BeginPos = start
	d.EndPos = p.here().Begin()

	return d, nil
}

func (p *Parser) parseResourceLocation() (ast.ResourceLocation, error) {
	t := p.cur()
	if t == nil || t.TokenType() != token.TypeResLoc {
		return ast.ResourceLocation{}, p.errorf("expected a resource location, got %s", p.describeCur())
	}

	rl := t.(*token.ResLoc)
	p.advance()

	return ast.ResourceLocation{Namespace: rl.Namespace, Path: rl.Path}, nil
}

func (p *Parser) parseDispatchStmt(start token.Pos) (*ast.DispatchStmt, error) {
	if err := p.expectKeyword("dispatch"); err != nil {
		return nil, err
	}

	registry, err := p.parseResourceLocation()
	if err != nil {
		return nil, err
	}

	keys, err := p.parseStaticKeyList()
	if err != nil {
		return nil, err
	}

	if err := p.expectKeyword("to"); err != nil {
		return nil, err
	}

	target, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	d := &ast.DispatchStmt{Registry: registry, Keys: keys, Target: target}
	d.BeginPos = start
	d.EndPos = p.here().Begin()

	return d, nil
}

func (p *Parser) parseInjection(start token.Pos) (*ast.Injection, error) {
	if err := p.expectKeyword("inject"); err != nil {
		return nil, err
	}

	isEnum := false

	switch {
	case p.isKeyword("struct"):
		p.advance()
	case p.isKeyword("enum"):
		isEnum = true
		p.advance()
	default:
		return nil, p.errorf("expected 'struct' or 'enum' after 'inject', got %s", p.describeCur())
	}

	registry, err := p.parseResourceLocation()
	if err != nil {
		return nil, err
	}

	keys, err := p.parseStaticKeyList()
	if err != nil {
		return nil, err
	}

	inj := &ast.Injection{IsEnum: isEnum, Registry: registry, Keys: keys}

	if isEnum {
		body, err := p.parseEnumBody(ast.EnumBaseString)
		if err != nil {
			return nil, err
		}

		inj.Variants = body.Variants
	} else {
		body, err := p.parseStructBody()
		if err != nil {
			return nil, err
		}

		inj.Fields = body.Fields
	}

	inj.BeginPos = start
	inj.EndPos = p.here().Begin()

	return inj, nil
}

// parseStaticKeyList parses the "[key, key][key]..." suffix on dispatch and
// inject statements: each bracket pair may hold one or more comma-separated
// keys, all of which register the same target (spec.md §8 scenario 3,
// "dispatch minecraft:r[uniform, %none] to ...").
func (p *Parser) parseStaticKeyList() ([]ast.StaticKey, error) {
	var keys []ast.StaticKey

	for p.isPunct(token.BracketOpen) {
		p.advance()

		for {
			key, err := p.parseStaticKey()
			if err != nil {
				return nil, err
			}

			keys = append(keys, key)

			if p.isPunct(token.Comma) {
				p.advance()

				continue
			}

			break
		}

		if _, err := p.expectPunct(token.BracketClose); err != nil {
			return nil, err
		}
	}

	return keys, nil
}

func (p *Parser) parseStaticKey() (ast.StaticKey, error) {
	if p.isPunct(token.Percent) {
		p.advance()

		id, err := p.expectIdent()
		if err != nil {
			return ast.StaticKey{}, err
		}

		switch id.Value {
		case "fallback":
			return ast.StaticKey{Kind: ast.StaticFallback}, nil
		case "none":
			return ast.StaticKey{Kind: ast.StaticNone}, nil
		case "unknown":
			return ast.StaticKey{Kind: ast.StaticUnknown}, nil
		default:
			return ast.StaticKey{}, token.NewPosError(id, "expected %fallback, %none, or %unknown")
		}
	}

	t := p.cur()
	if t == nil {
		return ast.StaticKey{}, p.errorf("expected a static key, got end of file")
	}

	switch v := t.(type) {
	case *token.Ident:
		p.advance()

		return ast.StaticKey{Kind: ast.StaticIdent, Text: v.Value}, nil
	case *token.String:
		p.advance()

		return ast.StaticKey{Kind: ast.StaticString, Text: v.Value}, nil
	case *token.ResLoc:
		p.advance()

		return ast.StaticKey{Kind: ast.StaticResLoc, ResLoc: ast.ResourceLocation{Namespace: v.Namespace, Path: v.Path}}, nil
	default:
		return ast.StaticKey{}, p.errorf("expected a static key, got %s", p.describeCur())
	}
}
