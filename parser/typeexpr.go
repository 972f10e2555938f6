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
	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/token"
)

var numKeywords = map[string]ast.NumKind{
	"byte": ast.KindByte, "short": ast.KindShort, "int": ast.KindInt,
	"long": ast.KindLong, "float": ast.KindFloat, "double": ast.KindDouble,
}

// parseTypeExpr parses a full type expression, including top-level unions.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	start := p.here().Begin()

	first, err := p.parseSuffixedType()
	if err != nil {
		return nil, err
	}

	if !p.isPunct(token.Pipe) {
		return first, nil
	}

	members := []ast.TypeExpr{first}

	for p.isPunct(token.Pipe) {
		p.advance()

		m, err := p.parseSuffixedType()
		if err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	u := &ast.UnionType{Members: members}
	u.BeginPos = start
	u.EndPos = p.here().Begin()

	return u, nil
}

// parseSuffixedType parses one primary type followed by any chain of "[]"
// (list/array) or "[index]" suffixes.
func (p *Parser) parseSuffixedType() (ast.TypeExpr, error) {
	start := p.here().Begin()

	result, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}

	for p.isPunct(token.BracketOpen) {
		if p.isPunctAt(1, token.BracketClose) {
			p.advance()
			p.advance()

			lenRange, err := p.parseOptionalRange()
			if err != nil {
				return nil, err
			}

			if numeric, ok := result.(*ast.NumericType); ok && len(numeric.Attrs()) == 0 &&
				(numeric.Kind == ast.KindByte || numeric.Kind == ast.KindInt || numeric.Kind == ast.KindLong) {
				pa := &ast.PrimArrayType{ElemKind: numeric.Kind, ElemRange: numeric.ValueRange, LenRange: lenRange}
				pa.BeginPos = start
				pa.EndPos = p.here().Begin()
				result = pa

				continue
			}

			lt := &ast.ListType{Elem: result, LenRange: lenRange}
			lt.BeginPos = start
			lt.EndPos = p.here().Begin()
			result = lt

			continue
		}

		var indices []ast.Index

		for p.isPunct(token.BracketOpen) {
			p.advance()

			idxs, err := p.parseBracketIndices()
			if err != nil {
				return nil, err
			}

			indices = append(indices, idxs...)

			if _, err := p.expectPunct(token.BracketClose); err != nil {
				return nil, err
			}
		}

		it := &ast.IndexedType{BaseExpr: result, Indices: indices}
		it.BeginPos = start
		it.EndPos = p.here().Begin()
		result = it
	}

	return result, nil
}

func (p *Parser) parsePrimaryType() (ast.TypeExpr, error) {
	start := p.here().Begin()

	t := p.cur()
	if t == nil {
		return nil, p.errorf("expected a type expression, got end of file")
	}

	switch v := t.(type) {
	case *token.ResLoc:
		p.advance()

		registry := ast.ResourceLocation{Namespace: v.Namespace, Path: v.Path}

		var indices []ast.Index

		for p.isPunct(token.BracketOpen) {
			p.advance()

			idxs, err := p.parseBracketIndices()
			if err != nil {
				return nil, err
			}

			indices = append(indices, idxs...)

			if _, err := p.expectPunct(token.BracketClose); err != nil {
				return nil, err
			}
		}

		d := &ast.DispatcherType{Registry: registry, Indices: indices}
		d.BeginPos = start
		d.EndPos = p.here().Begin()

		return d, nil

	case *token.String:
		p.advance()

		s := &ast.LiteralStringType{Value: v.Value}
		s.BeginPos = start
		s.EndPos = p.here().Begin()

		return s, nil

	case *token.Int:
		p.advance()

		n := &ast.LiteralNumberType{Value: ast.TypedNumber{Kind: ast.KindInt, IntVal: v.Value}}
		n.BeginPos = start
		n.EndPos = p.here().Begin()

		return n, nil

	case *token.Float:
		p.advance()

		n := &ast.LiteralNumberType{Value: ast.TypedNumber{Kind: ast.KindDouble, IsFloat: true, FltVal: v.Value}}
		n.BeginPos = start
		n.EndPos = p.here().Begin()

		return n, nil

	case *token.TypedNum:
		p.advance()

		kind := suffixKind(v.Suffix)
		n := &ast.LiteralNumberType{Value: ast.TypedNumber{Kind: kind, IsFloat: v.IsFloat, IntVal: v.IntVal, FltVal: v.FltVal}}
		n.BeginPos = start
		n.EndPos = p.here().Begin()

		return n, nil

	case *token.Punct:
		switch v.Value {
		case token.BracketOpen:
			return p.parseTupleType(start)
		case token.BraceOpen:
			st, err := p.parseStructBody()
			if err != nil {
				return nil, err
			}

			st.BeginPos = start
			st.EndPos = p.here().Begin()

			return st, nil
		case token.ParenOpen:
			return p.parseParenUnion(start)
		}

		return nil, p.errorf("expected a type expression, got %s", p.describeCur())

	case *token.Ident:
		switch v.Value {
		case "any":
			p.advance()

			a := &ast.AnyType{}
			a.BeginPos = start
			a.EndPos = p.here().Begin()

			return a, nil
		case "unsafe":
			p.advance()

			u := &ast.UnsafeType{}
			u.BeginPos = start
			u.EndPos = p.here().Begin()

			return u, nil
		case "boolean":
			p.advance()

			b := &ast.BooleanType{}
			b.BeginPos = start
			b.EndPos = p.here().Begin()

			return b, nil
		case "true", "false":
			p.advance()

			lb := &ast.LiteralBoolType{Value: v.Value == "true"}
			lb.BeginPos = start
			lb.EndPos = p.here().Begin()

			return lb, nil
		case "string":
			p.advance()

			rg, err := p.parseOptionalRange()
			if err != nil {
				return nil, err
			}

			st := &ast.StringType{LenRange: rg}
			st.BeginPos = start
			st.EndPos = p.here().Begin()

			return st, nil
		}

		if kind, ok := numKeywords[v.Value]; ok {
			p.advance()

			rg, err := p.parseOptionalRange()
			if err != nil {
				return nil, err
			}

			nt := &ast.NumericType{Kind: kind, ValueRange: rg}
			nt.BeginPos = start
			nt.EndPos = p.here().Begin()

			return nt, nil
		}

		return p.parseReferenceType(start)

	default:
		return nil, p.errorf("expected a type expression, got %s", p.describeCur())
	}
}

func suffixKind(s token.NumSuffix) ast.NumKind {
	switch s {
	case token.SuffixByte:
		return ast.KindByte
	case token.SuffixShort:
		return ast.KindShort
	case token.SuffixLong:
		return ast.KindLong
	case token.SuffixFloat:
		return ast.KindFloat
	case token.SuffixDouble:
		return ast.KindDouble
	default:
		return ast.KindInt
	}
}

func (p *Parser) parseReferenceType(start token.Pos) (ast.TypeExpr, error) {
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}

	var args []ast.TypeExpr

	if p.isPunct(token.AngleOpen) {
		p.advance()

		for {
			a, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, a)

			if p.isPunct(token.Comma) {
				p.advance()

				continue
			}

			break
		}

		if _, err := p.expectPunct(token.AngleClose); err != nil {
			return nil, err
		}
	}

	r := &ast.ReferenceType{Path: path, TypeArgs: args}
	r.BeginPos = start
	r.EndPos = p.here().Begin()

	return r, nil
}

// parseTupleType parses "[T, U, ...]". A trailing comma is what makes this
// a tuple rather than a list: "[int, string]" and "[int,]" are tuples (two
// elements, and one element with an explicit trailing comma), but "[int]"
// with no comma at all is just a list of int (a ListType, whereas "int[]"
// parses as a PrimArrayType) — the trailing comma is the only thing that
// disambiguates a
// one-element tuple from a parenthesized-looking list.
func (p *Parser) parseTupleType(start token.Pos) (ast.TypeExpr, error) {
	if _, err := p.expectPunct(token.BracketOpen); err != nil {
		return nil, err
	}

	if p.isPunct(token.BracketClose) {
		p.advance()
		tt := &ast.TupleType{}
		tt.BeginPos = start
		tt.EndPos = p.here().Begin()

		return tt, nil
	}

	var elems []ast.TypeExpr

	trailingComma := false

	for {
		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, elem)
		trailingComma = false

		if p.isPunct(token.Comma) {
			p.advance()

			trailingComma = true

			if p.isPunct(token.BracketClose) {
				break
			}

			continue
		}

		break
	}

	if _, err := p.expectPunct(token.BracketClose); err != nil {
		return nil, err
	}

	end := p.here().Begin()

	if len(elems) == 1 && !trailingComma {
		lt := &ast.ListType{Elem: elems[0]}
		lt.BeginPos = start
		lt.EndPos = end

		return lt, nil
	}

	tt := &ast.TupleType{Elems: elems}
	tt.BeginPos = start
	tt.EndPos = end

	return tt, nil
}

// parseParenUnion parses a parenthesized union used for grouping, e.g.
// "(A | B)[]", and the empty-union literal "()" / "(|)" for the bottom type.
func (p *Parser) parseParenUnion(start token.Pos) (ast.TypeExpr, error) {
	if _, err := p.expectPunct(token.ParenOpen); err != nil {
		return nil, err
	}

	if p.isPunct(token.Pipe) {
		p.advance()
	}

	if p.isPunct(token.ParenClose) {
		p.advance()

		u := &ast.UnionType{}
		u.BeginPos = start
		u.EndPos = p.here().Begin()

		return u, nil
	}

	inner, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(token.ParenClose); err != nil {
		return nil, err
	}

	return inner, nil
}

// parseOptionalRange parses an optional "@lo..hi" / "@lo..<hi" / "@<lo..hi"
// suffix.
func (p *Parser) parseOptionalRange() (*ast.Range, error) {
	if !p.isPunct(token.At) {
		return nil, nil
	}

	p.advance()

	rg := &ast.Range{}

	if p.isPunct(token.AngleOpen) {
		p.advance()
		rg.ExclusiveLower = true
	}

	lo, hasLo, isFloat, err := p.parseRangeNumber()
	if err != nil {
		return nil, err
	}

	if hasLo {
		rg.IsFloat = isFloat
		setRangeBound(rg, lo, isFloat, true)
	}

	switch {
	case p.isPunct(token.RangeOpen):
		p.advance()

		rg.ExclusiveLower = true
		rg.ExclusiveUpper = true
	case p.isPunct(token.RangeOpenLo):
		p.advance()

		rg.ExclusiveLower = true
	case p.isPunct(token.RangeOpenHi):
		p.advance()

		rg.ExclusiveUpper = true
	case p.isPunct(token.RangeClosed):
		p.advance()
	default:
		return nil, p.errorf("expected a range operator, got %s", p.describeCur())
	}

	hi, hasHi, isFloatHi, err := p.parseRangeNumber()
	if err != nil {
		return nil, err
	}

	if hasHi {
		if hasLo && isFloatHi != isFloat {
			return nil, p.errorf("range bounds must both be int or both be float")
		}

		rg.IsFloat = rg.IsFloat || isFloatHi
		setRangeBound(rg, hi, isFloatHi, false)
	}

	return rg, nil
}

func setRangeBound(rg *ast.Range, v float64, isFloat bool, lower bool) {
	if isFloat {
		f := v
		if lower {
			rg.LoFlt = &f
		} else {
			rg.HiFlt = &f
		}

		return
	}

	i := int64(v)
	if lower {
		rg.LoInt = &i
	} else {
		rg.HiInt = &i
	}
}

// parseRangeNumber parses an optional signed int or float literal at the
// current position, as used for range bounds.
func (p *Parser) parseRangeNumber() (value float64, present bool, isFloat bool, err error) {
	t := p.cur()
	if t == nil {
		return 0, false, false, nil
	}

	switch v := t.(type) {
	case *token.Int:
		p.advance()

		return float64(v.Value), true, false, nil
	case *token.Float:
		p.advance()

		return v.Value, true, true, nil
	default:
		return 0, false, false, nil
	}
}

func (p *Parser) parseStructBody() (*ast.StructType, error) {
	if _, err := p.expectPunct(token.BraceOpen); err != nil {
		return nil, err
	}

	st := &ast.StructType{}

	for !p.isPunct(token.BraceClose) {
		field, err := p.parseStructField()
		if err != nil {
			return nil, err
		}

		st.Fields = append(st.Fields, field)

		if p.isPunct(token.Comma) {
			p.advance()
		}
	}

	if _, err := p.expectPunct(token.BraceClose); err != nil {
		return nil, err
	}

	return st, nil
}

func (p *Parser) parseStructField() (ast.StructField, error) {
	pr, err := p.parsePrelim()
	if err != nil {
		return nil, err
	}

	start := p.here().Begin()

	if p.isPunct(token.Ellipsis) {
		p.advance()

		typ, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		sf := &ast.SpreadField{Type: typ}
		pr.apply(&sf.Base)
		sf.BeginPos = start
		sf.EndPos = p.here().Begin()

		return sf, nil
	}

	key, err := p.parseFieldKey()
	if err != nil {
		return nil, err
	}

	optional := false
	if p.isPunct(token.Question) {
		p.advance()

		optional = true
	}

	if _, err := p.expectPunct(token.Colon); err != nil {
		return nil, err
	}

	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	nf := &ast.NamedField{Key: key, Optional: optional, Type: typ}
	pr.apply(&nf.Base)
	nf.BeginPos = start
	nf.EndPos = p.here().Begin()

	return nf, nil
}

func (p *Parser) parseFieldKey() (ast.FieldKey, error) {
	t := p.cur()
	if t == nil {
		return ast.FieldKey{}, p.errorf("expected a field key, got end of file")
	}

	switch v := t.(type) {
	case *token.Ident:
		p.advance()

		return ast.FieldKey{Text: v.Value}, nil
	case *token.String:
		p.advance()

		return ast.FieldKey{Text: v.Value}, nil
	case *token.Punct:
		if v.Value == token.BracketOpen {
			p.advance()

			typ, err := p.parseTypeExpr()
			if err != nil {
				return ast.FieldKey{}, err
			}

			if _, err := p.expectPunct(token.BracketClose); err != nil {
				return ast.FieldKey{}, err
			}

			return ast.FieldKey{IsComputed: true, Computed: typ}, nil
		}
	}

	return ast.FieldKey{}, p.errorf("expected a field key, got %s", p.describeCur())
}

func (p *Parser) parseEnumBody(kind ast.EnumBaseKind) (*ast.EnumType, error) {
	if _, err := p.expectPunct(token.BraceOpen); err != nil {
		return nil, err
	}

	et := &ast.EnumType{BaseKind: kind}

	for !p.isPunct(token.BraceClose) {
		pr, err := p.parsePrelim()
		if err != nil {
			return nil, err
		}

		start := p.here().Begin()

		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(token.Assign); err != nil {
			return nil, err
		}

		ev := ast.EnumVariant{Name: name.Value}

		if kind == ast.EnumBaseString {
			s := p.cur()
			str, ok := s.(*token.String)
			if !ok {
				return nil, p.errorf("expected a string literal for enum variant %q, got %s", name.Value, p.describeCur())
			}

			p.advance()
			v := str.Value
			ev.StrValue = &v
		} else {
			num, err := p.parseEnumNumberValue(kind)
			if err != nil {
				return nil, err
			}

			ev.NumValue = &num
		}

		pr.apply(&ev.Base)
		ev.BeginPos = start
		ev.EndPos = p.here().Begin()
		et.Variants = append(et.Variants, ev)

		if p.isPunct(token.Comma) {
			p.advance()
		}
	}

	if _, err := p.expectPunct(token.BraceClose); err != nil {
		return nil, err
	}

	return et, nil
}

func (p *Parser) parseEnumNumberValue(kind ast.EnumBaseKind) (ast.TypedNumber, error) {
	nk := ast.NumKind(kind)

	switch v := p.cur().(type) {
	case *token.Int:
		p.advance()

		return ast.TypedNumber{Kind: nk, IntVal: v.Value}, nil
	case *token.Float:
		p.advance()

		return ast.TypedNumber{Kind: nk, IsFloat: true, FltVal: v.Value}, nil
	case *token.TypedNum:
		p.advance()

		return ast.TypedNumber{Kind: nk, IsFloat: v.IsFloat, IntVal: v.IntVal, FltVal: v.FltVal}, nil
	default:
		return ast.TypedNumber{}, p.errorf("expected a numeric literal, got %s", p.describeCur())
	}
}

// parseBracketIndices parses one or more comma-separated indices within a
// single already-opened "[...]" bracket, e.g. the two keys of
// "minecraft:r[uniform, %none]".
func (p *Parser) parseBracketIndices() ([]ast.Index, error) {
	var indices []ast.Index

	for {
		idx, err := p.parseIndex()
		if err != nil {
			return nil, err
		}

		indices = append(indices, idx)

		if p.isPunct(token.Comma) {
			p.advance()

			continue
		}

		break
	}

	return indices, nil
}

// parseIndex parses the content of one "[...]" bracket (without the
// brackets themselves) as either a StaticIndex or a DynamicIndex. A nested
// "[accessor]" (e.g. the "[type]" in "minecraft:r[[type]]") is a dynamic
// index built from a field-name accessor chain, distinguishing it from a
// plain static key of the same name.
func (p *Parser) parseIndex() (ast.Index, error) {
	start := p.here().Begin()

	if p.isPunct(token.BracketOpen) {
		p.advance()

		first, err := p.parseAccessorHop()
		if err != nil {
			return nil, err
		}

		accessors := []ast.AccessorKey{first}

		for p.isPunct(token.PathSep) {
			p.advance()

			acc, err := p.parseAccessorHop()
			if err != nil {
				return nil, err
			}

			accessors = append(accessors, acc)
		}

		if _, err := p.expectPunct(token.BracketClose); err != nil {
			return nil, err
		}

		di := &ast.DynamicIndex{Accessor: accessors}
		di.BeginPos = start
		di.EndPos = p.here().Begin()

		return di, nil
	}

	if p.isPunct(token.Percent) {
		save := p.pos
		p.advance()

		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		switch id.Value {
		case "fallback", "none", "unknown":
			p.pos = save

			key, err := p.parseStaticKey()
			if err != nil {
				return nil, err
			}

			si := &ast.StaticIndex{Key: key}
			si.BeginPos = start
			si.EndPos = p.here().Begin()

			return si, nil
		case "key", "parent":
			kind := ast.AccessorKeyMarker
			if id.Value == "parent" {
				kind = ast.AccessorParent
			}

			accessors := []ast.AccessorKey{{Kind: kind}}

			for p.isPunct(token.PathSep) {
				p.advance()

				acc, err := p.parseAccessorHop()
				if err != nil {
					return nil, err
				}

				accessors = append(accessors, acc)
			}

			di := &ast.DynamicIndex{Accessor: accessors}
			di.BeginPos = start
			di.EndPos = p.here().Begin()

			return di, nil
		default:
			return nil, token.NewPosError(id, "expected %fallback, %none, %unknown, %key, or %parent")
		}
	}

	// Not a "%..." form: could be a plain static key (single ident/string/
	// resource location) or the start of a dynamic accessor chain if
	// followed by "::".
	if p.isPunctAt(1, token.PathSep) {
		first, err := p.parseAccessorHop()
		if err != nil {
			return nil, err
		}

		accessors := []ast.AccessorKey{first}

		for p.isPunct(token.PathSep) {
			p.advance()

			acc, err := p.parseAccessorHop()
			if err != nil {
				return nil, err
			}

			accessors = append(accessors, acc)
		}

		di := &ast.DynamicIndex{Accessor: accessors}
		di.BeginPos = start
		di.EndPos = p.here().Begin()

		return di, nil
	}

	key, err := p.parseStaticKey()
	if err != nil {
		return nil, err
	}

	si := &ast.StaticIndex{Key: key}
	si.BeginPos = start
	si.EndPos = p.here().Begin()

	return si, nil
}

func (p *Parser) parseAccessorHop() (ast.AccessorKey, error) {
	t := p.cur()

	switch v := t.(type) {
	case *token.Ident:
		p.advance()

		return ast.AccessorKey{Kind: ast.AccessorIdent, Text: v.Value}, nil
	case *token.String:
		p.advance()

		return ast.AccessorKey{Kind: ast.AccessorString, Text: v.Value}, nil
	default:
		return ast.AccessorKey{}, p.errorf("expected an accessor segment, got %s", p.describeCur())
	}
}
