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
	"fmt"
	"strconv"
	"strings"
)

// Print renders a File back into mcdoc source text. It does not reproduce
// the original byte-for-byte (whitespace and comment placement is
// normalized). The round-trip tests check that printing the re-parsed
// output yields the same text again. The re-parsed File is not always
// structurally equal to f: attribute values (only attribute names are
// printed), attributes and doc comments on enum variants and spread fields,
// and the suffix of a typed number literal are not printed; a float with an
// integral value prints without a fraction and re-parses as an integer; a
// list whose element is byte, int or long prints as a primitive array; a
// union used as a list element or nested in another union prints without
// parentheses; and quoted field keys print unquoted.
func Print(f *File) string {
	var p printer

	for _, form := range f.Forms {
		p.topLevel(form)
	}

	return p.b.String()
}

// sourcePath renders a Path the way it was written: a leading "::" only
// for an absolute path, then any "super::" hops, then the segments.
func sourcePath(path Path) string {
	s := strings.Repeat("super::", path.SuperCount) + strings.Join(path.Segments, "::")
	if path.Absolute {
		return "::" + s
	}

	return s
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) indent() {
	p.b.WriteString(strings.Repeat("    ", p.depth))
}

func (p *printer) attrsAndDoc(attrs []Attribute, doc string) {
	for _, a := range attrs {
		p.indent()
		p.b.WriteString("#[")
		p.b.WriteString(a.Name)
		p.b.WriteString("]\n")
	}

	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			p.indent()
			p.b.WriteString("/// ")
			p.b.WriteString(line)
			p.b.WriteString("\n")
		}
	}
}

func (p *printer) topLevel(f TopLevelForm) {
	switch v := f.(type) {
	case *StructDef:
		p.attrsAndDoc(v.Attrs(), v.Doc())
		p.indent()
		p.b.WriteString("struct ")
		p.b.WriteString(v.Name)
		p.typeParams(v.TypeParams)
		p.b.WriteString(" ")
		p.typeExpr(v.Body)
		p.b.WriteString("\n")
	case *EnumDef:
		p.attrsAndDoc(v.Attrs(), v.Doc())
		p.indent()
		p.b.WriteString("enum(")
		p.b.WriteString(string(v.Body.BaseKind))
		p.b.WriteString(") ")
		p.b.WriteString(v.Name)
		p.b.WriteString(" ")
		p.typeExpr(v.Body)
		p.b.WriteString("\n")
	case *TypeAlias:
		p.attrsAndDoc(v.Attrs(), v.Doc())
		p.indent()
		p.b.WriteString("type ")
		p.b.WriteString(v.Name)
		p.typeParams(v.TypeParams)
		p.b.WriteString(" = ")
		p.typeExpr(v.Value)
		p.b.WriteString("\n")
	case *UseStmt:
		p.indent()
		p.b.WriteString("use ")
		p.b.WriteString(sourcePath(v.Target))

		if v.Alias != "" && v.Alias != v.Target.Last() {
			p.b.WriteString(" as ")
			p.b.WriteString(v.Alias)
		}

		p.b.WriteString("\n")
	case *DispatchStmt:
		p.indent()
		p.b.WriteString("dispatch ")
		p.b.WriteString(v.Registry.String())
		p.indices(keysToIndices(v.Keys))
		p.b.WriteString(" to ")
		p.typeExpr(v.Target)
		p.b.WriteString("\n")
	case *Injection:
		p.indent()
		p.b.WriteString("inject ")

		if v.IsEnum {
			p.b.WriteString("enum ")
		} else {
			p.b.WriteString("struct ")
		}

		p.b.WriteString(v.Registry.String())
		p.indices(keysToIndices(v.Keys))

		if v.IsEnum {
			p.b.WriteString(" ")
			p.typeExpr(&EnumType{Variants: v.Variants})
			p.b.WriteString("\n")

			return
		}

		p.b.WriteString(" {\n")
		p.depth++

		for _, field := range v.Fields {
			p.structField(field)
		}

		p.depth--
		p.indent()
		p.b.WriteString("}\n")
	default:
		panic(fmt.Sprintf("ast.Print: unhandled top-level form %T", f))
	}
}

func keysToIndices(keys []StaticKey) []Index {
	out := make([]Index, len(keys))
	for i, k := range keys {
		out[i] = &StaticIndex{Key: k}
	}

	return out
}

func (p *printer) typeParams(tps []TypeParam) {
	if len(tps) == 0 {
		return
	}

	p.b.WriteString("<")

	for i, tp := range tps {
		if i > 0 {
			p.b.WriteString(", ")
		}

		p.b.WriteString(tp.Name)
	}

	p.b.WriteString(">")
}

func (p *printer) indices(idxs []Index) {
	for _, idx := range idxs {
		p.b.WriteString("[")

		switch v := idx.(type) {
		case *StaticIndex:
			p.b.WriteString(v.Key.String())
		case *DynamicIndex:
			// A single ident/string hop reads back as a plain static key
			// unless wrapped in its own bracket ("[[type]]"); a "%key"/
			// "%parent" lead-in or a multi-hop "::" chain is unambiguous
			// without it.
			needsBracket := len(v.Accessor) == 1 &&
				(v.Accessor[0].Kind == AccessorIdent || v.Accessor[0].Kind == AccessorString)

			if needsBracket {
				p.b.WriteString("[")
			}

			for i, acc := range v.Accessor {
				if i > 0 {
					p.b.WriteString("::")
				}

				switch acc.Kind {
				case AccessorKeyMarker:
					p.b.WriteString("%key")
				case AccessorParent:
					p.b.WriteString("%parent")
				default:
					p.b.WriteString(acc.Text)
				}
			}

			if needsBracket {
				p.b.WriteString("]")
			}
		}

		p.b.WriteString("]")
	}
}

func (p *printer) rangeSuffix(r *Range) {
	if r == nil {
		return
	}

	p.b.WriteString("@")

	if r.HasLower() {
		if r.IsFloat {
			p.b.WriteString(strconv.FormatFloat(r.LowerF(), 'g', -1, 64))
		} else {
			p.b.WriteString(strconv.FormatInt(*r.LoInt, 10))
		}
	}

	if r.ExclusiveLower {
		p.b.WriteString("<")
	}

	p.b.WriteString("..")

	if r.ExclusiveUpper {
		p.b.WriteString("<")
	}

	if r.HasUpper() {
		if r.IsFloat {
			p.b.WriteString(strconv.FormatFloat(r.UpperF(), 'g', -1, 64))
		} else {
			p.b.WriteString(strconv.FormatInt(*r.HiInt, 10))
		}
	}
}

func (p *printer) typeExpr(t TypeExpr) {
	switch v := t.(type) {
	case *AnyType:
		p.b.WriteString("any")
	case *UnsafeType:
		p.b.WriteString("unsafe")
	case *BooleanType:
		p.b.WriteString("boolean")
	case *StringType:
		p.b.WriteString("string")
		p.rangeSuffix(v.LenRange)
	case *LiteralBoolType:
		p.b.WriteString(strconv.FormatBool(v.Value))
	case *LiteralStringType:
		p.b.WriteString(strconv.Quote(v.Value))
	case *LiteralNumberType:
		p.numLiteral(v.Value)
	case *NumericType:
		p.b.WriteString(string(v.Kind))
		p.rangeSuffix(v.ValueRange)
	case *PrimArrayType:
		p.b.WriteString(string(v.ElemKind))
		p.rangeSuffix(v.ElemRange)
		p.b.WriteString("[]")
		p.rangeSuffix(v.LenRange)
	case *ListType:
		p.typeExpr(v.Elem)
		p.b.WriteString("[]")
		p.rangeSuffix(v.LenRange)
	case *TupleType:
		p.b.WriteString("[")

		for i, e := range v.Elems {
			if i > 0 {
				p.b.WriteString(", ")
			}

			p.typeExpr(e)
		}

		if len(v.Elems) == 1 {
			p.b.WriteString(",")
		}

		p.b.WriteString("]")
	case *StructType:
		p.b.WriteString("{\n")
		p.depth++

		for _, field := range v.Fields {
			p.structField(field)
		}

		p.depth--
		p.indent()
		p.b.WriteString("}")
	case *EnumType:
		p.b.WriteString("{\n")
		p.depth++

		for _, variant := range v.Variants {
			p.indent()
			p.b.WriteString(variant.Name)
			p.b.WriteString(" = ")

			if variant.StrValue != nil {
				p.b.WriteString(strconv.Quote(*variant.StrValue))
			} else if variant.NumValue != nil {
				p.numLiteral(*variant.NumValue)
			}

			p.b.WriteString(",\n")
		}

		p.depth--
		p.indent()
		p.b.WriteString("}")
	case *ReferenceType:
		p.b.WriteString(sourcePath(v.Path))

		if len(v.TypeArgs) > 0 {
			p.b.WriteString("<")

			for i, a := range v.TypeArgs {
				if i > 0 {
					p.b.WriteString(", ")
				}

				p.typeExpr(a)
			}

			p.b.WriteString(">")
		}
	case *DispatcherType:
		p.b.WriteString(v.Registry.String())
		p.indices(v.Indices)
	case *UnionType:
		for i, m := range v.Members {
			if i > 0 {
				p.b.WriteString(" | ")
			}

			p.typeExpr(m)
		}

		if len(v.Members) == 0 {
			p.b.WriteString("(|)")
		}
	case *IndexedType:
		p.typeExpr(v.BaseExpr)
		p.indices(v.Indices)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled type expr %T", t))
	}
}

func (p *printer) numLiteral(n TypedNumber) {
	if n.IsFloat {
		p.b.WriteString(strconv.FormatFloat(n.FltVal, 'g', -1, 64))
	} else {
		p.b.WriteString(strconv.FormatInt(n.IntVal, 10))
	}
}

func (p *printer) structField(f StructField) {
	switch v := f.(type) {
	case *NamedField:
		p.attrsAndDoc(v.Attrs(), v.Doc())
		p.indent()

		if v.Key.IsComputed {
			p.b.WriteString("[")
			p.typeExpr(v.Key.Computed)
			p.b.WriteString("]")
		} else {
			p.b.WriteString(v.Key.Text)
		}

		if v.Optional {
			p.b.WriteString("?")
		}

		p.b.WriteString(": ")
		p.typeExpr(v.Type)
		p.b.WriteString(",\n")
	case *SpreadField:
		p.indent()
		p.b.WriteString("...")
		p.typeExpr(v.Type)
		p.b.WriteString(",\n")
	}
}
