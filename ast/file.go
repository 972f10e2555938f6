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

// TypeParam is one generic parameter on a struct or type alias declaration.
type TypeParam struct {
	Base
	Name string
}

// TopLevelForm is any declaration or statement that may appear directly in
// a File (spec.md §3.2).
type TopLevelForm interface {
	token.Node
	topLevelFormNode()
}

// StructDef is "struct Name<T, U> { ...fields }".
type StructDef struct {
	Base
	Name       string
	TypeParams []TypeParam
	Body       *StructType
}

func (*StructDef) topLevelFormNode() {}

// EnumDef is "enum(kind) Name { ...variants }".
type EnumDef struct {
	Base
	Name string
	Body *EnumType
}

func (*EnumDef) topLevelFormNode() {}

// TypeAlias is "type Name<T> = TypeExpr".
type TypeAlias struct {
	Base
	Name       string
	TypeParams []TypeParam
	Value      TypeExpr
}

func (*TypeAlias) topLevelFormNode() {}

// UseStmt is "use ::foo::bar" or "use ::foo::bar as baz", binding an alias
// (the last path segment, or the explicit "as" name) in the current
// module's import map.
type UseStmt struct {
	Base
	Target Path
	Alias  string
}

func (*UseStmt) topLevelFormNode() {}

// DispatchStmt is "dispatch registry[key] to Type", registering Type under
// key in the named global dispatch registry.
type DispatchStmt struct {
	Base
	Registry ResourceLocation
	Keys     []StaticKey
	Target   TypeExpr
}

func (*DispatchStmt) topLevelFormNode() {}

// Injection is "inject struct registry[key] { ...fields }" or the enum
// form, queuing extra fields/variants to be merged into a dispatched type
// once all files are loaded (spec.md §3.2.3).
type Injection struct {
	Base
	IsEnum   bool
	Registry ResourceLocation
	Keys     []StaticKey
	Fields   []StructField
	Variants []EnumVariant
}

func (*Injection) topLevelFormNode() {}

// File is one parsed mcdoc source file: a sequence of top-level forms. The
// parser does not record a module-level doc comment; a leading doc-comment
// block attaches to the first form.
type File struct {
	Base
	// Path is the source file's OS path, as given to the parser.
	Path  string
	Forms []TopLevelForm
}
