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

package symtab

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/diag"
	"github.com/mcdoc-lang/mcdoc/parser"
	"github.com/mcdoc-lang/mcdoc/token"
)

// LoadDir walks root for "*.mcdoc" files and loads every one of them into a
// fresh Table. A file's canonical module path is its directory chain
// relative to root, plus its own file name stem -- except "mod.mcdoc",
// whose declarations collapse into the directory's own module path,
// mirroring how the teacher project merged "mod"-named project files into
// their parent (see ambient-stack notes in the project documentation).
func LoadDir(root string) (*Table, diag.List) {
	t := NewTable()

	var parseDiags diag.List

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".mcdoc") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		modPath := modulePathFor(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		file, perr := parser.ParseFile(rel, f)
		if perr != nil {
			parseDiags.Add(wrapParseError(rel, perr))

			return nil
		}

		t.AddFile(modPath, file)

		return nil
	})
	if err != nil {
		parseDiags.Add(diag.NewError(diag.UnknownPath, token.NewNode(token.Pos{File: root}, token.Pos{File: root}), err.Error()))
	}

	all := append(parseDiags, t.Diags...)

	return t, all
}

func wrapParseError(file string, err error) diag.Diagnostic {
	var posErr *token.PosError

	if pe, ok := err.(*token.PosError); ok {
		posErr = pe
	} else {
		posErr = token.NewPosError(token.NewNode(token.Pos{File: file}, token.Pos{File: file}), err.Error())
	}

	return diag.New(diag.Error, diag.UnknownPath, posErr)
}

// modulePathFor derives a canonical module Path from a file path relative
// to the load root: directory segments become path segments, and the file
// stem becomes the final segment unless the file is named "mod.mcdoc".
func modulePathFor(rel string) ast.Path {
	rel = filepath.ToSlash(rel)
	dir, file := filepath.Split(rel)
	dir = strings.Trim(dir, "/")

	var segments []string
	if dir != "" {
		segments = strings.Split(dir, "/")
	}

	stem := strings.TrimSuffix(file, ".mcdoc")
	if stem != "mod" {
		segments = append(segments, stem)
	}

	return ast.NewPath(segments...)
}
