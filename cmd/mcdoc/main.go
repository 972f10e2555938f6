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

// Command mcdoc checks and queries mcdoc schema projects from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mcdoc-lang/mcdoc/ast"
	"github.com/mcdoc-lang/mcdoc/engine"
	"github.com/mcdoc-lang/mcdoc/token"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mcdoc",
		Short: "Load, check, and query mcdoc schema projects",
	}

	root.AddCommand(newCheckCmd(), newQueryCmd())

	return root
}

// anyIsUnsafe defaults to true: by default, "any" behaves identically to
// "unsafe" (spec.md §9). --any-is-unsafe=false opts into treating "any" as a
// strict, unconfigurable universal top type instead.
var anyIsUnsafe = true

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Load every .mcdoc file under dir and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, diags := engine.Load(args[0], engine.Options{AnyIsUnsafe: anyIsUnsafe})
			_ = eng

			for _, d := range diags {
				fmt.Fprint(os.Stderr, d.Explain())
			}

			if diags.HasErrors() {
				return fmt.Errorf("%d diagnostic(s) reported", len(diags))
			}

			fmt.Println("ok")

			return nil
		},
	}

	cmd.Flags().BoolVar(&anyIsUnsafe, "any-is-unsafe", true, "treat 'any' as unsafe (the default); set false for a strict universal top type")

	return cmd
}

func newQueryCmd() *cobra.Command {
	var pathStr string

	var indexFlags []string

	cmd := &cobra.Command{
		Use:   "query <dir>",
		Short: "Instantiate the declaration at --path and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, diags := engine.Load(args[0], engine.Options{AnyIsUnsafe: anyIsUnsafe})

			for _, d := range diags {
				fmt.Fprint(os.Stderr, d.Explain())
			}

			if diags.HasErrors() {
				return fmt.Errorf("project failed to load")
			}

			path := parseCLIPath(pathStr)

			typ, qdiags := eng.Instantiate(context.Background(), path, nil)
			for _, d := range qdiags {
				fmt.Fprint(os.Stderr, d.Explain())
			}

			if qdiags.HasErrors() {
				return fmt.Errorf("query failed")
			}

			for _, k := range indexFlags {
				st, ok := typ.(*ast.StructType)
				if !ok {
					return fmt.Errorf("--index %q: the type is not a struct", k)
				}

				typ = nil
				for _, f := range st.Fields {
					if nf, ok := f.(*ast.NamedField); ok && !nf.Key.IsComputed && nf.Key.Text == k {
						typ = nf.Type
					}
				}

				if typ == nil {
					return fmt.Errorf("--index %q: the struct has no such field", k)
				}
			}

			fmt.Println(ast.Print(wrapAsFile(eng.Simplify(typ))))

			return nil
		},
	}

	cmd.Flags().StringVar(&pathStr, "path", "", "canonical path of the declaration to query, e.g. ::foo::Bar")
	cmd.Flags().StringArrayVar(&indexFlags, "index", nil, "static index to apply, may be repeated")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func parseCLIPath(s string) ast.Path {
	s = strings.TrimPrefix(s, "::")

	return ast.NewPath(strings.Split(s, "::")...)
}

// wrapAsFile wraps a bare type expression in a synthetic File containing
// one anonymous "type alias" so ast.Print can render it for the query
// command's output.
func wrapAsFile(t ast.TypeExpr) *ast.File {
	alias := &ast.TypeAlias{Name: "_", Value: t}
	alias.BeginPos = token.Pos{}
	alias.EndPos = token.Pos{}

	return &ast.File{Forms: []ast.TopLevelForm{alias}}
}
