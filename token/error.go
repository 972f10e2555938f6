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

package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	participlelexer "github.com/alecthomas/participle/v2/lexer"
)

// ErrDetail attaches a message to a specific source Node, so that a single
// PosError can point at several related locations (e.g. "declared here" and
// "duplicate here").
type ErrDetail struct {
	Node    Node
	Message string
}

func NewErrDetail(node Node, msg string) ErrDetail {
	return ErrDetail{Node: node, Message: msg}
}

// PosError represents a positional diagnostic with an optional cause and
// hint. Use Explain to render it for a terminal.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
}

// NewPosError creates a new PosError with the given root cause and optional
// extra details.
func NewPosError(node Node, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, ErrDetail{Node: node, Message: msg})
	tmp = append(tmp, details...)

	return &PosError{Details: tmp}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	if p.Cause == nil {
		return p.firstDetail().Message
	}

	return p.firstDetail().Message + ": " + p.Cause.Error()
}

// Explain returns a multi-line text suited to be printed into the console,
// pointing at the offending line of each detail.
func (p PosError) Explain() string {
	indent := 0

	for _, detail := range p.Details {
		if detail.Node == nil {
			continue
		}

		l := len(strconv.Itoa(detail.Node.Begin().Line))
		if l > indent {
			indent = l
		}
	}

	sb := &strings.Builder{}

	for i, detail := range p.Details {
		if detail.Node == nil {
			sb.WriteString(detail.Message)
			sb.WriteString("\n")

			continue
		}

		if i == 0 || (p.Details[i-1].Node != nil && detail.Node.Begin().File != p.Details[i-1].Node.Begin().File) {
			sb.WriteString(detail.Node.Begin().String())
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"d | %s\n", detail.Node.Begin().Line, detail.Message))

		if i < len(p.Details)-1 {
			sb.WriteString(strings.Repeat(" ", indent))
			sb.WriteString("...\n")
		}
	}

	if p.Hint != "" {
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s = hint: %s\n", "", p.Hint))
	}

	return sb.String()
}

// Explain takes a wrapped error chain and, if it recognizes a *PosError or a
// participle.Error inside it, explains it with file/line context. Otherwise
// it falls back to err.Error().
func Explain(err error) string {
	var posErr *PosError
	if errors.As(err, &posErr) {
		sb := &strings.Builder{}
		sb.WriteString("error: ")
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		sb.WriteString(posErr.Explain())

		return sb.String()
	}

	var participleErr participle.Error
	if errors.As(err, &participleErr) {
		return Explain(NewPosError(adapterNode{participleErr.Position()}, participleErr.Message()))
	}

	return err.Error()
}

// adapterNode lets a participle.Error (raised while parsing attribute value
// trees, see ast.ParseAttrValue) be rendered through the same Explain
// machinery as every other mcdoc diagnostic.
type adapterNode struct {
	pos participlelexer.Position
}

func (a adapterNode) Begin() Pos {
	return Pos{File: a.pos.Filename, Line: a.pos.Line, Col: a.pos.Column, Offset: a.pos.Offset}
}

func (a adapterNode) End() Pos {
	return Pos{File: a.pos.Filename, Line: a.pos.Line, Col: a.pos.Column, Offset: a.pos.Offset}
}
