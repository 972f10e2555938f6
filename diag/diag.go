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

// Package diag defines the fixed set of diagnostic codes the engine can
// raise, plus the Diagnostic and List types used to collect them.
package diag

import "github.com/mcdoc-lang/mcdoc/token"

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}

	return "error"
}

// Code identifies the kind of problem a Diagnostic reports.
type Code string

const (
	DuplicateDeclaration           Code = "duplicate-declaration"
	DuplicateDispatchKey           Code = "duplicate-dispatch-key"
	UnknownPath                    Code = "unknown-path"
	UnknownDispatcherRegistry      Code = "unknown-dispatcher-registry"
	SuperPastRoot                  Code = "super-past-root"
	TypeArgCountMismatch           Code = "type-arg-count-mismatch"
	StaticKeyOnNonDispatcherStruct Code = "static-key-on-non-dispatcher-non-struct"
	DynamicIndexInDispatchStmt     Code = "dynamic-index-in-dispatch-statement"
	FallbackOnDispatchLHS          Code = "fallback-on-dispatch-lhs"
	ReservedWordAsIdentifier       Code = "reserved-word-as-identifier"
	InvalidEscape                  Code = "invalid-escape"
	NumberOutOfRangeForSuffix      Code = "number-out-of-range-for-suffix"
	CycleWithoutLaziness           Code = "cycle-without-laziness"
)

// Diagnostic is one reported problem, anchored at a source position via an
// embedded *token.PosError so it renders through token.Explain.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Err      *token.PosError
}

func New(sev Severity, code Code, err *token.PosError) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Err: err}
}

func NewError(code Code, node token.Node, msg string, details ...token.ErrDetail) Diagnostic {
	return New(Error, code, token.NewPosError(node, msg, details...))
}

func (d Diagnostic) Error() string {
	return string(d.Code) + ": " + d.Err.Error()
}

// Explain renders the diagnostic the same way token.Explain renders any
// other positional error.
func (d Diagnostic) Explain() string {
	return token.Explain(d.Err)
}

// List is an ordered collection of Diagnostics, in the order they were
// raised (spec.md requires earliest-wins / stable ordering for duplicate
// detection, so callers must never reorder a List).
type List []Diagnostic

func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}

	return false
}
