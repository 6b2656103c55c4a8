// Copyright 2026 The milplang Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the single error type the evaluator raises.
//
// All evaluation failures are fatal and are reported through one type,
// CompilerError, distinguished only by its Kind. There is no retry and no
// partial-success state: once an error is returned the caller must discard
// whatever the solver model accumulated so far.
package errors

import (
	"fmt"

	"github.com/gomilp/milplang/token"
)

// Kind discriminates the fixed set of ways evaluation can fail.
type Kind int

const (
	// UnexpectedStatement: a top-level node is not VAR/OBJ/CONSTR.
	UnexpectedStatement Kind = iota
	// BadAssignmentTarget: the left side of "var ... =" is not a bare name.
	BadAssignmentTarget
	// UnsupportedVarExpression: the right side of "var" is not an ndarray call.
	UnsupportedVarExpression
	// DimensionError: an ndarray shape has rank outside {1,2,3}, or a shape
	// expression did not reduce to a non-negative integer.
	DimensionError
	// UndefinedIdentifier: a name lookup failed during evaluation.
	UndefinedIdentifier
	// UnexpectedToken: an expression position holds a node shape the
	// evaluator cannot interpret there.
	UnexpectedToken
	// BadBlockElement: a block item is neither an iter_expr nor a guard
	// predicate that reduces to a boolean.
	BadBlockElement
	// UnknownFunction: a FUNC node other than SUM/FORALL/NDARRAY appears.
	UnknownFunction
)

func (k Kind) String() string {
	switch k {
	case UnexpectedStatement:
		return "UnexpectedStatement"
	case BadAssignmentTarget:
		return "BadAssignmentTarget"
	case UnsupportedVarExpression:
		return "UnsupportedVarExpression"
	case DimensionError:
		return "DimensionError"
	case UndefinedIdentifier:
		return "UndefinedIdentifier"
	case UnexpectedToken:
		return "UnexpectedToken"
	case BadBlockElement:
		return "BadBlockElement"
	case UnknownFunction:
		return "UnknownFunction"
	default:
		return "CompilerError"
	}
}

// CompilerError is the one error type the evaluator raises. It always
// carries the source origin of the node that triggered it.
type CompilerError struct {
	Kind   Kind
	Origin token.Position
	Msg    string
}

func (e *CompilerError) Error() string {
	if e.Origin.IsValid() {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Msg, e.Origin)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New creates a CompilerError of the given kind at the given origin, with
// a printf-style message.
func New(kind Kind, origin token.Position, format string, args ...interface{}) *CompilerError {
	return &CompilerError{
		Kind:   kind,
		Origin: origin,
		Msg:    fmt.Sprintf(format, args...),
	}
}
