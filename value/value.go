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

// Package value defines the closed set of things a Scope binding or an
// expression evaluation can produce (spec.md §3.2, §9 "Scalar-vs-Linear
// dispatch"): integer and floating scalars, nested sequences, decision
// variables and tensors of them, linear expressions, booleans, and
// constraints. It is a leaf package (no dependency on scope or eval) so
// that both can depend on it without a cycle.
package value

import (
	"fmt"

	"github.com/gomilp/milplang/solver"
)

// Kind discriminates the concrete type carried by a Value.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KSeq
	KVar
	KLinear
	KBool
	KConstraint
)

func (k Kind) String() string {
	switch k {
	case KInt:
		return "Int"
	case KFloat:
		return "Float"
	case KSeq:
		return "Seq"
	case KVar:
		return "Var"
	case KLinear:
		return "Linear"
	case KBool:
		return "Bool"
	case KConstraint:
		return "Constraint"
	default:
		return "Unknown"
	}
}

// A Value is the closed sum type every scope binding and every expression
// result belongs to. The zero Value is not meaningful; always construct
// one via the Int/Float/Seq/Var/LinearExpr/Bool/ConstraintVal constructors.
type Value struct {
	kind Kind

	i          int
	f          float64
	seq        []Value
	v          solver.VarHandle
	lin        solver.Linear
	b          bool
	constraint solver.Constraint
}

func (val Value) Kind() Kind { return val.kind }

// Int constructs an integer scalar.
func Int(n int) Value { return Value{kind: KInt, i: n} }

// Float constructs a floating scalar.
func Float(f float64) Value { return Value{kind: KFloat, f: f} }

// Seq constructs a nested sequence of values (a user-bound tensor, any
// rank, represented as a sequence of sequences).
func Seq(elems []Value) Value { return Value{kind: KSeq, seq: elems} }

// Var constructs a decision-variable handle.
func Var(v solver.VarHandle) Value { return Value{kind: KVar, v: v} }

// LinearExpr constructs a linear expression over decision variables.
func LinearExpr(lin solver.Linear) Value { return Value{kind: KLinear, lin: lin} }

// Bool constructs a boolean, produced only by a guard predicate or a
// top-level scalar comparison.
func Bool(b bool) Value { return Value{kind: KBool, b: b} }

// ConstraintVal constructs a Constraint value, produced by a comparison
// where either operand is a decision variable or linear expression.
func ConstraintVal(c solver.Constraint) Value { return Value{kind: KConstraint, constraint: c} }

// AsInt returns the int carried by an Int value; ok is false otherwise.
func (val Value) AsInt() (int, bool) {
	if val.kind != KInt {
		return 0, false
	}
	return val.i, true
}

// AsFloat returns the numeric value carried by an Int or Float value.
func (val Value) AsFloat() (float64, bool) {
	switch val.kind {
	case KInt:
		return float64(val.i), true
	case KFloat:
		return val.f, true
	default:
		return 0, false
	}
}

// AsSeq returns the elements of a Seq value.
func (val Value) AsSeq() ([]Value, bool) {
	if val.kind != KSeq {
		return nil, false
	}
	return val.seq, true
}

// AsVar returns the handle carried by a Var value.
func (val Value) AsVar() (solver.VarHandle, bool) {
	if val.kind != KVar {
		return solver.VarHandle{}, false
	}
	return val.v, true
}

// AsLinear returns the Linear expression carried by val, promoting a bare
// variable handle to a unit-coefficient Linear and a scalar to a constant
// Linear. It fails only for Seq/Bool/Constraint values.
func (val Value) AsLinear() (solver.Linear, bool) {
	switch val.kind {
	case KLinear:
		return val.lin, true
	case KVar:
		return solver.Term(1, val.v), true
	case KInt:
		return solver.NewLinear(float64(val.i)), true
	case KFloat:
		return solver.NewLinear(val.f), true
	default:
		return solver.Linear{}, false
	}
}

// AsBool returns the boolean carried by a Bool value.
func (val Value) AsBool() (bool, bool) {
	if val.kind != KBool {
		return false, false
	}
	return val.b, true
}

// AsConstraint returns the Constraint carried by a Constraint value.
func (val Value) AsConstraint() (solver.Constraint, bool) {
	if val.kind != KConstraint {
		return solver.Constraint{}, false
	}
	return val.constraint, true
}

// IsScalar reports whether val is a pure Int/Float scalar (the
// condition spec.md §4.G uses to decide whether a comparison yields a
// Bool or a Constraint).
func (val Value) IsScalar() bool {
	return val.kind == KInt || val.kind == KFloat
}

// IsNumeric reports whether val is a scalar or a linear/variable
// expression, i.e. something arithmetic operators accept.
func (val Value) IsNumeric() bool {
	switch val.kind {
	case KInt, KFloat, KVar, KLinear:
		return true
	default:
		return false
	}
}

func (val Value) String() string {
	switch val.kind {
	case KInt:
		return fmt.Sprintf("%d", val.i)
	case KFloat:
		return fmt.Sprintf("%g", val.f)
	case KSeq:
		return fmt.Sprintf("%v", val.seq)
	case KVar:
		return val.v.String()
	case KLinear:
		return val.lin.String()
	case KBool:
		return fmt.Sprintf("%t", val.b)
	case KConstraint:
		return val.constraint.String()
	default:
		return "<invalid value>"
	}
}
