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

// Package solver defines the narrow adapter the evaluator uses to talk to
// a MILP builder. The solver engine itself is out of scope for this
// module (spec.md §1): this package fixes only the contract (new model,
// add variable, linear-expression arithmetic, add constraint, set
// objective) that any real solver binding must satisfy.
package solver

import "fmt"

// Kind is the declared type of a decision variable.
type Kind int

const (
	CONTINUOUS Kind = iota
	INTEGER
	BINARY
)

func (k Kind) String() string {
	switch k {
	case CONTINUOUS:
		return "CONTINUOUS"
	case INTEGER:
		return "INTEGER"
	case BINARY:
		return "BINARY"
	default:
		return "UNKNOWN"
	}
}

// Sense is the optimization direction of an objective.
type Sense int

const (
	MIN Sense = iota
	MAX
)

func (s Sense) String() string {
	if s == MAX {
		return "MAX"
	}
	return "MIN"
}

// CompOp is the relational operator of a Constraint.
type CompOp int

const (
	LE CompOp = iota
	GE
	EQ
)

func (op CompOp) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	default:
		return "?"
	}
}

// VarHandle is an opaque reference to a decision variable allocated by a
// Model. The evaluator never inspects it beyond passing it back into
// Linear arithmetic.
type VarHandle struct {
	id   int
	name string
}

// Name returns the variable's solver-visible name.
func (v VarHandle) Name() string { return v.name }

// ID returns the integer id NewVarHandle minted v with. It exists for
// Model implementations (which mint ids) to recover them; the evaluator
// itself never needs it, since it only ever threads VarHandles back
// through Linear arithmetic.
func (v VarHandle) ID() int { return v.id }

func (v VarHandle) String() string { return v.name }

// Linear is a sum of scalar-weighted decision variables plus a constant.
// It is a plain value type: arithmetic on it never touches a Model.
type Linear struct {
	terms    map[int]float64 // var id -> coefficient
	names    map[int]string  // var id -> name, for deterministic term order
	constant float64
}

// NewLinear returns the constant linear expression c.
func NewLinear(c float64) Linear {
	return Linear{constant: c}
}

// Term returns the linear expression coef*v.
func Term(coef float64, v VarHandle) Linear {
	if coef == 0 {
		return Linear{}
	}
	return Linear{
		terms: map[int]float64{v.id: coef},
		names: map[int]string{v.id: v.name},
	}
}

func cloneTerms(l Linear) (map[int]float64, map[int]string) {
	terms := make(map[int]float64, len(l.terms))
	names := make(map[int]string, len(l.names))
	for k, v := range l.terms {
		terms[k] = v
	}
	for k, v := range l.names {
		names[k] = v
	}
	return terms, names
}

// Plus returns l + r.
func (l Linear) Plus(r Linear) Linear {
	terms, names := cloneTerms(l)
	for id, c := range r.terms {
		terms[id] += c
		names[id] = r.names[id]
	}
	return Linear{terms: terms, names: names, constant: l.constant + r.constant}
}

// Minus returns l - r.
func (l Linear) Minus(r Linear) Linear {
	return l.Plus(r.Scale(-1))
}

// Scale returns l scaled by c.
func (l Linear) Scale(c float64) Linear {
	terms, names := cloneTerms(l)
	for id := range terms {
		terms[id] *= c
	}
	return Linear{terms: terms, names: names, constant: l.constant * c}
}

// Negate returns -l.
func (l Linear) Negate() Linear { return l.Scale(-1) }

// IsConstant reports whether l carries no variable terms.
func (l Linear) IsConstant() bool { return len(l.terms) == 0 }

// Constant returns l's constant term, valid unconditionally (it is 0 for
// a pure variable expression).
func (l Linear) Constant() float64 { return l.constant }

// Terms returns the (coefficient, variable) pairs of l, in a stable order
// (ascending variable id) so callers can format or compare deterministically.
func (l Linear) Terms() []struct {
	Coef float64
	Var  VarHandle
} {
	ids := make([]int, 0, len(l.terms))
	for id := range l.terms {
		ids = append(ids, id)
	}
	// simple insertion sort: the term count per expression is small
	// (one named decision-variable tensor dimension at a time).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	out := make([]struct {
		Coef float64
		Var  VarHandle
	}, 0, len(ids))
	for _, id := range ids {
		out = append(out, struct {
			Coef float64
			Var  VarHandle
		}{Coef: l.terms[id], Var: VarHandle{id: id, name: l.names[id]}})
	}
	return out
}

func (l Linear) String() string {
	if l.IsConstant() && l.constant == 0 && len(l.terms) == 0 {
		return "0"
	}
	s := ""
	for _, t := range l.Terms() {
		if s != "" {
			s += " + "
		}
		s += fmt.Sprintf("%g*%s", t.Coef, t.Var.Name())
	}
	if l.constant != 0 || s == "" {
		if s != "" {
			s += fmt.Sprintf(" + %g", l.constant)
		} else {
			s = fmt.Sprintf("%g", l.constant)
		}
	}
	return s
}

// SumOf aggregates a stream of Linear terms into one Linear expression,
// the adapter's sum_of primitive (spec.md §4.C).
func SumOf(terms []Linear) Linear {
	total := Linear{}
	for _, t := range terms {
		total = total.Plus(t)
	}
	return total
}

// Constraint is a relational expression over a Linear left-hand side and
// a constant right-hand side, normalized so the comparison always reads
// lhs `op` rhs. It is the object submitted to a Model.
type Constraint struct {
	LHS Linear
	Op  CompOp
	RHS float64
}

// Compare builds the Constraint lhs `op` rhs, folding both operands'
// constants onto the right-hand side so LHS carries variable terms only.
func Compare(lhs, rhs Linear, op CompOp) Constraint {
	diff := lhs.Minus(rhs)
	return Constraint{
		LHS: Linear{terms: diff.terms, names: diff.names},
		Op:  op,
		RHS: -diff.constant,
	}
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %g", c.LHS, c.Op, c.RHS)
}

// Model is a single MILP model under construction: it owns the variables,
// constraints and objective accumulated so far.
type Model interface {
	// AddVar allocates and returns a fresh decision variable of the given
	// kind under the given solver-visible name.
	AddVar(name string, kind Kind) VarHandle
	// AddConstraint records c against the model.
	AddConstraint(c Constraint)
	// SetObjective installs lin as the model's objective with the given
	// sense, replacing any previously set objective.
	SetObjective(lin Linear, sense Sense)
}

// Builder constructs named Models. It is the sole entry point the
// evaluator needs from a solver binding.
type Builder interface {
	NewModel(name string) Model
}

// NewVarHandle mints a VarHandle for a Model implementation. id need only
// be unique within the Model that minted it; it is how two VarHandles
// referring to the same variable compare equal inside Linear arithmetic.
// The monotonic counter that supplies id is part of a Model's own builder
// state (spec.md §3.3), not of this package.
func NewVarHandle(id int, name string) VarHandle {
	return VarHandle{id: id, name: name}
}
