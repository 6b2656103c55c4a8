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

package eval

import (
	"github.com/gomilp/milplang/ast"
	"github.com/gomilp/milplang/errors"
	"github.com/gomilp/milplang/internal/scope"
	"github.com/gomilp/milplang/solver"
	"github.com/gomilp/milplang/value"
)

// evalExpr is the expression evaluator of spec.md §4.G: a plain
// recursive-descent dispatch over the node's Kind/Tag, rather than a
// separate "compile to intermediate form" pass (the design-notes
// alternative this module adopted for components E through H while
// keeping the zipper Cursor for anything that still needs true
// enter/exit tree surgery).
func evalExpr(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	switch n.Kind {
	case ast.VALUE:
		return value.Int(n.Lit), nil
	case ast.IDEN:
		v, ok := sc.Lookup(n.Name)
		if !ok {
			return value.Value{}, errors.New(errors.UndefinedIdentifier, n.Origin, "undefined identifier %q", n.Name)
		}
		return v, nil
	case ast.OP:
		return evalOp(n, sc)
	case ast.FUNC:
		switch n.Tag {
		case ast.SUM:
			return evalSum(n, sc)
		default:
			// FORALL never produces an operand-usable value (spec.md §6.1:
			// it is only accepted as an entire CONSTR body or another
			// forall's body, drained by evalConstraintStream) and
			// NDARRAY only appears inside a var_expr, handled by the
			// statement driver. Reaching either here is a grammar violation.
			return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
				"%s cannot be used as an expression", n.Tag)
		}
	default:
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"unexpected node kind %s in expression position", n.Kind)
	}
}

func evalOp(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	switch n.Tag {
	case ast.PAREN:
		return evalExpr(n.Children[0], sc)
	case ast.NEG:
		return evalNeg(n, sc)
	case ast.ADD, ast.SUB:
		return evalAddSub(n, sc)
	case ast.MUL:
		return evalMul(n, sc)
	case ast.DIV:
		return evalDiv(n, sc)
	case ast.SLICE:
		return evalSlice(n, sc)
	default:
		if n.Tag.IsCompOp() {
			return evalCompare(n, sc)
		}
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"unexpected operator %s in expression position", n.Tag)
	}
}

func evalNeg(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	v, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	switch {
	case v.Kind() == value.KInt:
		i, _ := v.AsInt()
		return value.Int(-i), nil
	case v.Kind() == value.KFloat:
		f, _ := v.AsFloat()
		return value.Float(-f), nil
	case v.IsNumeric():
		lin, _ := v.AsLinear()
		return value.LinearExpr(lin.Negate()), nil
	default:
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"unary - requires a numeric operand, got %s", v.Kind())
	}
}

func evalAddSub(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	lv, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := evalExpr(n.Children[1], sc)
	if err != nil {
		return value.Value{}, err
	}
	if !lv.IsNumeric() || !rv.IsNumeric() {
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"%s requires numeric operands, got %s and %s", n.Tag, lv.Kind(), rv.Kind())
	}
	sign := 1.0
	if n.Tag == ast.SUB {
		sign = -1.0
	}
	if lv.Kind() == value.KInt && rv.Kind() == value.KInt {
		a, _ := lv.AsInt()
		b, _ := rv.AsInt()
		if sign < 0 {
			return value.Int(a - b), nil
		}
		return value.Int(a + b), nil
	}
	if (lv.Kind() == value.KInt || lv.Kind() == value.KFloat) && (rv.Kind() == value.KInt || rv.Kind() == value.KFloat) {
		a, _ := lv.AsFloat()
		b, _ := rv.AsFloat()
		return value.Float(a + sign*b), nil
	}
	// Either operand is a Var/Linear: promote both to Linear.
	llin, _ := lv.AsLinear()
	rlin, _ := rv.AsLinear()
	if sign < 0 {
		return value.LinearExpr(llin.Minus(rlin)), nil
	}
	return value.LinearExpr(llin.Plus(rlin)), nil
}

func evalMul(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	lv, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := evalExpr(n.Children[1], sc)
	if err != nil {
		return value.Value{}, err
	}
	lScalar, rScalar := lv.IsScalar(), rv.IsScalar()
	switch {
	case lScalar && rScalar:
		if lv.Kind() == value.KInt && rv.Kind() == value.KInt {
			a, _ := lv.AsInt()
			b, _ := rv.AsInt()
			return value.Int(a * b), nil
		}
		a, _ := lv.AsFloat()
		b, _ := rv.AsFloat()
		return value.Float(a * b), nil
	case lScalar && rv.IsNumeric():
		a, _ := lv.AsFloat()
		lin, _ := rv.AsLinear()
		return value.LinearExpr(lin.Scale(a)), nil
	case rScalar && lv.IsNumeric():
		b, _ := rv.AsFloat()
		lin, _ := lv.AsLinear()
		return value.LinearExpr(lin.Scale(b)), nil
	default:
		// A MILP adapter (spec.md §4.C) only exposes scalar·linear
		// multiplication; linear*linear would be a quadratic term the
		// solver interface cannot represent.
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"* requires at least one scalar operand, got %s and %s", lv.Kind(), rv.Kind())
	}
}

func evalDiv(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	lv, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := evalExpr(n.Children[1], sc)
	if err != nil {
		return value.Value{}, err
	}
	if !lv.IsScalar() || !rv.IsScalar() {
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"/ requires two scalar operands, got %s and %s", lv.Kind(), rv.Kind())
	}
	a, _ := lv.AsFloat()
	b, _ := rv.AsFloat()
	if b == 0 {
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin, "division by zero")
	}
	if lv.Kind() == value.KInt && rv.Kind() == value.KInt {
		ai, _ := lv.AsInt()
		bi, _ := rv.AsInt()
		if ai%bi == 0 {
			return value.Int(ai / bi), nil
		}
	}
	return value.Float(a / b), nil
}

// evalSlice indexes into a (possibly nested) Seq value, one index
// expression per rank, e.g. base[i, j] on a rank-2 sequence.
func evalSlice(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	cur, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	for _, idxNode := range n.Children[1:] {
		idxVal, err := evalExpr(idxNode, sc)
		if err != nil {
			return value.Value{}, err
		}
		idx, ok := idxVal.AsInt()
		if !ok {
			return value.Value{}, errors.New(errors.UnexpectedToken, idxNode.Origin,
				"index must be an integer, got %s", idxVal.Kind())
		}
		elems, ok := cur.AsSeq()
		if !ok {
			return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
				"cannot index into a %s", cur.Kind())
		}
		if idx < 0 || idx >= len(elems) {
			return value.Value{}, errors.New(errors.DimensionError, idxNode.Origin,
				"index %d out of range [0, %d)", idx, len(elems))
		}
		cur = elems[idx]
	}
	return cur, nil
}

// evalCompare evaluates one of NE/EQ/LT/GT/LE/GE. Two scalar operands
// produce a Bool (usable as a guard predicate); an operand involving a
// decision variable or linear expression produces a Constraint, but
// only for the three relations a solver.Constraint can represent
// (EQ/LE/GE), since NE/LT/GT have no strict-inequality counterpart in
// the adapter (spec.md §4.C only exposes <=, >=, ==, grounded on the
// real-world convention that MILP solvers reject strict inequalities).
func evalCompare(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	lv, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return value.Value{}, err
	}
	rv, err := evalExpr(n.Children[1], sc)
	if err != nil {
		return value.Value{}, err
	}
	if lv.IsScalar() && rv.IsScalar() {
		a, _ := lv.AsFloat()
		b, _ := rv.AsFloat()
		return value.Bool(scalarCompare(n.Tag, a, b)), nil
	}
	if !lv.IsNumeric() || !rv.IsNumeric() {
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"comparison requires numeric operands, got %s and %s", lv.Kind(), rv.Kind())
	}
	op, ok := compOpFor(n.Tag)
	if !ok {
		return value.Value{}, errors.New(errors.UnexpectedToken, n.Origin,
			"%s cannot be applied to a linear expression", n.Tag)
	}
	llin, _ := lv.AsLinear()
	rlin, _ := rv.AsLinear()
	return value.ConstraintVal(solver.Compare(llin, rlin, op)), nil
}

func scalarCompare(tag ast.Tag, a, b float64) bool {
	switch tag {
	case ast.NE:
		return a != b
	case ast.EQ:
		return a == b
	case ast.LT:
		return a < b
	case ast.GT:
		return a > b
	case ast.LE:
		return a <= b
	case ast.GE:
		return a >= b
	default:
		return false
	}
}

func compOpFor(tag ast.Tag) (solver.CompOp, bool) {
	switch tag {
	case ast.EQ:
		return solver.EQ, true
	case ast.LE:
		return solver.LE, true
	case ast.GE:
		return solver.GE, true
	default:
		return 0, false
	}
}

// evalSum evaluates a sum quantifier: Children[:-1] are its blocks,
// Children[-1] is the body, re-evaluated once per composed tuple and
// accumulated via the solver adapter's sum_of primitive.
func evalSum(n *ast.Node, sc *scope.Scope) (value.Value, error) {
	blocks := n.Children[:len(n.Children)-1]
	body := n.Children[len(n.Children)-1]

	var terms []solver.Linear
	err := forEachQuantifierTuple(blocks, 0, sc, func(tupleScope *scope.Scope) error {
		v, err := evalExpr(body, tupleScope)
		if err != nil {
			return err
		}
		if !v.IsNumeric() {
			return errors.New(errors.UnexpectedToken, body.Origin,
				"sum body must evaluate to a numeric value, got %s", v.Kind())
		}
		lin, _ := v.AsLinear()
		terms = append(terms, lin)
		return nil
	})
	if err != nil {
		return value.Value{}, err
	}
	return value.LinearExpr(solver.SumOf(terms)), nil
}

// evalConstraintStream drains a CONSTR statement's body into zero or
// more solver.Constraint values. A plain comparison yields exactly one;
// a forall yields one per composed tuple of its blocks, recursing for a
// nested forall body (spec.md §4.F: "a forall's body may itself be
// another quantifier").
func evalConstraintStream(n *ast.Node, sc *scope.Scope) ([]solver.Constraint, error) {
	if n.Kind == ast.FUNC && n.Tag == ast.FORALL {
		blocks := n.Children[:len(n.Children)-1]
		body := n.Children[len(n.Children)-1]
		var out []solver.Constraint
		err := forEachQuantifierTuple(blocks, 0, sc, func(tupleScope *scope.Scope) error {
			cs, err := evalConstraintStream(body, tupleScope)
			if err != nil {
				return err
			}
			out = append(out, cs...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	v, err := evalExpr(n, sc)
	if err != nil {
		return nil, err
	}
	c, ok := v.AsConstraint()
	if !ok {
		return nil, errors.New(errors.UnexpectedToken, n.Origin,
			"constraint body must evaluate to a constraint, got %s", v.Kind())
	}
	return []solver.Constraint{c}, nil
}
