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

// Package eval implements the statement driver and expression evaluator
// of spec.md §4.D-H: given a parsed tree and a solver.Builder, it walks
// the top-level VAR/OBJ/CONSTR statements in order, populating a Scope
// and a solver.Model as it goes.
package eval

import (
	"fmt"
	"log/slog"

	"github.com/gomilp/milplang/ast"
	"github.com/gomilp/milplang/errors"
	"github.com/gomilp/milplang/internal/evalflag"
	"github.com/gomilp/milplang/internal/scope"
	"github.com/gomilp/milplang/solver"
	"github.com/gomilp/milplang/value"
)

// Generate walks root's statements in order, binding VAR declarations
// into a fresh scope chained off bindings, feeding OBJ/CONSTR
// expressions into a model built by builder, and returns the final
// scope together with the populated model.
//
// root must be a ROOT node; any other shape is UnexpectedStatement.
func Generate(modelName string, root *ast.Node, bindings map[string]value.Value, builder solver.Builder) (*scope.Scope, solver.Model, error) {
	if root.Kind != ast.ROOT {
		return nil, nil, errors.New(errors.UnexpectedStatement, root.Origin, "top-level node must be ROOT, got %s", root.Kind)
	}

	sc := scope.FromBindings(bindings)
	model := builder.NewModel(modelName)
	cursor := ast.NewCursor(root)

	var before *ast.Node
	if evalflag.Flags.Strict {
		before = ast.Clone(root)
	}

	for i, stmt := range root.Children {
		cursor.Enter(i)
		if evalflag.Flags.Trace {
			slog.Debug("eval: cursor entered", "index", i, "kind", stmt.Kind)
			slog.Debug("eval: dispatching statement", "index", i, "kind", stmt.Kind)
		}
		var err error
		switch stmt.Kind {
		case ast.VAR:
			sc, err = varStatement(stmt, sc, model)
		case ast.OBJ:
			err = objStatement(stmt, sc, model)
		case ast.CONSTR:
			err = constrStatement(stmt, sc, model)
		default:
			err = errors.New(errors.UnexpectedStatement, stmt.Origin, "unexpected top-level node kind %s", stmt.Kind)
		}
		cursor.Exit(i)
		if evalflag.Flags.Trace {
			slog.Debug("eval: cursor exited", "index", i, "kind", stmt.Kind)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if evalflag.Flags.Strict && !ast.Equal(before, root) {
		panic("eval: zipper walk left the tree unbalanced")
	}
	return sc, model, nil
}

// varStatement implements a VAR statement: it allocates a tensor of
// decision variables shaped by the declared ndarray dimensions and binds
// the statement's name to it as a nested Seq. Only ranks 1, 2 and 3 are
// accepted; any other rank is a DimensionError.
func varStatement(stmt *ast.Node, sc *scope.Scope, model solver.Model) (*scope.Scope, error) {
	nameNode, exprNode := stmt.Children[0], stmt.Children[1]
	if nameNode.Kind != ast.IDEN {
		return nil, errors.New(errors.BadAssignmentTarget, nameNode.Origin, "var target must be a bare identifier")
	}
	if exprNode.Kind != ast.FUNC || exprNode.Tag != ast.NDARRAY {
		return nil, errors.New(errors.UnsupportedVarExpression, exprNode.Origin,
			"var expression must be an ndarray(...) call")
	}

	kind, err := varKind(stmt.Tag)
	if err != nil {
		return nil, err
	}

	dims := make([]int, len(exprNode.Children))
	for i, dimNode := range exprNode.Children {
		d, err := buildDim(dimNode, sc)
		if err != nil {
			return nil, err
		}
		dims[i] = d
	}
	if len(dims) == 0 || len(dims) > 3 {
		return nil, errors.New(errors.DimensionError, exprNode.Origin,
			"ndarray rank must be 1, 2 or 3, got %d", len(dims))
	}

	v := allocTensor(model, kind, nameNode.Name, dims, nil)
	return sc.Extend(nameNode.Name, v), nil
}

func varKind(tag ast.Tag) (solver.Kind, error) {
	switch tag {
	case ast.CONT:
		return solver.CONTINUOUS, nil
	case ast.INT:
		return solver.INTEGER, nil
	case ast.BIN:
		return solver.BINARY, nil
	default:
		return 0, fmt.Errorf("unreachable: invalid var kind tag %v", tag)
	}
}

// buildDim evaluates a single ndarray dimension expression to a
// non-negative integer.
func buildDim(n *ast.Node, sc *scope.Scope) (int, error) {
	v, err := evalExpr(n, sc)
	if err != nil {
		return 0, err
	}
	d, ok := v.AsInt()
	if !ok || d < 0 {
		return 0, errors.New(errors.DimensionError, n.Origin, "ndarray dimension must be a non-negative integer")
	}
	return d, nil
}

// allocTensor recursively allocates one decision variable per leaf
// position of a rank-len(dims) tensor, naming each "name_i_j_..." in
// row-major order (invariant 6 of spec.md §8), and wraps the result in
// nested Seq values until the outermost dimension, or returns a bare Var
// for a rank-0 leaf.
func allocTensor(model solver.Model, kind solver.Kind, name string, dims []int, idx []int) value.Value {
	if len(dims) == 0 {
		varName := name
		for _, i := range idx {
			varName += fmt.Sprintf("_%d", i)
		}
		handle := model.AddVar(varName, kind)
		return value.Var(handle)
	}
	n := dims[0]
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		elems[i] = allocTensor(model, kind, name, dims[1:], append(append([]int{}, idx...), i))
	}
	return value.Seq(elems)
}

// objStatement implements an OBJ statement: its expression evaluates to
// a Linear (possibly a bare constant or variable), installed as the
// model's objective under the declared sense.
func objStatement(stmt *ast.Node, sc *scope.Scope, model solver.Model) error {
	sense, err := objSense(stmt.Tag)
	if err != nil {
		return err
	}
	v, err := evalExpr(stmt.Children[0], sc)
	if err != nil {
		return err
	}
	lin, ok := v.AsLinear()
	if !ok {
		return errors.New(errors.UnexpectedToken, stmt.Children[0].Origin,
			"objective must evaluate to a numeric expression, got %s", v.Kind())
	}
	model.SetObjective(lin, sense)
	return nil
}

func objSense(tag ast.Tag) (solver.Sense, error) {
	switch tag {
	case ast.MIN:
		return solver.MIN, nil
	case ast.MAX:
		return solver.MAX, nil
	default:
		return 0, fmt.Errorf("unreachable: invalid objective sense tag %v", tag)
	}
}

// constrStatement implements a CONSTR statement: its body may be a
// single comparison or a forall yielding many, all added to the model.
func constrStatement(stmt *ast.Node, sc *scope.Scope, model solver.Model) error {
	cs, err := evalConstraintStream(stmt.Children[0], sc)
	if err != nil {
		return err
	}
	for _, c := range cs {
		model.AddConstraint(c)
	}
	return nil
}
