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
)

// parsedBlock splits a BLOCK node's children into its leading iter_exprs
// and its trailing guard predicates, per spec.md §4.E's grammar (one or
// more iters, then zero or more guards).
type parsedBlock struct {
	iters  []*ast.Node // each an OP/ITER node
	guards []*ast.Node
}

func parseBlock(n *ast.Node) (parsedBlock, error) {
	var pb parsedBlock
	seenGuard := false
	for _, ch := range n.Children {
		isIter := ch.Kind == ast.OP && ch.Tag == ast.ITER
		if isIter {
			if seenGuard {
				return pb, errors.New(errors.BadBlockElement, ch.Origin,
					"iter_expr cannot follow a guard predicate within a block")
			}
			pb.iters = append(pb.iters, ch)
			continue
		}
		seenGuard = true
		pb.guards = append(pb.guards, ch)
	}
	if len(pb.iters) == 0 {
		return pb, errors.New(errors.BadBlockElement, n.Origin, "block has no iter_expr")
	}
	return pb, nil
}

// forEachBlockTuple evaluates one BLOCK node under sc: it nests the
// block's own iters (first iter varies slowest, matching declaration
// order), and for each resulting tuple whose guards all hold, invokes
// visit with the scope extended by that tuple's bindings. Guard order
// never changes which tuples pass (invariant 3 of spec.md §8): logical
// AND is commutative regardless of which guard short-circuits first.
func forEachBlockTuple(n *ast.Node, sc *scope.Scope, visit func(*scope.Scope) error) error {
	pb, err := parseBlock(n)
	if err != nil {
		return err
	}
	return forEachIterTuple(pb.iters, 0, sc, func(tupleScope *scope.Scope) error {
		ok, err := evalGuards(pb.guards, tupleScope)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return visit(tupleScope)
	})
}

// forEachIterTuple recursively nests iters[idx:], extending sc one
// binding at a time, and invokes visit once per complete tuple.
func forEachIterTuple(iters []*ast.Node, idx int, sc *scope.Scope, visit func(*scope.Scope) error) error {
	if idx == len(iters) {
		return visit(sc)
	}
	it := iters[idx]
	name := it.Children[0].Name
	setIter, err := evalSetExpr(it.Children[1], sc)
	if err != nil {
		return err
	}
	for {
		v, ok := setIter.next()
		if !ok {
			return nil
		}
		if err := forEachIterTuple(iters, idx+1, sc.Extend(name, v), visit); err != nil {
			return err
		}
	}
}

// evalGuards evaluates every guard predicate against sc and returns
// whether all of them hold. A guard that does not reduce to a Bool is a
// BadBlockElement.
func evalGuards(guards []*ast.Node, sc *scope.Scope) (bool, error) {
	for _, g := range guards {
		v, err := evalExpr(g, sc)
		if err != nil {
			return false, err
		}
		b, ok := v.AsBool()
		if !ok {
			return false, errors.New(errors.BadBlockElement, g.Origin,
				"guard predicate must evaluate to a boolean, got %s", v.Kind())
		}
		if !b {
			return false, nil
		}
	}
	return true, nil
}
