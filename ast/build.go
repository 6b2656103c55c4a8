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

package ast

import "github.com/gomilp/milplang/token"

// Convenience constructors for building conforming trees by hand, for
// tests and for any future parser. Each mirrors one grammar production
// from spec.md §6.1; origin defaults to token.NoPos and can be set on the
// returned Node afterwards.

// NewRoot builds a ROOT node from ordered top-level statements.
func NewRoot(statements ...*Node) *Node {
	return &Node{Kind: ROOT, Children: statements}
}

// NewIdent builds an IDEN node.
func NewIdent(name string) *Node {
	return &Node{Kind: IDEN, Name: name}
}

// NewValue builds a VALUE node holding an integer literal.
func NewValue(n int) *Node {
	return &Node{Kind: VALUE, Lit: n}
}

// NewOp builds an OP node with the given tag and children, e.g.
// NewOp(ADD, lhs, rhs) or NewOp(SLICE, base, idx0, idx1).
func NewOp(tag Tag, children ...*Node) *Node {
	return &Node{Kind: OP, Tag: tag, Children: children}
}

// NewIter builds the OP/ITER node of an iter_expr: name := setExpr.
func NewIter(name string, setExpr *Node) *Node {
	return NewOp(ITER, NewIdent(name), setExpr)
}

// NewRange builds the inclusive-range set expression a:b.
func NewRange(a, b *Node) *Node {
	return NewOp(RANGE, a, b)
}

// NewBlock builds a BLOCK node: one or more iters followed by zero or
// more guard predicates, in declaration order.
func NewBlock(items ...*Node) *Node {
	return &Node{Kind: BLOCK, Children: items}
}

// NewSum builds a sum quantifier: one or more blocks, then the body.
func NewSum(body *Node, blocks ...*Node) *Node {
	return &Node{Kind: FUNC, Tag: SUM, Children: append(append([]*Node{}, blocks...), body)}
}

// NewForall builds a forall quantifier: one or more blocks, then the body.
func NewForall(body *Node, blocks ...*Node) *Node {
	return &Node{Kind: FUNC, Tag: FORALL, Children: append(append([]*Node{}, blocks...), body)}
}

// NewNdarray builds the FUNC/NDARRAY shape-list of a var_expr.
func NewNdarray(dims ...*Node) *Node {
	return &Node{Kind: FUNC, Tag: NDARRAY, Children: dims}
}

// NewVar builds a VAR statement: var kind name = var_expr.
func NewVar(kind Tag, name string, expr *Node) *Node {
	return &Node{Kind: VAR, Tag: kind, Children: []*Node{NewIdent(name), expr}}
}

// NewObj builds an OBJ statement: obj (min|max) expr.
func NewObj(sense Tag, expr *Node) *Node {
	return &Node{Kind: OBJ, Tag: sense, Children: []*Node{expr}}
}

// NewConstr builds a CONSTR statement: constr expr.
func NewConstr(expr *Node) *Node {
	return &Node{Kind: CONSTR, Children: []*Node{expr}}
}

// WithOrigin sets n's origin and returns n, for chaining.
func WithOrigin(n *Node, origin token.Position) *Node {
	n.Origin = origin
	return n
}
