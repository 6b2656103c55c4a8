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
	"github.com/gomilp/milplang/value"
)

// indexIter is a pull-based stream of set elements: component D never
// materializes a full set before the first element is consumed, so a
// RANGE spanning millions of values costs nothing until something
// actually pulls from it.
type indexIter interface {
	next() (value.Value, bool)
}

// rangeIter yields the closed integer range [cur, end], ascending.
type rangeIter struct {
	cur, end int
}

func (it *rangeIter) next() (value.Value, bool) {
	if it.cur > it.end {
		return value.Value{}, false
	}
	v := value.Int(it.cur)
	it.cur++
	return v, true
}

// seqIter yields a fixed sequence's elements in order.
type seqIter struct {
	items []value.Value
	pos   int
}

func (it *seqIter) next() (value.Value, bool) {
	if it.pos >= len(it.items) {
		return value.Value{}, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}

// evalSetExpr turns a set_expr node into an indexIter, per spec.md §4.D:
// an integer n means [0, n); a bound sequence is yielded element by
// element; RANGE(a, b) means the closed range [a, b], empty if a > b.
func evalSetExpr(n *ast.Node, sc *scope.Scope) (indexIter, error) {
	switch {
	case n.Kind == ast.OP && n.Tag == ast.RANGE:
		return evalRange(n, sc)
	case n.Kind == ast.IDEN:
		return evalBoundSet(n, sc)
	case n.Kind == ast.VALUE:
		return &rangeIter{cur: 0, end: n.Lit - 1}, nil
	default:
		return nil, errors.New(errors.UnexpectedToken, n.Origin,
			"set expression must be a range, an identifier or an integer literal, got %s/%s", n.Kind, n.Tag)
	}
}

func evalRange(n *ast.Node, sc *scope.Scope) (indexIter, error) {
	lo, err := evalExpr(n.Children[0], sc)
	if err != nil {
		return nil, err
	}
	a, ok := lo.AsInt()
	if !ok {
		return nil, errors.New(errors.UnexpectedToken, n.Children[0].Origin,
			"range bound must evaluate to an integer, got %s", lo.Kind())
	}
	hi, err := evalExpr(n.Children[1], sc)
	if err != nil {
		return nil, err
	}
	b, ok := hi.AsInt()
	if !ok {
		return nil, errors.New(errors.UnexpectedToken, n.Children[1].Origin,
			"range bound must evaluate to an integer, got %s", hi.Kind())
	}
	return &rangeIter{cur: a, end: b}, nil
}

func evalBoundSet(n *ast.Node, sc *scope.Scope) (indexIter, error) {
	v, ok := sc.Lookup(n.Name)
	if !ok {
		return nil, errors.New(errors.UndefinedIdentifier, n.Origin, "undefined identifier %q", n.Name)
	}
	switch v.Kind() {
	case value.KInt:
		count, _ := v.AsInt()
		return &rangeIter{cur: 0, end: count - 1}, nil
	case value.KSeq:
		elems, _ := v.AsSeq()
		return &seqIter{items: elems}, nil
	default:
		// Open Question 1 (spec.md §9): a bare identifier resolving to a
		// non-integer, non-sequence value (e.g. a float) is
		// UnexpectedToken at evaluation time.
		return nil, errors.New(errors.UnexpectedToken, n.Origin,
			"%q cannot be used as a set (got %s)", n.Name, v.Kind())
	}
}
