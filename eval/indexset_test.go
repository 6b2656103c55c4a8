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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/gomilp/milplang/ast"
	"github.com/gomilp/milplang/internal/scope"
	"github.com/gomilp/milplang/value"
)

func drain(t *testing.T, it indexIter) []value.Value {
	t.Helper()
	var out []value.Value
	for {
		v, ok := it.next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// TestRangeIsInclusiveOnBothEnds covers invariant 4 of spec.md §8: a:b
// yields exactly {a, a+1, ..., b}, inclusive of b.
func TestRangeIsInclusiveOnBothEnds(t *testing.T) {
	n := ast.NewRange(ast.NewValue(2), ast.NewValue(5))
	it, err := evalSetExpr(n, scope.New())
	qt.Assert(t, qt.IsNil(err))

	got := drain(t, it)
	qt.Assert(t, qt.HasLen(got, 4))
	for i, v := range got {
		iv, _ := v.AsInt()
		qt.Assert(t, qt.Equals(iv, 2+i))
	}
}

func TestRangeEmptyWhenLowerExceedsUpper(t *testing.T) {
	n := ast.NewRange(ast.NewValue(5), ast.NewValue(2))
	it, err := evalSetExpr(n, scope.New())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(drain(t, it), 0))
}

func TestIntegerBoundSetYieldsZeroToNMinusOne(t *testing.T) {
	sc := scope.New().Extend("n", value.Int(3))
	it, err := evalSetExpr(ast.NewIdent("n"), sc)
	qt.Assert(t, qt.IsNil(err))

	got := drain(t, it)
	qt.Assert(t, qt.HasLen(got, 3))
	for i, v := range got {
		iv, _ := v.AsInt()
		qt.Assert(t, qt.Equals(iv, i))
	}
}

func TestSequenceBoundSetYieldsElementsInOrder(t *testing.T) {
	sc := scope.New().Extend("xs", value.Seq([]value.Value{value.Int(7), value.Int(8)}))
	it, err := evalSetExpr(ast.NewIdent("xs"), sc)
	qt.Assert(t, qt.IsNil(err))

	got := drain(t, it)
	qt.Assert(t, qt.HasLen(got, 2))
	v0, _ := got[0].AsInt()
	v1, _ := got[1].AsInt()
	qt.Assert(t, qt.Equals(v0, 7))
	qt.Assert(t, qt.Equals(v1, 8))
}

func TestNonIntegerNonSequenceBoundSetIsUnexpectedToken(t *testing.T) {
	sc := scope.New().Extend("f", value.Float(1.5))
	_, err := evalSetExpr(ast.NewIdent("f"), sc)
	qt.Assert(t, qt.IsNotNil(err))
}
