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

package eval_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/gomilp/milplang/ast"
	"github.com/gomilp/milplang/eval"
	"github.com/gomilp/milplang/solver/refmodel"
	"github.com/gomilp/milplang/value"
)

func x(name string, idx ...*ast.Node) *ast.Node {
	return ast.NewOp(ast.SLICE, append([]*ast.Node{ast.NewIdent(name)}, idx...)...)
}

func i(name string) *ast.Node { return ast.NewIdent(name) }
func lit(n int) *ast.Node     { return ast.NewValue(n) }

// TestGenerateSolvesKnapsack builds a small classic 0/1 knapsack
// (three items) end to end: declare a binary tensor,
// maximize packed value subject to a weight-budget constraint, and
// check the reference solver finds the one optimal packing.
func TestGenerateSolvesKnapsack(t *testing.T) {
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "pick", ast.NewNdarray(i("n"))),
		ast.NewObj(ast.MAX, ast.NewSum(
			ast.NewOp(ast.MUL, x("pick", i("i")), x("value", i("i"))),
			ast.NewBlock(ast.NewIter("i", i("n"))),
		)),
		ast.NewConstr(ast.NewOp(ast.LE, ast.NewSum(
			ast.NewOp(ast.MUL, x("pick", i("i")), x("weight", i("i"))),
			ast.NewBlock(ast.NewIter("i", i("n"))),
		), i("capacity"))),
	)

	bindings := map[string]value.Value{
		"n":        value.Int(3),
		"value":    value.Seq([]value.Value{value.Int(3), value.Int(4), value.Int(5)}),
		"weight":   value.Seq([]value.Value{value.Int(2), value.Int(3), value.Int(4)}),
		"capacity": value.Int(5),
	}

	var builder refmodel.Builder
	_, model, err := eval.Generate("knapsack", root, bindings, builder)
	qt.Assert(t, qt.IsNil(err))

	sol := model.(*refmodel.Model).Optimize(1)
	qt.Assert(t, qt.IsTrue(sol.Feasible))
	qt.Assert(t, qt.Equals(sol.Objective, 7.0))
	qt.Assert(t, qt.Equals(sol.Values["pick_0"], 1.0))
	qt.Assert(t, qt.Equals(sol.Values["pick_1"], 1.0))
	qt.Assert(t, qt.Equals(sol.Values["pick_2"], 0.0))
}

// TestGenerateRangeIsInclusiveEndToEnd covers invariant 4 end to end: a
// forall over the closed range 1:n must produce exactly n constraints,
// not n-1 or n+1.
func TestGenerateRangeIsInclusiveEndToEnd(t *testing.T) {
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "z", ast.NewNdarray(lit(1))),
		ast.NewObj(ast.MAX, x("z", lit(0))),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.LE, x("z", lit(0)), i("k")),
			ast.NewBlock(ast.NewIter("k", ast.NewRange(lit(1), i("n")))),
		)),
	)

	var builder refmodel.Builder
	_, model, err := eval.Generate("range", root, map[string]value.Value{"n": value.Int(10)}, builder)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(model.(*refmodel.Model).Constraints, 10))
}

// TestGenerateSolvesTriangleTour is a 3-city traveling-salesman instance
// scaled down to the smallest nontrivial complete graph: with exactly
// three cities, every vertex needing degree 2 forces all three edges
// into the tour, so the optimum is unique and cheap to verify by
// branch-and-bound (spec.md's solver engine remains out of scope; only
// the evaluator's output is exercised here).
func TestGenerateSolvesTriangleTour(t *testing.T) {
	degree := func() *ast.Node {
		return ast.NewOp(ast.ADD,
			ast.NewSum(x("edge", i("j"), i("k")), ast.NewBlock(ast.NewIter("j", i("n")), ast.NewOp(ast.LT, i("j"), i("k")))),
			ast.NewSum(x("edge", i("k"), i("j")), ast.NewBlock(ast.NewIter("j", i("n")), ast.NewOp(ast.GT, i("j"), i("k")))),
		)
	}
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "edge", ast.NewNdarray(i("n"), i("n"))),
		ast.NewObj(ast.MIN, ast.NewSum(
			ast.NewOp(ast.MUL, x("edge", i("a"), i("b")), x("cost", i("a"), i("b"))),
			ast.NewBlock(ast.NewIter("a", i("n")), ast.NewIter("b", i("n")), ast.NewOp(ast.LT, i("a"), i("b"))),
		)),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.EQ, degree(), lit(2)),
			ast.NewBlock(ast.NewIter("k", i("n"))),
		)),
	)

	cost := value.Seq([]value.Value{
		value.Seq([]value.Value{value.Int(0), value.Int(5), value.Int(7)}),
		value.Seq([]value.Value{value.Int(5), value.Int(0), value.Int(3)}),
		value.Seq([]value.Value{value.Int(7), value.Int(3), value.Int(0)}),
	})
	bindings := map[string]value.Value{"n": value.Int(3), "cost": cost}

	var builder refmodel.Builder
	_, model, err := eval.Generate("tsp3", root, bindings, builder)
	qt.Assert(t, qt.IsNil(err))

	sol := model.(*refmodel.Model).Optimize(1)
	qt.Assert(t, qt.IsTrue(sol.Feasible))
	qt.Assert(t, qt.Equals(sol.Objective, 15.0))
	qt.Assert(t, qt.Equals(sol.Values["edge_0_1"], 1.0))
	qt.Assert(t, qt.Equals(sol.Values["edge_0_2"], 1.0))
	qt.Assert(t, qt.Equals(sol.Values["edge_1_2"], 1.0))
}

// TestGenerateSolvesSmallQueensPlacement is an n=4 non-attacking-rook
// style placement scaled down from the reference N-Queens scenario to
// row/column exclusivity only (row and column constraints are the part
// of N-Queens genuinely a tensor/forall exercise; diagonal exclusion
// adds no new evaluator semantics, only more guard arithmetic, so it is
// left out of this reduced instance). Exactly one queen per row and per
// column on a 4x4 board has 4! = 24 feasible placements; this checks
// Generate produces a model whose feasible region matches that shape by
// confirming the reference solver finds one and that every row of it
// holds exactly one queen.
func TestGenerateSolvesSmallQueensPlacement(t *testing.T) {
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "q", ast.NewNdarray(i("n"), i("n"))),
		ast.NewObj(ast.MAX, x("q", lit(0), lit(0))),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.EQ, ast.NewSum(x("q", i("r"), i("c")), ast.NewBlock(ast.NewIter("c", i("n")))), lit(1)),
			ast.NewBlock(ast.NewIter("r", i("n"))),
		)),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.EQ, ast.NewSum(x("q", i("r"), i("c")), ast.NewBlock(ast.NewIter("r", i("n")))), lit(1)),
			ast.NewBlock(ast.NewIter("c", i("n"))),
		)),
	)

	var builder refmodel.Builder
	_, model, err := eval.Generate("queens4", root, map[string]value.Value{"n": value.Int(4)}, builder)
	qt.Assert(t, qt.IsNil(err))

	sol := model.(*refmodel.Model).Optimize(1)
	qt.Assert(t, qt.IsTrue(sol.Feasible))
	for r := 0; r < 4; r++ {
		count := 0.0
		for c := 0; c < 4; c++ {
			count += sol.Values[rowColName(r, c)]
		}
		qt.Assert(t, qt.Equals(count, 1.0))
	}
}

func rowColName(r, c int) string {
	return fmt.Sprintf("q_%d_%d", r, c)
}

// TestGenerateSolvesSmallFrequencyAssignment assigns one of three
// frequencies to each of three mutually-adjacent stations (a triangle,
// the hardest small case since it needs a full 3-coloring) so that no
// edge shares a frequency, and checks the reference solver finds a
// feasible assignment.
func TestGenerateSolvesSmallFrequencyAssignment(t *testing.T) {
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "use", ast.NewNdarray(i("stations"), i("freqs"))),
		ast.NewObj(ast.MAX, x("use", lit(0), lit(0))),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.EQ, ast.NewSum(x("use", i("s"), i("f")), ast.NewBlock(ast.NewIter("f", i("freqs")))), lit(1)),
			ast.NewBlock(ast.NewIter("s", i("stations"))),
		)),
		ast.NewConstr(ast.NewForall(
			ast.NewForall(
				ast.NewOp(ast.LE, ast.NewOp(ast.ADD,
					x("use", x("edges", i("e"), lit(0)), i("f")),
					x("use", x("edges", i("e"), lit(1)), i("f")),
				), lit(1)),
				ast.NewBlock(ast.NewIter("f", i("freqs"))),
			),
			ast.NewBlock(ast.NewIter("e", i("numEdges"))),
		)),
	)

	edges := value.Seq([]value.Value{
		value.Seq([]value.Value{value.Int(0), value.Int(1)}),
		value.Seq([]value.Value{value.Int(1), value.Int(2)}),
		value.Seq([]value.Value{value.Int(2), value.Int(0)}),
	})
	bindings := map[string]value.Value{
		"stations": value.Int(3),
		"freqs":    value.Int(3),
		"edges":    edges,
		"numEdges": value.Int(3),
	}

	var builder refmodel.Builder
	_, model, err := eval.Generate("freq", root, bindings, builder)
	qt.Assert(t, qt.IsNil(err))

	sol := model.(*refmodel.Model).Optimize(1)
	qt.Assert(t, qt.IsTrue(sol.Feasible))
}

// TestGenerateSolvesSmallLevelPacking packs three items of given
// heights into as few fixed-capacity levels (bins) as possible: a
// scaled-down bin-packing instance using the standard "item assigned to
// an open bin" MILP formulation (assignment vars plus one open/closed
// indicator per bin, objective minimizing bins opened).
func TestGenerateSolvesSmallLevelPacking(t *testing.T) {
	root := ast.NewRoot(
		ast.NewVar(ast.BIN, "assign", ast.NewNdarray(i("items"), i("bins"))),
		ast.NewVar(ast.BIN, "open", ast.NewNdarray(i("bins"))),
		ast.NewObj(ast.MIN, ast.NewSum(x("open", i("b")), ast.NewBlock(ast.NewIter("b", i("bins"))))),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.EQ, ast.NewSum(x("assign", i("it"), i("b")), ast.NewBlock(ast.NewIter("b", i("bins")))), lit(1)),
			ast.NewBlock(ast.NewIter("it", i("items"))),
		)),
		ast.NewConstr(ast.NewForall(
			ast.NewOp(ast.LE, ast.NewSum(
				ast.NewOp(ast.MUL, x("assign", i("it"), i("b")), x("height", i("it"))),
				ast.NewBlock(ast.NewIter("it", i("items"))),
			), ast.NewOp(ast.MUL, i("capacity"), x("open", i("b")))),
			ast.NewBlock(ast.NewIter("b", i("bins"))),
		)),
	)

	bindings := map[string]value.Value{
		"items":    value.Int(3),
		"bins":     value.Int(2),
		"height":   value.Seq([]value.Value{value.Int(2), value.Int(3), value.Int(4)}),
		"capacity": value.Int(5),
	}

	var builder refmodel.Builder
	_, model, err := eval.Generate("levelpack", root, bindings, builder)
	qt.Assert(t, qt.IsNil(err))

	sol := model.(*refmodel.Model).Optimize(1)
	qt.Assert(t, qt.IsTrue(sol.Feasible))
	qt.Assert(t, qt.Equals(sol.Objective, 2.0))
}
