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

// Package refmodel is a reference, in-memory implementation of the
// solver.Builder/solver.Model contract, plus a small branch-and-bound
// solver good enough to drive the evaluator end to end in tests. It is
// not a production MILP engine: spec.md §1 places the solver engine out
// of scope and treats it purely as an external collaborator.
package refmodel

import (
	"math"
	"sort"

	"github.com/gomilp/milplang/solver"
)

// Builder mints named in-memory Models.
type Builder struct{}

// NewModel implements solver.Builder.
func (Builder) NewModel(name string) solver.Model {
	return &Model{Name: name}
}

// varInfo records the declared bounds of one decision variable, derived
// from its Kind: BINARY is {0,1}, INTEGER and CONTINUOUS are unbounded
// non-negative by convention (no bound syntax exists in the DSL).
type varInfo struct {
	name string
	kind solver.Kind
}

// Model is the reference in-memory Model: it just records what the
// evaluator built, plus enough bookkeeping (§3.3's "monotonic variable
// counter") to hand out fresh VarHandles.
type Model struct {
	Name string

	vars        []varInfo
	nextID      int
	Constraints []solver.Constraint
	Objective   solver.Linear
	Sense       solver.Sense
}

// AddVar implements solver.Model.
func (m *Model) AddVar(name string, kind solver.Kind) solver.VarHandle {
	m.nextID++
	m.vars = append(m.vars, varInfo{name: name, kind: kind})
	return solver.NewVarHandle(m.nextID, name)
}

// AddConstraint implements solver.Model.
func (m *Model) AddConstraint(c solver.Constraint) {
	m.Constraints = append(m.Constraints, c)
}

// SetObjective implements solver.Model.
func (m *Model) SetObjective(lin solver.Linear, sense solver.Sense) {
	m.Objective = lin
	m.Sense = sense
}

// VarNames returns the solver-visible names of every variable allocated
// on m, in allocation order (used by tests that check variable naming).
func (m *Model) VarNames() []string {
	names := make([]string, len(m.vars))
	for i, v := range m.vars {
		names[i] = v.name
	}
	return names
}

// Solution is the outcome of Optimize: the value assigned to each
// variable id, keyed by the VarHandle name so callers don't need to
// retain handles.
type Solution struct {
	Values    map[string]float64
	Objective float64
	Feasible  bool
}

// Optimize runs a depth-first branch-and-bound search over m's variables
// and returns the best feasible assignment found.
//
// Every INTEGER/BINARY variable is branched on 0/1 (BINARY) or small
// non-negative integers up to maxInt (INTEGER); CONTINUOUS variables are
// sampled over the same small integer domain, which is sufficient for
// the pure 0/1 and small-integer programs this evaluator's test
// scenarios build. Partial assignments are pruned as soon as every
// variable in a constraint's left-hand side has been assigned and that
// constraint is already violated, rather than waiting for a complete
// assignment to fail.
func (m *Model) Optimize(maxInt int) Solution {
	order := make([]varInfo, len(m.vars))
	copy(order, m.vars)

	assigned := make(map[int]float64, len(order))
	best := Solution{Feasible: false}
	bestObj := math.Inf(1)
	if m.Sense == solver.MAX {
		bestObj = math.Inf(-1)
	}

	ids := make([]int, len(order))
	for i := range order {
		ids[i] = i + 1
	}
	sort.Ints(ids)

	var search func(idx int)
	search = func(idx int) {
		if idx == len(order) {
			if !satisfies(m.Constraints, assigned) {
				return
			}
			obj := evalLinear(m.Objective, assigned)
			if better(obj, bestObj, m.Sense) {
				bestObj = obj
				best = Solution{
					Values:    snapshot(order, assigned),
					Objective: obj,
					Feasible:  true,
				}
			}
			return
		}

		v := order[idx]
		id := ids[idx]
		domain := domainOf(v.kind, maxInt)
		for _, val := range domain {
			assigned[id] = val
			if prefixFeasible(m.Constraints, assigned, len(order)) {
				search(idx + 1)
			}
			delete(assigned, id)
		}
	}
	search(0)
	return best
}

func domainOf(kind solver.Kind, maxInt int) []float64 {
	switch kind {
	case solver.BINARY:
		return []float64{0, 1}
	case solver.INTEGER:
		dom := make([]float64, maxInt+1)
		for i := 0; i <= maxInt; i++ {
			dom[i] = float64(i)
		}
		return dom
	default: // CONTINUOUS: sampled coarsely, adequate for reference use only.
		dom := make([]float64, 0, maxInt+1)
		for i := 0; i <= maxInt; i++ {
			dom = append(dom, float64(i))
		}
		return dom
	}
}

func snapshot(order []varInfo, assigned map[int]float64) map[string]float64 {
	out := make(map[string]float64, len(order))
	for i, v := range order {
		out[v.name] = assigned[i+1]
	}
	return out
}

func better(candidate, incumbent float64, sense solver.Sense) bool {
	if sense == solver.MAX {
		return candidate > incumbent
	}
	return candidate < incumbent
}

func evalLinear(lin solver.Linear, assigned map[int]float64) float64 {
	total := lin.Constant()
	for _, t := range lin.Terms() {
		total += t.Coef * assigned[t.Var.ID()]
	}
	return total
}

func satisfies(cs []solver.Constraint, assigned map[int]float64) bool {
	for _, c := range cs {
		if !holds(c, assigned) {
			return false
		}
	}
	return true
}

func holds(c solver.Constraint, assigned map[int]float64) bool {
	lhs := evalLinear(c.LHS, assigned)
	switch c.Op {
	case solver.LE:
		return lhs <= c.RHS+1e-9
	case solver.GE:
		return lhs >= c.RHS-1e-9
	case solver.EQ:
		return math.Abs(lhs-c.RHS) <= 1e-9
	default:
		return false
	}
}

// prefixFeasible checks only the constraints whose every term is already
// assigned, pruning infeasible partial assignments early.
func prefixFeasible(cs []solver.Constraint, assigned map[int]float64, total int) bool {
	for _, c := range cs {
		allAssigned := true
		for _, t := range c.LHS.Terms() {
			if _, ok := assigned[t.Var.ID()]; !ok {
				allAssigned = false
				break
			}
		}
		if allAssigned && !holds(c, assigned) {
			return false
		}
	}
	return true
}
