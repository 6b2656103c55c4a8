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
	"github.com/gomilp/milplang/internal/scope"
)

// forEachQuantifierTuple composes the blocks of a sum/forall FUNC node
// (every child but the last, which is the body): it nests block 0
// outermost down to the last block innermost, invoking visit once per
// combination of block tuples whose guards all passed, the same lazy,
// non-materializing nesting forEachIterTuple uses one level down
// (spec.md §4.F).
func forEachQuantifierTuple(blocks []*ast.Node, idx int, sc *scope.Scope, visit func(*scope.Scope) error) error {
	if idx == len(blocks) {
		return visit(sc)
	}
	return forEachBlockTuple(blocks[idx], sc, func(next *scope.Scope) error {
		return forEachQuantifierTuple(blocks, idx+1, next, visit)
	})
}
