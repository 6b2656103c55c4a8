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

// Clone returns a deep copy of n. It exists so callers (notably tests
// asserting the zipper-balance invariant, spec.md §8.1) can snapshot a
// tree before a Cursor walk and structurally compare it against the tree
// afterwards.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, ch := range n.Children {
			c.Children[i] = Clone(ch)
		}
	}
	return &c
}

// Equal reports whether a and b are structurally identical: same Kind,
// Tag, Name, Lit and Origin at every node, with children compared
// pairwise in order. It is the non-test counterpart to the cmp.Diff
// checks in the test suite, used to assert at runtime that a Cursor
// walk left a tree exactly as it found it.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Name != b.Name || a.Lit != b.Lit || a.Origin != b.Origin {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
