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

// A Cursor walks a Node tree without allocating a path stack. Entering
// child i swaps that child slot with the cursor's single "previous" link;
// exiting restores it. Descent and ascent are both O(1), and the tree is
// left byte-for-byte intact once every Enter has been matched by an Exit
// for the same index, in the reverse order they were entered.
//
// Enter/Exit must be paired and balanced per child index; failing to
// rebalance leaves the tree corrupted and is a programming error, not a
// recoverable one.
type Cursor struct {
	cur  *Node
	prev *Node
}

// NewCursor returns a Cursor positioned at root.
func NewCursor(root *Node) *Cursor {
	return &Cursor{cur: root}
}

// Node returns the node the cursor currently points at.
func (c *Cursor) Node() *Node { return c.cur }

// Enter descends into child i of the current node. The previous cursor
// position is stashed in the vacated child slot so Exit can restore it.
func (c *Cursor) Enter(i int) {
	children := c.cur.Children
	next := children[i]
	children[i] = c.prev
	c.prev = c.cur
	c.cur = next
}

// Exit ascends back out of child i, restoring the tree to the shape it
// had before the matching Enter(i).
func (c *Cursor) Exit(i int) {
	next := c.cur
	c.cur = c.prev
	children := c.prev.Children
	c.prev = children[i]
	children[i] = next
}
