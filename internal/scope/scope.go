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

// Package scope implements the layered immutable binding environment of
// spec.md §3.2/§4.B: a mapping from identifier to value where a child
// scope extends a parent with additional bindings, shadowing is allowed,
// and a child's bindings evaporate when its evaluation returns.
package scope

import "github.com/gomilp/milplang/value"

// A Scope is one frame of bindings plus a link to its parent. Frames are
// never mutated after creation; Extend always allocates a new frame.
// Lookup is linear in nesting depth, which spec.md §4.B explicitly
// accepts ("quantifier nesting is shallow").
type Scope struct {
	parent *Scope
	names  map[string]value.Value
}

// New returns an empty root scope.
func New() *Scope {
	return &Scope{}
}

// FromBindings returns a root scope pre-populated with the given
// bindings (the "bindings" argument of the §6.2 entry point).
func FromBindings(bindings map[string]value.Value) *Scope {
	names := make(map[string]value.Value, len(bindings))
	for k, v := range bindings {
		names[k] = v
	}
	return &Scope{names: names}
}

// Lookup resolves name, searching this scope and then its ancestors.
// ok is false if no enclosing scope binds name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.names[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Extend returns a new child scope that binds name to v in addition to
// everything s already binds. s itself is untouched. Shadowing an
// existing name is allowed: the new binding wins in the child and any
// of its descendants, while s and any other existing reference to it are
// unaffected.
func (s *Scope) Extend(name string, v value.Value) *Scope {
	return &Scope{
		parent: s,
		names:  map[string]value.Value{name: v},
	}
}

