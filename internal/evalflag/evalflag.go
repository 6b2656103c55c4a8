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

// Package evalflag holds the evaluator's debug/trace configuration,
// parsed from the MILPLANG_DEBUG environment variable: a small struct
// of booleans, defaulted and overridden via internal/envflag.
package evalflag

import "github.com/gomilp/milplang/internal/envflag"

// Config holds the evaluator's debug flags.
type Config struct {
	// Trace logs each zipper Enter/Exit and each statement dispatch at
	// debug level while Generate runs. Off by default: it exists for
	// diagnosing a misbehaving tree walk, not for routine use.
	Trace bool

	// Strict additionally re-validates the zipper-balance invariant
	// (spec.md §8 invariant 1) after every Generate call, panicking if
	// it does not hold. Off by default; it is a development aid, not a
	// correctness requirement users should pay for.
	Strict bool
}

// Flags holds the process-wide evaluator debug configuration,
// initialized by Init.
var Flags Config

// Init parses MILPLANG_DEBUG into Flags. It returns an error for a
// malformed environment value; callers that don't care may ignore it.
func Init() error {
	return envflag.Init(&Flags, "MILPLANG_DEBUG")
}

func init() {
	// Best-effort: an invalid MILPLANG_DEBUG should not prevent the
	// package from loading, only leave Flags at its zero value.
	_ = Init()
}
