// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve resolves the references that CC-CEDICT entries embed in
// their translations.
//
// Resolution runs as three passes over an entry store, in order:
//
//  1. ResolveClassifiers turns "CL:" annotations into classifier references.
//  2. ResolveVariants follows "variant of" annotations to their canonical
//     entries, records the variants there and removes the annotations.
//  3. AnnotateReferences rewrites the remaining embedded references into
//     canonical "[trad|simp|reading]" tokens.
//
// Each pass reads a snapshot of the store taken when it starts and commits
// its changes before returning. Problems are returned as diagnostics in a
// Report and never stop a pass.
package resolve

import (
	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/store"
)

// Run runs every resolution pass over s in order.
func Run(s *store.Store) *Report {
	r := &Report{}
	r.merge(ResolveClassifiers(s))
	r.merge(ResolveVariants(s))
	r.merge(AnnotateReferences(s))
	return r
}

// snapshot returns the live entries of s in store order. Later entries
// with a key that was already seen are left out because key based updates
// address the first of them.
func snapshot(s *store.Store) []*entry.Entry {
	seen := make(map[entry.Key]bool)
	var out []*entry.Entry
	for _, e := range s.Snapshot() {
		k := e.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
