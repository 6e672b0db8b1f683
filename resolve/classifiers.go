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

package resolve

import (
	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/refmatch"
	"github.com/ianlewis/go-cedict/store"
)

// ResolveClassifiers moves the references of "CL:" annotations into the
// Classifiers field of each entry and removes the annotations. Pieces that
// are not references are reported and dropped.
func ResolveClassifiers(s *store.Store) *Report {
	r := &Report{}
	for _, e := range snapshot(s) {
		var (
			translations []string
			classifiers  []entry.Ref
			found        bool
		)
		for _, t := range e.Translations {
			pieces, ok := refmatch.SplitClassifiers(t)
			if !ok {
				translations = append(translations, t)
				continue
			}
			found = true

			for _, p := range pieces {
				m, ok := refmatch.MatchPrefix(p, refmatch.ShapeReading)
				if !ok {
					r.add(Diagnostic{
						Stage: StageClassifiers,
						Kind:  KindUnparsableClassifier,
						Entry: e.Key(),
						Text:  p,
					})
					continue
				}
				classifiers = append(classifiers, m.Ref)
			}
		}
		if !found {
			continue
		}

		// The key comes from the snapshot so the entry exists.
		_ = s.Update(e.Key(), func(e *entry.Entry) {
			e.Translations = translations
			e.Classifiers = append(e.Classifiers, classifiers...)
		})
		r.Classifiers += len(classifiers)
	}
	return r
}
