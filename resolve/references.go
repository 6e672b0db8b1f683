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
	"slices"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/refmatch"
	"github.com/ianlewis/go-cedict/store"
)

// AnnotateReferences replaces the references embedded in translations with
// canonical "[trad|simp|reading]" tokens.
//
// References with headwords are looked up in the store and reported when
// missing or ambiguous. The token always reflects the text that was
// matched, whether or not the lookup succeeded.
func AnnotateReferences(s *store.Store) *Report {
	r := &Report{}
	for _, e := range snapshot(s) {
		translations := slices.Clone(e.Translations)
		changed := false
		for i, t := range translations {
			if rewritten, ok := annotate(s, r, e.Key(), t); ok {
				translations[i] = rewritten
				changed = true
			}
		}
		if changed {
			// The key comes from the snapshot so the entry exists.
			_ = s.UpdateTranslations(e.Key(), translations)
		}
	}
	return r
}

// annotate rewrites the references in a translation of the entry k. ok is
// false if the translation holds no references.
func annotate(s *store.Store, r *Report, k entry.Key, translation string) (string, bool) {
	matches := refmatch.Find(translation, refmatch.ShapeReadingOnly)
	if len(matches) == 0 {
		matches = refmatch.Find(translation, refmatch.ShapeHeadwords)
	}
	if len(matches) == 0 {
		return translation, false
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m.Ref.HasHeadwords() {
			validate(s, r, k, translation, m)
		}
		b.WriteString(translation[last:m.Start])
		b.WriteString(m.Ref.Token())
		last = m.End
		r.Rewritten++
	}
	b.WriteString(translation[last:])
	return b.String(), true
}

func validate(s *store.Store, r *Report, k entry.Key, translation string, m refmatch.Match) {
	n := 0
	if m.HasReading {
		if _, ok := s.Get(m.Ref.Key()); ok {
			n = 1
		}
	} else {
		n = len(s.FindByHeadwords(m.Ref.Traditional, m.Ref.Simplified))
	}

	var kind Kind
	switch {
	case n == 0:
		kind = KindMissingReference
	case n > 1:
		kind = KindAmbiguousReference
	default:
		return
	}
	r.add(Diagnostic{
		Stage: StageReferences,
		Kind:  kind,
		Entry: k,
		Ref:   m.Ref,
		Text:  translation,
	})
}
