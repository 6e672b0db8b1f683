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
	"errors"
	"slices"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/refmatch"
	"github.com/ianlewis/go-cedict/store"
)

// detection is a resolved "variant of" annotation.
type detection struct {
	variant   entry.Key
	ref       entry.Key
	qualifier string
}

// variantGraph is the graph of variant references. Edges point from a
// variant to the entry it is a variant of.
type variantGraph struct {
	detections []detection

	// next is the first outgoing reference of each variant.
	next map[entry.Key]entry.Key

	// buckets holds the variants recorded for each referenced entry in
	// order of first appearance.
	buckets map[entry.Key][]entry.Variant
	order   []entry.Key

	// cycles holds the cycles already reported.
	cycles map[string]bool
}

// ResolveVariants resolves "variant of" annotations.
//
// Each annotation is removed from its entry and the variant is recorded on
// every entry reached by following the chain of variant references from
// it. Variant entries left without translations are deleted.
func ResolveVariants(s *store.Store) *Report {
	r := &Report{}
	g := &variantGraph{
		next:    make(map[entry.Key]entry.Key),
		buckets: make(map[entry.Key][]entry.Variant),
		cycles:  make(map[string]bool),
	}

	// Detect annotations. Remaining translations are held back until the
	// canonical entries are updated.
	pending := make(map[entry.Key][]string)
	var modified []entry.Key
	for _, e := range snapshot(s) {
		k := e.Key()
		var remaining []string
		found := false
		for _, t := range e.Translations {
			d, ok := detect(s, r, k, t)
			if !ok {
				remaining = append(remaining, t)
				continue
			}
			g.add(d)
			found = true
		}
		if found {
			pending[k] = remaining
			modified = append(modified, k)
		}
	}

	for _, d := range g.detections {
		g.walk(r, d)
	}

	for _, k := range g.order {
		variants := g.buckets[k]
		if err := s.UpdateVariants(k, variants); errors.Is(err, store.ErrNotFound) {
			r.add(Diagnostic{
				Stage: StageVariants,
				Kind:  KindMissingCanonical,
				Entry: variants[0].Ref.Key(),
				Ref:   entry.Ref(k),
				Text:  k.String(),
			})
			continue
		}
		r.Variants += len(variants)
	}

	// Keys come from the snapshot and nothing is deleted before this loop,
	// so the entries exist.
	for _, k := range modified {
		remaining := pending[k]
		if len(remaining) == 0 {
			_ = s.Delete(k)
			r.Deleted++
			continue
		}
		_ = s.UpdateTranslations(k, remaining)
	}

	return r
}

// detect parses a translation of the entry k as a variant annotation. ok
// is false if the translation must be kept.
func detect(s *store.Store, r *Report, k entry.Key, translation string) (detection, bool) {
	v, err := refmatch.ParseVariant(translation)
	if err != nil {
		r.add(Diagnostic{
			Stage: StageVariants,
			Kind:  KindUnparsableVariant,
			Entry: k,
			Text:  translation,
		})
		return detection{}, false
	}
	if v == nil {
		return detection{}, false
	}

	ref := v.Match.Ref
	if !v.Match.HasReading {
		matches := s.FindByHeadwords(ref.Traditional, ref.Simplified)
		switch len(matches) {
		case 0:
			r.add(Diagnostic{
				Stage: StageVariants,
				Kind:  KindMissingReference,
				Entry: k,
				Ref:   ref,
				Text:  translation,
			})
			return detection{}, false
		case 1:
			ref.Reading = matches[0].Reading
		default:
			r.add(Diagnostic{
				Stage: StageVariants,
				Kind:  KindAmbiguousReference,
				Entry: k,
				Ref:   ref,
				Text:  translation,
			})
			return detection{}, false
		}
	}

	return detection{
		variant:   k,
		ref:       ref.Key(),
		qualifier: v.Qualifier,
	}, true
}

// add records a detection. Chains through an entry with several
// references follow the first one.
func (g *variantGraph) add(d detection) {
	g.detections = append(g.detections, d)
	if _, ok := g.next[d.variant]; !ok {
		g.next[d.variant] = d.ref
	}
}

// walk follows the chain starting at the detection's own reference and
// records the variant on every entry it reaches. The walk stops at an
// entry without outgoing references or at an entry already on the walk.
func (g *variantGraph) walk(r *Report, d detection) {
	path := []entry.Key{d.variant}
	visited := map[entry.Key]bool{d.variant: true}
	v := entry.Variant{Ref: entry.Ref(d.variant), Type: d.qualifier}

	cur := d.ref
	for {
		if visited[cur] {
			g.reportCycle(r, d, path[slices.Index(path, cur):])
			return
		}
		visited[cur] = true
		path = append(path, cur)
		g.record(cur, v)

		next, ok := g.next[cur]
		if !ok {
			return
		}
		cur = next
	}
}

func (g *variantGraph) record(k entry.Key, v entry.Variant) {
	bucket, ok := g.buckets[k]
	if !ok {
		g.order = append(g.order, k)
	}
	if slices.Contains(bucket, v) {
		return
	}
	g.buckets[k] = append(bucket, v)
}

// reportCycle adds a self-reference diagnostic unless the same cycle has
// been reported by an earlier walk.
func (g *variantGraph) reportCycle(r *Report, d detection, cycle []entry.Key) {
	members := make([]string, 0, len(cycle))
	for _, k := range cycle {
		members = append(members, k.String())
	}
	text := strings.Join(append(slices.Clone(members), members[0]), " -> ")
	slices.Sort(members)
	id := strings.Join(members, ";")
	if g.cycles[id] {
		return
	}
	g.cycles[id] = true

	r.add(Diagnostic{
		Stage: StageVariants,
		Kind:  KindSelfReference,
		Entry: d.variant,
		Ref:   entry.Ref(d.ref),
		Text:  text,
	})
}
