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

package store_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/store"
)

func newEntry(trad, simp, reading string, translations ...string) *entry.Entry {
	return &entry.Entry{
		Traditional:  trad,
		Simplified:   simp,
		Reading:      reading,
		Translations: translations,
	}
}

func mustStore(t *testing.T, opts *store.Options, entries ...*entry.Entry) *store.Store {
	t.Helper()

	s := store.New(opts)
	for _, e := range entries {
		if err := s.Insert(e); err != nil {
			t.Fatalf("Insert(%v): %v", e, err)
		}
	}
	return s
}

func keys(entries []*entry.Entry) []entry.Key {
	var out []entry.Key
	for _, e := range entries {
		out = append(out, e.Key())
	}
	return out
}

// TestStore_Insert tests Store.Insert.
func TestStore_Insert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    *store.Options
		entries []*entry.Entry

		expectedLen int
		err         error
	}{
		{
			name: "distinct keys",
			entries: []*entry.Entry{
				newEntry("愛", "爱", "ai4", "to love"),
				newEntry("個", "个", "ge4", "individual"),
			},
			expectedLen: 2,
		},
		{
			name: "duplicates tolerated",
			entries: []*entry.Entry{
				newEntry("個", "个", "ge4", "individual"),
				newEntry("個", "个", "ge4", "this"),
			},
			expectedLen: 2,
		},
		{
			name: "duplicates strict",
			opts: &store.Options{Strict: true},
			entries: []*entry.Entry{
				newEntry("個", "个", "ge4", "individual"),
				newEntry("個", "个", "ge4", "this"),
			},
			expectedLen: 1,
			err:         store.ErrDuplicateKey,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := store.New(test.opts)
			var err error
			for _, e := range test.entries {
				if insertErr := s.Insert(e); insertErr != nil {
					err = insertErr
				}
			}
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("Insert err (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expectedLen, s.Len()); diff != "" {
				t.Fatalf("Len (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestStore_Get tests Store.Get.
func TestStore_Get(t *testing.T) {
	t.Parallel()

	s := mustStore(t, nil,
		newEntry("個", "个", "ge4", "individual"),
		newEntry("個", "个", "ge4", "this"),
		newEntry("愛", "爱", "ai4", "to love"),
	)

	got, ok := s.Get(entry.Key{Traditional: "個", Simplified: "个", Reading: "ge4"})
	if !ok {
		t.Fatal("Get: not found")
	}
	// The first inserted entry wins.
	if diff := cmp.Diff([]string{"individual"}, got.Translations); diff != "" {
		t.Fatalf("Get (-want, +got):\n%s", diff)
	}

	// Returned entries are copies.
	got.Translations[0] = "changed"
	again, _ := s.Get(got.Key())
	if again.Translations[0] != "individual" {
		t.Fatalf("Get returned shared state: %q", again.Translations[0])
	}

	if _, ok := s.Get(entry.Key{Traditional: "個", Simplified: "个", Reading: "ge3"}); ok {
		t.Fatal("Get: unexpected match for different reading")
	}
}

// TestStore_FindByHeadwords tests Store.FindByHeadwords.
func TestStore_FindByHeadwords(t *testing.T) {
	t.Parallel()

	s := mustStore(t, nil,
		newEntry("長", "长", "chang2", "long"),
		newEntry("長", "长", "zhang3", "chief"),
		newEntry("愛", "爱", "ai4", "to love"),
	)

	tests := []struct {
		name     string
		trad     string
		simp     string
		expected []entry.Key
	}{
		{
			name: "ambiguous",
			trad: "長",
			simp: "长",
			expected: []entry.Key{
				{Traditional: "長", Simplified: "长", Reading: "chang2"},
				{Traditional: "長", Simplified: "长", Reading: "zhang3"},
			},
		},
		{
			name:     "unique",
			trad:     "愛",
			simp:     "爱",
			expected: []entry.Key{{Traditional: "愛", Simplified: "爱", Reading: "ai4"}},
		},
		{
			name:     "missing",
			trad:     "愛",
			simp:     "愛",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := keys(s.FindByHeadwords(test.trad, test.simp))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("FindByHeadwords (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestStore_Update tests the Store update methods.
func TestStore_Update(t *testing.T) {
	t.Parallel()

	k := entry.Key{Traditional: "愛", Simplified: "爱", Reading: "ai4"}
	s := mustStore(t, nil, newEntry("愛", "爱", "ai4", "to love", "CL:個|个[ge4]"))

	cls := []entry.Ref{{Traditional: "個", Simplified: "个", Reading: "ge4"}}
	variants := []entry.Variant{{Ref: entry.Ref{Traditional: "旡", Simplified: "旡", Reading: "ai4"}, Type: "old"}}
	if err := s.UpdateTranslations(k, []string{"to love"}); err != nil {
		t.Fatalf("UpdateTranslations: %v", err)
	}
	if err := s.UpdateClassifiers(k, cls); err != nil {
		t.Fatalf("UpdateClassifiers: %v", err)
	}
	if err := s.UpdateVariants(k, variants); err != nil {
		t.Fatalf("UpdateVariants: %v", err)
	}
	// Key fields cannot be changed through Update.
	if err := s.Update(k, func(e *entry.Entry) {
		e.Reading = "ai3"
		e.HSK = 1
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, ok := s.Get(k)
	if !ok {
		t.Fatal("Get: not found")
	}
	expected := &entry.Entry{
		Traditional:  "愛",
		Simplified:   "爱",
		Reading:      "ai4",
		Translations: []string{"to love"},
		Classifiers:  cls,
		Variants:     variants,
		HSK:          1,
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("entry (-want, +got):\n%s", diff)
	}

	missing := entry.Key{Traditional: "無", Simplified: "无", Reading: "wu2"}
	if err := s.UpdateTranslations(missing, nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("UpdateTranslations(missing) = %v, want %v", err, store.ErrNotFound)
	}
}

// TestStore_UpdateBySimplified tests Store.UpdateBySimplified.
func TestStore_UpdateBySimplified(t *testing.T) {
	t.Parallel()

	s := mustStore(t, nil,
		newEntry("長", "长", "chang2", "long"),
		newEntry("長", "长", "zhang3", "chief"),
		newEntry("愛", "爱", "ai4", "to love"),
	)

	n := s.UpdateBySimplified("长", func(e *entry.Entry) {
		e.WebRank = 10
	})
	if n != 2 {
		t.Fatalf("UpdateBySimplified = %d, want 2", n)
	}
	for _, e := range s.FindBySimplified("长") {
		if e.WebRank != 10 {
			t.Errorf("%s: WebRank = %d, want 10", e.Key(), e.WebRank)
		}
	}
	if n := s.UpdateBySimplified("无", func(*entry.Entry) {}); n != 0 {
		t.Fatalf("UpdateBySimplified(missing) = %d, want 0", n)
	}
}

// TestStore_Delete tests Store.Delete.
func TestStore_Delete(t *testing.T) {
	t.Parallel()

	first := newEntry("舖", "铺", "pu4", "variant of 鋪|铺[pu4]")
	second := newEntry("鋪", "铺", "pu4", "store")
	third := newEntry("鋪", "铺", "pu1", "to spread")
	s := mustStore(t, nil, first, second, third)

	if err := s.Delete(first.Key()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(first.Key()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete twice = %v, want %v", err, store.ErrNotFound)
	}

	if diff := cmp.Diff(2, s.Len()); diff != "" {
		t.Fatalf("Len (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]entry.Key{second.Key(), third.Key()}, keys(s.Snapshot())); diff != "" {
		t.Fatalf("Snapshot (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]entry.Key{second.Key(), third.Key()}, keys(s.FindBySimplified("铺"))); diff != "" {
		t.Fatalf("FindBySimplified (-want, +got):\n%s", diff)
	}
	if got := s.FindByHeadwords("舖", "铺"); len(got) != 0 {
		t.Fatalf("FindByHeadwords after delete = %v", got)
	}
	if got := s.Search("舖"); len(got) != 0 {
		t.Fatalf("Search after delete = %v", got)
	}
}

// TestStore_DeleteDuplicate tests that deleting a duplicated key exposes the
// next entry with that key.
func TestStore_DeleteDuplicate(t *testing.T) {
	t.Parallel()

	s := mustStore(t, nil,
		newEntry("個", "个", "ge4", "individual"),
		newEntry("個", "个", "ge4", "this"),
	)
	k := entry.Key{Traditional: "個", Simplified: "个", Reading: "ge4"}
	if err := s.Delete(k); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, ok := s.Get(k)
	if !ok {
		t.Fatal("Get: not found")
	}
	if diff := cmp.Diff([]string{"this"}, got.Translations); diff != "" {
		t.Fatalf("Get (-want, +got):\n%s", diff)
	}
}

// TestStore_Search tests Store.Search and Store.SearchPrefix.
func TestStore_Search(t *testing.T) {
	t.Parallel()

	s := mustStore(t, nil,
		newEntry("一樣", "一样", "yi1 yang4", "same"),
		newEntry("愛", "爱", "ai4", "to love"),
		newEntry("愛好", "爱好", "ai4 hao4", "hobby"),
		newEntry("人", "人", "ren2", "person"),
	)

	tests := []struct {
		name     string
		query    string
		prefix   bool
		expected []string
	}{
		{
			name:     "traditional",
			query:    "愛",
			expected: []string{"愛"},
		},
		{
			name:     "simplified",
			query:    "一样",
			expected: []string{"一樣"},
		},
		{
			name:     "toneless reading",
			query:    "Yi yang",
			expected: []string{"一樣"},
		},
		{
			name:     "reading with tones",
			query:    "ren2",
			expected: []string{"人"},
		},
		{
			name:     "prefix",
			query:    "ai",
			prefix:   true,
			expected: []string{"愛", "愛好"},
		},
		{
			name:     "no match",
			query:    "hao",
			expected: nil,
		},
	}

	for _, test := range tests {
		// Store is not safe for concurrent use so subtests run serially.
		t.Run(test.name, func(t *testing.T) {
			var got []*entry.Entry
			if test.prefix {
				got = s.SearchPrefix(test.query)
			} else {
				got = s.Search(test.query)
			}
			var trads []string
			for _, e := range got {
				trads = append(trads, e.Traditional)
			}
			if diff := cmp.Diff(test.expected, trads); diff != "" {
				t.Fatalf("Search(%q) (-want, +got):\n%s", test.query, diff)
			}
		})
	}
}
