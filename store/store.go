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

// Package store implements an in-memory store of dictionary entries keyed
// several ways. The store owns entry data: lookups return copies and all
// mutations go through the store's methods.
//
// Entries are kept in insertion order and every iteration over the store
// follows that order, which keeps resolution passes deterministic.
package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/internal/index"
	"github.com/ianlewis/go-cedict/pinyin"
)

var (
	// ErrDuplicateKey indicates that an entry with the same traditional,
	// simplified and reading already exists in a strict store.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound indicates that no entry exists for a key.
	ErrNotFound = errors.New("entry not found")
)

// Options are options for a Store.
type Options struct {
	// Strict makes Insert reject entries whose key already exists. When
	// Strict is false duplicates are kept and key based operations address
	// the first inserted entry with that key.
	Strict bool
}

// DefaultOptions is the default options for a Store.
var DefaultOptions = &Options{
	Strict: false,
}

type headwords struct {
	traditional string
	simplified  string
}

// foldedKey is a search index entry.
type foldedKey struct {
	folded string
	pos    int
}

func (k *foldedKey) String() string {
	return k.folded
}

// Store is an insertion ordered collection of dictionary entries.
type Store struct {
	// entries holds entries by insertion position. Deleted entries are nil.
	entries []*entry.Entry

	byKey        map[entry.Key][]int
	byHeadwords  map[headwords][]int
	bySimplified map[string][]int

	strict bool
	live   int

	// search is built lazily and reset whenever keys change.
	search *index.Index[*foldedKey]
}

// New returns a new empty Store.
func New(options *Options) *Store {
	if options == nil {
		options = DefaultOptions
	}
	return &Store{
		byKey:        make(map[entry.Key][]int),
		byHeadwords:  make(map[headwords][]int),
		bySimplified: make(map[string][]int),
		strict:       options.Strict,
	}
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return s.live
}

// Insert adds a copy of e to the store.
func (s *Store) Insert(e *entry.Entry) error {
	k := e.Key()
	if s.strict && len(s.byKey[k]) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, k)
	}

	pos := len(s.entries)
	s.entries = append(s.entries, e.Clone())
	s.byKey[k] = append(s.byKey[k], pos)
	hw := headwords{e.Traditional, e.Simplified}
	s.byHeadwords[hw] = append(s.byHeadwords[hw], pos)
	s.bySimplified[e.Simplified] = append(s.bySimplified[e.Simplified], pos)
	s.live++
	s.search = nil
	return nil
}

// Get returns a copy of the entry with the given key.
func (s *Store) Get(k entry.Key) (*entry.Entry, bool) {
	positions := s.byKey[k]
	if len(positions) == 0 {
		return nil, false
	}
	return s.entries[positions[0]].Clone(), true
}

// FindByHeadwords returns copies of all entries with the given traditional
// and simplified headwords.
func (s *Store) FindByHeadwords(traditional, simplified string) []*entry.Entry {
	return s.collect(s.byHeadwords[headwords{traditional, simplified}])
}

// FindBySimplified returns copies of all entries with the given simplified
// headword.
func (s *Store) FindBySimplified(simplified string) []*entry.Entry {
	return s.collect(s.bySimplified[simplified])
}

// Snapshot returns copies of all live entries in store order.
func (s *Store) Snapshot() []*entry.Entry {
	out := make([]*entry.Entry, 0, s.live)
	for _, e := range s.entries {
		if e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Update calls fn with the stored entry for key k. fn may modify any field
// except the key fields, which are restored after fn returns.
func (s *Store) Update(k entry.Key, fn func(e *entry.Entry)) error {
	positions := s.byKey[k]
	if len(positions) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	e := s.entries[positions[0]]
	fn(e)
	e.Traditional, e.Simplified, e.Reading = k.Traditional, k.Simplified, k.Reading
	return nil
}

// UpdateTranslations replaces the translations of the entry with key k.
func (s *Store) UpdateTranslations(k entry.Key, translations []string) error {
	return s.Update(k, func(e *entry.Entry) {
		e.Translations = slices.Clone(translations)
	})
}

// UpdateClassifiers replaces the classifiers of the entry with key k.
func (s *Store) UpdateClassifiers(k entry.Key, classifiers []entry.Ref) error {
	return s.Update(k, func(e *entry.Entry) {
		e.Classifiers = slices.Clone(classifiers)
	})
}

// UpdateVariants replaces the variants of the entry with key k.
func (s *Store) UpdateVariants(k entry.Key, variants []entry.Variant) error {
	return s.Update(k, func(e *entry.Entry) {
		e.Variants = slices.Clone(variants)
	})
}

// UpdateBySimplified calls fn for every entry with the given simplified
// headword and returns the number of entries updated. Key fields are
// restored after fn returns.
func (s *Store) UpdateBySimplified(simplified string, fn func(e *entry.Entry)) int {
	positions := s.bySimplified[simplified]
	for _, pos := range positions {
		e := s.entries[pos]
		k := e.Key()
		fn(e)
		e.Traditional, e.Simplified, e.Reading = k.Traditional, k.Simplified, k.Reading
	}
	return len(positions)
}

// Delete removes the entry with key k.
func (s *Store) Delete(k entry.Key) error {
	positions := s.byKey[k]
	if len(positions) == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	pos := positions[0]
	e := s.entries[pos]

	s.byKey[k] = removePos(s.byKey, k, pos)
	hw := headwords{e.Traditional, e.Simplified}
	s.byHeadwords[hw] = removePos(s.byHeadwords, hw, pos)
	s.bySimplified[e.Simplified] = removePos(s.bySimplified, e.Simplified, pos)
	if len(s.byKey[k]) == 0 {
		delete(s.byKey, k)
	}
	if len(s.byHeadwords[hw]) == 0 {
		delete(s.byHeadwords, hw)
	}
	if len(s.bySimplified[e.Simplified]) == 0 {
		delete(s.bySimplified, e.Simplified)
	}

	s.entries[pos] = nil
	s.live--
	s.search = nil
	return nil
}

// Search returns copies of the entries whose traditional headword,
// simplified headword or toneless reading equals the folded query. Results
// are in store order without duplicates.
func (s *Store) Search(query string) []*entry.Entry {
	return s.lookup(s.searchIndex().Search(pinyin.StripTones(query)))
}

// SearchPrefix is like Search but matches keys that start with the folded
// query.
func (s *Store) SearchPrefix(query string) []*entry.Entry {
	return s.lookup(s.searchIndex().Prefix(pinyin.StripTones(query)))
}

func (s *Store) searchIndex() *index.Index[*foldedKey] {
	if s.search != nil {
		return s.search
	}

	var keys []*foldedKey
	for pos, e := range s.entries {
		if e == nil {
			continue
		}
		keys = append(keys, &foldedKey{folded: pinyin.StripTones(e.Traditional), pos: pos})
		if e.Simplified != e.Traditional {
			keys = append(keys, &foldedKey{folded: pinyin.StripTones(e.Simplified), pos: pos})
		}
		if r := pinyin.StripTones(e.Reading); r != "" {
			keys = append(keys, &foldedKey{folded: r, pos: pos})
		}
	}
	s.search = index.New(keys)
	return s.search
}

func (s *Store) lookup(keys []*foldedKey) []*entry.Entry {
	positions := make([]int, 0, len(keys))
	for _, k := range keys {
		positions = append(positions, k.pos)
	}
	slices.Sort(positions)
	return s.collect(slices.Compact(positions))
}

func (s *Store) collect(positions []int) []*entry.Entry {
	var out []*entry.Entry
	for _, pos := range positions {
		if e := s.entries[pos]; e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

func removePos[K comparable](m map[K][]int, k K, pos int) []int {
	return slices.DeleteFunc(m[k], func(p int) bool {
		return p == pos
	})
}
