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

// Package entry defines the dictionary entry records shared by the parser,
// the entry store and the reference resolvers.
package entry

import (
	"slices"
	"strings"
)

// Key is the natural key of a dictionary entry.
type Key struct {
	Traditional string
	Simplified  string
	Reading     string
}

// String returns the key in "trad|simp|reading" form.
func (k Key) String() string {
	return k.Traditional + "|" + k.Simplified + "|" + k.Reading
}

// Ref is a reference to another dictionary entry. Reading is empty when the
// reference should be resolved by headwords alone.
type Ref struct {
	Traditional string
	Simplified  string
	Reading     string
}

// Key returns the entry key addressed by the reference.
func (r Ref) Key() Key {
	return Key(r)
}

// HasHeadwords reports whether the reference names a headword.
func (r Ref) HasHeadwords() bool {
	return r.Traditional != "" || r.Simplified != ""
}

// String returns the reference in "trad|simp|reading" form.
func (r Ref) String() string {
	return Key(r).String()
}

// Token returns the canonical bracketed token for the reference that is
// spliced into rewritten translations.
func (r Ref) Token() string {
	return "[" + r.String() + "]"
}

// Variant is a variant entry recorded on a canonical entry along with the
// qualifier that preceded the "variant of" annotation (e.g. "old"). Type is
// empty for plain variants.
type Variant struct {
	Ref  Ref
	Type string
}

// String returns the variant in "trad|simp|reading|type" form.
func (v Variant) String() string {
	return v.Ref.String() + "|" + v.Type
}

// Entry is a single dictionary entry.
type Entry struct {
	Traditional string
	Simplified  string

	// Reading is the normalized pinyin reading.
	Reading string

	// Translations are the glosses in display order.
	Translations []string

	Classifiers []Ref
	Variants    []Variant

	// HSK is the HSK level of the word. Zero means unset.
	HSK int

	// WebRank and LCMCRank are word frequency ranks. Zero means unset.
	WebRank  int
	LCMCRank int
}

// Key returns the entry's natural key.
func (e *Entry) Key() Key {
	return Key{
		Traditional: e.Traditional,
		Simplified:  e.Simplified,
		Reading:     e.Reading,
	}
}

// Ref returns a reference that points at the entry.
func (e *Entry) Ref() Ref {
	return Ref(e.Key())
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Translations = slices.Clone(e.Translations)
	c.Classifiers = slices.Clone(e.Classifiers)
	c.Variants = slices.Clone(e.Variants)
	return &c
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Traditional)
	b.WriteString(" ")
	b.WriteString(e.Simplified)
	b.WriteString(" [")
	b.WriteString(e.Reading)
	b.WriteString("] /")
	for _, t := range e.Translations {
		b.WriteString(t)
		b.WriteString("/")
	}
	return b.String()
}

// JoinRefs joins references with ";" in their "trad|simp|reading" form.
func JoinRefs(refs []Ref) string {
	s := make([]string, 0, len(refs))
	for _, r := range refs {
		s = append(s, r.String())
	}
	return strings.Join(s, ";")
}

// JoinVariants joins variants with ";" in their "trad|simp|reading|type"
// form.
func JoinVariants(variants []Variant) string {
	s := make([]string, 0, len(variants))
	for _, v := range variants {
		s = append(s, v.String())
	}
	return strings.Join(s, ";")
}
