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

// Package pinyin canonicalizes pinyin readings as written in CC-CEDICT so
// that readings taken from entry lines and from embedded references compare
// equal.
//
// Normalization applies, in order:
//  1. Unicode NFC composition.
//  2. Whitespace folding: leading and trailing whitespace is removed and
//     internal whitespace spans become a single ASCII space.
//  3. "u:" and "U:" become "ü" and "Ü".
//  4. The neutral tone marker '5' is removed.
//  5. Unicode NFC composition of the result.
//
// Normalization is idempotent.
package pinyin

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewTransformer returns a [transform.Transformer] that normalizes pinyin
// readings. Output is composed again after folding since dropping a tone
// marker can join a letter with a following combining mark.
func NewTransformer() transform.Transformer {
	return transform.Chain(norm.NFC, &Folder{}, norm.NFC)
}

// Normalize returns the canonical form of the given reading.
func Normalize(reading string) string {
	s, _, err := transform.String(NewTransformer(), reading)
	if err != nil {
		// The folder only returns ErrShortDst and ErrShortSrc, which
		// transform.String handles internally.
		return reading
	}
	return s
}

// NewToneFolder returns a [transform.Transformer] that folds readings and
// headwords for loose searching. Tone numbers and whitespace are removed
// and letters are lower cased so that "Ai4" and "ai" fold to the same
// value. Headwords pass through unchanged apart from NFC composition.
func NewToneFolder() transform.Transformer {
	return transform.Chain(
		NewTransformer(),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.IsSpace(r) || ('0' <= r && r <= '9')
		})),
		runes.Map(unicode.ToLower),
	)
}

// StripTones folds the given string with NewToneFolder.
func StripTones(s string) string {
	folded, _, err := transform.String(NewToneFolder(), s)
	if err != nil {
		return s
	}
	return folded
}
