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

// Package refmatch extracts references to other dictionary entries that
// are embedded in CC-CEDICT glosses.
//
// References take the general form "trad|simp[reading]" where, depending on
// the annotation, the simplified form, the reading or the headwords may be
// missing. Because the syntax is ambiguous without readings the caller
// selects one of four shapes:
//
//	ShapeReading      trad[|simp][reading]    reading required
//	ShapeHeadwords    trad|simp               no reading
//	ShapeOptional     trad[|simp][[reading]]  simplified and reading optional
//	ShapeReadingOnly  [trad[|simp]][reading]  reading required, headwords optional
//
// The package performs no lookups. Resolving matches against known entries
// is the job of package resolve.
package refmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/pinyin"
)

// Shape selects the reference syntax to extract.
type Shape int

const (
	// ShapeReading matches a traditional headword followed by an optional
	// simplified headword and a mandatory bracketed reading.
	ShapeReading Shape = iota + 1

	// ShapeHeadwords matches a traditional and simplified headword pair
	// without a reading.
	ShapeHeadwords

	// ShapeOptional matches a traditional headword with optional simplified
	// headword and optional reading.
	ShapeOptional

	// ShapeReadingOnly matches a mandatory bracketed reading optionally
	// preceded by headwords.
	ShapeReadingOnly
)

// String implements [fmt.Stringer].
func (s Shape) String() string {
	switch s {
	case ShapeReading:
		return "reading"
	case ShapeHeadwords:
		return "headwords"
	case ShapeOptional:
		return "optional"
	case ShapeReadingOnly:
		return "reading-only"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Submatch groups are always traditional, simplified, reading. Shapes
// without a reading group only have the first two.
var patterns = map[Shape]string{
	ShapeReading:     `([^|\[(: ]+?)(?:\|([^\[]*))?\[([^\]]*)\]`,
	ShapeHeadwords:   `([^|\[(: ]+?)\|([^\[),: ]*)`,
	ShapeOptional:    `([^|\[(:, ]+)(?:\|([^\[():, ]*))?(?:\[([^\]]*)\])?`,
	ShapeReadingOnly: `(?:([^|\[(: ]+?)(?:\|([^\[]*))?)?\[([^\]]*)\]`,
}

var (
	unanchored = compile("")
	anchored   = compile("^")
)

func compile(prefix string) map[Shape]*regexp.Regexp {
	m := make(map[Shape]*regexp.Regexp, len(patterns))
	for shape, p := range patterns {
		m[shape] = regexp.MustCompile(prefix + "(?:" + p + ")")
	}
	return m
}

// Match is a reference found in a text.
type Match struct {
	// Ref is the extracted reference. Simplified defaults to Traditional
	// when omitted. Reading is normalized.
	Ref entry.Ref

	// HasReading is true if the text supplied a bracketed reading.
	HasReading bool

	// Start and End are the byte offsets of the match in the text.
	Start int
	End   int
}

// Find returns all non-overlapping matches of the shape in text, left to
// right.
func Find(text string, shape Shape) []Match {
	re, ok := unanchored[shape]
	if !ok {
		return nil
	}

	var matches []Match
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, newMatch(text, loc))
	}
	return matches
}

// MatchPrefix matches the shape at the start of text.
func MatchPrefix(text string, shape Shape) (Match, bool) {
	re, ok := anchored[shape]
	if !ok {
		return Match{}, false
	}

	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	return newMatch(text, loc), true
}

// newMatch builds a Match from a submatch index slice.
func newMatch(text string, loc []int) Match {
	group := func(n int) (string, bool) {
		if 2*n+1 >= len(loc) || loc[2*n] < 0 {
			return "", false
		}
		return text[loc[2*n]:loc[2*n+1]], true
	}

	m := Match{
		Start: loc[0],
		End:   loc[1],
	}

	trad, hasTrad := group(1)
	simp, hasSimp := group(2)
	reading, hasReading := group(3)
	if hasTrad {
		m.Ref.Traditional = trad
		m.Ref.Simplified = trad
		if hasSimp {
			m.Ref.Simplified = simp
		}
	}
	if hasReading {
		m.HasReading = true
		m.Ref.Reading = pinyin.Normalize(reading)
	}
	return m
}

// ClassifierPrefix marks a classifier annotation.
const ClassifierPrefix = "CL:"

// SplitClassifiers returns the comma separated classifier references of a
// "CL:" annotation with surrounding whitespace removed. ok is false if the
// translation is not a classifier annotation.
func SplitClassifiers(translation string) (pieces []string, ok bool) {
	rest, ok := strings.CutPrefix(translation, ClassifierPrefix)
	if !ok {
		return nil, false
	}
	for _, p := range strings.Split(rest, ",") {
		pieces = append(pieces, strings.TrimSpace(p))
	}
	return pieces, true
}

// ErrUnparsable indicates that an annotation was recognized but its
// reference could not be extracted.
var ErrUnparsable = errors.New("unparsable reference")

var variantPrefix = regexp.MustCompile(`^(?:(\S*)\s)?variant of `)

// Variant is a parsed "variant of" annotation.
type Variant struct {
	// Qualifier is the word preceding "variant of", e.g. "old" or
	// "Japanese". It is empty for plain variants.
	Qualifier string

	// Match is the referenced entry. Offsets are relative to the
	// translation.
	Match Match
}

// ParseVariant parses a "(qualifier )?variant of <ref>" annotation. It
// returns (nil, nil) if the translation is not a variant annotation and
// ErrUnparsable if the reference after "variant of" could not be parsed.
func ParseVariant(translation string) (*Variant, error) {
	loc := variantPrefix.FindStringSubmatchIndex(translation)
	if loc == nil {
		return nil, nil
	}

	v := &Variant{}
	if loc[2] >= 0 {
		v.Qualifier = translation[loc[2]:loc[3]]
	}

	m, ok := MatchPrefix(translation[loc[1]:], ShapeOptional)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnparsable, translation)
	}
	m.Start += loc[1]
	m.End += loc[1]
	v.Match = m
	return v, nil
}
