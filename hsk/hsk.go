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

// Package hsk imports HSK vocabulary lists and assigns HSK levels to
// dictionary entries.
//
// A vocabulary list is made of level headers followed by numbered words:
//
//	// HSK 3.0 (Level 1)
//	1 爱
//	2 爸爸｜爸
//
// Level 7 stands for the combined levels 7 to 9. A word may list two forms
// separated by "｜" and may carry notes in fullwidth parentheses, which are
// ignored.
package hsk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/store"
)

// ErrMissingLevel indicates that a word appears before the first level
// header.
var ErrMissingLevel = errors.New("missing level header")

var (
	headerRE = regexp.MustCompile(`^//.*\(Level (\d)`)
	wordRE   = regexp.MustCompile(`^(\d+) (.*)$`)
	noteRE   = regexp.MustCompile(`（[^）]*）`)
)

// Word is a word of the vocabulary list.
type Word struct {
	Level int
	Forms []string
}

// Stats are counts for an import.
type Stats struct {
	// Entries is the number of words in the list.
	Entries int

	// Assigned is the number of forms whose entries received a level.
	Assigned int

	// Unmatched is the number of forms without a dictionary entry.
	Unmatched int

	// Duplicates is the number of forms whose entries already had a level.
	Duplicates int
}

func (s *Stats) add(o Stats) {
	s.Entries += o.Entries
	s.Assigned += o.Assigned
	s.Unmatched += o.Unmatched
	s.Duplicates += o.Duplicates
}

// LevelStats are the counts for one level.
type LevelStats struct {
	Level int
	Stats
}

// Result is the outcome of an import.
type Result struct {
	// Levels holds per level counts in list order.
	Levels []*LevelStats

	// Total is the sum over all levels.
	Total Stats
}

// Parse reads a vocabulary list.
func Parse(r io.Reader) ([]*Word, error) {
	var words []*Word
	level := 0
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSuffix(s.Text(), "\r")
		if m := headerRE.FindStringSubmatch(line); m != nil {
			// The pattern only matches a single digit.
			level, _ = strconv.Atoi(m[1])
			continue
		}
		m := wordRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if level == 0 {
			return nil, fmt.Errorf("line %d: %w", n, ErrMissingLevel)
		}

		w := &Word{Level: level}
		for _, f := range strings.Split(strings.TrimSpace(m[2]), "｜") {
			w.Forms = append(w.Forms, strings.TrimSpace(noteRE.ReplaceAllString(f, "")))
		}
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading hsk vocabulary: %w", err)
	}
	return words, nil
}

// Apply assigns the level of each word to every entry with a matching
// simplified headword. A form without entries is retried without a
// trailing "儿". Forms whose entries already have a level are skipped.
func Apply(s *store.Store, words []*Word) *Result {
	res := &Result{}
	var cur *LevelStats
	for _, w := range words {
		if cur == nil || cur.Level != w.Level {
			cur = &LevelStats{Level: w.Level}
			res.Levels = append(res.Levels, cur)
		}
		cur.Entries++

		forms := slices.Clone(w.Forms)
		for i := 0; i < len(forms); i++ {
			form := forms[i]
			matches := s.FindBySimplified(form)
			if len(matches) == 0 {
				if trimmed, ok := strings.CutSuffix(form, "儿"); ok && trimmed != "" {
					forms = append(forms, trimmed)
					continue
				}
				cur.Unmatched++
				continue
			}
			if matches[0].HSK != 0 {
				cur.Duplicates++
				continue
			}
			cur.Assigned++
			s.UpdateBySimplified(form, func(e *entry.Entry) {
				e.HSK = w.Level
			})
		}
	}

	for _, l := range res.Levels {
		res.Total.add(l.Stats)
	}
	return res
}

// Import parses a vocabulary list and applies it to s.
func Import(s *store.Store, r io.Reader) (*Result, error) {
	words, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Apply(s, words), nil
}

// ImportFile imports the vocabulary list at path.
func ImportFile(s *store.Store, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	res, err := Import(s, f)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return res, nil
}
