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

// Package freq imports word frequency lists and assigns frequency ranks to
// dictionary entries.
//
// A frequency list starts with four header lines followed by lines of the
// form "<rank> <score> <word>" ordered by rank.
package freq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/store"
)

var (
	// ErrUnknownKind indicates an unsupported frequency list kind.
	ErrUnknownKind = errors.New("unknown frequency kind")

	// ErrMalformedLine indicates a line that is not a frequency record.
	ErrMalformedLine = errors.New("malformed frequency line")
)

// headerLines is the number of lines preceding the records.
const headerLines = 4

var lineRE = regexp.MustCompile(`^(\d+)\s([\d.]+)\s(.+)$`)

// Kind is the source of a frequency list.
type Kind string

const (
	// KindWeb is a word frequency list compiled from web text.
	KindWeb Kind = "web"

	// KindLCMC is a word frequency list compiled from the Lancaster Corpus
	// of Mandarin Chinese.
	KindLCMC Kind = "lcmc"
)

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindWeb, KindLCMC:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// rank returns a pointer to the entry's rank field for the kind.
func (k Kind) rank(e *entry.Entry) *int {
	if k == KindLCMC {
		return &e.LCMCRank
	}
	return &e.WebRank
}

// Options are options for parsing a frequency list.
type Options struct {
	// MinScore is the lowest score read. Parsing stops at the first record
	// with a lower score.
	MinScore float64
}

// DefaultOptions is the default options for parsing a frequency list.
var DefaultOptions = &Options{
	MinScore: 2,
}

// Word is a frequency record.
type Word struct {
	Rank  int
	Score float64
	Word  string
}

// Stats are counts for an import.
type Stats struct {
	// Parsed is the number of records read.
	Parsed int

	// Assigned is the number of words whose entries received a rank.
	Assigned int

	// Unmatched is the number of words without a dictionary entry.
	Unmatched int

	// Conflicts is the number of words whose entries already had a
	// different rank.
	Conflicts int
}

// Parse reads a frequency list.
func Parse(r io.Reader, opts *Options) ([]*Word, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	var words []*Word
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		if n <= headerLines {
			continue
		}
		line := strings.TrimSuffix(s.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := lineRE.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: %w: %q", n, ErrMalformedLine, line)
		}
		rank, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", n, ErrMalformedLine, err)
		}
		score, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", n, ErrMalformedLine, err)
		}
		if score < opts.MinScore {
			break
		}

		words = append(words, &Word{
			Rank:  rank,
			Score: score,
			Word:  strings.TrimSpace(m[3]),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading frequencies: %w", err)
	}
	return words, nil
}

// Apply sets the rank of each word on every entry with a matching
// simplified headword. Words whose entries already have a different rank
// are skipped.
func Apply(s *store.Store, kind Kind, words []*Word) (*Stats, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	stats := &Stats{Parsed: len(words)}
	for _, w := range words {
		matches := s.FindBySimplified(w.Word)
		if len(matches) == 0 {
			stats.Unmatched++
			continue
		}
		if cur := *kind.rank(matches[0]); cur != 0 && cur != w.Rank {
			stats.Conflicts++
			continue
		}
		stats.Assigned++
		s.UpdateBySimplified(w.Word, func(e *entry.Entry) {
			*kind.rank(e) = w.Rank
		})
	}
	return stats, nil
}

// Import parses a frequency list and applies it to s.
func Import(s *store.Store, kind Kind, r io.Reader, opts *Options) (*Stats, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	words, err := Parse(r, opts)
	if err != nil {
		return nil, err
	}
	return Apply(s, kind, words)
}

// ImportFile imports the frequency list at path.
func ImportFile(s *store.Store, kind Kind, path string, opts *Options) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	stats, err := Import(s, kind, f, opts)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return stats, nil
}
