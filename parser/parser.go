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

// Package parser reads CC-CEDICT formatted dictionary text.
//
// Each entry line has the form
//
//	traditional simplified [reading] /gloss 1/gloss 2/.../
//
// Lines beginning with '#' are comments. Blank lines are skipped.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/pinyin"
)

// ErrMalformedLine indicates that a line is not a comment and not a valid
// entry.
var ErrMalformedLine = errors.New("malformed line")

// maxLineSize is the longest line the Scanner accepts.
const maxLineSize = 1024 * 1024

var lineRE = regexp.MustCompile(`^(\S+) (\S+) \[([^\]]*)\] /(.*)/$`)

// LineError is a malformed line.
type LineError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the line content.
	Text string
}

// Error implements [error].
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, ErrMalformedLine, e.Text)
}

// Unwrap returns ErrMalformedLine.
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// Scanner scans dictionary entries from start to end. Malformed lines are
// recorded and skipped.
type Scanner struct {
	s     *bufio.Scanner
	line  int
	entry *entry.Entry

	malformed []*LineError
}

// NewScanner returns a new Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{
		s: s,
	}
}

// Scan advances to the next entry. It returns false if the scan stops
// either by reaching the end of the input or an error.
func (s *Scanner) Scan() bool {
	for s.s.Scan() {
		s.line++
		text := strings.TrimSuffix(s.s.Text(), "\r")
		if s.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		e, err := ParseLine(text)
		if err != nil {
			s.malformed = append(s.malformed, &LineError{
				Line: s.line,
				Text: text,
			})
			continue
		}
		s.entry = e
		return true
	}
	s.entry = nil
	return false
}

// Entry returns the most recent entry read by Scan.
func (s *Scanner) Entry() *entry.Entry {
	return s.entry
}

// Line returns the line number of the most recent line read.
func (s *Scanner) Line() int {
	return s.line
}

// Malformed returns the malformed lines seen so far.
func (s *Scanner) Malformed() []*LineError {
	return s.malformed
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// ParseLine parses a single entry line. The reading is normalized and
// empty glosses are dropped. Senses separated by ';' inside a gloss become
// separate translations.
func ParseLine(line string) (*entry.Entry, error) {
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	e := &entry.Entry{
		Traditional: m[1],
		Simplified:  m[2],
		Reading:     pinyin.Normalize(m[3]),
	}
	for _, t := range strings.FieldsFunc(m[4], isGlossSep) {
		if t = strings.TrimSpace(t); t != "" {
			e.Translations = append(e.Translations, t)
		}
	}
	return e, nil
}

func isGlossSep(r rune) bool {
	return r == '/' || r == ';'
}
