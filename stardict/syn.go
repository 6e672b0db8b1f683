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

package stardict

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
)

// synDataSize is the size of the original word index following each
// synonym.
const synDataSize = 4

// Synonym is a .syn file entry. It maps an alternate spelling to the
// position of a word in the .idx file.
type Synonym struct {
	Word string

	// OriginalWordIndex is the position of the word in the .idx file.
	OriginalWordIndex uint32
}

// SortSynonyms sorts synonyms by byte order. Synonyms with the same value
// keep their relative order.
func SortSynonyms(syns []*Synonym) {
	slices.SortStableFunc(syns, func(a, b *Synonym) int {
		return strings.Compare(a.Word, b.Word)
	})
}

// MakeSyn encodes synonyms as a .syn file.
func MakeSyn(syns []*Synonym) []byte {
	b := []byte{}
	for _, s := range syns {
		b = append(b, []byte(s.Word)...)
		b = append(b, 0)
		b = binary.BigEndian.AppendUint32(b, s.OriginalWordIndex)
	}
	return b
}

// ReadSyn reads a .syn file.
func ReadSyn(r io.Reader) ([]*Synonym, error) {
	s := bufio.NewScanner(r)
	s.Split(splitSyn)

	var syns []*Synonym
	for s.Scan() {
		b := s.Bytes()
		i := bytes.IndexByte(b, 0)
		if i < 0 || len(b) != i+1+synDataSize {
			return nil, fmt.Errorf("%w: truncated synonym entry", io.ErrUnexpectedEOF)
		}
		syns = append(syns, &Synonym{
			Word:              string(b[:i]),
			OriginalWordIndex: binary.BigEndian.Uint32(b[i+1:]),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading synonyms: %w", err)
	}
	return syns, nil
}

// makeSynonyms returns the synonyms pointing readings at words. words must
// already be sorted. Each reading is paired with the word of the same
// entry.
func makeSynonyms(words []*Word, readings map[*Word]string) ([]*Synonym, error) {
	if len(words) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d words", ErrTooLarge, len(words))
	}
	type pair struct {
		word  string
		index int
	}
	seen := map[pair]bool{}
	var syns []*Synonym
	for i, w := range words {
		r, ok := readings[w]
		if !ok || r == "" || r == w.Word {
			continue
		}
		p := pair{r, i}
		if seen[p] {
			continue
		}
		seen[p] = true
		//nolint:gosec // bounds checked above.
		syns = append(syns, &Synonym{Word: r, OriginalWordIndex: uint32(i)})
	}
	SortSynonyms(syns)
	return syns, nil
}

// splitSyn splits a synonym entry in the .syn file.
func splitSyn(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte. Request the 4 byte original word index.
		tokenSize := i + 1 + synDataSize
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}
