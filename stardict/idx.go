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

// wordDataSize is the size of the offset and size fields following each
// word in the index.
const wordDataSize = 8

// Word is an .idx file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// SortWords sorts words by byte order. Words with the same value keep
// their relative order.
func SortWords(words []*Word) {
	slices.SortStableFunc(words, func(a, b *Word) int {
		return strings.Compare(a.Word, b.Word)
	})
}

// MakeIndex encodes words as an .idx file with 32-bit offsets. Offsets
// must fit in 32 bits.
func MakeIndex(words []*Word) []byte {
	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0) // Add the zero byte terminator.
		if w.Offset > math.MaxUint32 {
			panic(fmt.Sprintf("word offset too large %d", w.Offset))
		}
		//nolint:gosec // bounds checked above.
		b = binary.BigEndian.AppendUint32(b, uint32(w.Offset))
		b = binary.BigEndian.AppendUint32(b, w.Size)
	}
	return b
}

// ReadIndex reads an .idx file with 32-bit offsets.
func ReadIndex(r io.Reader) ([]*Word, error) {
	s := bufio.NewScanner(r)
	s.Split(splitIndex)

	var words []*Word
	for s.Scan() {
		b := s.Bytes()
		i := bytes.IndexByte(b, 0)
		if i < 0 || len(b) != i+1+wordDataSize {
			return nil, fmt.Errorf("%w: truncated index entry", io.ErrUnexpectedEOF)
		}
		words = append(words, &Word{
			Word:   string(b[:i]),
			Offset: uint64(binary.BigEndian.Uint32(b[i+1:])),
			Size:   binary.BigEndian.Uint32(b[i+5:]),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	return words, nil
}

// splitIndex splits an index entry in the index file.
func splitIndex(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + wordDataSize
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
