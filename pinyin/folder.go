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

package pinyin

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// neutralTone is the tone number CC-CEDICT uses for the neutral tone.
const neutralTone = '5'

// Folder performs pinyin folding on the input. It removes spaces from the
// beginning and end of the input, replaces all internal whitespace spans
// with a single ASCII space rune, rewrites the "u:" escape as "ü" and drops
// neutral tone markers.
type Folder struct {
	// notStart is true after encountering the first emitted rune.
	notStart bool

	// wsSpan is true if the transformer is currently handling a whitespace span.
	wsSpan bool
}

// Transform implements [transform.Transformer.Transform].
func (f *Folder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if f.notStart {
				f.wsSpan = true
			}
			continue
		}

		if c == neutralTone {
			// Dropped tone markers do not end a whitespace span.
			nSrc += size
			continue
		}

		out, consumed := c, size
		if c == 'u' || c == 'U' {
			// Tone markers between "u" and ":" are dropped so they do not
			// separate the escape.
			j := nSrc + size
			for j < len(src) && src[j] == neutralTone {
				j++
			}
			switch {
			case j < len(src):
				if src[j] == ':' {
					consumed = j + 1 - nSrc
					out = 'ü'
					if c == 'U' {
						out = 'Ü'
					}
				}
			case !atEOF:
				// Need the next byte to decide.
				return nDst, nSrc, transform.ErrShortSrc
			}
		}

		// NOTE: we cannot use size here because c could be utf8.RuneError in
		// which case size would be 1 but the length of utf8.RuneError is 3.
		need := utf8.RuneLen(out)
		if f.wsSpan {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if f.wsSpan {
			// Emit a single space if we are coming out of a whitespace span.
			dst[nDst] = ' '
			nDst++
			f.wsSpan = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], out)
		nSrc += consumed
		f.notStart = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *Folder) Reset() {
	*f = Folder{}
}
