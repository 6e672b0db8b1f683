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

// Package stardict writes dictionary entries as StarDict dictionaries.
//
// A StarDict dictionary is made of several files:
//  1. An .ifo file that contains metadata about the dictionary.
//  2. An .idx file that contains the dictionary index. It maps each headword
//     to the offset and size of its article in the .dict file.
//  3. A .dict file that contains the articles. The dict file can be
//     compressed using the dictzip format.
//  4. A .syn file that maps toneless pinyin readings to index entries so
//     that entries can be looked up by pronunciation.
//
// Articles are HTML. Both headwords of an entry are indexed and point at the
// same article. References to other entries are rendered as bword:// links.
//
// More info on the dictionary format can be found at this URL:
// https://github.com/huzheng001/stardict-3/blob/master/dict/doc/StarDictFileFormat
package stardict

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/pinyin"
)

// ErrTooLarge indicates that the articles do not fit 32-bit offsets.
var ErrTooLarge = errors.New("dictionary too large")

// Options are options for writing a dictionary.
type Options struct {
	// Name is the base name of the dictionary files.
	Name string

	// Bookname is the dictionary title.
	Bookname string

	// Description is an optional dictionary description.
	Description string

	// DictZip compresses the .dict file with dictzip.
	DictZip bool
}

// DefaultOptions is the default options for writing a dictionary.
var DefaultOptions = &Options{
	Name:     "cedict",
	Bookname: "CC-CEDICT",
}

// Files are the paths of a written dictionary.
type Files struct {
	Ifo  string
	Idx  string
	Dict string

	// Syn is empty when no entry has a reading.
	Syn string
}

// Write writes entries as a StarDict dictionary to dir.
func Write(dir string, entries []*entry.Entry, opts *Options) (*Files, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	name := opts.Name
	if name == "" {
		name = DefaultOptions.Name
	}
	bookname := opts.Bookname
	if bookname == "" {
		bookname = DefaultOptions.Bookname
	}

	var (
		dict     bytes.Buffer
		words    []*Word
		readings = map[*Word]string{}
	)
	for _, e := range entries {
		a := Article(e)
		offset := uint64(dict.Len())
		if offset+uint64(len(a)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, offset+uint64(len(a)))
		}
		dict.WriteString(a)

		//nolint:gosec // bounds checked above.
		size := uint32(len(a))
		w := &Word{Word: e.Traditional, Offset: offset, Size: size}
		words = append(words, w)
		readings[w] = pinyin.StripTones(e.Reading)
		if e.Simplified != e.Traditional {
			words = append(words, &Word{Word: e.Simplified, Offset: offset, Size: size})
		}
	}
	SortWords(words)
	idx := MakeIndex(words)
	syns, err := makeSynonyms(words, readings)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(dir, name)
	files := &Files{
		Ifo:  base + ".ifo",
		Idx:  base + ".idx",
		Dict: base + ".dict",
	}

	if err := os.WriteFile(files.Idx, idx, 0o644); err != nil {
		return nil, fmt.Errorf("error writing %q: %w", files.Idx, err)
	}

	if len(syns) > 0 {
		files.Syn = base + ".syn"
		if err := os.WriteFile(files.Syn, MakeSyn(syns), 0o644); err != nil {
			return nil, fmt.Errorf("error writing %q: %w", files.Syn, err)
		}
	}

	if opts.DictZip {
		files.Dict += ".dz"
		if err := writeDictZip(files.Dict, dict.Bytes()); err != nil {
			return nil, err
		}
	} else if err := os.WriteFile(files.Dict, dict.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("error writing %q: %w", files.Dict, err)
	}

	ifo := &Ifo{
		Bookname:     bookname,
		WordCount:    len(words),
		IdxFileSize:  len(idx),
		SynWordCount: len(syns),
		Description:  opts.Description,
	}
	if err := os.WriteFile(files.Ifo, ifo.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("error writing %q: %w", files.Ifo, err)
	}

	return files, nil
}

func writeDictZip(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", path, err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	if _, err := z.Write(b); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %q: %w", path, err)
	}
	return nil
}
