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

package cedict

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/parser"
	"github.com/ianlewis/go-cedict/resolve"
	"github.com/ianlewis/go-cedict/store"
)

// ErrEmptyInput indicates that the source holds no dictionary entries.
var ErrEmptyInput = errors.New("empty input")

// Options are options for reading a dictionary.
type Options struct {
	// Strict makes duplicate entry keys an error.
	Strict bool
}

// DefaultOptions is the default options for reading a dictionary.
var DefaultOptions = &Options{
	Strict: false,
}

// Dictionary is a CC-CEDICT dictionary with resolved references.
type Dictionary struct {
	store     *store.Store
	malformed []*parser.LineError
	report    *resolve.Report
}

// ReadFile opens the source at path and reads it.
func ReadFile(path string, opts *Options) (*Dictionary, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d, err := Read(r, opts)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// Read parses a CC-CEDICT source and resolves its references.
func Read(r io.Reader, opts *Options) (*Dictionary, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	s := store.New(&store.Options{
		Strict: opts.Strict,
	})
	sc := parser.NewScanner(r)
	n := 0
	for sc.Scan() {
		if err := s.Insert(sc.Entry()); err != nil {
			return nil, fmt.Errorf("line %d: %w", sc.Line(), err)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}

	return &Dictionary{
		store:     s,
		malformed: sc.Malformed(),
		report:    resolve.Run(s),
	}, nil
}

// Store returns the dictionary's entry store.
func (d *Dictionary) Store() *store.Store {
	return d.store
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return d.store.Len()
}

// Entries returns copies of all entries in source order.
func (d *Dictionary) Entries() []*entry.Entry {
	return d.store.Snapshot()
}

// Malformed returns the source lines that could not be parsed.
func (d *Dictionary) Malformed() []*parser.LineError {
	return d.malformed
}

// Report returns the resolution report.
func (d *Dictionary) Report() *resolve.Report {
	return d.report
}

// Search returns the entries whose headwords or toneless reading match the
// query. Tone numbers, spaces and case are ignored.
func (d *Dictionary) Search(query string) []*entry.Entry {
	return d.store.Search(query)
}

// SearchPrefix returns the entries whose headwords or toneless reading start
// with the query.
func (d *Dictionary) SearchPrefix(query string) []*entry.Entry {
	return d.store.SearchPrefix(query)
}

// readCloser reads from r and closes every closer in order.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Open opens a CC-CEDICT source. Sources ending in .gz are decompressed
// with gzip and sources ending in .dz with dictzip.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		return &readCloser{
			Reader:  z,
			closers: []io.Closer{z, f},
		}, nil
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		return &readCloser{
			Reader:  io.NewSectionReader(z, 0, math.MaxInt64),
			closers: []io.Closer{f},
		}, nil
	default:
		return f, nil
	}
}
