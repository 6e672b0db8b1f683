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

package testutil

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// MakeSourceOptions are options for MakeTempSource.
type MakeSourceOptions struct {
	// Ext is an optional file extension for the source file. Defaults to
	// '.u8.dz' if DictZip is true, '.u8.gz' if Gzip is true and '.u8'
	// otherwise.
	Ext string

	// Gzip indicates that the source should be compressed with gzip.
	Gzip bool

	// DictZip indicates that the source should be compressed with DictZip.
	DictZip bool
}

// GetExt returns the file extension for the options.
func (o *MakeSourceOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		if o.DictZip {
			return ".u8.dz"
		}
		if o.Gzip {
			return ".u8.gz"
		}
	}
	return ".u8"
}

// MakeSource creates CC-CEDICT source text from the given lines.
func MakeSource(lines []string) []byte {
	var b bytes.Buffer
	b.WriteString("# CC-CEDICT\n")
	b.WriteString("#! version=1\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.Bytes()
}

// MakeTempSource creates a temporary CC-CEDICT source file and returns the
// file. The file is removed when the test ends.
func MakeTempSource(t *testing.T, lines []string, opts *MakeSourceOptions) *os.File {
	t.Helper()
	if opts == nil {
		opts = &MakeSourceOptions{}
	}

	f, err := os.CreateTemp(t.TempDir(), "cedict.*"+opts.GetExt())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = f.Close()
	})

	d := MakeSource(lines)

	switch {
	case opts.DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = z.Write(d); err != nil {
			t.Fatal(err)
		}
		if err = z.Close(); err != nil {
			t.Fatal(err)
		}
	case opts.Gzip:
		z := gzip.NewWriter(f)
		if _, err = z.Write(d); err != nil {
			t.Fatal(err)
		}
		if err = z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err = f.Write(d); err != nil {
			t.Fatal(err)
		}
	}

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		t.Fatal(err)
	}

	return f
}

// WriteFile writes content to name under a temporary directory and returns
// the path.
func WriteFile(t *testing.T, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
