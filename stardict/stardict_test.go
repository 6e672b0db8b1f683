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

package stardict_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-cedict/entry"
	"github.com/ianlewis/go-cedict/stardict"
)

// TestArticle tests Article.
func TestArticle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entry    *entry.Entry
		expected string
	}{
		{
			name: "classifiers and references",
			entry: &entry.Entry{
				Traditional:  "愛",
				Simplified:   "爱",
				Reading:      "ai4",
				Translations: []string{"to love", "see [喜歡|喜欢|xi3 huan]", "A&B"},
				Classifiers: []entry.Ref{
					{Traditional: "個", Simplified: "个", Reading: "ge4"},
				},
			},
			expected: `<p><b>愛|爱</b> [ai4]</p>` +
				`<ol><li>to love</li><li>see <a href="bword://喜歡">喜歡|喜欢 [xi3 huan]</a></li><li>A&amp;B</li></ol>` +
				`<p>CL: <a href="bword://個">個|个 [ge4]</a></p>`,
		},
		{
			name: "variants and hsk",
			entry: &entry.Entry{
				Traditional:  "鋪",
				Simplified:   "铺",
				Reading:      "pu4",
				Translations: []string{"store"},
				Variants: []entry.Variant{
					{Ref: entry.Ref{Traditional: "舖", Simplified: "铺", Reading: "pu4"}},
					{Ref: entry.Ref{Traditional: "舗", Simplified: "铺", Reading: "pu4"}, Type: "Japanese"},
				},
				HSK: 7,
			},
			expected: `<p><b>鋪|铺</b> [pu4]</p><ol><li>store</li></ol>` +
				`<p>Variants: <a href="bword://舖">舖|铺 [pu4]</a>, <a href="bword://舗">舗|铺 [pu4]</a> (Japanese)</p>` +
				`<p>HSK 7-9</p>`,
		},
		{
			name: "reading only reference",
			entry: &entry.Entry{
				Traditional:  "好",
				Simplified:   "好",
				Reading:      "hao4",
				Translations: []string{"also pr. [||hao3]"},
			},
			expected: `<p><b>好</b> [hao4]</p><ol><li>also pr. [hao3]</li></ol>`,
		},
		{
			name: "headword only reference",
			entry: &entry.Entry{
				Traditional:  "瞭",
				Simplified:   "了",
				Reading:      "liao3",
				Translations: []string{"see [了|了|]"},
			},
			expected: `<p><b>瞭|了</b> [liao3]</p><ol><li>see <a href="bword://了">了</a></li></ol>`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, stardict.Article(test.entry)); diff != "" {
				t.Errorf("Article (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestMakeIndex tests that MakeIndex output can be read back.
func TestMakeIndex(t *testing.T) {
	t.Parallel()

	words := []*stardict.Word{
		{Word: "hoge", Offset: 123, Size: 456},
		{Word: "fuga pico", Offset: 12, Size: 45},
	}

	got, err := stardict.ReadIndex(bytes.NewReader(stardict.MakeIndex(words)))
	if err != nil {
		t.Fatalf("ReadIndex: %v", err)
	}
	if diff := cmp.Diff(words, got); diff != "" {
		t.Errorf("ReadIndex (-want, +got):\n%s", diff)
	}

	_, err = stardict.ReadIndex(bytes.NewReader([]byte("hoge\x00\x00\x01")))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadIndex: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

// TestMakeSyn tests that MakeSyn output can be read back.
func TestMakeSyn(t *testing.T) {
	t.Parallel()

	syns := []*stardict.Synonym{
		{Word: "ai", OriginalWordIndex: 3},
		{Word: "nihao", OriginalWordIndex: 70000},
	}

	got, err := stardict.ReadSyn(bytes.NewReader(stardict.MakeSyn(syns)))
	if err != nil {
		t.Fatalf("ReadSyn: %v", err)
	}
	if diff := cmp.Diff(syns, got); diff != "" {
		t.Errorf("ReadSyn (-want, +got):\n%s", diff)
	}

	_, err = stardict.ReadSyn(bytes.NewReader([]byte("ai\x00\x00")))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSyn: got %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

// TestWrite tests Write.
func TestWrite(t *testing.T) {
	t.Parallel()

	entries := []*entry.Entry{
		{
			Traditional:  "愛",
			Simplified:   "爱",
			Reading:      "ai4",
			Translations: []string{"to love"},
		},
		{
			Traditional:  "你",
			Simplified:   "你",
			Reading:      "ni3",
			Translations: []string{"you"},
		},
	}
	a1 := stardict.Article(entries[0])
	a2 := stardict.Article(entries[1])

	tests := []struct {
		name    string
		dictzip bool
		ext     string
	}{
		{
			name: "plain",
			ext:  ".dict",
		},
		{
			name:    "dictzip",
			dictzip: true,
			ext:     ".dict.dz",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			files, err := stardict.Write(dir, entries, &stardict.Options{
				Name:        "test",
				Bookname:    "Test",
				Description: "line one\nline two",
				DictZip:     test.dictzip,
			})
			if err != nil {
				t.Fatalf("Write: %v", err)
			}
			if diff := cmp.Diff(dir+"/test"+test.ext, files.Dict); diff != "" {
				t.Errorf("Dict path (-want, +got):\n%s", diff)
			}

			ifo, err := os.ReadFile(files.Ifo)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			expectedIfo := "StarDict's dict ifo file\n" +
				"version=3.0.0\n" +
				"bookname=Test\n" +
				"wordcount=3\n" +
				"idxfilesize=36\n" +
				"synwordcount=2\n" +
				"sametypesequence=h\n" +
				"description=line one<br>line two\n"
			if diff := cmp.Diff(expectedIfo, string(ifo)); diff != "" {
				t.Errorf(".ifo (-want, +got):\n%s", diff)
			}

			idx, err := os.Open(files.Idx)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer idx.Close()
			words, err := stardict.ReadIndex(idx)
			if err != nil {
				t.Fatalf("ReadIndex: %v", err)
			}
			//nolint:gosec // test data is small.
			expectedWords := []*stardict.Word{
				{Word: "你", Offset: uint64(len(a1)), Size: uint32(len(a2))},
				{Word: "愛", Offset: 0, Size: uint32(len(a1))},
				{Word: "爱", Offset: 0, Size: uint32(len(a1))},
			}
			if diff := cmp.Diff(expectedWords, words); diff != "" {
				t.Errorf(".idx (-want, +got):\n%s", diff)
			}

			syn, err := os.Open(files.Syn)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer syn.Close()
			syns, err := stardict.ReadSyn(syn)
			if err != nil {
				t.Fatalf("ReadSyn: %v", err)
			}
			expectedSyns := []*stardict.Synonym{
				{Word: "ai", OriginalWordIndex: 1},
				{Word: "ni", OriginalWordIndex: 0},
			}
			if diff := cmp.Diff(expectedSyns, syns); diff != "" {
				t.Errorf(".syn (-want, +got):\n%s", diff)
			}

			dict := readDict(t, files.Dict, test.dictzip, len(a1)+len(a2))
			if diff := cmp.Diff(a1+a2, dict); diff != "" {
				t.Errorf(".dict (-want, +got):\n%s", diff)
			}
		})
	}
}

func readDict(t *testing.T, path string, dz bool, size int) string {
	t.Helper()

	if !dz {
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		return string(b)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	z, err := dictzip.NewReader(f)
	if err != nil {
		t.Fatalf("dictzip.NewReader: %v", err)
	}
	b := make([]byte, size)
	if _, err := z.ReadAt(b, 0); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadAt: %v", err)
	}
	return string(b)
}
