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

package pinyin_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-cedict/pinyin"
)

// TestNormalize tests Normalize.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		reading  string
		expected string
	}{
		{
			name:     "already normalized",
			reading:  "ai4",
			expected: "ai4",
		},
		{
			name:     "internal whitespace",
			reading:  "yi1  \tyang4",
			expected: "yi1 yang4",
		},
		{
			name:     "surrounding whitespace",
			reading:  " ge4 ",
			expected: "ge4",
		},
		{
			name:     "u colon",
			reading:  "lu:4",
			expected: "lü4",
		},
		{
			name:     "upper case u colon",
			reading:  "Nu:3 er2",
			expected: "Nü3 er2",
		},
		{
			name:     "neutral tone",
			reading:  "lia3 qian2 r5",
			expected: "lia3 qian2 r",
		},
		{
			name:     "decomposed umlaut",
			reading:  "lu\u0308e4",
			expected: "lüe4",
		},
		{
			name:     "neutral tone inside u colon",
			reading:  "nu5:3",
			expected: "nü3",
		},
		{
			name:     "neutral tone before combining mark",
			reading:  "a5\u0301",
			expected: "\u00e1",
		},
		{
			name:     "u colon before combining mark",
			reading:  "u:\u0301",
			expected: "\u01d8",
		},
		{
			name:     "empty",
			reading:  "",
			expected: "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := pinyin.Normalize(test.reading)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Normalize(%q) (-want, +got):\n%s", test.reading, diff)
			}

			// Normalization is idempotent.
			if diff := cmp.Diff(got, pinyin.Normalize(got)); diff != "" {
				t.Fatalf("Normalize(Normalize(%q)) (-want, +got):\n%s", test.reading, diff)
			}
		})
	}
}

// FuzzNormalize checks that normalizing a normalized reading does not
// change it.
func FuzzNormalize(f *testing.F) {
	f.Add("ai4")
	f.Add("nu5:3")
	f.Add("lu:4 r5")
	f.Add(" yi1  yang4 ")
	f.Add("a5\u0301")
	f.Add("U5 :")

	f.Fuzz(func(t *testing.T, reading string) {
		once := pinyin.Normalize(reading)
		if diff := cmp.Diff(once, pinyin.Normalize(once)); diff != "" {
			t.Fatalf("Normalize(Normalize(%q)) (-want, +got):\n%s", reading, diff)
		}
	})
}

// TestStripTones tests StripTones.
func TestStripTones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "reading",
			input:    "Yi1 yang4",
			expected: "yiyang",
		},
		{
			name:     "u colon",
			input:    "lu:4",
			expected: "lü",
		},
		{
			name:     "headword",
			input:    "愛",
			expected: "愛",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, pinyin.StripTones(test.input)); diff != "" {
				t.Fatalf("StripTones (-want, +got):\n%s", diff)
			}
		})
	}
}
