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

package entry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-cedict/entry"
)

// TestEntry_Clone tests Entry.Clone.
func TestEntry_Clone(t *testing.T) {
	t.Parallel()

	e := &entry.Entry{
		Traditional:  "愛",
		Simplified:   "爱",
		Reading:      "ai4",
		Translations: []string{"to love"},
		Classifiers:  []entry.Ref{{Traditional: "個", Simplified: "个", Reading: "ge4"}},
		Variants:     []entry.Variant{{Ref: entry.Ref{Traditional: "旡", Simplified: "旡", Reading: "ai4"}}},
	}
	c := e.Clone()
	if diff := cmp.Diff(e, c); diff != "" {
		t.Fatalf("Clone (-want, +got):\n%s", diff)
	}

	c.Translations[0] = "changed"
	c.Classifiers[0].Reading = "changed"
	c.Variants[0].Type = "changed"
	if e.Translations[0] != "to love" || e.Classifiers[0].Reading != "ge4" || e.Variants[0].Type != "" {
		t.Fatalf("Clone shares state with original: %+v", e)
	}
}

// TestRef_Token tests Ref.Token.
func TestRef_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ref      entry.Ref
		expected string
	}{
		{
			name:     "full",
			ref:      entry.Ref{Traditional: "一樣", Simplified: "一样", Reading: "yi1 yang4"},
			expected: "[一樣|一样|yi1 yang4]",
		},
		{
			name:     "reading only",
			ref:      entry.Ref{Reading: "hao3"},
			expected: "[||hao3]",
		},
		{
			name:     "no reading",
			ref:      entry.Ref{Traditional: "電腦", Simplified: "电脑"},
			expected: "[電腦|电脑|]",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, test.ref.Token()); diff != "" {
				t.Fatalf("Token (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestJoinVariants tests JoinVariants and JoinRefs.
func TestJoinVariants(t *testing.T) {
	t.Parallel()

	refs := []entry.Ref{
		{Traditional: "個", Simplified: "个", Reading: "ge4"},
		{Traditional: "位", Simplified: "位", Reading: "wei4"},
	}
	if diff := cmp.Diff("個|个|ge4;位|位|wei4", entry.JoinRefs(refs)); diff != "" {
		t.Errorf("JoinRefs (-want, +got):\n%s", diff)
	}

	variants := []entry.Variant{
		{Ref: refs[0], Type: "old"},
		{Ref: refs[1]},
	}
	if diff := cmp.Diff("個|个|ge4|old;位|位|wei4|", entry.JoinVariants(variants)); diff != "" {
		t.Errorf("JoinVariants (-want, +got):\n%s", diff)
	}

	if got := entry.JoinRefs(nil); got != "" {
		t.Errorf("JoinRefs(nil) = %q, want empty", got)
	}
}
