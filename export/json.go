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

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ianlewis/go-cedict/entry"
)

type jsonRef struct {
	Traditional string `json:"traditional"`
	Simplified  string `json:"simplified"`
	Reading     string `json:"reading"`
}

type jsonVariant struct {
	jsonRef
	Type string `json:"type,omitempty"`
}

type jsonEntry struct {
	Traditional  string        `json:"traditional"`
	Simplified   string        `json:"simplified"`
	Reading      string        `json:"reading"`
	Translations []string      `json:"translations"`
	Classifiers  []jsonRef     `json:"classifiers,omitempty"`
	Variants     []jsonVariant `json:"variants,omitempty"`
	HSK          int           `json:"hsk,omitempty"`
	WebRank      int           `json:"web_rank,omitempty"`
	LCMCRank     int           `json:"lcmc_rank,omitempty"`
}

func newJSONEntry(e *entry.Entry) *jsonEntry {
	j := &jsonEntry{
		Traditional:  e.Traditional,
		Simplified:   e.Simplified,
		Reading:      e.Reading,
		Translations: e.Translations,
		HSK:          e.HSK,
		WebRank:      e.WebRank,
		LCMCRank:     e.LCMCRank,
	}
	if j.Translations == nil {
		j.Translations = []string{}
	}
	for _, c := range e.Classifiers {
		j.Classifiers = append(j.Classifiers, jsonRef(c))
	}
	for _, v := range e.Variants {
		j.Variants = append(j.Variants, jsonVariant{
			jsonRef: jsonRef(v.Ref),
			Type:    v.Type,
		})
	}
	return j
}

// WriteJSON writes entries to w as an indented JSON array.
func WriteJSON(w io.Writer, entries []*entry.Entry) error {
	out := make([]*jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, newJSONEntry(e))
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// WriteJSONFile writes entries to the JSON file at path.
func WriteJSONFile(path string, entries []*entry.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", path, err)
	}

	if err := WriteJSON(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %q: %w", path, err)
	}
	return nil
}
