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

// Package cedict implements a library for reading CC-CEDICT dictionaries in
// pure Go and resolving the cross references between their entries.
//
// A CC-CEDICT source is a UTF-8 text file with one entry per line:
//
//	traditional simplified [reading] /gloss 1/gloss 2/.../
//
// Glosses embed references to other entries in several forms:
//  1. Classifier lists such as "CL:個|个[ge4]".
//  2. Variant annotations such as "old variant of 鋪|铺[pu4]".
//  3. Free references such as "see also 一樣|一样[yi1 yang4]".
//
// Read parses the source into an entry store and resolves the references:
// classifiers move into the entry's Classifiers field, variant entries are
// merged into their canonical entries and other references are rewritten
// into canonical "[trad|simp|reading]" tokens. Problems found along the way
// are reported as diagnostics and never stop the run.
//
// Sources may be plain text, gzip compressed (.gz) or compressed with the
// dictzip format (.dz).
//
// More info on the CC-CEDICT format can be found at this URL:
// https://cc-cedict.org/wiki/format:syntax
package cedict
