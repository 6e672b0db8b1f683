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
	"bytes"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

// ifoVersion is the format version written. It allows UTF-8 descriptions
// and sametypesequence.
const ifoVersion = "3.0.0"

// newlines replaces line breaks, which end a value, with the <br> markup
// StarDict readers expect.
var newlines = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "")

// Ifo is the metadata of a dictionary.
type Ifo struct {
	Bookname    string
	WordCount   int
	IdxFileSize int

	// SynWordCount is omitted from the file when zero.
	SynWordCount int

	Description string
}

// Bytes returns the .ifo file contents.
func (i *Ifo) Bytes() []byte {
	var b bytes.Buffer
	b.WriteString(ifoMagic + "\n")
	writeValue(&b, "version", ifoVersion)
	writeValue(&b, "bookname", i.Bookname)
	writeValue(&b, "wordcount", strconv.Itoa(i.WordCount))
	writeValue(&b, "idxfilesize", strconv.Itoa(i.IdxFileSize))
	if i.SynWordCount > 0 {
		writeValue(&b, "synwordcount", strconv.Itoa(i.SynWordCount))
	}
	writeValue(&b, "sametypesequence", "h")
	if i.Description != "" {
		writeValue(&b, "description", i.Description)
	}
	return b.Bytes()
}

// writeValue writes a key=value line. Values may not span lines.
func writeValue(b *bytes.Buffer, key, value string) {
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(newlines.Replace(value))
	b.WriteString("\n")
}
