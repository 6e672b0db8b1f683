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
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-cedict/entry"
)

// tokenRE matches a canonical "[trad|simp|reading]" reference token.
var tokenRE = regexp.MustCompile(`\[([^|\[\]]*)\|([^|\[\]]*)\|([^\[\]]*)\]`)

// Article renders an entry as an HTML article.
func Article(e *entry.Entry) string {
	var b strings.Builder

	b.WriteString("<p><b>")
	b.WriteString(html.EscapeString(headwords(e.Ref())))
	b.WriteString("</b> [")
	b.WriteString(html.EscapeString(e.Reading))
	b.WriteString("]</p>")

	if len(e.Translations) > 0 {
		b.WriteString("<ol>")
		for _, t := range e.Translations {
			b.WriteString("<li>")
			b.WriteString(RenderText(t))
			b.WriteString("</li>")
		}
		b.WriteString("</ol>")
	}

	if len(e.Classifiers) > 0 {
		links := make([]string, 0, len(e.Classifiers))
		for _, c := range e.Classifiers {
			links = append(links, link(c))
		}
		b.WriteString("<p>CL: ")
		b.WriteString(strings.Join(links, ", "))
		b.WriteString("</p>")
	}

	if len(e.Variants) > 0 {
		links := make([]string, 0, len(e.Variants))
		for _, v := range e.Variants {
			l := link(v.Ref)
			if v.Type != "" {
				l += " (" + html.EscapeString(v.Type) + ")"
			}
			links = append(links, l)
		}
		b.WriteString("<p>Variants: ")
		b.WriteString(strings.Join(links, ", "))
		b.WriteString("</p>")
	}

	if e.HSK != 0 {
		b.WriteString("<p>HSK ")
		b.WriteString(hskLevel(e.HSK))
		b.WriteString("</p>")
	}

	return b.String()
}

// RenderText escapes a translation and renders its reference tokens as
// links.
func RenderText(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range tokenRE.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(html.EscapeString(s[last:loc[0]]))
		b.WriteString(link(entry.Ref{
			Traditional: s[loc[2]:loc[3]],
			Simplified:  s[loc[4]:loc[5]],
			Reading:     s[loc[6]:loc[7]],
		}))
		last = loc[1]
	}
	b.WriteString(html.EscapeString(s[last:]))
	return b.String()
}

// link renders a reference as a bword:// link to its traditional headword.
// References without headwords are rendered as plain readings.
func link(r entry.Ref) string {
	if !r.HasHeadwords() {
		return html.EscapeString("[" + r.Reading + "]")
	}

	label := headwords(r)
	if r.Reading != "" {
		label += " [" + r.Reading + "]"
	}
	target := r.Traditional
	if target == "" {
		target = r.Simplified
	}
	return fmt.Sprintf(`<a href="bword://%s">%s</a>`, html.EscapeString(target), html.EscapeString(label))
}

func headwords(r entry.Ref) string {
	if r.Simplified == "" || r.Simplified == r.Traditional {
		return r.Traditional
	}
	if r.Traditional == "" {
		return r.Simplified
	}
	return r.Traditional + "|" + r.Simplified
}

func hskLevel(level int) string {
	// Level 7 covers the advanced levels 7 to 9.
	if level == 7 {
		return "7-9"
	}
	return strconv.Itoa(level)
}
