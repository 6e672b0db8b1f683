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

// Package export writes resolved dictionary entries to SQLite databases and
// JSON documents.
package export

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/ianlewis/go-cedict/entry"
)

const schema = `
DROP TABLE IF EXISTS dictionary;
CREATE TABLE dictionary (
	simp TEXT NOT NULL,
	trad TEXT NOT NULL,
	pinyin TEXT NOT NULL,
	translations TEXT,
	variants TEXT,
	classifiers TEXT,
	hsk INTEGER,
	net_rank INTEGER,
	lcmc_rank INTEGER
);
CREATE INDEX dictionary_simp ON dictionary (simp);
CREATE INDEX dictionary_key ON dictionary (trad, simp, pinyin);
`

const insertEntry = `
INSERT INTO dictionary (simp, trad, pinyin, translations, variants, classifiers, hsk, net_rank, lcmc_rank)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectEntries = `
SELECT simp, trad, pinyin, translations, variants, classifiers, hsk, net_rank, lcmc_rank
FROM dictionary
ORDER BY rowid
`

// listSep separates list items in a column.
const listSep = ";"

// WriteSQLite writes entries to the dictionary table of the SQLite
// database at path. An existing table is replaced.
func WriteSQLite(path string, entries []*entry.Entry) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	stmt, err := tx.Prepare(insertEntry)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.Simplified,
			e.Traditional,
			e.Reading,
			nullString(strings.Join(e.Translations, listSep)),
			nullString(entry.JoinVariants(e.Variants)),
			nullString(entry.JoinRefs(e.Classifiers)),
			nullInt(e.HSK),
			nullInt(e.WebRank),
			nullInt(e.LCMCRank),
		)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", e.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// ReadSQLite reads the entries of the dictionary table of the SQLite
// database at path in insertion order.
func ReadSQLite(path string) ([]*entry.Entry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(selectEntries)
	if err != nil {
		return nil, fmt.Errorf("querying dictionary: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry
	for rows.Next() {
		var (
			e                                   entry.Entry
			translations, variants, classifiers sql.NullString
			hsk, webRank, lcmcRank              sql.NullInt64
		)
		err := rows.Scan(
			&e.Simplified,
			&e.Traditional,
			&e.Reading,
			&translations,
			&variants,
			&classifiers,
			&hsk,
			&webRank,
			&lcmcRank,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		e.Translations = splitList(translations)
		for _, s := range splitList(classifiers) {
			e.Classifiers = append(e.Classifiers, parseRef(s))
		}
		for _, s := range splitList(variants) {
			ref, typ := s, ""
			if i := strings.LastIndex(s, "|"); i >= 0 {
				ref, typ = s[:i], s[i+1:]
			}
			e.Variants = append(e.Variants, entry.Variant{
				Ref:  parseRef(ref),
				Type: typ,
			})
		}
		e.HSK = int(hsk.Int64)
		e.WebRank = int(webRank.Int64)
		e.LCMCRank = int(lcmcRank.Int64)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return entries, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func splitList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return strings.Split(s.String, listSep)
}

// parseRef parses a "trad|simp|reading" reference.
func parseRef(s string) entry.Ref {
	parts := strings.SplitN(s, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return entry.Ref{
		Traditional: parts[0],
		Simplified:  parts[1],
		Reading:     parts[2],
	}
}
