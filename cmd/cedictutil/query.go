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

package main

import (
	"fmt"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-cedict/stardict"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "search a CC-CEDICT source by headword or toneless pinyin",
	ArgsUsage: "QUERY",
	Flags: []cli.Flag{
		configFlag,
		inputFlag,
		&cli.BoolFlag{
			Name:    "prefix",
			Usage:   "match entries starting with the query",
			Aliases: []string{"p"},
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected one QUERY argument, got %d", ErrFlagParse, c.NArg())
		}
		query := c.Args().First()

		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		// Only warnings are interesting when querying.
		log := newLogger(c.App.ErrWriter, false).WithOptions(zap.IncreaseLevel(zap.WarnLevel))
		//nolint:errcheck // nothing to do if flushing fails.
		defer log.Sync()

		d, err := readDictionary(log, cfg)
		if err != nil {
			return err
		}

		entries := d.Search(query)
		if c.Bool("prefix") {
			entries = d.SearchPrefix(query)
		}
		if len(entries) == 0 {
			fmt.Fprintf(c.App.ErrWriter, "no entries found for %q\n", query)
			return nil
		}

		for _, e := range entries {
			fmt.Fprintln(c.App.Writer, strings.TrimSpace(html2text.HTML2Text(stardict.Article(e))))
			fmt.Fprintln(c.App.Writer)
		}
		return nil
	},
}
