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
	"io"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ianlewis/go-cedict"
	"github.com/ianlewis/go-cedict/export"
	"github.com/ianlewis/go-cedict/freq"
	"github.com/ianlewis/go-cedict/hsk"
	"github.com/ianlewis/go-cedict/internal/config"
	"github.com/ianlewis/go-cedict/resolve"
	"github.com/ianlewis/go-cedict/stardict"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "read configuration from YAML `FILE`",
	Aliases: []string{"c"},
}

var inputFlag = &cli.StringFlag{
	Name:    "input",
	Usage:   "read the CC-CEDICT source from `FILE` (.gz and .dz are decompressed)",
	Aliases: []string{"i"},
}

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "resolve a CC-CEDICT source and write the configured outputs",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		configFlag,
		inputFlag,
		&cli.StringFlag{
			Name:  "sqlite",
			Usage: "write a SQLite database to `FILE`",
		},
		&cli.StringFlag{
			Name:  "json",
			Usage: "write a JSON document to `FILE`",
		},
		&cli.StringFlag{
			Name:  "stardict",
			Usage: "write a StarDict dictionary to `DIR`",
		},
		&cli.BoolFlag{
			Name:  "dictzip",
			Usage: "compress the StarDict .dict file with dictzip",
		},
		&cli.StringFlag{
			Name:  "hsk",
			Usage: "assign HSK levels from the vocabulary list in `FILE`",
		},
		&cli.StringFlag{
			Name:  "web-freq",
			Usage: "assign web frequency ranks from `FILE`",
		},
		&cli.StringFlag{
			Name:  "lcmc-freq",
			Usage: "assign LCMC frequency ranks from `FILE`",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on duplicate entries",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "log every diagnostic",
			Aliases: []string{"v"},
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		log := newLogger(c.App.ErrWriter, cfg.Verbose)
		//nolint:errcheck // nothing to do if flushing fails.
		defer log.Sync()

		d, err := readDictionary(log, cfg)
		if err != nil {
			return err
		}

		if err := importSupplements(log, d, cfg); err != nil {
			return err
		}

		if err := writeOutputs(log, d, cfg); err != nil {
			return err
		}

		printSummary(c.App.Writer, d)
		return nil
	},
}

// loadConfig loads the configuration file and applies the command's flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"), ".env")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	for name, field := range map[string]*string{
		"input":     &cfg.Input,
		"sqlite":    &cfg.Output.SQLite,
		"json":      &cfg.Output.JSON,
		"stardict":  &cfg.Output.StarDict.Dir,
		"hsk":       &cfg.Supplements.HSK,
		"web-freq":  &cfg.Supplements.WebFreq,
		"lcmc-freq": &cfg.Supplements.LCMCFreq,
	} {
		if c.IsSet(name) {
			*field = c.String(name)
		}
	}
	for name, field := range map[string]*bool{
		"dictzip": &cfg.Output.StarDict.DictZip,
		"strict":  &cfg.Strict,
		"verbose": &cfg.Verbose,
	} {
		if c.IsSet(name) {
			*field = c.Bool(name)
		}
	}

	if cfg.Input == "" {
		cfg.Input = findInput()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	return cfg, nil
}

func readDictionary(log *zap.Logger, cfg *config.Config) (*cedict.Dictionary, error) {
	log.Info("reading dictionary", zap.String("input", cfg.Input))
	d, err := cedict.ReadFile(cfg.Input, &cedict.Options{
		Strict: cfg.Strict,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInput, err)
	}

	for _, m := range d.Malformed() {
		log.Warn("malformed line",
			zap.Int("line", m.Line),
			zap.String("text", m.Text),
		)
	}
	logReport(log, d.Report())
	return d, nil
}

func importSupplements(log *zap.Logger, d *cedict.Dictionary, cfg *config.Config) error {
	if path := cfg.Supplements.HSK; path != "" {
		res, err := hsk.ImportFile(d.Store(), path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		for _, l := range res.Levels {
			log.Debug("hsk level imported",
				zap.Int("level", l.Level),
				zap.Int("entries", l.Entries),
				zap.Int("assigned", l.Assigned),
				zap.Int("unmatched", l.Unmatched),
				zap.Int("duplicates", l.Duplicates),
			)
		}
		log.Info("hsk vocabulary imported",
			zap.String("path", path),
			zap.Int("entries", res.Total.Entries),
			zap.Int("assigned", res.Total.Assigned),
			zap.Int("unmatched", res.Total.Unmatched),
			zap.Int("duplicates", res.Total.Duplicates),
		)
	}

	opts := &freq.Options{
		MinScore: cfg.Supplements.MinScore,
	}
	for kind, path := range map[freq.Kind]string{
		freq.KindWeb:  cfg.Supplements.WebFreq,
		freq.KindLCMC: cfg.Supplements.LCMCFreq,
	} {
		if path == "" {
			continue
		}
		stats, err := freq.ImportFile(d.Store(), kind, path, opts)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		log.Info("word frequencies imported",
			zap.String("kind", string(kind)),
			zap.String("path", path),
			zap.Int("parsed", stats.Parsed),
			zap.Int("assigned", stats.Assigned),
			zap.Int("unmatched", stats.Unmatched),
			zap.Int("conflicts", stats.Conflicts),
		)
	}
	return nil
}

func writeOutputs(log *zap.Logger, d *cedict.Dictionary, cfg *config.Config) error {
	entries := d.Entries()

	if path := cfg.Output.SQLite; path != "" {
		if err := export.WriteSQLite(path, entries); err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		log.Info("wrote sqlite database", zap.String("path", path), zap.Int("entries", len(entries)))
	}

	if path := cfg.Output.JSON; path != "" {
		if err := export.WriteJSONFile(path, entries); err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		log.Info("wrote json", zap.String("path", path), zap.Int("entries", len(entries)))
	}

	if sd := cfg.Output.StarDict; sd.Dir != "" {
		if err := os.MkdirAll(sd.Dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		files, err := stardict.Write(sd.Dir, entries, &stardict.Options{
			Name:     sd.Name,
			Bookname: sd.Bookname,
			DictZip:  sd.DictZip,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCedictutil, err)
		}
		log.Info("wrote stardict dictionary",
			zap.String("ifo", files.Ifo),
			zap.String("idx", files.Idx),
			zap.String("dict", files.Dict),
			zap.String("syn", files.Syn),
		)
	}
	return nil
}

// printSummary prints the entry and diagnostic counts as a table.
func printSummary(w io.Writer, d *cedict.Dictionary) {
	r := d.Report()

	tbl := table.New("Item", "Count").WithWriter(w)
	tbl.AddRow("entries", d.Len())
	tbl.AddRow("malformed lines", len(d.Malformed()))
	tbl.AddRow("classifiers", r.Classifiers)
	tbl.AddRow("variants", r.Variants)
	tbl.AddRow("deleted variant entries", r.Deleted)
	tbl.AddRow("rewritten references", r.Rewritten)
	for _, k := range resolve.Kinds {
		tbl.AddRow(k.String(), r.Count(k))
	}
	tbl.Print()
}
