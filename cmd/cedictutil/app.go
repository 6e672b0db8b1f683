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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeInputError is the exit code for an unreadable or empty input.
	ExitCodeInputError
)

// ErrCedictutil is a parent error for all command errors.
var ErrCedictutil = errors.New("cedictutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrCedictutil)

// ErrInput indicates that the input could not be read.
var ErrInput = fmt.Errorf("%w: reading input", ErrCedictutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// sourceNames are the file names searched for in the default input
// locations.
var sourceNames = []string{
	"cedict_ts.u8",
	"cedict_ts.u8.gz",
	"cedict_ts.u8.dz",
	"cedict_1_0_ts_utf-8_mdbg.txt",
	"cedict_1_0_ts_utf-8_mdbg.txt.gz",
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// findInput returns the first CC-CEDICT source found in the default
// locations.
func findInput() string {
	for _, dir := range inputLocations() {
		for _, name := range sourceNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrInput):
		return ExitCodeInputError
	default:
		return ExitCodeUnknownError
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, c.App.Copyright, versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCedictutil, err)
	}
	return nil
}

func newCedictutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Build and search CC-CEDICT dictionaries.",
		Description: strings.Join([]string{
			"CC-CEDICT utility written in Go.",
			"http://github.com/ianlewis/go-cedict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			buildCommand,
			queryCommand,
		},
	}
}
