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

// Package config loads cedictutil configuration from a YAML file, .env files
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingInput indicates that no input source was configured.
var ErrMissingInput = errors.New("input path not configured")

// Environment variables that override configuration values.
const (
	EnvInput       = "CEDICT_INPUT"
	EnvSQLite      = "CEDICT_SQLITE"
	EnvJSON        = "CEDICT_JSON"
	EnvStarDictDir = "CEDICT_STARDICT_DIR"
	EnvHSK         = "CEDICT_HSK"
	EnvWebFreq     = "CEDICT_WEB_FREQ"
	EnvLCMCFreq    = "CEDICT_LCMC_FREQ"
)

// Config is the cedictutil configuration.
type Config struct {
	// Input is the CC-CEDICT source path.
	Input string `yaml:"input"`

	// Strict makes duplicate entry keys an error.
	Strict bool `yaml:"strict"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	Output      OutputConfig      `yaml:"output"`
	Supplements SupplementsConfig `yaml:"supplements"`
}

// OutputConfig configures the written outputs. Empty paths are skipped.
type OutputConfig struct {
	SQLite   string         `yaml:"sqlite"`
	JSON     string         `yaml:"json"`
	StarDict StarDictConfig `yaml:"stardict"`
}

// StarDictConfig configures the StarDict output.
type StarDictConfig struct {
	Dir      string `yaml:"dir"`
	Name     string `yaml:"name"`
	Bookname string `yaml:"bookname"`
	DictZip  bool   `yaml:"dictzip"`
}

// SupplementsConfig configures the HSK and word frequency lists.
type SupplementsConfig struct {
	HSK      string  `yaml:"hsk"`
	WebFreq  string  `yaml:"web_freq"`
	LCMCFreq string  `yaml:"lcmc_freq"`
	MinScore float64 `yaml:"min_score"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			StarDict: StarDictConfig{
				Name:     "cedict",
				Bookname: "CC-CEDICT",
			},
		},
		Supplements: SupplementsConfig{
			MinScore: 2,
		},
	}
}

// Load reads the YAML configuration at path and applies overrides from
// the environment and the given .env files. An empty path loads the
// defaults. Variables set in the environment take precedence over .env
// files. Missing .env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	for _, f := range envFiles {
		m, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", f, err)
		}
		for k, v := range m {
			if _, ok := dotenv[k]; !ok {
				dotenv[k] = v
			}
		}
	}

	cfg.applyEnvOverrides(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})

	return cfg, nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	for key, field := range map[string]*string{
		EnvInput:       &c.Input,
		EnvSQLite:      &c.Output.SQLite,
		EnvJSON:        &c.Output.JSON,
		EnvStarDictDir: &c.Output.StarDict.Dir,
		EnvHSK:         &c.Supplements.HSK,
		EnvWebFreq:     &c.Supplements.WebFreq,
		EnvLCMCFreq:    &c.Supplements.LCMCFreq,
	} {
		if v := getenv(key); v != "" {
			*field = v
		}
	}
}

// Validate checks that the configuration can be used for a build.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w (set input, %s or --input)", ErrMissingInput, EnvInput)
	}
	if c.Supplements.MinScore < 0 {
		return fmt.Errorf("invalid min_score: %v", c.Supplements.MinScore)
	}
	return nil
}
