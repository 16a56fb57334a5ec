// Package config loads runtime configuration for the queryeval-bench
// command from a YAML file, grounded on the pack's YAML-based config
// pattern (gopkg.in/yaml.v3) rather than the teacher's own hardcoded
// constants (directory, batchSize, numberOfArticles in
// search/internal/wiki_benchmark) — those become overridable fields
// here instead of source-level consts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the knobs a queryeval-bench run needs: where the
// segment lives, the BM25 constants, default result size, and logging.
type Config struct {
	Directory string `yaml:"directory"`

	BM25 struct {
		K1 float32 `yaml:"k1"`
		B  float32 `yaml:"b"`
	} `yaml:"bm25"`

	DefaultK int `yaml:"defaultK"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration queryeval-bench falls back to when
// no file is given, mirroring the teacher's own hardcoded constants
// as defaults rather than requiring a config file for every run.
func Default() Config {
	c := Config{
		Directory: "directory",
		DefaultK:  10,
	}
	c.BM25.K1 = 1.2
	c.BM25.B = 0.75
	c.Log.Level = "info"
	c.Log.Format = "text"
	return c
}

// Load reads and parses a YAML config file, starting from Default() so
// a partial file only needs to specify the fields it overrides.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}

	return c, nil
}

// EnvOverride applies QUERYEVAL_DIRECTORY, if set, over c.Directory —
// the one override queryeval-bench needs when driven from a shell
// script instead of a checked-in config file.
func (c *Config) EnvOverride() {
	if dir := os.Getenv("QUERYEVAL_DIRECTORY"); dir != "" {
		c.Directory = dir
	}
}
