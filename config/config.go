/*
Package config reads the configuration of the herbert command.

Configuration is read from a YAML file. Keys not present in the file keep
their default values:

    rows: 25               # rows of a level
    cols: 25               # columns of a level
    fps: 4                 # actions per second when running
    trace: Info            # trace level: Debug, Info or Error
    max-depth: 1000000     # limit for nested procedure calls
    max-silent-calls: 1000000  # limit for procedure calls without an action
    step-budget: 0         # steps in batch mode, 0 for interactive mode

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"io"
	"os"
	"strings"

	"github.com/npillmayer/herbert/interp"
	"github.com/npillmayer/herbert/level"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the settings of the herbert command.
type Config struct {
	Rows           int    `yaml:"rows"`
	Cols           int    `yaml:"cols"`
	FPS            int    `yaml:"fps"`
	Trace          string `yaml:"trace"`
	MaxDepth       int    `yaml:"max-depth"`
	MaxSilentCalls int    `yaml:"max-silent-calls"`
	StepBudget     int    `yaml:"step-budget"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Rows:           level.DefaultRows,
		Cols:           level.DefaultCols,
		FPS:            4,
		Trace:          "Info",
		MaxDepth:       interp.DefaultMaxDepth,
		MaxSilentCalls: interp.DefaultMaxSilentCalls,
	}
}

// Load reads a configuration file. For an empty path, the default
// configuration is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open configuration")
	}
	defer f.Close()
	return Read(f)
}

// Read reads a configuration from r and validates it. Unknown keys are
// an error.
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read configuration")
	}
	c := Default()
	if err = yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks a configuration for values out of range.
func (c *Config) Validate() error {
	for _, v := range []struct {
		key   string
		value int
	}{
		{"rows", c.Rows},
		{"cols", c.Cols},
		{"fps", c.FPS},
		{"max-depth", c.MaxDepth},
		{"max-silent-calls", c.MaxSilentCalls},
	} {
		if v.value < 1 {
			return errors.Errorf("configuration value %s must be positive: %d", v.key, v.value)
		}
	}
	if c.StepBudget < 0 {
		return errors.Errorf("configuration value step-budget must not be negative: %d", c.StepBudget)
	}
	switch strings.ToLower(c.Trace) {
	case "debug", "info", "error":
	default:
		return errors.Errorf("unknown trace level: %s", c.Trace)
	}
	return nil
}

// LevelOptions returns the options for loading levels.
func (c *Config) LevelOptions() []level.Option {
	return []level.Option{level.Rows(c.Rows), level.Cols(c.Cols)}
}

// InterpreterOptions returns the options for evaluating programs.
func (c *Config) InterpreterOptions() []interp.Option {
	return []interp.Option{interp.MaxDepth(c.MaxDepth), interp.MaxSilentCalls(c.MaxSilentCalls)}
}
