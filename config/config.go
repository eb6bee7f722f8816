// Package config provides the default configuration for the bfir driver and
// tooling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/bfir/api"
)

// Options controls how sources are compiled and what is reported.
type Options struct {
	Optimize bool   `yaml:"optimize"`
	Workers  int    `yaml:"workers"`
	Lint     bool   `yaml:"lint"`
	Report   string `yaml:"report,omitempty"` // report file path, empty for none
	Trace    bool   `yaml:"trace"`
}

// Default returns the options used when no configuration file is given.
func Default() Options {
	return Options{
		Optimize: true,
		Workers:  1,
		Lint:     true,
	}
}

// LoadFromYAML reads options from a YAML file. Fields missing from the file
// keep their default values.
func LoadFromYAML(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return opts, nil
}

// Validate checks that the options can build a driver.
func (o Options) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}

	return nil
}

// DriverBuilder returns a driver builder configured from the options.
func (o Options) DriverBuilder() api.DriverBuilder {
	return api.MakeDriverBuilder().
		WithOptimize(o.Optimize).
		WithWorkers(o.Workers)
}
