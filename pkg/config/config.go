// Package config loads the client's YAML configuration and applies the
// DP_API_ override facility on top of it.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v2"

	"github.com/scigrid/dpclient/pkg/assemble"
	"github.com/scigrid/dpclient/pkg/dperror"
)

// Config is the root configuration tree.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Assembler assemble.Config `yaml:"assembler"`
	Bench     BenchConfig     `yaml:"bench"`
}

// BenchConfig configures the dpbench harness.
type BenchConfig struct {
	TargetMBps float64  `yaml:"target_mbps"`
	OutputDir  string   `yaml:"output_dir"`
	Sources    []string `yaml:"sources"`
	Repeat     int      `yaml:"repeat"`
	Strict     bool     `yaml:"strict"`
}

// RegisterFlagsAndApplyDefaults register flags.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	cfg.LogLevel = "info"
	cfg.LogFormat = "logfmt"
	cfg.Bench.OutputDir = "."
	cfg.Bench.Repeat = 1

	cfg.Assembler.RegisterFlagsAndApplyDefaults(prefix+".assembler", f)
}

// Load reads a YAML config file, expands ${ENV} references, parses it
// strictly and applies the override facility. props carries the explicit
// property overrides (highest precedence); the process environment is
// consulted next.
func Load(path string, props map[string]string) (*Config, error) {
	cfg := &Config{}
	throwaway := flag.NewFlagSet("", flag.ContinueOnError)
	throwaway.SetOutput(io.Discard)
	cfg.RegisterFlagsAndApplyDefaults("dp", throwaway)

	if path != "" {
		buff, err := os.ReadFile(path)
		if err != nil {
			return nil, dperror.Wrap(dperror.KindConfig, err, fmt.Sprintf("failed to read config file %s", path))
		}

		expanded, err := envsubst.EvalEnv(string(buff))
		if err != nil {
			return nil, dperror.Wrap(dperror.KindConfig, err, fmt.Sprintf("failed to expand env vars in %s", path))
		}

		if err := yaml.UnmarshalStrict([]byte(expanded), cfg); err != nil {
			return nil, dperror.Wrap(dperror.KindConfig, err, fmt.Sprintf("failed to parse config file %s", path))
		}
	}

	if err := cfg.ApplyOverrides(props); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every missing required leaf and reports them together.
func (cfg *Config) Validate() error {
	var missing []string
	for _, d := range descriptors {
		if d.Required && d.IsZero(cfg) {
			missing = append(missing, d.Key())
		}
	}
	if len(missing) > 0 {
		return dperror.Newf(dperror.KindConfig, "missing required config values: %v", missing)
	}
	return nil
}
