package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scigrid/dpclient/pkg/dperror"
)

// overridePrefix is the root of every override key. Keys join the
// descriptor's path segments with underscores: {"connection", "address"}
// becomes DP_API_CONNECTION_ADDRESS.
const overridePrefix = "DP_API"

// Descriptor describes one overrideable config leaf. The table below is
// maintained by hand; adding a leaf means adding a row.
type Descriptor struct {
	Path     []string
	Required bool
	// Enum lists the legal values when non-nil.
	Enum []string
	// Apply parses raw and stores it in cfg.
	Apply func(cfg *Config, raw string) error
	// IsZero reports whether the leaf is unset, for required-field
	// validation.
	IsZero func(cfg *Config) bool
}

func (d Descriptor) Key() string {
	parts := make([]string, 0, len(d.Path)+1)
	parts = append(parts, overridePrefix)
	for _, p := range d.Path {
		parts = append(parts, strings.ToUpper(p))
	}
	return strings.Join(parts, "_")
}

var descriptors = []Descriptor{
	{
		Path: []string{"log", "level"},
		Enum: []string{"debug", "info", "warn", "error"},
		Apply: func(cfg *Config, raw string) error {
			cfg.LogLevel = raw
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.LogLevel == "" },
	},
	{
		Path: []string{"log", "format"},
		Enum: []string{"logfmt", "json"},
		Apply: func(cfg *Config, raw string) error {
			cfg.LogFormat = raw
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.LogFormat == "" },
	},
	{
		Path:     []string{"connection", "address"},
		Required: true,
		Apply: func(cfg *Config, raw string) error {
			cfg.Assembler.Recovery.Dial.Address = raw
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Assembler.Recovery.Dial.Address == "" },
	},
	{
		Path: []string{"connection", "timeout"},
		Apply: func(cfg *Config, raw string) error {
			d, err := parseDuration(raw)
			if err != nil {
				return err
			}
			cfg.Assembler.Recovery.Dial.ConnectTimeout = d
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Assembler.Recovery.Dial.ConnectTimeout == 0 },
	},
	{
		Path: []string{"connection", "insecure"},
		Apply: func(cfg *Config, raw string) error {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			cfg.Assembler.Recovery.Dial.Insecure = b
			return nil
		},
		IsZero: func(cfg *Config) bool { return false },
	},
	{
		Path: []string{"recovery", "queue", "size"},
		Apply: func(cfg *Config, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			cfg.Assembler.Recovery.QueueSize = n
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Assembler.Recovery.QueueSize == 0 },
	},
	{
		Path: []string{"recovery", "call", "timeout"},
		Apply: func(cfg *Config, raw string) error {
			d, err := parseDuration(raw)
			if err != nil {
				return err
			}
			cfg.Assembler.Recovery.CallTimeout = d
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Assembler.Recovery.CallTimeout == 0 },
	},
	{
		Path: []string{"recovery", "max", "retries"},
		Apply: func(cfg *Config, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			cfg.Assembler.Recovery.Backoff.MaxRetries = n
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Assembler.Recovery.Backoff.MaxRetries == 0 },
	},
	{
		Path: []string{"bench", "target", "mbps"},
		Apply: func(cfg *Config, raw string) error {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			cfg.Bench.TargetMBps = v
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Bench.TargetMBps == 0 },
	},
	{
		Path: []string{"bench", "output", "dir"},
		Apply: func(cfg *Config, raw string) error {
			cfg.Bench.OutputDir = raw
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Bench.OutputDir == "" },
	},
	{
		Path: []string{"bench", "sources"},
		Apply: func(cfg *Config, raw string) error {
			cfg.Bench.Sources = splitList(raw)
			return nil
		},
		IsZero: func(cfg *Config) bool { return len(cfg.Bench.Sources) == 0 },
	},
	{
		Path: []string{"bench", "repeat"},
		Apply: func(cfg *Config, raw string) error {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return err
			}
			cfg.Bench.Repeat = n
			return nil
		},
		IsZero: func(cfg *Config) bool { return cfg.Bench.Repeat == 0 },
	},
	{
		Path: []string{"bench", "strict"},
		Apply: func(cfg *Config, raw string) error {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			cfg.Bench.Strict = b
			return nil
		},
		IsZero: func(cfg *Config) bool { return false },
	},
}

// ApplyOverrides applies the override table. Precedence, highest first:
// explicit properties, process environment, YAML value.
func (cfg *Config) ApplyOverrides(props map[string]string) error {
	for _, d := range descriptors {
		key := d.Key()

		raw, ok := props[key]
		if !ok {
			raw, ok = os.LookupEnv(key)
		}
		if !ok {
			continue
		}

		if len(d.Enum) > 0 && !contains(d.Enum, raw) {
			return dperror.Newf(dperror.KindConfig, "override %s: %q is not one of %v", key, raw, d.Enum)
		}
		if err := d.Apply(cfg, raw); err != nil {
			return dperror.Newf(dperror.KindConfig, "override %s: cannot parse %q: %v", key, raw, err)
		}
	}
	return nil
}

// parseDuration accepts Go duration syntax ("30s") and the limit,unit form
// ("30,SECONDS") used by override files.
func parseDuration(raw string) (time.Duration, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}

	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not a duration", raw)
	}
	limit, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a duration: %v", raw, err)
	}

	switch strings.ToUpper(strings.TrimSpace(parts[1])) {
	case "NANOSECONDS":
		return time.Duration(limit), nil
	case "MICROSECONDS":
		return time.Duration(limit) * time.Microsecond, nil
	case "MILLISECONDS":
		return time.Duration(limit) * time.Millisecond, nil
	case "SECONDS":
		return time.Duration(limit) * time.Second, nil
	case "MINUTES":
		return time.Duration(limit) * time.Minute, nil
	case "HOURS":
		return time.Duration(limit) * time.Hour, nil
	default:
		return 0, fmt.Errorf("%q has an unknown duration unit", raw)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
