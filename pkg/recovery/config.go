package recovery

import (
	"flag"
	"time"

	"github.com/grafana/dskit/backoff"
)

// Config for the recovery channel and its message buffer.
type Config struct {
	// QueueSize bounds the message buffer between the streams and the
	// consumer.
	QueueSize int `yaml:"queue_size"`
	// CallTimeout bounds each transport call attempt. Zero disables it.
	CallTimeout time.Duration `yaml:"call_timeout"`
	// Backoff drives retries of transient per-sub-request failures.
	Backoff backoff.Config `yaml:"backoff"`

	Dial DialConfig `yaml:"connection"`
}

// RegisterFlagsAndApplyDefaults registers flags.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	cfg.QueueSize = 1024
	cfg.CallTimeout = 30 * time.Second
	cfg.Backoff = backoff.Config{
		MinBackoff: 100 * time.Millisecond,
		MaxBackoff: 1 * time.Second,
		MaxRetries: 3,
	}
	cfg.Dial.ApplyDefaults()

	f.StringVar(&cfg.Dial.Address, prefix+".address", "", "Address of the Data Platform query service, in host:port format.")
}
