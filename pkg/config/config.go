// Package config loads the daemon configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fwaudio/fwctl-go/pkg/unit"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultBase is the address register offsets are relative to.
const DefaultBase uint64 = 0xffffe0a01000

// Config holds the daemon configuration.
type Config struct {
	// Model is a unit model name such as "klive". When empty the model is
	// detected from VendorID and ModelID.
	Model    string `yaml:"model"`
	VendorID uint32 `yaml:"vendor_id"`
	ModelID  uint32 `yaml:"model_id"`

	// Node is the firewire character device of the unit.
	Node string `yaml:"node"`

	// Hwdep is the ALSA hwdep device delivering notifications.
	Hwdep string `yaml:"hwdep"`

	Base uint64 `yaml:"base"`

	SegmentTimeout  time.Duration `yaml:"segment_timeout"`
	FCPTimeout      time.Duration `yaml:"fcp_timeout"`
	MeasureInterval time.Duration `yaml:"measure_interval"`

	// Trace is the protocol trace file. Empty disables tracing.
	Trace string `yaml:"trace"`

	// TraceMaxBytes rotates the trace file at this size. Zero never rotates.
	TraceMaxBytes int64 `yaml:"trace_max_bytes"`

	// Snapshot is the segment snapshot file. Empty disables snapshots.
	Snapshot string `yaml:"snapshot"`

	LogLevel string `yaml:"log_level"`

	// Simulate runs against an in-process unit instead of a device node.
	Simulate bool `yaml:"simulate"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Base:            DefaultBase,
		SegmentTimeout:  unit.DefaultTimeout,
		FCPTimeout:      unit.DefaultFCPTimeout,
		MeasureInterval: 100 * time.Millisecond,
		LogLevel:        "info",
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes YAML into cfg. Keys missing from data keep their value.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Kind resolves the unit model.
func (c *Config) Kind() (unit.Kind, error) {
	if c.Model != "" {
		return unit.ParseKind(c.Model)
	}
	return unit.Detect(c.VendorID, c.ModelID)
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	k, err := c.Kind()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !c.Simulate {
		if k.IsAVC() {
			return fmt.Errorf("%w: %s is controlled over FCP, which is only simulated", ErrInvalidConfig, k)
		}
		if c.Node == "" {
			return fmt.Errorf("%w: node is required", ErrInvalidConfig)
		}
	}
	if c.Base%4 != 0 {
		return fmt.Errorf("%w: base %#x is not quadlet aligned", ErrInvalidConfig, c.Base)
	}
	if c.SegmentTimeout <= 0 || c.FCPTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if c.TraceMaxBytes < 0 {
		return fmt.Errorf("%w: trace_max_bytes is negative", ErrInvalidConfig)
	}
	if c.MeasureInterval < 0 {
		return fmt.Errorf("%w: measure_interval is negative", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
