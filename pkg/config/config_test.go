package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/unit"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fwctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
model: klive
node: /dev/fw1
hwdep: /dev/snd/hwC1D0
base: 0xffffe0a02000
segment_timeout: 40ms
measure_interval: 250ms
trace: /tmp/fwctl.trace
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "klive", cfg.Model)
	assert.Equal(t, "/dev/fw1", cfg.Node)
	assert.Equal(t, uint64(0xffffe0a02000), cfg.Base)
	assert.Equal(t, 40*time.Millisecond, cfg.SegmentTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.MeasureInterval)
	assert.Equal(t, unit.DefaultFCPTimeout, cfg.FCPTimeout)
	require.NoError(t, cfg.Validate())

	k, err := cfg.Kind()
	require.NoError(t, err)
	assert.Equal(t, unit.KindKlive, k)

	lvl, err := ParseLevel(cfg.LogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))

	_, err = Load(writeFile(t, "modle: klive\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "segment_timeout: soon\n"))
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestKindFromIDs(t *testing.T) {
	cfg := Default()
	cfg.VendorID, cfg.ModelID = 0x000166, 0x000024
	k, err := cfg.Kind()
	require.NoError(t, err)
	assert.Equal(t, unit.KindDesktopK6, k)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Default()
		cfg.Model = "klive"
		cfg.Node = "/dev/fw1"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"unknown model", func(c *Config) { c.Model = "ensemble" }, false},
		{"no model or ids", func(c *Config) { c.Model = "" }, false},
		{"no node", func(c *Config) { c.Node = "" }, false},
		{"no node when simulated", func(c *Config) { c.Node = ""; c.Simulate = true }, true},
		{"avc without simulate", func(c *Config) { c.Model = "lacie" }, false},
		{"avc simulated", func(c *Config) { c.Model = "griffin"; c.Simulate = true }, true},
		{"misaligned base", func(c *Config) { c.Base = 0x1002 }, false},
		{"zero timeout", func(c *Config) { c.SegmentTimeout = 0 }, false},
		{"negative interval", func(c *Config) { c.MeasureInterval = -time.Second }, false},
		{"negative trace size", func(c *Config) { c.TraceMaxBytes = -1 }, false},
		{"trace rotation", func(c *Config) { c.TraceMaxBytes = 1 << 20 }, true},
		{"no polling", func(c *Config) { c.MeasureInterval = 0 }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
