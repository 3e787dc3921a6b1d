package media

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/reel/pkg/formatting"
)

// Config holds upload staging and duration probing settings.
type Config struct {
	TempDir       string `toml:"temp_dir"`
	MaxUploadSize string `toml:"max_upload_size"`
	Probe         bool   `toml:"probe"`
	ProbeTimeout  string `toml:"probe_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TempDir       string
	MaxUploadSize string
	Probe         string
	ProbeTimeout  string
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *Config) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 200 * 1024 * 1024
	}
	return size
}

// ProbeTimeoutDuration returns ProbeTimeout as a time.Duration.
func (c *Config) ProbeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Probe always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.Probe = overlay.Probe
	if overlay.ProbeTimeout != "" {
		c.ProbeTimeout = overlay.ProbeTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.TempDir == "" {
		c.TempDir = os.TempDir()
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "200MB"
	}
	if c.ProbeTimeout == "" {
		c.ProbeTimeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	lookup := func(name string) (string, bool) {
		if name == "" {
			return "", false
		}
		v := os.Getenv(name)
		return v, v != ""
	}

	if v, ok := lookup(env.TempDir); ok {
		c.TempDir = v
	}
	if v, ok := lookup(env.MaxUploadSize); ok {
		c.MaxUploadSize = v
	}
	if v, ok := lookup(env.ProbeTimeout); ok {
		c.ProbeTimeout = v
	}
	if v, ok := lookup(env.Probe); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Probe = b
		}
	}
}

func (c *Config) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if d, err := time.ParseDuration(c.ProbeTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid probe_timeout: %q", c.ProbeTimeout)
	}
	return nil
}
