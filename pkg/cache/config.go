package cache

import (
	"fmt"
	"os"
	"time"
)

// Config holds Redis connection and TTL settings.
// Caching is disabled when URL is empty.
type Config struct {
	URL         string `toml:"url"`
	KeyPrefix   string `toml:"key_prefix"`
	StatsTTL    string `toml:"stats_ttl"`
	PingTimeout string `toml:"ping_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	URL         string
	KeyPrefix   string
	StatsTTL    string
	PingTimeout string
}

// StatsTTLDuration returns StatsTTL as a time.Duration.
func (c *Config) StatsTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.StatsTTL)
	return d
}

// PingTimeoutDuration returns PingTimeout as a time.Duration.
func (c *Config) PingTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PingTimeout)
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

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.KeyPrefix != "" {
		c.KeyPrefix = overlay.KeyPrefix
	}
	if overlay.StatsTTL != "" {
		c.StatsTTL = overlay.StatsTTL
	}
	if overlay.PingTimeout != "" {
		c.PingTimeout = overlay.PingTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "reel"
	}
	if c.StatsTTL == "" {
		c.StatsTTL = "1m"
	}
	if c.PingTimeout == "" {
		c.PingTimeout = "3s"
	}
}

func (c *Config) loadEnv(env *Env) {
	overrides := []struct {
		name string
		dst  *string
	}{
		{env.URL, &c.URL},
		{env.KeyPrefix, &c.KeyPrefix},
		{env.StatsTTL, &c.StatsTTL},
		{env.PingTimeout, &c.PingTimeout},
	}
	for _, o := range overrides {
		if o.name == "" {
			continue
		}
		if v := os.Getenv(o.name); v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.StatsTTL); err != nil {
		return fmt.Errorf("invalid stats_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.PingTimeout); err != nil {
		return fmt.Errorf("invalid ping_timeout: %w", err)
	}
	return nil
}
