package config

import (
	"fmt"
	"os"
)

const EnvWebDistDir = "REEL_WEB_DIST_DIR"

// WebConfig locates a built front-end bundle. An empty DistDir disables the app module.
type WebConfig struct {
	DistDir string `toml:"dist_dir"`
}

// Finalize applies environment variable overrides and validation.
func (c *WebConfig) Finalize() error {
	if v := os.Getenv(EnvWebDistDir); v != "" {
		c.DistDir = v
	}
	if c.DistDir == "" {
		return nil
	}

	info, err := os.Stat(c.DistDir)
	if err != nil {
		return fmt.Errorf("dist_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dist_dir %s is not a directory", c.DistDir)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.DistDir != "" {
		c.DistDir = overlay.DistDir
	}
}
