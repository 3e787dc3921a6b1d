package openapi

import "os"

const (
	defaultTitle       = "Reel API"
	defaultDescription = "Video sharing platform: channels, videos, comments, likes, subscriptions, and tweets."
)

// Config holds the document title and description.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills blank fields with defaults, then applies env overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.Title = firstSet(c.Title, defaultTitle)
	c.Description = firstSet(c.Description, defaultDescription)
	if env != nil {
		c.Title = firstSet(lookup(env.Title), c.Title)
		c.Description = firstSet(lookup(env.Description), c.Description)
	}
	return nil
}

// Merge takes every field overlay sets.
func (c *Config) Merge(overlay *Config) {
	c.Title = firstSet(overlay.Title, c.Title)
	c.Description = firstSet(overlay.Description, c.Description)
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
