package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/cache"
	"github.com/JaimeStill/reel/pkg/database"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvReelEnv             = "REEL_ENV"
	EnvReelShutdownTimeout = "REEL_SHUTDOWN_TIMEOUT"
	EnvReelVersion         = "REEL_VERSION"
	EnvReelLogLevel        = "REEL_LOG_LEVEL"
	EnvReelLogFormat       = "REEL_LOG_FORMAT"
)

var databaseEnv = &database.Env{
	URL:             "REEL_DB_DSN",
	Host:            "REEL_DB_HOST",
	Port:            "REEL_DB_PORT",
	Name:            "REEL_DB_NAME",
	User:            "REEL_DB_USER",
	Password:        "REEL_DB_PASSWORD",
	SSLMode:         "REEL_DB_SSL_MODE",
	MaxOpenConns:    "REEL_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REEL_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REEL_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REEL_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:              "REEL_STORAGE_PROVIDER",
	PublicURL:             "REEL_STORAGE_PUBLIC_URL",
	AzureContainerName:    "REEL_STORAGE_AZURE_CONTAINER_NAME",
	AzureConnectionString: "REEL_STORAGE_AZURE_CONNECTION_STRING",
	AzureAccountURL:       "REEL_STORAGE_AZURE_ACCOUNT_URL",
	MinIOEndpoint:         "REEL_STORAGE_MINIO_ENDPOINT",
	MinIOAccessKey:        "REEL_STORAGE_MINIO_ACCESS_KEY",
	MinIOSecretKey:        "REEL_STORAGE_MINIO_SECRET_KEY",
	MinIOBucket:           "REEL_STORAGE_MINIO_BUCKET",
	MinIORegion:           "REEL_STORAGE_MINIO_REGION",
	MinIOUseSSL:           "REEL_STORAGE_MINIO_USE_SSL",
}

var authEnv = &auth.Env{
	AccessSecret:   "REEL_AUTH_ACCESS_SECRET",
	AccessExpiry:   "REEL_AUTH_ACCESS_EXPIRY",
	RefreshSecret:  "REEL_AUTH_REFRESH_SECRET",
	RefreshExpiry:  "REEL_AUTH_REFRESH_EXPIRY",
	Issuer:         "REEL_AUTH_ISSUER",
	CookieSecure:   "REEL_AUTH_COOKIE_SECURE",
	CookieDomain:   "REEL_AUTH_COOKIE_DOMAIN",
	CookieSameSite: "REEL_AUTH_COOKIE_SAME_SITE",
	OIDCIssuer:     "REEL_AUTH_OIDC_ISSUER",
	OIDCClientID:   "REEL_AUTH_OIDC_CLIENT_ID",
}

var cacheEnv = &cache.Env{
	URL:         "REEL_CACHE_URL",
	KeyPrefix:   "REEL_CACHE_KEY_PREFIX",
	StatsTTL:    "REEL_CACHE_STATS_TTL",
	PingTimeout: "REEL_CACHE_PING_TIMEOUT",
}

var mediaEnv = &media.Env{
	TempDir:       "REEL_MEDIA_TEMP_DIR",
	MaxUploadSize: "REEL_MEDIA_MAX_UPLOAD_SIZE",
	Probe:         "REEL_MEDIA_PROBE",
	ProbeTimeout:  "REEL_MEDIA_PROBE_TIMEOUT",
}

// Config is the root configuration for the Reel service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Log             LogConfig       `toml:"log"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	Cache           cache.Config    `toml:"cache"`
	Media           media.Config    `toml:"media"`
	API             APIConfig       `toml:"api"`
	Web             WebConfig       `toml:"web"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the REEL_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvReelEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load builds the configuration from config.toml, the config.<REEL_ENV>.toml
// overlay, and REEL_* variables, in increasing precedence. Either file may be
// absent.
func Load() (*Config, error) {
	cfg, _, err := decode(BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(EnvReelEnv); env != "" {
		overlay, found, err := decode(fmt.Sprintf(OverlayConfigPattern, env))
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Merge(overlay)
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Log.Merge(&overlay.Log)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.Cache.Merge(&overlay.Cache)
	c.Media.Merge(&overlay.Media)
	c.API.Merge(&overlay.API)
	c.Web.Merge(&overlay.Web)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"server", c.Server.Finalize},
		{"log", c.Log.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"cache", func() error { return c.Cache.Finalize(cacheEnv) }},
		{"media", func() error { return c.Media.Finalize(mediaEnv) }},
		{"api", c.API.Finalize},
		{"web", c.Web.Finalize},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvReelShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvReelVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

// decode parses path into a Config. A missing file yields an empty Config
// and found == false.
func decode(path string) (cfg *Config, found bool, err error) {
	cfg = &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}
