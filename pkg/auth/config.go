package auth

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds token signing, cookie, and optional OIDC settings.
type Config struct {
	AccessSecret   string     `toml:"access_secret"`
	AccessExpiry   string     `toml:"access_expiry"`
	RefreshSecret  string     `toml:"refresh_secret"`
	RefreshExpiry  string     `toml:"refresh_expiry"`
	Issuer         string     `toml:"issuer"`
	CookieSecure   bool       `toml:"cookie_secure"`
	CookieDomain   string     `toml:"cookie_domain"`
	CookieSameSite string     `toml:"cookie_same_site"`
	OIDC           OIDCConfig `toml:"oidc"`
}

// OIDCConfig enables verification of ID tokens from an external identity provider.
// Verification is disabled when Issuer is empty.
type OIDCConfig struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	AccessSecret   string
	AccessExpiry   string
	RefreshSecret  string
	RefreshExpiry  string
	Issuer         string
	CookieSecure   string
	CookieDomain   string
	CookieSameSite string
	OIDCIssuer     string
	OIDCClientID   string
}

// AccessExpiryDuration returns AccessExpiry as a time.Duration.
func (c *Config) AccessExpiryDuration() time.Duration {
	d, _ := time.ParseDuration(c.AccessExpiry)
	return d
}

// RefreshExpiryDuration returns RefreshExpiry as a time.Duration.
func (c *Config) RefreshExpiryDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshExpiry)
	return d
}

// SameSite returns the configured cookie SameSite mode.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
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
// CookieSecure always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.AccessSecret != "" {
		c.AccessSecret = overlay.AccessSecret
	}
	if overlay.AccessExpiry != "" {
		c.AccessExpiry = overlay.AccessExpiry
	}
	if overlay.RefreshSecret != "" {
		c.RefreshSecret = overlay.RefreshSecret
	}
	if overlay.RefreshExpiry != "" {
		c.RefreshExpiry = overlay.RefreshExpiry
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	c.CookieSecure = overlay.CookieSecure
	if overlay.CookieDomain != "" {
		c.CookieDomain = overlay.CookieDomain
	}
	if overlay.CookieSameSite != "" {
		c.CookieSameSite = overlay.CookieSameSite
	}
	if overlay.OIDC.Issuer != "" {
		c.OIDC.Issuer = overlay.OIDC.Issuer
	}
	if overlay.OIDC.ClientID != "" {
		c.OIDC.ClientID = overlay.OIDC.ClientID
	}
}

func (c *Config) loadDefaults() {
	if c.AccessExpiry == "" {
		c.AccessExpiry = "24h"
	}
	if c.RefreshExpiry == "" {
		c.RefreshExpiry = "240h"
	}
	if c.Issuer == "" {
		c.Issuer = "reel"
	}
	if c.CookieSameSite == "" {
		c.CookieSameSite = "lax"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	setString(env.AccessSecret, &c.AccessSecret)
	setString(env.AccessExpiry, &c.AccessExpiry)
	setString(env.RefreshSecret, &c.RefreshSecret)
	setString(env.RefreshExpiry, &c.RefreshExpiry)
	setString(env.Issuer, &c.Issuer)
	setString(env.CookieDomain, &c.CookieDomain)
	setString(env.CookieSameSite, &c.CookieSameSite)
	setString(env.OIDCIssuer, &c.OIDC.Issuer)
	setString(env.OIDCClientID, &c.OIDC.ClientID)

	if env.CookieSecure != "" {
		if v := os.Getenv(env.CookieSecure); v != "" {
			if secure, err := strconv.ParseBool(v); err == nil {
				c.CookieSecure = secure
			}
		}
	}
}

func (c *Config) validate() error {
	if c.AccessSecret == "" {
		return fmt.Errorf("access_secret required")
	}
	if c.RefreshSecret == "" {
		return fmt.Errorf("refresh_secret required")
	}
	if c.AccessSecret == c.RefreshSecret {
		return fmt.Errorf("access_secret and refresh_secret must differ")
	}
	if d, err := time.ParseDuration(c.AccessExpiry); err != nil || d <= 0 {
		return fmt.Errorf("invalid access_expiry: %q", c.AccessExpiry)
	}
	if d, err := time.ParseDuration(c.RefreshExpiry); err != nil || d <= 0 {
		return fmt.Errorf("invalid refresh_expiry: %q", c.RefreshExpiry)
	}
	if c.OIDC.Issuer != "" && c.OIDC.ClientID == "" {
		return fmt.Errorf("oidc client_id required when issuer is set")
	}
	return nil
}
