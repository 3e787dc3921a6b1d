package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/reel/pkg/middleware"
	"github.com/JaimeStill/reel/pkg/openapi"
	"github.com/JaimeStill/reel/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "REEL_CORS_ENABLED",
	Origins:          "REEL_CORS_ORIGINS",
	AllowedMethods:   "REEL_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "REEL_CORS_ALLOWED_HEADERS",
	AllowCredentials: "REEL_CORS_ALLOW_CREDENTIALS",
	ExposedHeaders:   "REEL_CORS_EXPOSED_HEADERS",
	MaxAge:           "REEL_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultLimit: "REEL_PAGINATION_DEFAULT_LIMIT",
	MaxLimit:     "REEL_PAGINATION_MAX_LIMIT",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "REEL_OPENAPI_TITLE",
	Description: "REEL_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("REEL_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}
