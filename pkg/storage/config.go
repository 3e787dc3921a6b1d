package storage

import (
	"fmt"
	"os"
	"strconv"
)

// Providers supported by New.
const (
	ProviderAzure = "azure"
	ProviderMinIO = "minio"
)

// Config selects a media store provider and holds its connection parameters.
type Config struct {
	Provider  string      `toml:"provider"`
	PublicURL string      `toml:"public_url"`
	Azure     AzureConfig `toml:"azure"`
	MinIO     MinIOConfig `toml:"minio"`
}

// AzureConfig holds Azure Blob Storage connection parameters. Without a
// connection string the client signs in to AccountURL with the default
// Azure credential chain (environment, workload or managed identity, CLI).
type AzureConfig struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
}

// MinIOConfig holds S3-compatible object store connection parameters.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider              string
	PublicURL             string
	AzureContainerName    string
	AzureConnectionString string
	AzureAccountURL       string
	MinIOEndpoint         string
	MinIOAccessKey        string
	MinIOSecretKey        string
	MinIOBucket           string
	MinIORegion           string
	MinIOUseSSL           string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. MinIO.UseSSL always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if overlay.Azure.ContainerName != "" {
		c.Azure.ContainerName = overlay.Azure.ContainerName
	}
	if overlay.Azure.ConnectionString != "" {
		c.Azure.ConnectionString = overlay.Azure.ConnectionString
	}
	if overlay.Azure.AccountURL != "" {
		c.Azure.AccountURL = overlay.Azure.AccountURL
	}
	if overlay.MinIO.Endpoint != "" {
		c.MinIO.Endpoint = overlay.MinIO.Endpoint
	}
	if overlay.MinIO.AccessKey != "" {
		c.MinIO.AccessKey = overlay.MinIO.AccessKey
	}
	if overlay.MinIO.SecretKey != "" {
		c.MinIO.SecretKey = overlay.MinIO.SecretKey
	}
	if overlay.MinIO.Bucket != "" {
		c.MinIO.Bucket = overlay.MinIO.Bucket
	}
	if overlay.MinIO.Region != "" {
		c.MinIO.Region = overlay.MinIO.Region
	}
	c.MinIO.UseSSL = overlay.MinIO.UseSSL
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAzure
	}
	if c.Azure.ContainerName == "" {
		c.Azure.ContainerName = "media"
	}
	if c.MinIO.Bucket == "" {
		c.MinIO.Bucket = "media"
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

	setString(env.Provider, &c.Provider)
	setString(env.PublicURL, &c.PublicURL)
	setString(env.AzureContainerName, &c.Azure.ContainerName)
	setString(env.AzureConnectionString, &c.Azure.ConnectionString)
	setString(env.AzureAccountURL, &c.Azure.AccountURL)
	setString(env.MinIOEndpoint, &c.MinIO.Endpoint)
	setString(env.MinIOAccessKey, &c.MinIO.AccessKey)
	setString(env.MinIOSecretKey, &c.MinIO.SecretKey)
	setString(env.MinIOBucket, &c.MinIO.Bucket)
	setString(env.MinIORegion, &c.MinIO.Region)

	if env.MinIOUseSSL != "" {
		if v := os.Getenv(env.MinIOUseSSL); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.MinIO.UseSSL = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderAzure:
		if c.Azure.ContainerName == "" {
			return fmt.Errorf("azure container_name required")
		}
		if c.Azure.ConnectionString == "" && c.Azure.AccountURL == "" {
			return fmt.Errorf("azure connection_string or account_url required")
		}
	case ProviderMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("minio endpoint required")
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("minio bucket required")
		}
		if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
			return fmt.Errorf("minio access_key and secret_key required")
		}
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	return nil
}
