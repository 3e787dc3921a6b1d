// Package storage provides the media store: durable object storage for uploaded
// video files and images, backed by Azure Blob Storage or an S3-compatible MinIO server.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/reel/pkg/lifecycle"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrEmptyKey   = errors.New("empty storage key")
	ErrInvalidKey = errors.New("storage key escapes its prefix")
)

// System manages media objects and lifecycle coordination.
type System interface {
	// Start registers a startup hook that ensures the container or bucket exists.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams size bytes from reader to key and returns the object's durable URL.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object at key. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the durable URL for key.
	URL(key string) string
	// Key returns the storage key for a URL produced by URL.
	Key(url string) (string, bool)
}

// New creates the storage system selected by cfg.Provider.
// Clients are created immediately; no network call is made until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderMinIO:
		return newMinIO(cfg, logger)
	}
	return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
}

type locator struct {
	base string
}

func newLocator(base string) locator {
	return locator{base: strings.TrimSuffix(base, "/")}
}

func (l locator) URL(key string) string {
	return l.base + "/" + key
}

func (l locator) Key(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, l.base+"/")
	if !ok || validateKey(key) != nil {
		return "", false
	}
	return key, true
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}

// Release deletes the objects behind urls. Objects that are already gone and URLs
// the store does not manage are skipped. Failures are logged, not returned.
func Release(ctx context.Context, s System, logger *slog.Logger, urls ...string) {
	for _, url := range urls {
		key, ok := s.Key(url)
		if !ok {
			logger.Warn("media url not managed by store", "url", url)
			continue
		}
		if err := s.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			logger.Warn("media delete failed", "key", key, "error", err)
		}
	}
}
