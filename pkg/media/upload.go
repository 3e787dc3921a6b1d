package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Store is the subset of the media store used to publish staged files.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Uploads publishes staged files and remembers their keys so a failed
// operation can remove everything it already uploaded.
type Uploads struct {
	store Store
	keys  []string
}

// NewUploads creates an empty upload set.
func NewUploads(store Store) *Uploads {
	return &Uploads{store: store}
}

// Put uploads s at key and returns its URL.
func (u *Uploads) Put(ctx context.Context, key string, s *Staged) (string, error) {
	f, err := s.Open()
	if err != nil {
		return "", fmt.Errorf("open staged %s: %w", s.Filename, err)
	}
	defer f.Close()

	url, err := u.store.Upload(ctx, key, f, s.Size, s.ContentType)
	if err != nil {
		return "", err
	}

	u.keys = append(u.keys, key)
	return url, nil
}

// Keys returns the keys uploaded so far.
func (u *Uploads) Keys() []string {
	return u.keys
}

// Rollback deletes every uploaded object. Failures are logged, not returned.
// ctx should outlive the failed request so cleanup is not cancelled with it.
func (u *Uploads) Rollback(ctx context.Context, logger *slog.Logger) {
	for _, key := range u.keys {
		if err := u.store.Delete(ctx, key); err != nil {
			logger.Warn("compensating media delete failed", "key", key, "error", err)
		}
	}
	u.keys = nil
}

// ObjectKey builds a unique storage key of the form kind/owner/<uuid><ext>.
func ObjectKey(kind string, owner uuid.UUID, s *Staged) string {
	return fmt.Sprintf("%s/%s/%s%s", kind, owner, uuid.NewString(), s.Ext())
}
