package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/JaimeStill/reel/pkg/lifecycle"
)

// azure stores objects as block blobs in a single container.
type azure struct {
	locator
	bucket *container.Client
	log    *slog.Logger
}

func newAzure(cfg *Config, logger *slog.Logger) (System, error) {
	svc, err := azureClient(&cfg.Azure)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}
	bucket := svc.ServiceClient().NewContainerClient(cfg.Azure.ContainerName)

	base := cfg.PublicURL
	if base == "" {
		base = strings.TrimRight(bucket.URL(), "/")
	}

	return &azure{
		locator: newLocator(base),
		bucket:  bucket,
		log:     logger.With("container", cfg.Azure.ContainerName),
	}, nil
}

// azureClient prefers the connection string and otherwise authenticates to
// the account URL with DefaultAzureCredential. Tokens are fetched on first use.
func azureClient(cfg *AzureConfig) (*azblob.Client, error) {
	if cfg.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default credential: %w", err)
	}
	return azblob.NewClient(cfg.AccountURL, cred, nil)
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		_, err := a.bucket.Create(lc.Context(), nil)
		switch {
		case err == nil:
			a.log.Info("container created")
		case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
			a.log.Info("container ready")
		default:
			a.log.Error("create container", "error", err)
		}
	})
	return nil
}

func (a *azure) Upload(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	_, err := a.bucket.NewBlockBlobClient(key).UploadStream(ctx, r, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return a.URL(key), nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := a.bucket.NewBlobClient(key).Delete(ctx, nil)
	return a.classify("delete", key, err)
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	_, err := a.bucket.NewBlobClient(key).GetProperties(ctx, nil)
	err = a.classify("stat", key, err)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (a *azure) classify(op, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s %s: %w", op, key, err)
	}
}
