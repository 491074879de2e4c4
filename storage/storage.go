// Package storage keeps dish images in an object store and hands out the
// public URLs stored on dishes.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"digital-menu-api/config"

	"github.com/google/uuid"
)

// Storage is a bucket of publicly readable objects
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	// KeyFromURL reverses PublicURL; false means the URL points elsewhere
	KeyFromURL(url string) (string, bool)
}

// New builds the storage selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3(ctx, cfg)
	case "local":
		return NewLocal(cfg.UploadDir, cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewObjectKey returns a fresh "<owner>/<uuid>.<ext>" key for an uploaded file
func NewObjectKey(ownerID uuid.UUID, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s.%s", ownerID, uuid.New(), ext)
}

func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}
