package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"voicebank/pkg/config"
)

// Store persists opaque audio payloads. Keys only need global
// uniqueness; downstream consumers never interpret them.
type Store interface {
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Read(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL is what gets persisted on the submission row.
	PublicURL(key string) string
}

// NewStore picks the backend from config. Local disk mirrors the
// original /uploads layout; minio is the production object store.
func NewStore(cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StorageType) {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "minio":
		return NewMinioStore(cfg), nil
	}
	return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
}

// ObjectKey builds a storage key from the upload's original filename,
// prefixed with the receipt timestamp in milliseconds.
func ObjectKey(originalName string) string {
	name := strings.ReplaceAll(originalName, "/", "_")
	if name == "" {
		name = uuid.NewString() + ".webm"
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)
}
