package storage

import (
	"context"
	"fmt"
	"strings"

	"tiendax/internal/config"
)

const (
	// TypeLocal stores files on the local filesystem.
	TypeLocal = "local"
	// TypeS3 targets Amazon S3 or an S3-compatible endpoint.
	TypeS3 = "s3"
	// TypeOSS targets Alibaba Cloud OSS.
	TypeOSS = "oss"
	// TypeCOS targets Tencent Cloud COS.
	TypeCOS = "cos"
	// TypeR2 targets Cloudflare R2.
	TypeR2 = "r2"
)

// SaveOptions controls how a backend persists a file.
//
// Category groups files on disk (product images vs. misc uploads), Extension
// hints the preferred file extension without the leading dot.
type SaveOptions struct {
	Category     string
	Extension    string
	BaseName     string
	SkipIfExists bool
}

// Storage persists binary data and returns a backend-specific identifier,
// e.g. a relative path for local storage or an object key for S3.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
}

// LocalBaseDirProvider is implemented by backends whose files can be served
// directly over HTTP from a local directory.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the backend selected by configuration.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
