package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore persists uploaded files and returns the reference stored on the
// document: a relative /uploads path for the disk driver, a public URL for the
// cloud drivers. The storefront reconstructs the full URL client-side.
type ObjectStore interface {
	SaveFile(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error)
	DeleteFiles(ctx context.Context, refs []string) error
}

// FromEnv picks the driver from STORAGE_DRIVER: disk (default), gcs or r2.
func FromEnv(ctx context.Context) (ObjectStore, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))) {
	case "", "disk":
		return NewDiskStore(), nil
	case "gcs":
		return NewGCSStore(ctx)
	case "r2":
		return NewR2Store(ctx)
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", os.Getenv("STORAGE_DRIVER"))
}

func contentTypeFor(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

func extensionFor(fh *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".bin"
	}
	return ext
}
