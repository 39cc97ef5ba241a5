package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore writes uploads under a local directory that main serves
// statically at /uploads. Document references are /uploads-relative paths.
type DiskStore struct {
	Root string
}

func NewDiskStore() *DiskStore {
	root := os.Getenv("UPLOAD_DIR")
	if root == "" {
		root = "uploads"
	}
	return &DiskStore{Root: root}
}

func (s *DiskStore) SaveFile(_ context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), extensionFor(fh))

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return path.Join("/uploads", folder, name), nil
}

func (s *DiskStore) DeleteFiles(_ context.Context, refs []string) error {
	var firstErr error
	for _, ref := range refs {
		rel, ok := strings.CutPrefix(ref, "/uploads/")
		if !ok || rel == "" {
			continue
		}
		err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
		if err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", ref, err)
		}
	}
	return firstErr
}
