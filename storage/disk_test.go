package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeaderFromBytes(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestDiskStoreSaveFile(t *testing.T) {
	root := t.TempDir()
	store := &DiskStore{Root: root}

	content := []byte("fake image bytes")
	fh := fileHeaderFromBytes(t, "banner.png", content)

	ref, err := store.SaveFile(context.Background(), "categories", fh)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(ref, "/uploads/categories/") {
		t.Fatalf("reference %q should start with /uploads/categories/", ref)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("reference %q should keep the upload's extension", ref)
	}

	onDisk := filepath.Join(root, "categories", filepath.Base(ref))
	got, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("stored bytes differ from upload")
	}
}

func TestDiskStoreDeleteFiles(t *testing.T) {
	root := t.TempDir()
	store := &DiskStore{Root: root}

	fh := fileHeaderFromBytes(t, "hero.jpg", []byte("x"))
	ref, err := store.SaveFile(context.Background(), "products", fh)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteFiles(context.Background(), []string{ref}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "products", filepath.Base(ref))); !os.IsNotExist(err) {
		t.Errorf("file should be gone after DeleteFiles, stat err = %v", err)
	}

	// missing files and foreign references are skipped silently
	if err := store.DeleteFiles(context.Background(), []string{ref, "https://example.com/not-ours.png", ""}); err != nil {
		t.Errorf("DeleteFiles should ignore missing and foreign refs, got %v", err)
	}
}
