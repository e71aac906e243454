package asset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngUpload() *model.Upload {
	return &model.Upload{Filename: "photo.png", Size: int64(len(pngHeader)), Body: bytes.NewReader(pngHeader)}
}

func TestSniffAcceptsImages(t *testing.T) {
	sniffed, err := Sniff(pngUpload(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sniffed.ContentType != "image/png" || sniffed.Extension != ".png" {
		t.Fatalf("unexpected detection %s %s", sniffed.ContentType, sniffed.Extension)
	}
	body, err := io.ReadAll(sniffed.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(body, pngHeader) {
		t.Fatal("expected sniffed body to replay the whole upload")
	}
}

func TestSniffRejectsInvalidUploads(t *testing.T) {
	cases := map[string]*model.Upload{
		"nil":       nil,
		"empty":     {Body: bytes.NewReader(nil)},
		"text":      {Size: 5, Body: strings.NewReader("hello")},
		"too large": {Size: 1 << 30, Body: bytes.NewReader(pngHeader)},
	}
	for name, upload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Sniff(upload, 1024); !errors.Is(err, domainErrors.ErrInvalidUpload) {
				t.Fatalf("expected invalid upload error, got %v", err)
			}
		})
	}
}

func TestSniffLimitsUnderreportedSize(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 4096)...)
	sniffed, err := Sniff(&model.Upload{Size: 10, Body: bytes.NewReader(payload)}, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := io.ReadAll(sniffed.Body); !errors.Is(err, domainErrors.ErrInvalidUpload) {
		t.Fatalf("expected size error while reading, got %v", err)
	}
}

func TestLocalStoreSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Dir() != dir {
		t.Fatalf("unexpected dir %s", store.Dir())
	}

	asset, err := store.Save(context.Background(), pngUpload())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasSuffix(asset.Handle, ".png") {
		t.Fatalf("expected png extension, got %s", asset.Handle)
	}
	if asset.URL != "/uploads/"+asset.Handle {
		t.Fatalf("unexpected url %s", asset.URL)
	}

	stored, err := os.ReadFile(filepath.Join(dir, asset.Handle))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(stored, pngHeader) {
		t.Fatal("stored content differs from upload")
	}

	if err := store.Delete(context.Background(), asset.Handle); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, asset.Handle)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected file to be removed, got %v", err)
	}
	if err := store.Delete(context.Background(), asset.Handle); err != nil {
		t.Fatalf("expected deleting a missing file to succeed, got %v", err)
	}
}

func TestLocalStoreRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = store.Save(context.Background(), &model.Upload{Size: 4, Body: strings.NewReader("%PDF-1.4")})
	if !errors.Is(err, domainErrors.ErrInvalidUpload) {
		t.Fatalf("expected invalid upload, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected nothing written, found %d entries", len(entries))
	}
}

func TestLocalStoreDeleteRefusesTraversal(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	store, err := NewLocalStore(dir, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	victim := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(victim, []byte("keep"), 0o600); err != nil {
		t.Fatalf("write victim: %v", err)
	}

	for _, handle := range []string{"../secret.txt", "", "..", "a/b.png"} {
		if err := store.Delete(context.Background(), handle); !errors.Is(err, domainErrors.ErrInvalidUpload) {
			t.Fatalf("expected %q to be rejected, got %v", handle, err)
		}
	}
	if _, err := os.Stat(victim); err != nil {
		t.Fatalf("expected file outside upload dir to survive: %v", err)
	}
}
