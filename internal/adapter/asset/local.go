package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads"

// LocalStore keeps uploads on the local filesystem.
type LocalStore struct {
	dir     string
	maxSize int64
}

// NewLocalStore prepares the upload directory.
func NewLocalStore(dir string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the upload under a random name keeping the detected extension.
func (s *LocalStore) Save(_ context.Context, upload *model.Upload) (*model.Asset, error) {
	sniffed, err := Sniff(upload, s.maxSize)
	if err != nil {
		return nil, err
	}

	name := uuid.NewString() + sniffed.Extension
	target := filepath.Join(s.dir, name)

	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(file, sniffed.Body); err != nil {
		file.Close()
		os.Remove(target)
		return nil, err
	}
	if err := file.Close(); err != nil {
		os.Remove(target)
		return nil, fmt.Errorf("close upload file: %w", err)
	}

	return &model.Asset{URL: path.Join(PublicPrefix, name), Handle: name}, nil
}

// Delete removes a previously saved file. Missing files are not an error.
func (s *LocalStore) Delete(_ context.Context, handle string) error {
	name := filepath.Base(handle)
	if handle == "" || name != handle || name == "." || name == ".." {
		return fmt.Errorf("%w: bad handle %q", domainErrors.ErrInvalidUpload, handle)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
