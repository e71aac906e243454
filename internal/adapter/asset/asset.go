package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
)

// Store persists uploaded files and removes them by handle.
type Store interface {
	Save(ctx context.Context, upload *model.Upload) (*model.Asset, error)
	Delete(ctx context.Context, handle string) error
}

const sniffLen = 3072

// Sniffed is an upload whose content type has been detected from its leading bytes.
type Sniffed struct {
	ContentType string
	Extension   string
	Body        io.Reader
}

// Sniff detects the content type of an upload and rejects anything that is not an image.
// The returned body replays the inspected bytes.
func Sniff(upload *model.Upload, maxSize int64) (*Sniffed, error) {
	if upload == nil || upload.Body == nil {
		return nil, fmt.Errorf("%w: empty upload", domainErrors.ErrInvalidUpload)
	}
	if maxSize > 0 && upload.Size > maxSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domainErrors.ErrInvalidUpload, maxSize)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty upload", domainErrors.ErrInvalidUpload)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: unsupported content type %s", domainErrors.ErrInvalidUpload, mt.String())
	}

	body := io.MultiReader(bytes.NewReader(head), upload.Body)
	if maxSize > 0 {
		body = &limitedReader{r: body, remaining: maxSize}
	}

	return &Sniffed{ContentType: mt.String(), Extension: mt.Extension(), Body: body}, nil
}

// limitedReader fails once more than the allowed number of bytes have been read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, fmt.Errorf("%w: file too large", domainErrors.ErrInvalidUpload)
	}
	return n, err
}
