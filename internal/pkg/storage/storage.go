package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores the content under path and returns the normalized key
	Upload(ctx context.Context, file io.Reader, size int64, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the caller can download the file from.
	// Backends that sign URLs honour expiry; others ignore it.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Open streams a stored file. A missing file is ErrFileNotFound.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// Purger removes stored files under a prefix that were written before cutoff.
type Purger interface {
	PurgeOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
