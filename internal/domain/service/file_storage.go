package service

import (
	"context"
	"errors"
	"io"
)

// ErrFileMissing is returned when the named blob does not exist.
var ErrFileMissing = errors.New("file not found")

// StoredFile describes a file held in blob storage.
type StoredFile struct {
	Name        string
	ContentType string
	Size        int64
}

// FileStorage defines the interface for user-uploaded file persistence.
type FileStorage interface {
	// Save writes the content under the given name, overwriting any
	// existing blob, and returns the stored file's metadata.
	Save(ctx context.Context, name, contentType string, content io.Reader) (*StoredFile, error)

	// Open returns a reader for the named blob along with its metadata.
	// The caller must close the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, *StoredFile, error)

	// List returns metadata for every stored blob.
	List(ctx context.Context) ([]*StoredFile, error)

	// Delete removes the named blob.
	Delete(ctx context.Context, name string) error

	// DeleteAll removes every stored blob.
	DeleteAll(ctx context.Context) error
}
