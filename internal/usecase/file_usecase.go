package usecase

import (
	"context"
	"io"
)

// --- Input DTOs ---

// UploadFileInput is one incoming file.
type UploadFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// --- Output DTOs ---

// UploadFileOutput describes the stored file.
type UploadFileOutput struct {
	Name        string
	URL         string
	ContentType string
	Size        int64
}

// FileUsecase manages user-uploaded files in blob storage. Stored names are
// generated server-side; client-supplied paths never reach the bucket.
type FileUsecase interface {
	// Upload stores the file under a generated name, keeping the extension.
	Upload(ctx context.Context, input *UploadFileInput) (*UploadFileOutput, error)

	// Serve opens a stored file for download. The caller must close the reader.
	Serve(ctx context.Context, name string) (io.ReadCloser, *UploadFileOutput, error)

	// List returns metadata for every stored file.
	List(ctx context.Context) ([]*UploadFileOutput, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, name string) error

	// DeleteAll removes every stored file.
	DeleteAll(ctx context.Context) error
}
