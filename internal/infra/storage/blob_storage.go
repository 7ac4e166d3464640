// Package storage persists user uploads through the gocloud.dev blob API,
// backed by a local directory bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"os"

	"inkwell/config"
	"inkwell/internal/domain/service"
	"inkwell/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// blobStorage implements the FileStorage interface over a blob bucket.
type blobStorage struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the upload directory as a blob bucket.
func New(params Params) (service.FileStorage, error) {
	cfg := params.Config.Upload
	if cfg == nil || cfg.Dir == "" {
		return nil, errors.New("upload directory must be configured")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	bucket, err := fileblob.OpenBucket(cfg.Dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{bucket: bucket, logger: params.Logger}, nil
}

// NewWithBucket wraps an already-open bucket. Used by tests with an in-memory bucket.
func NewWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.FileStorage {
	return &blobStorage{bucket: bucket, logger: logger}
}

// Save writes the content under the given name, overwriting any existing blob.
func (s *blobStorage) Save(ctx context.Context, name, contentType string, content io.Reader) (*service.StoredFile, error) {
	writer, err := s.bucket.NewWriter(ctx, name, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob writer")
	}

	size, err := io.Copy(writer, content)
	if err != nil {
		// Abort the write so a partial blob is not committed.
		_ = writer.Close()

		return nil, errors.Wrap(err, "failed to write blob")
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to commit blob")
	}

	s.logger.Debug("stored upload",
		slog.String("name", name),
		slog.Int64("size", size),
	)

	return &service.StoredFile{
		Name:        name,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Open returns a reader for the named blob along with its metadata.
func (s *blobStorage) Open(ctx context.Context, name string) (io.ReadCloser, *service.StoredFile, error) {
	attrs, err := s.bucket.Attributes(ctx, name)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, nil, service.ErrFileMissing
		}

		return nil, nil, errors.Wrap(err, "failed to stat blob")
	}

	reader, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open blob reader")
	}

	return reader, &service.StoredFile{
		Name:        name,
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
	}, nil
}

// List returns metadata for every stored blob.
func (s *blobStorage) List(ctx context.Context) ([]*service.StoredFile, error) {
	var files []*service.StoredFile

	iter := s.bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list blobs")
		}

		attrs, err := s.bucket.Attributes(ctx, obj.Key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to stat blob")
		}

		files = append(files, &service.StoredFile{
			Name:        obj.Key,
			ContentType: attrs.ContentType,
			Size:        attrs.Size,
		})
	}

	return files, nil
}

// Delete removes the named blob.
func (s *blobStorage) Delete(ctx context.Context, name string) error {
	if err := s.bucket.Delete(ctx, name); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return service.ErrFileMissing
		}

		return errors.Wrap(err, "failed to delete blob")
	}

	return nil
}

// DeleteAll removes every stored blob.
func (s *blobStorage) DeleteAll(ctx context.Context) error {
	iter := s.bucket.List(nil)
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to list blobs")
		}

		if err := s.bucket.Delete(ctx, obj.Key); err != nil {
			return errors.Wrap(err, "failed to delete blob")
		}
	}

	return nil
}
