package impl

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"inkwell/config"
	deliverycontext "inkwell/internal/delivery/context"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// allowedUploadExtensions is the extension allow-list for uploads. Anything
// else is rejected before touching the bucket.
var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".pdf":  true,
}

// fileService implements the FileUsecase interface.
type fileService struct {
	storage  service.FileStorage
	baseURL  string
	maxBytes int64
	logger   *slog.Logger
}

// FileServiceParams holds dependencies for FileService, injected by Fx.
type FileServiceParams struct {
	fx.In

	Storage service.FileStorage
	Config  *config.Config
	Logger  *slog.Logger
}

// NewFileService is the constructor for fileService.
func NewFileService(params FileServiceParams) usecase.FileUsecase {
	baseURL := ""
	var maxBytes int64
	if params.Config != nil && params.Config.Upload != nil {
		baseURL = strings.TrimRight(params.Config.Upload.BaseURL, "/")
		maxBytes = params.Config.Upload.MaxSizeBytes
	}

	return &fileService{
		storage:  params.Storage,
		baseURL:  baseURL,
		maxBytes: maxBytes,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *fileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload stores the file under a generated name. Only the extension of the
// client-supplied name survives, which keeps path traversal out of the bucket.
func (srv *fileService) Upload(ctx context.Context, input *usecase.UploadFileInput) (*usecase.UploadFileOutput, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(input.FileName)))
	if !allowedUploadExtensions[ext] {
		srv.log(ctx).Warn("Upload rejected for extension", slog.String("fileName", input.FileName))

		return nil, errors.Wrap(domainerrors.ErrFileTypeNotAllowed, "extension not in the allow-list")
	}

	if srv.maxBytes > 0 && input.Size > srv.maxBytes {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed,
			"file exceeds the upload size limit of %s", util.FormatBytes(srv.maxBytes))
	}

	name := uuid.NewString() + ext
	stored, err := srv.storage.Save(ctx, name, input.ContentType, input.Content)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save upload")
	}

	srv.log(ctx).Info("File uploaded", slog.String("name", stored.Name), slog.Int64("size", stored.Size))

	return srv.toOutput(stored), nil
}

// Serve opens a stored file for download.
func (srv *fileService) Serve(ctx context.Context, name string) (io.ReadCloser, *usecase.UploadFileOutput, error) {
	reader, stored, err := srv.storage.Open(ctx, sanitizeStoredName(name))
	if errors.Is(err, service.ErrFileMissing) {
		return nil, nil, errors.Wrap(domainerrors.ErrFileNotFound, "stored file lookup")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open stored file")
	}

	return reader, srv.toOutput(stored), nil
}

// List returns metadata for every stored file.
func (srv *fileService) List(ctx context.Context) ([]*usecase.UploadFileOutput, error) {
	stored, err := srv.storage.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stored files")
	}

	outputs := make([]*usecase.UploadFileOutput, 0, len(stored))
	for _, file := range stored {
		outputs = append(outputs, srv.toOutput(file))
	}

	return outputs, nil
}

// Delete removes a stored file.
func (srv *fileService) Delete(ctx context.Context, name string) error {
	if err := srv.storage.Delete(ctx, sanitizeStoredName(name)); err != nil {
		if errors.Is(err, service.ErrFileMissing) {
			return errors.Wrap(domainerrors.ErrFileNotFound, "stored file lookup")
		}

		return errors.Wrap(err, "failed to delete stored file")
	}

	srv.log(ctx).Info("File deleted", slog.String("name", name))

	return nil
}

// DeleteAll removes every stored file.
func (srv *fileService) DeleteAll(ctx context.Context) error {
	if err := srv.storage.DeleteAll(ctx); err != nil {
		return errors.Wrap(err, "failed to delete stored files")
	}

	srv.log(ctx).Warn("All files deleted")

	return nil
}

func (srv *fileService) toOutput(stored *service.StoredFile) *usecase.UploadFileOutput {
	return &usecase.UploadFileOutput{
		Name:        stored.Name,
		URL:         srv.baseURL + "/" + stored.Name,
		ContentType: stored.ContentType,
		Size:        stored.Size,
	}
}

// sanitizeStoredName strips any path the client may have smuggled into the name.
func sanitizeStoredName(name string) string {
	return filepath.Base(strings.TrimSpace(name))
}
