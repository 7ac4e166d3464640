package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FileHandler holds dependencies for file upload handlers.
type FileHandler struct {
	uc     usecase.FileUsecase
	logger *slog.Logger
}

// NewFileHandler is the constructor for FileHandler, injected by Fx.
func NewFileHandler(uc usecase.FileUsecase, logger *slog.Logger) *FileHandler {
	return &FileHandler{uc: uc, logger: logger}
}

type uploadFilePayload struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Upload stores one multipart file under the "file" field.
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "Missing file field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	out, err := h.uc.Upload(c.Request().Context(), &usecase.UploadFileInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Content:     src,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, uploadFilePayload{
		Name:        out.Name,
		URL:         out.URL,
		ContentType: out.ContentType,
		Size:        out.Size,
	}, "File uploaded")
}

// Serve streams a stored file back to the client.
func (h *FileHandler) Serve(c echo.Context) error {
	reader, meta, err := h.uc.Serve(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, meta.ContentType, reader)
}

// List returns metadata for all stored files.
func (h *FileHandler) List(c echo.Context) error {
	files, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	payloads := make([]uploadFilePayload, 0, len(files))
	for _, file := range files {
		payloads = append(payloads, uploadFilePayload{
			Name:        file.Name,
			URL:         file.URL,
			ContentType: file.ContentType,
			Size:        file.Size,
		})
	}

	return response.OK(c, payloads)
}

// Delete removes a stored file.
func (h *FileHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("filename")); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "File deleted")
}

// DeleteAll removes every stored file.
func (h *FileHandler) DeleteAll(c echo.Context) error {
	if err := h.uc.DeleteAll(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "All files deleted")
}
