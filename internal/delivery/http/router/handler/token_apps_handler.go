package handler

import (
	"log/slog"
	"time"

	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TokenAppsHandler holds dependencies for API token admin handlers.
type TokenAppsHandler struct {
	uc     usecase.TokenAppsUsecase
	logger *slog.Logger
}

// NewTokenAppsHandler is the constructor for TokenAppsHandler, injected by Fx.
func NewTokenAppsHandler(uc usecase.TokenAppsUsecase, logger *slog.Logger) *TokenAppsHandler {
	return &TokenAppsHandler{uc: uc, logger: logger}
}

type createAPITokenRequest struct {
	Name      string    `json:"name" validate:"required"`
	Quota     int       `json:"quota" validate:"required,gt=0"`
	ExpiredAt time.Time `json:"expiredAt" validate:"required"`
	Note      string    `json:"note"`
}

type updateAPITokenRequest struct {
	Name      *string    `json:"name"`
	Quota     *int       `json:"quota" validate:"omitempty,gt=0"`
	IsActive  *bool      `json:"isActive"`
	ExpiredAt *time.Time `json:"expiredAt"`
	Note      *string    `json:"note"`
}

// Create mints a new metered API token.
func (h *TokenAppsHandler) Create(c echo.Context) error {
	var req createAPITokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.uc.Create(c.Request().Context(), &usecase.CreateAPITokenInput{
		Name:      req.Name,
		Quota:     req.Quota,
		ExpiredAt: req.ExpiredAt,
		Note:      req.Note,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, token, "API token created")
}

// Get returns one token record.
func (h *TokenAppsHandler) Get(c echo.Context) error {
	tokenID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	token, err := h.uc.Get(c.Request().Context(), tokenID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, token)
}

// List returns all token records.
func (h *TokenAppsHandler) List(c echo.Context) error {
	tokens, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, tokens)
}

// Update modifies a token record.
func (h *TokenAppsHandler) Update(c echo.Context) error {
	tokenID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateAPITokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.uc.Update(c.Request().Context(), tokenID, &usecase.UpdateAPITokenInput{
		Name:      req.Name,
		Quota:     req.Quota,
		IsActive:  req.IsActive,
		ExpiredAt: req.ExpiredAt,
		Note:      req.Note,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, token, "API token updated")
}

// Delete removes a token record.
func (h *TokenAppsHandler) Delete(c echo.Context) error {
	tokenID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), tokenID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "API token deleted")
}
