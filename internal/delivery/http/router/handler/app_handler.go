package handler

import (
	"log/slog"

	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AppHandler holds dependencies for application catalog handlers.
type AppHandler struct {
	uc     usecase.AppUsecase
	logger *slog.Logger
}

// NewAppHandler is the constructor for AppHandler, injected by Fx.
func NewAppHandler(uc usecase.AppUsecase, logger *slog.Logger) *AppHandler {
	return &AppHandler{uc: uc, logger: logger}
}

type saveAppRequest struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	URL         string   `json:"url" validate:"omitempty,url"`
	IsActive    bool     `json:"isActive"`
	Features    []string `json:"features"`
}

func (req *saveAppRequest) toInput() *usecase.SaveAppInput {
	return &usecase.SaveAppInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Image:       req.Image,
		Description: req.Description,
		URL:         req.URL,
		IsActive:    req.IsActive,
		Features:    req.Features,
	}
}

// PublicList lists active catalog entries for anonymous visitors.
func (h *AppHandler) PublicList(c echo.Context) error {
	apps, err := h.uc.List(c.Request().Context(), true)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, apps)
}

// PublicGetBySlug returns one active entry by slug.
func (h *AppHandler) PublicGetBySlug(c echo.Context) error {
	app, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, app)
}

// List lists all catalog entries, inactive ones included.
func (h *AppHandler) List(c echo.Context) error {
	apps, err := h.uc.List(c.Request().Context(), false)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, apps)
}

// Get returns one entry by ID.
func (h *AppHandler) Get(c echo.Context) error {
	appID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.uc.Get(c.Request().Context(), appID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, app)
}

// Create adds a catalog entry.
func (h *AppHandler) Create(c echo.Context) error {
	var req saveAppRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid app input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	app, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, app, "App created")
}

// Update replaces a catalog entry's fields.
func (h *AppHandler) Update(c echo.Context) error {
	appID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req saveAppRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid app input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	app, err := h.uc.Update(c.Request().Context(), appID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, app, "App updated")
}

// Delete removes a catalog entry.
func (h *AppHandler) Delete(c echo.Context) error {
	appID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), appID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "App deleted")
}
