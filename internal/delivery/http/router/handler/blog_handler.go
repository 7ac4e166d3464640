package handler

import (
	"log/slog"
	"strconv"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/domain/entity"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BlogHandler holds dependencies for blog handlers.
type BlogHandler struct {
	uc     usecase.BlogUsecase
	logger *slog.Logger
}

// NewBlogHandler is the constructor for BlogHandler, injected by Fx.
func NewBlogHandler(uc usecase.BlogUsecase, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{uc: uc, logger: logger}
}

type createBlogRequest struct {
	Title           string   `json:"title" validate:"required"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content" validate:"required"`
	CoverImage      string   `json:"coverImage"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Categories      []string `json:"categories"`
	Tags            []string `json:"tags"`
	Published       bool     `json:"published"`
}

type updateBlogRequest struct {
	Title           *string  `json:"title"`
	Slug            *string  `json:"slug"`
	Excerpt         *string  `json:"excerpt"`
	Content         *string  `json:"content"`
	CoverImage      *string  `json:"coverImage"`
	MetaTitle       *string  `json:"metaTitle"`
	MetaDescription *string  `json:"metaDescription"`
	Categories      []string `json:"categories"`
	Tags            []string `json:"tags"`
	IsActive        *bool    `json:"isActive"`
}

type publishBlogRequest struct {
	Published bool `json:"published"`
}

// PublicSearch lists published posts for anonymous readers.
func (h *BlogHandler) PublicSearch(c echo.Context) error {
	published := true
	active := true
	filter := entity.BlogFilter{
		Query:     c.QueryParam("q"),
		Published: &published,
		Active:    &active,
		Page:      queryInt(c, "page", 1),
		Size:      queryInt(c, "size", 10),
	}

	page, err := h.uc.Search(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, page)
}

// PublicGetBySlug returns one published post by slug.
func (h *BlogHandler) PublicGetBySlug(c echo.Context) error {
	blog, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blog)
}

// RecordView bumps the view counter of a post.
func (h *BlogHandler) RecordView(c echo.Context) error {
	if err := h.uc.RecordView(c.Request().Context(), c.Param("slug")); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "View recorded")
}

// ListMine lists the caller's posts, drafts included.
func (h *BlogHandler) ListMine(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogs, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blogs)
}

// GetByID returns one post by ID.
func (h *BlogHandler) GetByID(c echo.Context) error {
	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	blog, err := h.uc.GetByID(c.Request().Context(), blogID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blog)
}

// Create persists a new post owned by the caller.
func (h *BlogHandler) Create(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid blog input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	blog, err := h.uc.Create(c.Request().Context(), userID, &usecase.CreateBlogInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		CoverImage:      req.CoverImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Categories:      req.Categories,
		Tags:            req.Tags,
		Published:       req.Published,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, blog, "Blog created")
}

// Update modifies a post owned by the caller.
func (h *BlogHandler) Update(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid blog input")
	}

	blog, err := h.uc.Update(c.Request().Context(), userID, blogID, &usecase.UpdateBlogInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		CoverImage:      req.CoverImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Categories:      req.Categories,
		Tags:            req.Tags,
		IsActive:        req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blog, "Blog updated")
}

// SetPublished toggles the published flag on a post.
func (h *BlogHandler) SetPublished(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req publishBlogRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid publish input")
	}

	blog, err := h.uc.SetPublished(c.Request().Context(), userID, blogID, req.Published)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blog, "Blog publish state updated")
}

// Delete soft-deletes a post owned by the caller.
func (h *BlogHandler) Delete(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, blogID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Blog deleted")
}

// Restore brings back a soft-deleted post owned by the caller.
func (h *BlogHandler) Restore(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	blog, err := h.uc.Restore(c.Request().Context(), userID, blogID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, blog, "Blog restored")
}

// HardDelete removes a post owned by the caller for good.
func (h *BlogHandler) HardDelete(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	blogID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.HardDelete(c.Request().Context(), userID, blogID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Blog permanently deleted")
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// pathUUID parses a UUID path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, response.BindingError(c, "Invalid "+name+" parameter")
	}

	return value, nil
}
