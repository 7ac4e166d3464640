package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/domain/entity"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PortfolioHandler holds dependencies for portfolio handlers.
type PortfolioHandler struct {
	uc     usecase.PortfolioUsecase
	logger *slog.Logger
}

// NewPortfolioHandler is the constructor for PortfolioHandler, injected by Fx.
func NewPortfolioHandler(uc usecase.PortfolioUsecase, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, logger: logger}
}

type upsertProfileRequest struct {
	Name        string              `json:"name" validate:"required"`
	Image       string              `json:"image"`
	Email       string              `json:"email" validate:"omitempty,email"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	Titles      []string            `json:"titles"`
	Description string              `json:"description"`
	HashTags    []string            `json:"hashTags"`
	SocialMedia []entity.SocialLink `json:"socialMedia"`
	WorkedWith  []string            `json:"workedWith"`
	AboutMe     string              `json:"aboutMe"`
}

type saveProjectRequest struct {
	ID             string     `json:"id"`
	Title          string     `json:"title" validate:"required"`
	ImageURL       string     `json:"imageUrl"`
	GithubURL      string     `json:"githubUrl"`
	DemoURL        string     `json:"demoUrl"`
	Description    string     `json:"description"`
	Technologies   []string   `json:"technologies"`
	DateCreated    *time.Time `json:"dateCreated"`
	UserRequest    int        `json:"userRequest"`
	Rating         int        `json:"rating"`
	ReleaseVersion string     `json:"releaseVersion"`
}

type saveSkillRequest struct {
	ID          string             `json:"id"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	SkillData   []entity.SkillData `json:"skillData"`
}

type saveExperienceRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`
}

// PublicView returns the assembled public page for a username.
func (h *PortfolioHandler) PublicView(c echo.Context) error {
	view, err := h.uc.GetPublicView(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, view)
}

// ShareQR streams a PNG QR code linking to the public page.
func (h *PortfolioHandler) ShareQR(c echo.Context) error {
	png, err := h.uc.ShareQR(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// GetProfile returns the caller's profile card.
func (h *PortfolioHandler) GetProfile(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, profile)
}

// UpsertProfile stores the caller's profile card.
func (h *PortfolioHandler) UpsertProfile(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req upsertProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.UpsertProfile(c.Request().Context(), userID, &usecase.UpsertPortfolioProfileInput{
		Name:        req.Name,
		Image:       req.Image,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Titles:      req.Titles,
		Description: req.Description,
		HashTags:    req.HashTags,
		SocialMedia: req.SocialMedia,
		WorkedWith:  req.WorkedWith,
		AboutMe:     req.AboutMe,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, profile, "Profile saved")
}

// ListProjects returns the caller's projects.
func (h *PortfolioHandler) ListProjects(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	projects, err := h.uc.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, projects)
}

// SaveProject creates or updates one project.
func (h *PortfolioHandler) SaveProject(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req saveProjectRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid project input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	id, err := optionalUUID(c, req.ID)
	if err != nil {
		return err
	}

	project, err := h.uc.SaveProject(c.Request().Context(), userID, &entity.PortfolioProject{
		ID:             id,
		Title:          req.Title,
		ImageURL:       req.ImageURL,
		GithubURL:      req.GithubURL,
		DemoURL:        req.DemoURL,
		Description:    req.Description,
		Technologies:   req.Technologies,
		DateCreated:    req.DateCreated,
		UserRequest:    req.UserRequest,
		Rating:         req.Rating,
		ReleaseVersion: req.ReleaseVersion,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, project, "Project saved")
}

// DeleteProject removes one project.
func (h *PortfolioHandler) DeleteProject(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	projectID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProject(c.Request().Context(), userID, projectID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Project deleted")
}

// ListSkills returns the caller's skill groups.
func (h *PortfolioHandler) ListSkills(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	skills, err := h.uc.ListSkills(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, skills)
}

// SaveSkill creates or updates one skill group.
func (h *PortfolioHandler) SaveSkill(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req saveSkillRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid skill input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	id, err := optionalUUID(c, req.ID)
	if err != nil {
		return err
	}

	skill, err := h.uc.SaveSkill(c.Request().Context(), userID, &entity.PortfolioSkill{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		SkillData:   req.SkillData,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, skill, "Skill saved")
}

// DeleteSkill removes one skill group.
func (h *PortfolioHandler) DeleteSkill(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	skillID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteSkill(c.Request().Context(), userID, skillID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Skill deleted")
}

// ListExperiences returns the caller's experience entries.
func (h *PortfolioHandler) ListExperiences(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	experiences, err := h.uc.ListExperiences(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, experiences)
}

// SaveExperience creates or updates one experience entry.
func (h *PortfolioHandler) SaveExperience(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req saveExperienceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid experience input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	id, err := optionalUUID(c, req.ID)
	if err != nil {
		return err
	}

	experience, err := h.uc.SaveExperience(c.Request().Context(), userID, &entity.PortfolioExperience{
		ID:           id,
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Description:  req.Description,
		Technologies: req.Technologies,
		Highlights:   req.Highlights,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, experience, "Experience saved")
}

// DeleteExperience removes one experience entry.
func (h *PortfolioHandler) DeleteExperience(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	experienceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteExperience(c.Request().Context(), userID, experienceID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Experience deleted")
}

// optionalUUID parses an optional UUID from a request body, empty means new.
func optionalUUID(c echo.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}

	value, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, response.BindingError(c, "Invalid id field")
	}

	return value, nil
}
