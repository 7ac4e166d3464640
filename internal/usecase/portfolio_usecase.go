package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpsertPortfolioProfileInput replaces the owner's profile card wholesale.
type UpsertPortfolioProfileInput struct {
	Name        string
	Image       string
	Email       string
	Phone       string
	Address     string
	Titles      []string
	Description string
	HashTags    []string
	SocialMedia []entity.SocialLink
	WorkedWith  []string
	AboutMe     string
}

// PortfolioUsecase defines the portfolio editor for the authenticated owner
// plus the public read side keyed by username.
type PortfolioUsecase interface {
	// GetPublicView assembles the public portfolio page for a username.
	GetPublicView(ctx context.Context, userName string) (*entity.PortfolioView, error)

	// ShareQR renders a PNG QR code linking to the user's public page.
	ShareQR(ctx context.Context, userName string) ([]byte, error)

	// GetProfile returns the owner's profile card.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error)

	// UpsertProfile stores the owner's profile card.
	UpsertProfile(ctx context.Context, userID uuid.UUID, input *UpsertPortfolioProfileInput) (*entity.Portfolio, error)

	// ListProjects returns the owner's projects.
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioProject, error)

	// SaveProject creates or updates one project owned by the user.
	SaveProject(ctx context.Context, userID uuid.UUID, project *entity.PortfolioProject) (*entity.PortfolioProject, error)

	// DeleteProject removes one project owned by the user.
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error

	// ListSkills returns the owner's skill groups.
	ListSkills(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioSkill, error)

	// SaveSkill creates or updates one skill group owned by the user.
	SaveSkill(ctx context.Context, userID uuid.UUID, skill *entity.PortfolioSkill) (*entity.PortfolioSkill, error)

	// DeleteSkill removes one skill group owned by the user.
	DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error

	// ListExperiences returns the owner's experience entries.
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioExperience, error)

	// SaveExperience creates or updates one experience entry owned by the user.
	SaveExperience(ctx context.Context, userID uuid.UUID, experience *entity.PortfolioExperience) (*entity.PortfolioExperience, error)

	// DeleteExperience removes one experience entry owned by the user.
	DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) error
}
