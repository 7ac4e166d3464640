package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPortfolioNotFound is returned when no portfolio record matches the lookup.
var ErrPortfolioNotFound = errors.New("portfolio not found")

// PortfolioRepository defines persistence operations for the portfolio page:
// the profile card plus its project, skill and experience sections. Every
// section row is owned by a user.
type PortfolioRepository interface {
	// FindProfileByUserID retrieves a user's portfolio profile.
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error)

	// UpsertProfile stores the profile, replacing any existing row for the same user.
	UpsertProfile(ctx context.Context, profile *entity.Portfolio) error

	// ListProjects retrieves all projects owned by a user.
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioProject, error)

	// SaveProject creates the project when its ID is new, updates it otherwise.
	SaveProject(ctx context.Context, project *entity.PortfolioProject) error

	// DeleteProject removes a project owned by the user.
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error

	// ListSkills retrieves all skill groups owned by a user.
	ListSkills(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioSkill, error)

	// SaveSkill creates the skill group when its ID is new, updates it otherwise.
	SaveSkill(ctx context.Context, skill *entity.PortfolioSkill) error

	// DeleteSkill removes a skill group owned by the user.
	DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error

	// ListExperiences retrieves all experience entries owned by a user.
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioExperience, error)

	// SaveExperience creates the experience when its ID is new, updates it otherwise.
	SaveExperience(ctx context.Context, experience *entity.PortfolioExperience) error

	// DeleteExperience removes an experience entry owned by the user.
	DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) error
}
