package impl

import (
	"context"
	"log/slog"

	deliverycontext "inkwell/internal/delivery/context"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// portfolioService implements the PortfolioUsecase interface.
type portfolioService struct {
	userRepo      repository.UserRepository
	portfolioRepo repository.PortfolioRepository
	qrService     service.QRCodeService
	logger        *slog.Logger
}

// PortfolioServiceParams holds dependencies for PortfolioService, injected by Fx.
type PortfolioServiceParams struct {
	fx.In

	UserRepo      repository.UserRepository
	PortfolioRepo repository.PortfolioRepository
	QRService     service.QRCodeService
	Logger        *slog.Logger
}

// NewPortfolioService is the constructor for portfolioService.
func NewPortfolioService(params PortfolioServiceParams) usecase.PortfolioUsecase {
	return &portfolioService{
		userRepo:      params.UserRepo,
		portfolioRepo: params.PortfolioRepo,
		qrService:     params.QRService,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *portfolioService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetPublicView assembles the public portfolio page for a username: the
// profile card plus every section.
func (srv *portfolioService) GetPublicView(ctx context.Context, userName string) (*entity.PortfolioView, error) {
	user, err := srv.userByName(ctx, userName)
	if err != nil {
		return nil, err
	}

	profile, err := srv.portfolioRepo.FindProfileByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		return nil, errors.Wrap(domainerrors.ErrPortfolioNotFound, "portfolio profile lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find portfolio profile")
	}

	projects, err := srv.portfolioRepo.ListProjects(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio projects")
	}

	skills, err := srv.portfolioRepo.ListSkills(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio skills")
	}

	experiences, err := srv.portfolioRepo.ListExperiences(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio experiences")
	}

	return &entity.PortfolioView{
		Profile:     profile,
		Projects:    projects,
		Skills:      skills,
		Experiences: experiences,
	}, nil
}

// ShareQR renders a PNG QR code linking to the user's public page. The
// username must belong to a registered user, so dead links never get a code.
func (srv *portfolioService) ShareQR(ctx context.Context, userName string) ([]byte, error) {
	user, err := srv.userByName(ctx, userName)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GeneratePortfolioQR(user.UserName)
	if err != nil {
		srv.log(ctx).Error("Failed to render portfolio QR", slog.String("userName", userName), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render portfolio qr code")
	}

	return png, nil
}

// GetProfile returns the owner's profile card.
func (srv *portfolioService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error) {
	profile, err := srv.portfolioRepo.FindProfileByUserID(ctx, userID)
	if errors.Is(err, repository.ErrPortfolioNotFound) {
		return nil, errors.Wrap(domainerrors.ErrPortfolioNotFound, "portfolio profile lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find portfolio profile")
	}

	return profile, nil
}

// UpsertProfile stores the owner's profile card wholesale.
func (srv *portfolioService) UpsertProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpsertPortfolioProfileInput) (*entity.Portfolio, error) {
	profile := &entity.Portfolio{
		UserID:      userID,
		Name:        input.Name,
		Image:       input.Image,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Titles:      input.Titles,
		Description: input.Description,
		HashTags:    input.HashTags,
		SocialMedia: input.SocialMedia,
		WorkedWith:  input.WorkedWith,
		AboutMe:     input.AboutMe,
	}

	if err := srv.portfolioRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to upsert portfolio profile")
	}

	srv.log(ctx).Debug("Portfolio profile stored", slog.Any("userID", userID))

	return profile, nil
}

// ListProjects returns the owner's projects.
func (srv *portfolioService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioProject, error) {
	projects, err := srv.portfolioRepo.ListProjects(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio projects")
	}

	return projects, nil
}

// SaveProject creates or updates one project owned by the user.
func (srv *portfolioService) SaveProject(ctx context.Context, userID uuid.UUID, project *entity.PortfolioProject) (*entity.PortfolioProject, error) {
	project.UserID = userID
	if err := srv.portfolioRepo.SaveProject(ctx, project); err != nil {
		return nil, errors.Wrap(err, "failed to save portfolio project")
	}

	return project, nil
}

// DeleteProject removes one project owned by the user.
func (srv *portfolioService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if err := srv.portfolioRepo.DeleteProject(ctx, userID, projectID); err != nil {
		if errors.Is(err, repository.ErrPortfolioNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "portfolio project lookup")
		}

		return errors.Wrap(err, "failed to delete portfolio project")
	}

	return nil
}

// ListSkills returns the owner's skill groups.
func (srv *portfolioService) ListSkills(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioSkill, error) {
	skills, err := srv.portfolioRepo.ListSkills(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio skills")
	}

	return skills, nil
}

// SaveSkill creates or updates one skill group owned by the user.
func (srv *portfolioService) SaveSkill(ctx context.Context, userID uuid.UUID, skill *entity.PortfolioSkill) (*entity.PortfolioSkill, error) {
	skill.UserID = userID
	if err := srv.portfolioRepo.SaveSkill(ctx, skill); err != nil {
		return nil, errors.Wrap(err, "failed to save portfolio skill")
	}

	return skill, nil
}

// DeleteSkill removes one skill group owned by the user.
func (srv *portfolioService) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if err := srv.portfolioRepo.DeleteSkill(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrPortfolioNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "portfolio skill lookup")
		}

		return errors.Wrap(err, "failed to delete portfolio skill")
	}

	return nil
}

// ListExperiences returns the owner's experience entries.
func (srv *portfolioService) ListExperiences(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioExperience, error) {
	experiences, err := srv.portfolioRepo.ListExperiences(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio experiences")
	}

	return experiences, nil
}

// SaveExperience creates or updates one experience entry owned by the user.
func (srv *portfolioService) SaveExperience(ctx context.Context, userID uuid.UUID, experience *entity.PortfolioExperience) (*entity.PortfolioExperience, error) {
	experience.UserID = userID
	if err := srv.portfolioRepo.SaveExperience(ctx, experience); err != nil {
		return nil, errors.Wrap(err, "failed to save portfolio experience")
	}

	return experience, nil
}

// DeleteExperience removes one experience entry owned by the user.
func (srv *portfolioService) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) error {
	if err := srv.portfolioRepo.DeleteExperience(ctx, userID, experienceID); err != nil {
		if errors.Is(err, repository.ErrPortfolioNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "portfolio experience lookup")
		}

		return errors.Wrap(err, "failed to delete portfolio experience")
	}

	return nil
}

// userByName resolves a public username to the owning user.
func (srv *portfolioService) userByName(ctx context.Context, userName string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUserName(ctx, userName)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrUserMissing, "user lookup by username")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return user, nil
}
