package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// portfolioRepository implements the domain's PortfolioRepository interface using GORM.
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository is the constructor for portfolioRepository.
func NewPortfolioRepository(db *gorm.DB) repository.PortfolioRepository {
	return &portfolioRepository{db: db}
}

// FindProfileByUserID retrieves a user's portfolio profile.
func (repo *portfolioRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.Portfolio, error) {
	var profileM model.PortfolioModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPortfolioNotFound
		}

		return nil, errors.Wrap(err, "failed to find portfolio profile")
	}

	return toPortfolioDomain(&profileM), nil
}

// UpsertProfile stores the profile, replacing any existing row for the same user.
func (repo *portfolioRepository) UpsertProfile(ctx context.Context, profile *entity.Portfolio) error {
	profileM := fromPortfolioDomain(profile)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "image", "email", "phone", "address", "titles", "description",
				"hash_tags", "social_media", "worked_with", "about_me", "updated_at",
			}),
		}).
		Create(profileM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert portfolio profile")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// ListProjects retrieves all projects owned by a user.
func (repo *portfolioRepository) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioProject, error) {
	var models []model.PortfolioProjectModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio projects")
	}

	projects := make([]*entity.PortfolioProject, 0, len(models))
	for i := range models {
		projects = append(projects, toProjectDomain(&models[i]))
	}

	return projects, nil
}

// SaveProject creates the project when its ID is new, updates it otherwise.
func (repo *portfolioRepository) SaveProject(ctx context.Context, project *entity.PortfolioProject) error {
	projectM := fromProjectDomain(project)

	if err := repo.db.WithContext(ctx).Save(projectM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save portfolio project")
	}

	project.ID = projectM.ID
	project.CreatedAt = projectM.CreatedAt
	project.UpdatedAt = projectM.UpdatedAt

	return nil
}

// DeleteProject removes a project owned by the user. The user_id guard keeps
// one user from deleting another user's rows.
func (repo *portfolioRepository) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).
		Delete(&model.PortfolioProjectModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete portfolio project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioNotFound
	}

	return nil
}

// ListSkills retrieves all skill groups owned by a user.
func (repo *portfolioRepository) ListSkills(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioSkill, error) {
	var models []model.PortfolioSkillModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio skills")
	}

	skills := make([]*entity.PortfolioSkill, 0, len(models))
	for i := range models {
		skills = append(skills, toSkillDomain(&models[i]))
	}

	return skills, nil
}

// SaveSkill creates the skill group when its ID is new, updates it otherwise.
func (repo *portfolioRepository) SaveSkill(ctx context.Context, skill *entity.PortfolioSkill) error {
	skillM := fromSkillDomain(skill)

	if err := repo.db.WithContext(ctx).Save(skillM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save portfolio skill")
	}

	skill.ID = skillM.ID
	skill.CreatedAt = skillM.CreatedAt
	skill.UpdatedAt = skillM.UpdatedAt

	return nil
}

// DeleteSkill removes a skill group owned by the user.
func (repo *portfolioRepository) DeleteSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", skillID, userID).
		Delete(&model.PortfolioSkillModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete portfolio skill")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioNotFound
	}

	return nil
}

// ListExperiences retrieves all experience entries owned by a user.
func (repo *portfolioRepository) ListExperiences(ctx context.Context, userID uuid.UUID) ([]*entity.PortfolioExperience, error) {
	var models []model.PortfolioExperienceModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio experiences")
	}

	experiences := make([]*entity.PortfolioExperience, 0, len(models))
	for i := range models {
		experiences = append(experiences, toExperienceDomain(&models[i]))
	}

	return experiences, nil
}

// SaveExperience creates the experience when its ID is new, updates it otherwise.
func (repo *portfolioRepository) SaveExperience(ctx context.Context, experience *entity.PortfolioExperience) error {
	experienceM := fromExperienceDomain(experience)

	if err := repo.db.WithContext(ctx).Save(experienceM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save portfolio experience")
	}

	experience.ID = experienceM.ID
	experience.CreatedAt = experienceM.CreatedAt
	experience.UpdatedAt = experienceM.UpdatedAt

	return nil
}

// DeleteExperience removes an experience entry owned by the user.
func (repo *portfolioRepository) DeleteExperience(ctx context.Context, userID, experienceID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", experienceID, userID).
		Delete(&model.PortfolioExperienceModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete portfolio experience")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toPortfolioDomain(data *model.PortfolioModel) *entity.Portfolio {
	if data == nil {
		return nil
	}

	links := make([]entity.SocialLink, 0, len(data.SocialMedia))
	for _, link := range data.SocialMedia {
		links = append(links, entity.SocialLink{Name: link.Name, URL: link.URL, Icon: link.Icon})
	}

	return &entity.Portfolio{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Image:       data.Image,
		Email:       data.Email,
		Phone:       data.Phone,
		Address:     data.Address,
		Titles:      data.Titles,
		Description: data.Description,
		HashTags:    data.HashTags,
		SocialMedia: links,
		WorkedWith:  data.WorkedWith,
		AboutMe:     data.AboutMe,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromPortfolioDomain(data *entity.Portfolio) *model.PortfolioModel {
	if data == nil {
		return nil
	}

	links := make([]model.SocialLinkData, 0, len(data.SocialMedia))
	for _, link := range data.SocialMedia {
		links = append(links, model.SocialLinkData{Name: link.Name, URL: link.URL, Icon: link.Icon})
	}

	return &model.PortfolioModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		Image:       data.Image,
		Email:       data.Email,
		Phone:       data.Phone,
		Address:     data.Address,
		Titles:      data.Titles,
		Description: data.Description,
		HashTags:    data.HashTags,
		SocialMedia: links,
		WorkedWith:  data.WorkedWith,
		AboutMe:     data.AboutMe,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toProjectDomain(data *model.PortfolioProjectModel) *entity.PortfolioProject {
	if data == nil {
		return nil
	}

	return &entity.PortfolioProject{
		ID:             data.ID,
		UserID:         data.UserID,
		Title:          data.Title,
		ImageURL:       data.ImageURL,
		GithubURL:      data.GithubURL,
		DemoURL:        data.DemoURL,
		Description:    data.Description,
		Technologies:   data.Technologies,
		DateCreated:    data.DateCreated,
		UserRequest:    data.UserRequest,
		Rating:         data.Rating,
		ReleaseVersion: data.ReleaseVersion,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromProjectDomain(data *entity.PortfolioProject) *model.PortfolioProjectModel {
	if data == nil {
		return nil
	}

	return &model.PortfolioProjectModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Title:          data.Title,
		ImageURL:       data.ImageURL,
		GithubURL:      data.GithubURL,
		DemoURL:        data.DemoURL,
		Description:    data.Description,
		Technologies:   data.Technologies,
		DateCreated:    data.DateCreated,
		UserRequest:    data.UserRequest,
		Rating:         data.Rating,
		ReleaseVersion: data.ReleaseVersion,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toSkillDomain(data *model.PortfolioSkillModel) *entity.PortfolioSkill {
	if data == nil {
		return nil
	}

	items := make([]entity.SkillData, 0, len(data.SkillData))
	for _, item := range data.SkillData {
		items = append(items, entity.SkillData{Name: item.Name, Percentage: item.Percentage})
	}

	return &entity.PortfolioSkill{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Icon:        data.Icon,
		SkillData:   items,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromSkillDomain(data *entity.PortfolioSkill) *model.PortfolioSkillModel {
	if data == nil {
		return nil
	}

	items := make([]model.SkillItemData, 0, len(data.SkillData))
	for _, item := range data.SkillData {
		items = append(items, model.SkillItemData{Name: item.Name, Percentage: item.Percentage})
	}

	return &model.PortfolioSkillModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Title:       data.Title,
		Description: data.Description,
		Icon:        data.Icon,
		SkillData:   items,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toExperienceDomain(data *model.PortfolioExperienceModel) *entity.PortfolioExperience {
	if data == nil {
		return nil
	}

	return &entity.PortfolioExperience{
		ID:           data.ID,
		UserID:       data.UserID,
		Title:        data.Title,
		Company:      data.Company,
		Location:     data.Location,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		Description:  data.Description,
		Technologies: data.Technologies,
		Highlights:   data.Highlights,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromExperienceDomain(data *entity.PortfolioExperience) *model.PortfolioExperienceModel {
	if data == nil {
		return nil
	}

	return &model.PortfolioExperienceModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Title:        data.Title,
		Company:      data.Company,
		Location:     data.Location,
		StartDate:    data.StartDate,
		EndDate:      data.EndDate,
		Description:  data.Description,
		Technologies: data.Technologies,
		Highlights:   data.Highlights,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
