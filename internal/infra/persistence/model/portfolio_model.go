package model

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinkData is the jsonb shape of one social media link.
type SocialLinkData struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// SkillItemData is the jsonb shape of one named skill with a percentage.
type SkillItemData struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// PortfolioModel mirrors the 't_portfolio' table. One profile per user.
type PortfolioModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string           `gorm:"type:varchar(100)"`
	Image       string           `gorm:"type:varchar(500)"`
	Email       string           `gorm:"type:varchar(255)"`
	Phone       string           `gorm:"type:varchar(50)"`
	Address     string           `gorm:"type:varchar(255)"`
	Titles      []string         `gorm:"type:jsonb;serializer:json"`
	Description string           `gorm:"type:text"`
	HashTags    []string         `gorm:"type:jsonb;serializer:json"`
	SocialMedia []SocialLinkData `gorm:"type:jsonb;serializer:json"`
	WorkedWith  []string         `gorm:"type:jsonb;serializer:json"`
	AboutMe     string           `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PortfolioModel) TableName() string {
	return "t_portfolio"
}

// PortfolioProjectModel mirrors the 't_portfolio_projects' table.
type PortfolioProjectModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title          string    `gorm:"type:varchar(255);not null"`
	ImageURL       string    `gorm:"type:varchar(500)"`
	GithubURL      string    `gorm:"type:varchar(500)"`
	DemoURL        string    `gorm:"type:varchar(500)"`
	Description    string    `gorm:"type:text"`
	Technologies   []string  `gorm:"type:jsonb;serializer:json"`
	DateCreated    *time.Time
	UserRequest    int    `gorm:"not null;default:0"`
	Rating         int    `gorm:"not null;default:0"`
	ReleaseVersion string `gorm:"type:varchar(50)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PortfolioProjectModel) TableName() string {
	return "t_portfolio_projects"
}

// PortfolioSkillModel mirrors the 't_portfolio_skills' table.
type PortfolioSkillModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Icon        string          `gorm:"type:varchar(255)"`
	SkillData   []SkillItemData `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PortfolioSkillModel) TableName() string {
	return "t_portfolio_skills"
}

// PortfolioExperienceModel mirrors the 't_portfolio_experiences' table.
type PortfolioExperienceModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Company      string    `gorm:"type:varchar(255)"`
	Location     string    `gorm:"type:varchar(255)"`
	StartDate    string    `gorm:"type:varchar(50)"`
	EndDate      string    `gorm:"type:varchar(50)"`
	Description  string    `gorm:"type:text"`
	Technologies []string  `gorm:"type:jsonb;serializer:json"`
	Highlights   []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (PortfolioExperienceModel) TableName() string {
	return "t_portfolio_experiences"
}
