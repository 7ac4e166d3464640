// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio is the profile card a user shows on their public page.
type Portfolio struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Image       string
	Email       string
	Phone       string
	Address     string
	Titles      []string // Rotating headline titles ("Mobile Developer", ...).
	Description string
	HashTags    []string
	SocialMedia []SocialLink
	WorkedWith  []string // Logos/names of past collaborators.
	AboutMe     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SocialLink is one external profile link rendered on the portfolio page.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// PortfolioProject is one showcased project.
type PortfolioProject struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	ImageURL       string
	GithubURL      string
	DemoURL        string
	Description    string
	Technologies   []string
	DateCreated    *time.Time
	UserRequest    int
	Rating         int
	ReleaseVersion string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PortfolioSkill groups related skills under one heading.
type PortfolioSkill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Icon        string
	SkillData   []SkillData
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SkillData is one named skill with a proficiency percentage.
type SkillData struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// PortfolioExperience is one work-history entry.
type PortfolioExperience struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Company      string
	Location     string
	StartDate    string
	EndDate      string
	Description  string
	Technologies []string
	Highlights   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PortfolioView is the assembled public page: profile plus all sections.
type PortfolioView struct {
	Profile     *Portfolio             `json:"profile"`
	Projects    []*PortfolioProject    `json:"projects"`
	Skills      []*PortfolioSkill      `json:"skills"`
	Experiences []*PortfolioExperience `json:"experiences"`
}
