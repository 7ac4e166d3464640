package entity

import (
	"time"

	"github.com/google/uuid"
)

// App is one entry in the application catalog shown on the landing page.
type App struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Image       string
	Description string
	URL         string
	IsActive    bool
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
