package model

import (
	"time"

	"github.com/google/uuid"
)

// AppModel mirrors the 't_apps' table holding the application catalog.
type AppModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Slug        string    `gorm:"type:varchar(100);unique;not null"`
	Image       string    `gorm:"type:varchar(500)"`
	Description string    `gorm:"type:text"`
	URL         string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null;default:true"`
	Features    []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AppModel) TableName() string {
	return "t_apps"
}
