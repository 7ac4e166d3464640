package model

import (
	"time"

	"github.com/google/uuid"
)

// BlogModel mirrors the 't_blogs' table. Deleted rows keep their data;
// every lookup filters on deleted_at IS NULL.
type BlogModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AuthorID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Slug            string    `gorm:"type:varchar(255);unique;not null"`
	Excerpt         string    `gorm:"type:text"`
	Content         string    `gorm:"type:text"`
	CoverImage      string    `gorm:"type:varchar(500)"`
	MetaTitle       string    `gorm:"type:varchar(255)"`
	MetaDescription string    `gorm:"type:text"`
	Categories      []string  `gorm:"type:jsonb;serializer:json"`
	Tags            []string  `gorm:"type:jsonb;serializer:json"`
	Published       bool      `gorm:"not null;default:false"`
	IsActive        bool      `gorm:"not null;default:true"`
	ViewCount       int64     `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (BlogModel) TableName() string {
	return "t_blogs"
}
