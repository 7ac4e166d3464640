package model

import (
	"time"

	"github.com/google/uuid"
)

// APITokenModel mirrors the 't_token_apps' table holding issued API tokens
// and their usage counters.
type APITokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name       string    `gorm:"type:varchar(100);not null"`
	Token      string    `gorm:"type:varchar(255);unique;not null"`
	Quota      int       `gorm:"not null"`
	UsageCount int       `gorm:"not null;default:0"`
	IsActive   bool      `gorm:"not null;default:true"`
	ExpiredAt  time.Time `gorm:"not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (APITokenModel) TableName() string {
	return "t_token_apps"
}
