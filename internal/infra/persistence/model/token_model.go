package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenModel mirrors the 'm_tokens' table. The unique index on user_id keeps
// at most one stored session per user.
type TokenModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AccessToken  string    `gorm:"type:text;not null"`
	RefreshToken string    `gorm:"type:text;not null;index"`
	TokenType    string    `gorm:"type:varchar(20);not null"`
	LoginAt      time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (TokenModel) TableName() string {
	return "m_tokens"
}
