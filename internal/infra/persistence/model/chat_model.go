package model

import (
	"time"

	"github.com/google/uuid"
)

// RoomModel mirrors the 't_rooms' table.
type RoomModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(255)"`
	IsGroup   bool      `gorm:"not null;default:false"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Members  []RoomMemberModel `gorm:"foreignKey:RoomID"`
	Messages []MessageModel    `gorm:"foreignKey:RoomID"`
}

// TableName explicitly sets the table name for GORM.
func (RoomModel) TableName() string {
	return "t_rooms"
}

// RoomMemberModel mirrors the 't_room_members' table. The compound unique
// index keeps one membership row per user per room.
type RoomMemberModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	RoomID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_room_members_room_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_room_members_room_user"`
	Role     string    `gorm:"type:varchar(20);not null"`
	JoinedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RoomMemberModel) TableName() string {
	return "t_room_members"
}

// MessageModel mirrors the 't_messages' table.
type MessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "t_messages"
}
