package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoomRole is a member's role inside a chat room.
type RoomRole string

const (
	RoomRoleOwner  RoomRole = "OWNER"
	RoomRoleAdmin  RoomRole = "ADMIN"
	RoomRoleMember RoomRole = "MEMBER"
)

// Room is a chat room. Direct-message rooms have IsGroup false and
// exactly two members.
type Room struct {
	ID        uuid.UUID
	Name      string
	IsGroup   bool
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomMember ties a user to a room with a role.
type RoomMember struct {
	ID       uuid.UUID
	RoomID   uuid.UUID
	UserID   uuid.UUID
	Role     RoomRole
	JoinedAt time.Time
}

// Message is one chat message in a room.
type Message struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	SenderID  uuid.UUID
	Content   string
	CreatedAt time.Time
}
