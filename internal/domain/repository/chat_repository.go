package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for chat persistence.
var (
	// ErrRoomNotFound is returned when no chat room matches the lookup.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomMemberNotFound is returned when a user is not a member of a room.
	ErrRoomMemberNotFound = errors.New("room member not found")
)

// ChatRepository defines persistence operations for chat rooms, their
// memberships and messages.
type ChatRepository interface {
	// FindRoomByID retrieves a chat room by its unique ID.
	FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)

	// FindDirectRoom retrieves the existing direct-message room between two
	// users, if any. The argument order does not matter.
	FindDirectRoom(ctx context.Context, userA, userB uuid.UUID) (*entity.Room, error)

	// ListRoomsByUserID retrieves all rooms the user is a member of.
	ListRoomsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Room, error)

	// CreateRoom persists a new chat room.
	CreateRoom(ctx context.Context, room *entity.Room) error

	// FindMember retrieves the membership row for a user in a room.
	FindMember(ctx context.Context, roomID, userID uuid.UUID) (*entity.RoomMember, error)

	// ListMembers retrieves all members of a room.
	ListMembers(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomMember, error)

	// AddMember persists a new room membership.
	AddMember(ctx context.Context, member *entity.RoomMember) error

	// RemoveMember removes a user from a room.
	RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error

	// CreateMessage persists a new chat message.
	CreateMessage(ctx context.Context, message *entity.Message) error

	// ListMessages retrieves up to limit messages in a room, newest first.
	// A zero limit returns all messages.
	ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error)
}
