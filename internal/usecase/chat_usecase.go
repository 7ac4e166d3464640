package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateRoomInput defines a new group room. The creator becomes the owner;
// the listed members join with the member role.
type CreateRoomInput struct {
	Name      string
	MemberIDs []uuid.UUID
}

// ChatUsecase defines chat room, membership and messaging operations.
// Every operation is performed on behalf of an authenticated user, and
// room access always goes through the membership check.
type ChatUsecase interface {
	// CreateRoom creates a group room owned by the caller.
	CreateRoom(ctx context.Context, ownerID uuid.UUID, input *CreateRoomInput) (*entity.Room, error)

	// OpenDirectRoom returns the DM room between the caller and the other
	// user, creating it on first contact.
	OpenDirectRoom(ctx context.Context, userID, otherID uuid.UUID) (*entity.Room, error)

	// ListRooms returns all rooms the caller belongs to.
	ListRooms(ctx context.Context, userID uuid.UUID) ([]*entity.Room, error)

	// AddMember adds a user to a room. Only the owner or an admin may do this.
	AddMember(ctx context.Context, actorID, roomID, userID uuid.UUID) error

	// RemoveMember removes a user from a room. Members may remove
	// themselves; removing someone else takes the owner or admin role.
	RemoveMember(ctx context.Context, actorID, roomID, userID uuid.UUID) error

	// ListMembers returns a room's members. The caller must be one of them.
	ListMembers(ctx context.Context, userID, roomID uuid.UUID) ([]*entity.RoomMember, error)

	// SendMessage persists a message from the caller and publishes a chat
	// event addressed to the other members.
	SendMessage(ctx context.Context, senderID, roomID uuid.UUID, content string) (*entity.Message, error)

	// ListMessages returns up to limit messages in a room, newest first.
	// The caller must be a member.
	ListMessages(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]*entity.Message, error)
}
