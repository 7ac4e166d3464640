package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// chatRepository implements the domain's ChatRepository interface using GORM.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

// FindRoomByID retrieves a chat room by its unique ID.
func (repo *chatRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var roomM model.RoomModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&roomM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to find room by id")
	}

	return toRoomDomain(&roomM), nil
}

// FindDirectRoom retrieves the existing direct-message room between two users.
// A DM room is a non-group room where both users hold memberships.
func (repo *chatRepository) FindDirectRoom(ctx context.Context, userA, userB uuid.UUID) (*entity.Room, error) {
	var roomM model.RoomModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN t_room_members a ON a.room_id = t_rooms.id AND a.user_id = ?", userA).
		Joins("JOIN t_room_members b ON b.room_id = t_rooms.id AND b.user_id = ?", userB).
		Where("t_rooms.is_group = false").
		First(&roomM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to find direct room")
	}

	return toRoomDomain(&roomM), nil
}

// ListRoomsByUserID retrieves all rooms the user is a member of.
func (repo *chatRepository) ListRoomsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Room, error) {
	var models []model.RoomModel
	err := repo.db.WithContext(ctx).
		Joins("JOIN t_room_members m ON m.room_id = t_rooms.id").
		Where("m.user_id = ?", userID).
		Order("t_rooms.updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rooms by user")
	}

	rooms := make([]*entity.Room, 0, len(models))
	for i := range models {
		rooms = append(rooms, toRoomDomain(&models[i]))
	}

	return rooms, nil
}

// CreateRoom persists a new chat room.
func (repo *chatRepository) CreateRoom(ctx context.Context, room *entity.Room) error {
	roomM := fromRoomDomain(room)

	if err := repo.db.WithContext(ctx).Create(roomM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create room")
	}

	room.ID = roomM.ID
	room.CreatedAt = roomM.CreatedAt
	room.UpdatedAt = roomM.UpdatedAt

	return nil
}

// FindMember retrieves the membership row for a user in a room.
func (repo *chatRepository) FindMember(ctx context.Context, roomID, userID uuid.UUID) (*entity.RoomMember, error) {
	var memberM model.RoomMemberModel
	err := repo.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&memberM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find room member")
	}

	return toRoomMemberDomain(&memberM), nil
}

// ListMembers retrieves all members of a room.
func (repo *chatRepository) ListMembers(ctx context.Context, roomID uuid.UUID) ([]*entity.RoomMember, error) {
	var models []model.RoomMemberModel
	err := repo.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list room members")
	}

	members := make([]*entity.RoomMember, 0, len(models))
	for i := range models {
		members = append(members, toRoomMemberDomain(&models[i]))
	}

	return members, nil
}

// AddMember persists a new room membership.
func (repo *chatRepository) AddMember(ctx context.Context, member *entity.RoomMember) error {
	memberM := fromRoomMemberDomain(member)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("user is already a member of this room")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add room member")
	}

	member.ID = memberM.ID

	return nil
}

// RemoveMember removes a user from a room.
func (repo *chatRepository) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.RoomMemberModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove room member")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoomMemberNotFound
	}

	return nil
}

// CreateMessage persists a new chat message.
func (repo *chatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	messageM := fromMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// ListMessages retrieves up to limit messages in a room, newest first.
func (repo *chatRepository) ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*entity.Message, error) {
	query := repo.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.MessageModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	messages := make([]*entity.Message, 0, len(models))
	for i := range models {
		messages = append(messages, toMessageDomain(&models[i]))
	}

	return messages, nil
}

// --- Mapper Functions ---

func toRoomDomain(data *model.RoomModel) *entity.Room {
	if data == nil {
		return nil
	}

	return &entity.Room{
		ID:        data.ID,
		Name:      data.Name,
		IsGroup:   data.IsGroup,
		CreatedBy: data.CreatedBy,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromRoomDomain(data *entity.Room) *model.RoomModel {
	if data == nil {
		return nil
	}

	return &model.RoomModel{
		ID:        data.ID,
		Name:      data.Name,
		IsGroup:   data.IsGroup,
		CreatedBy: data.CreatedBy,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toRoomMemberDomain(data *model.RoomMemberModel) *entity.RoomMember {
	if data == nil {
		return nil
	}

	return &entity.RoomMember{
		ID:       data.ID,
		RoomID:   data.RoomID,
		UserID:   data.UserID,
		Role:     entity.RoomRole(data.Role),
		JoinedAt: data.JoinedAt,
	}
}

func fromRoomMemberDomain(data *entity.RoomMember) *model.RoomMemberModel {
	if data == nil {
		return nil
	}

	return &model.RoomMemberModel{
		ID:       data.ID,
		RoomID:   data.RoomID,
		UserID:   data.UserID,
		Role:     string(data.Role),
		JoinedAt: data.JoinedAt,
	}
}

func toMessageDomain(data *model.MessageModel) *entity.Message {
	if data == nil {
		return nil
	}

	return &entity.Message{
		ID:        data.ID,
		RoomID:    data.RoomID,
		SenderID:  data.SenderID,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
	}
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	if data == nil {
		return nil
	}

	return &model.MessageModel{
		ID:        data.ID,
		RoomID:    data.RoomID,
		SenderID:  data.SenderID,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
	}
}
