package impl

import (
	"context"
	"log/slog"

	deliverycontext "inkwell/internal/delivery/context"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	txManager repository.TransactionManager
	chatRepo  repository.ChatRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	ChatRepo  repository.ChatRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		txManager: params.TxManager,
		chatRepo:  params.ChatRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateRoom creates a group room owned by the caller and enrolls the listed
// members. Duplicate and self entries in the member list are skipped.
func (srv *chatService) CreateRoom(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateRoomInput) (*entity.Room, error) {
	srv.log(ctx).Info("Creating room", slog.Any("ownerID", ownerID), slog.String("name", input.Name))

	var created *entity.Room
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.NewChatRepository()
		userRepo := repoFactory.NewUserRepository()

		room := &entity.Room{
			Name:      input.Name,
			IsGroup:   true,
			CreatedBy: ownerID,
		}
		if err := chatRepo.CreateRoom(ctx, room); err != nil {
			return errors.Wrap(err, "failed to create room")
		}

		if err := chatRepo.AddMember(ctx, &entity.RoomMember{
			RoomID: room.ID,
			UserID: ownerID,
			Role:   entity.RoomRoleOwner,
		}); err != nil {
			return errors.Wrap(err, "failed to enroll room owner")
		}

		seen := map[uuid.UUID]bool{ownerID: true}
		for _, memberID := range input.MemberIDs {
			if seen[memberID] {
				continue
			}
			seen[memberID] = true

			if _, err := userRepo.FindByID(ctx, memberID); err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return errors.Wrap(domainerrors.ErrUserMissing, "room member lookup")
				}

				return errors.Wrap(err, "failed to find room member")
			}

			if err := chatRepo.AddMember(ctx, &entity.RoomMember{
				RoomID: room.ID,
				UserID: memberID,
				Role:   entity.RoomRoleMember,
			}); err != nil {
				return errors.Wrap(err, "failed to enroll room member")
			}
		}

		created = room

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute room create transaction")
	}

	return created, nil
}

// OpenDirectRoom returns the DM room between the two users, creating it on
// first contact.
func (srv *chatService) OpenDirectRoom(ctx context.Context, userID, otherID uuid.UUID) (*entity.Room, error) {
	if userID == otherID {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cannot open a direct room with yourself")
	}

	var room *entity.Room
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.NewChatRepository()
		userRepo := repoFactory.NewUserRepository()

		existing, err := chatRepo.FindDirectRoom(ctx, userID, otherID)
		if err == nil {
			room = existing

			return nil
		}
		if !errors.Is(err, repository.ErrRoomNotFound) {
			return errors.Wrap(err, "failed to find direct room")
		}

		if _, err := userRepo.FindByID(ctx, otherID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserMissing, "direct room peer lookup")
			}

			return errors.Wrap(err, "failed to find direct room peer")
		}

		created := &entity.Room{
			IsGroup:   false,
			CreatedBy: userID,
		}
		if err := chatRepo.CreateRoom(ctx, created); err != nil {
			return errors.Wrap(err, "failed to create direct room")
		}

		for _, memberID := range []uuid.UUID{userID, otherID} {
			if err := chatRepo.AddMember(ctx, &entity.RoomMember{
				RoomID: created.ID,
				UserID: memberID,
				Role:   entity.RoomRoleMember,
			}); err != nil {
				return errors.Wrap(err, "failed to enroll direct room member")
			}
		}

		room = created

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute direct room transaction")
	}

	return room, nil
}

// ListRooms returns all rooms the caller belongs to.
func (srv *chatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]*entity.Room, error) {
	rooms, err := srv.chatRepo.ListRoomsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rooms")
	}

	return rooms, nil
}

// AddMember adds a user to a room on behalf of an owner or admin.
func (srv *chatService) AddMember(ctx context.Context, actorID, roomID, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.NewChatRepository()
		userRepo := repoFactory.NewUserRepository()

		actor, err := srv.membership(ctx, chatRepo, roomID, actorID)
		if err != nil {
			return err
		}
		if actor.Role != entity.RoomRoleOwner && actor.Role != entity.RoomRoleAdmin {
			return errors.Wrap(domainerrors.ErrRoomAccessDenied, "only owners and admins may add members")
		}

		if _, err := chatRepo.FindMember(ctx, roomID, userID); err == nil {
			return errors.Wrap(domainerrors.ErrConflict, "user is already a room member")
		} else if !errors.Is(err, repository.ErrRoomMemberNotFound) {
			return errors.Wrap(err, "failed to check existing membership")
		}

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserMissing, "room member lookup")
			}

			return errors.Wrap(err, "failed to find room member")
		}

		if err := chatRepo.AddMember(ctx, &entity.RoomMember{
			RoomID: roomID,
			UserID: userID,
			Role:   entity.RoomRoleMember,
		}); err != nil {
			return errors.Wrap(err, "failed to add room member")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute add member transaction")
	}

	return nil
}

// RemoveMember removes a user from a room. Members may leave on their own;
// removing someone else takes the owner or admin role, and the owner can
// only be removed by leaving.
func (srv *chatService) RemoveMember(ctx context.Context, actorID, roomID, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.NewChatRepository()

		actor, err := srv.membership(ctx, chatRepo, roomID, actorID)
		if err != nil {
			return err
		}

		if actorID != userID {
			if actor.Role != entity.RoomRoleOwner && actor.Role != entity.RoomRoleAdmin {
				return errors.Wrap(domainerrors.ErrRoomAccessDenied, "only owners and admins may remove members")
			}

			target, err := srv.membership(ctx, chatRepo, roomID, userID)
			if err != nil {
				return err
			}
			if target.Role == entity.RoomRoleOwner {
				return errors.Wrap(domainerrors.ErrRoomAccessDenied, "the room owner cannot be removed")
			}
		}

		if err := chatRepo.RemoveMember(ctx, roomID, userID); err != nil {
			return errors.Wrap(err, "failed to remove room member")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute remove member transaction")
	}

	return nil
}

// ListMembers returns a room's members to one of them.
func (srv *chatService) ListMembers(ctx context.Context, userID, roomID uuid.UUID) ([]*entity.RoomMember, error) {
	if _, err := srv.membership(ctx, srv.chatRepo, roomID, userID); err != nil {
		return nil, err
	}

	members, err := srv.chatRepo.ListMembers(ctx, roomID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list room members")
	}

	return members, nil
}

// SendMessage persists a message from the caller and publishes a chat event
// addressed to the other members. Publish failures are logged and swallowed:
// the message itself is already committed.
func (srv *chatService) SendMessage(ctx context.Context, senderID, roomID uuid.UUID, content string) (*entity.Message, error) {
	var message *entity.Message
	var recipientIDs []string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chatRepo := repoFactory.NewChatRepository()

		if _, err := srv.membership(ctx, chatRepo, roomID, senderID); err != nil {
			return err
		}

		msg := &entity.Message{
			RoomID:   roomID,
			SenderID: senderID,
			Content:  content,
		}
		if err := chatRepo.CreateMessage(ctx, msg); err != nil {
			return errors.Wrap(err, "failed to create message")
		}

		members, err := chatRepo.ListMembers(ctx, roomID)
		if err != nil {
			return errors.Wrap(err, "failed to list room members")
		}
		for _, member := range members {
			if member.UserID != senderID {
				recipientIDs = append(recipientIDs, member.UserID.String())
			}
		}

		message = msg

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute send message transaction")
	}

	event := &service.ChatMessageEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		MessageID: message.ID.String(),
		RoomID:    roomID.String(),
		SenderID:  senderID.String(),
		Content:   message.Content,
		MemberIDs: recipientIDs,
	}
	if err := srv.publisher.PublishChatMessage(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish chat event", slog.Any("messageID", message.ID), slog.Any("error", err))
	}

	return message, nil
}

// ListMessages returns up to limit messages in a room, newest first.
func (srv *chatService) ListMessages(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]*entity.Message, error) {
	if _, err := srv.membership(ctx, srv.chatRepo, roomID, userID); err != nil {
		return nil, err
	}

	messages, err := srv.chatRepo.ListMessages(ctx, roomID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return messages, nil
}

// membership loads the caller's membership row, translating repository
// misses into the room access errors the handlers expect.
func (srv *chatService) membership(ctx context.Context, chatRepo repository.ChatRepository, roomID, userID uuid.UUID) (*entity.RoomMember, error) {
	if _, err := chatRepo.FindRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoomNotFound, "room lookup by id")
		}

		return nil, errors.Wrap(err, "failed to find room")
	}

	member, err := chatRepo.FindMember(ctx, roomID, userID)
	if errors.Is(err, repository.ErrRoomMemberNotFound) {
		srv.log(ctx).Warn("Room access rejected for non-member", slog.Any("roomID", roomID), slog.Any("userID", userID))

		return nil, errors.Wrap(domainerrors.ErrRoomAccessDenied, "caller is not a room member")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find room membership")
	}

	return member, nil
}
