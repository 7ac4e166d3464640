package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatServiceForTest(chats *mockChatRepo, users *mockUserRepo, publisher *recordingPublisher) usecase.ChatUsecase {
	return NewChatService(ChatServiceParams{
		TxManager: &stubTxManager{factory: &stubFactory{chats: chats, users: users}},
		ChatRepo:  chats,
		Publisher: publisher,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestChatService_CreateRoom_EnrollsOwnerAndMembers(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("CreateRoom", ctx, mock.AnythingOfType("*entity.Room")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Room).ID = uuid.New()
	}).Return(nil)

	var roles []entity.RoomRole
	chats.On("AddMember", ctx, mock.AnythingOfType("*entity.RoomMember")).Run(func(args mock.Arguments) {
		roles = append(roles, args.Get(1).(*entity.RoomMember).Role)
	}).Return(nil)

	users := &mockUserRepo{}
	users.On("FindByID", ctx, memberID).Return(&entity.User{ID: memberID}, nil)

	service := newChatServiceForTest(chats, users, &recordingPublisher{})

	room, err := service.CreateRoom(ctx, ownerID, &usecase.CreateRoomInput{
		Name:      "team",
		MemberIDs: []uuid.UUID{memberID, memberID, ownerID},
	})

	require.NoError(t, err)
	assert.True(t, room.IsGroup)
	assert.Equal(t, []entity.RoomRole{entity.RoomRoleOwner, entity.RoomRoleMember}, roles)
}

func TestChatService_OpenDirectRoom_ReturnsExisting(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()
	existing := &entity.Room{ID: uuid.New(), IsGroup: false}

	chats := &mockChatRepo{}
	chats.On("FindDirectRoom", ctx, userID, otherID).Return(existing, nil)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	room, err := service.OpenDirectRoom(ctx, userID, otherID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, room.ID)
	chats.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
}

func TestChatService_OpenDirectRoom_CreatesOnFirstContact(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindDirectRoom", ctx, userID, otherID).Return(nil, repository.ErrRoomNotFound)
	chats.On("CreateRoom", ctx, mock.AnythingOfType("*entity.Room")).Run(func(args mock.Arguments) {
		room := args.Get(1).(*entity.Room)
		assert.False(t, room.IsGroup)
		room.ID = uuid.New()
	}).Return(nil)
	chats.On("AddMember", ctx, mock.AnythingOfType("*entity.RoomMember")).Return(nil).Times(2)

	users := &mockUserRepo{}
	users.On("FindByID", ctx, otherID).Return(&entity.User{ID: otherID}, nil)

	service := newChatServiceForTest(chats, users, &recordingPublisher{})

	room, err := service.OpenDirectRoom(ctx, userID, otherID)

	require.NoError(t, err)
	assert.False(t, room.IsGroup)
	chats.AssertExpectations(t)
}

func TestChatService_OpenDirectRoom_WithSelf(t *testing.T) {
	userID := uuid.New()
	service := newChatServiceForTest(&mockChatRepo{}, &mockUserRepo{}, &recordingPublisher{})

	_, err := service.OpenDirectRoom(context.Background(), userID, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestChatService_SendMessage_PublishesToOtherMembers(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	senderID := uuid.New()
	peerID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, senderID).Return(&entity.RoomMember{RoomID: roomID, UserID: senderID}, nil)
	chats.On("CreateMessage", ctx, mock.AnythingOfType("*entity.Message")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Message).ID = uuid.New()
	}).Return(nil)
	chats.On("ListMembers", ctx, roomID).Return([]*entity.RoomMember{
		{RoomID: roomID, UserID: senderID},
		{RoomID: roomID, UserID: peerID},
	}, nil)

	publisher := &recordingPublisher{}
	service := newChatServiceForTest(chats, &mockUserRepo{}, publisher)

	message, err := service.SendMessage(ctx, senderID, roomID, "hello")

	require.NoError(t, err)
	assert.Equal(t, "hello", message.Content)
	require.Len(t, publisher.chatEvents, 1)
	assert.Equal(t, []string{peerID.String()}, publisher.chatEvents[0].MemberIDs)
	assert.Equal(t, senderID.String(), publisher.chatEvents[0].SenderID)
}

func TestChatService_SendMessage_RejectsNonMember(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	outsiderID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, outsiderID).Return(nil, repository.ErrRoomMemberNotFound)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	_, err := service.SendMessage(ctx, outsiderID, roomID, "let me in")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRoomAccessDenied))
	chats.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestChatService_AddMember_RequiresOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	actorID := uuid.New()
	newMemberID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, actorID).Return(&entity.RoomMember{UserID: actorID, Role: entity.RoomRoleMember}, nil)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	err := service.AddMember(ctx, actorID, roomID, newMemberID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRoomAccessDenied))
}

func TestChatService_RemoveMember_SelfLeaveAllowed(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	memberID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, memberID).Return(&entity.RoomMember{UserID: memberID, Role: entity.RoomRoleMember}, nil)
	chats.On("RemoveMember", ctx, roomID, memberID).Return(nil)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	require.NoError(t, service.RemoveMember(ctx, memberID, roomID, memberID))
	chats.AssertExpectations(t)
}

func TestChatService_RemoveMember_OwnerCannotBeRemoved(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	adminID := uuid.New()
	ownerID := uuid.New()

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, adminID).Return(&entity.RoomMember{UserID: adminID, Role: entity.RoomRoleAdmin}, nil)
	chats.On("FindMember", ctx, roomID, ownerID).Return(&entity.RoomMember{UserID: ownerID, Role: entity.RoomRoleOwner}, nil)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	err := service.RemoveMember(ctx, adminID, roomID, ownerID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRoomAccessDenied))
	chats.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_ListMessages_ChecksMembership(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	memberID := uuid.New()
	messages := []*entity.Message{{ID: uuid.New(), RoomID: roomID, Content: "latest"}}

	chats := &mockChatRepo{}
	chats.On("FindRoomByID", ctx, roomID).Return(&entity.Room{ID: roomID}, nil)
	chats.On("FindMember", ctx, roomID, memberID).Return(&entity.RoomMember{UserID: memberID}, nil)
	chats.On("ListMessages", ctx, roomID, 50).Return(messages, nil)

	service := newChatServiceForTest(chats, &mockUserRepo{}, &recordingPublisher{})

	got, err := service.ListMessages(ctx, memberID, roomID, 50)

	require.NoError(t, err)
	assert.Equal(t, messages, got)
}
