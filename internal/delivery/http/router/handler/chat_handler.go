package handler

import (
	"log/slog"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler holds dependencies for chat handlers.
type ChatHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, logger: logger}
}

type createRoomRequest struct {
	Name      string   `json:"name" validate:"required"`
	MemberIDs []string `json:"memberIds"`
}

type openDirectRoomRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type roomMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateRoom creates a group room owned by the caller.
func (h *ChatHandler) CreateRoom(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid room input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	memberIDs := make([]uuid.UUID, 0, len(req.MemberIDs))
	for _, raw := range req.MemberIDs {
		memberID, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "Invalid member id")
		}
		memberIDs = append(memberIDs, memberID)
	}

	room, err := h.uc.CreateRoom(c.Request().Context(), userID, &usecase.CreateRoomInput{
		Name:      req.Name,
		MemberIDs: memberIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, room, "Room created")
}

// OpenDirectRoom opens (or returns) the DM room with another user.
func (h *ChatHandler) OpenDirectRoom(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req openDirectRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid direct room input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.BindingError(c, "Invalid userId field")
	}

	room, err := h.uc.OpenDirectRoom(c.Request().Context(), userID, otherID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, room)
}

// ListRooms lists the rooms the caller belongs to.
func (h *ChatHandler) ListRooms(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	rooms, err := h.uc.ListRooms(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, rooms)
}

// AddMember adds a user to a room.
func (h *ChatHandler) AddMember(c echo.Context) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	roomID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req roomMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid member input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		return response.BindingError(c, "Invalid userId field")
	}

	if err := h.uc.AddMember(c.Request().Context(), actorID, roomID, memberID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Member added")
}

// RemoveMember removes a user from a room.
func (h *ChatHandler) RemoveMember(c echo.Context) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	roomID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	memberID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveMember(c.Request().Context(), actorID, roomID, memberID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Member removed")
}

// ListMembers lists a room's members.
func (h *ChatHandler) ListMembers(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	roomID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	members, err := h.uc.ListMembers(c.Request().Context(), userID, roomID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, members)
}

// SendMessage posts a message to a room.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	roomID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	message, err := h.uc.SendMessage(c.Request().Context(), userID, roomID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, message, "Message sent")
}

// ListMessages returns the newest messages in a room.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	roomID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.uc.ListMessages(c.Request().Context(), userID, roomID, queryInt(c, "limit", 50))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, messages)
}
