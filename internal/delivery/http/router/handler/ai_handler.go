package handler

import (
	"log/slog"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AIHandler holds dependencies for AI proxy handlers.
type AIHandler struct {
	uc     usecase.AIUsecase
	logger *slog.Logger
}

// NewAIHandler is the constructor for AIHandler, injected by Fx.
func NewAIHandler(uc usecase.AIUsecase, logger *slog.Logger) *AIHandler {
	return &AIHandler{uc: uc, logger: logger}
}

type askAIRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type askAIResponse struct {
	Provider string `json:"provider"`
	Answer   string `json:"answer"`
}

// Ask forwards a prompt from an authenticated user. The conversation
// history is keyed by the user's ID.
func (h *AIHandler) Ask(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.ask(c, userID.String())
}

// AskWithToken forwards a prompt from an API-token caller. The gate has
// already burned quota and stored the token; it keys the history.
func (h *AIHandler) AskWithToken(c echo.Context) error {
	token, ok := c.Get(middleware.KeyAPIToken).(string)
	if !ok || token == "" {
		return errors.WithStack(errors.New("api token missing from context"))
	}

	return h.ask(c, token)
}

// Reset clears the authenticated caller's conversation history.
func (h *AIHandler) Reset(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	h.uc.Reset(c.Request().Context(), userID.String())

	return response.OK(c, nil, "Conversation reset")
}

func (h *AIHandler) ask(c echo.Context, callerKey string) error {
	var req askAIRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid prompt input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.Ask(c.Request().Context(), &usecase.AskAIInput{
		CallerKey: callerKey,
		Prompt:    req.Prompt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, askAIResponse{Provider: out.Provider, Answer: out.Answer})
}
