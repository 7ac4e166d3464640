package impl

import (
	"context"
	"log/slog"
	"strings"

	"inkwell/config"
	deliverycontext "inkwell/internal/delivery/context"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// aiService implements the AIUsecase interface.
type aiService struct {
	provider      service.AIProvider
	history       service.AIHistory
	staticContext string
	logger        *slog.Logger
}

// AIServiceParams holds dependencies for AIService, injected by Fx.
type AIServiceParams struct {
	fx.In

	Provider service.AIProvider
	History  service.AIHistory
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAIService is the constructor for aiService.
func NewAIService(params AIServiceParams) usecase.AIUsecase {
	staticContext := ""
	if params.Config != nil && params.Config.AI != nil {
		staticContext = params.Config.AI.StaticContext
	}

	return &aiService{
		provider:      params.Provider,
		history:       params.History,
		staticContext: staticContext,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *aiService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Ask sends the prompt with the caller's recent history and records both the
// prompt and the reply. History is only updated after a successful reply, so
// a failed upstream call never pollutes the conversation.
func (srv *aiService) Ask(ctx context.Context, input *usecase.AskAIInput) (*usecase.AskAIOutput, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "prompt cannot be empty")
	}

	messages := make([]service.AIMessage, 0, len(srv.history.Get(input.CallerKey))+2)
	if srv.staticContext != "" {
		messages = append(messages, service.AIMessage{Role: service.AIRoleSystem, Content: srv.staticContext})
	}
	messages = append(messages, srv.history.Get(input.CallerKey)...)
	userTurn := service.AIMessage{Role: service.AIRoleUser, Content: prompt}
	messages = append(messages, userTurn)

	answer, err := srv.provider.Ask(ctx, messages)
	if err != nil {
		srv.log(ctx).Warn("AI provider call failed", slog.String("provider", srv.provider.Name()), slog.Any("error", err))

		switch {
		case errors.Is(err, service.ErrAIUnauthorized):
			return nil, errors.Wrap(domainerrors.ErrAIProviderRejected, "provider rejected credentials")
		case errors.Is(err, service.ErrAIRateLimited):
			return nil, errors.Wrap(domainerrors.ErrAIRateLimited, "provider throttled the request")
		default:
			return nil, errors.Wrap(err, "failed to ask ai provider")
		}
	}

	srv.history.Append(input.CallerKey, userTurn, service.AIMessage{Role: service.AIRoleAssistant, Content: answer})

	return &usecase.AskAIOutput{
		Provider: srv.provider.Name(),
		Answer:   answer,
	}, nil
}

// Reset clears the caller's conversation history.
func (srv *aiService) Reset(_ context.Context, callerKey string) {
	srv.history.Clear(callerKey)
}
