package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inkwell/config"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/service"
	"inkwell/internal/infra/ai"
	"inkwell/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIServiceForTest(provider *stubAIProvider, staticContext string) usecase.AIUsecase {
	return NewAIService(AIServiceParams{
		Provider: provider,
		History:  ai.NewHistoryStore(4),
		Config:   &config.Config{AI: &config.AIConfig{StaticContext: staticContext}},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestAIService_Ask_ThreadsHistory(t *testing.T) {
	ctx := context.Background()
	provider := &stubAIProvider{answer: "reply"}
	aiService := newAIServiceForTest(provider, "")

	_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "first question"})
	require.NoError(t, err)

	_, err = aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "second question"})
	require.NoError(t, err)

	require.Len(t, provider.asked, 2)
	second := provider.asked[1]
	require.Len(t, second, 3)
	assert.Equal(t, "first question", second[0].Content)
	assert.Equal(t, service.AIRoleAssistant, second[1].Role)
	assert.Equal(t, "second question", second[2].Content)
}

func TestAIService_Ask_HistoryIsPerCaller(t *testing.T) {
	ctx := context.Background()
	provider := &stubAIProvider{answer: "reply"}
	aiService := newAIServiceForTest(provider, "")

	_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "mine"})
	require.NoError(t, err)

	_, err = aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-2", Prompt: "yours"})
	require.NoError(t, err)

	require.Len(t, provider.asked, 2)
	assert.Len(t, provider.asked[1], 1)
}

func TestAIService_Ask_PrependsStaticContext(t *testing.T) {
	ctx := context.Background()
	provider := &stubAIProvider{answer: "reply"}
	aiService := newAIServiceForTest(provider, "You answer questions about this portfolio site.")

	_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "hi"})
	require.NoError(t, err)

	require.Len(t, provider.asked, 1)
	first := provider.asked[0]
	require.Len(t, first, 2)
	assert.Equal(t, service.AIRoleSystem, first[0].Role)
	assert.Equal(t, service.AIRoleUser, first[1].Role)
}

func TestAIService_Ask_FailureLeavesHistoryClean(t *testing.T) {
	ctx := context.Background()
	provider := &stubAIProvider{err: errors.New("boom")}
	aiService := newAIServiceForTest(provider, "")

	_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "doomed"})
	require.Error(t, err)

	provider.err = nil
	provider.answer = "fine now"
	_, err = aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "retry"})
	require.NoError(t, err)

	// The failed turn must not have been recorded.
	assert.Len(t, provider.asked[1], 1)
}

func TestAIService_Ask_MapsProviderErrors(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		provider error
		want     error
	}{
		{name: "unauthorized", provider: service.ErrAIUnauthorized, want: domainerrors.ErrAIProviderRejected},
		{name: "rate limited", provider: service.ErrAIRateLimited, want: domainerrors.ErrAIRateLimited},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			aiService := newAIServiceForTest(&stubAIProvider{err: tc.provider}, "")

			_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "hi"})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want))
		})
	}
}

func TestAIService_Ask_EmptyPrompt(t *testing.T) {
	aiService := newAIServiceForTest(&stubAIProvider{}, "")

	_, err := aiService.Ask(context.Background(), &usecase.AskAIInput{CallerKey: "user-1", Prompt: "   "})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAIService_Reset_ClearsHistory(t *testing.T) {
	ctx := context.Background()
	provider := &stubAIProvider{answer: "reply"}
	aiService := newAIServiceForTest(provider, "")

	_, err := aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "remember me"})
	require.NoError(t, err)

	aiService.Reset(ctx, "user-1")

	_, err = aiService.Ask(ctx, &usecase.AskAIInput{CallerKey: "user-1", Prompt: "fresh start"})
	require.NoError(t, err)
	assert.Len(t, provider.asked[1], 1)
}
