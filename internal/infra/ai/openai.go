package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultOpenAIModel = "gpt-4o-mini"

// openaiProvider implements AIProvider against the OpenAI chat completions API.
type openaiProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
	baseURL string
}

// NewOpenAIProvider builds an OpenAI-backed AIProvider.
func NewOpenAIProvider(apiKey, model string, client *http.Client, logger *slog.Logger) service.AIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}

	return &openaiProvider{
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  logger,
		baseURL: "https://api.openai.com",
	}
}

// Name identifies the provider.
func (p *openaiProvider) Name() string {
	return "openai"
}

type openaiRequest struct {
	Model    string              `json:"model"`
	Messages []service.AIMessage `json:"messages"`
}

type openaiResponse struct {
	Choices []struct {
		Message service.AIMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends the conversation and returns the model's reply.
func (p *openaiProvider) Ask(ctx context.Context, messages []service.AIMessage) (string, error) {
	body, err := json.Marshal(openaiRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "openai request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read openai response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", service.ErrAIUnauthorized
	case http.StatusTooManyRequests:
		return "", service.ErrAIRateLimited
	default:
		p.logger.Warn("openai returned unexpected status",
			slog.Int("status", resp.StatusCode),
		)

		return "", errors.Errorf("openai returned status %d", resp.StatusCode)
	}

	var parsed openaiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decode openai response")
	}

	if len(parsed.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
