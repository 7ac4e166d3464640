package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultGeminiModel = "gemini-2.0-flash"

// geminiProvider implements AIProvider against the Gemini generateContent API.
type geminiProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
	baseURL string
}

// NewGeminiProvider builds a Gemini-backed AIProvider.
func NewGeminiProvider(apiKey, model string, client *http.Client, logger *slog.Logger) service.AIProvider {
	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiProvider{
		apiKey:  apiKey,
		model:   model,
		client:  client,
		logger:  logger,
		baseURL: "https://generativelanguage.googleapis.com",
	}
}

// Name identifies the provider.
func (p *geminiProvider) Name() string {
	return "gemini"
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Ask sends the conversation and returns the model's reply. System turns are
// collapsed into the system instruction; assistant turns map to Gemini's
// "model" role.
func (p *geminiProvider) Ask(ctx context.Context, messages []service.AIMessage) (string, error) {
	req := geminiRequest{}
	for _, msg := range messages {
		switch msg.Role {
		case service.AIRoleSystem:
			req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: msg.Content}}}
		case service.AIRoleAssistant:
			req.Contents = append(req.Contents, geminiContent{
				Role:  "model",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		default:
			req.Contents = append(req.Contents, geminiContent{
				Role:  "user",
				Parts: []geminiPart{{Text: msg.Content}},
			})
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.WithStack(err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "gemini request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read gemini response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", service.ErrAIUnauthorized
	case http.StatusTooManyRequests:
		return "", service.ErrAIRateLimited
	default:
		p.logger.Warn("gemini returned unexpected status",
			slog.Int("status", resp.StatusCode),
		)

		return "", errors.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decode gemini response")
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
