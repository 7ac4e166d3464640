package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/domain/service"

	"github.com/pkg/errors"
)

// localHTTPPublisher implements EventPublisher by sending HTTP POST requests
// to a local endpoint, simulating Pub/Sub push behavior for development
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PubSubPushMessage represents the structure of a Pub/Sub push message
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a new local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// PublishChatMessage publishes a chat message event to the local endpoint
func (p *localHTTPPublisher) PublishChatMessage(ctx context.Context, event *service.ChatMessageEvent) error {
	attributes := map[string]string{
		"event_type": "chat.message",
		"message_id": event.MessageID,
		"room_id":    event.RoomID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	p.logger.Info("[LocalPubSub] Publishing chat message event",
		slog.String("endpoint", p.endpoint),
		slog.String("message_id", event.MessageID),
		slog.Int("member_count", len(event.MemberIDs)),
	)

	return p.publish(ctx, event, event.MessageID, event.RequestID, attributes)
}

// PublishBlogPublished publishes a blog published event to the local endpoint
func (p *localHTTPPublisher) PublishBlogPublished(ctx context.Context, event *service.BlogPublishedEvent) error {
	attributes := map[string]string{
		"event_type": "blog.published",
		"blog_id":    event.BlogID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	p.logger.Info("[LocalPubSub] Publishing blog published event",
		slog.String("endpoint", p.endpoint),
		slog.String("blog_id", event.BlogID),
	)

	return p.publish(ctx, event, event.BlogID, event.RequestID, attributes)
}

// publish wraps the event in the Pub/Sub push envelope and POSTs it.
func (p *localHTTPPublisher) publish(ctx context.Context, event any, messageID, requestID string, attributes map[string]string) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	pushMsg := PubSubPushMessage{
		Subscription: "projects/local/subscriptions/events-sub",
	}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	pushMsg.Message.MessageID = messageID
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = attributes

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add X-Request-Id header for tracing
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("subscriber returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Info("[LocalPubSub] Event published successfully",
		slog.String("message_id", messageID),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (p *localHTTPPublisher) Close() error {
	return nil
}
