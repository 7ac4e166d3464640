package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"inkwell/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Check if topic exists using TopicAdminClient
	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	publisher := client.Publisher(topicID)

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishChatMessage publishes a chat message event to Google Pub/Sub
func (p *googlePubSubPublisher) PublishChatMessage(ctx context.Context, event *service.ChatMessageEvent) error {
	attributes := map[string]string{
		"event_type": "chat.message",
		"message_id": event.MessageID,
		"room_id":    event.RoomID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	p.logger.Info("[GooglePubSub] Publishing chat message event",
		slog.String("message_id", event.MessageID),
		slog.Int("member_count", len(event.MemberIDs)),
	)

	return p.publish(ctx, event, attributes)
}

// PublishBlogPublished publishes a blog published event to Google Pub/Sub
func (p *googlePubSubPublisher) PublishBlogPublished(ctx context.Context, event *service.BlogPublishedEvent) error {
	attributes := map[string]string{
		"event_type": "blog.published",
		"blog_id":    event.BlogID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	p.logger.Info("[GooglePubSub] Publishing blog published event",
		slog.String("blog_id", event.BlogID),
		slog.String("slug", event.Slug),
	)

	return p.publish(ctx, event, attributes)
}

// publish serializes the event and waits for the server acknowledgement.
func (p *googlePubSubPublisher) publish(ctx context.Context, event any, attributes map[string]string) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	}

	result := p.publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[GooglePubSub] Event published successfully",
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
