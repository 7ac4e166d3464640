package service

import (
	"context"
)

// ChatMessageEvent is published whenever a message lands in a room, so
// downstream consumers (push notifications, unread counters) can react
// without blocking the request path.
type ChatMessageEvent struct {
	RequestID string   `json:"request_id,omitempty"` // For distributed tracing
	MessageID string   `json:"message_id"`
	RoomID    string   `json:"room_id"`
	SenderID  string   `json:"sender_id"`
	Content   string   `json:"content"`
	MemberIDs []string `json:"member_ids"` // Room members excluding the sender
}

// BlogPublishedEvent is published when a blog post transitions to published.
type BlogPublishedEvent struct {
	RequestID string `json:"request_id,omitempty"`
	BlogID    string `json:"blog_id"`
	AuthorID  string `json:"author_id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishChatMessage publishes a chat message event for async processing
	PublishChatMessage(ctx context.Context, event *ChatMessageEvent) error

	// PublishBlogPublished publishes a blog published event for async processing
	PublishBlogPublished(ctx context.Context, event *BlogPublishedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
