package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelQuestionEvents = "question_events"
)

// Event types
const (
	EventQuestionAnswered = "question_answered"
	EventQuestionFailed   = "question_failed"
)

// QuestionEvent is published when fulfillment finishes so the app layer
// (push notifications, admin dashboards) can react without polling.
type QuestionEvent struct {
	Type           string `json:"type"`
	UserID         int64  `json:"user_id"`
	QuestionID     int64  `json:"question_id"`
	QuestionUUID   string `json:"question_uuid"`
	Subject        string `json:"subject"`
	ProcessingTime int    `json:"processing_time,omitempty"` // milliseconds
	Error          string `json:"error,omitempty"`
}

// Publisher publishes question events to Redis.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishQuestionEvent publishes a fulfillment event.
func (p *Publisher) PublishQuestionEvent(ctx context.Context, event *QuestionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal question event: %w", err)
	}

	return p.client.Publish(ctx, ChannelQuestionEvents, data).Err()
}

// Subscriber consumes question events.
type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe blocks and invokes handler for each event until ctx is done.
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*QuestionEvent)) error {
	sub := s.client.Subscribe(ctx, ChannelQuestionEvents)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event QuestionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			handler(&event)
		}
	}
}
