package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// DefaultChannelPrefix prefixes the per-session channel.
const DefaultChannelPrefix = "tapestry:events:"

// Message is what subscribers receive on a session channel.
type Message struct {
	Type      domain.EventType     `json:"type"`
	SessionID string               `json:"session_id"`
	Event     any                  `json:"event"`
	Diff      *domain.SnapshotDiff `json:"diff,omitempty"`
}

// Publisher implements ports.EventPublisher with Redis PUBLISH.
type Publisher struct {
	client backend.UniversalClient
	prefix string
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithChannelPrefix sets the channel prefix.
func WithChannelPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithPublisherLogger sets the logger used by hook delivery failures.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher on client.
func NewPublisher(client backend.UniversalClient, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client: client,
		prefix: DefaultChannelPrefix,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the channel of a session.
func (p *Publisher) Channel(sessionID string) string {
	return p.prefix + sessionID
}

// Publish encodes payload as JSON and publishes it on the session channel.
func (p *Publisher) Publish(ctx context.Context, sessionID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(sessionID), data).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Hooks publishes every lifecycle event. Node entries carry the snapshot
// diff so subscribers can patch their view.
func (p *Publisher) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			from := e.From
			p.deliver(ctx, Message{
				Type:      e.Type,
				SessionID: e.SessionID,
				Event:     e,
				Diff:      domain.Diff(e.SessionID, &from, e.To),
			})
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			p.deliver(ctx, Message{Type: e.Type, SessionID: e.SessionID, Event: e})
		},
		OnRestart: func(ctx context.Context, e *domain.RestartEvent) {
			p.deliver(ctx, Message{Type: e.Type, SessionID: e.SessionID, Event: e})
		},
		OnRevealComplete: func(ctx context.Context, e *domain.RevealEvent) {
			p.deliver(ctx, Message{Type: e.Type, SessionID: e.SessionID, Event: e})
		},
	}
}

func (p *Publisher) deliver(ctx context.Context, msg Message) {
	if err := p.Publish(ctx, msg.SessionID, msg); err != nil {
		p.logger.Warn("event not published", "type", msg.Type, "session_id", msg.SessionID, "err", err)
	}
}
