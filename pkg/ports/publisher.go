package ports

import "context"

// EventPublisher delivers session activity to subscribers outside the process.
// Payloads are lifecycle events or snapshot diffs and must be JSON-encodable.
type EventPublisher interface {
	Publish(ctx context.Context, sessionID string, payload any) error
}
