package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventChoice         EventType = "choice"
	EventRestart        EventType = "restart"
	EventRevealComplete EventType = "reveal_complete"
	EventSessionOpen    EventType = "session_open"
	EventSessionClose   EventType = "session_close"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// NodeEvent is emitted after every navigation, with the state before and after.
type NodeEvent struct {
	EventBase
	NodeID   string   `json:"node_id"`
	NodeType NodeType `json:"node_type"`
	Epoch    uint64   `json:"epoch"`
	From     Snapshot `json:"-"`
	To       Snapshot `json:"-"`
}

// ChoiceEvent is emitted when a choice is selected, before the navigation it triggers.
// Snapshot still shows the choice node with ChoiceSelected set.
type ChoiceEvent struct {
	EventBase
	NodeID     string   `json:"node_id"`
	Label      string   `json:"label"`
	Target     string   `json:"target"`
	PersonaKey string   `json:"persona_key,omitempty"`
	ShadowKey  string   `json:"shadow_key,omitempty"`
	Snapshot   Snapshot `json:"-"`
}

// RestartEvent is emitted when the terminal node sends the reader back to the title.
type RestartEvent struct {
	EventBase
	FromNodeID string `json:"from_node_id"`
	Epoch      uint64 `json:"epoch"`
}

// RevealEvent is emitted once per epoch when every visible line is shown.
type RevealEvent struct {
	EventBase
	NodeID string `json:"node_id"`
	Epoch  uint64 `json:"epoch"`
}

// SessionEvent is published when a session manager opens or closes a session.
type SessionEvent struct {
	EventBase
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run after a transition commits and may read the engine.
type LifecycleHooks struct {
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnChoice         func(context.Context, *ChoiceEvent)
	OnRestart        func(context.Context, *RestartEvent)
	OnRevealComplete func(context.Context, *RevealEvent)
}

// ComposeHooks fans every callback out to each set of hooks, in order.
func ComposeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *NodeEvent) {
			for _, h := range hooks {
				if h.OnNodeEnter != nil {
					h.OnNodeEnter(ctx, e)
				}
			}
		},
		OnChoice: func(ctx context.Context, e *ChoiceEvent) {
			for _, h := range hooks {
				if h.OnChoice != nil {
					h.OnChoice(ctx, e)
				}
			}
		},
		OnRestart: func(ctx context.Context, e *RestartEvent) {
			for _, h := range hooks {
				if h.OnRestart != nil {
					h.OnRestart(ctx, e)
				}
			}
		},
		OnRevealComplete: func(ctx context.Context, e *RevealEvent) {
			for _, h := range hooks {
				if h.OnRevealComplete != nil {
					h.OnRevealComplete(ctx, e)
				}
			}
		},
	}
}
