package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/aretw0/tapestry/pkg/domain"
)

// Loader implements ports.StoryLoader over a story held in memory.
type Loader struct {
	story *domain.Story
}

// NewLoader creates a loader from raw JSON node definitions keyed by id.
// Tables and anchor ids come from opts.
func NewLoader(data map[string]string, opts ...Option) (*Loader, error) {
	s := &domain.Story{Nodes: make(map[string]domain.Node, len(data))}
	for id, raw := range data {
		var n domain.Node
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("failed to decode node %s: %w", id, err)
		}
		if n.ID == "" {
			n.ID = id
		}
		s.Nodes[id] = n
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ApplyDefaults()
	return &Loader{story: s}, nil
}

// NewFromNodes creates a loader from domain objects.
func NewFromNodes(nodes []domain.Node, opts ...Option) (*Loader, error) {
	s := &domain.Story{Nodes: make(map[string]domain.Node, len(nodes))}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
		s.Nodes[n.ID] = n
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ApplyDefaults()
	return &Loader{story: s}, nil
}

// NewFromStory wraps an existing story. Load returns copies of it.
func NewFromStory(s *domain.Story) *Loader {
	return &Loader{story: Clone(s)}
}

// Load returns a copy of the held story.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Clone(l.story), nil
}

// Option sets story-level fields on loaders built from nodes.
type Option func(*domain.Story)

// WithPersonaKeys sets the persona table.
func WithPersonaKeys(keys map[string]string) Option {
	return func(s *domain.Story) { s.PersonaKeys = maps.Clone(keys) }
}

// WithShadowKeys sets the shadow table.
func WithShadowKeys(keys map[string]string) Option {
	return func(s *domain.Story) { s.ShadowKeys = maps.Clone(keys) }
}

// WithAnchors overrides the title and terminal ids.
func WithAnchors(titleID, terminalID string) Option {
	return func(s *domain.Story) {
		s.TitleID = titleID
		s.TerminalID = terminalID
	}
}

// WithDynamicPrefix overrides the prefix of composed ids.
func WithDynamicPrefix(prefix string) Option {
	return func(s *domain.Story) { s.DynamicPrefix = prefix }
}

// Clone deep-copies a story so callers can mutate the result freely.
func Clone(s *domain.Story) *domain.Story {
	out := s.Clone()
	if out != nil {
		out.ApplyDefaults()
	}
	return out
}
