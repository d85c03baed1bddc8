package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/internal/validator"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/resolver"
)

// Engine is the narrative state machine of one reading session.
// Every signal is processed under a single lock, in arrival order; hooks
// run after the lock is released.
type Engine struct {
	mu sync.Mutex

	story    *domain.Story
	resolver *resolver.Resolver
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	strict   bool

	sessionID string
	st        sessionState

	revealHandlers map[int]func(context.Context, *domain.RevealEvent)
	nextHandlerID  int
}

type sessionState struct {
	currentID      string
	personaKey     string
	shadowKey      string
	epoch          uint64
	choiceSelected string
	flags          domain.Flags
	revealed       bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStrict controls how caller-contract violations surface. Strict
// engines return them; lenient engines log a warning and ignore the signal.
func WithStrict(strict bool) EngineOption {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSessionID tags logs and events with a session id.
func WithSessionID(id string) EngineOption {
	return func(e *Engine) {
		e.sessionID = id
	}
}

// NewEngine validates the story and returns an engine positioned on the title.
// The engine runs on its own copy of story; later changes to story are not seen.
// Validation failures are configuration errors and are always returned.
func NewEngine(story *domain.Story, opts ...EngineOption) (*Engine, error) {
	if story == nil {
		return nil, errors.New("story is required")
	}
	story = story.Clone()
	story.ApplyDefaults()
	if err := validator.ValidateStory(story); err != nil {
		return nil, fmt.Errorf("story validation failed: %w", err)
	}

	e := &Engine{
		story:          story,
		resolver:       resolver.FromStory(story),
		logger:         logging.NewNop(),
		strict:         true,
		revealHandlers: make(map[int]func(context.Context, *domain.RevealEvent)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sessionID != "" {
		e.logger = e.logger.With("session_id", e.sessionID)
	}

	e.mu.Lock()
	e.reset(0)
	e.mu.Unlock()

	return e, nil
}

// Story returns the graph the engine walks. Callers must not mutate it.
func (e *Engine) Story() *domain.Story {
	return e.story
}

// SessionID returns the id given with WithSessionID.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Strict reports whether contract violations are returned.
func (e *Engine) Strict() bool {
	return e.strict
}

// Snapshot returns the current read-only view.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Initialize performs a hard restart: title, no keys, epoch zero.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	from := e.snapshot()
	e.reset(0)
	to := e.snapshot()
	e.mu.Unlock()

	e.logger.Debug("session initialized", "node_id", to.CurrentID)
	e.emitNodeEnter(ctx, from, to)
}

func (e *Engine) snapshot() domain.Snapshot {
	node, _ := e.story.Node(e.st.currentID)
	return domain.Snapshot{
		CurrentID:      e.st.currentID,
		Node:           node,
		Epoch:          e.st.epoch,
		PersonaKey:     e.st.personaKey,
		ShadowKey:      e.st.shadowKey,
		ChoiceSelected: e.st.choiceSelected,
		Flags:          e.st.flags,
		Revealed:       e.st.revealed,
	}
}

// reset moves to the title with cleared keys. Both Initialize and the
// automatic restart go through here.
func (e *Engine) reset(epoch uint64) {
	title, _ := e.story.Node(e.story.TitleID)
	e.st = sessionState{
		currentID: e.story.TitleID,
		epoch:     epoch,
		flags:     DeriveFlags(title),
	}
}

// violation reports a caller-contract violation according to the mode.
func (e *Engine) violation(op, nodeID string, err error) error {
	ce := &domain.ContractError{Op: op, NodeID: nodeID, Err: err}
	if e.strict {
		return ce
	}
	e.logger.Warn("contract violation ignored", "op", op, "node_id", nodeID, "err", err)
	return nil
}
