package tapestry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/internal/runtime"
	"github.com/aretw0/tapestry/pkg/adapters/file"
	loamAdapter "github.com/aretw0/tapestry/pkg/adapters/loam"
	"github.com/aretw0/tapestry/pkg/adapters/memory"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/ports"
	"github.com/aretw0/tapestry/pkg/reveal"
)

// Engine is the high-level entry point for the Tapestry library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.StoryLoader
	hooks   []domain.LifecycleHooks
	logger  *slog.Logger
	strict  bool
	session string
	timing  reveal.Timing
	Name    string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks. It may be given more
// than once; every set of hooks is called, in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithLoader injects a custom StoryLoader, bypassing path detection.
func WithLoader(l ports.StoryLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStory uses an in-memory story.
func WithStory(s *domain.Story) Option {
	return func(e *Engine) {
		e.loader = memory.NewFromStory(s)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrict selects whether caller-contract violations are returned
// (the default) or logged and ignored.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithSessionID tags logs and lifecycle events.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		e.session = id
	}
}

// WithTiming sets the body text timing used by Plan.
func WithTiming(t reveal.Timing) Option {
	return func(e *Engine) {
		e.timing = t
	}
}

// New initializes a new Tapestry Engine.
// By default it reads the story at path: a directory is opened with Loam,
// a .yaml, .yml or .json file with the file loader. If WithLoader or
// WithStory is provided, path can be empty.
func New(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: logging.NewNop(),
		strict: true,
		timing: reveal.DefaultTiming,
	}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if err := eng.timing.Validate(); err != nil {
		return nil, err
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		l, err := OpenLoader(path)
		if err != nil {
			return nil, err
		}
		eng.loader = l
		eng.Name = storyName(path)
	}

	story, err := eng.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}

	rt, err := runtime.NewEngine(story,
		runtime.WithLogger(eng.logger),
		runtime.WithStrict(eng.strict),
		runtime.WithSessionID(eng.session),
		runtime.WithLifecycleHooks(domain.ComposeHooks(eng.hooks...)),
	)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	return eng, nil
}

// OpenLoader picks the loader for path: Loam for directories, the file
// loader for story documents.
func OpenLoader(path string) (ports.StoryLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid story path: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	if !file.IsStoryFile(path) {
		return nil, fmt.Errorf("unsupported story file '%s': expected a directory, .yaml, .yml or .json", path)
	}
	return file.New(path), nil
}

func storyName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	base := filepath.Base(abs)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Initialize restarts the session at the title with epoch zero.
func (e *Engine) Initialize(ctx context.Context) {
	e.runtime.Initialize(ctx)
}

// Advance follows the current node's next edge.
func (e *Engine) Advance(ctx context.Context) error {
	return e.runtime.Advance(ctx)
}

// SelectChoice picks one of the current node's choices.
func (e *Engine) SelectChoice(ctx context.Context, c domain.Choice) error {
	return e.runtime.SelectChoice(ctx, c)
}

// SelectChoiceAt picks the i-th choice in display order.
func (e *Engine) SelectChoiceAt(ctx context.Context, i int) error {
	return e.runtime.SelectChoiceAt(ctx, i)
}

// NavigateTo jumps to id.
func (e *Engine) NavigateTo(ctx context.Context, id string) error {
	return e.runtime.NavigateTo(ctx, id)
}

// ToggleChoices shows or hides the choices of a choice node.
func (e *Engine) ToggleChoices() bool {
	return e.runtime.ToggleChoices()
}

// RevealComplete notifies that the screen shown at epoch is fully revealed.
func (e *Engine) RevealComplete(ctx context.Context, epoch uint64) bool {
	return e.runtime.RevealComplete(ctx, epoch)
}

// OnRevealComplete registers a reveal-complete callback.
func (e *Engine) OnRevealComplete(fn func(context.Context, *domain.RevealEvent)) (unregister func()) {
	return e.runtime.OnRevealComplete(fn)
}

// Snapshot returns the current screen and flags.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.runtime.Snapshot()
}

// Story returns the loaded Story Graph. Callers must not mutate it.
func (e *Engine) Story() *domain.Story {
	return e.runtime.Story()
}

// SessionID returns the id given with WithSessionID.
func (e *Engine) SessionID() string {
	return e.runtime.SessionID()
}

// Affordance returns the bottom control for the current screen.
func (e *Engine) Affordance() domain.Affordance {
	return domain.AffordanceFor(e.Snapshot(), e.Story().LetterID)
}

// Progress returns the progress stage of the current screen.
func (e *Engine) Progress() int {
	return domain.ProgressStage(e.Snapshot().CurrentID)
}

// Plan returns the reveal plan of a snapshot's screen.
func (e *Engine) Plan(s domain.Snapshot) reveal.Plan {
	if s.IsTitle() {
		return reveal.TitleSchedule(s.Node.Lines, e.timing)
	}
	return reveal.Schedule(s.Node.Lines, e.timing)
}

// Timing returns the body text timing.
func (e *Engine) Timing() reveal.Timing {
	return e.timing
}
