package ports

import (
	"context"

	"github.com/aretw0/tapestry/pkg/domain"
)

// StoryLoader defines how the engine obtains its Story Graph.
// The returned story is owned by the caller and is not validated;
// the engine validates it once at construction.
type StoryLoader interface {
	Load(ctx context.Context) (*domain.Story, error)
}

// StoryLoaderFunc adapts a function to StoryLoader.
type StoryLoaderFunc func(ctx context.Context) (*domain.Story, error)

// Load calls f(ctx).
func (f StoryLoaderFunc) Load(ctx context.Context) (*domain.Story, error) {
	return f(ctx)
}
