package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tapestry"
	"github.com/aretw0/tapestry/internal/presentation/graph"
	"github.com/aretw0/tapestry/internal/validator"
	"github.com/aretw0/tapestry/pkg/adapters/file"
	"github.com/aretw0/tapestry/pkg/domain"
)

// LoadStory reads the story at path without starting an engine.
func LoadStory(ctx context.Context, path string) (*domain.Story, error) {
	loader, err := tapestry.OpenLoader(path)
	if err != nil {
		return nil, err
	}
	story, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	return story, nil
}

// Validate checks the story at path and reports nodes the title cannot
// reach as warnings. Only validation failures are errors.
func Validate(ctx context.Context, path string, w io.Writer) error {
	story, err := LoadStory(ctx, path)
	if err != nil {
		return err
	}
	if err := validator.ValidateStory(story); err != nil {
		return err
	}
	for _, id := range validator.Unreachable(story) {
		fmt.Fprintf(w, "warning: node '%s' is unreachable from '%s'\n", id, story.TitleID)
	}
	fmt.Fprintf(w, "Story is valid: %d nodes.\n", len(story.Nodes))
	return nil
}

// Graph writes the Mermaid diagram of the story at path.
func Graph(ctx context.Context, path string, w io.Writer) error {
	story, err := LoadStory(ctx, path)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(story, nil))
	return err
}

// Export converts the story at path to a YAML or JSON document.
func Export(ctx context.Context, path string, format file.Format, w io.Writer) error {
	story, err := LoadStory(ctx, path)
	if err != nil {
		return err
	}
	if err := validator.ValidateStory(story); err != nil {
		return err
	}
	return file.Encode(w, story, format)
}
