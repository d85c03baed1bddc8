package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/tapestry/pkg/domain"
)

// Loader adapts the Loam library to the Tapestry StoryLoader interface.
// Every document of the repository is a node, except the manifest.
// A markdown node's body holds its lines, one per line of text.
type Loader struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps scalar types consistent across markdown, JSON and YAML
	// documents; read-only keeps Loam from writing to the story directory.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[DocumentMetadata](repo)), nil
}

// Load lists the repository and assembles the story.
func (l *Loader) Load(ctx context.Context) (*domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	story := &domain.Story{Nodes: make(map[string]domain.Node, len(docs))}
	seen := make(map[string]string, len(docs))
	manifest := ""

	for _, doc := range docs {
		if doc.Data.IsManifest() {
			if manifest != "" {
				return nil, fmt.Errorf("multiple manifests: '%s' and '%s'", manifest, doc.ID)
			}
			manifest = doc.ID
			doc.Data.StoryMetadata.Apply(story)
			continue
		}

		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		node, err := doc.Data.NodeMetadata.ToDomain(id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.ID, err)
		}
		node.ID = id
		if len(node.Lines) == 0 {
			node.Lines = bodyLines(doc.Content)
		}
		story.Nodes[id] = node
	}

	story.ApplyDefaults()
	return story, nil
}

// bodyLines splits a document body into lines. Blank lines around the
// body are dropped; blank lines inside it are kept and never shown.
func bodyLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
