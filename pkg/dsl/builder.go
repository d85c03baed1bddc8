package dsl

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/tapestry/pkg/adapters/memory"
	"github.com/aretw0/tapestry/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
	opts  []memory.Option
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Anchors overrides the title and terminal ids.
func (b *Builder) Anchors(titleID, terminalID string) *Builder {
	b.opts = append(b.opts, memory.WithAnchors(titleID, terminalID))
	return b
}

// DynamicPrefix overrides the prefix of composed ids.
func (b *Builder) DynamicPrefix(prefix string) *Builder {
	b.opts = append(b.opts, memory.WithDynamicPrefix(prefix))
	return b
}

// Story assembles the graph without validating it.
func (b *Builder) Story() (*domain.Story, error) {
	loader, err := b.Build()
	if err != nil {
		return nil, err
	}
	return loader.Load(context.Background())
}

// Build compiles the graph into a MemoryLoader.
func (b *Builder) Build() (*memory.Loader, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	persona := make(map[string]string)
	shadow := make(map[string]string)

	for _, id := range b.order {
		nb := b.nodes[id]
		if nb.err != nil {
			return nil, fmt.Errorf("node %s: %w", id, nb.err)
		}
		n := nb.node
		n.Lines = slices.Clone(n.Lines)
		n.Choices = slices.Clone(n.Choices)
		nodes = append(nodes, n)
		if nb.persona != "" {
			persona[id] = nb.persona
		}
		if nb.shadow != "" {
			shadow[id] = nb.shadow
		}
	}

	opts := slices.Clone(b.opts)
	if len(persona) > 0 {
		opts = append(opts, memory.WithPersonaKeys(persona))
	}
	if len(shadow) > 0 {
		opts = append(opts, memory.WithShadowKeys(shadow))
	}
	loader, err := memory.NewFromNodes(nodes, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
