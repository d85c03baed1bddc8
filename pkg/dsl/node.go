package dsl

import (
	"fmt"

	"github.com/aretw0/tapestry/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
	persona string
	shadow  string
	err     error
}

func (n *NodeBuilder) typed(t domain.NodeType, lines []string) *NodeBuilder {
	if n.node.Type != "" && n.node.Type != t {
		n.err = fmt.Errorf("node type already set to %s", n.node.Type)
		return n
	}
	n.node.Type = t
	n.node.Lines = append(n.node.Lines, lines...)
	return n
}

// Title marks the node as the title screen. The first non-empty line is the title.
func (n *NodeBuilder) Title(lines ...string) *NodeBuilder {
	return n.typed(domain.NodeTypeTitle, lines)
}

// Narration marks the node as plain narration.
func (n *NodeBuilder) Narration(lines ...string) *NodeBuilder {
	return n.typed(domain.NodeTypeNarration, lines)
}

// Reveal marks the node as a reveal screen.
func (n *NodeBuilder) Reveal(lines ...string) *NodeBuilder {
	return n.typed(domain.NodeTypeReveal, lines)
}

// Choice marks the node as a choice screen. Add its options with Option.
func (n *NodeBuilder) Choice(lines ...string) *NodeBuilder {
	return n.typed(domain.NodeTypeChoice, lines)
}

// End marks the node as an end screen.
func (n *NodeBuilder) End(lines ...string) *NodeBuilder {
	return n.typed(domain.NodeTypeEnd, lines)
}

// Lines appends lines to the node.
func (n *NodeBuilder) Lines(lines ...string) *NodeBuilder {
	n.node.Lines = append(n.node.Lines, lines...)
	return n
}

// Go sets the concrete next edge.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.node.Next = domain.To(target)
	return n
}

// GoDynamic sets the dynamic next edge, resolved from the collected keys.
func (n *NodeBuilder) GoDynamic() *NodeBuilder {
	n.node.Next = domain.Dynamic()
	return n
}

// Option appends a choice leading to target.
func (n *NodeBuilder) Option(label, target string) *NodeBuilder {
	n.node.Choices = append(n.node.Choices, domain.Choice{Label: label, Next: target})
	return n
}

// Persona records the persona key collected when a choice leads here.
func (n *NodeBuilder) Persona(key string) *NodeBuilder {
	n.persona = key
	return n
}

// Shadow records the shadow key collected when a choice leads here.
func (n *NodeBuilder) Shadow(key string) *NodeBuilder {
	n.shadow = key
	return n
}

// Add starts another node on the same builder.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}
