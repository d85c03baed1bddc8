package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/resolver"
)

// ErrInvalidStory is wrapped by every AggregateError.
var ErrInvalidStory = errors.New("invalid story")

// ValidationError is a single problem found in the Story Graph.
type ValidationError struct {
	NodeID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.NodeID == "" {
		return e.Reason
	}
	return fmt.Sprintf("node '%s': %s", e.NodeID, e.Reason)
}

// AggregateError collects every problem found in one pass.
type AggregateError struct {
	Errors []*ValidationError
}

func (e *AggregateError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = err.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Errors), strings.Join(lines, "\n- "))
}

func (e *AggregateError) Unwrap() error {
	return ErrInvalidStory
}

type checker struct {
	story *domain.Story
	errs  []*ValidationError
}

func (c *checker) fail(nodeID, format string, args ...any) {
	c.errs = append(c.errs, &ValidationError{NodeID: nodeID, Reason: fmt.Sprintf(format, args...)})
}

// ValidateStory checks the graph once, before any traversal.
// Missing targets, malformed nodes, a degenerate restart and dynamic
// edges that cannot resolve are all reported together.
func ValidateStory(s *domain.Story) error {
	if s == nil {
		return &AggregateError{Errors: []*ValidationError{{Reason: "story is nil"}}}
	}
	c := &checker{story: s}

	c.checkAnchors()
	hasDynamic := false
	for _, n := range s.SortedNodes() {
		c.checkNode(n)
		if n.Next.IsDynamic() {
			hasDynamic = true
		}
	}
	c.checkTables()
	if hasDynamic {
		c.checkCandidates()
	}

	if len(c.errs) > 0 {
		return &AggregateError{Errors: c.errs}
	}
	return nil
}

func (c *checker) checkAnchors() {
	s := c.story
	if s.TitleID == s.TerminalID {
		c.fail(s.TitleID, "title is configured as its own terminal node")
	}
	if title, ok := s.Node(s.TitleID); !ok {
		c.fail(s.TitleID, "title node not found")
	} else if title.Type != domain.NodeTypeTitle {
		c.fail(s.TitleID, "title node has type '%s'", title.Type)
	}
	if end, ok := s.Node(s.TerminalID); !ok {
		c.fail(s.TerminalID, "terminal node not found")
	} else if end.Type != domain.NodeTypeEnd {
		c.fail(s.TerminalID, "terminal node has type '%s'", end.Type)
	}
}

func (c *checker) checkNode(n domain.Node) {
	if !n.Type.Valid() {
		c.fail(n.ID, "unknown type '%s'", n.Type)
		return
	}

	switch n.Type {
	case domain.NodeTypeChoice:
		if !n.Next.IsZero() {
			c.fail(n.ID, "choice node must not have next")
		}
		if len(n.Choices) == 0 {
			c.fail(n.ID, "choice node has no choices")
		}
		for i, ch := range n.Choices {
			if ch.Label == "" {
				c.fail(n.ID, "choice %d has an empty label", i)
			}
			switch {
			case ch.Next == "":
				c.fail(n.ID, "choice %d has no target", i)
			case ch.Next == domain.DynamicSentinel:
				c.fail(n.ID, "choice %d targets the dynamic sentinel", i)
			default:
				c.checkTarget(n.ID, ch.Next)
			}
		}
		return
	case domain.NodeTypeEnd:
		// next is optional
	default:
		if n.Next.IsZero() {
			c.fail(n.ID, "%s node has no next", n.Type)
		}
	}

	if len(n.Choices) > 0 {
		c.fail(n.ID, "%s node must not have choices", n.Type)
	}
	if n.Next.Kind == domain.EdgeConcrete {
		c.checkTarget(n.ID, n.Next.Target)
	}
}

func (c *checker) checkTarget(from, target string) {
	if _, ok := c.story.Node(target); !ok {
		c.fail(from, "missing target '%s'", target)
	}
}

func (c *checker) checkTables() {
	for _, table := range []struct {
		name string
		keys map[string]string
	}{
		{"persona", c.story.PersonaKeys},
		{"shadow", c.story.ShadowKeys},
	} {
		for target, key := range table.keys {
			if key == "" {
				c.fail("", "%s table maps '%s' to an empty key", table.name, target)
			}
		}
	}
}

func (c *checker) checkCandidates() {
	r := resolver.FromStory(c.story)
	if len(r.PersonaValues()) == 0 || len(r.ShadowValues()) == 0 {
		c.fail("", "dynamic edges need non-empty persona and shadow tables")
		return
	}
	for _, id := range r.Candidates(c.story.DynamicPrefix) {
		if _, ok := c.story.Node(id); !ok {
			c.fail("", "dynamic target '%s' not found", id)
		}
	}
}

// Unreachable lists nodes no path from the title reaches, in id order.
// Dynamic edges reach every candidate.
func Unreachable(s *domain.Story) []string {
	candidates := resolver.FromStory(s).Candidates(s.DynamicPrefix)

	visited := make(map[string]bool, len(s.Nodes))
	queue := []string{s.TitleID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		n, ok := s.Node(id)
		if !ok {
			continue
		}
		visited[id] = true

		switch n.Next.Kind {
		case domain.EdgeConcrete:
			queue = append(queue, n.Next.Target)
		case domain.EdgeDynamic:
			queue = append(queue, candidates...)
		}
		for _, ch := range n.Choices {
			queue = append(queue, ch.Next)
		}
	}

	var out []string
	for _, id := range s.IDs() {
		if !visited[id] {
			out = append(out, id)
		}
	}
	return out
}
