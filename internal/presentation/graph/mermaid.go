package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/resolver"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// GenerateMermaid produces a Mermaid flowchart of a story.
// It applies semantic styling:
// - Title: ((Circle))
// - Choice: {Rhombus}
// - Reveal: [[Subroutine]]
// - End: (((Double circle)))
// - Narration: [Rectangle]
// Choices are labelled edges. A dynamic edge is drawn, dotted, to every
// composed candidate present in the story.
func GenerateMermaid(s *domain.Story, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	candidates := resolver.FromStory(s).Candidates(s.DynamicPrefix)

	for _, node := range s.SortedNodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Type {
		case domain.NodeTypeTitle:
			opener, closer = "((", "))"
		case domain.NodeTypeChoice:
			opener, closer = "{", "}"
		case domain.NodeTypeReveal:
			opener, closer = "[[", "]]"
		case domain.NodeTypeEnd:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer)

		switch node.Next.Kind {
		case domain.EdgeConcrete:
			fmt.Fprintf(&sb, "    %s --> %s\n", safeID, sanitizeMermaidID(node.Next.Target))
		case domain.EdgeDynamic:
			for _, id := range candidates {
				if _, ok := s.Node(id); !ok {
					continue
				}
				key := strings.TrimPrefix(id, s.DynamicPrefix)
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, key, sanitizeMermaidID(id))
			}
		}

		for _, c := range node.Choices {
			// Escape double quotes in labels for Mermaid
			label := strings.ReplaceAll(c.Label, "\"", "'")
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(c.Next))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

var idReplacer = strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")

// sanitizeMermaidID also renames "end", which Mermaid reserves.
func sanitizeMermaidID(id string) string {
	s := idReplacer.Replace(id)
	if s == "end" {
		return "node_end"
	}
	return s
}
