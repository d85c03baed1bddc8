package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/tapestry/internal/presentation/graph"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func testStory() *domain.Story {
	s := domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("s01")},
		domain.Node{ID: "s01", Type: domain.NodeTypeChoice, Choices: []domain.Choice{
			{Label: "the \"wanderer\"", Next: "s02-a"},
			{Label: "keeper", Next: "s02-b"},
		}},
		domain.Node{ID: "s02-a", Type: domain.NodeTypeReveal, Next: domain.Dynamic()},
		domain.Node{ID: "s02-b", Type: domain.NodeTypeReveal, Next: domain.Dynamic()},
		domain.Node{ID: "s07_AX", Type: domain.NodeTypeNarration, Next: domain.To("end")},
		domain.Node{ID: "s07_BX", Type: domain.NodeTypeNarration, Next: domain.To("end")},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
	s.PersonaKeys = map[string]string{"s02-a": "A", "s02-b": "B", "s02-c": "C"}
	s.ShadowKeys = map[string]string{"s02-a": "X", "s02-b": "X"}
	return s
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(testStory(), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`title(("title"))`,
		`s01{"s01"}`,
		`s02_a[["s02-a"]]`,
		`s07_AX["s07_AX"]`,
		`node_end((("end")))`,
		`s07_AX --> node_end`,
		`title --> s01`,
		`s01 -- "the 'wanderer'" --> s02_a`,
		`s01 -- "keeper" --> s02_b`,
		`s02_a -. "AX" .-> s07_AX`,
		`s02_b -. "BX" .-> s07_BX`,
	} {
		assert.Contains(t, out, want)
	}
	// s07_CX is a candidate but not a node.
	assert.NotContains(t, out, "s07_CX")
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(testStory(), &graph.GraphOverlay{
		VisitedNodes: []string{"title", "s01", "title"},
		CurrentNode:  "s02-a",
	})

	assert.Contains(t, out, "classDef current")
	assert.Equal(t, 1, strings.Count(out, "class title visited;"))
	assert.Contains(t, out, "class s01 visited;")
	assert.Contains(t, out, "class s02_a current;")
}
