package runtime_test

import (
	"github.com/aretw0/tapestry/pkg/domain"
)

// scenarioStory is the four-node graph used to check epochs and the restart.
func scenarioStory() *domain.Story {
	return domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Next: domain.To("n1")},
		domain.Node{ID: "n1", Type: domain.NodeTypeNarration, Lines: []string{"a", "bb"}, Next: domain.To("c1")},
		domain.Node{ID: "c1", Type: domain.NodeTypeChoice, Choices: []domain.Choice{{Label: "X", Next: "end"}}},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
}

// branchingStory asks for the shadow first and the persona second, then
// converges on a dynamic edge.
//
//	title -> s01 (shadow choice) -> s02 (persona choice) -> s03 (dynamic) -> s07_{A,B}{X,Y} -> s13 -> end
func branchingStory() *domain.Story {
	s := domain.NewStory(
		domain.Node{ID: "title", Type: domain.NodeTypeTitle, Lines: []string{"Tapestry", "", "a story"}, Next: domain.To("s01")},
		domain.Node{ID: "s01", Type: domain.NodeTypeChoice, Lines: []string{"Light or dark?"}, Choices: []domain.Choice{
			{Label: "light", Next: "s01x"},
			{Label: "dark", Next: "s01y"},
		}},
		domain.Node{ID: "s01x", Type: domain.NodeTypeNarration, Lines: []string{"It is bright."}, Next: domain.To("s02")},
		domain.Node{ID: "s01y", Type: domain.NodeTypeNarration, Lines: []string{"It is dim."}, Next: domain.To("s02")},
		domain.Node{ID: "s02", Type: domain.NodeTypeChoice, Lines: []string{"Who are you?"}, Choices: []domain.Choice{
			{Label: "wanderer", Next: "s02a"},
			{Label: "keeper", Next: "s02b"},
		}},
		domain.Node{ID: "s02a", Type: domain.NodeTypeReveal, Lines: []string{"A wanderer."}, Next: domain.To("s03")},
		domain.Node{ID: "s02b", Type: domain.NodeTypeReveal, Lines: []string{"A keeper."}, Next: domain.To("s03")},
		domain.Node{ID: "s03", Type: domain.NodeTypeNarration, Lines: []string{"The thread turns."}, Next: domain.Dynamic()},
		domain.Node{ID: "s07_AX", Type: domain.NodeTypeNarration, Lines: []string{"AX"}, Next: domain.To("s13")},
		domain.Node{ID: "s07_AY", Type: domain.NodeTypeNarration, Lines: []string{"AY"}, Next: domain.To("s13")},
		domain.Node{ID: "s07_BX", Type: domain.NodeTypeNarration, Lines: []string{"BX"}, Next: domain.To("s13")},
		domain.Node{ID: "s07_BY", Type: domain.NodeTypeNarration, Lines: []string{"BY"}, Next: domain.To("s13")},
		domain.Node{ID: "s13", Type: domain.NodeTypeEnd, Lines: []string{"Dear reader,"}, Next: domain.To("end")},
		domain.Node{ID: "end", Type: domain.NodeTypeEnd},
	)
	s.PersonaKeys = map[string]string{"s02a": "A", "s02b": "B"}
	s.ShadowKeys = map[string]string{"s01x": "X", "s01y": "Y"}
	return s
}
