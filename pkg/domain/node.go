package domain

// NodeType defines how the engine presents a node and how the reader leaves it.
type NodeType string

const (
	// NodeTypeTitle is the entry screen. The reader taps to start.
	NodeTypeTitle NodeType = "title"
	// NodeTypeNarration displays lines and waits for a tap.
	NodeTypeNarration NodeType = "narration"
	// NodeTypeChoice displays lines followed by the reader's options.
	NodeTypeChoice NodeType = "choice"
	// NodeTypeReveal behaves like narration; only the rendering style differs.
	NodeTypeReveal NodeType = "reveal"
	// NodeTypeEnd closes a path. The terminal end node restarts the story.
	NodeTypeEnd NodeType = "end"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeTitle, NodeTypeNarration, NodeTypeChoice, NodeTypeReveal, NodeTypeEnd:
		return true
	}
	return false
}

// Choice is one option of a choice node. Order within a node is display order.
type Choice struct {
	Label string `json:"label" yaml:"label"`
	Next  string `json:"next" yaml:"next"`
}

// Node is a single screen of the Story Graph.
type Node struct {
	ID   string   `json:"id" yaml:"id"`
	Type NodeType `json:"type" yaml:"type"`

	// Lines may contain empty entries. They help authoring but are never
	// counted, timed or rendered.
	Lines []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Next is absent on choice nodes and optional on end nodes.
	Next Edge `json:"next,omitzero" yaml:"next,omitempty"`

	// Choices is only set on choice nodes.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// VisibleLines returns the non-empty lines in order.
func (n Node) VisibleLines() []string {
	visible := make([]string, 0, len(n.Lines))
	for _, line := range n.Lines {
		if line != "" {
			visible = append(visible, line)
		}
	}
	return visible
}

// VisibleLineCount is the number of non-empty lines, never the raw length.
func (n Node) VisibleLineCount() int {
	count := 0
	for _, line := range n.Lines {
		if line != "" {
			count++
		}
	}
	return count
}

// ChoiceIndex returns the position of c among the node's choices, or -1.
func (n Node) ChoiceIndex(c Choice) int {
	for i, candidate := range n.Choices {
		if candidate == c {
			return i
		}
	}
	return -1
}
