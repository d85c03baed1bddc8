package domain

// Flags are the transient reveal flags. They are recomputed on every
// navigation and never carried over.
type Flags struct {
	ShowTap     bool `json:"show_tap"`
	ShowChoices bool `json:"show_choices"`
	ChoiceReady bool `json:"choice_ready"`
}

// Snapshot is the read-only view of a reading session.
type Snapshot struct {
	CurrentID string `json:"current_id"`
	Node      Node   `json:"node"`

	// Epoch increases on every navigation, including the automatic restart.
	// Renderers key fresh reveals on it, never on CurrentID.
	Epoch uint64 `json:"epoch"`

	// PersonaKey and ShadowKey are empty until collected.
	PersonaKey string `json:"persona_key,omitempty"`
	ShadowKey  string `json:"shadow_key,omitempty"`

	// ChoiceSelected holds the label chosen on the current screen, if any.
	ChoiceSelected string `json:"choice_selected,omitempty"`

	Flags Flags `json:"flags"`

	// Revealed is set once the renderer reports that every visible line is shown.
	Revealed bool `json:"revealed"`
}

// HasPersona reports whether a persona key was collected.
func (s Snapshot) HasPersona() bool { return s.PersonaKey != "" }

// HasShadow reports whether a shadow key was collected.
func (s Snapshot) HasShadow() bool { return s.ShadowKey != "" }

func (s Snapshot) IsTitle() bool  { return s.Node.Type == NodeTypeTitle }
func (s Snapshot) IsChoice() bool { return s.Node.Type == NodeTypeChoice }
func (s Snapshot) IsReveal() bool { return s.Node.Type == NodeTypeReveal }
func (s Snapshot) IsEnd() bool    { return s.Node.Type == NodeTypeEnd }

// VisibleLines is the number of non-empty lines on the current screen.
func (s Snapshot) VisibleLines() int {
	return s.Node.VisibleLineCount()
}
