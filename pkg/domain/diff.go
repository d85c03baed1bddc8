package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on a client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Epoch is always present; clients drop diffs older than what they hold.
	Epoch uint64 `json:"epoch"`

	CurrentID      *string `json:"current_id,omitempty"`
	PersonaKey     *string `json:"persona_key,omitempty"`
	ShadowKey      *string `json:"shadow_key,omitempty"`
	ChoiceSelected *string `json:"choice_selected,omitempty"`
	Flags          *Flags  `json:"flags,omitempty"`
	Revealed       *bool   `json:"revealed,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, the diff carries every field of next (initial load).
// Returns nil when nothing changed.
func Diff(sessionID string, prev *Snapshot, next Snapshot) *SnapshotDiff {
	diff := &SnapshotDiff{
		SessionID: sessionID,
		Epoch:     next.Epoch,
	}

	if prev == nil || prev.CurrentID != next.CurrentID {
		diff.CurrentID = &next.CurrentID
	}
	if prev == nil || prev.PersonaKey != next.PersonaKey {
		diff.PersonaKey = &next.PersonaKey
	}
	if prev == nil || prev.ShadowKey != next.ShadowKey {
		diff.ShadowKey = &next.ShadowKey
	}
	if prev == nil || prev.ChoiceSelected != next.ChoiceSelected {
		diff.ChoiceSelected = &next.ChoiceSelected
	}
	if prev == nil || prev.Flags != next.Flags {
		diff.Flags = &next.Flags
	}
	if prev == nil || prev.Revealed != next.Revealed {
		diff.Revealed = &next.Revealed
	}

	// A re-entry of the same id still matters to a renderer.
	if prev != nil && prev.Epoch != next.Epoch && diff.CurrentID == nil {
		diff.CurrentID = &next.CurrentID
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.CurrentID == nil &&
		d.PersonaKey == nil &&
		d.ShadowKey == nil &&
		d.ChoiceSelected == nil &&
		d.Flags == nil &&
		d.Revealed == nil
}
