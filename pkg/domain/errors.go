package domain

import (
	"errors"
	"fmt"
)

// Caller-contract violations. They indicate a UI bug or a malformed graph.
var (
	// ErrNoNext is returned when advancing from a node without an outgoing edge.
	ErrNoNext = errors.New("node has no next")
	// ErrKeysMissing is returned when a dynamic edge is resolved before both keys exist.
	ErrKeysMissing = errors.New("persona and shadow keys are required")
	// ErrNoActiveChoice is returned when selecting while no choices are shown.
	ErrNoActiveChoice = errors.New("no active choice")
	// ErrChoiceAlreadySelected is returned on a second selection on the same screen.
	ErrChoiceAlreadySelected = errors.New("choice already selected")
	// ErrUnknownChoice is returned when the choice does not belong to the current node.
	ErrUnknownChoice = errors.New("unknown choice")
	// ErrEmptyNodeID is returned when navigating to an empty id.
	ErrEmptyNodeID = errors.New("empty node id")
)

// ErrNodeNotFound is returned when an id is absent from the Story Graph.
var ErrNodeNotFound = errors.New("node not found")

// ErrSessionNotFound is returned when a session ID is unknown to the manager.
var ErrSessionNotFound = errors.New("session not found")

// ContractError reports a caller-contract violation on a given operation.
type ContractError struct {
	Op     string
	NodeID string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s at %q: %v", e.Op, e.NodeID, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// IsContractViolation reports whether err originates from a caller-contract violation.
func IsContractViolation(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}
