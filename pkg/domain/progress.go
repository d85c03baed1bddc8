package domain

import "strings"

// ProgressStages is the number of steps shown by a progress indicator.
const ProgressStages = 6

var stagePrefixes = [][]string{
	1: {"s01", "s02", "s03"},
	2: {"s04", "s05", "s06"},
	3: {"s07", "s08", "s09"},
	4: {"s10", "s11"},
	5: {"s12", "s13"},
}

// ProgressStage maps a node id onto [0, ProgressStages).
func ProgressStage(id string) int {
	if id == DefaultTitleID || id == "entry" {
		return 0
	}
	if id == DefaultTerminalID {
		return ProgressStages - 1
	}
	for stage, prefixes := range stagePrefixes {
		for _, p := range prefixes {
			if strings.HasPrefix(id, p) {
				return stage
			}
		}
	}
	return 0
}

// Affordance is the bottom control a renderer should offer.
type Affordance string

const (
	AffordanceNone        Affordance = ""
	AffordanceStart       Affordance = "start"
	AffordanceContinue    Affordance = "continue"
	AffordanceCloseLetter Affordance = "close_letter"
)

// AffordanceFor derives the bottom control from a snapshot.
// letterID names the end node that is closed like a letter.
func AffordanceFor(s Snapshot, letterID string) Affordance {
	if !s.Flags.ShowTap {
		return AffordanceNone
	}
	switch {
	case s.IsTitle():
		return AffordanceStart
	case s.IsChoice():
		return AffordanceNone
	case s.IsEnd():
		if s.CurrentID == letterID {
			return AffordanceCloseLetter
		}
		if s.Node.Next.IsZero() {
			return AffordanceNone
		}
		return AffordanceContinue
	default:
		return AffordanceContinue
	}
}
