package runner

import (
	"context"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/reveal"
)

// Screen is everything a handler needs to present the current node.
type Screen struct {
	Snapshot   domain.Snapshot   `json:"snapshot"`
	Plan       reveal.Plan       `json:"-"`
	Affordance domain.Affordance `json:"affordance,omitempty"`
	Progress   int               `json:"progress"`
}

// IOHandler defines the strategy for interacting with the reader.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Begin starts a new screen.
	Begin(ctx context.Context, screen Screen) error

	// Line presents a whole line at once.
	Line(ctx context.Context, cue reveal.Cue) error

	// Write presents part of a line while typewriting; EndLine closes it.
	Write(ctx context.Context, fragment string) error
	EndLine(ctx context.Context) error

	// Controls presents the choices and the bottom control once the
	// screen is revealed, and again after choices are toggled.
	Controls(ctx context.Context, screen Screen) error

	// Input reads one command line.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (hints, rejected commands).
	SystemOutput(ctx context.Context, msg string) error
}
