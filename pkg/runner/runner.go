package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/reveal"
)

// Engine is the part of *tapestry.Engine the runner drives.
type Engine interface {
	Snapshot() domain.Snapshot
	Advance(ctx context.Context) error
	SelectChoiceAt(ctx context.Context, i int) error
	ToggleChoices() bool
	RevealComplete(ctx context.Context, epoch uint64) bool
	Affordance() domain.Affordance
	Progress() int
	Plan(s domain.Snapshot) reveal.Plan
}

// Runner handles the reading loop of one session using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on stdin/stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Sleeper paces the reveal. If nil, RealSleeper is used.
	Sleeper Sleeper

	// Typewriter reveals one character at a time.
	Typewriter bool

	// Signals cancels the run on SIGINT/SIGTERM.
	Signals bool

	engine Engine
}

// NewRunner creates a Runner for engine.
func NewRunner(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		Logger:  logging.NewNop(),
		Sleeper: RealSleeper,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Sleeper == nil {
		r.Sleeper = RealSleeper
	}
	return r
}

// Run presents screens and applies reader commands until the reader quits,
// input ends, or ctx is done. Reaching the terminal node is not an exit:
// the engine restarts at the title and the loop goes on.
func (r *Runner) Run(ctx context.Context) error {
	handler := r.resolveHandler()

	if r.Signals {
		signals := NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	var shown uint64
	first := true

	for {
		snap := r.engine.Snapshot()
		if first || snap.Epoch != shown {
			first = false
			shown = snap.Epoch
			if err := r.present(ctx, handler, snap); err != nil {
				if ctx.Err() != nil {
					r.Logger.Debug("reveal interrupted", "node_id", snap.CurrentID, "epoch", snap.Epoch)
					return nil
				}
				return fmt.Errorf("output error: %w", err)
			}
		}

		line, err := handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				r.Logger.Debug("input closed", "err", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		quit, err := r.apply(ctx, handler, ParseCommand(line))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		// Memoize to prevent creating new pumps on subsequent Run() calls
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

func (r *Runner) screen(snap domain.Snapshot) Screen {
	return Screen{
		Snapshot:   snap,
		Plan:       r.engine.Plan(snap),
		Affordance: r.engine.Affordance(),
		Progress:   r.engine.Progress(),
	}
}

// present reveals one screen line by line, reports the reveal to the
// engine and shows the controls.
func (r *Runner) present(ctx context.Context, h IOHandler, snap domain.Snapshot) error {
	screen := r.screen(snap)
	if err := h.Begin(ctx, screen); err != nil {
		return err
	}

	tracker := reveal.NewTracker(screen.Plan.Len(), func() {
		if r.engine.RevealComplete(ctx, snap.Epoch) {
			r.Logger.Debug("screen revealed", "node_id", snap.CurrentID, "epoch", snap.Epoch)
		}
	})

	var at time.Duration
	wait := func(until time.Duration) error {
		if until <= at {
			return ctx.Err()
		}
		d := until - at
		at = until
		return r.Sleeper.Sleep(ctx, d)
	}

	for _, cue := range screen.Plan.Cues {
		if r.Typewriter {
			if err := r.typewrite(ctx, h, cue, wait); err != nil {
				return err
			}
		} else {
			if err := wait(cue.Start); err != nil {
				return err
			}
			if err := h.Line(ctx, cue); err != nil {
				return err
			}
		}
		if err := wait(cue.End()); err != nil {
			return err
		}
		tracker.Complete(cue.Index)
	}
	if screen.Plan.Len() == 0 {
		tracker.Flush()
	}

	return h.Controls(ctx, r.screen(r.engine.Snapshot()))
}

func (r *Runner) typewrite(ctx context.Context, h IOHandler, cue reveal.Cue, wait func(time.Duration) error) error {
	speed := cue.Duration / time.Duration(utf8.RuneCountInString(cue.Text))
	offsets := reveal.CharOffsets(cue.Text, cue.Start, speed)

	i := 0
	for _, ch := range cue.Text {
		if err := wait(offsets[i]); err != nil {
			return err
		}
		if err := h.Write(ctx, string(ch)); err != nil {
			return err
		}
		i++
	}
	return h.EndLine(ctx)
}

// apply runs one reader command. Contract violations are shown to the
// reader and never end the run.
func (r *Runner) apply(ctx context.Context, h IOHandler, cmd Command) (bool, error) {
	switch cmd.Kind {
	case CommandQuit:
		return true, nil

	case CommandAdvance:
		if r.engine.Affordance() == domain.AffordanceNone {
			return false, h.SystemOutput(ctx, r.hint())
		}
		return false, r.report(ctx, h, r.engine.Advance(ctx))

	case CommandChoose:
		return false, r.report(ctx, h, r.engine.SelectChoiceAt(ctx, cmd.Choice))

	case CommandToggle:
		snap := r.engine.Snapshot()
		if !snap.IsChoice() {
			return false, h.SystemOutput(ctx, "there are no choices to toggle")
		}
		r.engine.ToggleChoices()
		return false, h.Controls(ctx, r.screen(r.engine.Snapshot()))

	default:
		return false, h.SystemOutput(ctx, fmt.Sprintf("unknown command %q", cmd.Raw))
	}
}

func (r *Runner) hint() string {
	snap := r.engine.Snapshot()
	if snap.IsChoice() {
		if !snap.Flags.ShowChoices {
			return "choices are hidden; type t to show them"
		}
		return "type the number of a choice"
	}
	return "the story stops here; type q to quit"
}

func (r *Runner) report(ctx context.Context, h IOHandler, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsContractViolation(err) {
		r.Logger.Debug("command rejected", "err", err)
		return h.SystemOutput(ctx, err.Error())
	}
	return err
}
