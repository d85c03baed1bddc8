package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSleeper sets how the runner waits between reveal steps.
func WithSleeper(s Sleeper) Option {
	return func(r *Runner) {
		r.Sleeper = s
	}
}

// WithTypewriter reveals lines one character at a time instead of whole.
func WithTypewriter(enabled bool) Option {
	return func(r *Runner) {
		r.Typewriter = enabled
	}
}

// WithSignals enables SIGINT/SIGTERM handling during Run.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
