package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tapestry/internal/config"
	"github.com/aretw0/tapestry/internal/logging"
	"github.com/aretw0/tapestry/internal/presentation/tui"
	"github.com/aretw0/tapestry/pkg/adapters/redis"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/observability"
	"github.com/aretw0/tapestry/pkg/runner"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

const defaultWidth = 80

// PlayOptions contains the per-invocation settings of the play command.
// Everything else comes from config.Config.
type PlayOptions struct {
	Story     string
	JSON      bool
	Debug     bool
	SessionID string

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Play reads a story in the terminal until the reader quits or input ends.
func Play(ctx context.Context, cfg *config.Config, opts PlayOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.Story == "" {
		opts.Story = cfg.Story
	}

	logger := createLogger(cfg, opts.Debug)

	var hooks []domain.LifecycleHooks
	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}

	if cfg.RedisAddr != "" {
		client, err := redis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		publisher := redis.NewPublisher(client, redis.WithPublisherLogger(logger))
		hooks = append(hooks, publisher.Hooks())
		logger.Info("Publishing events", "channel", publisher.Channel(opts.SessionID))
	}

	var registry *prometheus.Registry
	if cfg.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		hooks = append(hooks, observability.NewMetrics(registry).Hooks())
	}

	engine, err := createEngine(ctx, cfg, opts.Story, opts.SessionID, logger, hooks...)
	if err != nil {
		return err
	}

	if registry != nil {
		_, stop, err := serveOps(cfg.MetricsAddr, registry, engine.Story(), logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	interactive := !opts.JSON && isTerminal(opts.Out)

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		var handlerOpts []runner.TextHandlerOption
		if interactive {
			tui.PrintBanner(opts.Out)
			render, err := tui.NewRenderer(terminalWidth(opts.Out))
			if err != nil {
				logger.Warn("Markdown rendering disabled", "err", err)
			} else {
				handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
			}
		}
		handler = runner.NewTextHandler(opts.In, opts.Out, handlerOpts...)
	}

	// Reveal pacing only makes sense for a person watching a terminal.
	sleeper := runner.NoSleep
	if interactive {
		sleeper = runner.RealSleeper
	}

	logger.Info("Session Created", "session_id", opts.SessionID, "story", engine.Name)

	r := runner.NewRunner(engine,
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithSleeper(sleeper),
		runner.WithTypewriter(interactive && cfg.Typewriter),
		runner.WithSignals(true),
	)
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("play failed: %w", err)
	}

	logger.Info("Session Finished", "session_id", opts.SessionID, "node", engine.Snapshot().CurrentID)
	return nil
}

// createLogger configures the application logger.
// --debug forces the Debug level.
func createLogger(cfg *config.Config, debug bool) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level, cfg.Format())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
