package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/tapestry"
	"github.com/aretw0/tapestry/internal/config"
	"github.com/aretw0/tapestry/pkg/domain"
)

// createEngine initializes a Tapestry engine with standard CLI conventions.
func createEngine(ctx context.Context, cfg *config.Config, storyPath, sessionID string, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*tapestry.Engine, error) {
	if storyPath == "" {
		return nil, fmt.Errorf("no story given: pass a path or set TAPESTRY_STORY")
	}

	engineOpts := []tapestry.Option{
		tapestry.WithLogger(logger),
		tapestry.WithStrict(cfg.Strict()),
		tapestry.WithTiming(cfg.Timing()),
		tapestry.WithSessionID(sessionID),
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, tapestry.WithLifecycleHooks(h))
	}

	engine, err := tapestry.New(ctx, storyPath, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.Debug("Enter Node", "node_id", e.NodeID, "type", e.NodeType, "epoch", e.Epoch)
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			logger.Debug("Choice", "node_id", e.NodeID, "label", e.Label, "target", e.Target)
		},
		OnRestart: func(ctx context.Context, e *domain.RestartEvent) {
			logger.Debug("Restart", "from", e.FromNodeID, "epoch", e.Epoch)
		},
		OnRevealComplete: func(ctx context.Context, e *domain.RevealEvent) {
			logger.Debug("Reveal Complete", "node_id", e.NodeID, "epoch", e.Epoch)
		},
	}
}
