package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	tapestryhttp "github.com/aretw0/tapestry/pkg/adapters/http"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// serveOps starts the health and metrics endpoint on addr.
// It returns the bound address and a function that shuts it down gracefully.
func serveOps(addr string, gatherer prometheus.Gatherer, story *domain.Story, logger *slog.Logger) (bound string, stop func(), err error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("metrics listener: %w", err)
	}

	srv := &http.Server{
		Handler: tapestryhttp.NewHandler(
			tapestryhttp.WithGatherer(gatherer),
			tapestryhttp.WithStory(story),
			tapestryhttp.WithLogger(logger),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("Serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", "err", err)
		}
	}()

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			_ = srv.Close()
		}
		<-done
	}, nil
}
