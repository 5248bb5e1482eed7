package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ericogr/war-cards/internal/constants"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/service"
)

const shutdownTimeout = 10 * time.Second

// idleScanInterval checks a few times per timeout, but at most once a
// second and at least once a minute.
func idleScanInterval(idle time.Duration) time.Duration {
	d := idle / 4
	if d < time.Second {
		d = time.Second
	}
	if d > time.Minute {
		d = time.Minute
	}
	return d
}

// runIdleScanner abandons idle matches until ctx is cancelled.
func runIdleScanner(ctx context.Context, repo service.IdleRepo, idleTimeout, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := service.ExpireIdleMatches(repo, idleTimeout, now)
			if err != nil {
				logging.Error("idle scanner failed", err, nil)
				continue
			}
			if n > 0 {
				logging.Info("idle matches abandoned", logging.Fields{"count": n})
			}
		}
	}
}

// runServer serves handler on addr and shuts down gracefully when ctx ends.
func runServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Info("Shutting down", logging.Fields{constants.LogFieldAddr: addr})
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
