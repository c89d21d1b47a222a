// Package server is the HTTP playground behind `popover serve`.
//
// It exposes the position resolver as a JSON API and serves the rendered
// placement gallery and state charts:
//
//	GET  /healthz
//	GET  /api/v1/placements
//	POST /api/v1/resolve
//	GET  /gallery.svg
//	GET  /states/{mode}.svg
//	GET  /states/{mode}.dot
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/config"
	perrors "github.com/matzehuels/popover/pkg/errors"
)

// Options configures Run.
type Options struct {
	Config config.Config
	Logger *log.Logger
	// Cache stores rendered SVGs. Defaults to an in-memory cache.
	Cache cache.Cache
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	h := newHandlers(opts)
	defer h.cache.Close()

	srv := &http.Server{
		Addr:              opts.Config.Server.Addr,
		Handler:           buildRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("popover playground started", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- perrors.Wrap(perrors.ErrCodeInternal, err, "listen on %s", srv.Addr)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return perrors.Wrap(perrors.ErrCodeInternal, err, "shutdown server")
		}
		h.logger.Info("popover playground stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
