package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"menu-planner/internal/api"
	"menu-planner/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions selects what Serve exposes.
type ServeOptions struct {
	API bool
	Bot bool
}

// Serve runs the HTTP server until a signal arrives or ctx is done. The API
// and the Telegram webhook share one router and one registry of planners.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	registry := a.Registry()

	var mount func(chi.Router)
	if opts.Bot {
		bot, err := telegram.NewBot(a.cfg, registry, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram bot: %w", err)
		}
		mount = bot.RegisterHandlers
	}

	var handler http.Handler
	if opts.API {
		handler = api.NewServerRouter(registry, a.cfg.HTTP.AuthToken, a.cfg.Storage.DataDir, mount)
	} else {
		r := chi.NewRouter()
		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		if mount != nil {
			mount(r)
		}
		handler = r
	}

	httpServer := &http.Server{
		Addr:              a.cfg.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server",
			slog.String("address", httpServer.Addr),
			slog.Bool("api", opts.API),
			slog.Bool("telegram", opts.Bot))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			a.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			a.logger.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
