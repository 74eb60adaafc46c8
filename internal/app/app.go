// Package app wires configuration, storage and services together for the
// command-line entry points.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"menu-planner/internal/clipper"
	"menu-planner/internal/config"
	"menu-planner/internal/database"
	"menu-planner/internal/ghost"
	"menu-planner/internal/llm"
	"menu-planner/internal/menu"
	"menu-planner/internal/planner"
	"menu-planner/internal/storage"
)

// ErrWatchUnsupported is returned by Watch when the store is not file based.
var ErrWatchUnsupported = errors.New("watch requires the file storage backend")

// App holds the application's dependencies.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	kv    storage.KV
	files *storage.FileStore
	db    *database.DB

	chef     *planner.Chef
	closeLLM func() error
}

// New opens the configured store and, when an LLM is configured, the chef.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := database.NewDB(ctx, cfg.Storage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		a.kv = storage.NewSQLiteStore(db.SQL)
	default:
		fs, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		a.files = fs
		a.kv = fs
	}

	if cfg.ValidateLLM() == nil {
		textGen, closeFn, err := llm.NewTextGenerator(ctx, cfg)
		if err != nil {
			logger.Warn("meal suggestions disabled", slog.String("error", err.Error()))
		} else {
			a.chef = planner.NewChef(textGen)
			a.closeLLM = closeFn
		}
	}

	return a, nil
}

// Close releases the database and the LLM client.
func (a *App) Close() error {
	var errs []error
	if a.closeLLM != nil {
		errs = append(errs, a.closeLLM())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) plannerOptions() []planner.Option {
	opts := []planner.Option{
		planner.WithTitle(a.cfg.App.Title),
		planner.WithStartDay(a.cfg.App.StartDay),
		planner.WithLogger(a.logger),
	}
	if a.chef != nil {
		opts = append(opts, planner.WithChef(a.chef))
	}
	return opts
}

// Planner opens the single-user planner stored under the configured key.
func (a *App) Planner(ctx context.Context) (*planner.Planner, error) {
	return planner.Open(ctx, a.kv, a.cfg.Storage.Key, a.plannerOptions()...)
}

// Registry returns per-user planners for the bot and the API.
func (a *App) Registry() *planner.Registry {
	return planner.NewRegistry(a.kv, a.plannerOptions()...)
}

func (a *App) clipper() (*clipper.Clipper, error) {
	if err := a.cfg.ValidateGhost(); err != nil {
		return nil, fmt.Errorf("ghost config: %w", err)
	}
	return clipper.NewClipper(ghost.NewClient(a.cfg)), nil
}

// Publish posts the planner's week to Ghost.
func (a *App) Publish(ctx context.Context, p *planner.Planner) (*ghost.Post, error) {
	c, err := a.clipper()
	if err != nil {
		return nil, err
	}
	post, err := c.Publish(ctx, p.Title(), p.Days(), p.Menu())
	if err != nil {
		return nil, err
	}
	a.logger.Info("menu published", slog.String("post_id", post.ID), slog.String("url", post.URL))
	return post, nil
}

// Import replaces the planner's week with the menu found at url, or with the
// latest published menu when url is empty.
func (a *App) Import(ctx context.Context, p *planner.Planner, url string) error {
	var (
		m   menu.Data
		err error
	)
	if url != "" {
		m, err = clipper.NewClipper(ghost.NewClient(a.cfg)).ImportURL(ctx, url, p.Catalog())
	} else {
		var c *clipper.Clipper
		if c, err = a.clipper(); err == nil {
			var post *ghost.Post
			m, post, err = c.ImportLatest(ctx, p.Catalog())
			if err == nil {
				a.logger.Info("importing published menu", slog.String("post_id", post.ID))
			}
		}
	}
	if err != nil {
		return err
	}
	p.Replace(ctx, m)
	return nil
}

// Watch writes the share text to w now and after every external change to
// the stored menu, until ctx is done.
func (a *App) Watch(ctx context.Context, w io.Writer) error {
	if a.files == nil {
		return ErrWatchUnsupported
	}
	key := a.cfg.Storage.Key

	render := func() {
		p, err := a.Planner(ctx)
		if err != nil {
			a.logger.Error("failed to reload menu", slog.String("error", err.Error()))
			return
		}
		fmt.Fprintf(w, "%s\n\n", p.ShareText())
	}

	render()
	a.logger.Info("watching menu", slog.String("path", a.files.Path(key)))
	return a.files.Watch(ctx, key, render)
}

// NewLogger builds the slog logger: JSON for servers, text for interactive
// commands. Both write to stderr.
func NewLogger(level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
