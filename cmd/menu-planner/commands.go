package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"menu-planner/internal/app"
	"menu-planner/internal/config"
	"menu-planner/internal/menu"
	"menu-planner/internal/planner"
	"menu-planner/internal/share"
	"menu-planner/internal/tui"
	"menu-planner/internal/week"
)

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Read(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("store") {
		cfg.Storage.Backend = cmd.String("store")
	}
	if cmd.IsSet("data-dir") {
		cfg.Storage.DataDir = cmd.String("data-dir")
	}
	if cmd.IsSet("db") {
		cfg.Storage.DatabasePath = cmd.String("db")
	}
	if cmd.IsSet("key") {
		cfg.Storage.Key = cmd.String("key")
	}
	if cmd.IsSet("title") {
		cfg.App.Title = cmd.String("title")
	}
	if cmd.IsSet("start") {
		key, err := week.ParseKey(week.DefaultDays(), cmd.String("start"))
		if err != nil {
			return nil, err
		}
		cfg.App.StartDay = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func openApp(ctx context.Context, cmd *cli.Command, jsonLogs bool) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.App.LogLevel, jsonLogs)
	slog.SetDefault(logger)
	return app.New(ctx, cfg, logger)
}

// withPlanner opens the stored planner, runs fn and closes the App.
func withPlanner(ctx context.Context, cmd *cli.Command, fn func(a *app.App, p *planner.Planner) error) error {
	a, err := openApp(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.Planner(ctx)
	if err != nil {
		return err
	}
	return fn(a, p)
}

func printShare(p *planner.Planner) {
	fmt.Println(p.ShareText())
}

func dayArg(p *planner.Planner, cmd *cli.Command, i int) (string, error) {
	if cmd.NArg() <= i {
		return "", fmt.Errorf("missing day argument")
	}
	return week.ParseKey(p.Catalog(), cmd.Args().Get(i))
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		printShare(p)
		return nil
	})
}

func runSet(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		key, err := dayArg(p, cmd, 0)
		if err != nil {
			return err
		}
		field, err := menu.ParseField(cmd.Args().Get(1))
		if err != nil {
			return err
		}
		value := strings.Join(cmd.Args().Slice()[min(2, cmd.NArg()):], " ")
		if err := p.SetField(ctx, key, field, value); err != nil {
			return err
		}
		printShare(p)
		return nil
	})
}

func runClear(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		if cmd.NArg() == 0 {
			p.ClearAll(ctx)
		} else {
			key, err := dayArg(p, cmd, 0)
			if err != nil {
				return err
			}
			if err := p.ClearDay(ctx, key); err != nil {
				return err
			}
		}
		printShare(p)
		return nil
	})
}

func runSwap(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		key, err := dayArg(p, cmd, 0)
		if err != nil {
			return err
		}
		if err := p.SwapDay(ctx, key); err != nil {
			return err
		}
		printShare(p)
		return nil
	})
}

func runExample(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		p.FillExample(ctx)
		printShare(p)
		return nil
	})
}

func runShare(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		text := p.ShareText()
		switch {
		case cmd.Bool("link"):
			fmt.Println(share.WhatsAppURL(text))
		case cmd.Bool("copy"):
			if err := share.Copy(text); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Copiado!")
		default:
			fmt.Println(text)
		}
		return nil
	})
}

func runSuggest(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		filled, err := p.Suggest(ctx)
		if err != nil {
			return err
		}
		slog.Info("suggestions applied", slog.Int("filled", filled))
		printShare(p)
		return nil
	})
}

func runPublish(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(a *app.App, p *planner.Planner) error {
		post, err := a.Publish(ctx, p)
		if err != nil {
			return err
		}
		fmt.Println(post.URL)
		return nil
	})
}

func runImport(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(a *app.App, p *planner.Planner) error {
		if err := a.Import(ctx, p, cmd.Args().First()); err != nil {
			return err
		}
		printShare(p)
		return nil
	})
}

func runWatch(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Watch(ctx, os.Stdout)
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	return withPlanner(ctx, cmd, func(_ *app.App, p *planner.Planner) error {
		return tui.Run(ctx, p)
	})
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx, app.ServeOptions{
		API: !cmd.Bool("no-api"),
		Bot: cmd.Bool("bot"),
	})
}
