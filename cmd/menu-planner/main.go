package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:   "menu-planner",
		Usage:  "Plan the week's lunches and dinners and share them as text",
		Action: runShow,
		Flags:  globalFlags(),
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the share text",
				Action: runShow,
			},
			{
				Name:      "set",
				Usage:     "Set one meal",
				ArgsUsage: "<day> <almoco|jantar> <text...>",
				Action:    runSet,
			},
			{
				Name:      "clear",
				Usage:     "Clear one day, or the whole week without arguments",
				ArgsUsage: "[day]",
				Action:    runClear,
			},
			{
				Name:      "swap",
				Usage:     "Swap lunch and dinner of one day",
				ArgsUsage: "<day>",
				Action:    runSwap,
			},
			{
				Name:   "example",
				Usage:  "Fill the week with the sample menu",
				Action: runExample,
			},
			{
				Name:  "share",
				Usage: "Print the share text, copy it or print the WhatsApp link",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "copy", Usage: "Copy the text to the clipboard"},
					&cli.BoolFlag{Name: "link", Usage: "Print the WhatsApp link"},
				},
				Action: runShare,
			},
			{
				Name:   "suggest",
				Usage:  "Fill empty meals with suggestions",
				Action: runSuggest,
			},
			{
				Name:   "publish",
				Usage:  "Publish the week to Ghost",
				Action: runPublish,
			},
			{
				Name:      "import",
				Usage:     "Replace the week with the menu on a web page, or the latest published one",
				ArgsUsage: "[url]",
				Action:    runImport,
			},
			{
				Name:   "watch",
				Usage:  "Print the share text whenever the stored menu changes",
				Action: runWatch,
			},
			{
				Name:   "tui",
				Usage:  "Edit the week in the terminal",
				Action: runTUI,
			},
			{
				Name:  "serve",
				Usage: "Serve the HTTP API and, optionally, the Telegram webhook",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "bot", Usage: "Also serve the Telegram webhook"},
					&cli.BoolFlag{Name: "no-api", Usage: "Do not serve the HTTP API"},
				},
				Action: runServe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// globalFlags are accepted before any subcommand.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file",
			Value:   "config/config.yaml",
			Sources: cli.EnvVars("MENU_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Storage backend (file or sqlite)",
		},
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "Directory of the file store",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Path of the SQLite database",
		},
		&cli.StringFlag{
			Name:  "key",
			Usage: "Storage key of the menu",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Title of the share text",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Day the week starts on (e.g. segunda, domingo)",
		},
	}
}
