// Package cli holds the phishlens command line: flag definitions and the
// actions behind each subcommand.
package cli

import (
	"github.com/urfave/cli/v2"
)

// NewApp builds the phishlens command tree.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "phishlens",
		Usage: "lexical phishing URL checks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"PHISHLENS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve the web page and JSON API",
				Action: ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "listen", Usage: "listen address (overrides config)"},
				},
			},
			{
				Name:      "check",
				Usage:     "check one or more URLs and print the verdicts",
				ArgsUsage: "<url> [url...]",
				Action:    CheckAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print results as JSON lines"},
				},
			},
			{
				Name:   "history",
				Usage:  "list recent checks",
				Action: HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum entries"},
				},
			},
		},
	}
}
