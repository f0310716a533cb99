package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "chatview",
		Usage: "Browse and search exported chat sessions",
		Description: `Loads a JSON export of chat sessions (question/answer records) and
serves a searchable web viewer. New exports can be uploaded from the
browser; list and show print the same views to the terminal.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "info",
				Sources: cli.EnvVars("CHATVIEW_LOG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			listCmd(),
			showCmd(),
		},
	}
}
