package main

import (
	"context"
	"fmt"

	"github.com/sonnes/chatview/compact"
	"github.com/sonnes/chatview/config"
	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/store"
	"github.com/sonnes/chatview/view"
	"github.com/urfave/cli/v3"
)

// datasetFlags select the dataset, query, and output format for list and show.
func datasetFlags(formats string) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Dataset file (.json, .yaml, .yml)",
			Value:   config.DefaultData,
			Sources: cli.EnvVars("CHATVIEW_DATA"),
		},
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Case-insensitive substring filter",
		},
		&cli.StringFlag{
			Name:  "o",
			Usage: "Output format: " + formats,
			Value: "terminal",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Strip injected markup from questions, drop empty records, and collapse code blocks",
		},
	}
	return append(flags, redactFlags()...)
}

// loadStore reads the dataset named by --data into a new Store.
func loadStore(cmd *cli.Command) (*store.Store, error) {
	l, err := newLoader(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Bool("compact") {
		l.Transformers = append([]core.Transformer{compact.New(compact.Config{})}, l.Transformers...)
	}

	path := cmd.String("data")
	sessions, err := l.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	st := store.New()
	st.Replace(sessions, path)
	return st, nil
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the sessions of a dataset, optionally filtered",
		Flags: datasetFlags("terminal, json, html"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rnd, err := newApp().renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			st, err := loadStore(cmd)
			if err != nil {
				return err
			}

			v := view.List(st, cmd.String("search"))
			if err := rnd.RenderIndex(cmd.Root().Writer, v); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
