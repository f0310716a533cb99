package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonnes/chatview/view"
	"github.com/urfave/cli/v3"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one session's records, optionally filtered",
		ArgsUsage: "<session-id>",
		Flags:     datasetFlags("terminal, json, html"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("session id is required")
			}

			rnd, err := newApp().renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			st, err := loadStore(cmd)
			if err != nil {
				return err
			}

			v, err := view.Detail(st, id, cmd.String("search"))
			if err != nil {
				return fmt.Errorf("session %q: %w", id, err)
			}
			if err := rnd.RenderSession(cmd.Root().Writer, v); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
