package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/sonnes/chatview/config"
	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/loader"
	"github.com/sonnes/chatview/server"
	"github.com/sonnes/chatview/store"
	"github.com/sonnes/chatview/watch"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a TOML config file",
			Sources: cli.EnvVars("CHATVIEW_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Dataset loaded at startup (.json, .yaml, .yml)",
			Value:   config.DefaultData,
			Sources: cli.EnvVars("CHATVIEW_DATA"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on",
			Value:   config.DefaultPort,
			Sources: cli.EnvVars("CHATVIEW_PORT", "PORT"),
		},
		&cli.StringFlag{
			Name:    "max-upload",
			Usage:   "Largest accepted upload body, e.g. 50MB or 512KiB",
			Value:   config.DefaultMaxUpload,
			Sources: cli.EnvVars("CHATVIEW_MAX_UPLOAD"),
		},
		&cli.BoolFlag{
			Name:    "watch",
			Usage:   "Reload the dataset when the file changes",
			Sources: cli.EnvVars("CHATVIEW_WATCH"),
		},
	}

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the session viewer in a local web UI",
		Flags: append(flags, redactFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			maxUpload, err := cfg.MaxUploadBytes()
			if err != nil {
				return err
			}

			l := &loader.Loader{}
			if !cmd.Bool("no-redact") {
				if l, err = loaderWith(cfg.Redact, cfg.Allowlist); err != nil {
					return err
				}
			}

			logger := log.Default()
			st := store.New()
			bootstrap(st, l, cfg.Data, logger)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Watch {
				w, err := watch.New(cfg.Data)
				if err != nil {
					logger.Warn("watch disabled", "path", cfg.Data, "error", err)
				} else {
					logger.Info("watching dataset", "path", cfg.Data)
					go func() {
						if err := w.Run(ctx, func() { bootstrap(st, l, cfg.Data, logger) }); err != nil {
							logger.Error("watch", "path", cfg.Data, "error", err)
						}
					}()
				}
			}

			srv := server.New(st,
				server.WithLogger(logger),
				server.WithLoader(l),
				server.WithMaxUpload(maxUpload),
			)
			return srv.ListenAndServe(ctx, cfg.Addr())
		},
	}
}

// resolveConfig reads the config file and applies explicitly set flags on
// top of it.
func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.LoadFile(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("data") {
		cfg.Data = cmd.String("data")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("max-upload") {
		cfg.MaxUpload = cmd.String("max-upload")
	}
	if cmd.IsSet("watch") {
		cfg.Watch = cmd.Bool("watch")
	}
	if cmd.IsSet("redact") {
		cfg.Redact = cmd.StringSlice("redact")
	}
	if cmd.IsSet("allow") {
		cfg.Allowlist = cmd.StringSlice("allow")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// bootstrap loads path into st. Failures are logged and leave st unchanged,
// so the server still starts and accepts uploads.
func bootstrap(st *store.Store, l *loader.Loader, path string, logger *log.Logger) {
	sessions, err := l.LoadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no dataset found, starting empty", "path", path)
		return
	case err != nil:
		logger.Error("load dataset", "path", path, "error", err)
		return
	}

	st.Replace(sessions, path)
	logger.Info("dataset loaded",
		"source", path,
		"sessions", len(sessions),
		"records", core.CountRecords(sessions),
	)
}
