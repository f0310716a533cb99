package main

import (
	"fmt"
	"strings"

	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/loader"
	"github.com/sonnes/chatview/redact"
	"github.com/sonnes/chatview/render"
	htmlrender "github.com/sonnes/chatview/render/html"
	jsonrender "github.com/sonnes/chatview/render/json"
	"github.com/sonnes/chatview/render/terminal"
	"github.com/urfave/cli/v3"
)

// app holds the renderer registry used by CLI commands.
type app struct {
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return jsonrender.New() },
			"html":     func() render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// redactFlags are shared by every command that loads a dataset.
func redactFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "no-redact",
			Usage:   "Disable redaction even if the config file enables it",
			Sources: cli.EnvVars("CHATVIEW_NO_REDACT"),
		},
		&cli.StringSliceFlag{
			Name:    "redact",
			Usage:   "Redact loaded datasets with these rule groups. Example: --redact=secrets,pii",
			Sources: cli.EnvVars("CHATVIEW_REDACT"),
		},
		&cli.StringSliceFlag{
			Name:  "allow",
			Usage: "Regex of values never redacted (repeatable)",
		},
	}
}

// newRedactor builds a Redactor for the given rule groups. It returns nil when
// no groups are named, so loading stays a pure normalization by default.
func newRedactor(groups, allowlist []string) (*redact.Redactor, error) {
	if len(groups) == 0 {
		return nil, nil
	}

	cfg := redact.Config{Allowlist: allowlist}
	for _, g := range groups {
		switch strings.TrimSpace(g) {
		case "secrets":
			cfg.Secrets = true
		case "pii":
			cfg.PII = true
		case "all":
			cfg.Secrets = true
			cfg.PII = true
		default:
			return nil, fmt.Errorf("unknown redaction rule %q", g)
		}
	}
	return redact.New(cfg), nil
}

// newLoader returns a Loader that applies the redaction selected on cmd.
func newLoader(cmd *cli.Command) (*loader.Loader, error) {
	if cmd.Bool("no-redact") {
		return &loader.Loader{}, nil
	}
	return loaderWith(cmd.StringSlice("redact"), cmd.StringSlice("allow"))
}

func loaderWith(groups, allowlist []string) (*loader.Loader, error) {
	redactor, err := newRedactor(groups, allowlist)
	if err != nil {
		return nil, err
	}
	l := &loader.Loader{}
	if redactor != nil {
		l.Transformers = []core.Transformer{redactor}
	}
	return l, nil
}
