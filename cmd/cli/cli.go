package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/Irdis/rsqlcmd/internal/config"
	"github.com/Irdis/rsqlcmd/internal/db"
	"github.com/Irdis/rsqlcmd/internal/export"
	"github.com/Irdis/rsqlcmd/internal/locale"
	"github.com/Irdis/rsqlcmd/internal/render"

	"github.com/urfave/cli-altsrc/v3"
	toml "github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var outputFormats = []string{"text", "insert"}

func validateOutputFormat(format string, l *locale.Locale) error {
	if !slices.Contains(outputFormats, strings.ToLower(format)) {
		return fmt.Errorf(l.Errors.UnknownFormat, format)
	}
	return nil
}

// scriptText resolves the script argument: a readable file is loaded,
// anything else is taken as inline SQL.
func scriptText(ctx context.Context, arg string, l *locale.Locale) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		raw, err := os.ReadFile(arg)
		if err != nil {
			return "", err
		}
		slog.InfoContext(ctx, l.Logs.ScriptFromFile, "path", arg)
		return string(raw), nil
	}
	slog.InfoContext(ctx, l.Logs.ScriptInline)
	return arg, nil
}

func Rsqlcmd(cfg *config.Config) {
	var environment string
	var configPath string
	var connection string
	var outputFormat string
	var noNewlines bool

	l, err := locale.Load(cfg.Locale)
	if err != nil {
		log.Fatal(err)
	}

	environments := []string{"production", "replica", "staging"}

	openConnection := func(ctx context.Context) (*db.Manager, *db.Connection, error) {
		mgr := db.NewManager()
		mgr.Load(cfg, environment)
		conn, err := mgr.Get(connection)
		if err != nil {
			mgr.Close()
			return nil, nil, err
		}
		return mgr, conn, nil
	}

	cmd := &cli.Command{
		Name:        "rsqlcmd",
		Description: l.CLI.Description,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "./config/config.toml",
				Usage:       l.CLI.Flags.Config,
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "environment",
				Aliases:     []string{"e"},
				Value:       "replica",
				Usage:       l.CLI.Flags.Environment,
				Destination: &environment,
				Sources: cli.NewValueSourceChain(
					toml.TOML("environment", altsrc.NewStringPtrSourcer(&configPath))),
				Action: func(ctx context.Context, c *cli.Command, s string) error {
					if !slices.Contains(environments, strings.ToLower(s)) {
						return fmt.Errorf("%s", l.Errors.InvalidEnvironment)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:        "connection",
				Aliases:     []string{"c"},
				Usage:       l.CLI.Flags.Connection,
				Destination: &connection,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				ArgsUsage: l.CLI.Args.Run,
				Usage:     l.CLI.Commands.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   l.CLI.Flags.Format,
						Action: func(ctx context.Context, c *cli.Command, s string) error {
							return validateOutputFormat(s, l)
						},
						Destination: &outputFormat,
					},
					&cli.BoolFlag{
						Name:        "no-newlines",
						Usage:       l.CLI.Flags.NoNewlines,
						Destination: &noNewlines,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					arg := c.Args().Get(0)
					if arg == "" {
						return fmt.Errorf("%s", l.Errors.MissingScript)
					}
					text, err := scriptText(ctx, arg, l)
					if err != nil {
						return err
					}

					mgr, conn, err := openConnection(ctx)
					if err != nil {
						return err
					}
					defer mgr.Close()

					var renderer db.Renderer
					switch strings.ToLower(outputFormat) {
					case "text":
						renderer = render.NewTabular(os.Stdout, noNewlines)
					case "insert":
						renderer = render.NewInsert(os.Stdout, noNewlines)
					default:
						return fmt.Errorf(l.Errors.UnknownFormat, outputFormat)
					}

					return db.NewExecutor(conn, renderer).Run(ctx, text)
				},
			},
			{
				Name:      "export",
				ArgsUsage: l.CLI.Args.Export,
				Usage:     l.CLI.Commands.Export,
				Action: func(ctx context.Context, c *cli.Command) error {
					arg := c.Args().Get(0)
					if arg == "" {
						return fmt.Errorf("%s", l.Errors.MissingScript)
					}
					savePath := c.Args().Get(1)
					if savePath == "" {
						return fmt.Errorf("%s", l.Errors.MissingOutput)
					}
					text, err := scriptText(ctx, arg, l)
					if err != nil {
						return err
					}

					mgr, conn, err := openConnection(ctx)
					if err != nil {
						return err
					}
					defer mgr.Close()

					wb, err := export.NewWorkbook()
					if err != nil {
						return err
					}
					if err := db.NewExecutor(conn, wb).Run(ctx, text); err != nil {
						return err
					}
					if err := wb.Save(savePath); err != nil {
						return err
					}
					slog.InfoContext(ctx, l.Logs.SavedWorkbook, "path", savePath)
					return nil
				},
			},
			{
				Name:  "check",
				Usage: l.CLI.Commands.Check,
				Action: func(ctx context.Context, c *cli.Command) error {
					mgr := db.NewManager()
					mgr.Load(cfg, environment)
					defer mgr.Close()

					for _, name := range mgr.Names() {
						conn, err := mgr.Get(name)
						if err == nil {
							err = conn.Ping(ctx, cfg.MaxRetries)
						}
						if err != nil {
							fmt.Printf("%s: %v\n", name, err)
						} else {
							fmt.Printf("%s: ok\n", name)
						}
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
