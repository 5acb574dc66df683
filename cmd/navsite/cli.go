package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/MrSnakeDoc/navsite/internal/app"
	"github.com/MrSnakeDoc/navsite/internal/config"
	"github.com/MrSnakeDoc/navsite/internal/importer"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	"github.com/MrSnakeDoc/navsite/internal/slug"
	"github.com/MrSnakeDoc/navsite/internal/sources/legacyhtml"
	"github.com/MrSnakeDoc/navsite/internal/version"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "navsite",
		Usage:   "Navigation site: bookmark import and serving",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"NAV_LOG_LEVEL"}, Usage: "debug|info|warn|error"},
			&cli.BoolFlag{Name: "pretty-log", Value: true, EnvVars: []string{"NAV_PRETTY_LOG"}, Usage: "Human readable logs instead of JSON"},
		},
		Commands: []*cli.Command{
			importCmd(),
			serveCmd(),
			slugCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func newLogger(c *cli.Context) logger.Logger {
	return logger.New(c.String("log-level"), c.Bool("pretty-log"))
}

// importCmd creates the import command.
func importCmd() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Merge a bookmark export into sites.json",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Value: "data.txt", EnvVars: []string{"NAV_IMPORT_SOURCE"}, Usage: "Export file to read"},
			&cli.StringFlag{Name: "sites", Value: "src/config/sites.json", EnvVars: []string{"NAV_SITES_FILE"}, Usage: "sites.json to merge into"},
			&cli.StringFlag{Name: "root", Value: ".", EnvVars: []string{"NAV_IMPORT_ROOT"}, Usage: "Project root local icons are looked up under"},
			&cli.StringFlag{Name: "from", Aliases: []string{"f"}, Value: string(importer.FormatLegacy), Usage: "Export format: legacy|homepage-services|homepage-bookmarks"},
			&cli.StringFlag{Name: "placeholder-icon", Usage: "Icon for sites without a resolvable icon"},
			&cli.StringFlag{Name: "heading", Value: legacyhtml.DefaultHeadingSelector, Usage: "Category heading selector (legacy)"},
			&cli.StringFlag{Name: "container", Value: legacyhtml.DefaultContainerSelector, Usage: "Card container selector (legacy)"},
			&cli.StringFlag{Name: "card", Value: legacyhtml.DefaultCardSelector, Usage: "Site card selector (legacy)"},
			&cli.BoolFlag{Name: "drop-empty-url", Usage: "Skip cards without a link target"},
			&cli.BoolFlag{Name: "stable-ids", Usage: "Let replaced categories keep their site ids"},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "Print the report without writing sites.json"},
		},
		Action: func(c *cli.Context) error {
			opts := importer.Options{
				SourcePath:      c.String("source"),
				SitesPath:       c.String("sites"),
				Root:            c.String("root"),
				Format:          importer.Format(c.String("from")),
				PlaceholderIcon: c.String("placeholder-icon"),
				Legacy: legacyhtml.Options{
					HeadingSelector:   c.String("heading"),
					ContainerSelector: c.String("container"),
					CardSelector:      c.String("card"),
					DropEmptyURL:      c.Bool("drop-empty-url"),
				},
				StableIDs: c.Bool("stable-ids"),
				DryRun:    c.Bool("dry-run"),
			}

			log := newLogger(c)
			defer func() { _ = log.Sync() }()

			result, err := importer.New(log).Run(c.Context, opts)
			if err != nil {
				if errors.Is(err, importer.ErrMissingInput) {
					return cli.Exit(fmt.Sprintf("input file not found: %s", opts.SourcePath), 1)
				}
				return cli.Exit(err.Error(), 1)
			}

			if result.Report == nil {
				fmt.Fprintln(c.App.Writer, "No categories found, nothing to import")
				return nil
			}
			fmt.Fprint(c.App.Writer, result.Report.Summary())
			if !result.Written {
				fmt.Fprintf(c.App.Writer, "Dry run: %s not written\n", opts.SitesPath)
			}
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the navigation page, jump redirects and the read API (configured via NAV_* env)",
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			applyLogFlags(c, cfg)
			log := logger.New(cfg.LogLevel, cfg.PrettyLog)
			defer func() { _ = log.Sync() }()

			ctx := c.Context
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return a.Run(ctx)
		},
	}
}

// applyLogFlags lets explicitly set global log flags win over the env config.
func applyLogFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("pretty-log") {
		cfg.PrettyLog = c.Bool("pretty-log")
	}
}

// slugCmd creates the slug command.
func slugCmd() *cli.Command {
	return &cli.Command{
		Name:      "slug",
		Usage:     "Print the identifier a name normalizes to",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("text argument is required", 1)
			}
			for _, arg := range c.Args().Slice() {
				fmt.Fprintln(c.App.Writer, slug.Normalize(arg))
			}
			return nil
		},
	}
}
