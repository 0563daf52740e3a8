package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/docsearch/api"
	"github.com/meghashyamc/docsearch/config"
	"github.com/meghashyamc/docsearch/logger"
	"github.com/meghashyamc/docsearch/services/index"
	"github.com/meghashyamc/docsearch/services/search"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type app struct {
	cfg    *config.Config
	logger logger.Logger
}

func main() {
	godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	a := &app{}

	return &cli.App{
		Name:  "docsearch",
		Usage: "Fuzzy search over a documentation site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); defaults to the configured level",
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment to load (config/config.<env>.yaml)",
				EnvVars: []string{"ENV"},
			},
		},
		Before: a.setup,
		Action: a.serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP search API until interrupted",
				Action: a.serveCommand,
			},
			{
				Name:      "query",
				Usage:     "Search the documents and print the ranked results",
				ArgsUsage: "<text>",
				Action:    a.queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "content",
						Aliases: []string{"c"},
						Usage:   "Directory of pages or JSON document list to search instead of the built-in documents",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to print",
						Value: 10,
					},
				},
			},
		},
	}
}

func (a *app) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := strings.ToLower(c.String("log-level"))
	if level == "" {
		level = strings.ToLower(cfg.GetLogLevel())
	}
	if !lo.Contains(logLevels, level) {
		return fmt.Errorf("invalid log level %q: must be one of %s", level, strings.Join(logLevels, ", "))
	}

	a.cfg = cfg
	a.logger = logger.New(level)

	return nil
}

func (a *app) serveCommand(c *cli.Context) error {
	return api.Run(c.Context, a.cfg, a.logger)
}

func (a *app) queryCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("query text is required")
	}

	var documents []search.Document
	if contentPath := c.String("content"); contentPath != "" {
		discovered, err := index.New(a.logger, nil, nil, a.cfg.GetContentURLPrefix(), 0).Discover(contentPath)
		if err != nil {
			return err
		}
		documents = discovered
	}

	results := search.New(a.logger, documents).Query(text)
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "no results")
		return nil
	}

	for _, result := range lo.Slice(results, 0, c.Int("limit")) {
		fmt.Fprintf(c.App.Writer, "%0.3f\t%s\t%s\n", result.Score, result.Title, result.URL)
	}

	return nil
}
