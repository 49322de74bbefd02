// Command rimas is the operator CLI for the rhyme engine. Every command
// prints JSON on stdout; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yungbote/rimas-backend/internal/app"
	"github.com/yungbote/rimas-backend/internal/config"
	"github.com/yungbote/rimas-backend/internal/ingest"
	"github.com/yungbote/rimas-backend/internal/lyrics"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/platform/shutdown"
	"github.com/yungbote/rimas-backend/internal/rhyme"
	"github.com/yungbote/rimas-backend/internal/semantic/ollama"
	"github.com/yungbote/rimas-backend/internal/validation"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "rimas:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "rimas",
		Usage:   "analyze Portuguese rap lyrics and validate rhyme drills",
		Version: app.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log at debug level to stderr"},
			&cli.StringFlag{Name: "scorer", Usage: "override semantic.scorer (ollama|mock)", EnvVars: []string{"RIMAS_SCORER"}},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			validateCommand(),
			suggestCommand(),
			probeCommand(),
			ingestCommand(),
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "scan a lyric file (or - for stdin) and print its rhyme metrics",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "html", Usage: "treat input as HTML (default: by .html/.htm extension)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("analyze needs exactly one file argument", 2)
			}
			path := c.Args().First()
			raw, err := readInput(c.App.Reader, path)
			if err != nil {
				return err
			}
			doc := ingest.Document{Text: raw}
			if c.Bool("html") || isHTML(path) {
				doc = ingest.Document{HTML: raw}
			}
			text, err := ingest.Text(doc)
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, struct {
				lyrics.Metrics
				EndWords []string `json:"end_words"`
			}{lyrics.Analyze(text), lyrics.EndWords(text)})
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "score a four-verse drill",
		ArgsUsage: "<verse1> <verse2> <verse3> <verse4>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "theme"},
			&cli.StringFlag{Name: "style"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := load(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			engine, err := app.NewEngine(c.Context, cfg, log, app.EngineOptions{})
			if err != nil {
				return err
			}
			defer engine.Close()

			res := engine.Validator.Validate(c.Context, validation.Submission{
				Verses: c.Args().Slice(),
				Theme:  c.String("theme"),
				Style:  c.String("style"),
			})
			return printJSON(c.App.Writer, res)
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "rank candidate words by how well they rhyme with --word",
		ArgsUsage: "[candidates...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "word", Required: true},
			&cli.IntFlag{Name: "limit", Value: 10},
			&cli.BoolFlag{Name: "from-store", Usage: "use stored line-ending vocabulary when no candidates are given"},
		},
		Action: func(c *cli.Context) error {
			candidates := c.Args().Slice()
			if len(candidates) == 0 && c.Bool("from-store") {
				cfg, log, err := load(c)
				if err != nil {
					return err
				}
				defer log.Sync()
				engine, err := app.NewEngine(c.Context, cfg, log, app.EngineOptions{WithStore: true})
				if err != nil {
					return err
				}
				defer engine.Close()
				if candidates, err = engine.Repo.EndWordVocabulary(c.Context, 5000); err != nil {
					return err
				}
			}
			return printJSON(c.App.Writer, rhyme.Suggest(c.String("word"), candidates, c.Int("limit")))
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "check whether the configured Ollama endpoint answers",
		Action: func(c *cli.Context) error {
			cfg, log, err := load(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			client, err := ollama.New(cfg.Ollama)
			if err != nil {
				return err
			}
			out := map[string]any{"base_url": cfg.Ollama.BaseURL, "model": client.Model(), "available": true}
			if err := client.Ping(c.Context); err != nil {
				out["available"] = false
				out["error"] = err.Error()
				_ = printJSON(c.App.Writer, out)
				return cli.Exit("", 1)
			}
			return printJSON(c.App.Writer, out)
		},
	}
}

func ingestCommand() *cli.Command {
	return &cli.Command{
		Name:      "ingest",
		Usage:     "analyze lyric files and store them; file names are read as \"Artist - Title.ext\"",
		ArgsUsage: "<files...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artist", Usage: "artist for every file (overrides the file name)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "analyze without storing"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("ingest needs at least one file", 2)
			}
			cfg, log, err := load(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			docs := make([]ingest.Document, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				artist, title := docIdentity(path)
				if a := c.String("artist"); a != "" {
					artist = a
				}
				doc := ingest.Document{Artist: artist, Title: title}
				if isHTML(path) {
					doc.HTML = string(raw)
				} else {
					doc.Text = string(raw)
				}
				docs = append(docs, doc)
			}

			engine, err := app.NewEngine(c.Context, cfg, log, app.EngineOptions{WithStore: !c.Bool("dry-run")})
			if err != nil {
				return err
			}
			defer engine.Close()

			rep := engine.Pipeline.Run(c.Context, docs)
			if err := printJSON(c.App.Writer, rep); err != nil {
				return err
			}
			if rep.Failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func load(c *cli.Context) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if s := c.String("scorer"); s != "" {
		cfg.Semantic.Scorer = strings.ToLower(s)
	}
	mode := "test"
	if c.Bool("verbose") {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// docIdentity splits "Artist - Title.txt" into its parts; without a
// separator the whole base name is the title.
func docIdentity(path string) (string, string) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if artist, title, ok := strings.Cut(base, " - "); ok {
		return strings.TrimSpace(artist), strings.TrimSpace(title)
	}
	return "unknown", strings.TrimSpace(base)
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		return errors.New("no output writer")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
