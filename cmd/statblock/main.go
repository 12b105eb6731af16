package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
	"github.com/fwojciec/statblock/goquery"
	sbhttp "github.com/fwojciec/statblock/http"
	sbslog "github.com/fwojciec/statblock/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by extract when no file is given.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("statblock"),
		kong.Description("Extract structured stat blocks from Archives of Nethys pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'statblock --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set STATBLOCK_CONFIG or --config to a valid YAML file")
		return err
	}
	cli.Fetch.apply(&cfg)

	urls, err := cfg.KindURLs()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fetcher statblock.Fetcher = sbhttp.NewFetcher(
		sbhttp.WithTimeout(cfg.Timeout),
		sbhttp.WithUserAgent(cfg.UserAgent),
	)
	fetcher = archive.NewLimitedFetcher(fetcher, archive.NewHostLimiter(cfg.Rate))
	fetcher = sbslog.NewLoggingFetcher(fetcher, logger)

	opts := []archive.RetrieverOption{archive.WithContainer(cfg.Container)}
	for kind, base := range urls {
		opts = append(opts, archive.WithURL(kind, base))
	}
	retriever := sbslog.NewLoggingRetriever(archive.NewRetriever(fetcher, opts...), logger)

	deps.Logger = logger
	deps.Config = cfg
	deps.Resolver = archive.NewResolver(retriever)
	deps.Extractor = sbslog.NewLoggingExtractor(goquery.NewAssembler(), logger)
	if strings.HasPrefix(kongCtx.Command(), "fetch") {
		deps.Scraper = &archive.Scraper{
			Resolver:    deps.Resolver,
			Extractor:   deps.Extractor,
			Concurrency: cfg.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}
