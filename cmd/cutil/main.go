package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/htmltomarkdown"
	cutilhttp "github.com/fwojciec/cutil/http"
	"github.com/fwojciec/cutil/ratelimit"
	cutilslog "github.com/fwojciec/cutil/slog"
	"github.com/fwojciec/cutil/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Environment file loaded before flags are parsed. Variables already
	// set in the environment win. Empty disables loading.
	EnvFile string

	// Services for end-to-end testing. When nil, HTTP implementations
	// are wired from the parsed flags.
	Fetcher    cutil.Fetcher
	Downloader cutil.Downloader
	Images     cutil.ImageSizer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := m.loadEnv(); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cutil"),
		kong.Description("Fetch, download and file helpers for scraping scripts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cutil --help' to see available commands")
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

	level := slog.LevelError
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Header = cutil.DefaultHeader()
	if cli.UserAgent != "" {
		deps.Header["User-Agent"] = cli.UserAgent
	}

	m.wire(deps, cli)

	report := func(name string, d time.Duration) {
		deps.Logger.Info("command finished", "command", name, "duration", d)
	}
	return cutil.Timeit(report, kongCtx.Command(), func() error {
		return kongCtx.Run(deps)
	})
}

// wire fills deps with services built from the global flags. Services
// preset on Main are used as they are.
func (m *Main) wire(deps *Dependencies, cli *CLI) {
	var opts []cutilhttp.Option
	if cli.Timeout > 0 {
		opts = append(opts, cutilhttp.WithTimeout(cli.Timeout))
	}
	if cli.Get.Repair {
		opts = append(opts, cutilhttp.WithJSONRepair())
	}
	client := cutilhttp.NewFetcher(opts...)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = client
	}
	downloader := m.Downloader
	if downloader == nil {
		downloader = client
	}
	images := m.Images
	if images == nil {
		images = client
	}

	if cli.RateLimit > 0 {
		limiter := ratelimit.NewDomainLimiter(cli.RateLimit)
		rlOpts := []ratelimit.Option{ratelimit.WithLimiter(limiter)}
		if cli.PerHost {
			rlOpts = append(rlOpts, ratelimit.PerHost())
		}
		fetcher = ratelimit.NewFetcher(fetcher, cli.RateLimit, rlOpts...)
		downloader = ratelimit.NewDownloader(downloader, cli.RateLimit, rlOpts...)
		images = ratelimit.NewImageSizer(images, cli.RateLimit, rlOpts...)
	}

	if cli.Verbose {
		fetcher = cutilslog.NewLoggingFetcher(fetcher, deps.Logger)
		downloader = cutilslog.NewLoggingDownloader(downloader, deps.Logger)
	}

	deps.Fetcher = fetcher
	deps.Downloader = downloader
	deps.Images = images
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractor = trafilatura.NewExtractor()
}

func (m *Main) loadEnv() error {
	if m.EnvFile == "" {
		return nil
	}
	if _, err := os.Stat(m.EnvFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(m.EnvFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
	}
	return nil
}
