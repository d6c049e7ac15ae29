package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/fs"
	"github.com/fwojciec/sitescan/goquery"
	"github.com/fwojciec/sitescan/htmltomarkdown"
	schttp "github.com/fwojciec/sitescan/http"
	"github.com/fwojciec/sitescan/rod"
	"github.com/fwojciec/sitescan/scrape"
	scslog "github.com/fwojciec/sitescan/slog"
	"github.com/fwojciec/sitescan/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. A nil Browser is replaced with the
	// rod implementation.
	Runs    sitescan.RunService
	Browser sitescan.Browser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitescan"),
		kong.Description("Capture and segment web pages into sections, screenshots, and assets"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAMLConfig),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitescan --help' to see available commands")
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

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITESCAN_DB or pass --db to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	if m.Runs == nil {
		m.Runs = sqlite.NewRunService(m.DB)
	}
	deps.Runs = m.Runs

	if strings.HasPrefix(kongCtx.Command(), "scrape") {
		deps.Scraper = m.newScraper(&cli.Scrape, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newScraper wires the production pipeline for the scrape command.
func (m *Main) newScraper(cmd *ScrapeCmd, logger *slog.Logger) *scrape.Scraper {
	browser := m.Browser
	if browser == nil {
		browser = rod.NewBrowser(rod.WithStealth(cmd.Stealth))
	}

	downloaderOpts := []schttp.Option{
		schttp.WithConcurrency(cmd.Concurrency),
		schttp.WithRateLimit(cmd.RateLimit),
	}
	if cmd.UserAgent != "" {
		downloaderOpts = append(downloaderOpts, schttp.WithUserAgent(cmd.UserAgent))
	}

	return &scrape.Scraper{
		Browser:           scslog.NewLoggingBrowser(browser, logger),
		Downloader:        scslog.NewLoggingDownloader(schttp.NewDownloader(downloaderOpts...), logger),
		OpenStore:         fs.NewStore,
		Detector:          scslog.NewLoggingDetector(goquery.NewDetector(), logger),
		Converter:         htmltomarkdown.NewConverter(),
		Runs:              m.Runs,
		Logger:            logger,
		NavigationTimeout: cmd.NavigationTimeout,
		UserAgent:         cmd.UserAgent,
	}
}

func defaultDBPath() string {
	if path := os.Getenv("SITESCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitescan.db"
	}
	dir := filepath.Join(home, ".sitescan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitescan.db")
}
