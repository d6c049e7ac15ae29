package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Runs    sitescan.RunService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `short:"C" help:"Load flag defaults from a YAML file"`
	DB      string          `help:"SQLite history database path (default: $SITESCAN_DB or ~/.sitescan/sitescan.db)"`
	Verbose bool            `short:"v" help:"Enable debug logging"`

	Scrape  ScrapeCmd  `cmd:"" help:"Capture and segment a web page"`
	History HistoryCmd `cmd:"" help:"List previous scrape runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL               string        `arg:"" help:"Page URL to analyze"`
	Output            string        `short:"o" help:"Output directory (default: ./scrapes/{site}-{timestamp})"`
	MaxHeight         int           `default:"5400" help:"Maximum capture height in pixels"`
	Wait              time.Duration `short:"w" default:"3s" help:"Settle time after page load"`
	Viewport          string        `default:"1440x900" help:"Viewport size as WIDTHxHEIGHT"`
	NavigationTimeout time.Duration `default:"60s" help:"Page navigation timeout"`
	UserAgent         string        `help:"Override the browser and download user agent"`
	Stealth           bool          `help:"Open the page with automation fingerprints hidden"`
	Concurrency       int           `short:"c" default:"6" help:"Concurrent image downloads"`
	RateLimit         float64       `default:"0" help:"Image requests per second per host (0 disables)"`
	JSON              bool          `help:"Print the full result as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID     string `arg:"" optional:"" help:"Show a single run in detail"`
	Domain string `short:"d" help:"Only show runs for this domain"`
	Failed bool   `help:"Only show failed runs"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs to show"`
}
