// Package scrape runs the page analysis pipeline: it drives one browser
// session through loading, capture, segmentation, and asset extraction, and
// persists every artifact of the run.
package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/segment"
	"github.com/google/uuid"
)

// DefaultSectionSettle is the delay after scrolling to a section before it
// is captured.
const DefaultSectionSettle = 300 * time.Millisecond

// Stage names a state of the pipeline. A failed run reports the stage it
// was trying to reach.
type Stage string

// Pipeline stages, in order.
const (
	StageLaunching        Stage = "launching"
	StageLoaded           Stage = "loaded"
	StageCaptured         Stage = "captured"
	StageAnalyzed         Stage = "analyzed"
	StageSectionsCaptured Stage = "sections_captured"
	StageAssetsExtracted  Stage = "assets_extracted"
	StageFinalized        Stage = "finalized"
)

// Scraper analyzes pages. Browser, Downloader and OpenStore are required;
// the remaining fields are optional.
//
// A Scraper holds no per-run state and may run scrapes concurrently; each
// run owns its own session and output directory.
type Scraper struct {
	Browser    sitescan.Browser
	Downloader sitescan.ImageDownloader
	OpenStore  sitescan.StoreFactory

	// Detector, when set, detects page builders and reinforces section
	// categories with builder element names.
	Detector sitescan.BuilderDetector
	// Converter, when set, renders each section's HTML as Section.Text.
	Converter sitescan.Converter
	// Segmenter defaults to segment.NewSegmenter with default config.
	Segmenter *segment.Segmenter
	// Runs, when set, records a history entry for every finished run.
	Runs sitescan.RunService
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// SectionSettle defaults to DefaultSectionSettle.
	SectionSettle time.Duration
	// NavigationTimeout defaults to sitescan.DefaultNavigationTimeout.
	NavigationTimeout time.Duration
	// UserAgent overrides the browser's user agent when set.
	UserAgent string

	// Now and NewID are replaced in tests.
	Now   func() time.Time
	NewID func() string
}

// Scrape analyzes the page at req.URL. It always returns a result. When the
// run fails the result has Success=false and the error is returned as well;
// per-section capture problems and per-asset download failures never fail
// a run. The browser session is closed exactly once on every path.
func (s *Scraper) Scrape(ctx context.Context, req sitescan.ScrapeRequest) (*sitescan.ScrapeResult, error) {
	r := s.newRun(req)
	result, err := r.execute(ctx)
	s.record(ctx, r.logger, result)
	return result, err
}

func (s *Scraper) newRun(req sitescan.ScrapeRequest) *run {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	newID := uuid.NewString
	if s.NewID != nil {
		newID = s.NewID
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	segmenter := s.Segmenter
	if segmenter == nil {
		segmenter = segment.NewSegmenter(segment.Config{}, nil)
	}
	settle := s.SectionSettle
	if settle <= 0 {
		settle = DefaultSectionSettle
	}
	navTimeout := s.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = sitescan.DefaultNavigationTimeout
	}

	id := newID()
	return &run{
		scraper:    s,
		req:        req,
		id:         id,
		started:    now().UTC(),
		segmenter:  segmenter,
		settle:     settle,
		navTimeout: navTimeout,
		logger:     logger.With("run", id, "url", req.URL),
	}
}

// record stores the history entry of a finished run. Failures are logged.
func (s *Scraper) record(ctx context.Context, logger *slog.Logger, result *sitescan.ScrapeResult) {
	if s.Runs == nil || result.OutputDir == "" {
		return
	}
	if err := s.Runs.CreateRun(context.WithoutCancel(ctx), sitescan.NewRun(result)); err != nil {
		logger.Warn("record run", "err", err)
	}
}
