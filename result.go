package sitescan

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Defaults for a scrape request.
const (
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 900
	DefaultMaxHeight      = 5400
	DefaultWaitTime       = 3000 * time.Millisecond
)

// Viewport is a browser window size in CSS pixels.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// String formats v as WIDTHxHEIGHT.
func (v Viewport) String() string {
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

// ParseViewport parses a WIDTHxHEIGHT string such as "1440x900".
func ParseViewport(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Viewport{}, Errorf(EINVALID, "viewport must be WIDTHxHEIGHT: %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Viewport{}, Errorf(EINVALID, "invalid viewport width: %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Viewport{}, Errorf(EINVALID, "invalid viewport height: %q", s)
	}
	return Viewport{Width: width, Height: height}, nil
}

// ScrapeRequest describes one page to analyze. Zero values select defaults.
type ScrapeRequest struct {
	URL       string        `json:"url"`
	MaxHeight int           `json:"maxHeight,omitempty"`
	WaitTime  time.Duration `json:"waitTime,omitempty"`
	Viewport  Viewport      `json:"viewport,omitempty"`
	OutputDir string        `json:"outputDir,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ScrapeRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "scrape URL required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "scrape URL must be an absolute http(s) URL: %q", r.URL)
	}
	if r.MaxHeight < 0 {
		return Errorf(EINVALID, "max height must not be negative")
	}
	if r.WaitTime < 0 {
		return Errorf(EINVALID, "wait time must not be negative")
	}
	if r.Viewport.Width < 0 || r.Viewport.Height < 0 {
		return Errorf(EINVALID, "viewport dimensions must not be negative")
	}
	return nil
}

// WithDefaults returns a copy of r with zero fields replaced by defaults.
// OutputDir is left untouched.
func (r ScrapeRequest) WithDefaults() ScrapeRequest {
	if r.MaxHeight == 0 {
		r.MaxHeight = DefaultMaxHeight
	}
	if r.WaitTime == 0 {
		r.WaitTime = DefaultWaitTime
	}
	if r.Viewport.Width == 0 {
		r.Viewport.Width = DefaultViewportWidth
	}
	if r.Viewport.Height == 0 {
		r.Viewport.Height = DefaultViewportHeight
	}
	return r
}

// Metadata describes a finished scrape.
type Metadata struct {
	RunID         string         `json:"runId"`
	URL           string         `json:"url"`
	Domain        string         `json:"domain"`
	Timestamp     time.Time      `json:"timestamp"`
	PageTitle     string         `json:"pageTitle"`
	TotalHeight   float64        `json:"totalHeight"`
	CaptureHeight int            `json:"captureHeight"`
	Viewport      Viewport       `json:"viewport"`
	ImageStats    AssetStats     `json:"imageStats"`
	FontStats     AssetStats     `json:"fontStats"`
	VideoStats    AssetStats     `json:"videoStats"`
	Builder       *BuilderReport `json:"builder,omitempty"`
}

// ScrapeResult is the outcome of one scrape. It is created once at the end
// of a run and not modified afterwards.
type ScrapeResult struct {
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	FailedStage string    `json:"failedStage,omitempty"`
	Sections    []Section `json:"sections"`
	Images      []Image   `json:"images"`
	Fonts       []Font    `json:"fonts"`
	Videos      []Video   `json:"videos"`
	Metadata    Metadata  `json:"metadata"`
	OutputDir   string    `json:"outputDir"`
}
