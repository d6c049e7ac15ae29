package sitescan

import (
	"context"
	"time"
)

// Run is the history record of one scrape.
type Run struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Domain    string     `json:"domain"`
	Title     string     `json:"title,omitempty"`
	Builder   Builder    `json:"builder,omitempty"`
	OutputDir string     `json:"outputDir"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Sections  int        `json:"sections"`
	Images    AssetStats `json:"images"`
	Fonts     int        `json:"fonts"`
	Videos    int        `json:"videos"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewRun builds the history record of a scrape result.
func NewRun(result *ScrapeResult) *Run {
	run := &Run{
		ID:        result.Metadata.RunID,
		URL:       result.Metadata.URL,
		Domain:    result.Metadata.Domain,
		OutputDir: result.OutputDir,
		Success:   result.Success,
		Error:     result.Error,
		Sections:  len(result.Sections),
		Images:    result.Metadata.ImageStats,
		Fonts:     len(result.Fonts),
		Videos:    len(result.Videos),
		CreatedAt: result.Metadata.Timestamp,
	}
	run.Title = result.Metadata.PageTitle
	if b := result.Metadata.Builder; b != nil && b.Detected {
		run.Builder = b.Builder
	}
	return run
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "run URL required")
	}
	if r.OutputDir == "" {
		return Errorf(EINVALID, "run output directory required")
	}
	return nil
}

// RunService records scrape history.
type RunService interface {
	// CreateRun stores a run. An empty ID is replaced with a generated one.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Domain  *string `json:"domain"`
	Success *bool   `json:"success"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
