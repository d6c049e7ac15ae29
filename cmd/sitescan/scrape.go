package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sitescan"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	viewport, err := sitescan.ParseViewport(c.Viewport)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescan.ErrorMessage(err))
		return err
	}

	req := sitescan.ScrapeRequest{
		URL:       c.URL,
		MaxHeight: c.MaxHeight,
		WaitTime:  c.Wait,
		Viewport:  viewport,
		OutputDir: c.Output,
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, req)
	if c.JSON && result != nil {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			return encErr
		}
	}
	if err != nil {
		msg := sitescan.ErrorMessage(err)
		if result != nil && result.Error != "" {
			msg = result.Error
		}
		if result != nil && result.FailedStage != "" {
			fmt.Fprintf(deps.Stderr, "error: %s (stage: %s)\n", msg, result.FailedStage)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
		}
		return err
	}
	if c.JSON {
		return nil
	}

	printSummary(deps, result)
	return nil
}

func printSummary(deps *Dependencies, result *sitescan.ScrapeResult) {
	md := result.Metadata
	fmt.Fprintf(deps.Stdout, "Scraped %s\n", md.URL)
	if md.PageTitle != "" {
		fmt.Fprintf(deps.Stdout, "Title:    %s\n", md.PageTitle)
	}
	fmt.Fprintf(deps.Stdout, "Output:   %s\n", result.OutputDir)
	fmt.Fprintf(deps.Stdout, "Captured: %dpx of %.0fpx at %s\n", md.CaptureHeight, md.TotalHeight, md.Viewport)
	if md.Builder != nil {
		fmt.Fprintf(deps.Stdout, "Builder:  %s\n", md.Builder.Builder)
	}

	fmt.Fprintf(deps.Stdout, "Sections: %d\n", len(result.Sections))
	for _, s := range result.Sections {
		category := s.CategoryName()
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(deps.Stdout, "  %2d  %-14s %-40s y=%.0f h=%.0f (%.2f)\n",
			s.Index, category, s.Selector, s.Rect.Top, s.Rect.Height, s.Confidence)
	}

	fmt.Fprintf(deps.Stdout, "Images:   %d found, %d downloaded, %d failed\n",
		md.ImageStats.Total, md.ImageStats.Downloaded, md.ImageStats.Failed)
	fmt.Fprintf(deps.Stdout, "Fonts:    %d\n", md.FontStats.Total)
	fmt.Fprintf(deps.Stdout, "Videos:   %d\n", md.VideoStats.Total)
}
