package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitescan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	filter := sitescan.RunFilter{Limit: c.Limit}
	if c.Domain != "" {
		filter.Domain = &c.Domain
	}
	if c.Failed {
		success := false
		filter.Success = &success
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescan.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'sitescan scrape' to create one.")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-6s  %2d sections  %s  %s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), status, r.Sections, r.URL, r.OutputDir)
		if r.Title != "" || r.Builder != "" {
			fmt.Fprintf(deps.Stdout, "    %s", r.Title)
			if r.Builder != "" {
				fmt.Fprintf(deps.Stdout, " [%s]", r.Builder)
			}
			fmt.Fprintln(deps.Stdout)
		}
		if r.Error != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", r.Error)
		}
	}

	return nil
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	r, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitescan.ErrorMessage(err))
		return err
	}

	status := "ok"
	if !r.Success {
		status = "failed"
	}
	fmt.Fprintf(deps.Stdout, "Run:      %s\n", r.ID)
	fmt.Fprintf(deps.Stdout, "URL:      %s\n", r.URL)
	fmt.Fprintf(deps.Stdout, "Date:     %s\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(deps.Stdout, "Status:   %s\n", status)
	if r.Error != "" {
		fmt.Fprintf(deps.Stdout, "Error:    %s\n", r.Error)
	}
	if r.Title != "" {
		fmt.Fprintf(deps.Stdout, "Title:    %s\n", r.Title)
	}
	if r.Builder != "" {
		fmt.Fprintf(deps.Stdout, "Builder:  %s\n", r.Builder)
	}
	fmt.Fprintf(deps.Stdout, "Output:   %s\n", r.OutputDir)
	fmt.Fprintf(deps.Stdout, "Sections: %d\n", r.Sections)
	fmt.Fprintf(deps.Stdout, "Images:   %d found, %d downloaded, %d failed\n",
		r.Images.Total, r.Images.Downloaded, r.Images.Failed)
	fmt.Fprintf(deps.Stdout, "Fonts:    %d\n", r.Fonts)
	fmt.Fprintf(deps.Stdout, "Videos:   %d\n", r.Videos)
	return nil
}
