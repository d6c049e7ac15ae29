package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sitescan"
	main "github.com/fwojciec/sitescan/cmd/sitescan"
	"github.com/fwojciec/sitescan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with ID, status, and URL", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ sitescan.RunFilter) ([]*sitescan.Run, error) {
				return []*sitescan.Run{
					{
						ID:        "run-123",
						URL:       "https://example.com/",
						OutputDir: "scrapes/example.com-20250115-100000",
						Title:     "Example Domain",
						Builder:   sitescan.BuilderWebflow,
						Success:   true,
						Sections:  7,
						CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "run-456",
						URL:       "https://acme.io/",
						OutputDir: "scrapes/acme.io-20250116-110000",
						Error:     "timed out after 60s",
						CreatedAt: time.Date(2025, 1, 16, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.HistoryCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "run-123")
		assert.Contains(t, output, "7 sections")
		assert.Contains(t, output, "Example Domain [webflow]")
		assert.Contains(t, output, "https://acme.io/")
		assert.Contains(t, output, "failed")
		assert.Contains(t, output, "timed out after 60s")
	})

	t.Run("passes domain, status, and limit filters", func(t *testing.T) {
		t.Parallel()

		var got sitescan.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter sitescan.RunFilter) ([]*sitescan.Run, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		err := (&main.HistoryCmd{Domain: "example.com", Failed: true, Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Domain)
		assert.Equal(t, "example.com", *got.Domain)
		require.NotNil(t, got.Success)
		assert.False(t, *got.Success)
		assert.Equal(t, 5, got.Limit)
	})

	t.Run("shows helpful message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ sitescan.RunFilter) ([]*sitescan.Run, error) {
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs")
	})

	t.Run("returns error when FindRuns fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ sitescan.RunFilter) ([]*sitescan.Run, error) {
				return nil, dbErr
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.HistoryCmd{}).Run(deps)

		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("shows a single run by ID", func(t *testing.T) {
		t.Parallel()

		var gotID string
		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*sitescan.Run, error) {
				gotID = id
				return &sitescan.Run{
					ID:        "run-123",
					URL:       "https://example.com/",
					OutputDir: "scrapes/example.com-20250115-100000",
					Title:     "Example Domain",
					Builder:   sitescan.BuilderWebflow,
					Success:   true,
					Sections:  7,
					Images:    sitescan.AssetStats{Total: 5, Downloaded: 4, Failed: 1},
					Fonts:     2,
					CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
				}, nil
			},
			FindRunsFn: func(_ context.Context, _ sitescan.RunFilter) ([]*sitescan.Run, error) {
				t.Fatal("FindRuns should not be called")
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.HistoryCmd{ID: "run-123"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-123", gotID)
		output := stdout.String()
		assert.Contains(t, output, "Run:      run-123")
		assert.Contains(t, output, "Status:   ok")
		assert.Contains(t, output, "Builder:  webflow")
		assert.Contains(t, output, "Images:   5 found, 4 downloaded, 1 failed")
		assert.Contains(t, output, "Fonts:    2")
	})

	t.Run("reports unknown run ID", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, _ string) (*sitescan.Run, error) {
				return nil, sitescan.Errorf(sitescan.ENOTFOUND, "run not found")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.HistoryCmd{ID: "missing"}).Run(deps)

		assert.Equal(t, sitescan.ENOTFOUND, sitescan.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: run not found")
	})
}
