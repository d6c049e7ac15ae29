package sitescan_test

import (
	"testing"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/stretchr/testify/assert"
)

func TestNewRun(t *testing.T) {
	t.Parallel()

	started := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	result := &sitescan.ScrapeResult{
		Success:   true,
		Sections:  make([]sitescan.Section, 5),
		Fonts:     make([]sitescan.Font, 2),
		Videos:    make([]sitescan.Video, 1),
		OutputDir: "scrapes/example.com-20250115-100000",
		Metadata: sitescan.Metadata{
			RunID:      "run-1",
			URL:        "https://www.example.com/",
			Domain:     "www.example.com",
			Timestamp:  started,
			ImageStats: sitescan.AssetStats{Total: 3, Downloaded: 2, Failed: 1},
		},
	}

	run := sitescan.NewRun(result)

	assert.Equal(t, &sitescan.Run{
		ID:        "run-1",
		URL:       "https://www.example.com/",
		Domain:    "www.example.com",
		OutputDir: "scrapes/example.com-20250115-100000",
		Success:   true,
		Sections:  5,
		Images:    sitescan.AssetStats{Total: 3, Downloaded: 2, Failed: 1},
		Fonts:     2,
		Videos:    1,
		CreatedAt: started,
	}, run)
}

func TestNewRun_Builder(t *testing.T) {
	t.Parallel()

	result := &sitescan.ScrapeResult{
		OutputDir: "out",
		Metadata: sitescan.Metadata{
			URL:       "https://example.com/",
			PageTitle: "Acme",
			Builder:   &sitescan.BuilderReport{Detected: true, Builder: sitescan.BuilderFramer},
		},
	}

	run := sitescan.NewRun(result)

	assert.Equal(t, "Acme", run.Title)
	assert.Equal(t, sitescan.BuilderFramer, run.Builder)
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&sitescan.Run{URL: "https://example.com", OutputDir: "out"}).Validate())
	assert.Equal(t, sitescan.EINVALID, sitescan.ErrorCode((&sitescan.Run{OutputDir: "out"}).Validate()))
	assert.Equal(t, sitescan.EINVALID, sitescan.ErrorCode((&sitescan.Run{URL: "https://example.com"}).Validate()))
}
