package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescan"
)

// Ensure LoggingDownloader implements sitescan.ImageDownloader.
var _ sitescan.ImageDownloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps an ImageDownloader and logs each batch with its
// outcome counts. Individual failures are logged at debug level.
type LoggingDownloader struct {
	next   sitescan.ImageDownloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next sitescan.ImageDownloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// DownloadImages delegates to the wrapped downloader and logs the batch.
func (d *LoggingDownloader) DownloadImages(ctx context.Context, images []sitescan.Image, store sitescan.ArtifactStore) (err error) {
	defer func(begin time.Time) {
		for i := range images {
			if images[i].Error != "" {
				d.logger.Debug("image failed", "url", images[i].OriginalURL, "err", images[i].Error)
			}
		}
		stats := sitescan.ImageStats(images)
		d.logger.Info("download images",
			"total", stats.Total,
			"downloaded", stats.Downloaded,
			"failed", stats.Failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DownloadImages(ctx, images, store)
}
