package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitescan"
)

// Ensure LoggingDetector implements sitescan.BuilderDetector.
var _ sitescan.BuilderDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a BuilderDetector with logging of the detected builder.
type LoggingDetector struct {
	next   sitescan.BuilderDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next sitescan.BuilderDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the result.
func (d *LoggingDetector) Detect(html string) *sitescan.BuilderReport {
	begin := time.Now()
	report := d.next.Detect(html)

	builder := "(unknown)"
	hints := 0
	if report != nil && report.Detected {
		builder = string(report.Builder)
		hints = len(report.Hints)
	}
	d.logger.Info("builder detection",
		"builder", builder,
		"hints", hints,
		"duration", time.Since(begin),
	)
	return report
}
