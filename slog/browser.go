// Package slog provides logging decorators for sitescan services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitescan"
)

// Ensure the decorators implement their interfaces.
var (
	_ sitescan.Browser = (*LoggingBrowser)(nil)
	_ sitescan.Session = (*LoggingSession)(nil)
)

// LoggingBrowser wraps a Browser so that launched sessions are logged.
type LoggingBrowser struct {
	next   sitescan.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next sitescan.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Launch logs the launch and wraps the returned session.
func (b *LoggingBrowser) Launch(ctx context.Context, opts sitescan.LaunchOptions) (sess sitescan.Session, err error) {
	defer func(begin time.Time) {
		b.logger.Info("launch",
			"viewport", opts.Viewport.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	sess, err = b.next.Launch(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(sess, b.logger), nil
}

// LoggingSession wraps a Session with logging. Navigation is logged at info
// level; everything else at debug level.
type LoggingSession struct {
	next   sitescan.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next sitescan.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

func (s *LoggingSession) Evaluate(ctx context.Context, js string, args ...any) (res string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("evaluate",
			"bytes", len(res),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Evaluate(ctx, js, args...)
}

func (s *LoggingSession) SetViewport(ctx context.Context, v sitescan.Viewport) (err error) {
	defer func() {
		s.logger.Debug("set viewport", "viewport", v.String(), "err", err)
	}()
	return s.next.SetViewport(ctx, v)
}

func (s *LoggingSession) Screenshot(ctx context.Context, clip *sitescan.Clip) (data []byte, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(data), "duration", time.Since(begin), "err", err}
		if clip != nil {
			attrs = append(attrs, "y", clip.Y, "height", clip.Height)
		}
		s.logger.Debug("screenshot", attrs...)
	}(time.Now())
	return s.next.Screenshot(ctx, clip)
}

func (s *LoggingSession) ScrollTo(ctx context.Context, y float64) error {
	return s.next.ScrollTo(ctx, y)
}

func (s *LoggingSession) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

func (s *LoggingSession) Close() (err error) {
	defer func() {
		s.logger.Debug("close session", "err", err)
	}()
	return s.next.Close()
}
