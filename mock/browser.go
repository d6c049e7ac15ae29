package mock

import (
	"context"

	"github.com/fwojciec/sitescan"
)

var (
	_ sitescan.Browser = (*Browser)(nil)
	_ sitescan.Session = (*Session)(nil)
)

// Browser is a mock implementation of sitescan.Browser.
type Browser struct {
	LaunchFn func(ctx context.Context, opts sitescan.LaunchOptions) (sitescan.Session, error)
}

func (b *Browser) Launch(ctx context.Context, opts sitescan.LaunchOptions) (sitescan.Session, error) {
	return b.LaunchFn(ctx, opts)
}

// Session is a mock implementation of sitescan.Session.
type Session struct {
	NavigateFn    func(ctx context.Context, url string) error
	EvaluateFn    func(ctx context.Context, js string, args ...any) (string, error)
	SetViewportFn func(ctx context.Context, v sitescan.Viewport) error
	ScreenshotFn  func(ctx context.Context, clip *sitescan.Clip) ([]byte, error)
	ScrollToFn    func(ctx context.Context, y float64) error
	HTMLFn        func(ctx context.Context) (string, error)
	CloseFn       func() error
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *Session) Evaluate(ctx context.Context, js string, args ...any) (string, error) {
	return s.EvaluateFn(ctx, js, args...)
}

func (s *Session) SetViewport(ctx context.Context, v sitescan.Viewport) error {
	return s.SetViewportFn(ctx, v)
}

func (s *Session) Screenshot(ctx context.Context, clip *sitescan.Clip) ([]byte, error) {
	return s.ScreenshotFn(ctx, clip)
}

func (s *Session) ScrollTo(ctx context.Context, y float64) error {
	return s.ScrollToFn(ctx, y)
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *Session) Close() error {
	return s.CloseFn()
}
