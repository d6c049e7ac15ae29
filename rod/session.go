package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Session implements sitescan.Session at compile time.
var _ sitescan.Session = (*Session)(nil)

// statusJS reads the HTTP status of the main document, or 0 when the
// browser does not expose it.
const statusJS = `() => {
  try {
    const entries = performance.getEntriesByType("navigation");
    if (entries.length > 0) return entries[0].responseStatus || 0;
  } catch (e) {}
  return 0;
}`

const scrollJS = `(y) => { window.scrollTo(0, y); return JSON.stringify(window.scrollY); }`

// Session drives a single page of a Chrome instance owned by the session.
// Methods other than Close must not be called concurrently.
type Session struct {
	browser    *rod.Browser
	launcher   *launcher.Launcher
	page       *rod.Page
	navTimeout time.Duration

	mu       sync.Mutex
	viewport sitescan.Viewport

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads url and waits for the load event. Timeouts, load failures,
// and non-2xx document responses are ENAVIGATION errors. Cancellation of ctx
// is returned as is.
func (s *Session) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.navTimeout)
	defer cancel()

	p := s.page.Context(navCtx)
	if err := p.Navigate(url); err != nil {
		return s.navigationError(ctx, url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return s.navigationError(ctx, url, err)
	}

	res, err := p.Eval(statusJS)
	if err != nil {
		return s.navigationError(ctx, url, err)
	}
	return CheckStatus(url, res.Value.Int())
}

func (s *Session) navigationError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return sitescan.Errorf(sitescan.ENAVIGATION, "timed out after %s loading %s", s.navTimeout, url)
	}
	return sitescan.Errorf(sitescan.ENAVIGATION, "loading %s: %v", url, err)
}

// CheckStatus returns an ENAVIGATION error for a non-2xx document status.
// A zero status means the browser did not report one and is accepted.
func CheckStatus(url string, status int) error {
	if status == 0 || (status >= 200 && status < 300) {
		return nil
	}
	return sitescan.Errorf(sitescan.ENAVIGATION, "loading %s: HTTP %d", url, status)
}

// Evaluate runs js with args and returns its result. String results are
// returned verbatim; anything else is returned as JSON.
func (s *Session) Evaluate(ctx context.Context, js string, args ...any) (string, error) {
	res, err := s.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return "", fmt.Errorf("evaluating script: %w", err)
	}
	if str, ok := res.Value.Val().(string); ok {
		return str, nil
	}
	return res.Value.JSON("", ""), nil
}

// SetViewport resizes the page at a device scale factor of 1.
func (s *Session) SetViewport(ctx context.Context, v sitescan.Viewport) error {
	err := s.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             v.Width,
		Height:            v.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("setting viewport %dx%d: %w", v.Width, v.Height, err)
	}
	s.mu.Lock()
	s.viewport = v
	s.mu.Unlock()
	return nil
}

// Screenshot captures a PNG of clip clamped to the current viewport, or of
// the whole viewport when clip is nil.
func (s *Session) Screenshot(ctx context.Context, clip *sitescan.Clip) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{
		Format:                proto.PageCaptureScreenshotFormatPng,
		CaptureBeyondViewport: true,
	}
	if clip != nil {
		s.mu.Lock()
		v := s.viewport
		s.mu.Unlock()

		c, ok := sitescan.ClampClip(*clip, v)
		if !ok {
			return nil, sitescan.Errorf(sitescan.ECAPTURE, "screenshot region at y=%.0f is empty", clip.Y)
		}
		req.Clip = &proto.PageViewport{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height, Scale: 1}
	}

	data, err := s.page.Context(ctx).Screenshot(false, req)
	if err != nil {
		return nil, sitescan.Errorf(sitescan.ECAPTURE, "screenshot: %v", err)
	}
	return data, nil
}

// ScrollTo scrolls the page so document offset y is at the top.
func (s *Session) ScrollTo(ctx context.Context, y float64) error {
	if _, err := s.page.Context(ctx).Eval(scrollJS, y); err != nil {
		return fmt.Errorf("scrolling to %.0f: %w", y, err)
	}
	return nil
}

// HTML returns the rendered document markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("reading page html: %w", err)
	}
	return html, nil
}

// Close closes the page and the browser and kills the Chrome process.
// Close is safe to call multiple times; later calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.page != nil {
			_ = s.page.Close()
		}
		if s.browser != nil {
			s.closeErr = s.browser.Close()
		}
		if s.launcher != nil {
			s.launcher.Kill()
		}
	})
	return s.closeErr
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}
