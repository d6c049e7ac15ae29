package sitescan

import (
	"context"
	"math"
	"time"
)

// DefaultNavigationTimeout bounds Session.Navigate when the caller's context
// has no earlier deadline.
const DefaultNavigationTimeout = 60 * time.Second

// LaunchOptions configures a browser session.
type LaunchOptions struct {
	Viewport          Viewport
	NavigationTimeout time.Duration
	UserAgent         string
}

// Browser launches headless browser sessions.
type Browser interface {
	// Launch starts a browser with a single page sized to opts.Viewport.
	// The returned Session must be closed by the caller.
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Clip is a screenshot region in document coordinates.
type Clip struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Session drives one page of a headless browser. Everything above the
// driver interacts with the page only through these primitives.
type Session interface {
	// Navigate loads url and waits for the load event. It returns an
	// ENAVIGATION error on timeout or when the final response is not 2xx.
	Navigate(ctx context.Context, url string) error

	// Evaluate runs a JavaScript function expression in the page with args
	// and returns its result, which by convention is a JSON string.
	// Scripts must not rely on state left behind by earlier calls.
	Evaluate(ctx context.Context, js string, args ...any) (string, error)

	// SetViewport resizes the page.
	SetViewport(ctx context.Context, v Viewport) error

	// Screenshot captures a PNG of clip, or of the viewport when clip is nil.
	// The driver clamps clip to the current viewport before capturing and
	// returns an ECAPTURE error when nothing is left.
	Screenshot(ctx context.Context, clip *Clip) ([]byte, error)

	// ScrollTo scrolls the page so that document offset y is at the top.
	ScrollTo(ctx context.Context, y float64) error

	// HTML returns the rendered document markup.
	HTML(ctx context.Context) (string, error)

	// Close releases the page and the browser. It is safe to call more
	// than once.
	Close() error
}

// ClampClip restricts clip to a viewport of v, whose height is the current
// capture height. It reports false when the clamped region is empty.
func ClampClip(clip Clip, v Viewport) (Clip, bool) {
	clip.X = math.Max(0, clip.X)
	clip.Y = math.Max(0, clip.Y)
	clip.Width = math.Min(clip.Width, float64(v.Width)-clip.X)
	clip.Height = math.Min(math.Ceil(clip.Height), float64(v.Height)-clip.Y)
	if clip.Width <= 0 || clip.Height <= 0 {
		return clip, false
	}
	return clip, true
}
