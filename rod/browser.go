// Package rod implements sitescan.Browser on top of go-rod and a locally
// launched headless Chrome.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitescan"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Browser implements sitescan.Browser at compile time.
var _ sitescan.Browser = (*Browser)(nil)

// Browser launches one headless Chrome per sitescan.Session.
// Browser is safe for concurrent use; sessions are independent.
type Browser struct {
	bin     string
	stealth bool
	flags   []string
}

// Option configures a Browser.
type Option func(*Browser)

// WithStealth injects go-rod/stealth evasions into every new page.
func WithStealth(enabled bool) Option {
	return func(b *Browser) {
		b.stealth = enabled
	}
}

// WithBin sets the Chrome executable. By default rod finds or downloads one.
func WithBin(path string) Option {
	return func(b *Browser) {
		b.bin = path
	}
}

// WithFlag adds a Chrome command-line flag, such as "no-sandbox".
func WithFlag(name string) Option {
	return func(b *Browser) {
		b.flags = append(b.flags, name)
	}
}

// NewBrowser creates a Browser.
func NewBrowser(opts ...Option) *Browser {
	b := &Browser{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Launch starts Chrome, opens a page sized to opts.Viewport, and returns the
// session driving it. Every resource acquired before a failure is released.
func (b *Browser) Launch(ctx context.Context, opts sitescan.LaunchOptions) (sitescan.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = sitescan.DefaultNavigationTimeout
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("hide-scrollbars").
		Leakless(true).
		Headless(true)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}
	for _, flag := range b.flags {
		l = l.Set(flags.Flag(flag))
	}

	u, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s := &Session{
		browser:    browser,
		launcher:   l,
		navTimeout: opts.NavigationTimeout,
	}

	var page *rod.Page
	if b.stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("opening page: %w", err)
	}
	s.page = page

	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("setting user agent: %w", err)
		}
	}
	if err := s.SetViewport(ctx, opts.Viewport); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
