// Package http downloads page assets over HTTP.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitescan"
	"golang.org/x/sync/errgroup"
)

// Download defaults.
const (
	DefaultConcurrency = 6
	DefaultTimeout     = 20 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// DefaultMaxBytes bounds the size of a single image body.
	DefaultMaxBytes = 25 << 20
)

// ImageDir is the artifact directory images are written to.
const ImageDir = "images"

// Ensure Downloader implements sitescan.ImageDownloader at compile time.
var _ sitescan.ImageDownloader = (*Downloader)(nil)

// Downloader fetches images with bounded concurrency. Each image succeeds or
// fails on its own; a failure never cancels its siblings.
type Downloader struct {
	client      *http.Client
	concurrency int
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	limiter     *HostLimiter
	retryDelays []time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithConcurrency sets the number of simultaneous downloads.
// Defaults to DefaultConcurrency (6) if not specified.
func WithConcurrency(n int) Option {
	return func(d *Downloader) {
		d.concurrency = n
	}
}

// WithTimeout sets the per-image timeout.
// Defaults to DefaultTimeout (20s) if not specified.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Downloader) {
		d.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per second per host.
func WithRateLimit(rps float64) Option {
	return func(d *Downloader) {
		d.limiter = NewHostLimiter(rps)
	}
}

// WithRetryDelays retries transient failures once per delay.
// No retries are made by default.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(d *Downloader) {
		d.retryDelays = delays
	}
}

// WithClient sets the HTTP client used for requests.
func WithClient(c *http.Client) Option {
	return func(d *Downloader) {
		d.client = c
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{
		client:      http.DefaultClient,
		concurrency: DefaultConcurrency,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBytes:    DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.concurrency < 1 {
		d.concurrency = 1
	}
	return d
}

// DownloadImages fetches every image into store as images/image-{i}{ext}
// and records the outcome on each element of images. It returns an error
// only when ctx ends before every image has been attempted.
func (d *Downloader) DownloadImages(ctx context.Context, images []sitescan.Image, store sitescan.ArtifactStore) error {
	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for i := range images {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			img := &images[i]
			name := path.Join(ImageDir, fmt.Sprintf("image-%d%s", i, Extension(img.OriginalURL)))
			data, err := d.fetchWithRetry(ctx, img.OriginalURL)
			if err == nil {
				err = store.WriteFile(name, data)
			}
			if err != nil {
				img.MarkFailed(err)
				return nil
			}
			img.ContentHash = strconv.FormatUint(xxhash.Sum64(data), 16)
			img.Bytes = len(data)
			img.MarkDownloaded(name)
			return nil
		})
	}
	_ = g.Wait()

	return ctx.Err()
}

func (d *Downloader) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= len(d.retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.retryDelays[attempt-1]):
			}
		}
		data, err := d.fetch(ctx, rawURL)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !transient(err) {
			break
		}
	}
	return nil, lastErr
}

// statusError is an unexpected HTTP status.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func transient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return sitescan.ErrorCode(err) == sitescan.EINTERNAL
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, sitescan.Errorf(sitescan.EASSET, "invalid URL %q", rawURL)
	}
	if err := d.limiter.Wait(ctx, u.Host); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, sitescan.Errorf(sitescan.EASSET, "invalid URL %q", rawURL)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > d.maxBytes {
		return nil, sitescan.Errorf(sitescan.EASSET, "image larger than %d bytes", d.maxBytes)
	}
	return data, nil
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".svg": true, ".avif": true, ".ico": true, ".bmp": true,
}

// Extension returns the file extension for an image URL, taken from its
// path when recognized and ".png" otherwise.
func Extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".png"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if imageExtensions[ext] {
		return ext
	}
	return ".png"
}
