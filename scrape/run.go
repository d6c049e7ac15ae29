package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"path"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/asset"
	"github.com/fwojciec/sitescan/capture"
	"github.com/fwojciec/sitescan/segment"
)

// Section artifact directory and name patterns.
const (
	SectionDir        = "sections"
	sectionScreenshot = "section-%d.png"
	sectionHTML       = "section-%d.html"
)

// run is the state of one scrape.
type run struct {
	scraper    *Scraper
	req        sitescan.ScrapeRequest
	id         string
	started    time.Time
	segmenter  *segment.Segmenter
	settle     time.Duration
	navTimeout time.Duration
	logger     *slog.Logger

	stage  Stage
	store  sitescan.ArtifactStore
	sess   sitescan.Session
	closed bool

	info          *capture.PageInfo
	html          string
	captureHeight int
	builder       *sitescan.BuilderReport
	sections      []sitescan.Section
	images        []sitescan.Image
	fonts         []sitescan.Font
	videos        []sitescan.Video
}

func (r *run) execute(ctx context.Context) (result *sitescan.ScrapeResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = sitescan.Errorf(sitescan.EINTERNAL, "panic while %s: %v", r.stage, p)
			result = r.abort(err)
		}
	}()

	if err := r.req.Validate(); err != nil {
		return r.failure(err), err
	}
	r.req = r.req.WithDefaults()

	for _, step := range []struct {
		stage Stage
		fn    func(context.Context) error
	}{
		{StageLaunching, r.launch},
		{StageLoaded, r.load},
		{StageCaptured, r.captureFullPage},
		{StageAnalyzed, r.analyze},
		{StageSectionsCaptured, r.captureSections},
		{StageAssetsExtracted, r.extractAssets},
		{StageFinalized, r.finalize},
	} {
		r.stage = step.stage
		r.logger.Debug("stage", "stage", step.stage)
		if err := ctx.Err(); err != nil {
			return r.abort(err), err
		}
		if err := step.fn(ctx); err != nil {
			return r.abort(err), err
		}
	}
	return r.success(), nil
}

func (r *run) launch(ctx context.Context) error {
	if r.req.OutputDir == "" {
		r.req.OutputDir = DefaultOutputDir("", r.req.URL, r.started)
	}
	store, err := r.scraper.OpenStore(r.req.OutputDir)
	if err != nil {
		return fmt.Errorf("opening output directory: %w", err)
	}
	r.store = store

	sess, err := r.scraper.Browser.Launch(ctx, sitescan.LaunchOptions{
		Viewport:          r.req.Viewport,
		NavigationTimeout: r.navTimeout,
		UserAgent:         r.scraper.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	r.sess = sess
	return nil
}

func (r *run) load(ctx context.Context) error {
	if err := r.sess.Navigate(ctx, r.req.URL); err != nil {
		return err
	}
	return sleep(ctx, r.req.WaitTime)
}

// captureFullPage sizes the viewport to the capped document height, takes
// the full-page screenshot, and saves the rendered HTML.
func (r *run) captureFullPage(ctx context.Context) error {
	info, err := capture.ReadPageInfo(ctx, r.sess)
	if err != nil {
		return sitescan.Errorf(sitescan.EANALYSIS, "reading page info: %v", err)
	}
	r.info = info
	r.captureHeight = CaptureHeight(info.ScrollHeight, r.req.Viewport.Height, r.req.MaxHeight)

	if err := r.sess.SetViewport(ctx, sitescan.Viewport{Width: r.req.Viewport.Width, Height: r.captureHeight}); err != nil {
		return err
	}

	if png, err := r.sess.Screenshot(ctx, nil); err != nil {
		r.warn("full-page screenshot skipped", err)
	} else if err := r.store.WriteFile(sitescan.ArtifactFullPage, png); err != nil {
		return err
	}

	html, err := r.sess.HTML(ctx)
	if err != nil {
		r.warn("page html skipped", err)
		return nil
	}
	r.html = html
	return r.store.WriteFile(sitescan.ArtifactPageHTML, []byte(html))
}

// analyze captures the DOM tree and segments it into sections.
func (r *run) analyze(ctx context.Context) error {
	root, err := capture.DOMTree(ctx, r.sess, sitescan.MinNodeHeight)
	if err != nil {
		return err
	}
	if err := r.store.WriteJSON(sitescan.ArtifactDOMTree, root); err != nil {
		return err
	}

	r.sections = r.segmenter.Segment(root)

	if r.scraper.Detector != nil && r.html != "" {
		r.builder = r.scraper.Detector.Detect(r.html)
		if r.builder != nil && r.builder.Detected {
			r.segmenter.Classifier().Reinforce(r.sections, r.builder.Hints)
		}
	}

	return r.store.WriteJSON(sitescan.ArtifactSections, orEmpty(r.sections))
}

// captureSections screenshots each section and saves its HTML. Problems with
// one section are logged and never affect the others.
func (r *run) captureSections(ctx context.Context) error {
	width := float64(r.req.Viewport.Width)
	for i := range r.sections {
		sec := &r.sections[i]

		if err := r.sess.ScrollTo(ctx, sec.Rect.Top); err != nil {
			r.warnSection(sec, "scroll failed", err)
		}
		if err := sleep(ctx, r.settle); err != nil {
			return err
		}

		clip := SectionClip(sec.Rect, width, r.captureHeight)
		if clip.Height <= 0 {
			r.warnSection(sec, "screenshot skipped", sitescan.Errorf(sitescan.ECAPTURE, "section starts below capture height %d", r.captureHeight))
		} else if png, err := r.sess.Screenshot(ctx, &clip); err != nil {
			r.warnSection(sec, "screenshot skipped", err)
		} else {
			name := path.Join(SectionDir, fmt.Sprintf(sectionScreenshot, sec.Index))
			if err := r.store.WriteFile(name, png); err != nil {
				r.warnSection(sec, "screenshot not saved", err)
			} else {
				sec.ScreenshotPath = name
			}
		}

		html, err := capture.SectionHTML(ctx, r.sess, sec.Selector)
		if err != nil {
			r.warnSection(sec, "html skipped", err)
			continue
		}
		name := path.Join(SectionDir, fmt.Sprintf(sectionHTML, sec.Index))
		if err := r.store.WriteFile(name, []byte(html)); err != nil {
			r.warnSection(sec, "html not saved", err)
		} else {
			sec.HTMLPath = name
		}
		if r.scraper.Converter != nil {
			if text, err := r.scraper.Converter.Convert(html); err != nil {
				r.logger.Debug("section text skipped", "section", sec.Index, "err", err)
			} else {
				sec.Text = text
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.WriteJSON(sitescan.ArtifactSections, orEmpty(r.sections))
}

// extractAssets sweeps the page for assets, maps them onto sections and
// downloads images. A failed sweep leaves that collection empty.
func (r *run) extractAssets(ctx context.Context) error {
	base := r.info.BaseURL
	if base == "" {
		base = r.req.URL
	}
	resolver, err := asset.NewResolver(base)
	if err != nil {
		if resolver, err = asset.NewResolver(r.req.URL); err != nil {
			return err
		}
	}

	if raws, err := capture.SweepImages(ctx, r.sess); err != nil {
		r.warn("image sweep failed", err)
	} else {
		r.images = asset.ResolveImages(resolver, raws, r.sections)
	}
	if sweep, err := capture.SweepFonts(ctx, r.sess); err != nil {
		r.warn("font sweep failed", err)
	} else {
		r.fonts = asset.ResolveFonts(resolver, *sweep, r.sections)
	}
	if raws, err := capture.SweepVideos(ctx, r.sess); err != nil {
		r.warn("video sweep failed", err)
	} else {
		r.videos = asset.ResolveVideos(resolver, raws, r.sections)
	}

	r.images = orEmpty(r.images)
	r.fonts = orEmpty(r.fonts)
	r.videos = orEmpty(r.videos)

	if err := r.scraper.Downloader.DownloadImages(ctx, r.images, r.store); err != nil {
		return err
	}

	if err := r.store.WriteJSON(sitescan.ArtifactImages, r.images); err != nil {
		return err
	}
	if err := r.store.WriteJSON(sitescan.ArtifactFonts, r.fonts); err != nil {
		return err
	}
	return r.store.WriteJSON(sitescan.ArtifactVideos, r.videos)
}

// finalize releases the browser and persists the run metadata.
func (r *run) finalize(context.Context) error {
	r.closeSession()
	return r.store.WriteJSON(sitescan.ArtifactMetadata, r.metadata())
}

func (r *run) closeSession() {
	if r.sess == nil || r.closed {
		return
	}
	r.closed = true
	if err := r.sess.Close(); err != nil {
		r.logger.Warn("close session", "err", err)
	}
}

func (r *run) metadata() sitescan.Metadata {
	md := sitescan.Metadata{
		RunID:         r.id,
		URL:           r.req.URL,
		Domain:        hostname(r.req.URL),
		Timestamp:     r.started,
		CaptureHeight: r.captureHeight,
		Viewport:      r.req.Viewport,
		ImageStats:    sitescan.ImageStats(r.images),
		FontStats:     sitescan.FontStats(r.fonts),
		VideoStats:    sitescan.VideoStats(r.videos),
	}
	if r.info != nil {
		md.PageTitle = r.info.Title
		md.TotalHeight = r.info.ScrollHeight
	}
	if r.builder != nil && r.builder.Detected {
		md.Builder = r.builder
	}
	return md
}

func (r *run) success() *sitescan.ScrapeResult {
	return &sitescan.ScrapeResult{
		Success:   true,
		Sections:  orEmpty(r.sections),
		Images:    r.images,
		Fonts:     r.fonts,
		Videos:    r.videos,
		Metadata:  r.metadata(),
		OutputDir: r.req.OutputDir,
	}
}

// abort closes the session and returns the failure result for err. The
// failure metadata is persisted when the output directory is open.
func (r *run) abort(err error) *sitescan.ScrapeResult {
	r.closeSession()
	result := r.failure(err)
	r.logger.Error("scrape failed", "stage", r.stage, "err", err)
	if r.store != nil {
		if werr := r.store.WriteJSON(sitescan.ArtifactMetadata, result.Metadata); werr != nil {
			r.logger.Warn("write failure metadata", "err", werr)
		}
	}
	return result
}

func (r *run) failure(err error) *sitescan.ScrapeResult {
	msg := sitescan.ErrorMessage(err)
	if sitescan.ErrorCode(err) == sitescan.EINTERNAL {
		msg = err.Error()
	}
	md := r.metadata()
	md.ImageStats, md.FontStats, md.VideoStats = sitescan.AssetStats{}, sitescan.AssetStats{}, sitescan.AssetStats{}
	return &sitescan.ScrapeResult{
		Success:     false,
		Error:       msg,
		FailedStage: string(r.stage),
		Sections:    []sitescan.Section{},
		Images:      []sitescan.Image{},
		Fonts:       []sitescan.Font{},
		Videos:      []sitescan.Video{},
		Metadata:    md,
		OutputDir:   r.req.OutputDir,
	}
}

func (r *run) warn(msg string, err error) {
	r.logger.Warn(msg, "stage", r.stage, "err", err)
}

func (r *run) warnSection(sec *sitescan.Section, msg string, err error) {
	r.logger.Warn(msg, "section", sec.Index, "selector", sec.Selector, "err", err)
}

// CaptureHeight returns the viewport height used for capture: the document
// height rounded up, capped at maxHeight, and never below the initial
// viewport height.
func CaptureHeight(scrollHeight float64, viewportHeight, maxHeight int) int {
	h := int(math.Ceil(scrollHeight))
	if h < viewportHeight {
		h = viewportHeight
	}
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
	}
	return h
}

// SectionClip returns the screenshot region of a section on a page captured
// to captureHeight. The height is not positive when the section starts at or
// below captureHeight.
func SectionClip(rect sitescan.SectionRect, width float64, captureHeight int) sitescan.Clip {
	y := math.Max(0, rect.Top)
	return sitescan.Clip{
		X:      0,
		Y:      y,
		Width:  width,
		Height: math.Min(math.Ceil(rect.Height), float64(captureHeight)-y),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
