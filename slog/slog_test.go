package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/mock"
	scanslog "github.com/fwojciec/sitescan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingBrowser_Launch(t *testing.T) {
	t.Parallel()

	t.Run("logs launch and wraps session", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{
			LaunchFn: func(context.Context, sitescan.LaunchOptions) (sitescan.Session, error) {
				return &mock.Session{
					NavigateFn: func(context.Context, string) error { return nil },
				}, nil
			},
		}

		b := scanslog.NewLoggingBrowser(inner, debugLogger(&buf))
		sess, err := b.Launch(context.Background(), sitescan.LaunchOptions{Viewport: sitescan.Viewport{Width: 1440, Height: 900}})

		require.NoError(t, err)
		assert.IsType(t, &scanslog.LoggingSession{}, sess)
		assert.Contains(t, buf.String(), "msg=launch")
		assert.Contains(t, buf.String(), "viewport=1440x900")

		require.NoError(t, sess.Navigate(context.Background(), "https://example.com"))
		assert.Contains(t, buf.String(), "msg=navigate")
		assert.Contains(t, buf.String(), "url=https://example.com")
	})

	t.Run("returns launch error without session", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Browser{
			LaunchFn: func(context.Context, sitescan.LaunchOptions) (sitescan.Session, error) {
				return nil, errors.New("chrome not found")
			},
		}

		sess, err := scanslog.NewLoggingBrowser(inner, debugLogger(&buf)).Launch(context.Background(), sitescan.LaunchOptions{})

		require.Error(t, err)
		assert.Nil(t, sess)
		assert.Contains(t, buf.String(), `err="chrome not found"`)
	})
}

func TestLoggingSession(t *testing.T) {
	t.Parallel()

	t.Run("logs evaluate and screenshot sizes at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Session{
			EvaluateFn: func(context.Context, string, ...any) (string, error) {
				return `{"a":1}`, nil
			},
			ScreenshotFn: func(context.Context, *sitescan.Clip) ([]byte, error) {
				return []byte("12345"), nil
			},
		}
		sess := scanslog.NewLoggingSession(inner, debugLogger(&buf))

		res, err := sess.Evaluate(context.Background(), "() => 1")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, res)

		_, err = sess.Screenshot(context.Background(), &sitescan.Clip{Y: 100, Height: 300})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "msg=evaluate")
		assert.Contains(t, out, "bytes=7")
		assert.Contains(t, out, "msg=screenshot")
		assert.Contains(t, out, "bytes=5")
		assert.Contains(t, out, "y=100")
	})

	t.Run("debug lines are dropped at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Session{
			HTMLFn: func(context.Context) (string, error) { return "<html></html>", nil },
		}
		sess := scanslog.NewLoggingSession(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := sess.HTML(context.Background())

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingDownloader_DownloadImages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.ImageDownloader{
		DownloadImagesFn: func(_ context.Context, images []sitescan.Image, _ sitescan.ArtifactStore) error {
			images[0].MarkDownloaded("images/image-0.png")
			images[1].MarkFailed(errors.New("HTTP 404"))
			return nil
		},
	}

	images := make([]sitescan.Image, 3)
	images[1].OriginalURL = "https://example.com/missing.png"
	err := scanslog.NewLoggingDownloader(inner, debugLogger(&buf)).DownloadImages(context.Background(), images, &mock.ArtifactStore{})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "msg=\"download images\"")
	assert.Contains(t, out, "total=3")
	assert.Contains(t, out, "downloaded=1")
	assert.Contains(t, out, "failed=1")
	assert.Contains(t, out, "url=https://example.com/missing.png")
}

func TestLoggingDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("logs detected builder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.BuilderDetector{
			DetectFn: func(string) *sitescan.BuilderReport {
				return &sitescan.BuilderReport{Detected: true, Builder: sitescan.BuilderFramer, Hints: []sitescan.BuilderHint{{ElementName: "Hero"}}}
			},
		}

		report := scanslog.NewLoggingDetector(inner, debugLogger(&buf)).Detect("<html></html>")

		assert.Equal(t, sitescan.BuilderFramer, report.Builder)
		assert.Contains(t, buf.String(), "builder=framer")
		assert.Contains(t, buf.String(), "hints=1")
	})

	t.Run("logs unknown builder", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.BuilderDetector{
			DetectFn: func(string) *sitescan.BuilderReport { return &sitescan.BuilderReport{} },
		}

		scanslog.NewLoggingDetector(inner, debugLogger(&buf)).Detect("<html></html>")

		assert.Contains(t, buf.String(), "builder=(unknown)")
	})
}
