//go:build integration

package rod_test

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Test Page</title><style>body{margin:0}</style></head>
<body>
<header style="height:120px">Header</header>
<section id="hero" style="height:600px">Hero</section>
<script>document.getElementById('hero').textContent = 'JavaScript Rendered';</script>
</body>
</html>`

func launch(t *testing.T, opts ...rod.Option) sitescan.Session {
	t.Helper()

	sess, err := rod.NewBrowser(opts...).Launch(context.Background(), sitescan.LaunchOptions{
		Viewport:          sitescan.Viewport{Width: 800, Height: 600},
		NavigationTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func serve(t *testing.T, status int, body string) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSession_Navigate_RendersJavaScript(t *testing.T) {
	t.Parallel()

	sess := launch(t)
	ctx := context.Background()

	require.NoError(t, sess.Navigate(ctx, serve(t, http.StatusOK, testPage)))

	html, err := sess.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")

	title, err := sess.Evaluate(ctx, `() => document.title`)
	require.NoError(t, err)
	assert.Equal(t, "Test Page", title)
}

func TestSession_Navigate_RejectsErrorStatus(t *testing.T) {
	t.Parallel()

	sess := launch(t)

	err := sess.Navigate(context.Background(), serve(t, http.StatusNotFound, "<html><body>missing</body></html>"))

	assert.Equal(t, sitescan.ENAVIGATION, sitescan.ErrorCode(err))
}

func TestSession_Navigate_ContextCancellation(t *testing.T) {
	t.Parallel()

	sess := launch(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sess.Navigate(ctx, serve(t, http.StatusOK, testPage))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_Evaluate_PassesArguments(t *testing.T) {
	t.Parallel()

	sess := launch(t)
	ctx := context.Background()
	require.NoError(t, sess.Navigate(ctx, serve(t, http.StatusOK, testPage)))

	res, err := sess.Evaluate(ctx, `(n, s) => JSON.stringify({n: n * 2, s: s})`, 21, "ok")

	require.NoError(t, err)
	assert.JSONEq(t, `{"n":42,"s":"ok"}`, res)
}

func TestSession_Screenshot_ClampsToViewport(t *testing.T) {
	t.Parallel()

	sess := launch(t, rod.WithStealth(true))
	ctx := context.Background()
	require.NoError(t, sess.Navigate(ctx, serve(t, http.StatusOK, testPage)))

	data, err := sess.Screenshot(ctx, &sitescan.Clip{X: 0, Y: 500, Width: 2000, Height: 400})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	_, err = sess.Screenshot(ctx, &sitescan.Clip{X: 0, Y: 600, Width: 800, Height: 100})
	assert.Equal(t, sitescan.ECAPTURE, sitescan.ErrorCode(err))
}

func TestSession_Close_Idempotent(t *testing.T) {
	t.Parallel()

	sess, err := rod.NewBrowser().Launch(context.Background(), sitescan.LaunchOptions{
		Viewport: sitescan.Viewport{Width: 800, Height: 600},
	})
	require.NoError(t, err)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
}
