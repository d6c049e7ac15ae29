package asset_test

import (
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYouTubeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", want: "dQw4w9WgXcQ"},
		{url: "https://youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/embed/short", want: ""},
		{url: "https://player.vimeo.com/video/123456", want: ""},
		{url: "https://www.youtube.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, asset.YouTubeID(tt.url))
		})
	}
}

func TestResolveVideos(t *testing.T) {
	t.Parallel()

	t.Run("records youtube embed with synthesized thumbnail", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "https://example.com")
		raws := []asset.RawVideo{
			{Kind: asset.KindIframe, URL: "//www.youtube.com/embed/dQw4w9WgXcQ", Top: 600},
		}

		videos := asset.ResolveVideos(r, raws, testSections())

		require.Len(t, videos, 1)
		assert.Equal(t, sitescan.PlatformYouTube, videos[0].Platform)
		assert.Equal(t, "dQw4w9WgXcQ", videos[0].VideoID)
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", videos[0].PosterURL)
		assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", videos[0].OriginalURL)
		assert.Equal(t, 1, videos[0].SectionIndex)
	})

	t.Run("records native video with poster", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "https://example.com/")
		raws := []asset.RawVideo{
			{Kind: asset.KindVideo, URL: "media/intro.mp4", Poster: "media/intro.jpg", Top: 1200},
		}

		videos := asset.ResolveVideos(r, raws, testSections())

		require.Len(t, videos, 1)
		assert.Equal(t, sitescan.PlatformHTML5, videos[0].Platform)
		assert.Equal(t, "https://example.com/media/intro.mp4", videos[0].OriginalURL)
		assert.Equal(t, "https://example.com/media/intro.jpg", videos[0].PosterURL)
		assert.Empty(t, videos[0].VideoID)
		assert.Equal(t, 2, videos[0].SectionIndex)
	})

	t.Run("skips unknown iframes, blob sources and duplicates", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "https://example.com")
		raws := []asset.RawVideo{
			{Kind: asset.KindIframe, URL: "https://maps.google.com/embed?pb=1"},
			{Kind: asset.KindVideo, URL: "blob:https://example.com/abcd"},
			{Kind: asset.KindVideo, URL: "/a.mp4", Top: 10},
			{Kind: asset.KindVideo, URL: "https://example.com/a.mp4", Top: 900},
		}

		videos := asset.ResolveVideos(r, raws, testSections())

		require.Len(t, videos, 1)
		assert.Equal(t, 0, videos[0].SectionIndex)
	})
}
