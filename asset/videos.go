package asset

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/sitescan"
)

var youTubeHosts = map[string]bool{
	"youtube.com":              true,
	"www.youtube.com":          true,
	"m.youtube.com":            true,
	"youtube-nocookie.com":     true,
	"www.youtube-nocookie.com": true,
	"youtu.be":                 true,
}

var youTubeIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeID returns the 11-character video ID of a YouTube embed, watch,
// short, or youtu.be URL, or "" when rawURL is not a YouTube video.
func YouTubeID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !youTubeHosts[strings.ToLower(u.Hostname())] {
		return ""
	}
	var id string
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case strings.EqualFold(u.Hostname(), "youtu.be"):
		id = segments[0]
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "v" || segments[0] == "live"):
		id = segments[1]
	case segments[0] == "watch":
		id = u.Query().Get("v")
	}
	if !youTubeIDRe.MatchString(id) {
		return ""
	}
	return id
}

// YouTubeThumbnail returns the maximum-resolution thumbnail URL of a video.
func YouTubeThumbnail(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

// ResolveVideos keeps YouTube iframes and native videos, resolves their URLs,
// drops duplicates, and maps each video onto sections.
func ResolveVideos(r *Resolver, raws []RawVideo, sections []sitescan.Section) []sitescan.Video {
	var videos []sitescan.Video
	dupes := seen{}
	for _, raw := range raws {
		abs, ok := r.Resolve(raw.URL)
		if !ok {
			continue
		}
		v := sitescan.Video{
			OriginalURL:  abs,
			SectionIndex: sitescan.SectionAt(sections, raw.Top),
			Top:          raw.Top,
		}
		if poster, ok := r.Resolve(raw.Poster); ok {
			v.PosterURL = poster
		}
		switch raw.Kind {
		case KindIframe:
			id := YouTubeID(abs)
			if id == "" {
				continue
			}
			v.Platform = sitescan.PlatformYouTube
			v.VideoID = id
			if v.PosterURL == "" {
				v.PosterURL = YouTubeThumbnail(id)
			}
		case KindVideo:
			v.Platform = sitescan.PlatformHTML5
		default:
			continue
		}
		if !dupes.add(abs) {
			continue
		}
		videos = append(videos, v)
	}
	return videos
}
