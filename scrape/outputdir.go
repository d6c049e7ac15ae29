package scrape

import (
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// DefaultOutputRoot is the directory runs are written under when no output
// directory is requested.
const DefaultOutputRoot = "scrapes"

// DefaultOutputDir returns root/{site}-{yyyymmdd-hhmmss} for a run of rawURL
// started at t, where site is the registrable domain of the URL's host
// ("www.shop.example.co.uk" becomes "example.co.uk"). Hosts without a
// registrable domain, such as IP addresses and localhost, are used as is.
// An empty root selects DefaultOutputRoot.
func DefaultOutputDir(root, rawURL string, t time.Time) string {
	if root == "" {
		root = DefaultOutputRoot
	}
	return filepath.Join(root, SiteName(rawURL)+"-"+t.UTC().Format("20060102-150405"))
}

// SiteName returns a filesystem-safe name for the site of rawURL.
func SiteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "site"
	}
	host := strings.ToLower(u.Hostname())
	if net.ParseIP(host) == nil {
		if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			host = domain
		}
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return '_'
	}, host)
}
