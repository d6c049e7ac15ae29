package asset

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitescan"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Resolver resolves references found on a page against its base URL.
type Resolver struct {
	base *url.URL
}

// NewResolver creates a Resolver for an absolute base URL.
func NewResolver(base string) (*Resolver, error) {
	u, err := url.Parse(base)
	if err != nil || !u.IsAbs() {
		return nil, sitescan.Errorf(sitescan.EINVALID, "base URL must be absolute: %q", base)
	}
	return &Resolver{base: u}, nil
}

// Resolve returns the absolute http(s) URL of ref. It reports false for
// empty, inline (data:), blob, and script references.
func (r *Resolver) Resolve(ref string) (string, bool) {
	return r.resolveAgainst(r.base, ref)
}

// ResolveFrom resolves ref against base, which is itself resolved against
// the page URL first. It is used for references inside stylesheets.
func (r *Resolver) ResolveFrom(base, ref string) (string, bool) {
	b := r.base
	if base != "" {
		if u, err := r.base.Parse(base); err == nil {
			b = u
		}
	}
	return r.resolveAgainst(b, ref)
}

func (r *Resolver) resolveAgainst(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}
	u, err := base.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}

// CSSURLs returns the references inside every url(...) token of a CSS
// value, in order of appearance. Text inside strings and other functions,
// such as local("..."), is never treated as a reference.
func CSSURLs(value string) []string {
	var out []string
	l := css.NewLexer(parse.NewInputString(value))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return out
		}
		if tt != css.URLToken {
			continue
		}
		if ref := urlTokenValue(string(data)); ref != "" {
			out = append(out, ref)
		}
	}
}

// urlTokenValue strips the url( ) wrapper and any quotes from a URL token.
func urlTokenValue(tok string) string {
	if len(tok) < len("url()") {
		return ""
	}
	v := strings.TrimSpace(tok[len("url(") : len(tok)-1])
	if n := len(v); n >= 2 && (v[0] == '"' || v[0] == '\'') && v[n-1] == v[0] {
		v = v[1 : n-1]
	}
	return v
}

// seen tracks absolute URLs already emitted.
type seen map[string]struct{}

func (s seen) add(u string) bool {
	if _, ok := s[u]; ok {
		return false
	}
	s[u] = struct{}{}
	return true
}
