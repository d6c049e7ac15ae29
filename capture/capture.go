// Package capture reads page state out of a browser session. Every function
// evaluates one self-contained script through sitescan.Session and decodes
// its JSON result into typed values.
package capture

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/asset"
)

// PageInfo is document-level information about a loaded page.
type PageInfo struct {
	Title        string  `json:"title"`
	ScrollHeight float64 `json:"scrollHeight"`
	BaseURL      string  `json:"baseUrl"`
	URL          string  `json:"url"`
}

// ReadPageInfo returns the title, full scroll height, and base URL of the
// current document.
func ReadPageInfo(ctx context.Context, sess sitescan.Session) (*PageInfo, error) {
	var info PageInfo
	if err := evaluate(ctx, sess, &info, pageInfoJS); err != nil {
		return nil, err
	}
	return &info, nil
}

// DOMTree captures the geometry tree of the document body, keeping only
// nodes taller than minHeight. A page without a body, or a result that is
// not a tree, is an EANALYSIS error.
func DOMTree(ctx context.Context, sess sitescan.Session, minHeight float64) (*sitescan.DOMNode, error) {
	res, err := sess.Evaluate(ctx, domTreeJS, minHeight)
	if err != nil {
		return nil, sitescan.Errorf(sitescan.EANALYSIS, "capture dom tree: %v", err)
	}
	var root *sitescan.DOMNode
	if err := json.Unmarshal([]byte(res), &root); err != nil {
		return nil, sitescan.Errorf(sitescan.EANALYSIS, "decode dom tree: %v", err)
	}
	if root == nil {
		return nil, sitescan.Errorf(sitescan.EANALYSIS, "page has no body")
	}
	root.Normalize(minHeight)
	return root, nil
}

// SectionHTML returns the outer HTML of the first element matching selector.
// It returns ENOTFOUND when nothing matches or the selector is invalid.
func SectionHTML(ctx context.Context, sess sitescan.Session, selector string) (string, error) {
	var html *string
	if err := evaluate(ctx, sess, &html, outerHTMLJS, selector); err != nil {
		return "", err
	}
	if html == nil {
		return "", sitescan.Errorf(sitescan.ENOTFOUND, "no element matches %q", selector)
	}
	return *html, nil
}

// SweepImages reports every image reference in the document.
func SweepImages(ctx context.Context, sess sitescan.Session) ([]asset.RawImage, error) {
	var raws []asset.RawImage
	if err := evaluate(ctx, sess, &raws, imagesJS); err != nil {
		return nil, err
	}
	return raws, nil
}

// SweepFonts reports font links, @font-face rules, and family usage.
func SweepFonts(ctx context.Context, sess sitescan.Session) (*asset.FontSweep, error) {
	var sweep asset.FontSweep
	if err := evaluate(ctx, sess, &sweep, fontsJS); err != nil {
		return nil, err
	}
	return &sweep, nil
}

// SweepVideos reports every iframe and native video in the document.
func SweepVideos(ctx context.Context, sess sitescan.Session) ([]asset.RawVideo, error) {
	var raws []asset.RawVideo
	if err := evaluate(ctx, sess, &raws, videosJS); err != nil {
		return nil, err
	}
	return raws, nil
}

func evaluate(ctx context.Context, sess sitescan.Session, v any, js string, args ...any) error {
	res, err := sess.Evaluate(ctx, js, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res), v); err != nil {
		return sitescan.Errorf(sitescan.EINTERNAL, "decode script result: %v", err)
	}
	return nil
}
