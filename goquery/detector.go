// Package goquery detects page builders from rendered HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitescan"
)

// Ensure Detector implements sitescan.BuilderDetector at compile time.
var _ sitescan.BuilderDetector = (*Detector)(nil)

// Detector identifies page builders from HTML content. It checks meta
// generator tags first, then builder-specific attributes and asset hosts,
// and collects the element names builders attach to page regions.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// marker identifies a builder by the presence of any of its selectors.
type marker struct {
	builder   sitescan.Builder
	selectors []string
}

// markers are checked in order. Elementor precedes WordPress because
// Elementor sites also carry every WordPress marker.
var markers = []marker{
	{sitescan.BuilderFramer, []string{
		"[data-framer-name]",
		"#__framer-badge-container",
		"script[src*='framerusercontent.com']",
		"link[href*='framerusercontent.com']",
	}},
	{sitescan.BuilderWebflow, []string{
		"html[data-wf-site]",
		"html[data-wf-page]",
		"script[src*='website-files.com']",
		"link[href*='website-files.com']",
	}},
	{sitescan.BuilderWix, []string{
		"#SITE_CONTAINER",
		"script[src*='parastorage.com']",
		"link[href*='parastorage.com']",
	}},
	{sitescan.BuilderSquarespace, []string{
		"[data-squarespace-cacheversion]",
		".sqs-block",
		"script[src*='squarespace.com']",
		"link[href*='squarespace.com']",
	}},
	{sitescan.BuilderShopify, []string{
		"[id^='shopify-section-']",
		"script[src*='cdn.shopify.com']",
		"link[href*='cdn.shopify.com']",
	}},
	{sitescan.BuilderElementor, []string{
		"[data-elementor-type]",
		".elementor-section",
		"link[href*='/plugins/elementor/']",
	}},
	{sitescan.BuilderWordPress, []string{
		"link[href*='/wp-content/']",
		"script[src*='/wp-content/']",
		"script[src*='/wp-includes/']",
	}},
}

// generators maps a meta generator substring to its builder.
var generators = []struct {
	substr  string
	builder sitescan.Builder
}{
	{"framer", sitescan.BuilderFramer},
	{"webflow", sitescan.BuilderWebflow},
	{"wix.com", sitescan.BuilderWix},
	{"squarespace", sitescan.BuilderSquarespace},
	{"shopify", sitescan.BuilderShopify},
	{"elementor", sitescan.BuilderElementor},
	{"wordpress", sitescan.BuilderWordPress},
}

// hintAttrs names the attribute that carries element names per builder.
var hintAttrs = map[sitescan.Builder]string{
	sitescan.BuilderFramer:      "data-framer-name",
	sitescan.BuilderShopify:     "data-section-type",
	sitescan.BuilderSquarespace: "data-section-type",
	sitescan.BuilderElementor:   "data-widget_type",
}

// Detect analyzes HTML and reports the builder and its element names.
// Unparseable or unrecognized HTML yields Detected=false.
func (d *Detector) Detect(html string) *sitescan.BuilderReport {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &sitescan.BuilderReport{}
	}

	builder := d.detectFromMetaGenerator(doc)
	if builder == sitescan.BuilderUnknown {
		builder = d.detectFromMarkers(doc)
	}
	if builder == sitescan.BuilderUnknown {
		return &sitescan.BuilderReport{}
	}

	return &sitescan.BuilderReport{
		Detected: true,
		Builder:  builder,
		Hints:    d.hints(doc, builder),
	}
}

// detectFromMetaGenerator checks the meta generator tags for a builder name.
// Elementor registers its own generator alongside WordPress, so every tag is
// considered and the earliest builder in the list wins.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) sitescan.Builder {
	var content []string
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if c, ok := s.Attr("content"); ok {
			content = append(content, strings.ToLower(c))
		}
	})
	for _, g := range generators {
		for _, c := range content {
			if strings.Contains(c, g.substr) {
				return g.builder
			}
		}
	}
	return sitescan.BuilderUnknown
}

func (d *Detector) detectFromMarkers(doc *goquery.Document) sitescan.Builder {
	for _, m := range markers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.builder
			}
		}
	}
	return sitescan.BuilderUnknown
}

// hints collects distinct element names in document order.
func (d *Detector) hints(doc *goquery.Document, builder sitescan.Builder) []sitescan.BuilderHint {
	attr, ok := hintAttrs[builder]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var hints []sitescan.BuilderHint
	doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.AttrOr(attr, ""))
		if builder == sitescan.BuilderElementor {
			name, _, _ = strings.Cut(name, ".")
		}
		if name == "" {
			return
		}
		node := &sitescan.DOMNode{
			Tag:       goquery.NodeName(s),
			ID:        strings.TrimSpace(s.AttrOr("id", "")),
			ClassName: strings.Join(strings.Fields(s.AttrOr("class", "")), " "),
		}
		selector := node.Selector()
		if seen[name+"\x00"+selector] {
			return
		}
		seen[name+"\x00"+selector] = true
		hints = append(hints, sitescan.BuilderHint{
			ElementName: name,
			Selector:    selector,
			Tag:         node.Tag,
		})
	})
	return hints
}
