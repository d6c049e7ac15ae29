// Package htmltomarkdown renders section markup as Markdown text.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitescan"
)

// Ensure Converter implements sitescan.Converter at compile time.
var _ sitescan.Converter = (*Converter)(nil)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// DefaultStrip selects section markup that never contributes readable text:
// inline icons, fallbacks, templates, hidden or decorative elements, and
// inline images.
var DefaultStrip = []string{
	"svg",
	"noscript",
	"template",
	"[hidden]",
	`[aria-hidden="true"]`,
	`img[src^="data:"]`,
}

// Option configures a Converter.
type Option func(*Converter)

// WithStrip removes elements matching the given selectors in addition to
// DefaultStrip.
func WithStrip(selectors ...string) Option {
	return func(c *Converter) {
		c.strip = append(c.strip, selectors...)
	}
}

// Converter turns a section's outer HTML into the Markdown stored as
// Section.Text.
type Converter struct {
	conv  *converter.Converter
	strip []string
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		strip: append([]string(nil), DefaultStrip...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert strips non-text markup from an HTML fragment and transforms the
// rest into Markdown with blank-line runs collapsed and surrounding
// whitespace trimmed. A fragment with no text left converts to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitescan.Errorf(sitescan.EINVALID, "empty HTML input")
	}

	cleaned, err := c.clean(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cleaned) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(blankRuns.ReplaceAllString(result, "\n\n")), nil
}

func (c *Converter) clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	for _, sel := range c.strip {
		doc.Find(sel).Remove()
	}
	return doc.Find("body").Html()
}
