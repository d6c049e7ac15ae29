package segment

import (
	"strings"

	"github.com/fwojciec/sitescan"
)

// KeywordHint maps a category to the substrings that indicate it.
type KeywordHint struct {
	Category sitescan.Category
	Keywords []string
}

// DefaultKeywordHints is tried in order; the first category with a matching
// keyword wins.
var DefaultKeywordHints = []KeywordHint{
	{sitescan.CategoryHero, []string{"hero", "banner", "jumbotron", "masthead", "splash"}},
	{sitescan.CategoryPricing, []string{"pricing", "price", "plans", "plan-", "tier"}},
	{sitescan.CategoryTestimonials, []string{"testimonial", "review", "quote", "customer-stor", "social-proof"}},
	{sitescan.CategoryFAQ, []string{"faq", "question", "accordion"}},
	{sitescan.CategoryBenefits, []string{"benefit", "advantage", "why-"}},
	{sitescan.CategoryFeatures, []string{"feature", "service", "capabilit"}},
	{sitescan.CategoryHowItWorks, []string{"how-it-works", "howitworks", "steps", "process"}},
	{sitescan.CategoryLogos, []string{"logo", "brands", "clients", "partners", "trusted"}},
	{sitescan.CategoryStats, []string{"stats", "numbers", "metrics", "counter"}},
	{sitescan.CategoryTeam, []string{"team", "staff", "founder"}},
	{sitescan.CategoryAbout, []string{"about", "story", "mission"}},
	{sitescan.CategoryGallery, []string{"gallery", "portfolio", "showcase", "carousel", "slider"}},
	{sitescan.CategoryNewsletter, []string{"newsletter", "subscribe", "signup", "sign-up"}},
	{sitescan.CategoryBlog, []string{"blog", "article", "news", "posts"}},
	{sitescan.CategoryCTA, []string{"cta", "call-to-action", "get-started"}},
	{sitescan.CategoryContact, []string{"contact", "get-in-touch", "location"}},
	{sitescan.CategoryFooter, []string{"footer", "colophon"}},
	{sitescan.CategoryHeader, []string{"header", "nav", "navbar", "menu", "topbar"}},
}

// Classifier assigns categories to sections from keyword hints.
type Classifier struct {
	hints []KeywordHint
}

// NewClassifier creates a Classifier. Nil hints select DefaultKeywordHints.
func NewClassifier(hints []KeywordHint) *Classifier {
	if hints == nil {
		hints = DefaultKeywordHints
	}
	return &Classifier{hints: hints}
}

// Classify returns the first category whose keywords occur in text, or nil.
// Matching is case-insensitive.
func (c *Classifier) Classify(text string) *sitescan.Category {
	text = strings.ToLower(text)
	for _, h := range c.hints {
		for _, kw := range h.Keywords {
			if strings.Contains(text, kw) {
				cat := h.Category
				return &cat
			}
		}
	}
	return nil
}

// ClassifyNode classifies a node from its tag, id and class names.
func (c *Classifier) ClassifyNode(n *sitescan.DOMNode) *sitescan.Category {
	return c.Classify(n.Tag + " " + n.ID + " " + n.ClassName)
}

// Reinforce applies builder hints to sections that keyword classification
// left unclassified. A hint matches a section when it carries the section's
// selector, or when its normalized element name occurs in the section's tag
// and selector text. A matching hint whose name classifies to a category
// sets that category and raises confidence to at least
// sitescan.ConfidenceBuilder. Section boundaries are never changed.
func (c *Classifier) Reinforce(sections []sitescan.Section, hints []sitescan.BuilderHint) {
	if len(hints) == 0 {
		return
	}
	for i := range sections {
		s := &sections[i]
		if s.Category != nil {
			continue
		}
		text := strings.ToLower(s.Tag + " " + s.Selector)
		for _, h := range hints {
			if !hintMatches(h, s.Selector, text) {
				continue
			}
			cat := c.Classify(h.ElementName)
			if cat == nil {
				continue
			}
			s.Category = cat
			s.Confidence = max(s.Confidence, sitescan.ConfidenceBuilder)
			break
		}
	}
}

func hintMatches(h sitescan.BuilderHint, selector, text string) bool {
	if h.Selector != "" && h.Selector == selector {
		return true
	}
	name := normalizeName(h.ElementName)
	return name != "" && strings.Contains(text, name)
}

// normalizeName lowercases a builder element name and joins words with
// hyphens so "Hero Section" can match a "hero-section" class.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
