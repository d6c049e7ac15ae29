// Package segment splits a captured DOM geometry tree into an ordered list of
// non-overlapping page sections.
package segment

import (
	"slices"

	"github.com/fwojciec/sitescan"
)

// Default tuning values.
const (
	DefaultMinSectionHeight = 100
	DefaultGapMinHeight     = 300
	DefaultGapMaxDepth      = 5
	DefaultOverlapRatio     = 0.5
)

// DefaultSemanticTags are the tags that qualify as section candidates in the
// semantic pass.
var DefaultSemanticTags = []string{"header", "nav", "main", "section", "article", "aside", "footer"}

// Config tunes segmentation. Zero values select defaults.
type Config struct {
	// MinSectionHeight is the height a semantic node must exceed.
	MinSectionHeight float64
	// GapMinHeight is the height a div must exceed to become a gap section.
	GapMinHeight float64
	// GapMaxDepth limits the depth of the gap-filling traversal.
	GapMaxDepth int
	// OverlapRatio is the fraction of the shorter section two sections must
	// share to be considered the same section.
	OverlapRatio float64
	// SemanticTags lists the tags considered by the semantic pass.
	SemanticTags []string
	// TransparentTags are semantic tags that do not absorb their subtree:
	// they are emitted as sections and also scanned for sections inside.
	TransparentTags []string
}

func (c Config) withDefaults() Config {
	if c.MinSectionHeight <= 0 {
		c.MinSectionHeight = DefaultMinSectionHeight
	}
	if c.GapMinHeight <= 0 {
		c.GapMinHeight = DefaultGapMinHeight
	}
	if c.GapMaxDepth <= 0 {
		c.GapMaxDepth = DefaultGapMaxDepth
	}
	if c.OverlapRatio <= 0 {
		c.OverlapRatio = DefaultOverlapRatio
	}
	if c.SemanticTags == nil {
		c.SemanticTags = DefaultSemanticTags
	}
	if c.TransparentTags == nil {
		c.TransparentTags = []string{"main"}
	}
	return c
}

// Segmenter converts DOM trees into sections.
type Segmenter struct {
	cfg        Config
	classifier *Classifier
}

// NewSegmenter creates a Segmenter. A nil classifier uses the default
// keyword hints.
func NewSegmenter(cfg Config, classifier *Classifier) *Segmenter {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return &Segmenter{cfg: cfg.withDefaults(), classifier: classifier}
}

// Classifier returns the classifier used for category inference.
func (s *Segmenter) Classifier() *Classifier {
	return s.classifier
}

// Segment returns the deduplicated sections of root in top-to-bottom order
// with indices equal to their positions.
func (s *Segmenter) Segment(root *sitescan.DOMNode) []sitescan.Section {
	if root == nil {
		return nil
	}
	var cov coverage
	candidates := s.semanticPass(root, &cov)
	candidates = append(candidates, s.gapPass(root, &cov)...)
	return Dedupe(candidates, s.cfg.OverlapRatio)
}

// semanticPass emits a section for every semantic node taller than the
// section floor. A qualifying node absorbs its subtree unless its tag is
// transparent. A transparent node is emitted but leaves its range uncovered,
// and scanning continues inside it; dedup then prefers any higher-confidence
// section found within.
func (s *Segmenter) semanticPass(root *sitescan.DOMNode, cov *coverage) []sitescan.Section {
	var out []sitescan.Section
	root.Walk(-1, func(n *sitescan.DOMNode, _ int) bool {
		if !slices.Contains(s.cfg.SemanticTags, n.Tag) || n.Rect.Height <= s.cfg.MinSectionHeight {
			return false
		}
		confidence := sitescan.ConfidenceSemantic
		if n.Tag == "section" {
			confidence = sitescan.ConfidenceSection
		}
		out = append(out, s.newSection(n, confidence))
		if slices.Contains(s.cfg.TransparentTags, n.Tag) {
			return false
		}
		cov.add(n.Rect)
		return true
	})
	return out
}

// gapPass finds large divs not covered by the semantic pass. Each one becomes
// a low-confidence section and is itself marked covered so that nested divs
// do not produce a second section.
func (s *Segmenter) gapPass(root *sitescan.DOMNode, cov *coverage) []sitescan.Section {
	var out []sitescan.Section
	root.Walk(s.cfg.GapMaxDepth, func(n *sitescan.DOMNode, _ int) bool {
		if n.Tag != "div" || n.Rect.Height <= s.cfg.GapMinHeight {
			return false
		}
		if cov.intersects(n.Rect) || s.hasSemanticChild(n) {
			return false
		}
		out = append(out, s.newSection(n, sitescan.ConfidenceGap))
		cov.add(n.Rect)
		return true
	})
	return out
}

func (s *Segmenter) hasSemanticChild(n *sitescan.DOMNode) bool {
	for _, child := range n.Children {
		if slices.Contains(s.cfg.SemanticTags, child.Tag) {
			return true
		}
	}
	return false
}

func (s *Segmenter) newSection(n *sitescan.DOMNode, confidence float64) sitescan.Section {
	return sitescan.Section{
		Tag:        n.Tag,
		Selector:   n.Selector(),
		Category:   s.classifier.ClassifyNode(n),
		Rect:       sitescan.SectionRect{Top: n.Rect.Top, Height: n.Rect.Height},
		Confidence: confidence,
	}
}

// coverage is the set of vertical ranges already claimed by a section.
type coverage []sitescan.SectionRect

func (c *coverage) add(r sitescan.Rect) {
	*c = append(*c, sitescan.SectionRect{Top: r.Top, Height: r.Height})
}

func (c coverage) intersects(r sitescan.Rect) bool {
	target := sitescan.SectionRect{Top: r.Top, Height: r.Height}
	for _, covered := range c {
		if covered.Overlap(target) > 0 {
			return true
		}
	}
	return false
}
