package segment_test

import (
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want sitescan.Category
	}{
		{name: "hero by class", text: "section hero-banner", want: sitescan.CategoryHero},
		{name: "pricing by id", text: "div plans", want: sitescan.CategoryPricing},
		{name: "case insensitive", text: "SECTION Testimonials", want: sitescan.CategoryTestimonials},
		{name: "faq", text: "section faq-list", want: sitescan.CategoryFAQ},
		{name: "footer tag", text: "footer", want: sitescan.CategoryFooter},
		{name: "nav tag maps to header", text: "nav", want: sitescan.CategoryHeader},
		{name: "newsletter before blog", text: "div newsletter", want: sitescan.CategoryNewsletter},
		{name: "first matching category wins", text: "section hero pricing", want: sitescan.CategoryHero},
	}

	c := segment.NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(tt.text)

			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, c.Classify("div wrapper container"))
	})

	t.Run("uses custom hints", func(t *testing.T) {
		t.Parallel()

		custom := segment.NewClassifier([]segment.KeywordHint{
			{Category: sitescan.CategoryTeam, Keywords: []string{"crew"}},
		})

		got := custom.Classify("section our-crew")

		require.NotNil(t, got)
		assert.Equal(t, sitescan.CategoryTeam, *got)
		assert.Nil(t, custom.Classify("section hero"))
	})
}

func TestClassifier_Reinforce(t *testing.T) {
	t.Parallel()

	t.Run("applies builder category to unclassified section by selector", func(t *testing.T) {
		t.Parallel()

		sections := []sitescan.Section{
			{Tag: "div", Selector: "div.framer-1x2y3z", Confidence: sitescan.ConfidenceGap},
		}
		hints := []sitescan.BuilderHint{
			{ElementName: "Pricing Cards", Selector: "div.framer-1x2y3z"},
		}

		segment.NewClassifier(nil).Reinforce(sections, hints)

		require.NotNil(t, sections[0].Category)
		assert.Equal(t, sitescan.CategoryPricing, *sections[0].Category)
		assert.Equal(t, sitescan.ConfidenceBuilder, sections[0].Confidence)
	})

	t.Run("matches builder name against selector text", func(t *testing.T) {
		t.Parallel()

		sections := []sitescan.Section{
			{Tag: "div", Selector: "div.faq-block", Confidence: sitescan.ConfidenceGap},
			{Tag: "div", Selector: "div.hero-block", Confidence: sitescan.ConfidenceGap},
		}
		hints := []sitescan.BuilderHint{{ElementName: "Hero Block"}}

		segment.NewClassifier([]segment.KeywordHint{
			{Category: sitescan.CategoryHero, Keywords: []string{"hero"}},
		}).Reinforce(sections, hints)

		assert.Nil(t, sections[0].Category)
		require.NotNil(t, sections[1].Category)
		assert.Equal(t, sitescan.CategoryHero, *sections[1].Category)
	})

	t.Run("never overrides keyword category", func(t *testing.T) {
		t.Parallel()

		hero := sitescan.CategoryHero
		sections := []sitescan.Section{
			{Tag: "section", Selector: "section.hero", Category: &hero, Confidence: sitescan.ConfidenceSection},
		}
		hints := []sitescan.BuilderHint{{ElementName: "Pricing", Selector: "section.hero"}}

		segment.NewClassifier(nil).Reinforce(sections, hints)

		assert.Equal(t, sitescan.CategoryHero, *sections[0].Category)
		assert.Equal(t, sitescan.ConfidenceSection, sections[0].Confidence)
	})

	t.Run("keeps higher confidence", func(t *testing.T) {
		t.Parallel()

		sections := []sitescan.Section{
			{Tag: "section", Selector: "section.x1", Confidence: sitescan.ConfidenceSection},
		}
		hints := []sitescan.BuilderHint{{ElementName: "Team", Selector: "section.x1"}}

		segment.NewClassifier(nil).Reinforce(sections, hints)

		assert.Equal(t, sitescan.CategoryTeam, *sections[0].Category)
		assert.Equal(t, sitescan.ConfidenceSection, sections[0].Confidence)
	})

	t.Run("ignores hints without a category", func(t *testing.T) {
		t.Parallel()

		sections := []sitescan.Section{
			{Tag: "div", Selector: "div.a", Confidence: sitescan.ConfidenceGap},
		}
		hints := []sitescan.BuilderHint{{ElementName: "Stack 12", Selector: "div.a"}}

		segment.NewClassifier(nil).Reinforce(sections, hints)

		assert.Nil(t, sections[0].Category)
		assert.Equal(t, sitescan.ConfidenceGap, sections[0].Confidence)
	})
}
