package sitescan

// Category is the semantic role of a page section.
type Category string

// Section categories, in the order keyword classification tries them.
const (
	CategoryHeader       Category = "header"
	CategoryHero         Category = "hero"
	CategoryFeatures     Category = "features"
	CategoryBenefits     Category = "benefits"
	CategoryHowItWorks   Category = "how-it-works"
	CategoryPricing      Category = "pricing"
	CategoryTestimonials Category = "testimonials"
	CategoryLogos        Category = "logos"
	CategoryStats        Category = "stats"
	CategoryTeam         Category = "team"
	CategoryAbout        Category = "about"
	CategoryGallery      Category = "gallery"
	CategoryBlog         Category = "blog"
	CategoryFAQ          Category = "faq"
	CategoryCTA          Category = "cta"
	CategoryContact      Category = "contact"
	CategoryNewsletter   Category = "newsletter"
	CategoryFooter       Category = "footer"
)

// Confidence levels assigned by segmentation.
const (
	ConfidenceSection  = 0.9
	ConfidenceSemantic = 0.8
	ConfidenceBuilder  = 0.85
	ConfidenceGap      = 0.5
)

// SectionRect is the vertical extent of a section in document coordinates.
type SectionRect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom returns the exclusive lower edge of the range.
func (r SectionRect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains reports whether y lies in [Top, Top+Height).
func (r SectionRect) Contains(y float64) bool {
	return y >= r.Top && y < r.Bottom()
}

// Overlap returns the length of the intersection of two ranges.
func (r SectionRect) Overlap(o SectionRect) float64 {
	v := min(r.Bottom(), o.Bottom()) - max(r.Top, o.Top)
	if v < 0 {
		return 0
	}
	return v
}

// Section is a vertically bounded region of a page that holds one logical
// content block.
type Section struct {
	Index      int         `json:"index"`
	Tag        string      `json:"tag"`
	Selector   string      `json:"selector"`
	Category   *Category   `json:"category"`
	Rect       SectionRect `json:"rect"`
	Confidence float64     `json:"confidence"`

	// Populated during per-section capture; paths are relative to the
	// run's output directory.
	ScreenshotPath string `json:"screenshotPath,omitempty"`
	HTMLPath       string `json:"htmlPath,omitempty"`
	Text           string `json:"text,omitempty"`
}

// CategoryName returns the category as a string, or "" when unclassified.
func (s *Section) CategoryName() string {
	if s.Category == nil {
		return ""
	}
	return string(*s.Category)
}

// Reindex assigns Index = position for every section.
func Reindex(sections []Section) {
	for i := range sections {
		sections[i].Index = i
	}
}

// SectionAt returns the index of the first section whose range contains y,
// or -1 when none does.
func SectionAt(sections []Section, y float64) int {
	for _, s := range sections {
		if s.Rect.Contains(y) {
			return s.Index
		}
	}
	return -1
}
