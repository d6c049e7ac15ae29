package sitescan

// Builder identifies a page-builder platform.
type Builder string

// Recognized page builders.
const (
	BuilderUnknown     Builder = ""
	BuilderFramer      Builder = "framer"
	BuilderWebflow     Builder = "webflow"
	BuilderWix         Builder = "wix"
	BuilderSquarespace Builder = "squarespace"
	BuilderShopify     Builder = "shopify"
	BuilderElementor   Builder = "elementor"
	BuilderWordPress   Builder = "wordpress"
)

// BuilderHint is a builder-assigned element name, such as a Framer layer
// name, together with the selector of the element that carries it.
type BuilderHint struct {
	ElementName string `json:"elementName"`
	Selector    string `json:"selector,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// BuilderReport is the outcome of builder detection.
type BuilderReport struct {
	Detected bool          `json:"detected"`
	Builder  Builder       `json:"builder,omitempty"`
	Hints    []BuilderHint `json:"hints,omitempty"`
}

// BuilderDetector identifies page builders from rendered HTML.
type BuilderDetector interface {
	// Detect analyzes HTML and reports the builder and its element names.
	// It returns a report with Detected=false for unrecognized pages.
	Detect(html string) *BuilderReport
}
