// Package asset turns raw asset references swept from a page into resolved,
// deduplicated image, font, and video records mapped onto page sections.
package asset

// RawImage is an image reference as reported by the page. For background
// images URL holds the computed background-image value.
type RawImage struct {
	Kind   string  `json:"kind"`
	URL    string  `json:"url"`
	Alt    string  `json:"alt"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Top    float64 `json:"top"`
}

// RawFontLink is a <link href> found in the document.
type RawFontLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

// RawFontFace is an @font-face rule read from a stylesheet. Base is the URL
// the rule's src is relative to.
type RawFontFace struct {
	Family string `json:"family"`
	Src    string `json:"src"`
	Weight string `json:"weight"`
	Style  string `json:"style"`
	Base   string `json:"base"`
}

// FontSweep is everything the page reports about fonts. Usage maps a
// lowercased family name to the top of the first element rendered with it.
type FontSweep struct {
	Links []RawFontLink      `json:"links"`
	Faces []RawFontFace      `json:"faces"`
	Usage map[string]float64 `json:"usage"`
}

// RawVideo is an <iframe> or <video> as reported by the page.
type RawVideo struct {
	Kind   string  `json:"kind"`
	URL    string  `json:"url"`
	Poster string  `json:"poster"`
	Top    float64 `json:"top"`
}

// Raw kinds reported by the sweeps.
const (
	KindImg        = "img"
	KindBackground = "background"
	KindIframe     = "iframe"
	KindVideo      = "video"
)
