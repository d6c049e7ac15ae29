package asset

import (
	"strings"

	"github.com/fwojciec/sitescan"
)

// ResolveImages resolves raw image references, drops inline and duplicate
// URLs, and maps each image onto sections. The first occurrence of a URL
// supplies its metadata.
func ResolveImages(r *Resolver, raws []RawImage, sections []sitescan.Section) []sitescan.Image {
	images := make([]sitescan.Image, 0, len(raws))
	dupes := seen{}
	for _, raw := range raws {
		typ := sitescan.ImageTypeImg
		refs := []string{raw.URL}
		if raw.Kind == KindBackground {
			typ = sitescan.ImageTypeBackground
			refs = CSSURLs(raw.URL)
		}
		for _, ref := range refs {
			if strings.HasPrefix(strings.TrimSpace(ref), "data:") {
				continue
			}
			abs, ok := r.Resolve(ref)
			if !ok || !dupes.add(abs) {
				continue
			}
			images = append(images, sitescan.Image{
				OriginalURL:  abs,
				SectionIndex: sitescan.SectionAt(sections, raw.Top),
				Type:         typ,
				Alt:          strings.TrimSpace(raw.Alt),
				Width:        raw.Width,
				Height:       raw.Height,
				Top:          raw.Top,
			})
		}
	}
	return images
}
