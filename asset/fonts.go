package asset

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitescan"
)

// Font sources.
const (
	SourceGoogleFonts = "google-fonts"
	SourceBunnyFonts  = "bunny-fonts"
	SourceAdobeFonts  = "adobe-fonts"
	SourceFontFace    = "font-face"
)

// fontHosts maps known web-font hosts to their source name.
var fontHosts = map[string]string{
	"fonts.googleapis.com": SourceGoogleFonts,
	"fonts.bunny.net":      SourceBunnyFonts,
	"use.typekit.net":      SourceAdobeFonts,
	"p.typekit.net":        SourceAdobeFonts,
}

// FontFamily is one family parsed from a web-font URL.
type FontFamily struct {
	Name    string
	Weights []string
	Styles  []string
}

// ParseFamilies parses the family= parameters of a Google-Fonts-style URL.
// Both the css (family=A:400,700italic|B) and css2
// (family=A:ital,wght@0,400;1,700) syntaxes are understood.
func ParseFamilies(rawURL string) []FontFamily {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	var out []FontFamily
	for _, value := range familyParams(u.RawQuery) {
		for _, entry := range strings.Split(value, "|") {
			if f, ok := parseFamily(entry); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

// familyParams returns the decoded family= values of a raw query. The css2
// syntax puts semicolons inside values, which url.ParseQuery rejects.
func familyParams(rawQuery string) []string {
	var out []string
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key != "family" {
			continue
		}
		if v, err := url.QueryUnescape(value); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func parseFamily(entry string) (FontFamily, bool) {
	name, variants, _ := strings.Cut(entry, ":")
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "+", " ")), " ")
	if name == "" {
		return FontFamily{}, false
	}
	f := FontFamily{Name: name}
	if axes, tuples, ok := strings.Cut(variants, "@"); ok {
		f.Weights, f.Styles = parseAxes(axes, tuples)
	} else if variants != "" {
		f.Weights, f.Styles = parseVariants(variants)
	}
	if len(f.Weights) == 0 {
		f.Weights = []string{"400"}
	}
	if len(f.Styles) == 0 {
		f.Styles = []string{"normal"}
	}
	return f, true
}

// parseAxes handles css2 axis tuples such as "ital,wght" / "0,400;1,700".
func parseAxes(axes, tuples string) (weights, styles []string) {
	names := strings.Split(axes, ",")
	for _, tuple := range strings.Split(tuples, ";") {
		values := strings.Split(tuple, ",")
		for i, v := range values {
			if i >= len(names) {
				break
			}
			switch names[i] {
			case "wght":
				weights = appendUnique(weights, v)
			case "ital":
				style := "normal"
				if v == "1" {
					style = "italic"
				}
				styles = appendUnique(styles, style)
			}
		}
	}
	return weights, styles
}

// parseVariants handles css variants such as "400,700italic,300i".
func parseVariants(list string) (weights, styles []string) {
	for _, v := range strings.Split(list, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		digits := strings.TrimLeftFunc(v, func(r rune) bool { return r >= '0' && r <= '9' })
		weight := v[:len(v)-len(digits)]
		style := "normal"
		switch digits {
		case "italic", "i":
			style = "italic"
		case "bold", "b":
			weight = "700"
		case "bolditalic", "bi":
			weight, style = "700", "italic"
		}
		if weight == "" {
			weight = "400"
		}
		weights = appendUnique(weights, weight)
		styles = appendUnique(styles, style)
	}
	return weights, styles
}

func appendUnique(list []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return list
	}
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// ResolveFonts turns a font sweep into font records. A family is recorded
// once; the first link or @font-face that names it wins.
func ResolveFonts(r *Resolver, sweep FontSweep, sections []sitescan.Section) []sitescan.Font {
	var fonts []sitescan.Font
	families := seen{}
	add := func(f sitescan.Font) {
		if !families.add(strings.ToLower(f.Family)) {
			return
		}
		f.Top = -1
		f.SectionIndex = sitescan.Unassigned
		if top, ok := sweep.Usage[strings.ToLower(f.Family)]; ok {
			f.Top = top
			f.SectionIndex = sitescan.SectionAt(sections, top)
		}
		fonts = append(fonts, f)
	}

	for _, link := range sweep.Links {
		abs, ok := r.Resolve(link.Href)
		if !ok {
			continue
		}
		u, _ := url.Parse(abs)
		source, known := fontHosts[u.Hostname()]
		if !known {
			continue
		}
		if source == SourceAdobeFonts {
			kit := strings.TrimSuffix(strings.TrimPrefix(u.Path, "/"), ".css")
			add(sitescan.Font{OriginalURL: abs, Family: "adobe-fonts:" + kit, Source: source})
			continue
		}
		for _, fam := range ParseFamilies(abs) {
			add(sitescan.Font{
				OriginalURL: abs,
				Family:      fam.Name,
				Source:      source,
				Weights:     fam.Weights,
				Styles:      fam.Styles,
			})
		}
	}

	for _, face := range sweep.Faces {
		family := strings.Trim(strings.TrimSpace(face.Family), `"'`)
		if family == "" {
			continue
		}
		var src string
		for _, ref := range CSSURLs(face.Src) {
			if abs, ok := r.ResolveFrom(face.Base, ref); ok {
				src = abs
				break
			}
		}
		if src == "" {
			continue
		}
		add(sitescan.Font{
			OriginalURL: src,
			Family:      family,
			Source:      SourceFontFace,
			Weights:     appendUnique(nil, orDefault(face.Weight, "400")),
			Styles:      appendUnique(nil, orDefault(face.Style, "normal")),
		})
	}
	return fonts
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
