// Package sitescan analyzes the visual structure of third-party web pages.
// It loads a page in a headless browser, splits the rendered document into
// logical sections (hero, pricing, testimonials, ...), and extracts every
// image, font, and video together with the section it belongs to.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package sitescan
