package sitescan

// Artifact names written for every run, relative to the output directory.
const (
	ArtifactFullPage = "full-page.png"
	ArtifactPageHTML = "page.html"
	ArtifactDOMTree  = "dom-tree.json"
	ArtifactSections = "sections.json"
	ArtifactImages   = "images.json"
	ArtifactFonts    = "fonts.json"
	ArtifactVideos   = "videos.json"
	ArtifactMetadata = "metadata.json"
)

// ArtifactStore persists the files of one scrape under its output directory.
// Names are slash-separated paths relative to Dir regardless of host OS.
type ArtifactStore interface {
	// Dir returns the output directory.
	Dir() string

	// WriteFile writes data to name, creating parent directories.
	WriteFile(name string, data []byte) error

	// WriteJSON writes v as indented JSON to name.
	WriteJSON(name string, v any) error
}

// StoreFactory opens the artifact store for an output directory.
type StoreFactory func(dir string) (ArtifactStore, error)
