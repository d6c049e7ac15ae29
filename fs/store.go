// Package fs stores scrape artifacts on the local filesystem.
package fs

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitescan"
)

// Ensure Store implements sitescan.ArtifactStore at compile time.
var _ sitescan.ArtifactStore = (*Store)(nil)

// Store writes the artifacts of one scrape under a single directory.
// Each file is written to a temporary sibling and renamed into place, so
// readers never observe a partially written artifact.
//
// Store is safe for concurrent use when goroutines write different names.
type Store struct {
	dir string
}

// NewStore creates dir if needed and returns a Store rooted at it.
func NewStore(dir string) (sitescan.ArtifactStore, error) {
	if dir == "" {
		return nil, sitescan.Errorf(sitescan.EINVALID, "output directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteFile writes data to the slash-separated relative name.
func (s *Store) WriteFile(name string, data []byte) error {
	fullPath, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// WriteJSON writes v as two-space indented JSON followed by a newline.
func (s *Store) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.WriteFile(name, append(data, '\n'))
}

// resolve maps a relative artifact name to a path inside the store.
// Absolute names and names escaping the directory are EINVALID.
func (s *Store) resolve(name string) (string, error) {
	clean := path.Clean(name)
	if name == "" || path.IsAbs(clean) || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", sitescan.Errorf(sitescan.EINVALID, "invalid artifact name %q", name)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
