package mock

import "github.com/fwojciec/sitescan"

var _ sitescan.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of sitescan.ArtifactStore.
type ArtifactStore struct {
	DirFn       func() string
	WriteFileFn func(name string, data []byte) error
	WriteJSONFn func(name string, v any) error
}

func (s *ArtifactStore) Dir() string {
	return s.DirFn()
}

func (s *ArtifactStore) WriteFile(name string, data []byte) error {
	return s.WriteFileFn(name, data)
}

func (s *ArtifactStore) WriteJSON(name string, v any) error {
	return s.WriteJSONFn(name, v)
}
