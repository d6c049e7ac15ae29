package sitescan

import "context"

// ImageDownloader fetches images into a run's artifact store.
type ImageDownloader interface {
	// DownloadImages fetches every image and records the outcome on
	// images[i].Download, writing bodies under images/ in store. A failed
	// image never stops the others; the returned error is non-nil only
	// when ctx ends before the batch completes.
	DownloadImages(ctx context.Context, images []Image, store ArtifactStore) error
}
