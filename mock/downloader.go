package mock

import (
	"context"

	"github.com/fwojciec/sitescan"
)

var _ sitescan.ImageDownloader = (*ImageDownloader)(nil)

// ImageDownloader is a mock implementation of sitescan.ImageDownloader.
type ImageDownloader struct {
	DownloadImagesFn func(ctx context.Context, images []sitescan.Image, store sitescan.ArtifactStore) error
}

func (d *ImageDownloader) DownloadImages(ctx context.Context, images []sitescan.Image, store sitescan.ArtifactStore) error {
	return d.DownloadImagesFn(ctx, images, store)
}
