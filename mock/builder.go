package mock

import "github.com/fwojciec/sitescan"

var _ sitescan.BuilderDetector = (*BuilderDetector)(nil)

// BuilderDetector is a mock implementation of sitescan.BuilderDetector.
type BuilderDetector struct {
	DetectFn func(html string) *sitescan.BuilderReport
}

func (d *BuilderDetector) Detect(html string) *sitescan.BuilderReport {
	return d.DetectFn(html)
}
