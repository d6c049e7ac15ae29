package mock

import "github.com/fwojciec/sitescan"

var _ sitescan.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitescan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
