package sitescan_test

import (
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/stretchr/testify/assert"
)

func TestClampClip(t *testing.T) {
	t.Parallel()

	viewport := sitescan.Viewport{Width: 800, Height: 100}

	tests := []struct {
		name string
		clip sitescan.Clip
		want sitescan.Clip
		ok   bool
	}{
		{
			name: "inside viewport",
			clip: sitescan.Clip{X: 0, Y: 10, Width: 800, Height: 50},
			want: sitescan.Clip{X: 0, Y: 10, Width: 800, Height: 50},
			ok:   true,
		},
		{
			name: "truncated at bottom and right",
			clip: sitescan.Clip{X: 0, Y: 50, Width: 1440, Height: 100},
			want: sitescan.Clip{X: 0, Y: 50, Width: 800, Height: 50},
			ok:   true,
		},
		{
			name: "negative origin clamps to zero",
			clip: sitescan.Clip{X: -5, Y: -20, Width: 100, Height: 30.2},
			want: sitescan.Clip{X: 0, Y: 0, Width: 100, Height: 31},
			ok:   true,
		},
		{
			name: "starts at viewport bottom",
			clip: sitescan.Clip{X: 0, Y: 100, Width: 800, Height: 50},
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := sitescan.ClampClip(tt.clip, viewport)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
