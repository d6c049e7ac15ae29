package rod_test

import (
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/rod"
	"github.com/stretchr/testify/assert"
)

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		ok     bool
	}{
		{status: 0, ok: true},
		{status: 200, ok: true},
		{status: 204, ok: true},
		{status: 301, ok: false},
		{status: 404, ok: false},
		{status: 503, ok: false},
	}
	for _, tt := range tests {
		err := rod.CheckStatus("https://example.com", tt.status)
		if tt.ok {
			assert.NoError(t, err, "status %d", tt.status)
			continue
		}
		assert.Equal(t, sitescan.ENAVIGATION, sitescan.ErrorCode(err), "status %d", tt.status)
		assert.Contains(t, sitescan.ErrorMessage(err), "HTTP")
	}
}
