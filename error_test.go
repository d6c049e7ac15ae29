package sitescan_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/sitescan"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitescan.Errorf(sitescan.ENAVIGATION, "timed out after %s", "60s")

	assert.Equal(t, sitescan.ENAVIGATION, sitescan.ErrorCode(err))
	assert.Equal(t, "timed out after 60s", sitescan.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading page: %w", sitescan.Errorf(sitescan.EANALYSIS, "page has no body"))

	assert.Equal(t, sitescan.EANALYSIS, sitescan.ErrorCode(err))
	assert.Equal(t, "page has no body", sitescan.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitescan.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitescan.ErrorMessage(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, sitescan.EINTERNAL, sitescan.ErrorCode(err))
	assert.Equal(t, "Internal error", sitescan.ErrorMessage(err))
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"capture warning", sitescan.Errorf(sitescan.ECAPTURE, "skipped"), false},
		{"asset error", sitescan.Errorf(sitescan.EASSET, "HTTP 404"), false},
		{"navigation", sitescan.Errorf(sitescan.ENAVIGATION, "HTTP 500"), true},
		{"analysis", sitescan.Errorf(sitescan.EANALYSIS, "no body"), true},
		{"canceled", context.Canceled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sitescan.IsFatal(tt.err))
		})
	}
}
