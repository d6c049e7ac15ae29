package main_test

import (
	"strings"
	"testing"

	main "github.com/fwojciec/sitescan/cmd/sitescan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLConfig(t *testing.T) {
	t.Parallel()

	t.Run("accepts empty file", func(t *testing.T) {
		t.Parallel()

		r, err := main.YAMLConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := main.YAMLConfig(strings.NewReader("viewport: [1440"))

		assert.Error(t, err)
	})
}
