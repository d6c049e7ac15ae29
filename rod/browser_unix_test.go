//go:build integration && !windows

package rod_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/sitescan"
	"github.com/fwojciec/sitescan/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Close_KillsLauncherProcess(t *testing.T) {
	t.Parallel()

	s, err := rod.NewBrowser().Launch(context.Background(), sitescan.LaunchOptions{
		Viewport: sitescan.Viewport{Width: 800, Height: 600},
	})
	require.NoError(t, err)
	sess := s.(*rod.Session)

	pid := sess.LauncherPID()
	require.NotZero(t, pid, "launcher PID should be set")

	// On Unix, FindProcess always succeeds, so we must use Signal to verify
	err = syscall.Kill(pid, syscall.Signal(0))
	require.NoError(t, err, "launcher process should be running before Close()")

	require.NoError(t, sess.Close())

	time.Sleep(100 * time.Millisecond)

	err = syscall.Kill(pid, syscall.Signal(0))
	assert.Error(t, err, "launcher process should be terminated after Close()")
}
