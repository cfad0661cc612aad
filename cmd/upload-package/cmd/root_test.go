package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/pixi-ci/internal/service/uploader"
)

// TestExitCode maps upload failures to their own status and everything else to 1.
func TestExitCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 1, exitCode(errors.New("boom")))
	require.Equal(t, 42, exitCode(&uploader.ExitError{Code: 42}))
	require.Equal(t, 7, exitCode(fmt.Errorf("wrapped: %w", &uploader.ExitError{Code: 7})))
}

// TestRootCmd_RequiresThreeArgs prints usage to stderr and fails.
func TestRootCmd_RequiresThreeArgs(t *testing.T) {
	var stderr bytes.Buffer

	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(&stderr)
	rootCmd.SetArgs([]string{"output/noarch/x-1-0.conda", "channel"})

	t.Cleanup(func() {
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	require.Equal(t, 1, exitCode(err))
	require.Contains(t, stderr.String(), "Usage:")
}
