package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pixi-ci/internal/config"
	"github.com/oshokin/pixi-ci/internal/logger"
	"github.com/oshokin/pixi-ci/internal/service/uploader"
	"github.com/oshokin/pixi-ci/internal/version"
)

var (
	// settingsPath to the optional settings YAML file.
	settingsPath string
	// skipHashCheck compares build strings instead of SHA-256.
	skipHashCheck bool
	// logLevel is the minimum level of log output.
	logLevel string

	// rootCmd represents the base command for uploading a package.
	rootCmd = &cobra.Command{
		Use:   "upload-package <artifact-path> <channel> <token> [platform]",
		Short: "Upload a conda package to prefix.dev unless the channel already has it",
		Long: `Compares the package with the channel's repodata.json and runs
"pixi run rattler-build upload prefix" only when the channel lacks it or holds
a different copy.

By default the SHA-256 of the file is compared, and a mismatch is uploaded
with --force. With --skip-hash-check the build string is compared instead and
no force is used. noarch packages are uploaded only from the canonical
platform (Linux unless configured otherwise).

The exit status is the upload command's status when it fails.`,
		Args: cobra.RangeArgs(3, 4), //nolint:mnd // Three required positionals plus an optional platform.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.SetLevelFromString(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &uploader.Options{
				ArtifactPath:  args[0],
				Channel:       args[1],
				Token:         args[2],
				SkipHashCheck: skipHashCheck,
				SettingsPath:  settingsPath,
			}

			if len(args) > 3 {
				options.Platform = args[3]
			}

			return uploader.Run(ctx, options)
		},
	}
)

// Execute runs the upload-package CLI. A failed upload exits with the
// upload command's status, anything else with 1.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	logger.Sync()

	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *uploader.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", config.DefaultConfigFilename,
		"path to the optional settings file")
	rootCmd.Flags().BoolVar(&skipHashCheck, "skip-hash-check", false,
		"compare build strings instead of SHA-256 digests")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}
