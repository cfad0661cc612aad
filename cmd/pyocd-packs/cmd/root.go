package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pixi-ci/internal/logger"
	"github.com/oshokin/pixi-ci/internal/service/packs"
	"github.com/oshokin/pixi-ci/internal/version"
)

var (
	// configFilename is the pyocd config inside the project root.
	configFilename string
	// mode is the flag spelling of packs.Mode.
	mode string
	// dryRun prints the merged config instead of writing it.
	dryRun bool
	// logLevel is the minimum level of log output.
	logLevel string

	// rootCmd represents the base command for patching pyocd.yaml.
	rootCmd = &cobra.Command{
		Use:   "pyocd-packs",
		Short: "Add installed CMSIS packs to pyocd.yaml",
		Long: `Scans $CONDA_PREFIX/packs for *.pack files and writes them into the
project's pyocd.yaml between "# BEGIN PIXI PACKS" and "# END PIXI PACKS".

The project root comes from $PIXI_PROJECT_ROOT, or the current directory when
it holds pixi.toml. Without an active environment, a project or any packs the
command does nothing. Running it again with the same packs changes nothing.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.SetLevelFromString(logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			mergeMode, err := packs.ParseMode(mode)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &packs.Options{
				ConfigFilename: configFilename,
				Mode:           mergeMode,
				DryRun:         dryRun,
				Output:         cmd.OutOrStdout(),
			}

			return packs.Run(ctx, options)
		},
	}
)

// Execute runs the pyocd-packs CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configFilename, "config-file", "f", packs.DefaultConfigFilename,
		"pyocd config file name inside the project root")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", packs.ModeKeyAware.String(),
		"where to put a new block: key-aware (under an existing pack: key) or simple (append)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the merged config instead of writing it")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
}
