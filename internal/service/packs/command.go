package packs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oshokin/pixi-ci/internal/config"
	"github.com/oshokin/pixi-ci/internal/logger"
	"github.com/oshokin/pixi-ci/internal/service/common"
)

const (
	// DefaultConfigFilename is the pyocd config patched in the project root.
	DefaultConfigFilename = "pyocd.yaml"
	// DefaultPacksSubdir is where pack recipes install into the prefix.
	DefaultPacksSubdir = "packs"
	// DefaultExtension selects CMSIS pack files.
	DefaultExtension = ".pack"
)

var (
	errUnknownMode   = errors.New("unknown merge mode")
	errNotADirectory = errors.New("not a directory")
	errBadExtension  = errors.New("extension must not contain glob metacharacters")
)

// Options contains inputs for the pyocd-packs entry point.
type Options struct {
	// ConfigFilename is the file patched inside the project root.
	ConfigFilename string
	// PacksSubdir is the directory inside the prefix scanned for packs.
	PacksSubdir string
	// Extension selects pack files.
	Extension string
	// Mode picks the insertion strategy for a document without a block.
	Mode Mode
	// DryRun prints the merged document instead of writing it.
	DryRun bool
	// Output receives the dry-run document; defaults to os.Stdout.
	Output io.Writer
	// Lookup and Getwd override environment and working directory discovery.
	Lookup config.LookupFunc
	Getwd  config.GetwdFunc
}

// Run merges the installed packs into the project's pyocd config.
// A missing environment, project or pack list is not an error: the run
// ends without touching anything.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "pyocd-packs")
	opts = withDefaults(opts)

	project, err := config.ResolveProject(opts.Lookup, opts.Getwd)
	if err != nil {
		logger.DebugKV(ctx, "Nothing to patch", "reason", err.Error())
		return nil
	}

	packsDir := filepath.Join(project.Prefix, opts.PacksSubdir)

	packs, err := Scan(packsDir, opts.Extension)
	if err != nil {
		return fmt.Errorf("scan packs: %w", err)
	}

	if len(packs) == 0 {
		logger.DebugKV(ctx, "No packs installed", "dir", packsDir)
		return nil
	}

	configPath := filepath.Join(project.Root, opts.ConfigFilename)

	existing, err := readLines(configPath)
	if err != nil {
		return err
	}

	merged, changed := Merge(existing, packs, opts.Mode)
	if !changed {
		logger.DebugKV(ctx, "Pack list is up to date", "path", configPath)
		return nil
	}

	contents := JoinLines(merged)

	if opts.DryRun {
		_, err = io.WriteString(opts.Output, contents)
		return err
	}

	if err = common.ReplaceFile(configPath, []byte(contents)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.InfoKV(ctx, "Updated pack list",
		"path", configPath,
		"packs", len(packs),
		"mode", opts.Mode.String())

	return nil
}

// withDefaults returns a copy of opts with empty fields filled in.
func withDefaults(opts *Options) *Options {
	var o Options
	if opts != nil {
		o = *opts
	}

	if o.ConfigFilename == "" {
		o.ConfigFilename = DefaultConfigFilename
	}

	if o.PacksSubdir == "" {
		o.PacksSubdir = DefaultPacksSubdir
	}

	if o.Extension == "" {
		o.Extension = DefaultExtension
	}

	if o.Output == nil {
		o.Output = os.Stdout
	}

	return &o
}

// readLines loads path as lines; a missing file is an empty document.
func readLines(path string) ([]string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return SplitLines(string(contents)), nil
}
