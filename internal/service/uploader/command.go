package uploader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oshokin/pixi-ci/internal/config"
	"github.com/oshokin/pixi-ci/internal/domain/artifact"
	"github.com/oshokin/pixi-ci/internal/logger"
	"github.com/oshokin/pixi-ci/internal/repository/repodata"
	"github.com/oshokin/pixi-ci/internal/service/common"
	"github.com/oshokin/pixi-ci/internal/version"
)

// toolName names the logger and the default User-Agent.
const toolName = "upload-package"

var (
	errArtifactRequired = errors.New("artifact path must be provided")
	errChannelRequired  = errors.New("channel must be provided")
)

// Options are inputs accepted by the upload-package entry point.
type Options struct {
	// ArtifactPath is the built package, normally output/<subdir>/<file>.
	ArtifactPath string
	// Channel is the prefix.dev channel name.
	Channel string
	// Token is the prefix.dev API key.
	Token string
	// Platform is the runner OS; empty means the canonical platform.
	Platform string
	// SkipHashCheck selects StrategyBuild instead of StrategyHash.
	SkipHashCheck bool
	// SettingsPath is the optional settings YAML.
	SettingsPath string

	// Settings, Repository and Runner replace the defaults when set.
	Settings   *config.Config
	Repository repodata.Repository
	Runner     CommandRunner
}

// Run decides whether the artifact needs uploading and uploads it.
// A failed upload command surfaces as *ExitError.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	if opts.ArtifactPath == "" {
		return errArtifactRequired
	}

	if opts.Channel == "" {
		return errChannelRequired
	}

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	platform := opts.Platform
	if platform == "" {
		platform = settings.CanonicalPlatform
	}

	art := artifact.New(opts.ArtifactPath)
	ctx = logger.WithKV(ctx, "package", art.Filename, "subdir", art.Subdir)

	if SkipOnPlatform(art, platform, settings.CanonicalPlatform) {
		logger.InfoKV(ctx, "Skipping noarch package to avoid racing the canonical runner",
			"platform", platform,
			"canonical_platform", settings.CanonicalPlatform)

		return nil
	}

	if _, err = os.Stat(art.Path); err != nil {
		return fmt.Errorf("artifact: %w", err)
	}

	strategy := StrategyHash
	if opts.SkipHashCheck {
		strategy = StrategyBuild
	}

	logger.InfoKV(ctx, "Processing package", "path", art.Path, "strategy", strategy.String())

	repo, err := repository(opts, settings)
	if err != nil {
		return err
	}

	remote := fetchRemote(ctx, repo, opts.Channel, art)

	input := Input{
		Artifact:          art,
		Platform:          platform,
		CanonicalPlatform: settings.CanonicalPlatform,
		Strategy:          strategy,
		Remote:            remote,
	}

	if strategy == StrategyHash && remote != nil {
		if input.LocalSHA256, err = common.FileChecksumHex(art.Path); err != nil {
			return fmt.Errorf("hash artifact: %w", err)
		}
	}

	decision := Decide(input)

	logger.InfoKV(ctx, "Upload decision",
		"action", decision.Action.String(),
		"force", decision.Force,
		"reason", decision.Reason)

	if !decision.ShouldUpload() {
		return nil
	}

	up, err := NewUploader(opts.Runner, settings.UploadCommand, opts.Channel, opts.Token)
	if err != nil {
		return err
	}

	up.SetOutputLevel(settings.OutputLevel())

	if err = up.Upload(ctx, art.Path, decision.Force); err != nil {
		return err
	}

	logger.Info(ctx, "Upload completed")

	return nil
}

func loadSettings(opts *Options) (*config.Config, error) {
	if opts.Settings != nil {
		settings := *opts.Settings
		if err := config.Validate(&settings); err != nil {
			return nil, err
		}

		return &settings, nil
	}

	settings, err := config.Load(opts.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return settings, nil
}

//nolint:ireturn // Callers may inject any Repository.
func repository(opts *Options, settings *config.Config) (repodata.Repository, error) {
	if opts.Repository != nil {
		return opts.Repository, nil
	}

	userAgent := settings.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent(toolName)
	}

	return repodata.NewHTTPRepository(settings.BaseURL,
		repodata.WithToken(opts.Token),
		repodata.WithUserAgent(userAgent),
		repodata.WithTimeout(settings.Timeout),
	)
}

// fetchRemote returns the channel entry for art, or nil when the channel
// does not list it or cannot be read. Fetch failures only cost an upload.
func fetchRemote(ctx context.Context, repo repodata.Repository, channel string, art artifact.Artifact) *repodata.Record {
	data, err := repo.Fetch(ctx, channel, art.Subdir)
	if err != nil {
		logger.WarnKV(ctx, "Failed to fetch repodata, assuming new package", "error", err)
		return nil
	}

	record, ok := data.Lookup(art.Filename, art.IsLegacyFormat())
	if !ok {
		return nil
	}

	if identity, parsed := artifact.ParseFilename(art.Filename); parsed {
		logger.InfoKV(ctx, "Package exists on channel",
			"name", identity.Name,
			"version", identity.Version,
			"build", identity.Build)
	}

	return record
}
