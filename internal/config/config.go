package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/pixi-ci/internal/logger"
)

// Config holds upload-package settings.
type Config struct {
	// BaseURL is the channel host serving <channel>/<subdir>/repodata.json.
	BaseURL string `yaml:"base_url"`
	// UserAgent is sent with the repodata request.
	UserAgent string `yaml:"user_agent"`
	// CanonicalPlatform is the only platform allowed to upload noarch packages.
	CanonicalPlatform string `yaml:"canonical_platform"`
	// UploadCommand is the uploader invocation; channel, key and path are appended.
	UploadCommand []string `yaml:"upload_command"`
	// Timeout bounds the repodata request.
	Timeout time.Duration `yaml:"timeout"`
	// OutputLogLevel gates the upload command's captured output, independent
	// of the tool's own log level.
	OutputLogLevel string `yaml:"output_log_level"`
}

const (
	// DefaultConfigFilename is the settings file looked up when none is given.
	DefaultConfigFilename = "pixi-ci.yaml"

	// DefaultBaseURL is the prefix.dev channel host.
	DefaultBaseURL = "https://prefix.dev"

	// DefaultCanonicalPlatform uploads noarch packages; other runners skip them.
	DefaultCanonicalPlatform = "Linux"

	// DefaultTimeout bounds the repodata request.
	DefaultTimeout = 30 * time.Second

	// DefaultOutputLogLevel shows the upload command's output on a default run.
	DefaultOutputLogLevel = "info"

	// DefaultFilePermissions is the mode of files written by the tools.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEmptyUploadCommand is returned when upload_command is an empty list.
	errEmptyUploadCommand = errors.New("upload command must not be empty")
	// errUnknownOutputLevel is returned when output_log_level is not a log level.
	errUnknownOutputLevel = errors.New("unknown output log level")
)

// DefaultUploadCommand returns the rattler-build upload invocation run through pixi.
func DefaultUploadCommand() []string {
	return []string{"pixi", "run", "rattler-build", "upload", "prefix"}
}

// Default returns a Config with every field set to its default.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads settings from path. A missing file yields defaults, so the
// settings file is optional in pipelines that are happy with prefix.dev.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the base URL.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.CanonicalPlatform == "" {
		cfg.CanonicalPlatform = DefaultCanonicalPlatform
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.UploadCommand == nil {
		cfg.UploadCommand = DefaultUploadCommand()
	}

	if len(cfg.UploadCommand) == 0 {
		return errEmptyUploadCommand
	}

	if cfg.OutputLogLevel == "" {
		cfg.OutputLogLevel = DefaultOutputLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.OutputLogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownOutputLevel, cfg.OutputLogLevel)
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	return nil
}

// OutputLevel returns the parsed OutputLogLevel, or info when it is invalid.
func (c *Config) OutputLevel() zapcore.Level {
	level, _ := logger.ParseLogLevel(c.OutputLogLevel)

	return level
}
