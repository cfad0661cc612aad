package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestValidate checks defaults and base URL validation.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultCanonicalPlatform, cfg.CanonicalPlatform)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultUploadCommand(), cfg.UploadCommand)
	require.Equal(t, DefaultOutputLogLevel, cfg.OutputLogLevel)
	require.Equal(t, zapcore.InfoLevel, cfg.OutputLevel())

	cfg = &Config{OutputLogLevel: "warning"}
	require.NoError(t, Validate(cfg))
	require.Equal(t, zapcore.WarnLevel, cfg.OutputLevel())

	cfg = &Config{OutputLogLevel: "loud"}
	require.ErrorIs(t, Validate(cfg), errUnknownOutputLevel)

	// Bad scheme.
	cfg = &Config{BaseURL: "ftp://example.com"}
	require.Error(t, Validate(cfg))

	// Not a URL.
	cfg = &Config{BaseURL: "prefix.dev"}
	require.Error(t, Validate(cfg))

	// Explicitly empty command.
	cfg = &Config{UploadCommand: []string{}}
	require.ErrorIs(t, Validate(cfg), errEmptyUploadCommand)

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestLoad_MissingFileYieldsDefaults ensures the settings file is optional.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoad_InvalidYAML surfaces decode errors.
func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := &Config{
		BaseURL:           "https://repo.example.com",
		UserAgent:         "ci/1.0",
		CanonicalPlatform: "Windows",
		UploadCommand:     []string{"rattler-build", "upload", "prefix"},
		Timeout:           5 * time.Second,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}
