package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func wdOf(dir string) GetwdFunc {
	return func() (string, error) {
		return dir, nil
	}
}

// TestResolveProject_FromEnv uses both variables when present.
func TestResolveProject_FromEnv(t *testing.T) {
	t.Parallel()

	project, err := ResolveProject(envOf(map[string]string{
		PrefixEnv:      "/env",
		ProjectRootEnv: "/work/project",
	}), wdOf(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, Project{Root: "/work/project", Prefix: "/env"}, project)
}

// TestResolveProject_NoPrefix aborts even when the root is known.
func TestResolveProject_NoPrefix(t *testing.T) {
	t.Parallel()

	_, err := ResolveProject(envOf(map[string]string{
		ProjectRootEnv: "/work/project",
	}), wdOf(t.TempDir()))
	require.ErrorIs(t, err, ErrPrefixNotSet)

	_, err = ResolveProject(envOf(map[string]string{PrefixEnv: ""}), wdOf(t.TempDir()))
	require.ErrorIs(t, err, ErrPrefixNotSet)
}

// TestResolveProject_FallsBackToWorkingDirectory requires pixi.toml in the working directory.
func TestResolveProject_FallsBackToWorkingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := envOf(map[string]string{PrefixEnv: "/env"})

	_, err := ResolveProject(env, wdOf(dir))
	require.ErrorIs(t, err, ErrProjectRootNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectMarkerFilename), nil, 0o600))

	project, err := ResolveProject(env, wdOf(dir))
	require.NoError(t, err)
	require.Equal(t, dir, project.Root)

	_, err = ResolveProject(env, func() (string, error) {
		return "", errors.New("getwd failed")
	})
	require.ErrorIs(t, err, ErrProjectRootNotFound)
}
