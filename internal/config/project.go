package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	// ProjectRootEnv points at the pixi project root.
	ProjectRootEnv = "PIXI_PROJECT_ROOT"
	// PrefixEnv points at the active environment prefix.
	PrefixEnv = "CONDA_PREFIX"
	// ProjectMarkerFilename identifies a pixi project directory.
	ProjectMarkerFilename = "pixi.toml"
)

var (
	// ErrPrefixNotSet means no environment is active.
	ErrPrefixNotSet = errors.New(PrefixEnv + " is not set")
	// ErrProjectRootNotFound means neither the env var nor the working directory names a project.
	ErrProjectRootNotFound = errors.New("pixi project root not found")
)

// Project is the resolved location of a pixi project and its active environment.
type Project struct {
	// Root is the project directory holding pixi.toml.
	Root string
	// Prefix is the environment prefix.
	Prefix string
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// GetwdFunc matches os.Getwd.
type GetwdFunc func() (string, error)

// ResolveProject finds the project root and environment prefix.
// The prefix must be set. The root comes from PIXI_PROJECT_ROOT, or from the
// working directory when it contains pixi.toml.
// Nil functions default to os.LookupEnv and os.Getwd.
func ResolveProject(lookup LookupFunc, getwd GetwdFunc) (Project, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if getwd == nil {
		getwd = os.Getwd
	}

	prefix, _ := lookup(PrefixEnv)
	if prefix == "" {
		return Project{}, ErrPrefixNotSet
	}

	root, _ := lookup(ProjectRootEnv)
	if root == "" {
		cwd, err := getwd()
		if err != nil {
			return Project{}, ErrProjectRootNotFound
		}

		if _, err = os.Stat(filepath.Join(cwd, ProjectMarkerFilename)); err != nil {
			return Project{}, ErrProjectRootNotFound
		}

		root = cwd
	}

	return Project{
		Root:   root,
		Prefix: prefix,
	}, nil
}
