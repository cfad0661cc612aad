package artifact

import (
	"path/filepath"
	"strings"
)

const (
	// NoarchSubdir is the platform-independent subdir.
	NoarchSubdir = "noarch"
	// FallbackSubdir is used when the path carries no parent directory.
	FallbackSubdir = "linux-64"

	condaSuffix  = ".conda"
	tarBZ2Suffix = ".tar.bz2"
)

// Artifact is a package file produced by rattler-build under output/<subdir>/.
type Artifact struct {
	// Path is the file path as given on the command line.
	Path string
	// Filename is the base name, used as the repodata key.
	Filename string
	// Subdir is the platform directory the file was built into.
	Subdir string
}

// New derives the filename and subdir from path.
func New(path string) Artifact {
	clean := filepath.Clean(path)
	parts := strings.Split(clean, string(filepath.Separator))

	subdir := FallbackSubdir
	if len(parts) > 1 && parts[len(parts)-2] != "" {
		subdir = parts[len(parts)-2]
	}

	return Artifact{
		Path:     path,
		Filename: filepath.Base(clean),
		Subdir:   subdir,
	}
}

// IsNoarch reports whether the package is platform-independent.
func (a Artifact) IsNoarch() bool {
	return a.Subdir == NoarchSubdir
}

// IsLegacyFormat reports whether the file is a .tar.bz2 package, which
// repodata lists under "packages" instead of "packages.conda".
func (a Artifact) IsLegacyFormat() bool {
	return strings.HasSuffix(a.Filename, tarBZ2Suffix)
}

// Identity is the (name, version, build) triple encoded in a package filename.
type Identity struct {
	Name    string
	Version string
	Build   string
}

// ParseFilename splits name-version-build.ext on the last two hyphens.
// Package names may contain hyphens; versions and builds may not.
func ParseFilename(filename string) (Identity, bool) {
	buildSep := strings.LastIndexByte(filename, '-')
	if buildSep <= 0 {
		return Identity{}, false
	}

	versionSep := strings.LastIndexByte(filename[:buildSep], '-')
	if versionSep < 0 {
		return Identity{}, false
	}

	build := filename[buildSep+1:]
	build = strings.ReplaceAll(build, condaSuffix, "")
	build = strings.ReplaceAll(build, tarBZ2Suffix, "")

	return Identity{
		Name:    filename[:versionSep],
		Version: filename[versionSep+1 : buildSep],
		Build:   build,
	}, true
}
