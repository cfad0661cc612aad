package uploader

import (
	"fmt"
	"strings"

	"github.com/oshokin/pixi-ci/internal/domain/artifact"
	"github.com/oshokin/pixi-ci/internal/repository/repodata"
)

// Strategy selects how a local artifact is compared with its channel entry.
type Strategy int

const (
	// StrategyHash compares SHA-256 digests and forces an overwrite on mismatch.
	StrategyHash Strategy = iota
	// StrategyBuild compares build strings and never forces.
	StrategyBuild
)

// String returns the strategy name used in logs.
func (s Strategy) String() string {
	switch s {
	case StrategyHash:
		return "hash"
	case StrategyBuild:
		return "build"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Input is everything Decide looks at.
type Input struct {
	// Artifact is the local package.
	Artifact artifact.Artifact
	// Platform is the OS name of the current runner.
	Platform string
	// CanonicalPlatform is the runner that owns noarch uploads.
	CanonicalPlatform string
	// Strategy picks the comparison.
	Strategy Strategy
	// Remote is the channel entry for the artifact's filename, if any.
	Remote *repodata.Record
	// LocalSHA256 is the hex digest of the artifact; required by StrategyHash
	// when Remote is set.
	LocalSHA256 string
}

// SkipOnPlatform reports whether a noarch artifact should be left to the canonical runner.
func SkipOnPlatform(a artifact.Artifact, platform, canonical string) bool {
	return a.IsNoarch() && platform != canonical
}

// Decide compares the artifact with its channel entry.
func Decide(in Input) artifact.Decision {
	if SkipOnPlatform(in.Artifact, in.Platform, in.CanonicalPlatform) {
		return artifact.Decision{
			Action: artifact.Skip,
			Reason: fmt.Sprintf("noarch package is uploaded from %s only", in.CanonicalPlatform),
		}
	}

	if in.Remote == nil {
		return artifact.Decision{
			Action: artifact.UploadNew,
			Reason: "package not found on channel",
		}
	}

	if in.Strategy == StrategyBuild {
		return decideByBuild(in)
	}

	return decideByHash(in)
}

func decideByHash(in Input) artifact.Decision {
	if in.LocalSHA256 != "" && strings.EqualFold(in.LocalSHA256, in.Remote.SHA256) {
		return artifact.Decision{
			Action: artifact.Skip,
			Reason: "sha256 matches channel",
		}
	}

	return artifact.Decision{
		Action: artifact.UploadChanged,
		Force:  true,
		Reason: fmt.Sprintf("sha256 differs (local: %s, remote: %s)", in.LocalSHA256, in.Remote.SHA256),
	}
}

// decideByBuild trusts build strings: they are derived from the recipe
// inputs, so an equal build means an equal package.
func decideByBuild(in Input) artifact.Decision {
	local, ok := artifact.ParseFilename(in.Artifact.Filename)
	if ok && local.Build == in.Remote.Build {
		return artifact.Decision{
			Action: artifact.Skip,
			Reason: fmt.Sprintf("build string matches (%s), recipe unchanged", local.Build),
		}
	}

	return artifact.Decision{
		Action: artifact.UploadChanged,
		Force:  false,
		Reason: fmt.Sprintf("build string differs (local: %s, remote: %s), recipe changed", local.Build, in.Remote.Build),
	}
}
