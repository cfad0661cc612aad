package uploader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/pixi-ci/internal/domain/artifact"
	"github.com/oshokin/pixi-ci/internal/repository/repodata"
)

var (
	linuxArtifact  = artifact.New(filepath.Join("output", "linux-64", "tool-1.0-h1_0.conda"))
	noarchArtifact = artifact.New(filepath.Join("output", "noarch", "tool-1.0-h1_0.conda"))
)

// TestDecide_Hash covers skip, forced change and new package.
func TestDecide_Hash(t *testing.T) {
	t.Parallel()

	in := Input{
		Artifact:          linuxArtifact,
		Platform:          "Linux",
		CanonicalPlatform: "Linux",
		Strategy:          StrategyHash,
		LocalSHA256:       "ABCD",
	}

	got := Decide(in)
	require.Equal(t, artifact.UploadNew, got.Action)
	require.False(t, got.Force)

	in.Remote = &repodata.Record{SHA256: "abcd", Build: "other"}
	got = Decide(in)
	require.Equal(t, artifact.Skip, got.Action)

	in.Remote = &repodata.Record{SHA256: "ffff", Build: "h1_0"}
	got = Decide(in)
	require.Equal(t, artifact.UploadChanged, got.Action)
	require.True(t, got.Force)

	// A missing local digest never matches.
	in.LocalSHA256 = ""
	in.Remote = &repodata.Record{SHA256: ""}
	require.Equal(t, artifact.UploadChanged, Decide(in).Action)
}

// TestDecide_Build covers skip, unforced change and new package.
func TestDecide_Build(t *testing.T) {
	t.Parallel()

	in := Input{
		Artifact:          linuxArtifact,
		Platform:          "Linux",
		CanonicalPlatform: "Linux",
		Strategy:          StrategyBuild,
	}

	require.Equal(t, artifact.UploadNew, Decide(in).Action)

	in.Remote = &repodata.Record{Build: "h1_0", SHA256: "different"}
	require.Equal(t, artifact.Skip, Decide(in).Action)

	in.Remote = &repodata.Record{Build: "h2_0"}
	got := Decide(in)
	require.Equal(t, artifact.UploadChanged, got.Action)
	require.False(t, got.Force)
	require.Contains(t, got.Reason, "h2_0")

	// Unparsable filenames never match a remote build.
	in.Artifact = artifact.New(filepath.Join("output", "linux-64", "weird.conda"))
	in.Remote = &repodata.Record{Build: ""}
	require.Equal(t, artifact.UploadChanged, Decide(in).Action)
}

// TestDecide_PlatformFilter skips noarch on non-canonical runners whatever the channel says.
func TestDecide_PlatformFilter(t *testing.T) {
	t.Parallel()

	remotes := []*repodata.Record{nil, {SHA256: "x"}, {Build: "h1_0"}}

	for _, strategy := range []Strategy{StrategyHash, StrategyBuild} {
		for _, remote := range remotes {
			got := Decide(Input{
				Artifact:          noarchArtifact,
				Platform:          "Windows",
				CanonicalPlatform: "Linux",
				Strategy:          strategy,
				Remote:            remote,
			})
			require.Equal(t, artifact.Skip, got.Action)
		}
	}

	// The canonical runner uploads noarch packages normally.
	got := Decide(Input{
		Artifact:          noarchArtifact,
		Platform:          "Linux",
		CanonicalPlatform: "Linux",
	})
	require.Equal(t, artifact.UploadNew, got.Action)

	// Platform-specific packages upload from any runner.
	require.False(t, SkipOnPlatform(linuxArtifact, "macOS", "Linux"))
}

// TestStrategyString names strategies for logs.
func TestStrategyString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "hash", StrategyHash.String())
	require.Equal(t, "build", StrategyBuild.String())
	require.Equal(t, "Strategy(9)", Strategy(9).String())
}
