// Package uploader decides whether a built conda package has to be pushed to
// a prefix.dev channel and runs rattler-build to push it.
//
// The decision compares the artifact with the channel's repodata.json, either
// by SHA-256 or by build string. Platform-independent packages are uploaded
// from the canonical platform only, so parallel per-platform jobs do not race
// on the same filename.
package uploader
