// Package version exposes build metadata for the pixi-ci tools.
//
// Version, Commit and BuildTime are injected through -ldflags by the release
// pipeline and keep placeholder values for local builds.
package version
