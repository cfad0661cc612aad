// Package integration runs the pixi-ci tools end to end against temporary
// projects, local HTTP servers and shell scripts standing in for pixi.
package integration
