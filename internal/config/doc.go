// Package config holds the settings shared by the pixi-ci tools.
//
// Config is the optional YAML settings file of upload-package (channel host,
// upload command, canonical platform). ResolveProject discovers the pixi
// project and environment prefix that pyocd-packs patches.
package config
