// Package packs keeps the CMSIS pack list in pyocd.yaml in sync with the
// packs installed into the active pixi environment.
//
// The list lives between "# BEGIN PIXI PACKS" and "# END PIXI PACKS" comment
// lines. Merge rewrites only that span, works on plain lines rather than a
// YAML tree, and is idempotent, so the tool can run on every activation.
package packs
