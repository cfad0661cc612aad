// Package common holds helpers shared by several services.
//
// It computes SHA-256 file checksums the way repodata.json records them and
// replaces files atomically through go-update, verifying the written bytes.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
