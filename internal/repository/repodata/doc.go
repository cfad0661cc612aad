// Package repodata reads channel metadata (repodata.json) from a prefix.dev
// style host.
//
// The HTTPRepository authenticates with a bearer token and installs a
// RedirectPolicy that drops the token when a redirect leaves the host.
package repodata
