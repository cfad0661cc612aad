// Package artifact contains the domain types of a built conda package:
// where it lives (Artifact), what it is (Identity) and what to do with it
// (Decision).
package artifact
