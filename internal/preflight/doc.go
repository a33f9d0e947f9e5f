// Package preflight provides readiness checks for the generation backend,
// the image service and the filesystem paths deckwright writes to.
//
// The "deckwright doctor" command runs RunAll and prints one line per check.
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
