// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and slide numbers for
//     logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent run statuses (failed, invalid, canceled).
//
// Backend clients for generation and image search live in subpackages.
package services
