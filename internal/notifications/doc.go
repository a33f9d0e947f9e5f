// Package notifications pushes run outcomes to ntfy.
//
// NewService returns an ntfy-backed Service when a topic is configured and a
// no-op otherwise, so callers never check for configuration themselves. The
// pipeline notifies when a run completes or fails; the doctor command sends a
// test message.
package notifications
