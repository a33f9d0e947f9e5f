// Package deck defines the values that flow between pipeline stages: the
// user's request, the outline, the spoken manuscript, fact-check reports, and
// slide content.
//
// Each value is produced by exactly one stage and treated as immutable after
// that. Stages that need a modified copy build a new value with the Clone
// helpers rather than editing the input in place.
package deck
