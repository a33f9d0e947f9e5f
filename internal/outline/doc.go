// Package outline produces the typed presentation outline.
//
// Replies are normalized before validation: a "key_points" field is accepted
// as an alias for "points", a missing or blank section type defaults to
// "main", and types are lower-cased. The canonical shape is then validated
// once against a strict schema. Any generation failure earns exactly one
// retry with a stricter prompt before it propagates.
package outline
