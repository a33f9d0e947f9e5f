// Package images resolves one image per slide from a photo search backend.
//
// Every slide with an image query is handled by its own goroutine. Search
// results are narrowed to at most three landscape candidates, and when a
// vision model is available each candidate is scored concurrently. The best
// score wins, with a background bonus on the first slide. Without usable
// scores the first wide landscape photo is taken instead.
//
// Failures never cross slide boundaries: a search error, an empty result or
// a timeout leaves that slide without an image and the stage carries on.
package images
