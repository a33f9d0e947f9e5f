// Package pipeline turns a topic into a finished deck.
//
// A run moves through a fixed sequence of states, one per stage:
//
//	pending → outlined → drafted → reviewed → fact_checked → slide_extracted
//	        → notes_enriched → image_enriched → exported
//
// and may end in failed from any non-terminal state. Outline, manuscript,
// slide extraction and export failures end the run. Review, fact-check, notes
// and images degrade instead and the run continues with what it has. The
// manuscript document and the YAML plan are written next to the deck when
// possible and omitted otherwise.
//
// # Entry Points
//
// Pipeline.Run: generate a deck and return its Result.
// Pipeline.Start: the same, in the background, with ordered progress Events.
package pipeline
