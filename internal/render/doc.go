// Package render lays out enriched slides on the fixed 16:9 canvas and
// assembles the presentation file.
//
// Geometry is driven by the layout templates. Text is kept inside its boxes
// by truncating long titles, capping bullet lists and stepping the body font
// down for dense slides. Images are fitted inside their box with a uniform
// scale and centred; an image whose dimensions cannot be read is left out
// rather than guessed at. Each layout draws exactly one decorative
// treatment from its template: accent background, accent bar, accent line,
// dark overlay or card panel.
package render
