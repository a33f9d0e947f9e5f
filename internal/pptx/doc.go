// Package pptx writes PresentationML packages.
//
// It covers the subset deckwright draws with: slide and rectangle
// backgrounds (solid, translucent or two-stop linear gradient), rectangles
// and rounded panels, text boxes of styled paragraphs, embedded pictures and
// presenter notes pages. Every slide is based on a single blank layout, so
// all geometry is absolute and expressed in EMU.
//
// A Presentation is built in memory and serialized with Write, which emits a
// complete zip package that PowerPoint, Keynote and LibreOffice open.
package pptx
