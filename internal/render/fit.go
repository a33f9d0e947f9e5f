package render

import (
	"bytes"
	"fmt"
	"image"
	// Decoders for the formats pictures can be embedded as.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"deckwright/internal/layout"
)

// ImageDPI converts pixel dimensions to inches.
const ImageDPI = 96.0

// Fit scales an image of widthPx by heightPx uniformly to fit inside box and
// centres it. It reports false when the dimensions are unusable.
func Fit(box layout.Box, widthPx, heightPx int) (layout.Box, bool) {
	if widthPx <= 0 || heightPx <= 0 || box.Width <= 0 || box.Height <= 0 {
		return layout.Box{}, false
	}
	imgW := float64(widthPx) / ImageDPI
	imgH := float64(heightPx) / ImageDPI
	scale := min(box.Width/imgW, box.Height/imgH)
	fitW := imgW * scale
	fitH := imgH * scale
	return layout.Box{
		Left:   box.Left + (box.Width-fitW)/2,
		Top:    box.Top + (box.Height-fitH)/2,
		Width:  fitW,
		Height: fitH,
	}, true
}

// ImageInfo is the decoded header of an image.
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// Inspect reads the image header without decoding pixels.
func Inspect(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, fmt.Errorf("image has no dimensions (%dx%d)", cfg.Width, cfg.Height)
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
