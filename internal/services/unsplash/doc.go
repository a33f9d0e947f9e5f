// Package unsplash wraps the Unsplash photo search endpoint.
//
// Only search is implemented; results carry the dimensions and URL variants
// needed to pick landscape candidates for slides.
package unsplash
