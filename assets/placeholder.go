// Package assets holds static files compiled into the binary.
package assets

import _ "embed"

// PlaceholderSVG is served for products without a stored image.
//
//go:embed placeholder.svg
var PlaceholderSVG []byte

const PlaceholderMimetype = "image/svg+xml"
