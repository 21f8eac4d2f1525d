package render

import (
	"bytes"
	"fmt"
	"image/color"
)

// spriteFill is the placeholder body color of the piece assets.
var spriteFill = []byte("#ff00ff")

// tintSVG normalizes the CSS spellings oksvg cannot parse and swaps the
// placeholder body color for fill.
func tintSVG(svg []byte, fill color.NRGBA) []byte {
	fixed := bytes.ReplaceAll(svg, []byte("fill: #"), []byte("fill:#"))
	fixed = bytes.ReplaceAll(fixed, []byte("stroke: #"), []byte("stroke:#"))
	fixed = bytes.ReplaceAll(fixed, []byte("stop-color: #"), []byte("stop-color:#"))
	hex := fmt.Sprintf("#%02x%02x%02x", fill.R, fill.G, fill.B)
	return bytes.ReplaceAll(fixed, spriteFill, []byte(hex))
}
