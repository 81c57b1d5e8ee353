package vbfplot

import "image/color"

var lineColors = []color.RGBA{
	{A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, B: 127, G: 127, A: 255},
	{R: 255, A: 255},
}

// LineColor returns the color of the i-th curve overlaid on a plot. Colors
// repeat after the fifth curve.
func LineColor(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return lineColors[i%len(lineColors)]
}
