package particles

import "image/color"

// Surface is the drawing target particles render onto.
//
// Coordinates are in pixels. FillCircle takes a center and a diameter.
type Surface interface {
	FillRect(x, y, width, height float64, c color.Color)
	FillCircle(cx, cy, diameter float64, c color.Color)
}
