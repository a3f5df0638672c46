package skydrift

// GradientStop is a color at a normalized offset along a gradient.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Surface is the 2D drawing target the engine paints onto. Coordinates are
// in pixels with the origin at the top-left.
type Surface interface {
	// Resize sets the pixel dimensions of the surface.
	Resize(width, height int)
	// Clear erases the whole surface to transparent.
	Clear()
	// FillGradient fills r with a vertical linear gradient running from
	// the top edge (offset 0) to the bottom edge (offset 1).
	FillGradient(r Rect, stops []GradientStop)
	// FillEllipse fills an axis-aligned ellipse.
	FillEllipse(cx, cy, rx, ry float64, c Color)
	// StrokePolyline strokes the open path through pts.
	StrokePolyline(pts []Vec2, width float64, c Color)
	// StrokeGradient strokes a line from -> to whose color follows stops,
	// offset 0 at from.
	StrokeGradient(from, to Vec2, width float64, stops []GradientStop)
}
