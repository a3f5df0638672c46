package skydrift

// Viewport holds the drawing surface's pixel dimensions. Every entity
// constructor and expiry check reads it.
type Viewport struct {
	Width, Height float64
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Bounds returns the viewport as a Rect at the origin.
func (v Viewport) Bounds() Rect {
	return Rect{Width: v.Width, Height: v.Height}
}

// outside reports whether a point moving with velocity (vx, vy) has left the
// viewport grown by margin on every side and is not heading back in.
func (v Viewport) outside(x, y, vx, vy, margin float64) bool {
	switch {
	case x < -margin && vx <= 0:
		return true
	case x > v.Width+margin && vx >= 0:
		return true
	case y < -margin && vy <= 0:
		return true
	case y > v.Height+margin && vy >= 0:
		return true
	}
	return false
}
