package skydrift

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVerts bounds the vertex buffer before an automatic flush.
const maxBatchVerts = 1 << 16

// ScreenSurface is an Ebitengine Surface. Shapes are tessellated into
// untextured triangles and submitted in batches with a single
// DrawTriangles32 call per flush. Bind it to the screen image at the start
// of each Draw and call Flush at the end.
type ScreenSurface struct {
	target        *ebiten.Image
	width, height int

	verts []ebiten.Vertex
	inds  []uint32
}

// NewScreenSurface creates an unbound surface.
func NewScreenSurface() *ScreenSurface {
	return &ScreenSurface{}
}

// Bind sets the image subsequent draws go to.
func (s *ScreenSurface) Bind(target *ebiten.Image) {
	if s.target != target {
		s.Flush()
	}
	s.target = target
}

// Resize implements Surface. The screen image itself is sized by
// Ebitengine's Layout; this only records the logical dimensions.
func (s *ScreenSurface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the logical dimensions set by Resize.
func (s *ScreenSurface) Size() (width, height int) {
	return s.width, s.height
}

// Clear implements Surface. Unflushed geometry is dropped.
func (s *ScreenSurface) Clear() {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	if s.target != nil {
		s.target.Clear()
	}
}

// FillGradient implements Surface.
func (s *ScreenSurface) FillGradient(r Rect, stops []GradientStop) {
	if len(stops) == 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	left := Vec2{r.X, r.Y}
	right := Vec2{r.X + r.Width, r.Y}
	s.appendBand(left, right, Vec2{0, r.Height}, stops)
}

// FillEllipse implements Surface.
func (s *ScreenSurface) FillEllipse(cx, cy, rx, ry float64, c Color) {
	if rx <= 0 || ry <= 0 || c.A <= 0 {
		return
	}
	segs := ellipseSegments(rx, ry)
	base := uint32(len(s.verts))
	s.verts = append(s.verts, vertex(cx, cy, c))
	for i := range segs {
		a := 2 * math.Pi * float64(i) / float64(segs)
		s.verts = append(s.verts, vertex(cx+math.Cos(a)*rx, cy+math.Sin(a)*ry, c))
	}
	for i := range uint32(segs) {
		next := (i+1)%uint32(segs) + 1
		s.inds = append(s.inds, base, base+i+1, base+next)
	}
	s.flushIfFull()
}

// StrokePolyline implements Surface. Each segment is a quad; joins are not
// mitred.
func (s *ScreenSurface) StrokePolyline(pts []Vec2, width float64, c Color) {
	if len(pts) < 2 || width <= 0 || c.A <= 0 {
		return
	}
	for i := 1; i < len(pts); i++ {
		nx, ny, ok := normal(pts[i-1], pts[i], width/2)
		if !ok {
			continue
		}
		base := uint32(len(s.verts))
		s.verts = append(s.verts,
			vertex(pts[i-1].X+nx, pts[i-1].Y+ny, c),
			vertex(pts[i-1].X-nx, pts[i-1].Y-ny, c),
			vertex(pts[i].X+nx, pts[i].Y+ny, c),
			vertex(pts[i].X-nx, pts[i].Y-ny, c),
		)
		s.inds = append(s.inds, base, base+1, base+2, base+1, base+3, base+2)
	}
	s.flushIfFull()
}

// StrokeGradient implements Surface.
func (s *ScreenSurface) StrokeGradient(from, to Vec2, width float64, stops []GradientStop) {
	if len(stops) == 0 || width <= 0 {
		return
	}
	nx, ny, ok := normal(from, to, width/2)
	if !ok {
		return
	}
	s.appendBand(Vec2{from.X + nx, from.Y + ny}, Vec2{from.X - nx, from.Y - ny},
		Vec2{to.X - from.X, to.Y - from.Y}, stops)
	s.flushIfFull()
}

// appendBand emits a strip spanning the edge a-b swept along axis, with one
// row of vertices per gradient stop. Stops are expected in ascending offset
// order; the first and last colors are extended to the ends.
func (s *ScreenSurface) appendBand(a, b, axis Vec2, stops []GradientStop) {
	base := uint32(len(s.verts))
	rows := uint32(0)
	emit := func(t float64, c Color) {
		s.verts = append(s.verts,
			vertex(a.X+axis.X*t, a.Y+axis.Y*t, c),
			vertex(b.X+axis.X*t, b.Y+axis.Y*t, c),
		)
		rows++
	}
	if stops[0].Offset > 0 {
		emit(0, stops[0].Color)
	}
	for _, st := range stops {
		emit(clamp01(st.Offset), st.Color)
	}
	if last := stops[len(stops)-1]; last.Offset < 1 {
		emit(1, last.Color)
	}
	for r := uint32(1); r < rows; r++ {
		i := base + (r-1)*2
		s.inds = append(s.inds, i, i+1, i+2, i+1, i+3, i+2)
	}
}

func (s *ScreenSurface) flushIfFull() {
	if len(s.verts) >= maxBatchVerts {
		s.Flush()
	}
}

// Flush submits the batched triangles to the bound image.
func (s *ScreenSurface) Flush() {
	if s.target == nil || len(s.inds) == 0 {
		s.verts = s.verts[:0]
		s.inds = s.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	s.target.DrawTriangles32(s.verts, s.inds, ensureWhitePixel(), &op)
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// vertex builds an untextured vertex with a premultiplied color.
func vertex(x, y float64, c Color) ebiten.Vertex {
	a := float32(clamp01(c.A))
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp01(c.R)) * a,
		ColorG: float32(clamp01(c.G)) * a,
		ColorB: float32(clamp01(c.B)) * a,
		ColorA: a,
	}
}

// normal returns the perpendicular of p->q scaled to half, or false for a
// zero-length segment.
func normal(p, q Vec2, half float64) (nx, ny float64, ok bool) {
	dx, dy := q.X-p.X, q.Y-p.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0, false
	}
	return -dy / l * half, dx / l * half, true
}

// ellipseSegments picks a rim vertex count that keeps edges smooth at the
// ellipse's size.
func ellipseSegments(rx, ry float64) int {
	n := int(math.Max(rx, ry) * 0.75)
	return min(max(n, 12), 64)
}

// --- White pixel singleton (no sync.Once, the engine is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
