package skydrift

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
)

// ImageSurface is a software Surface backed by a fogleman/gg context. It
// needs no GPU or window, which makes it the backend for headless rendering
// and PNG export.
type ImageSurface struct {
	dc *gg.Context
}

// NewImageSurface creates a width x height transparent surface.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{dc: gg.NewContext(max(width, 0), max(height, 0))}
}

// Resize implements Surface. The current contents are discarded.
func (s *ImageSurface) Resize(width, height int) {
	s.dc = gg.NewContext(max(width, 0), max(height, 0))
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (width, height int) {
	return s.dc.Width(), s.dc.Height()
}

// Clear implements Surface.
func (s *ImageSurface) Clear() {
	s.dc.SetRGBA(0, 0, 0, 0)
	s.dc.Clear()
}

// FillGradient implements Surface.
func (s *ImageSurface) FillGradient(r Rect, stops []GradientStop) {
	g := gg.NewLinearGradient(r.X, r.Y, r.X, r.Y+r.Height)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color.toNRGBA())
	}
	s.dc.SetFillStyle(g)
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	s.dc.Fill()
}

// FillEllipse implements Surface.
func (s *ImageSurface) FillEllipse(cx, cy, rx, ry float64, c Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.dc.SetColor(c.toNRGBA())
	s.dc.DrawEllipse(cx, cy, rx, ry)
	s.dc.Fill()
}

// StrokePolyline implements Surface.
func (s *ImageSurface) StrokePolyline(pts []Vec2, width float64, c Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(c.toNRGBA())
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.Stroke()
}

// StrokeGradient implements Surface.
func (s *ImageSurface) StrokeGradient(from, to Vec2, width float64, stops []GradientStop) {
	g := gg.NewLinearGradient(from.X, from.Y, to.X, to.Y)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color.toNRGBA())
	}
	s.dc.SetStrokeStyle(g)
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(from.X, from.Y)
	s.dc.LineTo(to.X, to.Y)
	s.dc.Stroke()
}

// Image returns the rendered pixels.
func (s *ImageSurface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the current contents as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current contents to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
