// Package overlay renders paint strokes in a fullscreen OpenCV window that
// runs its own presentation loop.
package overlay

import (
	"image"
	"math"

	"github.com/ayusman/mudra/internal/paint"
	"gocv.io/x/gocv"
)

// Canvas is the stroke surface. The window is opaque: strokes sit on a black
// background and the eraser paints black over them.
type Canvas struct {
	mat gocv.Mat
}

// NewCanvas allocates a blank canvas. The caller must Close it.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{mat: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)}
	c.Clear()
	return c
}

// Draw renders one segment with round caps.
func (c *Canvas) Draw(s paint.Segment) {
	from := toPixel(s.From)
	to := toPixel(s.To)
	width := max(s.Width, 1)

	gocv.Line(&c.mat, from, to, s.Color, width)
	// Round the joints between consecutive segments.
	gocv.Circle(&c.mat, to, width/2, s.Color, -1)
}

// Clear wipes every stroke.
func (c *Canvas) Clear() {
	c.mat.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Mat exposes the backing image.
func (c *Canvas) Mat() gocv.Mat {
	return c.mat
}

// Close releases the backing image.
func (c *Canvas) Close() error {
	return c.mat.Close()
}

func toPixel(p paint.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}
