// Package pointer maps camera coordinates onto the screen and smooths the result.
package pointer

// Interp maps v from the active band [lo, hi] onto [0, target] linearly.
// Values outside the band extrapolate past [0, target]; callers that need
// bounded output must Clamp. A degenerate band maps everything to 0.
func Interp(v, lo, hi, target float64) float64 {
	span := hi - lo
	if span <= 0 {
		return 0
	}
	return (v - lo) / span * target
}

// Clamp bounds v to [0, limit].
func Clamp(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// Mapper maps a camera frame, inset by Margin on every edge, onto a target area.
type Mapper struct {
	FrameWidth   float64
	FrameHeight  float64
	Margin       float64
	TargetWidth  float64
	TargetHeight float64
}

// Map converts camera coordinates to target coordinates.
func (m Mapper) Map(x, y float64) (float64, float64) {
	return Interp(x, m.Margin, m.FrameWidth-m.Margin, m.TargetWidth),
		Interp(y, m.Margin, m.FrameHeight-m.Margin, m.TargetHeight)
}

// Smoother applies per-axis exponential smoothing. The zero value is ready to
// use once Factor is set; a factor of 1 or less disables smoothing.
type Smoother struct {
	Factor float64

	x, y   float64
	seeded bool
}

// Update folds a new sample in and returns the smoothed position. The first
// sample after construction or Reset is returned as is.
func (s *Smoother) Update(x, y float64) (float64, float64) {
	if !s.seeded {
		s.x, s.y, s.seeded = x, y, true
		return x, y
	}

	f := s.Factor
	if f < 1 {
		f = 1
	}
	s.x += (x - s.x) / f
	s.y += (y - s.y) / f
	return s.x, s.y
}

// Position returns the last smoothed position and whether one exists.
func (s *Smoother) Position() (float64, float64, bool) {
	return s.x, s.y, s.seeded
}

// Reset forgets the smoothed position.
func (s *Smoother) Reset() {
	s.x, s.y, s.seeded = 0, 0, false
}

// Pointer combines a Mapper with a Smoother into one per-frame update.
type Pointer struct {
	Mapper   Mapper
	smoother Smoother
}

// New creates a Pointer with the given mapping and smoothing factor.
func New(m Mapper, factor float64) *Pointer {
	return &Pointer{Mapper: m, smoother: Smoother{Factor: factor}}
}

// Update maps and smooths a raw camera coordinate.
func (p *Pointer) Update(x, y float64) (float64, float64) {
	mx, my := p.Mapper.Map(x, y)
	return p.smoother.Update(mx, my)
}

// Position returns the last smoothed screen position.
func (p *Pointer) Position() (float64, float64, bool) {
	return p.smoother.Position()
}

// Reset forgets the smoothed position so the next update starts fresh.
func (p *Pointer) Reset() {
	p.smoother.Reset()
}
