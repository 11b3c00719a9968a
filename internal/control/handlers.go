package control

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/paint"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/google/uuid"
)

// frame collects what one locked operation emits.
type frame struct {
	now    time.Time
	width  int
	height int
	track  uuid.UUID
	events []input.Event
	drawn  int
}

func (c *Controller) emit(f *frame, kind input.EventKind, at hand.Point, amount int) {
	ev := input.Event{
		Kind:   kind,
		X:      at.X,
		Y:      at.Y,
		Amount: amount,
		Time:   f.now,
	}
	if f.track != uuid.Nil {
		ev.Track = f.track.String()
	}
	f.events = append(f.events, ev)
	c.logger.Debug("input event", "kind", kind, "x", at.X, "y", at.Y, "amount", amount)
}

// releaseDrag lifts a held button. Every path that abandons a hand goes
// through here so the button is never left pressed.
func (c *Controller) releaseDrag(f *frame, st *handState, id uuid.UUID) {
	if !st.drag.Release() {
		return
	}
	c.injector.Toggle(input.ButtonLeft, false)

	prev := f.track
	f.track = id
	c.emit(f, input.EventDragEnd, st.dragAt, 0)
	f.track = prev
}

// selectFromPalette applies a header selection when index and middle are up
// over a mode button or, in paint mode, a swatch.
func (c *Controller) selectFromPalette(f *frame, h hand.Hand, fingers hand.Fingers) {
	if !fingers[hand.Index] || !fingers[hand.Middle] {
		return
	}
	tip, ok := h.Point(detector.IndexTip)
	if !ok || tip.Y >= c.cfg.Paint.HeaderHeight {
		return
	}

	sel, ok := paint.HitTest(tip.X, tip.Y, c.mode == ModePaint)
	if !ok {
		return
	}
	if sel.Mode != "" {
		c.setModeLocked(f, Mode(sel.Mode))
		return
	}
	c.selectColorLocked(*sel.Color)
}

func (c *Controller) selectColorLocked(sw paint.Swatch) {
	if sw.Name == c.color {
		return
	}
	c.color = sw.Name
	c.brush.Color = sw.Color
	c.logger.Info("color selected", "color", c.color)
}

func (c *Controller) setModeLocked(f *frame, m Mode) {
	if m == c.mode {
		return
	}
	for id, st := range c.states {
		c.releaseDrag(f, st, id)
		st.click.Reset()
		st.scroll.Reset()
		st.stroke.Reset()
	}

	c.mode = m
	if m == ModePaint {
		c.sink.Show()
	} else {
		c.sink.Hide()
	}
	c.logger.Info("mode changed", "mode", m)
}

func (c *Controller) screenPoint(x, y float64) (int, int) {
	return int(pointer.Clamp(x, float64(c.screenW-1))), int(pointer.Clamp(y, float64(c.screenH-1)))
}

func (c *Controller) resizeFrame(p *pointer.Pointer, f *frame) {
	if f.width > 0 && f.height > 0 {
		p.Mapper.FrameWidth = float64(f.width)
		p.Mapper.FrameHeight = float64(f.height)
	}
}

// handleMouse drives the cursor. Index up moves, clicks and drags; adding the
// middle finger enables double click; with the thumb also folded it scrolls.
func (c *Controller) handleMouse(f *frame, st *handState, h hand.Hand, fingers hand.Fingers) {
	if !fingers[hand.Index] {
		st.click.Reset()
		st.scroll.Reset()
		c.releaseDrag(f, st, f.track)
		return
	}

	tip, ok := h.Point(detector.IndexTip)
	if !ok {
		return
	}
	c.resizeFrame(st.mouse, f)
	x, y := st.mouse.Update(float64(tip.X), float64(tip.Y))
	c.injector.Move(c.screenPoint(x, y))

	clicked := false
	if d := hand.FindDistance(h.Landmarks, c.cfg.Click.From, c.cfg.Click.To); d.Valid() {
		clicked = st.click.Update(d.Length, f.now)
		if clicked {
			c.injector.Click(input.ButtonLeft)
			c.emit(f, input.EventClick, d.Mid, 0)
		}
	}

	if d := hand.FindDistance(h.Landmarks, c.cfg.Drag.From, c.cfg.Drag.To); d.Valid() {
		st.dragAt = d.Mid
		switch st.drag.Update(d.Length, f.now) {
		case input.DragPress:
			c.injector.Toggle(input.ButtonLeft, true)
			c.emit(f, input.EventDragStart, d.Mid, 0)
		case input.DragRelease:
			c.injector.Toggle(input.ButtonLeft, false)
			c.emit(f, input.EventDragEnd, d.Mid, 0)
		}
	}

	if !fingers[hand.Middle] {
		st.scroll.Reset()
		return
	}

	if st.double.Observe(clicked, f.now) {
		c.injector.Click(input.ButtonLeft)
		c.emit(f, input.EventDoubleClick, tip, 0)
	}

	if fingers[hand.Thumb] {
		st.scroll.Reset()
		return
	}
	middle, _ := h.Point(detector.MiddleTip)
	if s, ok := st.scroll.Update(tip, middle); ok {
		c.injector.Scroll(s.Amount)
		c.emit(f, input.EventScroll, s.At, s.Amount)
	}
}

// handlePaint extends the stroke while index is up and middle is down.
// Samples inside the header band are skipped without ending the stroke.
func (c *Controller) handlePaint(f *frame, st *handState, h hand.Hand, fingers hand.Fingers) {
	tip, ok := h.Point(detector.IndexTip)
	if !ok || tip.Y < c.cfg.Paint.HeaderHeight {
		return
	}

	c.resizeFrame(st.paint, f)
	x, y := st.paint.Update(float64(tip.X), float64(tip.Y))

	st.stroke.Brush = c.brush
	active := fingers[hand.Index] && !fingers[hand.Middle]
	if seg, ok := st.stroke.Update(paint.Point{X: x, Y: y}, active); ok {
		c.sink.DrawSegment(seg)
		f.drawn++
	}
}
