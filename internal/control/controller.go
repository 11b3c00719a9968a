// Package control composes hand geometry, gesture classification, pointer
// mapping, the input state machines and paint continuity into one per-frame
// Controller.
package control

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/paint"
	"github.com/ayusman/mudra/internal/pointer"
	"github.com/ayusman/mudra/internal/tracking"
	"github.com/google/uuid"
)

// Options configures a Controller.
type Options struct {
	Config config.Config
	// ScreenWidth and ScreenHeight are the injection target size.
	ScreenWidth  int
	ScreenHeight int
	Injector     input.Injector
	// Sink receives paint strokes. Nil discards them.
	Sink   paint.Sink
	Logger *slog.Logger
	// Now overrides the clock for tests.
	Now func() time.Time
}

// Result summarizes one processed frame.
type Result struct {
	Mode    Mode            `json:"mode"`
	Gesture gesture.Gesture `json:"gesture"`
	Fingers hand.Fingers    `json:"-"`
	Tracks  int             `json:"tracks"`
	Primary string          `json:"primary,omitempty"`
	Events  []input.Event   `json:"events,omitempty"`
	// Drawn counts segments sent to the paint sink.
	Drawn int `json:"drawn"`
}

// Status is a snapshot of controller state.
type Status struct {
	Mode     Mode            `json:"mode"`
	Color    string          `json:"color"`
	Gesture  gesture.Gesture `json:"gesture"`
	Tracks   int             `json:"tracks"`
	Dragging bool            `json:"dragging"`
	Drawing  bool            `json:"drawing"`
}

// Controller turns detected hands into pointer input and paint strokes.
// It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      config.Config
	screenW  int
	screenH  int
	injector input.Injector
	sink     paint.Sink
	logger   *slog.Logger
	now      func() time.Time

	tracker *tracking.Tracker
	states  map[uuid.UUID]*handState
	mode    Mode
	brush   paint.Brush
	color   string
	last    gesture.Gesture

	subMu   sync.Mutex
	subs    map[int]func(input.Event)
	nextSub int
}

// handState is the per-hand session state, keyed by track identity.
type handState struct {
	mouse  *pointer.Pointer
	paint  *pointer.Pointer
	click  *input.ClickSession
	drag   *input.DragSession
	// dragAt is the last pinch midpoint seen by the drag session.
	dragAt hand.Point
	double *input.DoubleClickTracker
	scroll *input.ScrollSession
	stroke *paint.Continuity
}

// New creates a Controller in mouse mode.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sink == nil {
		opts.Sink = paint.Discard{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		cfg:      opts.Config,
		screenW:  opts.ScreenWidth,
		screenH:  opts.ScreenHeight,
		injector: opts.Injector,
		sink:     opts.Sink,
		logger:   opts.Logger,
		now:      opts.Now,
		tracker:  tracking.New(opts.Config.Tracking.MaxMatchDistance, opts.Config.Tracking.MaxMissed),
		states:   make(map[uuid.UUID]*handState),
		mode:     ModeMouse,
		color:    "pink",
		subs:     make(map[int]func(input.Event)),
	}
	c.brush = paint.Brush{
		Color:           paint.DefaultColor,
		Thickness:       opts.Config.Paint.BrushThickness,
		EraserThickness: opts.Config.Paint.EraserThickness,
	}
	return c
}

func (c *Controller) newHandState() *handState {
	cfg := c.cfg
	mapper := pointer.Mapper{
		FrameWidth:   float64(cfg.Camera.Width),
		FrameHeight:  float64(cfg.Camera.Height),
		Margin:       cfg.Pointer.Margin,
		TargetWidth:  float64(c.screenW),
		TargetHeight: float64(c.screenH),
	}
	return &handState{
		mouse:  pointer.New(mapper, cfg.Pointer.Smoothing),
		paint:  pointer.New(mapper, cfg.Pointer.Smoothing),
		click:  input.NewClickSession(cfg.Click.Threshold, cfg.Click.Hold),
		drag:   input.NewDragSession(cfg.Drag.Threshold, cfg.Drag.Hold),
		double: input.NewDoubleClickTracker(cfg.Double.Interval),
		scroll: input.NewScrollSession(cfg.Scroll.Smoothing, cfg.Scroll.Threshold, cfg.Scroll.Speed),
		stroke: paint.NewContinuity(c.brush),
	}
}

// Process handles one frame of detector output for an image of the given size.
func (c *Controller) Process(hands []detector.HandLandmarks, width, height int) Result {
	c.mu.Lock()
	f := frame{now: c.now(), width: width, height: height}

	positions := hand.FindPositions(hands, width, height)
	tracked := c.tracker.Update(positions, f.now)

	for _, tr := range tracked.Removed {
		if st, ok := c.states[tr.ID]; ok {
			c.releaseDrag(&f, st, tr.ID)
			delete(c.states, tr.ID)
			c.logger.Debug("hand lost", "track", tr.ID)
		}
	}
	for _, tr := range tracked.Added {
		c.states[tr.ID] = c.newHandState()
		c.logger.Debug("hand found", "track", tr.ID, "handedness", tr.Hand.Handedness)
	}

	res := Result{Mode: c.mode, Tracks: len(c.states)}

	primary := tracked.Primary()
	if primary == nil {
		c.last = gesture.ClassifyHand(hand.Hand{})
		res.Gesture = c.last
		res.Events = f.events
		c.mu.Unlock()
		c.publish(f.events)
		return res
	}

	st := c.states[primary.ID]
	h := primary.Hand
	fingers := hand.FingersUp(h)

	c.last = gesture.Classify(fingers)
	res.Gesture = c.last
	res.Fingers = fingers
	res.Primary = primary.ID.String()

	f.track = primary.ID
	c.selectFromPalette(&f, h, fingers)

	switch c.mode {
	case ModeMouse:
		c.handleMouse(&f, st, h, fingers)
	case ModePaint:
		c.handlePaint(&f, st, h, fingers)
	}

	res.Mode = c.mode
	res.Events = f.events
	res.Drawn = f.drawn
	c.mu.Unlock()

	c.publish(f.events)
	return res
}

// SetMode switches between mouse and paint. Leaving mouse mode releases
// any held button; the paint overlay is shown only in paint mode.
func (c *Controller) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}

	c.mu.Lock()
	f := frame{now: c.now()}
	c.setModeLocked(&f, m)
	c.mu.Unlock()

	c.publish(f.events)
	return nil
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetColor selects a palette swatch by name, the same as touching it in the
// header.
func (c *Controller) SetColor(name string) error {
	sw, ok := paint.SwatchByName(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownColor, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectColorLocked(sw)
	return nil
}

// ClearOverlay wipes every stroke and ends any stroke in progress.
func (c *Controller) ClearOverlay() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, st := range c.states {
		st.stroke.Reset()
	}
	c.sink.Clear()
	c.logger.Info("overlay cleared")
}

// Reconfigure applies new tunables. Held buttons are released and every
// per-hand session restarts with the new parameters.
func (c *Controller) Reconfigure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}

	c.mu.Lock()
	f := frame{now: c.now()}
	c.resetLocked(&f)
	c.cfg = cfg
	c.tracker = tracking.New(cfg.Tracking.MaxMatchDistance, cfg.Tracking.MaxMissed)
	c.brush.Thickness = cfg.Paint.BrushThickness
	c.brush.EraserThickness = cfg.Paint.EraserThickness
	c.mu.Unlock()

	c.publish(f.events)
	c.logger.Info("controller reconfigured")
	return nil
}

// Suspend releases any held button and forgets every tracked hand. The next
// Process starts from scratch.
func (c *Controller) Suspend() {
	c.mu.Lock()
	f := frame{now: c.now()}
	c.resetLocked(&f)
	c.mu.Unlock()

	c.publish(f.events)
}

// Close releases every held button and hides the overlay.
func (c *Controller) Close() error {
	c.mu.Lock()
	f := frame{now: c.now()}
	c.resetLocked(&f)
	c.sink.Hide()
	c.mu.Unlock()

	c.publish(f.events)
	return nil
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dragging, drawing bool
	for _, st := range c.states {
		dragging = dragging || st.drag.Active()
		drawing = drawing || st.stroke.Drawing()
	}
	return Status{
		Mode:     c.mode,
		Color:    c.color,
		Gesture:  c.last,
		Tracks:   len(c.tracker.Tracks()),
		Dragging: dragging,
		Drawing:  drawing,
	}
}

// Config returns the active configuration.
func (c *Controller) Config() config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Subscribe registers fn for every emitted input event. The returned func
// removes the subscription. fn runs on the processing goroutine and must not
// block.
func (c *Controller) Subscribe(fn func(input.Event)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) publish(events []input.Event) {
	if len(events) == 0 {
		return
	}

	c.subMu.Lock()
	subs := make([]func(input.Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// resetLocked releases held buttons and drops all hand state.
func (c *Controller) resetLocked(f *frame) {
	for id, st := range c.states {
		c.releaseDrag(f, st, id)
	}
	c.tracker.Reset()
	c.states = make(map[uuid.UUID]*handState)
}
