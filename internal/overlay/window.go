package overlay

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/paint"
	"gocv.io/x/gocv"
)

// DefaultBuffer is the command queue length used when none is given.
const DefaultBuffer = 256

// refreshInterval paces the presentation loop (~30 FPS).
const refreshInterval = 33 * time.Millisecond

type op int

const (
	opShow op = iota
	opHide
	opDraw
	opClear
)

type command struct {
	op  op
	seg paint.Segment
}

// Window is a paint.Sink backed by a fullscreen OpenCV window. Commands are
// queued without blocking; when the queue is full they are dropped.
type Window struct {
	name    string
	width   int
	height  int
	cmds    chan command
	logger  *slog.Logger
	dropped atomic.Uint64
}

// New creates an overlay of the given screen size. Nothing is rendered until Run.
func New(name string, width, height, buffer int, logger *slog.Logger) *Window {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{
		name:   name,
		width:  width,
		height: height,
		cmds:   make(chan command, buffer),
		logger: logger,
	}
}

func (w *Window) Show() paint.Result  { return w.send(command{op: opShow}) }
func (w *Window) Hide() paint.Result  { return w.send(command{op: opHide}) }
func (w *Window) Clear() paint.Result { return w.send(command{op: opClear}) }

func (w *Window) DrawSegment(s paint.Segment) paint.Result {
	return w.send(command{op: opDraw, seg: s})
}

// Dropped returns the number of commands discarded because the queue was full.
func (w *Window) Dropped() uint64 {
	return w.dropped.Load()
}

func (w *Window) send(c command) paint.Result {
	select {
	case w.cmds <- c:
		return paint.Delivered
	default:
		w.dropped.Add(1)
		return paint.Dropped
	}
}

// Run owns the OpenCV window until ctx is cancelled. HighGUI requires it to
// run on the thread that created the window, so callers lock it to one.
func (w *Window) Run(ctx context.Context) {
	canvas := NewCanvas(w.width, w.height)
	defer canvas.Close()

	var win *gocv.Window
	closeWindow := func() {
		if win != nil {
			win.Close()
			win = nil
		}
	}
	defer closeWindow()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-w.cmds:
			switch c.op {
			case opShow:
				if win == nil {
					win = gocv.NewWindow(w.name)
					win.SetWindowProperty(gocv.WindowPropertyFullscreen, gocv.WindowFullscreen)
					w.logger.Debug("overlay shown")
				}
			case opHide:
				closeWindow()
				w.logger.Debug("overlay hidden")
			case opDraw:
				canvas.Draw(c.seg)
			case opClear:
				canvas.Clear()
			}

		case <-ticker.C:
			if win != nil {
				win.IMShow(canvas.Mat())
				win.WaitKey(1)
			}
		}
	}
}
