// Package app runs the camera loop that feeds detected hands into the
// controller and owns the engine lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/input"
	"github.com/ayusman/mudra/internal/store"
	"gocv.io/x/gocv"
)

// historyBuffer bounds the queue of events waiting to be persisted.
const historyBuffer = 256

// SettingsStore persists configuration overrides.
type SettingsStore interface {
	SetMany(values map[string]string) error
}

// HistoryStore persists emitted input events.
type HistoryStore interface {
	Create(e *store.EventRecord) error
}

// Options wires an App.
type Options struct {
	Config     config.Config
	Camera     capture.Camera
	Detector   detector.Detector
	Controller *control.Controller
	// Settings and History are optional.
	Settings SettingsStore
	History  HistoryStore
	Logger   *slog.Logger
}

// Status is a snapshot of the engine.
type Status struct {
	control.Status
	Enabled bool   `json:"enabled"`
	Running bool   `json:"running"`
	Active  bool   `json:"active"`
	FPS     int    `json:"fps"`
	Frames  uint64 `json:"frames"`
}

// App is the gesture engine: camera, detector and controller.
type App struct {
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	ctrl     *control.Controller
	settings SettingsStore
	history  HistoryStore
	logger   *slog.Logger

	mu      sync.RWMutex
	loop    config.LoopConfig
	enabled bool
	active  bool
	frames  uint64
	cancel  context.CancelFunc
	done    chan struct{}

	events      chan input.Event
	stopHistory chan struct{}
	historyDone chan struct{}
	unsubscribe func()
}

// New creates an App. Detection starts enabled.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &App{
		camera:   opts.Camera,
		motion:   capture.NewMotionDetector(opts.Config.Loop.MotionThreshold),
		detector: opts.Detector,
		ctrl:     opts.Controller,
		settings: opts.Settings,
		history:  opts.History,
		logger:   opts.Logger,
		loop:     opts.Config.Loop,
		enabled:  true,
	}
}

// Start opens the camera and runs the loop until Stop or ctx is done.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	a.camera.SetFPS(a.loop.IdleFPS)

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	if a.history != nil {
		a.events = make(chan input.Event, historyBuffer)
		a.stopHistory = make(chan struct{})
		a.historyDone = make(chan struct{})
		events := a.events
		a.unsubscribe = a.ctrl.Subscribe(func(e input.Event) {
			a.queueEvent(events, e)
		})
		go a.persistEvents(a.events, a.stopHistory, a.historyDone)
	}

	go a.run(ctx, a.done)

	a.logger.Info("gesture engine started", "motion_threshold", a.motion.Threshold())
	return nil
}

// Stop halts the loop, releases any held button and frees the camera and
// detector.
func (a *App) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	if err := a.ctrl.Close(); err != nil {
		a.logger.Warn("close controller", "error", err)
	}

	a.mu.Lock()
	var historyDone chan struct{}
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
		close(a.stopHistory)
		historyDone = a.historyDone
	}
	a.mu.Unlock()

	// Every queued event is written before Stop returns.
	if historyDone != nil {
		<-historyDone
	}

	if err := a.camera.Close(); err != nil {
		a.logger.Warn("close camera", "error", err)
	}
	a.motion.Close()
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			a.logger.Warn("close detector", "error", err)
		}
	}

	a.logger.Info("gesture engine stopped")
}

// SetEnabled pauses or resumes detection. Pausing releases any held button.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.enabled != enabled
	a.enabled = enabled
	a.mu.Unlock()

	if !changed {
		return
	}
	if !enabled {
		a.ctrl.Suspend()
	}
	a.logger.Info("detection toggled", "enabled", enabled)
}

// IsEnabled reports whether detection is running.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Status returns a snapshot of the engine.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	fps := a.loop.IdleFPS
	if a.active {
		fps = a.loop.ActiveFPS
	}
	return Status{
		Status:  a.ctrl.Status(),
		Enabled: a.enabled,
		Running: a.cancel != nil,
		Active:  a.active,
		FPS:     fps,
		Frames:  a.frames,
	}
}

// SetMode switches the controller mode.
func (a *App) SetMode(m control.Mode) error {
	return a.ctrl.SetMode(m)
}

// SetColor selects the brush color by palette name.
func (a *App) SetColor(name string) error {
	return a.ctrl.SetColor(name)
}

// ClearOverlay wipes the paint overlay.
func (a *App) ClearOverlay() {
	a.ctrl.ClearOverlay()
}

// Subscribe registers fn for every emitted input event.
func (a *App) Subscribe(fn func(input.Event)) func() {
	return a.ctrl.Subscribe(fn)
}

// Settings returns every setting of the active configuration.
func (a *App) Settings() map[string]string {
	return a.ctrl.Config().Settings()
}

// UpdateSettings applies runtime-tunable overrides, persists them and
// returns the resulting settings.
func (a *App) UpdateSettings(values map[string]string) (map[string]string, error) {
	for k := range values {
		if !config.Tunable(k) {
			return nil, fmt.Errorf("%w: %q cannot be changed at runtime", config.ErrInvalid, k)
		}
	}

	cfg := a.ctrl.Config()
	if err := cfg.Apply(values); err != nil {
		return nil, err
	}
	if err := a.ctrl.Reconfigure(cfg); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.loop = cfg.Loop
	a.mu.Unlock()
	a.motion.SetThreshold(cfg.Loop.MotionThreshold)

	if a.settings != nil {
		if err := a.settings.SetMany(values); err != nil {
			return nil, fmt.Errorf("persist settings: %w", err)
		}
	}

	a.logger.Info("settings updated", "count", len(values))
	return cfg.Settings(), nil
}

// ProcessFrame runs detection on one frame and feeds the controller.
func (a *App) ProcessFrame(frame *gocv.Mat) (control.Result, error) {
	hands, err := a.detector.Detect(frame)
	if err != nil {
		return control.Result{}, fmt.Errorf("detect: %w", err)
	}

	res := a.ctrl.Process(hands, frame.Cols(), frame.Rows())

	a.mu.Lock()
	a.frames++
	a.mu.Unlock()

	return res, nil
}

func (a *App) queueEvent(events chan<- input.Event, e input.Event) {
	select {
	case events <- e:
	default:
		a.logger.Debug("event history queue full, dropping", "kind", e.Kind)
	}
}

func (a *App) persistEvents(events <-chan input.Event, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case e := <-events:
			a.persistEvent(e)
		case <-stop:
			for {
				select {
				case e := <-events:
					a.persistEvent(e)
				default:
					return
				}
			}
		}
	}
}

func (a *App) persistEvent(e input.Event) {
	rec := &store.EventRecord{
		Kind:      e.Kind.String(),
		X:         e.X,
		Y:         e.Y,
		Amount:    e.Amount,
		Track:     e.Track,
		CreatedAt: e.Time,
	}
	if err := a.history.Create(rec); err != nil {
		a.logger.Warn("persist event", "error", err)
	}
}
