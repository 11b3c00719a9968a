package app

import (
	"context"
	"time"

	"github.com/ayusman/mudra/internal/config"
)

// run is the frame loop. It polls the camera at the idle rate until motion
// or a tracked hand is seen, then switches to the active rate and runs
// detection on every frame. After Loop.IdleAfter without activity it drops
// back to idle and stops calling the detector.
func (a *App) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	loop := a.loopConfig()
	interval := frameInterval(loop.IdleFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastActivity := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !a.IsEnabled() {
			continue
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			a.logger.Warn("read frame", "error", err)
			continue
		}

		loop = a.loopConfig()
		now := time.Now()
		busy := a.motion.Detect(frame).Detected || a.ctrl.Status().Tracks > 0
		if busy {
			lastActivity = now
		}

		active := a.isActive()
		switch {
		case !active && busy:
			active = true
			a.setActive(true)
			a.logger.Debug("switched to active mode")
		case active && now.Sub(lastActivity) > loop.IdleAfter:
			active = false
			a.setActive(false)
			a.logger.Debug("switched to idle mode")
		}

		fps := loop.IdleFPS
		if active {
			fps = loop.ActiveFPS
		}
		if next := frameInterval(fps); next != interval {
			interval = next
			ticker.Reset(interval)
			a.camera.SetFPS(fps)
		}

		if !active || a.detector == nil {
			frame.Close()
			continue
		}

		_, err = a.ProcessFrame(frame)
		frame.Close()
		if err != nil {
			a.logger.Warn("process frame", "error", err)
		}
	}
}

func (a *App) loopConfig() config.LoopConfig {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loop
}

func (a *App) isActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

func (a *App) setActive(active bool) {
	a.mu.Lock()
	a.active = active
	a.mu.Unlock()
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}
