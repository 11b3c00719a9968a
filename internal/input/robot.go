package input

import (
	"log/slog"

	"github.com/go-vgo/robotgo"
)

// RobotInjector drives the native mouse through robotgo.
type RobotInjector struct {
	logger *slog.Logger
}

// NewRobotInjector creates an injector for the primary display.
func NewRobotInjector(logger *slog.Logger) *RobotInjector {
	if logger == nil {
		logger = slog.Default()
	}
	return &RobotInjector{logger: logger}
}

// ScreenSize returns the primary display size in pixels.
func (r *RobotInjector) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

func (r *RobotInjector) Move(x, y int) {
	robotgo.Move(x, y)
}

func (r *RobotInjector) Click(b Button) {
	r.logger.Debug("click", "button", b)
	robotgo.Click(string(b))
}

func (r *RobotInjector) Toggle(b Button, down bool) {
	dir := "up"
	if down {
		dir = "down"
	}
	r.logger.Debug("toggle", "button", b, "dir", dir)
	robotgo.Toggle(string(b), dir)
}

func (r *RobotInjector) Scroll(amount int) {
	robotgo.Scroll(0, amount)
}
