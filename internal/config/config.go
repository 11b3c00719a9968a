// Package config holds every runtime tunable with the defaults the gesture
// engine was calibrated with, plus environment and persisted overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override, e.g. MUDRA_CLICK_THRESHOLD.
const EnvPrefix = "MUDRA_"

// ErrInvalid is returned for values that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Config captures the user-adjustable knobs.
type Config struct {
	Camera   CameraConfig
	Screen   ScreenConfig
	Pointer  PointerConfig
	Click    PinchConfig
	Drag     PinchConfig
	Double   DoubleClickConfig
	Scroll   ScrollConfig
	Paint    PaintConfig
	Tracking TrackingConfig
	Loop     LoopConfig
	Server   ServerConfig
	Logging  LoggingConfig

	// Source indicates where the configuration originated.
	Source string
}

// CameraConfig selects the capture device.
type CameraConfig struct {
	ID     int
	Width  int
	Height int
	// Mirror flips frames horizontally so movement matches the user's view.
	Mirror   bool
	MaxHands int
}

// ScreenConfig is the injection target size. Zero means query the injector.
type ScreenConfig struct {
	Width  int
	Height int
}

// PointerConfig controls camera to screen mapping.
type PointerConfig struct {
	Margin    float64
	Smoothing float64
}

// PinchConfig parameterizes a pinch-and-hold session.
type PinchConfig struct {
	Threshold float64
	Hold      time.Duration
	// From and To are the landmark ids whose distance is measured.
	From int
	To   int
}

// DoubleClickConfig bounds the gap between two clicks.
type DoubleClickConfig struct {
	Interval time.Duration
}

// ScrollConfig tunes two-finger scrolling.
type ScrollConfig struct {
	Smoothing float64
	Threshold float64
	Speed     float64
}

// PaintConfig sizes brushes and the palette header.
type PaintConfig struct {
	BrushThickness  int
	EraserThickness int
	HeaderHeight    int
}

// TrackingConfig tunes hand identity association.
type TrackingConfig struct {
	MaxMatchDistance float64
	// MaxMissed is the hand-loss grace period in frames.
	MaxMissed int
}

// LoopConfig paces the camera loop.
type LoopConfig struct {
	IdleFPS   int
	ActiveFPS int
	IdleAfter time.Duration
	// MotionThreshold is the percentage of changed pixels that wakes the
	// loop from idle.
	MotionThreshold float64
}

// ServerConfig configures the control surface.
type ServerConfig struct {
	Addr   string
	DBPath string
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string
	Format string
}

// Default returns the calibrated baseline configuration.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			ID:       0,
			Width:    640,
			Height:   480,
			Mirror:   true,
			MaxHands: 2,
		},
		Pointer: PointerConfig{
			Margin:    150,
			Smoothing: 7,
		},
		Click: PinchConfig{
			Threshold: 35,
			Hold:      100 * time.Millisecond,
			From:      4,
			To:        6,
		},
		Drag: PinchConfig{
			Threshold: 35,
			Hold:      500 * time.Millisecond,
			From:      4,
			To:        12,
		},
		Double: DoubleClickConfig{
			Interval: 500 * time.Millisecond,
		},
		Scroll: ScrollConfig{
			Smoothing: 4,
			Threshold: 2,
			Speed:     100,
		},
		Paint: PaintConfig{
			BrushThickness:  7,
			EraserThickness: 50,
			HeaderHeight:    150,
		},
		Tracking: TrackingConfig{
			MaxMatchDistance: 150,
			MaxMissed:        5,
		},
		Loop: LoopConfig{
			IdleFPS:         5,
			ActiveFPS:       30,
			IdleAfter:       2 * time.Second,
			MotionThreshold: 1.0,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7890",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Source: "<defaults>",
	}
}

// Load returns the defaults overlaid with an optional .env file and MUDRA_*
// environment variables. A missing envFile is tolerated unless it was named
// explicitly.
func Load(envFile string) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(envFile)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %q: %w", path, err)
		}
	} else {
		cfg.Source = path
	}

	if err := cfg.Apply(FromEnv(os.Environ())); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv extracts setting overrides from KEY=VALUE pairs carrying EnvPrefix.
func FromEnv(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if _, known := settingsByKey[key]; known {
			out[key] = value
		}
	}
	return out
}

// Apply sets each named setting. Unknown keys and unparsable values are
// rejected and leave c partially updated, so callers apply to a copy.
func (c *Config) Apply(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s, ok := settingsByKey[key]
		if !ok {
			return fmt.Errorf("%w: unknown setting %q", ErrInvalid, key)
		}
		if err := s.set(c, strings.TrimSpace(values[key])); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
		}
	}
	return nil
}

// Settings returns every setting rendered as a string, keyed by name.
func (c Config) Settings() map[string]string {
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.key] = s.get(&c)
	}
	return out
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Camera.Width > 0 && c.Camera.Height > 0, "camera size must be positive")
	check(c.Camera.MaxHands > 0, "max_hands must be positive")
	check(c.Screen.Width >= 0 && c.Screen.Height >= 0, "screen size must not be negative")
	check(c.Pointer.Margin >= 0, "pointer_margin must not be negative")
	check(2*c.Pointer.Margin < float64(c.Camera.Width) && 2*c.Pointer.Margin < float64(c.Camera.Height),
		"pointer_margin %.0f leaves no active region in a %dx%d frame", c.Pointer.Margin, c.Camera.Width, c.Camera.Height)
	check(c.Pointer.Smoothing >= 1, "pointer_smoothing must be at least 1")

	for _, p := range []struct {
		name string
		cfg  PinchConfig
	}{{"click", c.Click}, {"drag", c.Drag}} {
		check(p.cfg.Threshold >= 0, "%s_threshold must not be negative", p.name)
		check(p.cfg.Hold >= 0, "%s_hold must not be negative", p.name)
		check(validLandmark(p.cfg.From) && validLandmark(p.cfg.To), "%s landmarks must be within 0..20", p.name)
	}

	check(c.Double.Interval >= 0, "double_click_interval must not be negative")
	check(c.Scroll.Smoothing >= 1, "scroll_smoothing must be at least 1")
	check(c.Scroll.Threshold >= 0, "scroll_threshold must not be negative")
	check(c.Paint.BrushThickness > 0 && c.Paint.EraserThickness > 0, "brush thickness must be positive")
	check(c.Paint.HeaderHeight >= 0, "header_height must not be negative")
	check(c.Tracking.MaxMatchDistance > 0, "max_match_distance must be positive")
	check(c.Tracking.MaxMissed >= 0, "max_missed_frames must not be negative")
	check(c.Loop.IdleFPS > 0 && c.Loop.ActiveFPS > 0, "fps must be positive")
	check(c.Loop.MotionThreshold > 0, "motion_threshold must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func validLandmark(id int) bool {
	return id >= 0 && id <= 20
}
