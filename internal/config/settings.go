package config

import (
	"strconv"
	"time"
)

type setting struct {
	key string
	// tunable settings take effect without a restart.
	tunable bool
	get     func(*Config) string
	set     func(*Config, string) error
}

var settings = []setting{
	intSetting("camera_id", false, func(c *Config) *int { return &c.Camera.ID }),
	intSetting("frame_width", false, func(c *Config) *int { return &c.Camera.Width }),
	intSetting("frame_height", false, func(c *Config) *int { return &c.Camera.Height }),
	boolSetting("mirror", false, func(c *Config) *bool { return &c.Camera.Mirror }),
	intSetting("max_hands", false, func(c *Config) *int { return &c.Camera.MaxHands }),
	intSetting("screen_width", false, func(c *Config) *int { return &c.Screen.Width }),
	intSetting("screen_height", false, func(c *Config) *int { return &c.Screen.Height }),

	floatSetting("pointer_margin", true, func(c *Config) *float64 { return &c.Pointer.Margin }),
	floatSetting("pointer_smoothing", true, func(c *Config) *float64 { return &c.Pointer.Smoothing }),
	floatSetting("click_threshold", true, func(c *Config) *float64 { return &c.Click.Threshold }),
	durationSetting("click_hold", true, func(c *Config) *time.Duration { return &c.Click.Hold }),
	intSetting("click_from", true, func(c *Config) *int { return &c.Click.From }),
	intSetting("click_to", true, func(c *Config) *int { return &c.Click.To }),
	floatSetting("drag_threshold", true, func(c *Config) *float64 { return &c.Drag.Threshold }),
	durationSetting("drag_hold", true, func(c *Config) *time.Duration { return &c.Drag.Hold }),
	intSetting("drag_from", true, func(c *Config) *int { return &c.Drag.From }),
	intSetting("drag_to", true, func(c *Config) *int { return &c.Drag.To }),
	durationSetting("double_click_interval", true, func(c *Config) *time.Duration { return &c.Double.Interval }),
	floatSetting("scroll_smoothing", true, func(c *Config) *float64 { return &c.Scroll.Smoothing }),
	floatSetting("scroll_threshold", true, func(c *Config) *float64 { return &c.Scroll.Threshold }),
	floatSetting("scroll_speed", true, func(c *Config) *float64 { return &c.Scroll.Speed }),
	intSetting("brush_thickness", true, func(c *Config) *int { return &c.Paint.BrushThickness }),
	intSetting("eraser_thickness", true, func(c *Config) *int { return &c.Paint.EraserThickness }),
	intSetting("header_height", true, func(c *Config) *int { return &c.Paint.HeaderHeight }),
	floatSetting("max_match_distance", true, func(c *Config) *float64 { return &c.Tracking.MaxMatchDistance }),
	intSetting("max_missed_frames", true, func(c *Config) *int { return &c.Tracking.MaxMissed }),
	intSetting("idle_fps", true, func(c *Config) *int { return &c.Loop.IdleFPS }),
	intSetting("active_fps", true, func(c *Config) *int { return &c.Loop.ActiveFPS }),
	durationSetting("idle_after", true, func(c *Config) *time.Duration { return &c.Loop.IdleAfter }),
	floatSetting("motion_threshold", true, func(c *Config) *float64 { return &c.Loop.MotionThreshold }),

	stringSetting("http_addr", false, func(c *Config) *string { return &c.Server.Addr }),
	stringSetting("db_path", false, func(c *Config) *string { return &c.Server.DBPath }),
	stringSetting("log_level", false, func(c *Config) *string { return &c.Logging.Level }),
	stringSetting("log_format", false, func(c *Config) *string { return &c.Logging.Format }),
}

var settingsByKey = func() map[string]setting {
	m := make(map[string]setting, len(settings))
	for _, s := range settings {
		m[s.key] = s
	}
	return m
}()

// Known reports whether key names a setting.
func Known(key string) bool {
	_, ok := settingsByKey[key]
	return ok
}

// Tunable reports whether key names a setting that applies without a restart.
func Tunable(key string) bool {
	s, ok := settingsByKey[key]
	return ok && s.tunable
}

func intSetting(key string, tunable bool, field func(*Config) *int) setting {
	return setting{
		key:     key,
		tunable: tunable,
		get:     func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func floatSetting(key string, tunable bool, field func(*Config) *float64) setting {
	return setting{
		key:     key,
		tunable: tunable,
		get:     func(c *Config) string { return strconv.FormatFloat(*field(c), 'g', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			*field(c) = f
			return nil
		},
	}
}

func boolSetting(key string, tunable bool, field func(*Config) *bool) setting {
	return setting{
		key:     key,
		tunable: tunable,
		get:     func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
	}
}

func durationSetting(key string, tunable bool, field func(*Config) *time.Duration) setting {
	return setting{
		key:     key,
		tunable: tunable,
		get:     func(c *Config) string { return field(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			*field(c) = d
			return nil
		},
	}
}

func stringSetting(key string, tunable bool, field func(*Config) *string) setting {
	return setting{
		key:     key,
		tunable: tunable,
		get:     func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}
