package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Playback PlaybackConfig `toml:"playback" json:"playback"`
	Timeline TimelineConfig `toml:"timeline" json:"timeline"`
	TUI      TUIConfig      `toml:"tui" json:"tui"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// PlaybackConfig holds autoplay and transport settings.
type PlaybackConfig struct {
	TickInterval int     `toml:"tick_interval" json:"tick_interval"` // milliseconds
	LoopDuration int     `toml:"loop_duration" json:"loop_duration"` // seconds for one pass at 1X
	Step         float64 `toml:"step" json:"step"`
	Speed        int     `toml:"speed" json:"speed"`
	DragPolicy   string  `toml:"drag_policy" json:"drag_policy"`
}

// Tick returns the tick interval as a duration.
func (c PlaybackConfig) Tick() time.Duration {
	return time.Duration(c.TickInterval) * time.Millisecond
}

// Loop returns the loop duration as a duration.
func (c PlaybackConfig) Loop() time.Duration {
	return time.Duration(c.LoopDuration) * time.Second
}

// TimelineConfig holds ruler and date settings.
type TimelineConfig struct {
	DateChange string `toml:"date_change" json:"date_change"`
	Zoom       string `toml:"zoom" json:"zoom"`
	Segments   string `toml:"segments" json:"segments"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme   string `toml:"theme" json:"theme"`
	Channel int    `toml:"channel" json:"channel"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
