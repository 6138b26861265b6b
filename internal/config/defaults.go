package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			TickInterval: 100,
			LoopDuration: 100,
			Step:         5,
			Speed:        1,
			DragPolicy:   "resume",
		},
		Timeline: TimelineConfig{
			DateChange: "keep",
			Zoom:       "24h",
		},
		TUI: TUIConfig{
			Theme:   "auto",
			Channel: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Playback
	if c.Playback.TickInterval == 0 {
		c.Playback.TickInterval = d.Playback.TickInterval
	}
	if c.Playback.LoopDuration == 0 {
		c.Playback.LoopDuration = d.Playback.LoopDuration
	}
	if c.Playback.Step == 0 {
		c.Playback.Step = d.Playback.Step
	}
	if c.Playback.Speed == 0 {
		c.Playback.Speed = d.Playback.Speed
	}
	if c.Playback.DragPolicy == "" {
		c.Playback.DragPolicy = d.Playback.DragPolicy
	}

	// Timeline
	if c.Timeline.DateChange == "" {
		c.Timeline.DateChange = d.Timeline.DateChange
	}
	if c.Timeline.Zoom == "" {
		c.Timeline.Zoom = d.Timeline.Zoom
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.Channel == 0 {
		c.TUI.Channel = d.TUI.Channel
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
