package config

import (
	"errors"
	"fmt"
	"math"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.Timeline.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("timeline: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", scruberrors.ErrInvalidConfig, errors.Join(errs...))
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.TickInterval < 0 {
		return errors.New("tick_interval must be non-negative")
	}
	if c.LoopDuration < 0 {
		return errors.New("loop_duration must be non-negative")
	}
	if c.Step < 0 || c.Step > 100 || math.IsNaN(c.Step) {
		return errors.New("step must be between 0 and 100")
	}
	switch c.Speed {
	case 0, 1, 2, 4, 8:
		// valid
	default:
		return fmt.Errorf("invalid speed: %d (must be 1, 2, 4, or 8)", c.Speed)
	}
	switch c.DragPolicy {
	case "", "resume", "pause":
		// valid
	default:
		return fmt.Errorf("invalid drag_policy: %s (must be resume or pause)", c.DragPolicy)
	}
	return nil
}

// Validate checks TimelineConfig for errors.
func (c *TimelineConfig) Validate() error {
	switch c.DateChange {
	case "", "keep", "start", "end":
		// valid
	default:
		return fmt.Errorf("invalid date_change: %s (must be keep, start, or end)", c.DateChange)
	}
	switch c.Zoom {
	case "", "24h", "1h":
		// valid
	default:
		return fmt.Errorf("invalid zoom: %s (must be 24h or 1h)", c.Zoom)
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "", "auto", "dark", "light":
		// valid
	default:
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	if c.Channel < 0 {
		return errors.New("channel must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}
