package session

import (
	"github.com/tessro/scrub/internal/config"
	"github.com/tessro/scrub/internal/timeline"
)

// FromConfig maps the [playback] and [timeline] sections onto session
// options. Scheduler, Capturer, Date and Logger are left for the caller.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Period:       cfg.Playback.Tick(),
		LoopDuration: cfg.Playback.Loop(),
		Step:         cfg.Playback.Step,
		Speed:        timeline.Speed(cfg.Playback.Speed),
		DragPolicy:   DragPolicy(cfg.Playback.DragPolicy),
		DatePolicy:   DatePolicy(cfg.Timeline.DateChange),
	}
}

// ApplyZoom sets the initial zoom from a config value ("24h" or "1h").
func (s *Session) ApplyZoom(zoom string) {
	if (zoom == "1h") != (s.zoom == ZoomHour) {
		s.ToggleZoom()
	}
}
