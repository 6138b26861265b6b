package session

import (
	"fmt"
	"strings"
	"time"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

// ClipLayout is the format of clip boundaries.
const ClipLayout = "2006/01/02 15:04:05"

// Clip is an export range on the selected day. Either end may be unset.
type Clip struct {
	In  time.Time
	Out time.Time
}

// Complete reports whether both ends are set and In is not after Out.
func (c Clip) Complete() bool {
	return !c.In.IsZero() && !c.Out.IsZero() && !c.In.After(c.Out)
}

// Duration returns the clip length, or 0 when incomplete.
func (c Clip) Duration() time.Duration {
	if !c.Complete() {
		return 0
	}
	return c.Out.Sub(c.In)
}

// String formats the clip as "in - out", with blanks for unset ends.
func (c Clip) String() string {
	return formatClipTime(c.In) + " - " + formatClipTime(c.Out)
}

func formatClipTime(t time.Time) string {
	if t.IsZero() {
		return "----/--/-- --:--:--"
	}
	return t.Format(ClipLayout)
}

// ParseClipTime parses a clip boundary in ClipLayout.
func ParseClipTime(s string) (time.Time, error) {
	t, err := time.Parse(ClipLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidTime, s)
	}
	return t, nil
}

// MarkIn sets the clip start to the playhead on the selected date.
func (s *Session) MarkIn() Clip {
	if s.closed {
		return s.clip
	}
	s.clip.In = s.date.At(s.model.TimeOfDay())
	s.emit(EventClip)
	return s.clip
}

// MarkOut sets the clip end to the playhead on the selected date.
func (s *Session) MarkOut() Clip {
	if s.closed {
		return s.clip
	}
	s.clip.Out = s.date.At(s.model.TimeOfDay())
	s.emit(EventClip)
	return s.clip
}

// SetClip replaces the clip from typed boundaries. Either text may be
// empty to clear that end. Invalid text leaves the clip unchanged.
func (s *Session) SetClip(in, out string) error {
	if s.closed {
		return scruberrors.ErrClosed
	}
	var next Clip
	for _, f := range []struct {
		text string
		dst  *time.Time
	}{{in, &next.In}, {out, &next.Out}} {
		if strings.TrimSpace(f.text) == "" {
			continue
		}
		t, err := ParseClipTime(f.text)
		if err != nil {
			return err
		}
		*f.dst = t
	}
	s.clip = next
	s.emit(EventClip)
	return nil
}

// ClearClip removes both clip marks.
func (s *Session) ClearClip() {
	if s.closed {
		return
	}
	s.clip = Clip{}
	s.emit(EventClip)
}

// Clip returns the current clip marks.
func (s *Session) Clip() Clip {
	return s.clip
}
