package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

const secondsPerDay = MinutesPerDay * 60

// TimeOfDay is a wall-clock time inside the window. The end of the window
// reads as 24:00:00.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// drift is the tolerance, in seconds, under which a position counts as
// reaching the next whole second. Summing a full day of 1X ticks drifts by
// about 1e-9s; a position 1e-9 below a boundary sits about 8.6e-7s short.
const drift = 1e-7

// TimeAt derives the time of day for a position, flooring to the second.
// Positions within drift of a whole second read as that second.
func TimeAt(p float64) TimeOfDay {
	minutes := Clamp(p) / MaxPosition * MinutesPerDay
	total := int(math.Floor(minutes*60 + drift))
	return TimeOfDay{
		Hour:   total / 3600,
		Minute: total / 60 % 60,
		Second: total % 60,
	}
}

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Position maps the time back onto the position range.
func (t TimeOfDay) Position() float64 {
	return Clamp(float64(t.Seconds()) / secondsPerDay * MaxPosition)
}

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM". 24:00 is accepted as the
// end of the window; anything later is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidTime, s)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidTime, s)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidTime, s)
		}
		fields[i] = n
	}

	t := TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if t.Minute > 59 || t.Second > 59 || t.Hour > 24 || (t.Hour == 24 && (t.Minute > 0 || t.Second > 0)) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", scruberrors.ErrInvalidTime, s)
	}
	return t, nil
}
