package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayState is the autoplay state.
type PlayState int

const (
	Paused PlayState = iota
	Playing
)

// String returns the state name.
func (s PlayState) String() string {
	switch s {
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// DragState tracks whether a scrub gesture holds the playhead.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// String returns the state name.
func (s DragState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Speed is an autoplay multiplier.
type Speed int

const (
	Speed1X Speed = 1
	Speed2X Speed = 2
	Speed4X Speed = 4
	Speed8X Speed = 8
)

// Speeds lists the multipliers in cycle order.
var Speeds = []Speed{Speed1X, Speed2X, Speed4X, Speed8X}

// Next returns the multiplier after s, wrapping from the last to the first.
// Values outside the enumeration restart the cycle.
func (s Speed) Next() Speed {
	for i, v := range Speeds {
		if v == s {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return Speeds[0]
}

// Valid reports whether s is one of the enumerated multipliers.
func (s Speed) Valid() bool {
	for _, v := range Speeds {
		if v == s {
			return true
		}
	}
	return false
}

// String formats the multiplier as "1X".
func (s Speed) String() string {
	return strconv.Itoa(int(s)) + "X"
}

// ParseSpeed accepts "2", "2x" or "2X".
func ParseSpeed(s string) (Speed, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "x"))
	if err != nil || !Speed(n).Valid() {
		return 0, fmt.Errorf("invalid speed %q (must be 1, 2, 4, or 8)", s)
	}
	return Speed(n), nil
}
