// Package transport implements the discrete playback commands: jumps,
// steps, play/pause and speed cycling.
package transport

import (
	"fmt"
	"strings"

	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/timeline"
)

// DefaultStep is the jump size of a step command, in positions.
const DefaultStep = 5.0

// Position is the model the commands write through.
type Position interface {
	Position() float64
	SetPosition(p float64)
}

// Player owns the play state and speed.
type Player interface {
	Toggle() timeline.PlayState
	CycleSpeed() timeline.Speed
}

// Command names a transport action.
type Command string

const (
	JumpStart   Command = "jump-start"
	JumpEnd     Command = "jump-end"
	StepBack    Command = "step-back"
	StepForward Command = "step-forward"
	TogglePlay  Command = "toggle-play"
	CycleSpeed  Command = "cycle-speed"
)

// All lists every command.
var All = []Command{JumpStart, JumpEnd, StepBack, StepForward, TogglePlay, CycleSpeed}

// ParseCommand resolves a command name. Underscores and case are ignored.
func ParseCommand(s string) (Command, error) {
	name := Command(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, c := range All {
		if c == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", scruberrors.ErrUnknownCommand, s)
}

// Commands funnels every action through the position model.
type Commands struct {
	model  Position
	player Player
	step   float64
}

// New creates the command set. A non-positive step uses DefaultStep.
func New(model Position, player Player, step float64) *Commands {
	if step <= 0 {
		step = DefaultStep
	}
	return &Commands{model: model, player: player, step: step}
}

// Step returns the step size.
func (c *Commands) Step() float64 {
	return c.step
}

// JumpToStart moves to 00:00:00.
func (c *Commands) JumpToStart() {
	c.model.SetPosition(timeline.MinPosition)
}

// JumpToEnd moves to 24:00:00.
func (c *Commands) JumpToEnd() {
	c.model.SetPosition(timeline.MaxPosition)
}

// StepBackward moves back one step, stopping at the start.
func (c *Commands) StepBackward() {
	c.model.SetPosition(c.model.Position() - c.step)
}

// StepForward moves ahead one step, stopping at the end.
func (c *Commands) StepForward() {
	c.model.SetPosition(c.model.Position() + c.step)
}

// TogglePlay flips between playing and paused. The position is not touched.
func (c *Commands) TogglePlay() timeline.PlayState {
	return c.player.Toggle()
}

// CycleSpeed advances the multiplier, wrapping after the last.
func (c *Commands) CycleSpeed() timeline.Speed {
	return c.player.CycleSpeed()
}

// Execute runs a named command.
func (c *Commands) Execute(cmd Command) error {
	switch cmd {
	case JumpStart:
		c.JumpToStart()
	case JumpEnd:
		c.JumpToEnd()
	case StepBack:
		c.StepBackward()
	case StepForward:
		c.StepForward()
	case TogglePlay:
		c.TogglePlay()
	case CycleSpeed:
		c.CycleSpeed()
	default:
		return fmt.Errorf("%w: %q", scruberrors.ErrUnknownCommand, string(cmd))
	}
	return nil
}
