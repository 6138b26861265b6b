package transport

import (
	"errors"
	"testing"

	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/timeline"
)

type stubPlayer struct {
	state timeline.PlayState
	speed timeline.Speed
}

func (p *stubPlayer) Toggle() timeline.PlayState {
	if p.state == timeline.Playing {
		p.state = timeline.Paused
	} else {
		p.state = timeline.Playing
	}
	return p.state
}

func (p *stubPlayer) CycleSpeed() timeline.Speed {
	p.speed = p.speed.Next()
	return p.speed
}

func newTestCommands() (*Commands, *timeline.Model, *stubPlayer) {
	model := timeline.NewModel()
	player := &stubPlayer{speed: timeline.Speed1X}
	return New(model, player, 0), model, player
}

func TestJumps(t *testing.T) {
	for _, state := range []timeline.PlayState{timeline.Paused, timeline.Playing} {
		c, model, player := newTestCommands()
		player.state = state
		model.SetPosition(42)

		var seen []float64
		model.AddListener(func(p float64) { seen = append(seen, p) })

		c.JumpToEnd()
		c.JumpToStart()

		if len(seen) != 2 || seen[0] != 100 || seen[1] != 0 {
			t.Errorf("state %v: positions = %v, want [100 0]", state, seen)
		}
	}
}

func TestSteps(t *testing.T) {
	c, model, _ := newTestCommands()
	if c.Step() != DefaultStep {
		t.Errorf("Step() = %v, want %v", c.Step(), DefaultStep)
	}

	model.SetPosition(50)
	c.StepForward()
	if model.Position() != 55 {
		t.Errorf("StepForward: Position() = %v, want 55", model.Position())
	}
	c.StepBackward()
	c.StepBackward()
	if model.Position() != 45 {
		t.Errorf("StepBackward: Position() = %v, want 45", model.Position())
	}

	model.SetPosition(2)
	c.StepBackward()
	if model.Position() != 0 {
		t.Errorf("StepBackward near start: Position() = %v, want 0", model.Position())
	}
	model.SetPosition(98)
	c.StepForward()
	if model.Position() != 100 {
		t.Errorf("StepForward near end: Position() = %v, want 100", model.Position())
	}
}

func TestTogglePlayKeepsPosition(t *testing.T) {
	c, model, _ := newTestCommands()
	model.SetPosition(33)

	if got := c.TogglePlay(); got != timeline.Playing {
		t.Errorf("TogglePlay() = %v, want playing", got)
	}
	if model.Position() != 33 {
		t.Errorf("Position() = %v after toggle, want 33", model.Position())
	}
}

func TestCycleSpeed(t *testing.T) {
	c, _, _ := newTestCommands()
	want := []timeline.Speed{timeline.Speed2X, timeline.Speed4X, timeline.Speed8X, timeline.Speed1X}
	for i, w := range want {
		if got := c.CycleSpeed(); got != w {
			t.Errorf("CycleSpeed() #%d = %v, want %v", i+1, got, w)
		}
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{"jump-end", 100},
		{"JUMP_START", 0},
		{"step-forward", 5},
		{" step-back ", 0},
	}

	c, model, _ := newTestCommands()
	for _, tt := range tests {
		cmd, err := ParseCommand(tt.name)
		if err != nil {
			t.Fatalf("ParseCommand(%q) error = %v", tt.name, err)
		}
		if err := c.Execute(cmd); err != nil {
			t.Fatalf("Execute(%q) error = %v", cmd, err)
		}
		if model.Position() != tt.want {
			t.Errorf("after %q: Position() = %v, want %v", tt.name, model.Position(), tt.want)
		}
	}

	if _, err := ParseCommand("rewind"); !errors.Is(err, scruberrors.ErrUnknownCommand) {
		t.Errorf("ParseCommand(rewind) error = %v, want ErrUnknownCommand", err)
	}
	if err := c.Execute(Command("rewind")); !errors.Is(err, scruberrors.ErrUnknownCommand) {
		t.Errorf("Execute(rewind) error = %v, want ErrUnknownCommand", err)
	}
}
