package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tessro/scrub/internal/core"
	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/timeline"
)

func TestChannels(t *testing.T) {
	list := Channels()
	if len(list) != 12 {
		t.Fatalf("len(Channels()) = %d, want 12", len(list))
	}
	for _, c := range list {
		if !c.Status.Valid() {
			t.Errorf("channel %d has invalid status %q", c.ID, c.Status)
		}
	}

	list[0].Name = "changed"
	if c, _ := Channel(1); c.Name == "changed" {
		t.Error("Channels() returned the backing slice")
	}

	tests := []struct {
		id     int
		status core.ChannelStatus
	}{
		{4, core.ChannelRecording},
		{6, core.ChannelError},
		{12, core.ChannelLoading},
	}
	for _, tt := range tests {
		c, ok := Channel(tt.id)
		if !ok || c.Status != tt.status {
			t.Errorf("Channel(%d) = %+v, %v; want status %s", tt.id, c, ok, tt.status)
		}
	}
	if _, ok := Channel(99); ok {
		t.Error("Channel(99) found")
	}
}

func TestSampleDay(t *testing.T) {
	d := SampleDay(timeline.Date{Year: 2024, Month: time.March, Day: 9})
	if d.Date != "2024/03/09" {
		t.Errorf("Date = %q", d.Date)
	}

	events := 0
	for _, r := range d.Recordings {
		if r.Kind == core.SpanEvent {
			events++
		}
	}
	if events != 8 {
		t.Errorf("event blocks = %d, want 8", events)
	}
	if !d.HasFootage(23*time.Hour + 59*time.Minute) {
		t.Error("sample day should have footage all day")
	}
	if len(d.Motion) == 0 {
		t.Error("sample day has no motion markers")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segments.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadDay(t *testing.T) {
	path := writeFile(t, `date: 2024-03-09
recordings:
  - start: "00:00"
    end: "06:30"
  - start: "08:00"
    end: "08:45:30"
    kind: event
  - start: "10:00"
    end: "09:00"
  - start: "25:00"
    end: "26:00"
  - start: "12:00"
    end: "13:00"
    kind: timelapse
motion:
  - at: "09:16:23"
    label: person
  - at: "nope"
`)

	result, err := LoadDay(path)
	if err != nil {
		t.Fatalf("LoadDay() error = %v", err)
	}
	if result.Data.Date != "2024/03/09" {
		t.Errorf("Date = %q", result.Data.Date)
	}
	if len(result.Data.Recordings) != 2 {
		t.Fatalf("recordings = %+v, want 2", result.Data.Recordings)
	}
	if r := result.Data.Recordings[1]; r.Kind != core.SpanEvent || r.End != 8*time.Hour+45*time.Minute+30*time.Second {
		t.Errorf("recording[1] = %+v", r)
	}
	if result.Data.Recordings[0].Kind != core.SpanContinuous {
		t.Errorf("default kind = %q, want continuous", result.Data.Recordings[0].Kind)
	}
	if len(result.Data.Motion) != 1 || result.Data.Motion[0].Label != "person" {
		t.Errorf("motion = %+v", result.Data.Motion)
	}
	if len(result.Errors) != 4 {
		t.Errorf("errors = %d (%s), want 4", len(result.Errors), result.ErrorSummary())
	}
}

func TestLoadDayFileErrors(t *testing.T) {
	if _, err := LoadDay(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, scruberrors.ErrSegmentsFile) {
		t.Errorf("missing file error = %v, want ErrSegmentsFile", err)
	}
	path := writeFile(t, "recordings: [unterminated")
	if _, err := LoadDay(path); !errors.Is(err, scruberrors.ErrSegmentsFile) {
		t.Errorf("malformed file error = %v, want ErrSegmentsFile", err)
	}
}
