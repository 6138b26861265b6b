// Package catalog supplies the data the playback view displays but never
// computes: the channel list and the recorded segments of a day.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tessro/scrub/internal/core"
	scruberrors "github.com/tessro/scrub/internal/errors"
	"github.com/tessro/scrub/internal/timeline"
)

var channels = []core.Channel{
	{ID: 1, Name: "Next TV (壹電視)", Status: core.ChannelLive},
	{ID: 2, Name: "TTV News HD (台視新聞)", Status: core.ChannelLive},
	{ID: 3, Name: "USTV (寰宇新聞)", Status: core.ChannelLive},
	{ID: 4, Name: "CTV News (中視新聞)", Status: core.ChannelRecording},
	{ID: 5, Name: "CTS News (華視新聞)", Status: core.ChannelLive},
	{ID: 6, Name: "PTS 13 (公視13頻道)", Status: core.ChannelError},
	{ID: 7, Name: "FTV News (民視新聞)", Status: core.ChannelLive},
	{ID: 8, Name: "CTi News (中天)", Status: core.ChannelLive},
	{ID: 9, Name: "SET LIVE (三立)", Status: core.ChannelLive},
	{ID: 10, Name: "TVBS News", Status: core.ChannelLive},
	{ID: 11, Name: "EBC News (東森)", Status: core.ChannelLive},
	{ID: 12, Name: "Traffic Cam 04", Status: core.ChannelLoading},
}

// Channels returns a copy of the channel list.
func Channels() []core.Channel {
	out := make([]core.Channel, len(channels))
	copy(out, channels)
	return out
}

// Channel looks up a channel by ID.
func Channel(id int) (core.Channel, bool) {
	for _, c := range channels {
		if c.ID == id {
			return c, true
		}
	}
	return core.Channel{}, false
}

// SampleDay returns placeholder segments: every hour has continuous
// footage, every third hour carries an event block, plus a few motion
// markers.
func SampleDay(d timeline.Date) core.Day {
	day := core.Day{Date: d.String()}
	for h := 0; h < 24; h++ {
		start := time.Duration(h) * time.Hour
		day.Recordings = append(day.Recordings, core.RecordingSpan{
			Start: start,
			End:   start + time.Hour,
			Kind:  core.SpanContinuous,
		})
		if h%3 == 0 {
			day.Recordings = append(day.Recordings, core.RecordingSpan{
				Start: start + 25*time.Minute,
				End:   start + 55*time.Minute,
				Kind:  core.SpanEvent,
			})
		}
	}
	day.Motion = []core.MotionMarker{
		{At: 9*time.Hour + 16*time.Minute + 23*time.Second, Label: "person"},
		{At: 9*time.Hour + 18*time.Minute + 45*time.Second, Label: "person"},
		{At: 23*time.Hour + 46*time.Minute + 10*time.Second, Label: "vehicle"},
	}
	return day
}

// segmentsFile is the on-disk layout of a day's segments. Times are
// "HH:MM" or "HH:MM:SS".
type segmentsFile struct {
	Date       string `yaml:"date"`
	Recordings []struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
		Kind  string `yaml:"kind"`
	} `yaml:"recordings"`
	Motion []struct {
		At    string `yaml:"at"`
		Label string `yaml:"label"`
	} `yaml:"motion"`
}

// LoadDay reads a YAML segments file. Entries that fail to parse are
// skipped and reported in the result's Errors; a missing or malformed
// file is an error.
func LoadDay(path string) (*scruberrors.PartialResult[core.Day], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", scruberrors.ErrSegmentsFile, path)
		}
		return nil, fmt.Errorf("%w: %v", scruberrors.ErrSegmentsFile, err)
	}

	var f segmentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", scruberrors.ErrSegmentsFile, path, err)
	}

	result := &scruberrors.PartialResult[core.Day]{}
	if f.Date != "" {
		d, err := timeline.ParseDate(f.Date)
		if err != nil {
			result.AddError(err)
		} else {
			result.Data.Date = d.String()
		}
	}

	for i, r := range f.Recordings {
		start, err := offset(r.Start)
		if err != nil {
			result.AddError(fmt.Errorf("recording %d start: %w", i, err))
			continue
		}
		end, err := offset(r.End)
		if err != nil {
			result.AddError(fmt.Errorf("recording %d end: %w", i, err))
			continue
		}
		if end <= start {
			result.AddError(fmt.Errorf("recording %d: end %s is not after start %s", i, r.End, r.Start))
			continue
		}
		kind := core.SpanKind(r.Kind)
		switch kind {
		case "":
			kind = core.SpanContinuous
		case core.SpanContinuous, core.SpanEvent:
		default:
			result.AddError(fmt.Errorf("recording %d: unknown kind %q", i, r.Kind))
			continue
		}
		result.Data.Recordings = append(result.Data.Recordings, core.RecordingSpan{Start: start, End: end, Kind: kind})
	}

	for i, m := range f.Motion {
		at, err := offset(m.At)
		if err != nil {
			result.AddError(fmt.Errorf("motion %d: %w", i, err))
			continue
		}
		result.Data.Motion = append(result.Data.Motion, core.MotionMarker{At: at, Label: m.Label})
	}

	return result, nil
}

func offset(s string) (time.Duration, error) {
	t, err := timeline.ParseTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Seconds()) * time.Second, nil
}
