package core

// ChannelStatus drives the placeholder video surface.
type ChannelStatus string

const (
	ChannelLive      ChannelStatus = "live"
	ChannelRecording ChannelStatus = "recording"
	ChannelError     ChannelStatus = "error"
	ChannelLoading   ChannelStatus = "loading"
)

// Valid reports whether s is a known status.
func (s ChannelStatus) Valid() bool {
	switch s {
	case ChannelLive, ChannelRecording, ChannelError, ChannelLoading:
		return true
	}
	return false
}

// Channel is a camera or broadcast feed shown in the playback view.
type Channel struct {
	ID     int           `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Status ChannelStatus `json:"status" yaml:"status"`
}
