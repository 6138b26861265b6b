package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the playback view bindings.
type keyMap struct {
	Play        key.Binding
	Start       key.Binding
	End         key.Binding
	Back        key.Binding
	Forward     key.Binding
	Speed       key.Binding
	Zoom        key.Binding
	PrevDate    key.Binding
	NextDate    key.Binding
	Time        key.Binding
	MarkIn      key.Binding
	MarkOut     key.Binding
	ClearClip   key.Binding
	Copy        key.Binding
	Up          key.Binding
	Down        key.Binding
	SwitchPanel key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Start:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "jump to 00:00")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "jump to 24:00")),
		Back:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "step back")),
		Forward:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "step forward")),
		Speed:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle speed")),
		Zoom:        key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "24H/1H")),
		PrevDate:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous day")),
		NextDate:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Time:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "enter time")),
		MarkIn:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "mark in")),
		MarkOut:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "mark out")),
		ClearClip:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear clip")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy timestamp")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous channel")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next channel")),
		SwitchPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Back, k.Forward, k.Speed, k.Time, k.Zoom, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Start, k.End, k.Back, k.Forward, k.Speed},
		{k.Time, k.Zoom, k.PrevDate, k.NextDate},
		{k.MarkIn, k.MarkOut, k.ClearClip, k.Copy},
		{k.Up, k.Down, k.SwitchPanel, k.Help, k.Quit},
	}
}
