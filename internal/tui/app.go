package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/scrub/internal/autoplay"
	"github.com/tessro/scrub/internal/catalog"
	"github.com/tessro/scrub/internal/config"
	"github.com/tessro/scrub/internal/core"
	"github.com/tessro/scrub/internal/logging"
	"github.com/tessro/scrub/internal/scrub"
	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/tail"
	"github.com/tessro/scrub/internal/timeline"
	"github.com/tessro/scrub/internal/tui/components"
	"github.com/tessro/scrub/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelChannels Panel = iota
	PanelActivity
)

const (
	sidebarWidth = 34
	// Rows below the ruler: transport, clip marks, status bar.
	bottomRows  = 3
	maxActivity = 50
	errorTTL    = 5 * time.Second
)

// Options configures the playback view.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Date   timeline.Date
	// Day is the segment data from a segments file. Nil paints the sample
	// day for whichever date is selected.
	Day *core.Day
	// At is an optional HH:MM[:SS] start time.
	At string
}

// mouseCapture routes terminal-wide mouse motion to the active drag.
type mouseCapture struct {
	active *scrub.Handlers
}

func (c *mouseCapture) BeginDragCapture(h scrub.Handlers) scrub.Release {
	c.active = &h
	return func() {
		c.active = nil
	}
}

// Model is the main TUI model
type Model struct {
	sess      *session.Session
	capture   *mouseCapture
	watcher   *tail.Watcher
	formatter *tail.Formatter
	logger    *slog.Logger

	width        int
	height       int
	focusedPanel Panel

	channels []core.Channel
	day      *core.Day
	activity []components.ActivityEntry

	// Components
	channelsView *components.Channels
	activityView *components.Activity
	feed         *components.Feed
	rulerView    *components.Ruler
	transport    *components.Transport

	keys     keyMap
	help     help.Model
	showHelp bool

	// Time entry
	editing   bool
	timeInput textinput.Model

	// Error handling
	lastError   error
	errorExpiry time.Time
	notice      string

	quitting bool
}

// Messages
type activityMsg tail.Event
type activityClosedMsg struct{}
type errMsg error
type copiedMsg string

// newModel mounts a session on sched and builds the view around it.
func newModel(opts Options, sched autoplay.Scheduler) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	capture := &mouseCapture{}
	sessOpts := session.FromConfig(cfg)
	sessOpts.Scheduler = sched
	sessOpts.Capturer = capture
	sessOpts.Date = opts.Date
	sessOpts.Logger = logger
	sess := session.New(sessOpts)
	sess.ApplyZoom(cfg.Timeline.Zoom)

	if opts.At != "" {
		if err := sess.SetClockText(opts.At); err != nil {
			sess.Teardown()
			return Model{}, err
		}
	}

	ti := textinput.New()
	ti.Placeholder = "HH:MM:SS"
	ti.CharLimit = 8
	ti.Width = 8
	ti.Prompt = ""

	m := Model{
		sess:         sess,
		capture:      capture,
		watcher:      tail.NewWatcher(sess),
		formatter:    tail.NewFormatter(tail.WithEmoji(false)),
		logger:       logger,
		focusedPanel: PanelChannels,
		channels:     catalog.Channels(),
		day:          opts.Day,
		channelsView: components.NewChannels(),
		activityView: components.NewActivity(),
		feed:         components.NewFeed(),
		rulerView:    components.NewRuler(),
		transport:    components.NewTransport(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		timeInput:    ti,
	}
	for i, ch := range m.channels {
		if ch.ID == cfg.TUI.Channel {
			m.channelsView.Select(i)
		}
	}
	m.watcher.Start()
	return m, nil
}

// Commands
func waitForActivity(events <-chan tail.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return activityClosedMsg{}
		}
		return activityMsg(e)
	}
}

func copyTimestamp(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg(fmt.Errorf("copy failed: %w", err))
		}
		return copiedMsg(text)
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return waitForActivity(m.watcher.Events())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.run()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		l := m.layout()
		if err := m.sess.Resize(float64(l.rulerX), float64(l.rulerWidth-1)); err != nil {
			m.logger.Warn("ruler resize rejected", "err", err)
		}
		return m, nil

	case activityMsg:
		e := tail.Event(msg)
		entry := components.ActivityEntry{Text: m.formatter.Format(e), At: e.Timestamp}
		m.activity = append([]components.ActivityEntry{entry}, m.activity...)
		if len(m.activity) > maxActivity {
			m.activity = m.activity[:maxActivity]
		}
		return m, waitForActivity(m.watcher.Events())

	case activityClosedMsg:
		return m, nil

	case errMsg:
		m.setError(msg)
		return m, nil

	case copiedMsg:
		m.notice = "Copied " + string(msg)
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.timeInput, cmd = m.timeInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorTTL)
	m.notice = ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.editing {
		return m.handleTimeEntry(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Play):
		m.sess.TogglePlay()
	case key.Matches(msg, m.keys.Start):
		m.sess.JumpToStart()
	case key.Matches(msg, m.keys.End):
		m.sess.JumpToEnd()
	case key.Matches(msg, m.keys.Back):
		m.sess.StepBackward()
	case key.Matches(msg, m.keys.Forward):
		m.sess.StepForward()
	case key.Matches(msg, m.keys.Speed):
		m.sess.CycleSpeed()
	case key.Matches(msg, m.keys.Zoom):
		m.sess.ToggleZoom()
	case key.Matches(msg, m.keys.PrevDate):
		if err := m.sess.ShiftDate(-1); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, m.keys.NextDate):
		if err := m.sess.ShiftDate(1); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, m.keys.MarkIn):
		m.sess.MarkIn()
	case key.Matches(msg, m.keys.MarkOut):
		m.sess.MarkOut()
	case key.Matches(msg, m.keys.ClearClip):
		m.sess.ClearClip()
	case key.Matches(msg, m.keys.Copy):
		snap := m.sess.Snapshot()
		return m, copyTimestamp(snap.Date.At(snap.Time).Format(session.ClipLayout))
	case key.Matches(msg, m.keys.Time):
		m.editing = true
		m.timeInput.SetValue(m.sess.Snapshot().Time.String())
		m.timeInput.CursorEnd()
		return m, m.timeInput.Focus()
	case key.Matches(msg, m.keys.SwitchPanel):
		m.focusedPanel = (m.focusedPanel + 1) % 2
	case key.Matches(msg, m.keys.Up):
		if m.focusedPanel == PanelChannels {
			m.channelsView.SelectPrev()
		}
	case key.Matches(msg, m.keys.Down):
		if m.focusedPanel == PanelChannels {
			m.channelsView.SelectNext()
		}
	}

	return m, nil
}

func (m Model) handleTimeEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.timeInput.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.timeInput.Blur()
		if err := m.sess.SetClockText(m.timeInput.Value()); err != nil {
			m.setError(err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

// handleMouse turns terminal mouse reports into drag gestures. A press
// must land on the ruler; motion and release are taken from anywhere.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.onRuler(msg.X, msg.Y) {
			m.sess.Scrub().Handle(scrub.Event{Source: scrub.SourcePointer, Phase: scrub.PhaseDown, X: x})
		}
	case tea.MouseActionMotion:
		if m.capture.active != nil {
			m.capture.active.Move(x)
		}
	case tea.MouseActionRelease:
		if m.capture.active != nil {
			m.capture.active.End()
		}
	}
	return m, nil
}

type layout struct {
	rulerX     int
	rulerY     int
	rulerWidth int
	bodyHeight int
}

func (m Model) layout() layout {
	l := layout{
		rulerX:     2,
		rulerWidth: max(m.width-4, 2),
		bodyHeight: max(m.height-1-components.RulerHeight-bottomRows, 0),
	}
	l.rulerY = 1 + l.bodyHeight
	return l
}

func (m Model) onRuler(x, y int) bool {
	l := m.layout()
	return y >= l.rulerY && y < l.rulerY+components.RulerHeight &&
		x >= l.rulerX && x < l.rulerX+l.rulerWidth
}

func (m Model) currentChannel() core.Channel {
	if len(m.channels) == 0 {
		return core.Channel{}
	}
	return m.channels[m.channelsView.Selected(len(m.channels))]
}

func (m Model) currentDay(d timeline.Date) core.Day {
	if m.day != nil {
		return *m.day
	}
	return catalog.SampleDay(d)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	snap := m.sess.Snapshot()
	l := m.layout()
	ch := m.currentChannel()

	header := m.renderHeader(snap, ch)
	day := m.currentDay(snap.Date)

	var body string
	if l.bodyHeight > 0 {
		feedWidth := max(m.width-sidebarWidth, 10)
		channelsHeight := l.bodyHeight / 2
		sidebar := lipgloss.JoinVertical(lipgloss.Left,
			m.channelsView.Render(m.channels, sidebarWidth, channelsHeight, m.focusedPanel == PanelChannels),
			m.activityView.Render(m.activity, sidebarWidth, l.bodyHeight-channelsHeight, m.focusedPanel == PanelActivity),
		)
		footage := day.HasFootage(time.Duration(snap.Time.Seconds()) * time.Second)
		feed := m.feed.Render(ch, snap, footage, feedWidth, l.bodyHeight)
		body = lipgloss.NewStyle().
			Height(l.bodyHeight).
			MaxHeight(l.bodyHeight).
			Render(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, feed))
	}

	rulerBlock := lipgloss.NewStyle().
		PaddingLeft(l.rulerX).
		Render(m.rulerView.Render(day, snap.Position, m.sess.Window(), l.rulerWidth, snap.DragState == timeline.Dragging))

	clock := ""
	if m.editing {
		clock = m.timeInput.View()
	}
	transport := m.transport.Render(snap, clock, m.width)
	clip := m.transport.RenderClip(snap.Clip, m.width)

	parts := []string{header}
	if body != "" {
		parts = append(parts, body)
	}
	parts = append(parts, rulerBlock, transport, clip, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader(snap session.Snapshot, ch core.Channel) string {
	left := styles.Highlight.Render("SCRUB") + styles.Dim.Render("  ·  ") +
		styles.Title.Render(ch.Name) + styles.Dim.Render("  ·  ") +
		styles.Subtitle.Render(snap.Date.String())

	state := styles.Paused.Render(snap.PlayState.String())
	if snap.PlayState == timeline.Playing {
		state = styles.Playing.Render(snap.PlayState.String())
	}
	if snap.DragState == timeline.Dragging {
		state = styles.Highlight.Render("scrubbing")
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(state)-2, 1)
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(left + styles.Repeat(" ", gap) + state)
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.editing {
		status = styles.Dim.Render("enter:apply  esc:cancel")
	}
	if m.notice != "" {
		status = styles.Playing.Render(m.notice)
	}
	if m.lastError != nil && time.Now().Before(m.errorExpiry) {
		status = styles.ErrorText.Render("Error: " + m.lastError.Error())
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Scrub - Keyboard Shortcuts"
	h := m.help
	h.ShowAll = true

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(title),
		styles.Dim.Render(styles.Repeat("═", lipgloss.Width(title))),
		"",
		h.View(m.keys),
		"",
		styles.Muted.Render("Drag on the ruler with the mouse to scrub."),
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(content))
}

// teardown unmounts the session and stops the activity feed.
func (m Model) teardown() {
	m.watcher.Stop()
	m.sess.Teardown()
}

// Run starts the TUI application
func Run(opts Options) error {
	if opts.Config != nil {
		switch opts.Config.TUI.Theme {
		case "dark":
			lipgloss.SetHasDarkBackground(true)
		case "light":
			lipgloss.SetHasDarkBackground(false)
		}
	}

	sched := &programScheduler{}
	model, err := newModel(opts, sched)
	if err != nil {
		return err
	}
	defer model.teardown()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	sched.bind(p.Send)

	_, err = p.Run()
	return err
}
