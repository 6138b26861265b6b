package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tessro/scrub/internal/loop"
	"github.com/tessro/scrub/internal/session"
	"github.com/tessro/scrub/internal/tail"
	"github.com/tessro/scrub/internal/timeline"
)

var (
	playDuration  time.Duration
	playSpeed     string
	playFrom      string
	playDate      string
	playNoEmoji   bool
	playTimestamp bool
	playFormat    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the timeline headless and follow its events",
	Long: `Run the playback clock without the dashboard and print events as they happen.

Events tracked:
  - Play/Pause
  - Speed changes
  - Hour boundaries crossed during playback
  - Wrap from 24:00:00 back to 00:00:00

Press Ctrl+C to stop. With --duration, playback stops on its own.`,
	Example: `  scrub play --from 06:00 --speed 4
  scrub play --duration 30s --format '{{.Clock}} {{.Type}}'`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().DurationVar(&playDuration, "duration", 0, "stop after this long (default: until interrupted)")
	playCmd.Flags().StringVar(&playSpeed, "speed", "", "speed multiplier: 1, 2, 4 or 8 (default: playback.speed)")
	playCmd.Flags().StringVar(&playFrom, "from", "", "start time (HH:MM[:SS])")
	playCmd.Flags().StringVarP(&playDate, "date", "d", "", "date to play (YYYY/MM/DD, default today)")
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamp", "t", false, "show timestamps")
	playCmd.Flags().StringVarP(&playFormat, "format", "f", "", "custom format template")

	rootCmd.AddCommand(playCmd)
}

type playEvent struct {
	Type     string  `json:"type"`
	At       string  `json:"at"`
	Clock    string  `json:"clock"`
	Position float64 `json:"position"`
	Speed    string  `json:"speed"`
	State    string  `json:"state"`
}

type playSummary struct {
	Ticks   uint64 `json:"ticks"`
	Wraps   uint64 `json:"wraps"`
	Events  int    `json:"events"`
	Dropped int    `json:"dropped"`
	Clock   string `json:"clock"`
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playFormat != "" {
		if err := tail.ParseTemplate(playFormat); err != nil {
			return err
		}
	}

	opts := session.FromConfig(cfg)
	if playSpeed != "" {
		speed, err := timeline.ParseSpeed(playSpeed)
		if err != nil {
			return err
		}
		opts.Speed = speed
	}
	date, err := parseDateFlag(playDate)
	if err != nil {
		return err
	}
	opts.Date = date

	logger, closer, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	opts.Logger = logger

	formatter := tail.NewFormatter(
		tail.WithEmoji(!playNoEmoji),
		tail.WithTimestamp(playTimestamp),
		tail.WithTemplate(playFormat),
	)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if playDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, playDuration)
		defer cancel()
	}

	l := loop.New(0)
	opts.Scheduler = l
	runErr := make(chan error, 1)
	go func() {
		runErr <- l.Run(ctx)
	}()

	var (
		sess     *session.Session
		watcher  *tail.Watcher
		mountErr error
	)
	if err := l.Do(func() {
		sess = session.New(opts)
		sess.ApplyZoom(cfg.Timeline.Zoom)
		if playFrom != "" {
			if mountErr = sess.SetClockText(playFrom); mountErr != nil {
				return
			}
		}
		watcher = tail.NewWatcher(sess)
		watcher.Start()
		sess.TogglePlay()
	}); err != nil {
		return err
	}
	if mountErr != nil {
		_ = l.Post(sess.Teardown)
		return mountErr
	}

	out := cmd.OutOrStdout()
	live := !JSONOutput() && playFormat == "" && isTerminal(out)
	p := &playPrinter{out: out, formatter: formatter, live: live, barWidth: 30}
	if live {
		p.barWidth = progressWidth(out)
	}

	refresh := time.NewTicker(250 * time.Millisecond)
	defer refresh.Stop()

	events := watcher.Events()
	for running := true; running; {
		select {
		case e := <-events:
			p.event(e)
		case <-refresh.C:
			if !live {
				continue
			}
			var snap session.Snapshot
			if err := l.Do(func() { snap = sess.Snapshot() }); err == nil {
				p.status(snap)
			}
		case <-l.Done():
			running = false
		}
	}

	// The loop goroutine has exited, so the session has no other user.
	sess.Teardown()
	watcher.Stop()
	for e := range events {
		p.event(e)
	}
	p.clearStatus()

	summary := playSummary{
		Ticks:   sess.Clock().Ticks(),
		Wraps:   sess.Clock().Wraps(),
		Events:  p.count,
		Dropped: watcher.Dropped(),
		Clock:   sess.Snapshot().Time.String(),
	}
	p.summary(summary)

	if err := <-runErr; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// playPrinter writes events as lines or JSON, keeping a live status line
// at the bottom when stdout is a terminal.
type playPrinter struct {
	out       io.Writer
	formatter *tail.Formatter
	live      bool
	barWidth  int
	count     int
	statusOn  bool
}

func (p *playPrinter) event(e tail.Event) {
	p.count++
	if JSONOutput() {
		_ = json.NewEncoder(p.out).Encode(playEvent{
			Type:     e.Type.String(),
			At:       e.Timestamp.Format(time.RFC3339),
			Clock:    e.Current.Time.String(),
			Position: e.Current.Position,
			Speed:    e.Current.Speed.String(),
			State:    e.Current.PlayState.String(),
		})
		return
	}
	p.clearStatus()
	_, _ = fmt.Fprintln(p.out, p.formatter.Format(e))
}

func (p *playPrinter) status(snap session.Snapshot) {
	_, _ = fmt.Fprintf(p.out, "\r\033[K%s %s  %s  %s",
		StatusIcon(snap.PlayState == timeline.Playing),
		snap.Time.String(),
		snap.Speed.String(),
		FormatProgress(snap.Position, p.barWidth))
	p.statusOn = true
}

func (p *playPrinter) clearStatus() {
	if p.statusOn {
		_, _ = fmt.Fprint(p.out, "\r\033[K")
		p.statusOn = false
	}
}

func (p *playPrinter) summary(s playSummary) {
	if JSONOutput() {
		_ = json.NewEncoder(p.out).Encode(s)
		return
	}
	_, _ = fmt.Fprintf(p.out, "Stopped at %s after %s ticks (%s wraps, %s events",
		s.Clock, humanize.Comma(int64(s.Ticks)), humanize.Comma(int64(s.Wraps)), humanize.Comma(int64(s.Events)))
	if s.Dropped > 0 {
		_, _ = fmt.Fprintf(p.out, ", %s dropped", humanize.Comma(int64(s.Dropped)))
	}
	_, _ = fmt.Fprintln(p.out, ")")
}

// progressWidth sizes the status bar to the terminal, leaving room for
// the icon, clock and speed.
func progressWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 30
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 30
	}
	return min(max(cols-20, 10), 60)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
