package timeline

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	scruberrors "github.com/tessro/scrub/internal/errors"
)

func TestSetPositionClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-10, 0},
		{150, 100},
		{0, 0},
		{100, 100},
		{42.5, 42.5},
		{math.Inf(1), 100},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	m := NewModel()
	for _, tt := range tests {
		m.SetPosition(tt.in)
		if got := m.Position(); got != tt.want {
			t.Errorf("SetPosition(%v): Position() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetPositionIdempotent(t *testing.T) {
	once := NewModel()
	once.SetPosition(37.3)

	twice := NewModel()
	twice.SetPosition(37.3)
	twice.SetPosition(37.3)

	if once.TimeOfDay() != twice.TimeOfDay() {
		t.Errorf("TimeOfDay() = %v after two writes, want %v", twice.TimeOfDay(), once.TimeOfDay())
	}
	if once.Position() != twice.Position() {
		t.Errorf("Position() = %v after two writes, want %v", twice.Position(), once.Position())
	}
}

func TestTimeOfDayDerived(t *testing.T) {
	tests := []struct {
		position float64
		want     string
	}{
		{0, "00:00:00"},
		{25, "06:00:00"},
		{50, "12:00:00"},
		{1, "00:14:24"},
		{0.01, "00:00:08"},
		{99.999, "23:59:59"},
		{100, "24:00:00"},
		{25 - 1e-9, "05:59:59"},
		{100 - 1e-9, "23:59:59"},
	}

	m := NewModel()
	for _, tt := range tests {
		m.SetPosition(tt.position)
		if got := m.TimeOfDay().String(); got != tt.want {
			t.Errorf("position %v: TimeOfDay() = %s, want %s", tt.position, got, tt.want)
		}
	}
}

func TestTimeAtAbsorbsTickDrift(t *testing.T) {
	tests := []struct {
		step  float64
		ticks int
		want  string
	}{
		{0.1, 10, "00:14:24"},
		{0.1, 100, "02:24:00"},
		{0.1, 1000, "24:00:00"},
		{0.8, 125, "24:00:00"},
		{0.025, 400, "02:24:00"},
	}
	for _, tt := range tests {
		p := 0.0
		for range tt.ticks {
			p += tt.step
		}
		if got := TimeAt(p).String(); got != tt.want {
			t.Errorf("%d ticks of %v (p=%v): TimeAt() = %s, want %s", tt.ticks, tt.step, p, got, tt.want)
		}
	}
}

func TestTimeOfDayFollowsEveryWrite(t *testing.T) {
	m := NewModel()
	m.SetPosition(25)
	m.SetPosition(75)
	if got := m.TimeOfDay(); got != (TimeOfDay{Hour: 18}) {
		t.Errorf("TimeOfDay() = %v, want 18:00:00", got)
	}
}

func TestListeners(t *testing.T) {
	m := NewModel()

	var got []float64
	unsubscribe := m.AddListener(func(p float64) {
		got = append(got, p)
	})

	m.SetPosition(10)
	m.SetPosition(10)
	m.SetPosition(200)
	unsubscribe()
	m.SetPosition(5)

	want := []float64{10, 10, 100}
	if len(got) != len(want) {
		t.Fatalf("listener saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("listener[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"06:00:00", TimeOfDay{Hour: 6}, false},
		{"6:30", TimeOfDay{Hour: 6, Minute: 30}, false},
		{" 23:59:59 ", TimeOfDay{Hour: 23, Minute: 59, Second: 59}, false},
		{"24:00", TimeOfDay{Hour: 24}, false},
		{"24:00:01", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"12:00:60", TimeOfDay{}, true},
		{"noon", TimeOfDay{}, true},
		{"12", TimeOfDay{}, true},
		{"1:2:3:4", TimeOfDay{}, true},
		{"-1:00", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if tt.wantErr {
			if !errors.Is(err, scruberrors.ErrInvalidTime) {
				t.Errorf("ParseTimeOfDay(%q) error = %v, want ErrInvalidTime", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTimeOfDayPositionRoundTrip(t *testing.T) {
	if got := (TimeOfDay{Hour: 6}).Position(); got != 25 {
		t.Errorf("06:00:00 Position() = %v, want 25", got)
	}
	if got := (TimeOfDay{Hour: 24}).Position(); got != 100 {
		t.Errorf("24:00:00 Position() = %v, want 100", got)
	}

	tod := TimeOfDay{Hour: 13, Minute: 37, Second: 12}
	if got := TimeAt(tod.Position()); got != tod {
		t.Errorf("TimeAt(Position()) = %v, want %v", got, tod)
	}
}

func TestSpeedCycleClosure(t *testing.T) {
	for _, start := range Speeds {
		s := start
		for range Speeds {
			s = s.Next()
		}
		if s != start {
			t.Errorf("cycling %v %d times = %v, want %v", start, len(Speeds), s, start)
		}
	}

	if got := Speed8X.Next(); got != Speed1X {
		t.Errorf("8X.Next() = %v, want 1X", got)
	}
	if got := Speed(3).Next(); got != Speed1X {
		t.Errorf("Speed(3).Next() = %v, want 1X", got)
	}
}

func TestParseSpeed(t *testing.T) {
	for in, want := range map[string]Speed{"1": Speed1X, "2x": Speed2X, "4X": Speed4X, " 8 ": Speed8X} {
		got, err := ParseSpeed(in)
		if err != nil || got != want {
			t.Errorf("ParseSpeed(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"3", "0", "fast", ""} {
		if _, err := ParseSpeed(in); err == nil {
			t.Errorf("ParseSpeed(%q) error = nil, want error", in)
		}
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025/12/14")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2025/12/14" {
		t.Errorf("String() = %q, want %q", d.String(), "2025/12/14")
	}
	if got := d.AddDays(18).String(); got != "2026/01/01" {
		t.Errorf("AddDays(18) = %q, want %q", got, "2026/01/01")
	}

	at := d.At(TimeOfDay{Hour: 12, Minute: 16})
	want := time.Date(2025, 12, 14, 12, 16, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("At() = %v, want %v", at, want)
	}

	if _, err := ParseDate("2025-12-03"); err != nil {
		t.Errorf("ParseDate() with dashes error = %v", err)
	}
	if _, err := ParseDate("14/12/2025"); !errors.Is(err, scruberrors.ErrInvalidDate) {
		t.Errorf("ParseDate() error = %v, want ErrInvalidDate", err)
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestOwnership(t *testing.T) {
	var o Ownership

	if !o.Allows(WriterClock) || !o.Allows(WriterScrub) {
		t.Fatal("empty token should allow every writer")
	}
	if !o.Claim(WriterClock) {
		t.Fatal("Claim(clock) on empty token = false")
	}
	if !o.Claim(WriterScrub) {
		t.Fatal("Claim(scrub) should preempt the clock")
	}
	if o.Allows(WriterClock) {
		t.Error("Allows(clock) = true while scrub holds the token")
	}
	if o.Claim(WriterClock) {
		t.Error("Claim(clock) = true while scrub holds the token")
	}

	o.Yield(WriterClock)
	if o.Holder() != WriterScrub {
		t.Errorf("Holder() = %v after foreign yield, want scrub", o.Holder())
	}
	o.Yield(WriterScrub)
	if o.Holder() != WriterNone {
		t.Errorf("Holder() = %v, want none", o.Holder())
	}
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	m := NewModel()

	var order []int
	var unsubscribeFirst func()
	unsubscribeFirst = m.AddListener(func(float64) {
		order = append(order, 0)
		unsubscribeFirst()
	})
	for i := 1; i < 5; i++ {
		m.AddListener(func(float64) { order = append(order, i) })
	}

	// The first listener drops itself mid-dispatch; the rest still run.
	m.SetPosition(10)
	if want := []int{0, 1, 2, 3, 4}; !slices.Equal(order, want) {
		t.Fatalf("first write order = %v, want %v", order, want)
	}

	for range 50 {
		order = order[:0]
		m.SetPosition(20)
		if want := []int{1, 2, 3, 4}; !slices.Equal(order, want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
