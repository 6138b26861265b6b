package timeline

// Writer identifies a component that continuously writes the position.
// Transport commands are one-shot user actions and never hold the token.
type Writer int

const (
	WriterNone Writer = iota
	WriterScrub
	WriterClock
)

// String returns the writer name.
func (w Writer) String() string {
	switch w {
	case WriterNone:
		return "none"
	case WriterScrub:
		return "scrub"
	case WriterClock:
		return "clock"
	default:
		return "unknown"
	}
}

// Ownership is the token deciding which continuous writer may update the
// position. A scrub claim preempts the clock; the clock never preempts a
// scrub.
type Ownership struct {
	holder Writer
}

// Claim tries to take the token for w and reports whether w now holds it.
func (o *Ownership) Claim(w Writer) bool {
	switch {
	case o.holder == WriterNone, o.holder == w:
		o.holder = w
	case w == WriterScrub:
		o.holder = WriterScrub
	default:
		return false
	}
	return true
}

// Yield releases the token if w holds it.
func (o *Ownership) Yield(w Writer) {
	if o.holder == w {
		o.holder = WriterNone
	}
}

// Holder returns the current holder.
func (o *Ownership) Holder() Writer {
	return o.holder
}

// Allows reports whether w may write now.
func (o *Ownership) Allows(w Writer) bool {
	return o.holder == WriterNone || o.holder == w
}
