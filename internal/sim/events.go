package sim

// Tone classifies an event line for display styling.
type Tone int

const (
	ToneInfo Tone = iota
	ToneGood
	ToneWarn
	ToneBad
)

// Event is one line of the run's bounded feed. Events are informational
// only; nothing in the simulation reads them back.
type Event struct {
	Seq  int
	Tone Tone
	Text string
}

// eventLog keeps the most recent events newest-first, truncated to a fixed
// capacity.
type eventLog struct {
	cap     int
	seq     int
	entries []Event
}

func newEventLog(capacity int) eventLog {
	if capacity <= 0 {
		capacity = 32
	}
	return eventLog{cap: capacity}
}

// push prepends an event and drops the oldest past capacity.
func (l *eventLog) push(tone Tone, text string) {
	l.seq++
	l.entries = append(l.entries, Event{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = Event{Seq: l.seq, Tone: tone, Text: text}
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

// tail returns up to n most recent events, newest first. The returned slice
// is a copy; callers may hold it across steps.
func (l *eventLog) tail(n int) []Event {
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Event, n)
	copy(out, l.entries[:n])
	return out
}
