package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// WriterSink prints toasts as they appear. Dismissals are not printed.
type WriterSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{out: out}
}

func (s *WriterSink) ToastShown(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Message == "" {
		fmt.Fprintf(s.out, "[%s] %s\n", strings.ToUpper(string(t.Kind)), t.Title)
		return
	}
	fmt.Fprintf(s.out, "[%s] %s: %s\n", strings.ToUpper(string(t.Kind)), t.Title, t.Message)
}

func (s *WriterSink) ToastDismissed(Toast) {}

type Event struct {
	Type  string `json:"type"`
	Toast Toast  `json:"toast"`
}

const (
	EventShown     = "shown"
	EventDismissed = "dismissed"
	FeedCapacity   = 50
)

// Feed keeps the most recent toast events in memory for polling clients.
type Feed struct {
	mu     sync.Mutex
	events []Event
}

func NewFeed() *Feed {
	return &Feed{}
}

func (f *Feed) ToastShown(t Toast) {
	f.push(Event{Type: EventShown, Toast: t})
}

func (f *Feed) ToastDismissed(t Toast) {
	f.push(Event{Type: EventDismissed, Toast: t})
}

func (f *Feed) push(e Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	if len(f.events) > FeedCapacity {
		f.events = f.events[len(f.events)-FeedCapacity:]
	}
}

// Events returns a copy of the buffered events, oldest first.
func (f *Feed) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Sinks fans events out to several sinks.
type Sinks []Sink

func (s Sinks) ToastShown(t Toast) {
	for _, sink := range s {
		sink.ToastShown(t)
	}
}

func (s Sinks) ToastDismissed(t Toast) {
	for _, sink := range s {
		sink.ToastDismissed(t)
	}
}
