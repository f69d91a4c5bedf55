package notify

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ToastLimit      = 4
	DefaultDuration = 4500 * time.Millisecond
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindDanger  Kind = "danger"
)

var titles = map[Kind]string{
	KindSuccess: "Success",
	KindInfo:    "Heads up",
	KindWarning: "Check again",
	KindDanger:  "Something went wrong",
}

// NormalizeKind maps aliases ("error", "warn") onto the four kinds. Empty is info.
func NormalizeKind(kind string) Kind {
	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case "":
		return KindInfo
	case "error":
		return KindDanger
	case "warn":
		return KindWarning
	default:
		return Kind(k)
	}
}

// InferKind guesses a kind from message text.
func InferKind(message string) Kind {
	text := strings.ToLower(message)
	switch {
	case text == "":
		return KindInfo
	case strings.Contains(text, "success"):
		return KindSuccess
	case strings.Contains(text, "warning"), strings.Contains(text, "caution"):
		return KindWarning
	case strings.Contains(text, "error"), strings.Contains(text, "failed"),
		strings.Contains(text, "cannot"), strings.Contains(text, "can't"):
		return KindDanger
	default:
		return KindInfo
	}
}

// DefaultTitle is used when a toast has no title of its own.
func DefaultTitle(kind Kind) string {
	if title, ok := titles[kind]; ok {
		return title
	}
	return "Notice"
}

type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ToastOptions struct {
	Title    string
	Message  string
	Kind     string
	Duration time.Duration
}

// Sink is told about every toast that appears or goes away.
type Sink interface {
	ToastShown(Toast)
	ToastDismissed(Toast)
}

type entry struct {
	toast Toast
	timer *time.Timer
}

// Notifier keeps the visible toasts and the confirm dialog slot. The CLI
// uses Default; the console keeps one per session.
type Notifier struct {
	mu       sync.Mutex
	sink     Sink
	prompter Prompter
	duration time.Duration
	count    int
	active   []*entry
	confirm  confirmSlot
	now      func() time.Time
}

func NewNotifier(sink Sink, prompter Prompter) *Notifier {
	return &Notifier{sink: sink, prompter: prompter, duration: DefaultDuration, now: time.Now}
}

var (
	defaultOnce     sync.Once
	defaultNotifier *Notifier
)

// Default returns the process wide notifier. It has no sink or prompter
// until SetSink / SetPrompter are called.
func Default() *Notifier {
	defaultOnce.Do(func() {
		defaultNotifier = NewNotifier(nil, nil)
	})
	return defaultNotifier
}

func (n *Notifier) SetSink(sink Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sink = sink
}

func (n *Notifier) SetPrompter(prompter Prompter) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prompter = prompter
}

// SetDuration changes the auto dismiss delay of later toasts.
func (n *Notifier) SetDuration(d time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if d > 0 {
		n.duration = d
	}
}

// Show adds a toast, evicting the oldest ones beyond ToastLimit.
func (n *Notifier) Show(opts ToastOptions) Toast {
	kind := NormalizeKind(opts.Kind)
	title := opts.Title
	if title == "" {
		title = DefaultTitle(kind)
	}

	n.mu.Lock()
	var evicted []Toast
	for len(n.active) >= ToastLimit {
		oldest := n.active[0]
		oldest.timer.Stop()
		n.active = n.active[1:]
		evicted = append(evicted, oldest.toast)
	}

	n.count++
	toast := Toast{
		ID:        "toast-" + strconv.Itoa(n.count),
		Kind:      kind,
		Title:     title,
		Message:   opts.Message,
		CreatedAt: n.now(),
	}
	duration := opts.Duration
	if duration <= 0 {
		duration = n.duration
	}
	id := toast.ID
	n.active = append(n.active, &entry{
		toast: toast,
		timer: time.AfterFunc(duration, func() { n.Dismiss(id) }),
	})
	sink := n.sink
	n.mu.Unlock()

	if sink != nil {
		for _, old := range evicted {
			sink.ToastDismissed(old)
		}
		sink.ToastShown(toast)
	}
	return toast
}

func (n *Notifier) Success(message string) Toast {
	return n.Show(ToastOptions{Message: message, Kind: string(KindSuccess)})
}

func (n *Notifier) Info(message string) Toast {
	return n.Show(ToastOptions{Message: message, Kind: string(KindInfo)})
}

func (n *Notifier) Warning(message string) Toast {
	return n.Show(ToastOptions{Message: message, Kind: string(KindWarning)})
}

func (n *Notifier) Error(message string) Toast {
	return n.Show(ToastOptions{Message: message, Kind: string(KindDanger)})
}

// Alert shows message with a kind guessed from its text.
func (n *Notifier) Alert(message string) Toast {
	return n.Show(ToastOptions{Message: message, Kind: string(InferKind(message))})
}

// Dismiss removes a toast. It reports false when the toast is already gone.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	var removed *entry
	for i, e := range n.active {
		if e.toast.ID == id {
			removed = e
			n.active = append(n.active[:i:i], n.active[i+1:]...)
			break
		}
	}
	sink := n.sink
	n.mu.Unlock()

	if removed == nil {
		return false
	}
	removed.timer.Stop()
	if sink != nil {
		sink.ToastDismissed(removed.toast)
	}
	return true
}

// Active lists the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	toasts := make([]Toast, 0, len(n.active))
	for _, e := range n.active {
		toasts = append(toasts, e.toast)
	}
	return toasts
}
