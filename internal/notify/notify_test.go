package notify

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKind(t *testing.T) {
	tests := map[string]Kind{
		"":        KindInfo,
		"error":   KindDanger,
		"ERROR":   KindDanger,
		"warn":    KindWarning,
		"success": KindSuccess,
		"danger":  KindDanger,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKind(in), "kind %q", in)
	}
}

func TestInferKind(t *testing.T) {
	tests := map[string]Kind{
		"Product archived successfully": KindSuccess,
		"Warning: stock is low":         KindWarning,
		"Use caution":                   KindWarning,
		"Failed to save":                KindDanger,
		"You can't do that":             KindDanger,
		"Export error":                  KindDanger,
		"Saved":                         KindInfo,
		"":                              KindInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, InferKind(in), "message %q", in)
	}
}

func TestShowDefaultsTitle(t *testing.T) {
	n := NewNotifier(nil, nil)

	assert.Equal(t, "Success", n.Success("done").Title)
	assert.Equal(t, "Heads up", n.Info("fyi").Title)
	assert.Equal(t, "Check again", n.Warning("hmm").Title)
	assert.Equal(t, "Something went wrong", n.Error("boom").Title)
	assert.Equal(t, "Custom", n.Show(ToastOptions{Title: "Custom", Kind: "warn"}).Title)
	assert.Equal(t, "Notice", n.Show(ToastOptions{Kind: "sparkle"}).Title)
}

func TestToastLimitEvictsOldest(t *testing.T) {
	feed := NewFeed()
	n := NewNotifier(feed, nil)

	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, n.Info("message").ID)
	}

	active := n.Active()
	require.Len(t, active, ToastLimit)
	assert.Equal(t, ids[2], active[0].ID)
	assert.Equal(t, ids[5], active[3].ID)

	var dismissed []string
	for _, e := range feed.Events() {
		if e.Type == EventDismissed {
			dismissed = append(dismissed, e.Toast.ID)
		}
	}
	assert.Equal(t, ids[:2], dismissed)
}

func TestAutoDismiss(t *testing.T) {
	n := NewNotifier(nil, nil)
	n.SetDuration(10 * time.Millisecond)
	n.Info("short lived")

	assert.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismiss(t *testing.T) {
	n := NewNotifier(nil, nil)
	toast := n.Success("saved")

	assert.True(t, n.Dismiss(toast.ID))
	assert.False(t, n.Dismiss(toast.ID))
	assert.Empty(t, n.Active())
}

type blockingPrompter struct {
	started chan struct{}
	release chan bool
	calls   int
	mu      sync.Mutex
}

func (p *blockingPrompter) Prompt(ctx context.Context, opts ConfirmOptions) (bool, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	close(p.started)
	return <-p.release, nil
}

func TestConfirmIsExclusive(t *testing.T) {
	prompter := &blockingPrompter{started: make(chan struct{}), release: make(chan bool)}
	n := NewNotifier(nil, prompter)
	ctx := context.Background()

	first := make(chan bool)
	go func() { first <- n.Confirm(ctx, ConfirmOptions{Message: "Archive product?"}) }()
	<-prompter.started

	assert.True(t, n.ConfirmOpen())
	assert.False(t, n.Confirm(ctx, ConfirmOptions{Message: "Second?"}))

	prompter.release <- true
	assert.True(t, <-first)
	assert.False(t, n.ConfirmOpen())
	assert.Equal(t, 1, prompter.calls)
}

func TestConfirmContextCancel(t *testing.T) {
	prompter := &blockingPrompter{started: make(chan struct{}), release: make(chan bool, 1)}
	n := NewNotifier(nil, prompter)
	ctx, cancel := context.WithCancel(context.Background())

	result := make(chan bool)
	go func() { result <- n.Confirm(ctx, ConfirmOptions{}) }()
	<-prompter.started
	cancel()

	assert.False(t, <-result)
	assert.False(t, n.ConfirmOpen())
	prompter.release <- true
}

func TestConfirmWithoutPrompter(t *testing.T) {
	assert.False(t, NewNotifier(nil, nil).Confirm(context.Background(), ConfirmOptions{}))
}

func TestTerminalPrompter(t *testing.T) {
	var out bytes.Buffer
	p := &TerminalPrompter{In: strings.NewReader("y\nno\n"), Out: &out}
	opts := ConfirmOptions{Tone: "error"}.withDefaults()

	ok, err := p.Prompt(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Prompt(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "! Please confirm")
	assert.Contains(t, out.String(), "Are you sure?")
}

func TestTerminalPrompterCancelledPromptLeavesInputToNext(t *testing.T) {
	in, typed := io.Pipe()
	defer typed.Close()
	var out bytes.Buffer
	p := &TerminalPrompter{In: in, Out: &out}
	n := NewNotifier(nil, p)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan bool)
	go func() { result <- n.Confirm(ctx, ConfirmOptions{Message: "Archive P-1?"}) }()
	require.Eventually(t, func() bool { return n.ConfirmOpen() }, time.Second, time.Millisecond)
	cancel()
	assert.False(t, <-result)

	answer := make(chan bool)
	go func() { answer <- n.Confirm(context.Background(), ConfirmOptions{Message: "Archive P-2?"}) }()
	_, err := typed.Write([]byte("yes\n"))
	require.NoError(t, err)
	assert.True(t, <-answer)
}

func TestTerminalPrompterEOF(t *testing.T) {
	var out bytes.Buffer
	p := &TerminalPrompter{In: strings.NewReader(""), Out: &out}

	ok, err := p.Prompt(context.Background(), ConfirmOptions{}.withDefaults())
	assert.False(t, ok)
	assert.ErrorIs(t, err, io.EOF)

	ok, err = p.Prompt(context.Background(), ConfirmOptions{}.withDefaults())
	assert.False(t, ok)
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriterSink(t *testing.T) {
	var out bytes.Buffer
	n := NewNotifier(NewWriterSink(&out), nil)
	n.Error("Export failed")

	assert.Equal(t, "[DANGER] Something went wrong: Export failed\n", out.String())
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
