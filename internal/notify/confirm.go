package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type ConfirmOptions struct {
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
	Tone        string
}

func (o ConfirmOptions) withDefaults() ConfirmOptions {
	if o.Title == "" {
		o.Title = "Please confirm"
	}
	if o.Message == "" {
		o.Message = "Are you sure?"
	}
	if o.ConfirmText == "" {
		o.ConfirmText = "Confirm"
	}
	if o.CancelText == "" {
		o.CancelText = "Cancel"
	}
	o.Tone = string(NormalizeKind(o.Tone))
	return o
}

// Prompter renders a confirm dialog and waits for the answer.
type Prompter interface {
	Prompt(ctx context.Context, opts ConfirmOptions) (bool, error)
}

type confirmSlot struct {
	mu   sync.Mutex
	open bool
}

func (s *confirmSlot) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return false
	}
	s.open = true
	return true
}

func (s *confirmSlot) release() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// ConfirmOpen reports whether a confirm dialog is showing.
func (n *Notifier) ConfirmOpen() bool {
	n.confirm.mu.Lock()
	defer n.confirm.mu.Unlock()
	return n.confirm.open
}

// Confirm opens the confirm dialog and returns the answer. Only one dialog
// can be open: a second call while one is showing returns false at once
// without prompting. Cancelling ctx, a prompter error or no prompter at
// all also answer false.
func (n *Notifier) Confirm(ctx context.Context, opts ConfirmOptions) bool {
	if !n.confirm.acquire() {
		return false
	}
	defer n.confirm.release()

	n.mu.Lock()
	prompter := n.prompter
	n.mu.Unlock()
	if prompter == nil {
		return false
	}

	answer := make(chan bool, 1)
	go func() {
		ok, err := prompter.Prompt(ctx, opts.withDefaults())
		answer <- ok && err == nil
	}()

	select {
	case ok := <-answer:
		return ok
	case <-ctx.Done():
		return false
	}
}

// TerminalPrompter asks on Out and reads a y/n line from In. One goroutine
// owns In for the prompter's lifetime and prompts run one at a time, so a
// prompt abandoned through its context never leaves a second reader behind.
// A line that arrives after cancellation answers the next prompt.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	once    sync.Once
	lines   chan promptLine
	mu      sync.Mutex
	pending *promptLine
}

type promptLine struct {
	text string
	err  error
}

func (p *TerminalPrompter) read() {
	reader := bufio.NewReader(p.In)
	for {
		line, err := reader.ReadString('\n')
		p.lines <- promptLine{text: line, err: err}
		if err != nil {
			close(p.lines)
			return
		}
	}
}

// next returns the pending line or waits for one. Callers hold p.mu.
func (p *TerminalPrompter) next(ctx context.Context) (promptLine, error) {
	if p.pending != nil {
		line := *p.pending
		p.pending = nil
		return line, nil
	}
	select {
	case <-ctx.Done():
		return promptLine{}, ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return promptLine{}, io.EOF
		}
		if err := ctx.Err(); err != nil {
			p.pending = &line
			return promptLine{}, err
		}
		return line, nil
	}
}

func (p *TerminalPrompter) Prompt(ctx context.Context, opts ConfirmOptions) (bool, error) {
	p.once.Do(func() {
		p.lines = make(chan promptLine)
		go p.read()
	})
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}

	marker := ""
	if opts.Tone == string(KindDanger) {
		marker = "! "
	}
	fmt.Fprintf(p.Out, "%s%s\n%s\n[%s = y / %s = n]: ", marker, opts.Title, opts.Message, opts.ConfirmText, opts.CancelText)

	line, err := p.next(ctx)
	if err != nil {
		return false, err
	}
	if line.err != nil && line.text == "" {
		return false, line.err
	}
	switch strings.ToLower(strings.TrimSpace(line.text)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
