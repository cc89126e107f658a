package readline

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalDevice abstracts the terminal for testability and cross-platform
// support. realTerminal talks to the actual tty via go-tty; mockTerminal
// replays scripted events in tests.
//
// Raw mode and paste bracketing are scoped resources: the session acquires
// them on entry and must release them on every exit path, including the
// forced process termination on Ctrl-D.
type terminalDevice interface {
	SetRaw() error             // enter raw mode for immediate key processing
	Restore() error            // restore the original terminal settings
	EnablePaste() error        // turn on bracketed paste reporting
	DisablePaste() error       // turn off bracketed paste reporting
	Size() (int, int, error)   // terminal dimensions with safe fallbacks
	ReadEvent() (Event, error) // block for the next input event
	Close() error              // release resources
}

type eventResult struct {
	ev  Event
	err error
}

// realTerminal implements terminalDevice with go-tty for input and
// golang.org/x/term for raw-mode state management. A single pump goroutine
// decodes the rune stream into events; ReadEvent multiplexes it with
// SIGWINCH resize notifications.
type realTerminal struct {
	tty           *tty.TTY
	output        io.Writer
	stdinFd       int
	originalState *term.State
	closed        bool
	events        chan eventResult
	pumpOnce      sync.Once
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	return &realTerminal{
		tty:     t,
		output:  output,
		stdinFd: int(os.Stdin.Fd()),
		events:  make(chan eventResult),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state
		if _, err := term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) EnablePaste() error {
	_, err := io.WriteString(t.output, "\x1b[?2004h")
	return err
}

func (t *realTerminal) DisablePaste() error {
	_, err := io.WriteString(t.output, "\x1b[?2004l")
	return err
}

func (t *realTerminal) Size() (int, int, error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Safe fallback so layout math never divides by zero.
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadEvent() (Event, error) {
	t.pumpOnce.Do(func() { go t.pump() })
	select {
	case ws := <-t.tty.SIGWINCH():
		return ResizeEvent{Cols: ws.W, Rows: ws.H}, nil
	case res := <-t.events:
		return res.ev, res.err
	}
}

// pump decodes the raw rune stream into events on the session's behalf.
func (t *realTerminal) pump() {
	for {
		ev, err := t.decodeEvent()
		if ev == nil && err == nil {
			continue // unrecognized sequence, drop it
		}
		t.events <- eventResult{ev: ev, err: err}
		if err != nil {
			return
		}
	}
}

func (t *realTerminal) decodeEvent() (Event, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return nil, err
	}
	if r != '\x1b' {
		return decodeControlRune(r), nil
	}
	if !t.tty.Buffered() {
		return KeyEvent{Key: KeyEscape}, nil
	}
	seq, err := t.readEscapeSequence()
	if err != nil {
		return nil, err
	}
	if seq == "[200~" {
		return t.readPasteBlock()
	}
	if ev, ok := decodeEscapeSequence(seq); ok {
		return ev, nil
	}
	return nil, nil
}

// readEscapeSequence collects a CSI sequence after ESC: "[" plus parameter
// bytes up to a final byte in 0x40..0x7e.
func (t *realTerminal) readEscapeSequence() (string, error) {
	var sb strings.Builder
	for sb.Len() < 16 {
		r, err := t.tty.ReadRune()
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
		if sb.Len() == 1 {
			if r != '[' {
				return sb.String(), nil // non-CSI, e.g. ESC O sequences
			}
			continue
		}
		if r >= 0x40 && r <= 0x7e {
			return sb.String(), nil
		}
	}
	return sb.String(), nil
}

// readPasteBlock consumes a bracketed paste until the closing ESC[201~.
func (t *realTerminal) readPasteBlock() (Event, error) {
	var sb strings.Builder
	const closing = "\x1b[201~"
	for {
		r, err := t.tty.ReadRune()
		if err != nil {
			return nil, err
		}
		sb.WriteRune(r)
		if strings.HasSuffix(sb.String(), closing) {
			text := strings.TrimSuffix(sb.String(), closing)
			return PasteEvent{Text: text}, nil
		}
	}
}

func (t *realTerminal) Close() error {
	// Double-close panics on Windows, guard against it.
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}
