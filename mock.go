package readline

import "io"

// mockTerminal implements terminalDevice with a scripted event sequence.
// It gives tests deterministic input without a tty and tracks the raw-mode
// and paste-bracketing state so cleanup ordering can be asserted.
type mockTerminal struct {
	events    []Event
	pos       int
	rawMode   bool
	pasteMode bool
	size      [2]int
}

func newMockTerminal(events ...Event) *mockTerminal {
	return &mockTerminal{
		events: events,
		size:   [2]int{80, 24},
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) EnablePaste() error {
	m.pasteMode = true
	return nil
}

func (m *mockTerminal) DisablePaste() error {
	m.pasteMode = false
	return nil
}

func (m *mockTerminal) Size() (int, int, error) {
	return m.size[0], m.size[1], nil
}

func (m *mockTerminal) ReadEvent() (Event, error) {
	if m.pos >= len(m.events) {
		return nil, io.EOF
	}
	ev := m.events[m.pos]
	m.pos++
	return ev, nil
}

func (m *mockTerminal) Close() error { return nil }

// keyEvents turns a plain string into one key event per rune, for concise
// test scripts.
func keyEvents(s string) []Event {
	out := make([]Event, 0, len(s))
	for _, r := range s {
		out = append(out, RuneKey(r))
	}
	return out
}
