package readline

// LineMode is the editing discipline the line is currently in. Exactly one
// mode is active at a time; transitions happen only through explicit
// mode-switch actions (Escape, vi actions, leaving menu/history flows).
type LineMode int

const (
	// ModeInsert inserts typed characters at the cursor.
	ModeInsert LineMode = iota
	// ModeNormal interprets keystrokes through the vi command grammar.
	ModeNormal
)

// String returns the conventional mode name.
func (m LineMode) String() string {
	if m == ModeNormal {
		return "normal"
	}
	return "insert"
}

// Cursor shape escapes (DECSCUSR): blinking block for normal mode, blinking
// bar for insert mode.
const (
	cursorShapeBlock = "\x1b[1 q"
	cursorShapeBar   = "\x1b[5 q"
)

// Hooks is the notification registry other subsystems (prompt rendering,
// status lines) subscribe to. Callbacks run synchronously on the session
// goroutine; the dispatcher does not depend on their side effects.
type Hooks struct {
	modeSwitch []func(LineMode)
	exit       []func()
}

// OnModeSwitch registers a callback fired after every mode transition with
// the new mode.
func (h *Hooks) OnModeSwitch(fn func(LineMode)) {
	h.modeSwitch = append(h.modeSwitch, fn)
}

// OnExit registers a callback fired after terminal cleanup, immediately
// before the process terminates on Ctrl-D with an empty buffer.
func (h *Hooks) OnExit(fn func()) {
	h.exit = append(h.exit, fn)
}

func (h *Hooks) fireModeSwitch(m LineMode) {
	for _, fn := range h.modeSwitch {
		fn(m)
	}
}

func (h *Hooks) fireExit() {
	for _, fn := range h.exit {
		fn()
	}
}
