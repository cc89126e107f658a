package readline

// Event is a single input delivered by the terminal: a key press, a
// bracketed-paste block, or a window resize.
type Event interface {
	isEvent()
}

// Key identifies a non-printable key. Printable characters use KeyRune with
// the Rune field set.
type Key int

// Key codes recognized by the dispatcher.
const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
)

// KeyEvent is a single key press. Ctrl is set for control-chords (the Rune
// field then holds the lowercase letter, e.g. 'c' for Ctrl-C). Shift is only
// reported for keys where the terminal distinguishes it (Shift-Tab).
type KeyEvent struct {
	Key   Key
	Rune  rune
	Ctrl  bool
	Shift bool
}

// PasteEvent is a bracketed-paste block, inserted verbatim at the cursor.
type PasteEvent struct {
	Text string
}

// ResizeEvent reports new terminal dimensions.
type ResizeEvent struct {
	Cols int
	Rows int
}

func (KeyEvent) isEvent()    {}
func (PasteEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}

// RuneKey builds a plain printable key event.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// CtrlKey builds a control-chord key event for the given lowercase letter.
func CtrlKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Ctrl: true}
}

// decodeControlRune maps a raw rune read in raw mode to a key event. Escape
// sequences are handled separately by the terminal reader; this covers the
// single-byte cases.
func decodeControlRune(r rune) KeyEvent {
	switch r {
	case '\r':
		return KeyEvent{Key: KeyEnter}
	case '\t':
		return KeyEvent{Key: KeyTab}
	case 0x7f:
		return KeyEvent{Key: KeyBackspace}
	}
	if r < 0x20 {
		// Ctrl-A .. Ctrl-Z arrive as 0x01..0x1a.
		return KeyEvent{Key: KeyRune, Rune: 'a' + r - 1, Ctrl: true}
	}
	return KeyEvent{Key: KeyRune, Rune: r}
}

// decodeEscapeSequence maps a CSI sequence (without the leading ESC) to a
// key event. The bool result reports whether the sequence was recognized.
func decodeEscapeSequence(seq string) (KeyEvent, bool) {
	switch seq {
	case "[A":
		return KeyEvent{Key: KeyUp}, true
	case "[B":
		return KeyEvent{Key: KeyDown}, true
	case "[C":
		return KeyEvent{Key: KeyRight}, true
	case "[D":
		return KeyEvent{Key: KeyLeft}, true
	case "[H", "[1~":
		return KeyEvent{Key: KeyHome}, true
	case "[F", "[4~":
		return KeyEvent{Key: KeyEnd}, true
	case "[3~":
		return KeyEvent{Key: KeyDelete}, true
	case "[Z":
		return KeyEvent{Key: KeyTab, Shift: true}, true
	}
	return KeyEvent{}, false
}
