package readline

// Keybinding is the user-defined global key table, evaluated before every
// other key handler. Handle returns true when the event was consumed and
// the session should terminate.
type Keybinding interface {
	Handle(state *LineState, ev KeyEvent) bool
}

// KeyMap is a map-based Keybinding. KeyEvent values are comparable, so a
// chord like Ctrl-G binds as CtrlKey('g').
type KeyMap struct {
	bindings map[KeyEvent]func(state *LineState) bool
}

// NewKeyMap creates an empty global key table.
func NewKeyMap() *KeyMap {
	return &KeyMap{bindings: make(map[KeyEvent]func(*LineState) bool)}
}

// Bind attaches a handler to a key chord. The handler's return value
// reports whether the session should terminate.
func (km *KeyMap) Bind(ev KeyEvent, fn func(state *LineState) bool) {
	km.bindings[ev] = fn
}

// Handle dispatches the event to its binding, if any.
func (km *KeyMap) Handle(state *LineState, ev KeyEvent) bool {
	if km == nil || km.bindings == nil {
		return false
	}
	if fn, ok := km.bindings[ev]; ok {
		return fn(state)
	}
	return false
}
