package readline

// ReplaceMethod tells the menu how to splice an accepted completion into the
// buffer.
type ReplaceMethod int

const (
	// Append inserts the completion at the cursor unchanged.
	Append ReplaceMethod = iota
	// Replace removes the current word before inserting the completion.
	Replace
)

// Completion is one candidate produced by a Completer.
type Completion struct {
	// Value is the text spliced into the buffer on acceptance.
	Value string
	// Display optionally overrides Value in the menu listing.
	Display string
	// Replace selects the splice policy.
	Replace ReplaceMethod
	// AddSpace appends a trailing space on acceptance, so the completed
	// word is syntactically contiguous with whatever is typed next.
	AddSpace bool
}

// DisplayText returns the string shown in the menu.
func (c Completion) DisplayText() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Value
}

// Accept returns the text inserted into the buffer.
func (c Completion) Accept() string {
	if c.AddSpace {
		return c.Value + " "
	}
	return c.Value
}

// Menu is the completion menu controller: an ordered candidate list with an
// active flag and a current selection.
type Menu interface {
	// SetItems replaces the candidate list and resets the selection.
	SetItems(items []Completion)
	// Items returns the current candidate list.
	Items() []Completion
	// Activate shows the menu. No-op if the list is empty.
	Activate()
	// Disactivate hides the menu without touching the buffer.
	Disactivate()
	// Active reports whether the menu intercepts keys.
	Active() bool
	// Next moves the selection forward, wrapping to the first candidate.
	Next()
	// Previous moves the selection backward, wrapping to the last candidate.
	Previous()
	// Selection returns the currently selected candidate, if any.
	Selection() (Completion, bool)
	// SelectionIndex returns the index of the current selection. Only
	// meaningful while the menu is active and non-empty.
	SelectionIndex() int
	// Accept returns the selection and disactivates the menu.
	Accept() (Completion, bool)
}

// defaultMenu is the built-in Menu. Selection cycling wraps in both
// directions.
type defaultMenu struct {
	items    []Completion
	selected int
	active   bool
}

// NewMenu returns the default completion menu.
func NewMenu() Menu {
	return &defaultMenu{}
}

func (m *defaultMenu) SetItems(items []Completion) {
	m.items = items
	m.selected = 0
}

func (m *defaultMenu) Items() []Completion { return m.items }

func (m *defaultMenu) Activate() {
	if len(m.items) > 0 {
		m.active = true
	}
}

func (m *defaultMenu) Disactivate() {
	m.active = false
}

func (m *defaultMenu) Active() bool { return m.active }

func (m *defaultMenu) Next() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.items)
}

func (m *defaultMenu) Previous() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + len(m.items) - 1) % len(m.items)
}

func (m *defaultMenu) Selection() (Completion, bool) {
	if !m.active || m.selected >= len(m.items) {
		return Completion{}, false
	}
	return m.items[m.selected], true
}

func (m *defaultMenu) SelectionIndex() int { return m.selected }

func (m *defaultMenu) Accept() (Completion, bool) {
	sel, ok := m.Selection()
	m.active = false
	return sel, ok
}
