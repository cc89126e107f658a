package readline

import "strings"

// Position constrains where a snippet trigger may expand.
type Position int

const (
	// PositionAnywhere expands the trigger at any word position.
	PositionAnywhere Position = iota
	// PositionCommand expands the trigger only as the first word of the
	// line (command position).
	PositionCommand
)

// Snippet is one abbreviation rule: the value that replaces a trigger word
// and the position constraint.
type Snippet struct {
	Value    string
	Position Position
}

// Snippets maps trigger words to expansions. The table is registered at
// configuration time and immutable during a session.
type Snippets struct {
	table   map[string]Snippet
	trigger func(KeyEvent) bool
}

// NewSnippets creates an empty snippet table that expands on the space key.
func NewSnippets() *Snippets {
	return &Snippets{
		table: make(map[string]Snippet),
		trigger: func(ev KeyEvent) bool {
			return ev.Key == KeyRune && !ev.Ctrl && ev.Rune == ' '
		},
	}
}

// Register adds an abbreviation rule for the given trigger word.
func (s *Snippets) Register(trigger string, snippet Snippet) {
	s.table[trigger] = snippet
}

// SetTrigger replaces the expansion-triggering predicate.
func (s *Snippets) SetTrigger(fn func(KeyEvent) bool) {
	s.trigger = fn
}

// ShouldExpand reports whether the event is the configured expansion
// trigger.
func (s *Snippets) ShouldExpand(ev KeyEvent) bool {
	return s != nil && s.trigger != nil && s.trigger(ev)
}

// Get looks up the snippet for a word.
func (s *Snippets) Get(word string) (Snippet, bool) {
	sn, ok := s.table[word]
	return sn, ok
}

// expandSnippet applies abbreviation expansion for a triggering key. The
// bool result reports whether the caller should continue processing the
// event as a normal keystroke: false means a snippet expanded and the
// trigger key was consumed.
//
// The token scan uses inclusive offsets on both boundaries, so a cursor
// sitting exactly between two tokens resolves to the earlier one. That
// ambiguity is inherited behavior and is kept deliberately.
func (l *Line) expandSnippet(state *LineState, ev KeyEvent) (bool, error) {
	if !l.snippets.ShouldExpand(ev) {
		return true, nil
	}

	words := strings.Split(state.Buf.String(), " ")
	cursor := state.Buf.Cursor()
	wordIndex := -1
	offset := 0
	for i, word := range words {
		start := offset
		end := offset + len([]rune(word))
		if cursor >= start && cursor <= end {
			wordIndex = i
		}
		offset = end + 1 // account for the separating space
	}
	if wordIndex < 0 {
		return true, nil
	}

	snippet, ok := l.snippets.Get(words[wordIndex])
	if !ok {
		return true, nil
	}
	if snippet.Position == PositionCommand && wordIndex != 0 {
		return true, nil
	}

	words[wordIndex] = snippet.Value
	state.Buf.Clear()
	if err := state.Buf.InsertAtCursor(strings.Join(words, " ")); err != nil {
		return false, err
	}
	l.log.Debugw("snippet expanded", "trigger", snippet.Value, "word", wordIndex)
	return false, nil
}
