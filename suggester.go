package readline

import "strings"

// Suggester proposes an inline completion for the text typed so far. The
// suggestion must be a strict extension of the full candidate text; only
// its un-typed suffix is displayed.
type Suggester interface {
	Suggest(state *LineState) (string, bool)
}

// SuggesterFunc adapts a function to the Suggester interface.
type SuggesterFunc func(state *LineState) (string, bool)

// Suggest calls fn.
func (fn SuggesterFunc) Suggest(state *LineState) (string, bool) { return fn(state) }

// historySuggester suggests the most recent history entry that extends the
// current input.
type historySuggester struct {
	history History
}

// NewHistorySuggester returns the default suggester: a prefix search over
// the history log, most recent entry first.
func NewHistorySuggester(history History) Suggester {
	return &historySuggester{history: history}
}

func (s *historySuggester) Suggest(state *LineState) (string, bool) {
	text := state.FullCommand()
	if text == "" {
		return "", false
	}
	for i := 0; i < s.history.Len(); i++ {
		entry, ok := s.history.Get(i)
		if !ok {
			break
		}
		if entry != text && strings.HasPrefix(entry, text) {
			return entry, true
		}
	}
	return "", false
}
