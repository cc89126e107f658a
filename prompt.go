package readline

// Prompt decorates the input line with a prefix. Implementations may render
// anything from a static string to a full status segment; the session calls
// Render once per paint.
type Prompt interface {
	Render() string
}

// StaticPrompt is a fixed prefix string.
type StaticPrompt string

// Render returns the prefix.
func (p StaticPrompt) Render() string { return string(p) }

// PromptFunc adapts a function to the Prompt interface, for prefixes that
// change between paints (e.g. reacting to mode-switch hooks).
type PromptFunc func() string

// Render calls fn.
func (fn PromptFunc) Render() string { return fn() }
