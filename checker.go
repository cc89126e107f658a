package readline

// LineChecker is consulted on Enter to decide whether the candidate text
// needs another physical line — a syntactic completeness check owned by the
// active command interpreter.
type LineChecker interface {
	NeedsLine(text string) bool
}

// LineCheckerFunc adapts a function to the LineChecker interface.
type LineCheckerFunc func(text string) bool

// NeedsLine calls fn.
func (fn LineCheckerFunc) NeedsLine(text string) bool { return fn(text) }

// quoteChecker is the default LineChecker: the line is incomplete while a
// single or double quote is unbalanced. Backslash escapes are honored
// outside single quotes.
type quoteChecker struct{}

// NewQuoteChecker returns the default unbalanced-quote continuation check.
func NewQuoteChecker() LineChecker {
	return quoteChecker{}
}

func (quoteChecker) NeedsLine(text string) bool {
	var quote rune
	escaped := false
	for _, r := range text {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			}
		case r == '\\':
			escaped = true
		case quote == '"':
			if r == '"' {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		}
	}
	return quote != 0 || escaped
}
