package readline

import "strings"

// StyledSegment is a run of text rendered with one style.
type StyledSegment struct {
	Text  string
	Style Color
}

// StyledText is styled line content: an ordered list of segments.
type StyledText struct {
	segments []StyledSegment
}

// Append adds a segment. Empty text is dropped.
func (st *StyledText) Append(text string, style Color) {
	if text == "" {
		return
	}
	st.segments = append(st.segments, StyledSegment{Text: text, Style: style})
}

// Segments returns the segment list.
func (st StyledText) Segments() []StyledSegment { return st.segments }

// String returns the unstyled text.
func (st StyledText) String() string {
	var sb strings.Builder
	for _, seg := range st.segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// SliceFromRunes drops the first n runes, used to trim the highlighted
// prefix already shown for completed continuation lines.
func (st StyledText) SliceFromRunes(n int) StyledText {
	var out StyledText
	for _, seg := range st.segments {
		rs := []rune(seg.Text)
		if n >= len(rs) {
			n -= len(rs)
			continue
		}
		out.Append(string(rs[n:]), seg.Style)
		n = 0
	}
	return out
}

// Highlighter produces styled text for the candidate command. The session
// runs it over the full candidate (continuation lines plus buffer) on every
// iteration.
type Highlighter interface {
	Highlight(text string) StyledText
}

// plainHighlighter styles the whole line with a single input color.
type plainHighlighter struct {
	style Color
}

// NewPlainHighlighter returns a highlighter that applies one uniform style.
func NewPlainHighlighter(style Color) Highlighter {
	return plainHighlighter{style: style}
}

func (h plainHighlighter) Highlight(text string) StyledText {
	var st StyledText
	st.Append(text, h.style)
	return st
}
