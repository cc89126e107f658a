package readline

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Motion identifies a cursor movement target, used both by the vi grammar
// and by word-wise editing keys (Ctrl-W resolves MotionBackWord).
type Motion int

// Motions resolvable against a Buffer.
const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionStart     // 0
	MotionEnd       // $
	MotionFirstWord // ^
	MotionWord      // w
	MotionBackWord  // b
	MotionWordEnd   // e
	MotionLine      // whole line (dd, cc)
)

// Buffer is the editable text container: a rune slice plus a cursor offset.
// The cursor is always within [0, Len()].
type Buffer struct {
	runes  []rune
	cursor int
}

// String returns the buffer contents.
func (b *Buffer) String() string { return string(b.runes) }

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.runes) }

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool { return len(b.runes) == 0 }

// Cursor returns the rune offset of the cursor.
func (b *Buffer) Cursor() int { return b.cursor }

// Slice returns the text in the rune range [start, end).
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if start >= end {
		return ""
	}
	return string(b.runes[start:end])
}

// Clear removes all text and resets the cursor.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

// SetText replaces the contents and places the cursor at the end.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(text)
	b.cursor = len(b.runes)
}

// InsertAtCursor inserts text at the cursor and advances past it.
func (b *Buffer) InsertAtCursor(text string) error {
	rs := []rune(text)
	b.runes = append(b.runes[:b.cursor], append(rs, b.runes[b.cursor:]...)...)
	b.cursor += len(rs)
	return nil
}

// DeleteRange removes the rune range [start, end) and clamps the cursor into
// the remaining text. Out-of-range locations are an error.
func (b *Buffer) DeleteRange(start, end int) error {
	if start < 0 || end > len(b.runes) || start > end {
		return fmt.Errorf("delete range [%d, %d) out of bounds (len %d)", start, end, len(b.runes))
	}
	b.runes = append(b.runes[:start], b.runes[end:]...)
	if b.cursor > end {
		b.cursor -= end - start
	} else if b.cursor > start {
		b.cursor = start
	}
	return nil
}

// DeleteColumns deletes runes forward from the cursor until at least width
// display columns have been consumed. Display width, not rune count, governs
// the extent so multi-column glyphs are removed whole.
func (b *Buffer) DeleteColumns(width int) error {
	end := b.cursor
	consumed := 0
	for end < len(b.runes) && consumed < width {
		consumed += runewidth.RuneWidth(b.runes[end])
		end++
	}
	return b.DeleteRange(b.cursor, end)
}

// MoveTo places the cursor at the given rune offset.
func (b *Buffer) MoveTo(offset int) error {
	if offset < 0 || offset > len(b.runes) {
		return fmt.Errorf("cursor offset %d out of bounds (len %d)", offset, len(b.runes))
	}
	b.cursor = offset
	return nil
}

// MoveRel moves the cursor by delta runes.
func (b *Buffer) MoveRel(delta int) error {
	return b.MoveTo(b.cursor + delta)
}

// MoveStart places the cursor at the start of the line.
func (b *Buffer) MoveStart() { b.cursor = 0 }

// MoveEnd places the cursor at the end of the line.
func (b *Buffer) MoveEnd() { b.cursor = len(b.runes) }

// MotionOffset resolves a motion to the rune offset it targets from the
// current cursor position. Up/Down and MotionLine resolve to the cursor
// itself; their handling lives with the caller.
func (b *Buffer) MotionOffset(m Motion) int {
	switch m {
	case MotionLeft:
		if b.cursor > 0 {
			return b.cursor - 1
		}
		return 0
	case MotionRight:
		if b.cursor < len(b.runes) {
			return b.cursor + 1
		}
		return len(b.runes)
	case MotionStart:
		return 0
	case MotionEnd:
		return len(b.runes)
	case MotionFirstWord:
		pos := 0
		for pos < len(b.runes) && (b.runes[pos] == ' ' || b.runes[pos] == '\t') {
			pos++
		}
		return pos
	case MotionWord:
		return b.nextWordStart()
	case MotionBackWord:
		return b.prevWordStart()
	case MotionWordEnd:
		return b.wordEnd()
	}
	return b.cursor
}

// nextWordStart finds the start of the next word after the cursor.
func (b *Buffer) nextWordStart() int {
	pos := b.cursor
	for pos < len(b.runes) && isWordRune(b.runes[pos]) {
		pos++
	}
	for pos < len(b.runes) && !isWordRune(b.runes[pos]) {
		pos++
	}
	return pos
}

// prevWordStart finds the start of the word before the cursor.
func (b *Buffer) prevWordStart() int {
	pos := b.cursor
	if pos > 0 {
		pos--
	}
	for pos > 0 && !isWordRune(b.runes[pos]) {
		pos--
	}
	for pos > 0 && isWordRune(b.runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd finds the offset just past the end of the current or next word.
func (b *Buffer) wordEnd() int {
	pos := b.cursor
	for pos < len(b.runes) && !isWordRune(b.runes[pos]) {
		pos++
	}
	for pos < len(b.runes) && isWordRune(b.runes[pos]) {
		pos++
	}
	return pos
}

// isWordRune reports whether r is part of a word. Letters, digits and
// underscore count, matching common editor conventions.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r > 127
}

// deleteMotion removes the text between the cursor and the motion target.
// MotionLine removes the whole buffer.
func (b *Buffer) deleteMotion(m Motion) error {
	if m == MotionLine {
		b.Clear()
		return nil
	}
	target := b.MotionOffset(m)
	if target < b.cursor {
		return b.DeleteRange(target, b.cursor)
	}
	return b.DeleteRange(b.cursor, target)
}

// ExecuteVi applies the buffer-local part of a parsed normal-mode action and
// reports the mode the line should be in afterwards. Actions that the
// dispatcher owns entirely (undo/redo, history motions, external editor)
// leave the buffer untouched and stay in normal mode.
func (b *Buffer) ExecuteVi(a ViAction) (LineMode, error) {
	switch a.Kind {
	case ViMove:
		switch a.Motion {
		case MotionUp, MotionDown:
			// History browsing; resolved by the dispatcher.
		default:
			if err := b.MoveTo(b.MotionOffset(a.Motion)); err != nil {
				return ModeNormal, err
			}
		}
		return ModeNormal, nil
	case ViDelete:
		return ModeNormal, b.deleteMotion(a.Motion)
	case ViChange:
		return ModeInsert, b.deleteMotion(a.Motion)
	case ViDeleteChar:
		if b.cursor < len(b.runes) {
			return ModeNormal, b.DeleteRange(b.cursor, b.cursor+1)
		}
		return ModeNormal, nil
	case ViDeleteToEnd:
		return ModeNormal, b.DeleteRange(b.cursor, len(b.runes))
	case ViInsert:
		return ModeInsert, nil
	case ViInsertStart:
		b.MoveStart()
		return ModeInsert, nil
	case ViAppend:
		if b.cursor < len(b.runes) {
			b.cursor++
		}
		return ModeInsert, nil
	case ViAppendEnd:
		b.MoveEnd()
		return ModeInsert, nil
	}
	return ModeNormal, nil
}
