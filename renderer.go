package readline

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// renderer paints the prompt line, the styled buffer with its overlay
// suffix, and the completion menu rows below it. It tracks how many menu
// rows the previous paint drew so stale rows are cleared, and positions the
// cursor by display width so multi-column glyphs line up.
type renderer struct {
	output    io.Writer
	scheme    *ColorScheme
	cols      int
	rows      int
	menuLines int // menu rows drawn by the previous paint
}

const maxMenuRows = 10

func newRenderer(output io.Writer, scheme *ColorScheme) *renderer {
	return &renderer{
		output: output,
		scheme: scheme,
		cols:   80,
		rows:   24,
	}
}

// setSize records the terminal dimensions reported by a resize event.
func (r *renderer) setSize(cols, rows int) {
	if cols > 0 {
		r.cols = cols
	}
	if rows > 0 {
		r.rows = rows
	}
}

// render paints one frame: prefix, styled line content, menu. bufText and
// cursor describe the editable buffer only; styled carries the buffer text
// plus any overlay suffix appended by the session.
func (r *renderer) render(prefix string, bufText string, cursor int, styled StyledText, menu Menu) error {
	r.clearMenuRows()

	if _, err := fmt.Fprint(r.output, "\r\x1b[K"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(r.output, r.scheme.Prefix.ToANSI(), prefix, Reset()); err != nil {
		return err
	}
	for _, seg := range styled.Segments() {
		if _, err := fmt.Fprint(r.output, seg.Style.ToANSI(), seg.Text, Reset()); err != nil {
			return err
		}
	}

	menuRows := 0
	if menu != nil && menu.Active() {
		var err error
		if menuRows, err = r.renderMenu(menu); err != nil {
			return err
		}
	}
	r.menuLines = menuRows

	// Place the cursor by display width: prefix plus the buffer text
	// before the cursor offset.
	col := runewidth.StringWidth(prefix) + runewidth.StringWidth(string([]rune(bufText)[:cursor]))
	if _, err := fmt.Fprint(r.output, "\r"); err != nil {
		return err
	}
	if col > 0 {
		if _, err := fmt.Fprintf(r.output, "\x1b[%dC", col); err != nil {
			return err
		}
	}
	return nil
}

// renderMenu draws the candidate rows below the input line and moves the
// cursor back up. Returns the number of rows drawn.
func (r *renderer) renderMenu(menu Menu) (int, error) {
	items := menu.Items()
	selected := menu.SelectionIndex()

	limit := maxMenuRows
	if r.rows-1 < limit {
		limit = r.rows - 1
	}
	if len(items) > limit {
		items = items[:limit]
	}

	for i, item := range items {
		if _, err := fmt.Fprint(r.output, "\r\n\x1b[K"); err != nil {
			return 0, err
		}
		style, marker := r.scheme.MenuItem, "  "
		if i == selected {
			style, marker = r.scheme.Selected, "▶ "
		}
		if _, err := fmt.Fprint(r.output, style.ToANSI(), marker, item.DisplayText(), Reset()); err != nil {
			return 0, err
		}
	}
	if len(items) > 0 {
		if _, err := fmt.Fprintf(r.output, "\x1b[%dA", len(items)); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

// clearMenuRows erases the rows the previous paint drew below the input
// line.
func (r *renderer) clearMenuRows() {
	if r.menuLines == 0 {
		return
	}
	for i := 0; i < r.menuLines; i++ {
		fmt.Fprint(r.output, "\x1b[E\x1b[K")
	}
	fmt.Fprintf(r.output, "\x1b[%dA\r", r.menuLines)
	r.menuLines = 0
}

// newline commits the current line to the scrollback and erases anything
// rendered below it.
func (r *renderer) newline() error {
	r.menuLines = 0
	_, err := fmt.Fprint(r.output, "\r\n\x1b[J")
	return err
}
