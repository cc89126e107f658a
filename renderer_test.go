package readline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererRender(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	r := newRenderer(out, ThemeDefault)

	var styled StyledText
	styled.Append("echo hi", ThemeDefault.Input)

	require.NoError(t, r.render("$ ", "echo hi", 7, styled, nil))

	got := out.String()
	assert.Contains(t, got, "\r\x1b[K", "frame starts by clearing the line")
	assert.Contains(t, got, "$ ")
	assert.Contains(t, got, "echo hi")
	assert.Contains(t, got, "\x1b[9C", "cursor lands after the prefix and the text")
}

func TestRendererCursorUsesDisplayWidth(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	r := newRenderer(out, ThemeDefault)

	var styled StyledText
	styled.Append("日本", ThemeDefault.Input)

	// Two runes before the cursor, four display columns plus the prefix.
	require.NoError(t, r.render("$ ", "日本", 2, styled, nil))
	assert.Contains(t, out.String(), "\x1b[6C")
}

func TestRendererMenuRows(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	r := newRenderer(out, ThemeDefault)

	menu := NewMenu()
	menu.SetItems(menuItems("alpha", "beta"))
	menu.Activate()
	menu.Next()

	var styled StyledText
	require.NoError(t, r.render("$ ", "", 0, styled, menu))

	got := out.String()
	assert.Contains(t, got, "alpha")
	assert.Contains(t, got, "▶ beta", "the selection carries the marker")
	assert.Contains(t, got, "\x1b[2A", "the cursor moves back above the menu rows")
	assert.Equal(t, 2, r.menuLines)

	// The next frame without a menu clears the stale rows.
	out.Reset()
	require.NoError(t, r.render("$ ", "", 0, styled, nil))
	assert.Contains(t, out.String(), "\x1b[E\x1b[K")
	assert.Equal(t, 0, r.menuLines)
}

func TestRendererMenuRowLimit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	r := newRenderer(out, ThemeDefault)
	r.setSize(80, 24)

	values := make([]string, 0, maxMenuRows+5)
	for i := 0; i < maxMenuRows+5; i++ {
		values = append(values, fmt.Sprintf("cand-%02d", i))
	}
	menu := NewMenu()
	menu.SetItems(menuItems(values...))
	menu.Activate()

	var styled StyledText
	require.NoError(t, r.render("$ ", "", 0, styled, menu))

	assert.Equal(t, maxMenuRows, r.menuLines)
	assert.Equal(t, maxMenuRows, strings.Count(out.String(), "cand-"))
}

func TestRendererSetSize(t *testing.T) {
	t.Parallel()

	r := newRenderer(&bytes.Buffer{}, ThemeDefault)
	r.setSize(120, 40)
	assert.Equal(t, 120, r.cols)
	assert.Equal(t, 40, r.rows)

	// Zero dimensions are ignored, keeping the previous values.
	r.setSize(0, 0)
	assert.Equal(t, 120, r.cols)
	assert.Equal(t, 40, r.rows)
}

func TestRendererNewline(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	r := newRenderer(out, ThemeDefault)
	r.menuLines = 3

	require.NoError(t, r.newline())
	assert.Equal(t, "\r\n\x1b[J", out.String())
	assert.Equal(t, 0, r.menuLines)
}
