package readline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItems(values ...string) []Completion {
	items := make([]Completion, 0, len(values))
	for _, v := range values {
		items = append(items, Completion{Value: v})
	}
	return items
}

func TestMenuActivation(t *testing.T) {
	t.Parallel()

	m := NewMenu()
	assert.False(t, m.Active(), "fresh menu must be inactive")

	// Activation with an empty candidate list is refused.
	m.Activate()
	assert.False(t, m.Active())

	m.SetItems(menuItems("alpha", "beta"))
	m.Activate()
	assert.True(t, m.Active())

	m.Disactivate()
	assert.False(t, m.Active())
}

func TestMenuSelectionWraps(t *testing.T) {
	t.Parallel()

	m := NewMenu()
	m.SetItems(menuItems("a", "b", "c"))
	m.Activate()

	sel, ok := m.Selection()
	require.True(t, ok)
	assert.Equal(t, "a", sel.Value, "selection starts at the first candidate")

	m.Next()
	m.Next()
	sel, _ = m.Selection()
	assert.Equal(t, "c", sel.Value)

	// Forward past the end wraps to the first candidate.
	m.Next()
	sel, _ = m.Selection()
	assert.Equal(t, "a", sel.Value)

	// Backward past the start wraps to the last candidate.
	m.Previous()
	sel, _ = m.Selection()
	assert.Equal(t, "c", sel.Value)
}

func TestMenuSetItemsResetsSelection(t *testing.T) {
	t.Parallel()

	m := NewMenu()
	m.SetItems(menuItems("a", "b"))
	m.Activate()
	m.Next()
	assert.Equal(t, 1, m.SelectionIndex())

	m.SetItems(menuItems("x", "y", "z"))
	assert.Equal(t, 0, m.SelectionIndex())
}

func TestMenuAccept(t *testing.T) {
	t.Parallel()

	m := NewMenu()
	m.SetItems(menuItems("a", "b"))
	m.Activate()
	m.Next()

	sel, ok := m.Accept()
	require.True(t, ok)
	assert.Equal(t, "b", sel.Value)
	assert.False(t, m.Active(), "accept must disactivate the menu")

	// Accept on an inactive menu reports no selection.
	_, ok = m.Accept()
	assert.False(t, ok)
}

func TestCompletionAccept(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		completion  Completion
		wantAccept  string
		wantDisplay string
	}{
		{
			name:        "plain value",
			completion:  Completion{Value: "ls"},
			wantAccept:  "ls",
			wantDisplay: "ls",
		},
		{
			name:        "trailing space on acceptance",
			completion:  Completion{Value: "ls", AddSpace: true},
			wantAccept:  "ls ",
			wantDisplay: "ls",
		},
		{
			name:        "display override",
			completion:  Completion{Value: "/usr/bin/ls", Display: "ls"},
			wantAccept:  "/usr/bin/ls",
			wantDisplay: "ls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()
			assert.Equal(t, tt.wantAccept, tt.completion.Accept())
			assert.Equal(t, tt.wantDisplay, tt.completion.DisplayText())
		})
	}
}
