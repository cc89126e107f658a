package readline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnippetsRegisterAndGet(t *testing.T) {
	t.Parallel()

	s := NewSnippets()
	s.Register("gc", Snippet{Value: "git commit"})

	got, ok := s.Get("gc")
	require.True(t, ok)
	assert.Equal(t, "git commit", got.Value)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestSnippetsShouldExpand(t *testing.T) {
	t.Parallel()

	s := NewSnippets()
	assert.True(t, s.ShouldExpand(RuneKey(' ')), "space is the default trigger")
	assert.False(t, s.ShouldExpand(RuneKey('a')))
	assert.False(t, s.ShouldExpand(KeyEvent{Key: KeyTab}))

	s.SetTrigger(func(ev KeyEvent) bool { return ev.Key == KeyEnter })
	assert.True(t, s.ShouldExpand(KeyEvent{Key: KeyEnter}))
	assert.False(t, s.ShouldExpand(RuneKey(' ')))
}

func TestReadLineSnippetExpansion(t *testing.T) {
	t.Parallel()

	newSnippets := func() *Snippets {
		s := NewSnippets()
		s.Register("gc", Snippet{Value: "git commit"})
		s.Register("gp", Snippet{Value: "git push", Position: PositionCommand})
		return s
	}

	tests := []struct {
		name   string
		events []Event
		want   string
	}{
		{
			name:   "trigger word expands and the space is consumed",
			events: script("gc", RuneKey(' '), enter()),
			want:   "git commit",
		},
		{
			name:   "expansion works mid line",
			events: script("echo gc", RuneKey(' '), enter()),
			want:   "echo git commit",
		},
		{
			name:   "non-trigger word inserts the space normally",
			events: script("ls", RuneKey(' '), "-l", enter()),
			want:   "ls -l",
		},
		{
			name:   "command-position snippet expands as first word",
			events: script("gp", RuneKey(' '), enter()),
			want:   "git push",
		},
		{
			name:   "command-position snippet refuses other positions",
			events: script("echo gp", RuneKey(' '), enter()),
			want:   "echo gp ",
		},
		{
			name:   "expanded text is not expanded again",
			events: script("gc", RuneKey(' '), RuneKey(' '), enter()),
			want:   "git commit ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			l, _, _ := newTestLine(t, tt.events, WithSnippets(newSnippets()))
			got, err := l.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandSnippetCursorBetweenWords(t *testing.T) {
	t.Parallel()

	// The token scan is inclusive on both boundaries, so a cursor sitting
	// exactly on the space after a word still resolves to that word.
	s := NewSnippets()
	s.Register("gc", Snippet{Value: "git commit"})

	l, _, _ := newTestLine(t, nil, WithSnippets(s))
	state := &LineState{}
	require.NoError(t, state.Buf.InsertAtCursor("gc x"))
	require.NoError(t, state.Buf.MoveTo(2))

	proceed, err := l.expandSnippet(state, RuneKey(' '))
	require.NoError(t, err)
	assert.False(t, proceed)
	assert.Equal(t, "git commit x", state.Buf.String())
}
