package readline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseViCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys string
		want ViCommand
	}{
		{
			name: "bare motion",
			keys: "h",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViMove, Motion: MotionLeft}},
		},
		{
			name: "counted motion",
			keys: "3l",
			want: ViCommand{Repeat: 3, Action: ViAction{Kind: ViMove, Motion: MotionRight}},
		},
		{
			name: "multi digit count",
			keys: "12w",
			want: ViCommand{Repeat: 12, Action: ViAction{Kind: ViMove, Motion: MotionWord}},
		},
		{
			name: "bare zero is the line start motion",
			keys: "0",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViMove, Motion: MotionStart}},
		},
		{
			name: "zero inside a count is a digit",
			keys: "10j",
			want: ViCommand{Repeat: 10, Action: ViAction{Kind: ViMove, Motion: MotionDown}},
		},
		{
			name: "delete with motion",
			keys: "dw",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViDelete, Motion: MotionWord}},
		},
		{
			name: "change with motion",
			keys: "cb",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViChange, Motion: MotionBackWord}},
		},
		{
			name: "doubled delete is whole line",
			keys: "dd",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViDelete, Motion: MotionLine}},
		},
		{
			name: "doubled change is whole line",
			keys: "2cc",
			want: ViCommand{Repeat: 2, Action: ViAction{Kind: ViChange, Motion: MotionLine}},
		},
		{
			name: "delete char",
			keys: "x",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViDeleteChar}},
		},
		{
			name: "delete to end",
			keys: "D",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViDeleteToEnd}},
		},
		{
			name: "insert",
			keys: "i",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViInsert}},
		},
		{
			name: "append at end",
			keys: "A",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViAppendEnd}},
		},
		{
			name: "undo",
			keys: "u",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViUndo}},
		},
		{
			name: "redo",
			keys: "U",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViRedo}},
		},
		{
			name: "external editor",
			keys: "v",
			want: ViCommand{Repeat: 1, Action: ViAction{Kind: ViEditor}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			got, err := ParseViCommand(tt.keys)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseViCommandIncomplete(t *testing.T) {
	t.Parallel()

	// These accumulations may still become a command with more input; the
	// caller keeps the pending keys.
	for _, keys := range []string{"2", "12", "d", "c", "3d"} {
		t.Run(keys, func(t *testing.T) {
			keys := keys
			t.Parallel()

			_, err := ParseViCommand(keys)
			require.ErrorIs(t, err, errViIncomplete)
		})
	}
}

func TestParseViCommandInvalid(t *testing.T) {
	t.Parallel()

	// Invalid sequences discard the accumulation.
	for _, keys := range []string{"q", "dz", "dj", "dk", "xx", "d3", "ddw"} {
		t.Run(keys, func(t *testing.T) {
			keys := keys
			t.Parallel()

			_, err := ParseViCommand(keys)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errViIncomplete)
		})
	}
}
