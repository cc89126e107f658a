package readline

import (
	"errors"
	"fmt"
)

// ViActionKind classifies a parsed normal-mode action.
type ViActionKind int

// Normal-mode actions.
const (
	ViMove        ViActionKind = iota // motion only
	ViDelete                          // d<motion>
	ViChange                          // c<motion>, enters insert mode
	ViDeleteChar                      // x
	ViDeleteToEnd                     // D
	ViInsert                          // i
	ViInsertStart                     // I
	ViAppend                          // a
	ViAppendEnd                       // A
	ViUndo                            // u
	ViRedo                            // U
	ViEditor                          // v, open $EDITOR
)

// ViAction is a single logical edit action. Motion is meaningful for ViMove,
// ViDelete and ViChange.
type ViAction struct {
	Kind   ViActionKind
	Motion Motion
}

// ViCommand is a fully parsed normal-mode command: a repeat count and the
// action to apply that many times.
type ViCommand struct {
	Repeat int
	Action ViAction
}

// errViIncomplete marks a key sequence that is not yet a command but may
// become one with more input (a bare count, or an operator awaiting its
// motion). The pending keys are kept in that case.
var errViIncomplete = errors.New("incomplete vi command")

var viMotions = map[rune]Motion{
	'h': MotionLeft,
	'l': MotionRight,
	'j': MotionDown,
	'k': MotionUp,
	'0': MotionStart,
	'$': MotionEnd,
	'^': MotionFirstWord,
	'w': MotionWord,
	'b': MotionBackWord,
	'e': MotionWordEnd,
}

// ParseViCommand parses an accumulated normal-mode key sequence of the form
// [count] verb [motion]. A leading "0" is the line-start motion, not a
// count. Unknown verbs or motions are an error that discards the sequence;
// errViIncomplete means keep accumulating.
func ParseViCommand(keys string) (ViCommand, error) {
	rs := []rune(keys)
	repeat := 0
	i := 0
	for i < len(rs) && rs[i] >= '0' && rs[i] <= '9' {
		if rs[i] == '0' && repeat == 0 {
			break // "0" with no count prefix is the start-of-line motion
		}
		repeat = repeat*10 + int(rs[i]-'0')
		i++
	}
	if repeat == 0 {
		repeat = 1
	}
	if i >= len(rs) {
		return ViCommand{}, errViIncomplete
	}

	verb := rs[i]
	rest := rs[i+1:]

	single := func(kind ViActionKind) (ViCommand, error) {
		if len(rest) != 0 {
			return ViCommand{}, fmt.Errorf("unknown vi command %q", keys)
		}
		return ViCommand{Repeat: repeat, Action: ViAction{Kind: kind}}, nil
	}

	if m, ok := viMotions[verb]; ok {
		if len(rest) != 0 {
			return ViCommand{}, fmt.Errorf("unknown vi command %q", keys)
		}
		return ViCommand{Repeat: repeat, Action: ViAction{Kind: ViMove, Motion: m}}, nil
	}

	switch verb {
	case 'x':
		return single(ViDeleteChar)
	case 'D':
		return single(ViDeleteToEnd)
	case 'i':
		return single(ViInsert)
	case 'I':
		return single(ViInsertStart)
	case 'a':
		return single(ViAppend)
	case 'A':
		return single(ViAppendEnd)
	case 'u':
		return single(ViUndo)
	case 'U':
		return single(ViRedo)
	case 'v':
		return single(ViEditor)
	case 'd', 'c':
		kind := ViDelete
		if verb == 'c' {
			kind = ViChange
		}
		if len(rest) == 0 {
			return ViCommand{}, errViIncomplete
		}
		if len(rest) > 1 {
			return ViCommand{}, fmt.Errorf("unknown vi command %q", keys)
		}
		if rest[0] == verb { // dd / cc operate on the whole line
			return ViCommand{Repeat: repeat, Action: ViAction{Kind: kind, Motion: MotionLine}}, nil
		}
		m, ok := viMotions[rest[0]]
		if !ok || m == MotionUp || m == MotionDown {
			return ViCommand{}, fmt.Errorf("unknown vi command %q", keys)
		}
		return ViCommand{Repeat: repeat, Action: ViAction{Kind: kind, Motion: m}}, nil
	}
	return ViCommand{}, fmt.Errorf("unknown vi command %q", keys)
}
