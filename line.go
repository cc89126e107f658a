package readline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Sentinel errors returned by ReadLine.
var (
	// ErrEOF is returned when the terminal input ends.
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl-C.
	ErrInterrupted = errors.New("interrupted")
)

// LineState is the per-session editing state. One value is created at loop
// entry, passed by reference into every handler, and discarded when the
// loop returns. The buffer and the continuation lines together always form
// the full candidate command.
type LineState struct {
	// Buf is the editable buffer for the current physical line.
	Buf Buffer
	// Lines accumulates completed continuation lines, each ending in a
	// newline.
	Lines string

	currentWord string
	histIndex   historyIndex
	savedDraft  string
	mode        LineMode
}

// FullCommand returns the continuation lines plus the current buffer text.
func (s *LineState) FullCommand() string {
	return s.Lines + s.Buf.String()
}

// Mode returns the active editing mode.
func (s *LineState) Mode() LineMode { return s.mode }

type queuedContent struct {
	content string
	autoRun bool
}

// Line is the session orchestrator: it owns the read loop, applies dispatch
// precedence (global keys, then menu keys, then mode keys), manages
// multi-line continuation and finalizes the result into history.
type Line struct {
	menu          Menu
	bufferHistory BufferHistory
	highlighter   Highlighter
	prompt        Prompt
	suggester     Suggester
	completer     Completer
	checker       LineChecker
	snippets      *Snippets
	history       History
	keybinding    Keybinding
	hooks         *Hooks
	scheme        *ColorScheme

	term        terminalDevice
	output      io.Writer
	renderer    *renderer
	log         *zap.SugaredLogger
	normalKeys  string
	queued      *queuedContent
	cursorShape bool
	exit        func(code int)
}

// Option configures a Line.
type Option func(*Line)

// WithPrompt sets the prompt decoration.
func WithPrompt(p Prompt) Option { return func(l *Line) { l.prompt = p } }

// WithMenu replaces the completion menu controller.
func WithMenu(m Menu) Option { return func(l *Line) { l.menu = m } }

// WithHighlighter sets the syntax highlighter.
func WithHighlighter(h Highlighter) Option { return func(l *Line) { l.highlighter = h } }

// WithSuggester sets the inline suggestion source.
func WithSuggester(s Suggester) Option { return func(l *Line) { l.suggester = s } }

// WithCompleter sets the completion-candidate source.
func WithCompleter(c Completer) Option { return func(l *Line) { l.completer = c } }

// WithHistory sets the history log.
func WithHistory(h History) Option { return func(l *Line) { l.history = h } }

// WithLineChecker sets the syntactic completeness check consulted on Enter.
func WithLineChecker(c LineChecker) Option { return func(l *Line) { l.checker = c } }

// WithSnippets sets the abbreviation table.
func WithSnippets(s *Snippets) Option { return func(l *Line) { l.snippets = s } }

// WithBufferHistory replaces the undo/redo log.
func WithBufferHistory(bh BufferHistory) Option { return func(l *Line) { l.bufferHistory = bh } }

// WithKeybinding sets the user-defined global key table, evaluated before
// all built-in key handling.
func WithKeybinding(kb Keybinding) Option { return func(l *Line) { l.keybinding = kb } }

// WithColorScheme sets the color scheme.
func WithColorScheme(cs *ColorScheme) Option { return func(l *Line) { l.scheme = cs } }

// WithCursorShape enables DECSCUSR cursor-shape updates on mode switches.
func WithCursorShape(enabled bool) Option { return func(l *Line) { l.cursorShape = enabled } }

func withTerminal(t terminalDevice) Option { return func(l *Line) { l.term = t } }

func withOutput(w io.Writer) Option { return func(l *Line) { l.output = w } }

// New creates a line editor with the given options. Every collaborator has
// a working default; a FileHistory passed via WithHistory is loaded here.
func New(options ...Option) (*Line, error) {
	l := &Line{
		hooks: &Hooks{},
		log:   newLogger(),
		exit:  os.Exit,
	}
	for _, option := range options {
		option(l)
	}

	if l.scheme == nil {
		l.scheme = ThemeDefault
	}
	if l.menu == nil {
		l.menu = NewMenu()
	}
	if l.bufferHistory == nil {
		l.bufferHistory = NewBufferHistory()
	}
	if l.highlighter == nil {
		l.highlighter = NewPlainHighlighter(l.scheme.Input)
	}
	if l.prompt == nil {
		l.prompt = StaticPrompt("$ ")
	}
	if l.checker == nil {
		l.checker = NewQuoteChecker()
	}
	if l.snippets == nil {
		l.snippets = NewSnippets()
	}
	if l.history == nil {
		l.history = NewMemoryHistory(1000)
	}
	if fh, ok := l.history.(*FileHistory); ok {
		if err := fh.Load(); err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}
	if l.suggester == nil {
		l.suggester = NewHistorySuggester(l.history)
	}
	if l.completer == nil {
		l.completer = CompleterFunc(func([]string) []Completion { return nil })
	}

	if l.output == nil {
		l.output = os.Stdout
		if runtime.GOOS == "windows" {
			l.output = colorable.NewColorableStdout()
		}
	}
	if l.term == nil {
		term, err := newRealTerminal()
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		l.term = term
	}
	l.renderer = newRenderer(l.output, l.scheme)
	if cols, rows, err := l.term.Size(); err == nil {
		l.renderer.setSize(cols, rows)
	}

	return l, nil
}

// Hooks returns the notification registry for mode-switch and exit
// callbacks.
func (l *Line) Hooks() *Hooks { return l.hooks }

// Queue stores content inserted at the cursor when the next session starts.
// With autoRun the session renders once and completes immediately without
// reading input.
func (l *Line) Queue(content string, autoRun bool) {
	l.queued = &queuedContent{content: content, autoRun: autoRun}
}

// Close releases the terminal and persists a file-backed history log.
func (l *Line) Close() error {
	if fh, ok := l.history.(*FileHistory); ok {
		if err := fh.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
	}
	l.log.Sync() //nolint:errcheck // best-effort flush
	if l.term != nil {
		return l.term.Close()
	}
	return nil
}

// ReadLine runs one interactive editing session and returns the finished
// command: all completed continuation lines plus the final buffer. The
// result is appended to history when non-empty. Ctrl-C yields
// ErrInterrupted; end of input yields ErrEOF; buffer operation failures are
// fatal to the session and propagate.
func (l *Line) ReadLine() (string, error) {
	state := &LineState{}
	return l.readEvents(state)
}

func (l *Line) readEvents(state *LineState) (string, error) {
	if err := l.term.SetRaw(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	if err := l.term.EnablePaste(); err != nil {
		return "", fmt.Errorf("failed to enable bracketed paste: %w", err)
	}
	defer func() {
		// Runs on every exit path; both calls are no-ops if Ctrl-D
		// already tore the terminal down before process exit.
		l.term.DisablePaste() //nolint:errcheck
		l.term.Restore()      //nolint:errcheck
	}()

	autoRun := false
	if q := l.queued; q != nil {
		l.queued = nil
		autoRun = q.autoRun
		if err := state.Buf.InsertAtCursor(q.content); err != nil {
			return "", err
		}
	}

	for {
		if err := l.paint(state); err != nil {
			return "", fmt.Errorf("failed to render: %w", err)
		}
		if autoRun {
			l.bufferHistory.Clear()
			l.renderer.newline() //nolint:errcheck
			break
		}

		event, err := l.term.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEOF
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		if ke, ok := event.(KeyEvent); ok && l.keybinding != nil && l.keybinding.Handle(state, ke) {
			break
		}

		stop, err := l.handleStandardKeys(state, event)
		if err != nil {
			return "", err
		}
		if stop {
			break
		}

		if l.menu.Active() {
			err = l.handleMenuKeys(state, event)
		} else {
			switch state.mode {
			case ModeInsert:
				err = l.handleInsertKeys(state, event)
			case ModeNormal:
				err = l.handleNormalKeys(state, event)
			}
		}
		if err != nil {
			// Buffer operation failures are fatal to the session.
			fmt.Fprintf(os.Stderr, "readline: %v\r\n", err)
			return "", err
		}
	}

	result := state.FullCommand()
	if result != "" {
		l.history.Add(result)
	}
	l.log.Debugw("line finished", "len", len(result))
	return result, nil
}

// paint renders the buffer plus the overlay: the un-typed suffix of the
// menu selection when the menu is active, otherwise the suggester's
// history-based completion.
func (l *Line) paint(state *LineState) error {
	full := state.FullCommand()
	styled := l.highlighter.Highlight(full).SliceFromRunes(len([]rune(state.Lines)))

	if l.menu.Active() {
		if sel, ok := l.menu.Selection(); ok {
			accepted := sel.Accept()
			if len(state.currentWord) <= len(accepted) {
				styled.Append(accepted[len(state.currentWord):], l.scheme.Overlay)
			}
		}
	} else if suggestion, ok := l.suggester.Suggest(state); ok && len(suggestion) > len(full) {
		styled.Append(suggestion[len(full):], l.scheme.Overlay)
	}

	return l.renderer.render(l.prompt.Render(), state.Buf.String(), state.Buf.Cursor(), styled, l.menu)
}

// handleStandardKeys evaluates keys that are universal regardless of mode:
// resize, paste, Ctrl-C, suggestion-adopting Right, Enter/Ctrl-J and
// Ctrl-D. The bool result reports whether the session should terminate.
func (l *Line) handleStandardKeys(state *LineState, event Event) (bool, error) {
	switch ev := event.(type) {
	case ResizeEvent:
		l.renderer.setSize(ev.Cols, ev.Rows)
		return false, nil
	case PasteEvent:
		return false, state.Buf.InsertAtCursor(ev.Text)
	case KeyEvent:
		switch {
		case ev.Ctrl && ev.Rune == 'c':
			state.Buf.Clear()
			l.bufferHistory.Clear()
			state.Lines = ""
			l.renderer.newline() //nolint:errcheck
			return true, ErrInterrupted

		case ev.Key == KeyRight && !ev.Ctrl:
			// Adopt the whole suggestion; cursor movement still falls
			// through to the mode handler.
			if suggestion, ok := l.suggester.Suggest(state); ok {
				state.Buf.SetText(suggestion)
			}
			return false, nil

		case ev.Key == KeyEnter || (ev.Ctrl && ev.Rune == 'j'):
			if l.menu.Active() {
				return false, nil // the menu absorbs Enter
			}
			l.bufferHistory.Clear()
			if err := l.renderer.newline(); err != nil {
				return false, err
			}
			if l.checker.NeedsLine(state.FullCommand()) {
				state.Lines += state.Buf.String() + "\n"
				state.Buf.Clear()
				return false, nil
			}
			return true, nil

		case ev.Ctrl && ev.Rune == 'd':
			if state.Buf.Empty() {
				// Unconditional shutdown: release the terminal first,
				// then let exit hooks observe the cleanup.
				l.term.DisablePaste() //nolint:errcheck
				l.term.Restore()      //nolint:errcheck
				l.hooks.fireExit()
				l.exit(0)
				return true, nil // reached only with an injected exit
			}
			l.bufferHistory.Clear()
			l.renderer.newline() //nolint:errcheck
			return true, nil
		}
	}
	return false, nil
}

// handleMenuKeys routes keys while the completion menu is active. Any key
// the menu does not own disactivates it and is re-dispatched to the mode
// handler, so no keystroke is silently dropped.
func (l *Line) handleMenuKeys(state *LineState, event Event) error {
	ev, ok := event.(KeyEvent)
	if !ok {
		return nil
	}
	switch {
	case ev.Key == KeyEnter:
		if accepted, ok := l.menu.Accept(); ok {
			return l.acceptCompletion(state, accepted)
		}
	case ev.Key == KeyEscape:
		l.menu.Disactivate()
	case (ev.Key == KeyTab && ev.Shift) || ev.Key == KeyUp:
		l.menu.Previous()
	case ev.Key == KeyTab || ev.Key == KeyDown:
		l.menu.Next()
	default:
		l.menu.Disactivate()
		switch state.mode {
		case ModeInsert:
			return l.handleInsertKeys(state, event)
		case ModeNormal:
			return l.handleNormalKeys(state, event)
		}
	}
	return nil
}

// handleInsertKeys processes a key in insert mode, after abbreviation
// expansion has had first refusal of the event.
func (l *Line) handleInsertKeys(state *LineState, event Event) error {
	ev, ok := event.(KeyEvent)
	if !ok {
		return nil
	}

	proceed, err := l.expandSnippet(state, ev)
	if err != nil || !proceed {
		return err
	}

	switch {
	case ev.Key == KeyTab && !ev.Shift:
		if err := l.populateCompletions(state); err != nil {
			return err
		}
		items := l.menu.Items()
		switch len(items) {
		case 0:
			l.menu.Disactivate()
		case 1:
			// A single candidate is accepted immediately, skipping the
			// interactive menu.
			l.menu.Disactivate()
			return l.acceptCompletion(state, items[0])
		default:
			l.menu.Activate()
		}

	case ev.Key == KeyLeft:
		if state.Buf.Cursor() > 0 {
			return state.Buf.MoveRel(-1)
		}

	case ev.Key == KeyRight:
		if state.Buf.Cursor() < state.Buf.Len() {
			return state.Buf.MoveRel(1)
		}

	case ev.Key == KeyUp:
		return l.historyUp(state)

	case ev.Key == KeyDown:
		return l.historyDown(state)

	case ev.Key == KeyEscape:
		l.toNormalMode(state)
		l.bufferHistory.Add(&state.Buf)

	case ev.Key == KeyBackspace || (ev.Ctrl && ev.Rune == 'h'):
		if !state.Buf.Empty() && state.Buf.Cursor() != 0 {
			return state.Buf.DeleteRange(state.Buf.Cursor()-1, state.Buf.Cursor())
		}

	case ev.Ctrl && ev.Rune == 'w':
		if !state.Buf.Empty() && state.Buf.Cursor() != 0 {
			start := state.Buf.MotionOffset(MotionBackWord)
			return state.Buf.DeleteRange(start, state.Buf.Cursor())
		}

	case ev.Ctrl && ev.Rune == 'a':
		state.Buf.MoveStart()

	case ev.Ctrl && ev.Rune == 'e':
		state.Buf.MoveEnd()

	case ev.Key == KeyRune && !ev.Ctrl:
		return state.Buf.InsertAtCursor(string(ev.Rune))
	}
	return nil
}

// handleNormalKeys accumulates typed characters into the pending-keys
// buffer and executes every command the grammar recognizes. Escape clears
// the pending keys; an incomplete accumulation is kept across keystrokes.
func (l *Line) handleNormalKeys(state *LineState, event Event) error {
	ev, ok := event.(KeyEvent)
	if !ok {
		return nil
	}
	switch {
	case ev.Key == KeyEscape:
		l.normalKeys = ""
	case ev.Key == KeyRune && !ev.Ctrl:
		l.normalKeys += string(ev.Rune)
		cmd, err := ParseViCommand(l.normalKeys)
		if err != nil {
			if !errors.Is(err, errViIncomplete) {
				l.normalKeys = ""
			}
			return nil
		}
		l.normalKeys = ""
		return l.executeViCommand(state, cmd)
	}
	return nil
}

// executeViCommand applies a parsed command repeat-count times, routing
// undo/redo to the buffer history, up/down motions to the history
// navigator, and the editor action to $EDITOR. Every other action is
// followed by an undo snapshot.
func (l *Line) executeViCommand(state *LineState, cmd ViCommand) error {
	for i := 0; i < cmd.Repeat; i++ {
		mode, err := state.Buf.ExecuteVi(cmd.Action)
		if err != nil {
			return err
		}
		if mode != state.mode {
			switch mode {
			case ModeInsert:
				l.toInsertMode(state)
			case ModeNormal:
				l.toNormalMode(state)
			}
		}

		switch cmd.Action.Kind {
		case ViUndo:
			l.bufferHistory.Prev(&state.Buf)
		case ViRedo:
			l.bufferHistory.Next(&state.Buf)
		case ViMove:
			switch cmd.Action.Motion {
			case MotionUp:
				if err := l.historyUp(state); err != nil {
					return err
				}
			case MotionDown:
				if err := l.historyDown(state); err != nil {
					return err
				}
			}
		case ViEditor:
			if err := l.invokeEditor(state); err != nil {
				return err
			}
		default:
			l.bufferHistory.Add(&state.Buf)
		}
	}
	return nil
}

// populateCompletions recomputes the candidate list from the text before
// the cursor and caches the word being completed.
func (l *Line) populateCompletions(state *LineState) error {
	before := state.Buf.Slice(0, state.Buf.Cursor())
	args := splitArgs(before)
	state.currentWord = args[len(args)-1]

	items := l.completer.Complete(args)
	l.menu.SetItems(items)
	l.log.Debugw("completions populated", "word", state.currentWord, "count", len(items))
	return nil
}

// acceptCompletion splices an accepted candidate into the buffer. With the
// Replace policy the cached current word is removed first; its extent is
// measured in display-width columns so multi-column glyphs are handled
// correctly.
func (l *Line) acceptCompletion(state *LineState, completion Completion) error {
	if completion.Replace == Replace {
		word := []rune(state.currentWord)
		if err := state.Buf.MoveRel(-len(word)); err != nil {
			return err
		}
		if err := state.Buf.DeleteColumns(runewidth.StringWidth(state.currentWord)); err != nil {
			return err
		}
		state.currentWord = ""
	}
	return state.Buf.InsertAtCursor(completion.Accept())
}

// historyUp browses toward older entries, snapshotting the in-progress edit
// as the saved draft on the transition out of the prompt state.
func (l *Line) historyUp(state *LineState) error {
	if !state.histIndex.browsing {
		state.savedDraft = state.Buf.String()
	}
	state.histIndex = state.histIndex.up(l.history.Len())
	return l.applyHistory(state)
}

// historyDown browses back toward the prompt, restoring the saved draft on
// arrival.
func (l *Line) historyDown(state *LineState) error {
	state.histIndex = state.histIndex.down()
	return l.applyHistory(state)
}

func (l *Line) applyHistory(state *LineState) error {
	if !state.histIndex.browsing {
		state.Buf.Clear()
		return state.Buf.InsertAtCursor(state.savedDraft)
	}
	entry, ok := l.history.Get(state.histIndex.line)
	if !ok {
		return nil
	}
	state.Buf.Clear()
	return state.Buf.InsertAtCursor(entry)
}

func (l *Line) toNormalMode(state *LineState) {
	l.setCursorShape(cursorShapeBlock)
	state.mode = ModeNormal
	l.hooks.fireModeSwitch(ModeNormal)
}

func (l *Line) toInsertMode(state *LineState) {
	l.setCursorShape(cursorShapeBar)
	state.mode = ModeInsert
	l.hooks.fireModeSwitch(ModeInsert)
}

func (l *Line) setCursorShape(shape string) {
	if l.cursorShape {
		io.WriteString(l.output, shape) //nolint:errcheck
	}
}

// splitArgs splits on single spaces; the result always has at least one
// element so the last token is the word being completed.
func splitArgs(text string) []string {
	args := make([]string, 0, 8)
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == ' ' {
			args = append(args, text[start:i])
			start = i + 1
		}
	}
	return args
}
