package readline

import (
	"os"
	"os/exec"
	"strings"
)

// invokeEditor hands the buffer to the program named by $EDITOR through a
// temporary file and reads the result back. The session blocks on the child
// process; there is no cancellation path. An unset $EDITOR is a silent
// no-op. Exactly one trailing newline is stripped from the edited file;
// other editor-specific newline conventions are not normalized.
func (l *Line) invokeEditor(state *LineState) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return nil
	}

	file, err := os.CreateTemp("", "readline-*")
	if err != nil {
		return err
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.WriteString(state.Buf.String()); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	l.log.Debugw("invoking external editor", "editor", editor, "file", path)
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	edited := strings.TrimSuffix(string(data), "\n")

	state.Buf.Clear()
	return state.Buf.InsertAtCursor(edited)
}
