// Package readline implements the interactive line-editing engine for a
// command shell. It turns a stream of terminal events (key presses, paste
// blocks, resize notifications) into a finished, possibly multi-line,
// command string.
//
// The engine provides modal editing (insert mode plus a vi-style normal
// mode), a tab-completion menu, history browsing with a saved draft,
// abbreviation expansion, and synchronous invocation of an external editor
// program via $EDITOR.
//
// Collaborators such as the completer, suggester, highlighter and prompt
// are flat capability interfaces with working defaults; swap any of them at
// configuration time:
//
//	line, err := readline.New(
//		readline.WithPrompt(readline.StaticPrompt("$ ")),
//		readline.WithCompleter(readline.NewFileCompleter()),
//		readline.WithHistory(readline.NewFileHistory(readline.HistoryConfig{File: "~/.myshell_history"})),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer line.Close()
//
//	cmd, err := line.ReadLine()
package readline
