// Package main is a small interactive shell built on the readline library:
// modal vi editing, tab completion, abbreviations, persistent history and
// multi-line input.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/karasu-sh/readline"
)

var builtins = []string{"cd", "pwd", "exit", "ls", "cat", "echo", "git"}

func main() {
	fmt.Println("Mini Shell Example")
	fmt.Println("  Tab        complete commands and paths")
	fmt.Println("  Escape     vi normal mode (hjkl, dd, cw, u, v for $EDITOR)")
	fmt.Println("  'gco '     expands to 'git checkout '")
	fmt.Println("  Ctrl+D     exit on an empty line")
	fmt.Println()

	snippets := readline.NewSnippets()
	snippets.Register("gco", readline.Snippet{Value: "git checkout", Position: readline.PositionCommand})
	snippets.Register("gst", readline.Snippet{Value: "git status", Position: readline.PositionCommand})

	history := readline.NewFileHistory(readline.HistoryConfig{
		File: readline.DefaultHistoryFile(),
	})

	l, err := readline.New(
		readline.WithPrompt(readline.PromptFunc(promptPrefix)),
		readline.WithCompleter(readline.CompleterFunc(completeShell)),
		readline.WithSnippets(snippets),
		readline.WithHistory(history),
		readline.WithColorScheme(readline.ThemeDark),
		readline.WithCursorShape(true),
	)
	if err != nil {
		log.Fatalf("failed to create line editor: %v", err)
	}
	defer l.Close()

	l.Hooks().OnExit(func() {
		fmt.Println("Goodbye!")
	})

	for {
		result, err := l.ReadLine()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupted) {
				continue
			}
			if errors.Is(err, readline.ErrEOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("Error: %v", err)
			continue
		}

		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}
		if result == "exit" {
			fmt.Println("Goodbye!")
			break
		}
		run(result)
	}
}

func promptPrefix() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	return fmt.Sprintf("%s> ", filepath.Base(cwd))
}

// completeShell completes the first word against the builtin list and later
// words as filesystem paths.
func completeShell(args []string) []readline.Completion {
	if len(args) <= 1 {
		word := ""
		if len(args) == 1 {
			word = args[0]
		}
		var out []readline.Completion
		for _, cmd := range builtins {
			if word == "" || strings.HasPrefix(cmd, word) {
				out = append(out, readline.Completion{
					Value:    cmd,
					Replace:  readline.Replace,
					AddSpace: true,
				})
			}
		}
		return out
	}
	return readline.NewFileCompleter().Complete(args)
}

func run(input string) {
	words := strings.Fields(strings.ReplaceAll(input, "\n", " "))
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case "cd":
		dir := os.Getenv("HOME")
		if len(words) > 1 {
			dir = words[1]
		}
		if err := os.Chdir(dir); err != nil {
			fmt.Printf("cd: %v\n", err)
		}
	case "pwd":
		if cwd, err := os.Getwd(); err == nil {
			fmt.Println(cwd)
		}
	default:
		// #nosec G204 - an interactive shell example runs what the user typed
		cmd := exec.CommandContext(context.Background(), words[0], words[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			fmt.Printf("%s: %v\n", words[0], err)
		}
	}
}
