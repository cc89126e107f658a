package readline

import (
	"os"
	"path/filepath"
	"strings"
)

// Completer produces completion candidates for the Tab menu. args is the
// text before the cursor split on spaces; the last element is the word
// being completed (possibly empty).
type Completer interface {
	Complete(args []string) []Completion
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(args []string) []Completion

// Complete calls fn.
func (fn CompleterFunc) Complete(args []string) []Completion { return fn(args) }

// NewStaticCompleter completes the current word against a fixed candidate
// list using prefix matching. Accepted candidates replace the typed word.
func NewStaticCompleter(candidates []string) Completer {
	return CompleterFunc(func(args []string) []Completion {
		word := currentArg(args)
		var out []Completion
		for _, cand := range candidates {
			if word == "" || strings.HasPrefix(cand, word) {
				out = append(out, Completion{Value: cand, Replace: Replace})
			}
		}
		return out
	})
}

// NewFileCompleter completes the current word as a file or directory path.
// Directories gain a trailing slash so completion can continue into them.
func NewFileCompleter() Completer {
	return CompleterFunc(func(args []string) []Completion {
		return completeFilePath(currentArg(args))
	})
}

func currentArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

func completeFilePath(path string) []Completion {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if path == "" {
		dir, base = ".", ""
	}
	if strings.HasSuffix(path, "/") {
		dir, base = path, ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	out := make([]Completion, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if base != "" && !strings.HasPrefix(name, base) {
			continue
		}

		full := filepath.Join(dir, name)
		if dir == "." && !strings.HasPrefix(path, "./") {
			full = name
		}
		comp := Completion{Value: full, Display: name, Replace: Replace}
		if entry.IsDir() {
			comp.Value += "/"
		} else {
			comp.AddSpace = true
		}
		out = append(out, comp)
	}
	return out
}
