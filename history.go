package readline

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// History is the append-only command log the session reads while browsing
// and appends to on completion. Get indexes from the most recent entry:
// Get(0) is the last command added.
type History interface {
	// Add appends a completed command. Implementations may suppress
	// consecutive duplicates.
	Add(entry string)
	// Get returns the i-th most recent entry.
	Get(i int) (string, bool)
	// Len returns the number of entries.
	Len() int
}

// HistoryConfig holds the persistence settings for FileHistory.
//
// The file path supports several forms:
//   - empty string: memory-only, no persistence
//   - absolute path: "/home/user/.myshell_history"
//   - home-relative: "~/.myshell_history"
//   - relative path: "./history" (converted to absolute)
type HistoryConfig struct {
	File        string // file path for persistence (empty = memory only)
	MaxEntries  int    // maximum entries kept in memory (default 1000)
	MaxFileSize int64  // file size in bytes before rotation (default 1MB)
	MaxBackups  int    // numbered backup files kept on rotation (default 3)
}

// FileHistory is the default History: an in-memory log with optional
// file persistence and size-based rotation. Entries are stored oldest-first
// on disk, one command per line.
type FileHistory struct {
	config  HistoryConfig
	entries []string
}

// NewFileHistory creates a file-backed history log. Unset config fields get
// defaults; the path is expanded and made absolute.
func NewFileHistory(config HistoryConfig) *FileHistory {
	if config.MaxEntries <= 0 {
		config.MaxEntries = 1000
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 1024 * 1024
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 3
	}
	if config.File != "" {
		if abs, err := expandHistoryPath(config.File); err == nil {
			config.File = abs
		}
	}
	return &FileHistory{config: config}
}

// NewMemoryHistory creates a memory-only history log.
func NewMemoryHistory(maxEntries int) *FileHistory {
	return NewFileHistory(HistoryConfig{MaxEntries: maxEntries})
}

// Add appends a command, suppressing consecutive duplicates and trimming to
// the configured memory limit.
func (h *FileHistory) Add(entry string) {
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.config.MaxEntries {
		h.entries = h.entries[len(h.entries)-h.config.MaxEntries:]
	}
}

// Get returns the i-th most recent entry.
func (h *FileHistory) Get(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[len(h.entries)-1-i], true
}

// Len returns the number of entries.
func (h *FileHistory) Len() int { return len(h.entries) }

// Entries returns a copy of the log, oldest first.
func (h *FileHistory) Entries() []string {
	return append([]string{}, h.entries...)
}

// SetEntries replaces the log, oldest first.
func (h *FileHistory) SetEntries(entries []string) {
	h.entries = append([]string{}, entries...)
}

// Load reads the history file into memory. A missing file is not an error.
func (h *FileHistory) Load() error {
	if h.config.File == "" {
		return nil
	}
	file, err := os.Open(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	return nil
}

// Save writes the log back to the history file, rotating first when the
// file has outgrown the configured size.
func (h *FileHistory) Save() error {
	if h.config.File == "" {
		return nil
	}
	if err := h.rotateIfNeeded(); err != nil {
		return fmt.Errorf("failed to rotate history file: %w", err)
	}
	if dir := filepath.Dir(h.config.File); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	file, err := os.Create(h.config.File)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	for _, entry := range h.entries {
		if _, err := fmt.Fprintln(file, entry); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return nil
}

func (h *FileHistory) rotateIfNeeded() error {
	info, err := os.Stat(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < h.config.MaxFileSize {
		return nil
	}
	return h.rotate()
}

// rotate shifts numbered backups and rewrites the live file with only the
// most recent half of the entries so it does not immediately rotate again.
func (h *FileHistory) rotate() error {
	oldest := h.config.File + "." + strconv.Itoa(h.config.MaxBackups)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}
	for i := h.config.MaxBackups - 1; i >= 1; i-- {
		from := h.config.File + "." + strconv.Itoa(i)
		to := h.config.File + "." + strconv.Itoa(i+1)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, to); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}
	if err := os.Rename(h.config.File, h.config.File+".1"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	keep := len(h.entries) / 2
	if keep < 100 {
		keep = len(h.entries)
	}
	start := len(h.entries) - keep
	if start < 0 {
		start = 0
	}
	file, err := os.Create(h.config.File)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, entry := range h.entries[start:] {
		if _, err := fmt.Fprintln(file, entry); err != nil {
			return err
		}
	}
	h.entries = h.entries[start:]
	return nil
}

// DefaultHistoryFile returns the XDG-compliant default history path:
// $XDG_CONFIG_HOME/readline/history, falling back to ~/.config.
func DefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "readline", "history")
}

// expandHistoryPath expands "~" and converts the path to an absolute one.
func expandHistoryPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return abs, nil
}
