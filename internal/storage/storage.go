// Package storage persists chronicle entries to the append-only log file.
//
// The log is only ever appended to, with one exception: the AI-correction
// pass rewrites the whole file, and Rewrite copies the previous log to a
// .bak file first so a botched pass cannot destroy history.
package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/chronicle-cli/chronicle/internal/logbook"
	"github.com/chronicle-cli/chronicle/internal/models"
)

// Append serializes the entry and appends it to the log file, creating the
// file when missing. A blank line separates it from existing content.
func Append(e *models.Entry, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	out := logbook.Format(e) + "\n"
	if info.Size() > 0 {
		out = "\n\n" + out
	}
	if _, err := io.WriteString(f, out); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// ReadAll parses the whole log file. A missing or empty file yields an empty
// slice, not an error.
func ReadAll(path string) ([]*models.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.Entry{}, nil
		}
		return nil, fmt.Errorf("read log: %w", err)
	}
	return logbook.Parse(string(data))
}

// Rewrite replaces the whole log file with the given entries, copying the
// current content to <path>.bak beforehand.
func Rewrite(entries []*models.Entry, path string) error {
	if err := backup(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(logbook.FormatAll(entries)), 0o600); err != nil {
		return fmt.Errorf("rewrite log: %w", err)
	}
	return nil
}

// BackupPath returns the path Rewrite copies the previous log to.
func BackupPath(path string) string {
	return path + ".bak"
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read log for backup: %w", err)
	}
	if err := os.WriteFile(BackupPath(path), data, 0o600); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
