// Package logger provides the file writers behind the session loggers.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileWriter appends to a log file and keeps it bounded to the last
// maxLines lines. The file is rewritten once twice that many lines have
// been written since the last trim.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	maxLines int
	ring     *lineRing
}

// OpenFile opens or creates the log file at path.
func OpenFile(path string, maxLines int) (*FileWriter, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	return &FileWriter{
		file:     file,
		path:     path,
		maxLines: maxLines,
		ring:     newLineRing(maxLines),
	}, nil
}

// Write implements io.Writer.
func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}

	if w.maxLines <= 0 {
		return n, nil
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.ring.push(line)

		if w.ring.written >= w.maxLines*2 {
			if err := w.trim(); err != nil {
				return n, fmt.Errorf("failed to trim log file: %w", err)
			}
			w.ring.written = w.ring.count
		}
	}

	return n, nil
}

// Sync flushes the file.
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the file.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// trim replaces the file with the kept lines.
func (w *FileWriter) trim() error {
	temp, err := os.CreateTemp(filepath.Dir(w.path), "trim-*.log")
	if err != nil {
		return err
	}

	content := strings.Join(w.ring.snapshot(), "\n") + "\n"
	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return err
	}

	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return err
	}

	w.file.Close()

	renameErr := os.Rename(temp.Name(), w.path)
	if renameErr != nil {
		os.Remove(temp.Name())
	}

	// Reopen even when the rename failed so later writes still land
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.file = file

	return renameErr
}
