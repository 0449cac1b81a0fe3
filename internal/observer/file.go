package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/iamruinous/pica-emulator/internal/config"
)

// File appends events to a newline-delimited JSON log file, rotating
// it once it crosses a configured size.
type File struct {
	path       string
	enabled    bool
	rotate     bool
	maxSizeMB  int
	maxBackups int

	mu   sync.Mutex
	file *os.File
}

// NewFile creates a new file sink.
func NewFile(cfg config.ObserverConfig) (*File, error) {
	path := "./captures/events.log"
	if p, ok := cfg.Options["path"].(string); ok {
		path = p
	}

	rotate := true
	if r, ok := cfg.Options["rotate"].(bool); ok {
		rotate = r
	}

	maxSizeMB := 100
	switch m := cfg.Options["max_size_mb"].(type) {
	case int:
		maxSizeMB = m
	case float64:
		maxSizeMB = int(m)
	}

	maxBackups := 5
	switch m := cfg.Options["max_backups"].(type) {
	case int:
		maxBackups = m
	case float64:
		maxBackups = int(m)
	}

	f := &File{
		path:       path,
		enabled:    cfg.Enabled,
		rotate:     rotate,
		maxSizeMB:  maxSizeMB,
		maxBackups: maxBackups,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create event log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	f.file = file

	return f, nil
}

// Send writes an event as one JSON line, rotating first if needed.
func (f *File) Send(_ context.Context, evt *PicaEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.rotate {
		if err := f.checkRotation(); err != nil {
			return err
		}
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = f.file.Write(append(data, '\n'))
	return err
}

func (f *File) checkRotation() error {
	info, err := f.file.Stat()
	if err != nil {
		return err
	}

	maxBytes := int64(f.maxSizeMB) * 1024 * 1024
	if info.Size() < maxBytes {
		return nil
	}

	_ = f.file.Close()

	for i := f.maxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", f.path, i)
		newPath := fmt.Sprintf("%s.%d", f.path, i+1)
		_ = os.Rename(oldPath, newPath)
	}
	_ = os.Rename(f.path, f.path+".1")

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	f.file = file
	return nil
}

// Close closes the file sink.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Name returns the sink identifier.
func (f *File) Name() string { return fmt.Sprintf("file:%s", f.path) }

// Enabled returns whether this sink is enabled.
func (f *File) Enabled() bool { return f.enabled }
