package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	readerout "readtrack/internal/modules/reader/port/out"
)

type FileNoteSink struct {
	defaultDir string
}

func NewFileNoteSink(defaultDir string) readerout.NoteSink {
	if defaultDir == "" {
		defaultDir = "."
	}
	return &FileNoteSink{defaultDir: defaultDir}
}

// Write replaces any previous export atomically.
func (s *FileNoteSink) Write(_ context.Context, dir, name string, content []byte) (string, error) {
	if dir == "" {
		dir = s.defaultDir
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export file name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("create temp export: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
