// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package testutil

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// ErrMemFileNotFound is returned by MemFileManager for missing paths.
var ErrMemFileNotFound = errors.New("mock file not found")

// MemFileManager implements the FileManager port in memory. It is safe
// for concurrent use, so fetch-pool tests can run against it directly.
type MemFileManager struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFileManager creates an empty in-memory file manager.
func NewMemFileManager() *MemFileManager {
	return &MemFileManager{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// SetFile seeds the content of a file.
func (f *MemFileManager) SetFile(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = content
}

// FileExists checks if a file or recorded directory exists.
func (f *MemFileManager) FileExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.files[path]; exists {
		return true
	}

	return f.dirs[path]
}

// FileSize returns the size of a file.
func (f *MemFileManager) FileSize(path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, exists := f.files[path]
	if !exists {
		return 0, ErrMemFileNotFound
	}

	return int64(len(content)), nil
}

// EnsureDir records the directory as existing.
func (f *MemFileManager) EnsureDir(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dirs[path] = true

	return nil
}

// CopyFile copies between in-memory files.
func (f *MemFileManager) CopyFile(src, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, exists := f.files[src]
	if !exists {
		return ErrMemFileNotFound
	}

	f.files[dest] = content

	return nil
}

// WriteFile writes to an in-memory file.
func (f *MemFileManager) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = data

	return nil
}

// ReadFile reads from an in-memory file.
func (f *MemFileManager) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, exists := f.files[path]
	if !exists {
		return nil, ErrMemFileNotFound
	}

	return content, nil
}

// RemoveFile removes an in-memory file.
func (f *MemFileManager) RemoveFile(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.files, path)

	return nil
}

// ListFiles returns base names of files directly inside dir.
func (f *MemFileManager) ListFiles(dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string

	prefix := dir + string(filepath.Separator)

	for path := range f.files {
		rest, found := strings.CutPrefix(path, prefix)
		if found && rest != "" && !strings.Contains(rest, string(filepath.Separator)) {
			names = append(names, rest)
		}
	}

	return names, nil
}

// ListDirs returns names of subdirectories directly inside dir, derived
// from both recorded directories and file paths.
func (f *MemFileManager) ListDirs(dir string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := dir + string(filepath.Separator)
	seen := make(map[string]bool)

	collect := func(path string) {
		rest, found := strings.CutPrefix(path, prefix)
		if !found || rest == "" {
			return
		}

		first, _, nested := strings.Cut(rest, string(filepath.Separator))
		if nested && first != "" {
			seen[first] = true
		}
	}

	for path := range f.files {
		collect(path)
	}

	for path := range f.dirs {
		rest, found := strings.CutPrefix(path, prefix)
		if found && rest != "" && !strings.Contains(rest, string(filepath.Separator)) {
			seen[rest] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	return names, nil
}
