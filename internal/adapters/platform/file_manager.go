// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform implements the filesystem and process ports.
package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fontgrab/fontgrab/internal/console"
)

// FileManager implements the FileManager port over the real filesystem.
type FileManager struct {
	verbose bool
}

// NewFileManager creates a new file manager.
func NewFileManager(verbose bool) *FileManager {
	return &FileManager{
		verbose: verbose,
	}
}

// FileExists checks if a file exists.
func (f *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}

// FileSize returns the size of a file in bytes.
func (f *FileManager) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}

	return info.Size(), nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func (f *FileManager) EnsureDir(path string) error {
	if f.verbose {
		console.DefaultOutput.Progressf("ensuring directory exists: %s", path)
	}

	// #nosec G301 - Standard directory permissions for application directories
	return os.MkdirAll(path, 0755)
}

// CopyFile copies a file from source to destination.
func (f *FileManager) CopyFile(src, dest string) error {
	if f.verbose {
		console.DefaultOutput.Progressf("copying file: %s -> %s", src, dest)
	}

	if err := f.EnsureDir(filepath.Dir(dest)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// #nosec G304 - File path comes from trusted application code
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}

	defer func() { _ = srcFile.Close() }()

	// #nosec G304 - File path comes from trusted application code
	destFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	defer func() { _ = destFile.Close() }()

	_, err = io.Copy(destFile, srcFile)
	if err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	return destFile.Sync()
}

// WriteFile writes data to a file.
func (f *FileManager) WriteFile(path string, data []byte) error {
	if f.verbose {
		console.DefaultOutput.Progressf("writing file: %s (%d bytes)", path, len(data))
	}

	if err := f.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// #nosec G306 - Standard file permissions for data files
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads data from a file.
func (f *FileManager) ReadFile(path string) ([]byte, error) {
	if f.verbose {
		console.DefaultOutput.Progressf("reading file: %s", path)
	}

	// #nosec G304 - File path comes from trusted application code
	return os.ReadFile(path)
}

// RemoveFile removes a file.
func (f *FileManager) RemoveFile(path string) error {
	if f.verbose {
		console.DefaultOutput.Progressf("removing file: %s", path)
	}

	return os.Remove(path)
}

// ListFiles returns the names of regular files directly inside dir.
func (f *FileManager) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// ListDirs returns the names of subdirectories directly inside dir.
func (f *FileManager) ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}
