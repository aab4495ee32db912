// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
)

// EnsureDir creates directory with parents if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755) //nolint:gosec
}

// SafeWriteFile writes file with automatic directory creation.
func SafeWriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644) //nolint:gosec
}
