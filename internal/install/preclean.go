// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install

import (
	"fmt"
	"path/filepath"

	"github.com/fontgrab/fontgrab/internal/archive"
	"github.com/fontgrab/fontgrab/internal/domain"
)

// PreClean removes existing font files from a font directory so a
// fresh install starts from a clean slate. Only files with font
// extensions are removed; anything else in the directory is left
// alone. Returns the number of files removed.
func PreClean(fileManager domain.FileManager, dir string) (int, error) {
	if dir == "" || !fileManager.FileExists(dir) {
		return 0, nil
	}

	names, err := fileManager.ListFiles(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInstall, err)
	}

	removed := 0

	for _, name := range names {
		if !archive.IsFontFile(name, true) {
			continue
		}

		if err := fileManager.RemoveFile(filepath.Join(dir, name)); err != nil {
			return removed, fmt.Errorf("%w: %w", domain.ErrInstall, err)
		}

		removed++
	}

	return removed, nil
}
