// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// copyFont writes the font's bytes into dir under its base name,
// overwriting any existing file of the same name. Returns the
// destination path.
func copyFont(fileManager domain.FileManager, dir string, font domain.FontFile) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: no target directory", domain.ErrNoInstallTarget)
	}

	if err := fileManager.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInstall, err)
	}

	dest := filepath.Join(dir, font.Name)
	if err := fileManager.WriteFile(dest, font.Data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInstall, err)
	}

	return dest, nil
}

// dirCopyStrategy installs by copying into a font directory. On Linux
// and macOS the font subsystem picks files up from the directory
// itself, so the copy is the whole registration.
type dirCopyStrategy struct {
	name        string
	scope       domain.Scope
	privileged  bool
	dir         string
	fileManager domain.FileManager
}

// NewDirStrategy returns a strategy that copies font files into the
// target directory.
func NewDirStrategy(name string, target domain.InstallTarget, privileged bool, fileManager domain.FileManager) domain.InstallStrategy {
	return &dirCopyStrategy{
		name:        name,
		scope:       target.Scope,
		privileged:  privileged,
		dir:         target.Dir,
		fileManager: fileManager,
	}
}

// Name returns the strategy name.
func (s *dirCopyStrategy) Name() string {
	return s.name
}

// Scope returns the installation breadth.
func (s *dirCopyStrategy) Scope() domain.Scope {
	return s.scope
}

// RequiresPrivilege reports whether the target directory needs elevation.
func (s *dirCopyStrategy) RequiresPrivilege() bool {
	return s.privileged
}

// Install copies the font file into the target directory.
func (s *dirCopyStrategy) Install(ctx context.Context, font domain.FontFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := copyFont(s.fileManager, s.dir, font)

	return err
}
