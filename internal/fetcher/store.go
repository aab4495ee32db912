// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package fetcher

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// ArchiveExt is the archive format the catalog serves.
const ArchiveExt = ".zip"

// fontsSubdir is the directory under the output root holding one
// subdirectory per identifier.
const fontsSubdir = "fonts"

// Store maps identifiers to archive cache paths under one output root:
// <root>/fonts/<identifier>/<identifier>.zip. An archive that exists
// with non-zero size counts as complete and is never re-fetched.
type Store struct {
	fileManager domain.FileManager
	root        string
}

// NewStore creates a Store rooted at outputRoot.
func NewStore(fileManager domain.FileManager, outputRoot string) *Store {
	return &Store{
		fileManager: fileManager,
		root:        outputRoot,
	}
}

// Root returns the output root directory.
func (s *Store) Root() string {
	return s.root
}

// FontsDir returns the directory holding all identifier subdirectories.
func (s *Store) FontsDir() string {
	return filepath.Join(s.root, fontsSubdir)
}

// Dir returns the directory for one identifier's archive.
func (s *Store) Dir(id domain.Identifier) string {
	return filepath.Join(s.root, fontsSubdir, string(id))
}

// ArchivePath returns the deterministic archive path for an identifier.
func (s *Store) ArchivePath(id domain.Identifier) string {
	return filepath.Join(s.Dir(id), string(id)+ArchiveExt)
}

// IsComplete reports whether the identifier's archive already exists
// with non-zero size.
func (s *Store) IsComplete(id domain.Identifier) bool {
	path := s.ArchivePath(id)
	if !s.fileManager.FileExists(path) {
		return false
	}

	size, err := s.fileManager.FileSize(path)

	return err == nil && size > 0
}

// ArchiveSize returns the cached archive's size, or zero when absent.
func (s *Store) ArchiveSize(id domain.Identifier) int64 {
	size, err := s.fileManager.FileSize(s.ArchivePath(id))
	if err != nil {
		return 0
	}

	return size
}

// EnsureLayout creates the identifier's archive directory.
func (s *Store) EnsureLayout(id domain.Identifier) error {
	if err := s.fileManager.EnsureDir(s.Dir(id)); err != nil {
		return fmt.Errorf("creating archive dir for %s: %w", id, err)
	}

	return nil
}

// Cached returns the identifiers with complete archives in the store,
// sorted for stable listings.
func (s *Store) Cached() ([]domain.Identifier, error) {
	dirs, err := s.fileManager.ListDirs(s.FontsDir())
	if err != nil {
		return nil, fmt.Errorf("listing archive cache: %w", err)
	}

	ids := make([]domain.Identifier, 0, len(dirs))

	for _, dir := range dirs {
		id := domain.Identifier(dir)
		if s.IsComplete(id) {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
