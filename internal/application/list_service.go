// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fontgrab/fontgrab/internal/catalog"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/fetcher"
)

// ListService enumerates known identifiers with their cache and
// install status. Known means: recorded in the manifest of a previous
// discovery, or present in the archive cache.
type ListService struct {
	fileManager domain.FileManager
	store       *fetcher.Store
	userFontDir string
}

// NewListService creates a ListService over the output root and the
// user font directory used for the installed heuristic.
func NewListService(fileManager domain.FileManager, outputDir, userFontDir string) *ListService {
	return &ListService{
		fileManager: fileManager,
		store:       fetcher.NewStore(fileManager, outputDir),
		userFontDir: userFontDir,
	}
}

// List merges the manifest and the archive cache into one status table.
func (s *ListService) List(ctx context.Context) (*domain.ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	known := make(map[domain.Identifier]struct{})

	manifest, err := catalog.ReadManifest(s.fileManager, s.store.Root())
	if err == nil && manifest != nil {
		for _, id := range manifest.Fonts {
			known[id] = struct{}{}
		}
	}

	if cached, err := s.store.Cached(); err == nil {
		for _, id := range cached {
			known[id] = struct{}{}
		}
	}

	installedNames := s.installedFontNames()

	result := &domain.ListResult{
		Entries:   make([]domain.ListEntry, 0, len(known)),
		Timestamp: time.Now(),
	}

	for id := range known {
		entry := domain.ListEntry{
			Identifier: id,
			Cached:     s.store.IsComplete(id),
			Installed:  hasInstalledFile(id, installedNames),
		}
		if entry.Cached {
			entry.CacheSize = s.store.ArchiveSize(id)
		}

		result.Entries = append(result.Entries, entry)
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Identifier < result.Entries[j].Identifier
	})

	result.Total = len(result.Entries)

	return result, nil
}

// installedFontNames returns the normalized, hyphen-free base names of
// every font file in the user font directory.
func (s *ListService) installedFontNames() []string {
	if s.userFontDir == "" {
		return nil
	}

	files, err := s.fileManager.ListFiles(s.userFontDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(files))

	for _, file := range files {
		font := domain.FontFile{Name: file}
		norm := string(domain.NormalizeIdentifier(font.DisplayName()))
		names = append(names, strings.ReplaceAll(norm, "-", ""))
	}

	return names
}

// hasInstalledFile reports whether any installed font file belongs to
// the identifier's family. File names drop the hyphens identifiers
// carry ("CabinetGrotesk-Medium.ttf" vs "cabinet-grotesk"), so both
// sides are compared hyphen-free.
func hasInstalledFile(id domain.Identifier, installed []string) bool {
	family := strings.ReplaceAll(string(id), "-", "")
	if family == "" {
		return false
	}

	for _, name := range installed {
		if strings.HasPrefix(name, family) {
			return true
		}
	}

	return false
}
