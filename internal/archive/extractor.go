// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package archive unpacks downloaded font archives, selecting entries
// by extension and flattening any internal directory layout.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// outlineExtensions are always accepted.
var outlineExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
}

// webExtensions are accepted only when web variants are enabled.
var webExtensions = map[string]bool{
	".woff":  true,
	".woff2": true,
	".eot":   true,
}

// Extractor yields the font files inside an archive.
type Extractor struct {
	fileManager domain.FileManager
	webFonts    bool
}

// NewExtractor creates an Extractor. With webFonts set, the common
// web-font formats are extracted alongside the outline formats.
func NewExtractor(fileManager domain.FileManager, webFonts bool) *Extractor {
	return &Extractor{
		fileManager: fileManager,
		webFonts:    webFonts,
	}
}

// IsFontFile reports whether the name carries an accepted font
// extension. Web-font variants count only when webFonts is set.
func IsFontFile(name string, webFonts bool) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if outlineExtensions[ext] {
		return true
	}

	return webFonts && webExtensions[ext]
}

// Accepts reports whether the entry name carries an accepted font
// extension.
func (e *Extractor) Accepts(name string) bool {
	return IsFontFile(name, e.webFonts)
}

// Extract opens the archive at archivePath and returns its font files.
// Entry names are reduced to their base name: embedded directory paths
// never reach the filesystem. A corrupt archive fails the whole
// identifier, as does an archive with zero matching entries.
func (e *Extractor) Extract(archivePath string) ([]domain.FontFile, error) {
	data, err := e.fileManager.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrArchive, archivePath, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrArchive, archivePath, err)
	}

	var fonts []domain.FontFile

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() || !e.Accepts(entry.Name) {
			continue
		}

		content, err := readEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s in %s: %w", domain.ErrArchive, entry.Name, archivePath, err)
		}

		fonts = append(fonts, domain.FontFile{
			Name: path.Base(entry.Name),
			Data: content,
		})
	}

	if len(fonts) == 0 {
		return nil, domain.ErrNoFontFiles
	}

	return fonts, nil
}

// ExtractTo unpacks the archive's font files into destDir and returns
// the written file names, for manual installation flows.
func (e *Extractor) ExtractTo(archivePath, destDir string) ([]string, error) {
	fonts, err := e.Extract(archivePath)
	if err != nil {
		return nil, err
	}

	if err := e.fileManager.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	names := make([]string, 0, len(fonts))

	for _, font := range fonts {
		destPath := filepath.Join(destDir, font.Name)
		if err := e.fileManager.WriteFile(destPath, font.Data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", destPath, err)
		}

		names = append(names, font.Name)
	}

	return names, nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = rc.Close()
	}()

	return io.ReadAll(rc)
}
