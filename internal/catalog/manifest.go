// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// ManifestFileName is the metadata record written under the output root.
const ManifestFileName = "font-list.json"

// Manifest records what one run discovered: the identifier list, which
// source produced it, and when.
type Manifest struct {
	Fonts         []domain.Identifier `json:"fonts"`
	TotalCount    int                 `json:"total_count"`
	Source        string              `json:"source"`
	DiscoveryTime time.Time           `json:"discovery_time"`
}

// NewManifest builds a manifest from a discovery result.
func NewManifest(result *Result) Manifest {
	return Manifest{
		Fonts:         result.Identifiers,
		TotalCount:    len(result.Identifiers),
		Source:        result.Source,
		DiscoveryTime: time.Now(),
	}
}

// WriteManifest persists the manifest under the output root.
func WriteManifest(fm domain.FileManager, outputRoot string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	path := filepath.Join(outputRoot, ManifestFileName)
	if err := fm.WriteFile(path, data); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}

	return nil
}

// ReadManifest loads a previously written manifest, or nil if none exists.
func ReadManifest(fm domain.FileManager, outputRoot string) (*Manifest, error) {
	path := filepath.Join(outputRoot, ManifestFileName)
	if !fm.FileExists(path) {
		return nil, nil
	}

	data, err := fm.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	return &manifest, nil
}
