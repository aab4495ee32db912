// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package testutil

import (
	"archive/zip"
	"bytes"
	"sort"
)

// BuildZip returns an in-memory zip archive holding the given entries.
// Entries are written in sorted name order so identical input produces
// identical bytes.
func BuildZip(entries map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}

	sort.Strings(names)

	var buf bytes.Buffer

	writer := zip.NewWriter(&buf)

	for _, name := range names {
		entry, err := writer.Create(name)
		if err != nil {
			return nil, err
		}

		if _, err := entry.Write(entries[name]); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
