// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Identifier names one font family in the remote catalog, normalized to
// lowercase with spaces replaced by hyphens (for example "Clash Display"
// becomes "clash-display").
type Identifier string

var (
	lowerCaser = cases.Lower(language.Und)
	foldCaser  = cases.Fold()
)

// NormalizeIdentifier converts a raw catalog name into canonical form:
// trimmed, lowercased, inner whitespace collapsed to single hyphens.
func NormalizeIdentifier(raw string) Identifier {
	name := strings.TrimSpace(raw)
	name = lowerCaser.String(name)
	name = strings.Join(strings.Fields(name), "-")

	return Identifier(name)
}

// IsValid reports whether the identifier is non-empty and safe to embed
// in URLs and filesystem paths.
func (i Identifier) IsValid() bool {
	s := string(i)
	if s == "" {
		return false
	}

	return !strings.ContainsAny(s, "/\\ ")
}

// String returns the identifier as a plain string.
func (i Identifier) String() string {
	return string(i)
}

// DedupeIdentifiers removes case-insensitive duplicates while preserving
// first-seen order. Input order is discovery-source-dependent and must
// survive downstream.
func DedupeIdentifiers(ids []Identifier) []Identifier {
	seen := make(map[string]struct{}, len(ids))
	out := make([]Identifier, 0, len(ids))

	for _, id := range ids {
		key := foldCaser.String(string(id))
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}

		out = append(out, id)
	}

	return out
}
