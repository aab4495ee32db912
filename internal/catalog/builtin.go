// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"context"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// builtinSource is the last resort: a fixed list of families that have
// been on the catalog for years. It never fails and never comes back
// empty, so the chain always terminates with work to do.
type builtinSource struct {
	identifiers []domain.Identifier
}

func (s *builtinSource) Name() string {
	return "builtin"
}

func (s *builtinSource) Identifiers(_ context.Context) ([]domain.Identifier, error) {
	out := make([]domain.Identifier, len(s.identifiers))
	copy(out, s.identifiers)

	return out, nil
}

// BuiltinIdentifiers returns the well-known catalog families used when
// no candidate list is configured.
func BuiltinIdentifiers() []domain.Identifier {
	return []domain.Identifier{
		"satoshi", "cabinet-grotesk", "clash-display", "general-sans",
		"switzer", "clash-grotesk", "supreme", "author", "zodiak",
		"eiko", "fraktion", "sohne", "chillax",
	}
}
