// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// probeSource checks a static candidate list against the download
// endpoint with metadata-only requests, keeping candidates the catalog
// confirms. It spends one HEAD request per candidate, so the list is
// expected to stay small.
type probeSource struct {
	client     domain.NetworkClient
	baseURL    string
	candidates []domain.Identifier
}

func (s *probeSource) Name() string {
	return "probe"
}

func (s *probeSource) Identifiers(ctx context.Context) ([]domain.Identifier, error) {
	available := make([]domain.Identifier, 0, len(s.candidates))

	for _, candidate := range s.candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, err := s.client.Head(ctx, DownloadURL(s.baseURL, candidate))
		if err != nil {
			continue
		}

		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			available = append(available, candidate)
		}
	}

	return available, nil
}

// DownloadURL builds the archive download URL for one identifier.
func DownloadURL(baseURL string, id domain.Identifier) string {
	return fmt.Sprintf("%s/fonts/download/%s", baseURL, id)
}
