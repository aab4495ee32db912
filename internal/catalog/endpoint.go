// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"context"
	"fmt"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// endpointSource queries the structured listing endpoints. Several
// paths are probed because the catalog has moved its listing around;
// the first parseable response wins.
type endpointSource struct {
	client  domain.NetworkClient
	baseURL string
	siteURL string
}

func (s *endpointSource) Name() string {
	return "api"
}

func (s *endpointSource) Identifiers(ctx context.Context) ([]domain.Identifier, error) {
	endpoints := []string{
		s.baseURL + "/fonts",
		s.baseURL + "/fonts/list",
		s.siteURL + "/api/fonts",
	}

	var lastErr error

	for _, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.client.Get(ctx, endpoint)
		if err != nil {
			lastErr = err

			continue
		}

		if ids := parseListing(body); len(ids) > 0 {
			return ids, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("listing endpoints unreachable: %w", lastErr)
	}

	return nil, nil
}
