// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/fontgrab/fontgrab/internal/domain"
)

var (
	// jsonIslandPattern finds array literals near a "fonts" marker in
	// page source, where the catalog embeds its listing data.
	jsonIslandPattern = regexp.MustCompile(`(?s)(?:fonts|FONTS).*?(\[.*?\])`)

	// hrefPattern captures the last path segment of link targets.
	hrefPattern = regexp.MustCompile(`href="[^"]*?/([a-z-]+)"`)
)

// websiteSource scans the catalog web page. It prefers embedded JSON
// listing data and falls back to harvesting link targets that look like
// font identifiers.
type websiteSource struct {
	client  domain.NetworkClient
	siteURL string
}

func (s *websiteSource) Name() string {
	return "website"
}

func (s *websiteSource) Identifiers(ctx context.Context) ([]domain.Identifier, error) {
	body, err := s.client.Get(ctx, s.siteURL)
	if err != nil {
		return nil, err
	}

	html := string(body)

	for _, match := range jsonIslandPattern.FindAllStringSubmatch(html, -1) {
		if ids := parseEntries([]byte(match[1])); len(ids) > 0 {
			return ids, nil
		}
	}

	return scanHrefs(html), nil
}

// scanHrefs extracts identifier-shaped path segments from links. A
// segment qualifies when it is longer than two characters, contains a
// hyphen, and is not a domain-style link.
func scanHrefs(html string) []domain.Identifier {
	var ids []domain.Identifier

	for _, match := range hrefPattern.FindAllStringSubmatch(html, -1) {
		name := match[1]
		if len(name) <= 2 || !strings.Contains(name, "-") || strings.HasPrefix(name, "www") {
			continue
		}

		ids = append(ids, domain.Identifier(name))
	}

	return ids
}
