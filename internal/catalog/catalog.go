// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package catalog resolves the list of font identifiers to process by
// trying several discovery sources in a fixed priority order.
package catalog

import (
	"context"
	"fmt"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// DefaultBaseURL is the catalog API root.
const DefaultBaseURL = "https://api.fontshare.com/v2"

// DefaultSiteURL is the catalog web page scanned when the API yields nothing.
const DefaultSiteURL = "https://www.fontshare.com"

// Source is one discovery strategy. A Source that finds nothing returns
// an empty slice without an error; errors mean the source itself broke
// (network, parse) and the next source should be tried.
type Source interface {
	// Name identifies the source in logs and the run manifest.
	Name() string

	// Identifiers returns the font identifiers this source knows about.
	Identifiers(ctx context.Context) ([]domain.Identifier, error)
}

// Result is a successful discovery: the normalized, deduplicated
// identifier list and the name of the source that produced it.
type Result struct {
	Identifiers []domain.Identifier
	Source      string
}

// Options configures the default source chain.
type Options struct {
	// BaseURL is the catalog API root; empty means DefaultBaseURL.
	BaseURL string

	// SiteURL is the catalog web page; empty means DefaultSiteURL.
	SiteURL string

	// Candidates is the static identifier list used by the existence
	// probe and as the final fallback; empty means the built-in list.
	Candidates []domain.Identifier
}

func (o Options) baseURL() string {
	if o.BaseURL == "" {
		return DefaultBaseURL
	}

	return o.BaseURL
}

func (o Options) siteURL() string {
	if o.SiteURL == "" {
		return DefaultSiteURL
	}

	return o.SiteURL
}

func (o Options) candidates() []domain.Identifier {
	if len(o.Candidates) == 0 {
		return BuiltinIdentifiers()
	}

	return o.Candidates
}

// Service runs the discovery source chain.
type Service struct {
	sources []Source
	output  domain.OutputPort
}

// NewService creates a Service with the standard chain: structured
// endpoint, web page scan, existence probe, built-in list.
func NewService(client domain.NetworkClient, output domain.OutputPort, opts Options) *Service {
	return &Service{
		sources: []Source{
			&endpointSource{client: client, baseURL: opts.baseURL(), siteURL: opts.siteURL()},
			&websiteSource{client: client, siteURL: opts.siteURL()},
			&probeSource{client: client, baseURL: opts.baseURL(), candidates: opts.candidates()},
			&builtinSource{identifiers: opts.candidates()},
		},
		output: output,
	}
}

// NewServiceWithSources creates a Service over an explicit source chain.
func NewServiceWithSources(output domain.OutputPort, sources ...Source) *Service {
	return &Service{sources: sources, output: output}
}

// Discover tries each source in order and returns the first non-empty
// identifier list, normalized and deduplicated case-insensitively.
// Source failures are logged and the next source is tried; only a fully
// exhausted chain is an error.
func (s *Service) Discover(ctx context.Context) (*Result, error) {
	for _, source := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
		}

		ids, err := source.Identifiers(ctx)
		if err != nil {
			s.infof("discovery source %s failed: %v", source.Name(), err)

			continue
		}

		ids = normalizeAll(ids)
		if len(ids) == 0 {
			s.infof("discovery source %s returned nothing", source.Name())

			continue
		}

		return &Result{Identifiers: ids, Source: source.Name()}, nil
	}

	return nil, domain.ErrDiscoveryExhausted
}

func (s *Service) infof(format string, args ...any) {
	if s.output != nil {
		_ = s.output.Info(fmt.Sprintf(format, args...))
	}
}

// normalizeAll normalizes every identifier, drops invalid ones, and
// removes case-insensitive duplicates while preserving order.
func normalizeAll(ids []domain.Identifier) []domain.Identifier {
	normalized := make([]domain.Identifier, 0, len(ids))

	for _, id := range ids {
		norm := domain.NormalizeIdentifier(string(id))
		if norm.IsValid() {
			normalized = append(normalized, norm)
		}
	}

	return domain.DedupeIdentifiers(normalized)
}
