// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package fetcher downloads font archives under a concurrency bound
// with per-worker politeness delays and resume-by-skip against the
// archive cache.
package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fontgrab/fontgrab/internal/catalog"
	"github.com/fontgrab/fontgrab/internal/domain"
)

// Defaults for the politeness bound against the remote service.
const (
	DefaultConcurrency = 3
	DefaultDelay       = time.Second
)

// Options configures a Fetcher.
type Options struct {
	// BaseURL is the catalog API root; empty means catalog.DefaultBaseURL.
	BaseURL string

	// Concurrency caps in-flight downloads; zero or negative means
	// DefaultConcurrency.
	Concurrency int

	// Delay is how long a worker slot rests after a successful download
	// before accepting its next identifier. Zero means no delay;
	// negative means DefaultDelay.
	Delay time.Duration

	// Progress receives per-identifier events; nil disables reporting.
	Progress domain.ProgressFunc
}

// Fetcher downloads archives for identifiers through a fixed-size
// worker pool.
type Fetcher struct {
	client      domain.NetworkClient
	store       *Store
	baseURL     string
	concurrency int
	delay       time.Duration
	progress    domain.ProgressFunc
}

// New creates a Fetcher over the given client and archive store.
func New(client domain.NetworkClient, store *Store, opts Options) *Fetcher {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = catalog.DefaultBaseURL
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	delay := opts.Delay
	if delay < 0 {
		delay = DefaultDelay
	}

	return &Fetcher{
		client:      client,
		store:       store,
		baseURL:     baseURL,
		concurrency: concurrency,
		delay:       delay,
		progress:    opts.Progress,
	}
}

// FetchAll processes every identifier and returns an outcome per
// identifier that was started. No more than the configured number of
// downloads is ever in flight. On cancellation the map holds the units
// that completed; the rest were never started.
func (f *Fetcher) FetchAll(ctx context.Context, ids []domain.Identifier) (map[domain.Identifier]domain.Outcome, error) {
	results := make(map[domain.Identifier]domain.Outcome, len(ids))

	var mu sync.Mutex

	record := func(id domain.Identifier, outcome domain.Outcome) {
		mu.Lock()
		results[id] = outcome
		mu.Unlock()
	}

	queue := make(chan domain.Identifier)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(queue)

		for _, id := range ids {
			select {
			case queue <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	for range f.concurrency {
		group.Go(func() error {
			for id := range queue {
				outcome := f.fetchOne(ctx, id)
				if ctx.Err() != nil && outcome.Failed() {
					// Interrupted mid-download: the unit was not
					// processed, so it gets no outcome.
					return ctx.Err()
				}

				record(id, outcome)
				f.emit(id, outcome)

				// Politeness delay applies to this worker slot only,
				// and only after a download actually happened.
				if outcome.Kind == domain.OutcomeSuccess && f.delay > 0 {
					select {
					case <-time.After(f.delay):
					case <-ctx.Done():
						return ctx.Err()
					}
				}

				if err := ctx.Err(); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
	}

	return results, nil
}

// fetchOne downloads a single identifier's archive. A cached archive is
// skipped without any network call; a failed download records the HTTP
// status or transport error as the reason. No retry within a run.
func (f *Fetcher) fetchOne(ctx context.Context, id domain.Identifier) domain.Outcome {
	if f.store.IsComplete(id) {
		return domain.Skip()
	}

	if err := f.store.EnsureLayout(id); err != nil {
		return domain.FailErr(err)
	}

	url := catalog.DownloadURL(f.baseURL, id)
	if err := f.client.DownloadFile(ctx, url, f.store.ArchivePath(id)); err != nil {
		return domain.FailErr(err)
	}

	return domain.Succeed()
}

func (f *Fetcher) emit(id domain.Identifier, outcome domain.Outcome) {
	if f.progress == nil {
		return
	}

	f.progress(domain.ProgressEvent{
		Stage:      domain.StageFetch,
		Identifier: id,
		Outcome:    &outcome,
	})
}
