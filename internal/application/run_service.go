// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application wires the acquisition pipeline: discovery,
// fetching, extraction, and installation, aggregated into run reports.
package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fontgrab/fontgrab/internal/archive"
	"github.com/fontgrab/fontgrab/internal/catalog"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/fetcher"
	"github.com/fontgrab/fontgrab/internal/install"
)

// ExtractedDirName is the tree under the output root that holds
// unpacked font files for manual installation.
const ExtractedDirName = "extracted-fonts"

// Options tunes one pipeline run.
type Options struct {
	// OutputDir is the archive cache root.
	OutputDir string

	// BaseURL and SiteURL point at the catalog; empty means the
	// Fontshare defaults.
	BaseURL string
	SiteURL string

	// Concurrency and Delay bound the fetch pool. Zero concurrency
	// means the fetcher default; zero delay means no politeness pause.
	Concurrency int
	Delay       time.Duration

	// WebFonts extracts woff/woff2/eot variants alongside ttf/otf.
	WebFonts bool

	// FetchOnly stops the pipeline after the fetch phase.
	FetchOnly bool

	// PreClean removes existing font files from the user font directory
	// before installing. The caller is responsible for confirmation.
	PreClean bool
}

// Dependencies are the ports the pipeline drives. Strategies and
// Targets default to the current platform's when nil.
type Dependencies struct {
	Client      domain.NetworkClient
	FileManager domain.FileManager
	Privilege   domain.PrivilegeChecker
	Notifier    domain.CacheNotifier
	Output      domain.OutputPort
	Progress    domain.ProgressFunc
	Strategies  []domain.InstallStrategy
	Targets     *install.Targets
}

// RunService orchestrates discovery, fetch, extraction, and install,
// recording exactly one outcome per identifier that was fully
// processed.
type RunService struct {
	catalog     *catalog.Service
	fetcher     *fetcher.Fetcher
	store       *fetcher.Store
	extractor   *archive.Extractor
	chain       *install.Chain
	notifier    domain.CacheNotifier
	fileManager domain.FileManager
	output      domain.OutputPort
	progress    domain.ProgressFunc
	targets     install.Targets
	opts        Options
}

// NewRunService creates a RunService over the given ports.
func NewRunService(deps Dependencies, opts Options) *RunService {
	store := fetcher.NewStore(deps.FileManager, opts.OutputDir)

	targets := install.ResolveTargets()
	if deps.Targets != nil {
		targets = *deps.Targets
	}

	strategies := deps.Strategies
	if strategies == nil {
		strategies = install.PlatformStrategies(deps.FileManager, targets)
	}

	return &RunService{
		catalog: catalog.NewService(deps.Client, deps.Output, catalog.Options{
			BaseURL: opts.BaseURL,
			SiteURL: opts.SiteURL,
		}),
		fetcher: fetcher.New(deps.Client, store, fetcher.Options{
			BaseURL:     opts.BaseURL,
			Concurrency: opts.Concurrency,
			Delay:       opts.Delay,
			Progress:    deps.Progress,
		}),
		store:       store,
		extractor:   archive.NewExtractor(deps.FileManager, opts.WebFonts),
		chain:       install.NewChain(deps.Privilege, strategies...),
		notifier:    deps.Notifier,
		fileManager: deps.FileManager,
		output:      deps.Output,
		progress:    deps.Progress,
		targets:     targets,
		opts:        opts,
	}
}

// Run executes the full pipeline. Per-identifier failures are captured
// in the report; only setup failures (output directory, no install
// target, exhausted discovery) and interruption return an error.
func (s *RunService) Run(ctx context.Context) (*domain.Report, error) {
	start := time.Now()

	if !s.opts.FetchOnly && len(s.chain.Strategies()) == 0 {
		return nil, domain.ErrNoInstallTarget
	}

	if err := s.fileManager.EnsureDir(s.store.FontsDir()); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOutputDir, err)
	}

	result, err := s.catalog.Discover(ctx)
	if err != nil {
		return nil, err
	}

	s.emit(domain.ProgressEvent{
		Stage:   domain.StageDiscover,
		Message: fmt.Sprintf("%d fonts via %s", len(result.Identifiers), result.Source),
		Count:   len(result.Identifiers),
	})

	if err := catalog.WriteManifest(s.fileManager, s.store.Root(), catalog.NewManifest(result)); err != nil {
		s.infof("manifest not written: %v", err)
	}

	if s.opts.PreClean && !s.opts.FetchOnly {
		removed, err := install.PreClean(s.fileManager, s.targets.User.Dir)
		if err != nil {
			s.infof("pre-clean incomplete: %v", err)
		} else if removed > 0 {
			s.infof("pre-clean removed %d font files from %s", removed, s.targets.User.Dir)
		}
	}

	outcomes, fetchErr := s.fetcher.FetchAll(ctx, result.Identifiers)

	var installErr error
	if !s.opts.FetchOnly && fetchErr == nil {
		installErr = s.installPhase(ctx, outcomes)
	}

	report := domain.NewReport()
	report.Source = result.Source
	report.RecordAll(outcomes)
	report.Duration = time.Since(start)

	if fetchErr != nil {
		return report, fetchErr
	}

	return report, installErr
}

// installPhase extracts and installs every identifier whose archive is
// available, merging the result into the outcome map. A fetch Skipped
// that installs cleanly stays Skipped; any stage failure turns the
// identifier Failed. Interrupted identifiers are dropped from the map:
// they were not fully processed.
func (s *RunService) installPhase(ctx context.Context, outcomes map[domain.Identifier]domain.Outcome) error {
	ids := sortedIdentifiers(outcomes)

	for i, id := range ids {
		if outcomes[id].Failed() {
			continue
		}

		merged, err := s.installOne(ctx, id, outcomes[id])
		if err != nil {
			for _, rest := range ids[i:] {
				if !outcomes[rest].Failed() {
					delete(outcomes, rest)
				}
			}

			return err
		}

		outcomes[id] = merged
	}

	if err := s.notifier.NotifyFontsChanged(ctx); err != nil {
		s.infof("font cache refresh failed: %v", err)
	}

	return nil
}

// installOne extracts one identifier's archive and installs its font
// files. The returned outcome keeps the fetch kind on success; the
// error return is reserved for interruption.
func (s *RunService) installOne(ctx context.Context, id domain.Identifier, fetched domain.Outcome) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return fetched, fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
	}

	fonts, err := s.extractor.Extract(s.store.ArchivePath(id))
	if err != nil {
		outcome := domain.FailErr(err)
		s.emit(domain.ProgressEvent{Stage: domain.StageExtract, Identifier: id, Outcome: &outcome})

		return outcome, nil
	}

	s.emit(domain.ProgressEvent{
		Stage:      domain.StageExtract,
		Identifier: id,
		Message:    fmt.Sprintf("%d font files", len(fonts)),
	})

	if err := s.chain.InstallAll(ctx, fonts); err != nil {
		if errors.Is(err, domain.ErrInterrupted) {
			return fetched, err
		}

		outcome := domain.FailErr(err)
		s.emit(domain.ProgressEvent{Stage: domain.StageInstall, Identifier: id, Outcome: &outcome})

		return outcome, nil
	}

	s.emit(domain.ProgressEvent{Stage: domain.StageInstall, Identifier: id, Outcome: &fetched})

	return fetched, nil
}

// InstallCached installs fonts from already-cached archives without
// touching the network. With no identifiers named, every complete
// archive in the store is processed; named identifiers without a
// cached archive are Failed("archive not cached").
func (s *RunService) InstallCached(ctx context.Context, ids []domain.Identifier) (*domain.Report, error) {
	start := time.Now()

	if len(s.chain.Strategies()) == 0 {
		return nil, domain.ErrNoInstallTarget
	}

	if len(ids) == 0 {
		cached, err := s.store.Cached()
		if err == nil {
			ids = cached
		}
	}

	outcomes := make(map[domain.Identifier]domain.Outcome, len(ids))

	var runErr error

	for _, id := range ids {
		id = domain.NormalizeIdentifier(string(id))

		if !s.store.IsComplete(id) {
			outcomes[id] = domain.Fail("archive not cached")

			continue
		}

		merged, err := s.installOne(ctx, id, domain.Succeed())
		if err != nil {
			runErr = err

			break
		}

		outcomes[id] = merged
	}

	if runErr == nil && len(ids) > 0 {
		if err := s.notifier.NotifyFontsChanged(ctx); err != nil {
			s.infof("font cache refresh failed: %v", err)
		}
	}

	report := domain.NewReport()
	report.RecordAll(outcomes)
	report.Duration = time.Since(start)

	return report, runErr
}

// ExtractResult is what ExtractCached unpacked and where.
type ExtractResult struct {
	Report *domain.Report                 `json:"report"`
	Root   string                         `json:"root"`
	Files  map[domain.Identifier][]string `json:"files,omitempty"`
}

// ExtractCached unpacks cached archives into
// <output-root>/extracted-fonts/<identifier>/ for manual installation.
func (s *RunService) ExtractCached(ctx context.Context, ids []domain.Identifier) (*ExtractResult, error) {
	start := time.Now()

	if len(ids) == 0 {
		cached, err := s.store.Cached()
		if err == nil {
			ids = cached
		}
	}

	root := filepath.Join(s.store.Root(), ExtractedDirName)
	outcomes := make(map[domain.Identifier]domain.Outcome, len(ids))
	files := make(map[domain.Identifier][]string)

	for _, id := range ids {
		id = domain.NormalizeIdentifier(string(id))

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInterrupted, err)
		}

		if !s.store.IsComplete(id) {
			outcomes[id] = domain.Fail("archive not cached")

			continue
		}

		names, err := s.extractor.ExtractTo(s.store.ArchivePath(id), filepath.Join(root, string(id)))
		if err != nil {
			outcomes[id] = domain.FailErr(err)

			continue
		}

		files[id] = names
		outcomes[id] = domain.Succeed()

		s.emit(domain.ProgressEvent{
			Stage:      domain.StageExtract,
			Identifier: id,
			Message:    fmt.Sprintf("%d font files", len(names)),
		})
	}

	report := domain.NewReport()
	report.RecordAll(outcomes)
	report.Duration = time.Since(start)

	return &ExtractResult{Report: report, Root: root, Files: files}, nil
}

// PlanEntry is one identifier's predicted action for a dry run.
type PlanEntry struct {
	Identifier domain.Identifier `json:"identifier"`
	Cached     bool              `json:"cached"`
}

// Plan is what a run would do: which identifiers are already cached
// and which would be fetched.
type Plan struct {
	Source  string      `json:"source"`
	Entries []PlanEntry `json:"entries"`
	ToFetch int         `json:"to_fetch"`
	Cached  int         `json:"cached"`
}

// DryRun discovers the identifier list and reports what a run would
// fetch, without writing anything or downloading archives.
func (s *RunService) DryRun(ctx context.Context) (*Plan, error) {
	result, err := s.catalog.Discover(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Source:  result.Source,
		Entries: make([]PlanEntry, 0, len(result.Identifiers)),
	}

	for _, id := range result.Identifiers {
		cached := s.store.IsComplete(id)
		if cached {
			plan.Cached++
		} else {
			plan.ToFetch++
		}

		plan.Entries = append(plan.Entries, PlanEntry{Identifier: id, Cached: cached})
	}

	return plan, nil
}

func (s *RunService) emit(event domain.ProgressEvent) {
	if s.progress != nil {
		s.progress(event)
	}
}

func (s *RunService) infof(format string, args ...any) {
	if s.output != nil {
		_ = s.output.Info(fmt.Sprintf(format, args...))
	}
}

func sortedIdentifiers(outcomes map[domain.Identifier]domain.Outcome) []domain.Identifier {
	ids := make([]domain.Identifier, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
