// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	cliAdapter "github.com/fontgrab/fontgrab/internal/adapters/cli"
	"github.com/fontgrab/fontgrab/internal/adapters/network"
	platformAdapter "github.com/fontgrab/fontgrab/internal/adapters/platform"
	"github.com/fontgrab/fontgrab/internal/application"
	"github.com/fontgrab/fontgrab/internal/config"
	"github.com/fontgrab/fontgrab/internal/console"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/install"
	"github.com/fontgrab/fontgrab/internal/platform"
	"github.com/fontgrab/fontgrab/internal/tui"
)

// createRunCommand creates the full-pipeline command.
func (app *CLI) createRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Discover, fetch, and install the whole catalog",
		Description: `Runs the full pipeline: discover the catalog, download every archive
into the cache, extract the font files, and install them.

Already-cached archives are not downloaded again but still get
installed. Per-font failures are reported at the end and never abort
the run.

Examples:
  fontgrab run                          # Everything, default settings
  fontgrab run --concurrency 5 -o /tmp  # Faster, custom cache dir
  fontgrab run --dry-run                # Show the plan, touch nothing
  fontgrab run --pre-clean --yes        # Wipe user fonts first`,
		Flags: append(cacheFlags(),
			&cli.BoolFlag{
				Name:  "web-fonts",
				Usage: "also extract woff/woff2/eot variants",
			},
			&cli.BoolFlag{
				Name:  "pre-clean",
				Usage: "remove existing user fonts before installing (asks for confirmation)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "show what would be fetched without writing anything",
			},
		),
		Action: app.runRun,
	}
}

// createFetchCommand creates the acquisition-only command.
func (app *CLI) createFetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download archives into the cache without installing",
		Description: `Downloads every discovered archive into the cache and stops there.
Use 'fontgrab install' later to install from the cache.

Examples:
  fontgrab fetch                 # Fill the cache
  fontgrab fetch --delay 2s      # Gentler on the remote service`,
		Flags: append(cacheFlags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "show what would be fetched without writing anything",
			},
		),
		Action: app.runFetch,
	}
}

// createInstallCommand creates the cache-only install command.
func (app *CLI) createInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install fonts from already-cached archives",
		ArgsUsage: "[font...]",
		Description: `Installs font files from archives already in the cache, without any
network access. With no arguments every cached archive is processed;
named fonts that are not cached are reported as failed.

Examples:
  fontgrab install                   # Install everything cached
  fontgrab install satoshi zodiak    # Just these two`,
		Flags: []cli.Flag{
			outputDirFlag(),
			&cli.BoolFlag{
				Name:  "web-fonts",
				Usage: "also extract woff/woff2/eot variants",
			},
		},
		Action: app.runInstall,
	}
}

// createExtractCommand creates the manual-install extraction command.
func (app *CLI) createExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Unpack cached archives for manual installation",
		ArgsUsage: "[font...]",
		Description: `Extracts font files from cached archives into
<output-dir>/extracted-fonts/<font>/ so they can be installed by hand
or inspected. Nothing is installed.

Examples:
  fontgrab extract              # Unpack everything cached
  fontgrab extract satoshi      # Just one family`,
		Flags: []cli.Flag{
			outputDirFlag(),
			&cli.BoolFlag{
				Name:  "web-fonts",
				Usage: "also extract woff/woff2/eot variants",
			},
		},
		Action: app.runExtract,
	}
}

// createListCommand creates the status listing command.
func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "Show cache and install status for known fonts",
		Flags:  []cli.Flag{outputDirFlag()},
		Action: app.runList,
	}
}

// createDoctorCommand creates the environment diagnostics command.
func (app *CLI) createDoctorCommand() *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "Diagnose whether the environment can complete a run",
		Flags:  []cli.Flag{outputDirFlag()},
		Action: app.runDoctor,
	}
}

func outputDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output-dir",
		Aliases: []string{"o"},
		Usage:   "archive cache directory",
	}
}

// cacheFlags are the flags shared by the fetching commands.
func cacheFlags() []cli.Flag {
	return []cli.Flag{
		outputDirFlag(),
		&cli.IntFlag{
			Name:    "concurrency",
			Aliases: []string{"c"},
			Usage:   "maximum parallel downloads",
		},
		&cli.DurationFlag{
			Name:    "delay",
			Aliases: []string{"d"},
			Usage:   "pause per worker after each download",
		},
	}
}

// runRun handles the run command.
func (app *CLI) runRun(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	output := app.newOutput()

	if cmd.Bool("dry-run") {
		return app.runDryRun(ctx, output, opts)
	}

	if cmd.Bool("pre-clean") {
		confirmed, err := app.confirmPreClean(install.ResolveTargets().User.Dir)
		if err != nil {
			return err
		}

		if !confirmed {
			_ = output.Info("pre-clean skipped")
		}

		opts.PreClean = confirmed
	}

	return app.executePipeline(ctx, output, opts, "installed")
}

// runFetch handles the fetch command.
func (app *CLI) runFetch(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	opts.FetchOnly = true
	output := app.newOutput()

	if cmd.Bool("dry-run") {
		return app.runDryRun(ctx, output, opts)
	}

	return app.executePipeline(ctx, output, opts, "fetched")
}

// runInstall handles the install command.
func (app *CLI) runInstall(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	output := app.newOutput()
	service := application.NewRunService(app.newDependencies(output, app.progressPrinter(output)), opts)

	report, err := service.InstallCached(ctx, identifierArgs(cmd))
	if report != nil {
		app.renderReport(report, output, "installed")
	}

	if err != nil {
		return app.mapPipelineError(err)
	}

	return nil
}

// runExtract handles the extract command.
func (app *CLI) runExtract(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	output := app.newOutput()
	service := application.NewRunService(app.newDependencies(output, nil), opts)

	result, err := service.ExtractCached(ctx, identifierArgs(cmd))
	if err != nil {
		return app.mapPipelineError(err)
	}

	return app.renderExtract(result, output)
}

// runList handles the list command.
func (app *CLI) runList(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	output := app.newOutput()
	service := application.NewListService(
		platformAdapter.NewFileManager(app.verbose),
		opts.OutputDir,
		install.ResolveTargets().User.Dir,
	)

	result, err := service.List(ctx)
	if err != nil {
		return app.mapPipelineError(err)
	}

	return app.renderList(result, output)
}

// runDoctor handles the doctor command.
func (app *CLI) runDoctor(ctx context.Context, cmd *cli.Command) error {
	opts, err := app.pipelineOptions(cmd)
	if err != nil {
		return err
	}

	runner := platformAdapter.NewCommandRunner(app.verbose, false)
	service := application.NewDoctorService(
		platformAdapter.NewFileManager(app.verbose),
		runner,
		install.NewPrivilegeChecker(),
		network.NewHTTPClient(app.timeout),
		application.DoctorConfig{
			OutputDir:       opts.OutputDir,
			UserFontDir:     install.ResolveTargets().User.Dir,
			BaseURL:         opts.BaseURL,
			ProxyConfigured: platform.HasProxy(),
			ProxyURL:        platform.GetProxyForURL(opts.BaseURL),
		},
	)

	result := service.Diagnose(ctx)
	output := app.newOutput()

	if err := app.renderDoctor(result, output); err != nil {
		return err
	}

	if !result.Healthy {
		return domain.NewExitError(ExitWarnings, "environment has problems; see checks above", nil)
	}

	return nil
}

// runDryRun renders the plan for run and fetch without side effects.
func (app *CLI) runDryRun(ctx context.Context, output domain.OutputPort, opts application.Options) error {
	service := application.NewRunService(app.newDependencies(output, nil), opts)

	plan, err := service.DryRun(ctx)
	if err != nil {
		return app.mapPipelineError(err)
	}

	return app.renderPlan(plan, output)
}

// executePipeline runs the pipeline in plain or TUI mode and renders
// the report. Per-font failures leave the exit code at zero; only
// setup failures and interruption map to non-zero codes.
func (app *CLI) executePipeline(ctx context.Context, output domain.OutputPort, opts application.Options, successLabel string) error {
	var (
		report *domain.Report
		err    error
	)

	if app.tui {
		// The progress view owns the terminal; the service's own notices
		// go through a muted port.
		muted := cliAdapter.NewOutputAdapter(cliAdapter.TextFormat, true)

		report, err = tui.Run(ctx, func(ctx context.Context, progress domain.ProgressFunc) (*domain.Report, error) {
			service := application.NewRunService(app.newDependencies(muted, progress), opts)

			return service.Run(ctx)
		})
	} else {
		service := application.NewRunService(app.newDependencies(output, app.progressPrinter(output)), opts)
		report, err = service.Run(ctx)
	}

	if report != nil && !app.tui {
		app.renderReport(report, output, successLabel)
	}

	if err != nil {
		return app.mapPipelineError(err)
	}

	return nil
}

// pipelineOptions merges the configuration file with command flags;
// flags win over the file, the file wins over defaults.
func (app *CLI) pipelineOptions(cmd *cli.Command) (application.Options, error) {
	settings, err := config.Load()
	if err != nil {
		return application.Options{}, domain.NewExitError(ExitUsageError, "invalid configuration file", err)
	}

	delay, _ := settings.DelayDuration()

	opts := application.Options{
		OutputDir:   settings.OutputDir,
		BaseURL:     settings.BaseURL,
		SiteURL:     settings.SiteURL,
		Concurrency: settings.Concurrency,
		Delay:       delay,
		WebFonts:    settings.WebFonts,
	}

	if cmd.IsSet("output-dir") {
		opts.OutputDir = cmd.String("output-dir")
	}

	if cmd.IsSet("concurrency") {
		opts.Concurrency = int(cmd.Int("concurrency"))
	}

	if cmd.IsSet("delay") {
		opts.Delay = cmd.Duration("delay")
	}

	if cmd.IsSet("web-fonts") {
		opts.WebFonts = cmd.Bool("web-fonts")
	}

	return opts, nil
}

// newDependencies assembles the platform ports every pipeline needs.
func (app *CLI) newDependencies(output domain.OutputPort, progress domain.ProgressFunc) application.Dependencies {
	client := network.NewHTTPClient(app.timeout)

	// Inherited fc-cache output would be painted over the progress view
	// in TUI mode and would interleave with stdout in json/plain mode,
	// so those modes get the capturing runner.
	runner := platformAdapter.NewCommandRunner(app.verbose, false)
	if app.tui || app.json || app.plain {
		runner = platformAdapter.NewTUICommandRunner(app.verbose, false)
	}

	return application.Dependencies{
		Client:      client,
		FileManager: platformAdapter.NewFileManager(app.verbose),
		Privilege:   install.NewPrivilegeChecker(),
		Notifier:    install.NewCacheNotifier(runner),
		Output:      output,
		Progress:    progress,
	}
}

// newOutput builds the result port from the global flags.
func (app *CLI) newOutput() domain.OutputPort {
	return cliAdapter.OutputFromContext(app.json, app.quiet)
}

// progressPrinter streams per-font results as they complete. In JSON
// and plain modes the report is the only output, so no printer is used.
func (app *CLI) progressPrinter(output domain.OutputPort) domain.ProgressFunc {
	if app.json || app.plain {
		return nil
	}

	return func(event domain.ProgressEvent) {
		switch {
		case event.Stage == domain.StageDiscover:
			_ = output.Info("discovered " + event.Message)
		case event.Outcome == nil:
			if app.verbose && event.Message != "" {
				_ = output.Info(fmt.Sprintf("  %s: %s", event.Identifier, event.Message))
			}
		case event.Outcome.Failed():
			_ = output.Error(fmt.Sprintf("%s: %s", event.Identifier, event.Outcome.Reason))
		case event.Stage == domain.StageFetch && event.Outcome.Kind == domain.OutcomeSkipped:
			_ = output.Info(fmt.Sprintf("· %s already cached", event.Identifier))
		case event.Stage == domain.StageFetch:
			_ = output.Info(fmt.Sprintf("✓ fetched %s", event.Identifier))
		case event.Stage == domain.StageInstall:
			_ = output.Info(fmt.Sprintf("✓ installed %s", event.Identifier))
		}
	}
}

// confirmPreClean asks before wiping the user font directory. Without
// a terminal the answer is no unless --yes was given.
func (app *CLI) confirmPreClean(targetDir string) (bool, error) {
	if platform.AutoYes {
		return true, nil
	}

	if !console.DefaultOutput.IsTTY(os.Stdin.Fd()) {
		console.DefaultOutput.Warningf("pre-clean needs confirmation; rerun with --yes or from a terminal")

		return false, nil
	}

	// Plain mode keeps the terminal free of styled UI; use the line prompt.
	if app.plain {
		return platform.AskConsent(
			"remove every font file from "+targetDir,
			"Pre-clean deletes all existing font files before installing.",
		), nil
	}

	var confirmed bool

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Remove every font file from " + targetDir + "?").
			Description("Pre-clean deletes all existing font files in the user font directory before installing. This cannot be undone.").
			Affirmative("Remove").
			Negative("Keep").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, domain.NewExitError(ExitUsageError, "pre-clean confirmation failed", err)
	}

	return confirmed, nil
}

// mapPipelineError turns pipeline sentinels into exit codes.
func (app *CLI) mapPipelineError(err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrInterrupted):
		return domain.NewExitError(ExitInterruptError, "interrupted", err)
	case errors.Is(err, domain.ErrDiscoveryExhausted):
		return domain.NewExitError(ExitNetworkError, "could not discover any fonts", err)
	case errors.Is(err, domain.ErrNoInstallTarget), errors.Is(err, domain.ErrOutputDir):
		return domain.NewExitError(ExitFontError, err.Error(), nil)
	default:
		return domain.NewExitError(ExitGeneralError, err.Error(), nil)
	}
}

func identifierArgs(cmd *cli.Command) []domain.Identifier {
	args := cmd.Args().Slice()

	ids := make([]domain.Identifier, 0, len(args))
	for _, arg := range args {
		ids = append(ids, domain.Identifier(arg))
	}

	return ids
}

// renderReport emits the final run report in the active output mode.
func (app *CLI) renderReport(report *domain.Report, output domain.OutputPort, successLabel string) {
	if app.json {
		_ = output.Success("", report)

		return
	}

	if app.plain {
		console.DefaultOutput.PlainKeyValue("source", report.Source)
		console.DefaultOutput.PlainKeyValue("total", strconv.Itoa(report.Total))
		console.DefaultOutput.PlainKeyValue(successLabel, strconv.Itoa(report.Success))
		console.DefaultOutput.PlainKeyValue("skipped", strconv.Itoa(report.Skipped))
		console.DefaultOutput.PlainKeyValue("failed", strconv.Itoa(report.Failed))

		for _, failure := range report.Failures {
			console.DefaultOutput.PlainStatus(string(failure.Identifier), "failed:"+failure.Reason)
		}

		return
	}

	_ = output.Success(reportSummary(report, successLabel), nil)

	if report.Failed > 0 {
		console.DefaultOutput.Warningf("%d fonts failed; see reasons above or rerun later", report.Failed)
	}
}

// reportSummary builds the one-line human summary of a report.
func reportSummary(report *domain.Report, successLabel string) string {
	summary := fmt.Sprintf("%d fonts: %d %s", report.Total, report.Success, successLabel)

	if report.Skipped > 0 {
		summary += fmt.Sprintf(", %d cached", report.Skipped)
	}

	if report.Failed > 0 {
		summary += fmt.Sprintf(", %d failed", report.Failed)
	}

	return summary + fmt.Sprintf(" (%.2fs)", report.Duration.Seconds())
}

// renderPlan emits a dry-run plan.
func (app *CLI) renderPlan(plan *application.Plan, output domain.OutputPort) error {
	if app.json {
		return output.Success("", plan)
	}

	if app.plain {
		for _, entry := range plan.Entries {
			status := "fetch"
			if entry.Cached {
				status = "cached"
			}

			console.DefaultOutput.PlainStatus(string(entry.Identifier), status)
		}

		return nil
	}

	rows := make([][]string, 0, len(plan.Entries))

	for _, entry := range plan.Entries {
		action := "fetch"
		if entry.Cached {
			action = "already cached"
		}

		rows = append(rows, []string{string(entry.Identifier), action})
	}

	_ = output.Table([]string{"Font", "Action"}, rows)

	return output.Success(fmt.Sprintf(
		"%d fonts via %s: %d to fetch, %d cached",
		len(plan.Entries), plan.Source, plan.ToFetch, plan.Cached,
	), nil)
}

// renderExtract emits the extraction result.
func (app *CLI) renderExtract(result *application.ExtractResult, output domain.OutputPort) error {
	if app.json {
		return output.Success("", result)
	}

	if app.plain {
		console.DefaultOutput.PlainKeyValue("root", result.Root)

		for _, id := range sortedFileKeys(result.Files) {
			console.DefaultOutput.PlainStatus(string(id), "extracted:"+strconv.Itoa(len(result.Files[id])))
		}

		for _, failure := range result.Report.Failures {
			console.DefaultOutput.PlainStatus(string(failure.Identifier), "failed:"+failure.Reason)
		}

		return nil
	}

	for _, id := range sortedFileKeys(result.Files) {
		_ = output.Info(fmt.Sprintf("✓ %s: %d font files", id, len(result.Files[id])))
	}

	for _, failure := range result.Report.Failures {
		_ = output.Error(fmt.Sprintf("%s: %s", failure.Identifier, failure.Reason))
	}

	return output.Success(fmt.Sprintf("extracted %d fonts to %s", result.Report.Success, result.Root), nil)
}

// renderList emits the status table.
func (app *CLI) renderList(result *domain.ListResult, output domain.OutputPort) error {
	if app.json {
		return output.Success("", result)
	}

	if app.plain {
		for _, entry := range result.Entries {
			console.DefaultOutput.PlainStatus(string(entry.Identifier), listStatus(entry))
		}

		return nil
	}

	if result.Total == 0 {
		return output.Info("no fonts known yet; start with 'fontgrab run' or 'fontgrab fetch'")
	}

	rows := make([][]string, 0, len(result.Entries))

	for _, entry := range result.Entries {
		size := "-"
		if entry.Cached {
			size = formatBytes(entry.CacheSize)
		}

		rows = append(rows, []string{
			string(entry.Identifier),
			yesNo(entry.Cached),
			size,
			yesNo(entry.Installed),
		})
	}

	_ = output.Table([]string{"Font", "Cached", "Size", "Installed"}, rows)

	return output.Info(fmt.Sprintf("\nTotal: %d fonts", result.Total))
}

// renderDoctor emits the diagnostics.
func (app *CLI) renderDoctor(result *domain.DoctorResult, output domain.OutputPort) error {
	if app.json {
		return output.Success("", result)
	}

	if app.plain {
		for _, check := range result.Checks {
			console.DefaultOutput.PlainStatus(check.Name, string(check.Status))
		}

		return nil
	}

	_ = output.Info(console.DefaultOutput.Header("Environment checks"))

	for _, check := range result.Checks {
		symbol := "✓"

		switch check.Status {
		case domain.CheckWarn:
			symbol = "⚠"
		case domain.CheckFail:
			symbol = "✗"
		case domain.CheckOK:
		}

		_ = output.Info(fmt.Sprintf("%s %s: %s", symbol, check.Name, check.Detail))
	}

	if result.Healthy {
		return output.Success("environment ready", nil)
	}

	return nil
}

func listStatus(entry domain.ListEntry) string {
	switch {
	case entry.Installed && entry.Cached:
		return "installed,cached"
	case entry.Installed:
		return "installed"
	case entry.Cached:
		return "cached"
	default:
		return "known"
	}
}

func sortedFileKeys(files map[domain.Identifier][]string) []domain.Identifier {
	ids := make([]domain.Identifier, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

// formatBytes renders a byte count the way humans read archive sizes.
func formatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)

	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
