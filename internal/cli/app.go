// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the fontgrab command tree.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fontgrab/fontgrab/internal/console"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/platform"
)

// Exit codes follow standard Unix conventions for better scripting support.
// Range 0-125 are safe to use (126+ have special meaning in shells).
const (
	ExitSuccess        = 0  // Operation completed successfully
	ExitGeneralError   = 1  // Generic failure (catch-all)
	ExitUsageError     = 2  // Invalid command line usage
	ExitNetworkError   = 11 // Network operation failed
	ExitInterruptError = 14 // User interrupted (Ctrl+C)
	ExitFontError      = 21 // Font pipeline setup failed
	ExitWarnings       = 64 // Operation succeeded with warnings
)

// Version is the release version, overridden at build time.
var Version = "dev" //nolint:gochecknoglobals

// CLI is the fontgrab command-line application. Global flag values are
// bound to its fields before any subcommand action runs.
type CLI struct {
	app     *cli.Command
	verbose bool
	json    bool
	quiet   bool
	plain   bool
	noColor bool
	yes     bool
	tui     bool
	timeout time.Duration // Network operation timeout
}

// NewCLI creates the fontgrab command tree.
func NewCLI() *CLI {
	app := &CLI{}

	app.app = &cli.Command{
		Name:    "fontgrab",
		Usage:   "Bulk-download and install the Fontshare font catalog",
		Version: Version,
		Suggest: true,
		Description: `Discovers the free Fontshare catalog, downloads every font archive
into a local cache, and installs the font files for the current user.

ESSENTIAL COMMANDS:
  run                 Full pipeline: discover, fetch, install
  fetch               Download archives only, install later
  install [fonts...]  Install from already-cached archives

QUICK START:
  fontgrab run                      # Grab and install everything
  fontgrab run --dry-run            # See what a run would do
  fontgrab list                     # Cache and install status

Per-font failures never abort a run; the final report names every
failed font with its reason.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Usage:       "suppress non-essential output",
				Aliases:     []string{"q"},
				Destination: &app.quiet,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &app.noColor,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "automatically answer yes to all prompts",
				Destination: &app.yes,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "timeout per network request (0 = no timeout)",
				Value:       3 * time.Minute,
				Destination: &app.timeout,
			},
			&cli.BoolFlag{
				Name:        "tui",
				Usage:       "show a live progress view during run and fetch",
				Destination: &app.tui,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return app.initConfig(ctx, cmd)
		},
		Commands: app.createCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) createCommands() []*cli.Command {
	return []*cli.Command{
		app.createRunCommand(),
		app.createFetchCommand(),
		app.createInstallCommand(),
		app.createExtractCommand(),
		app.createListCommand(),
		app.createDoctorCommand(),
		app.createVersionCommand(),
	}
}

// initConfig validates flag combinations and applies the global output
// state before any action runs.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	if app.tui && (app.json || app.plain || app.quiet) {
		return ctx, domain.NewExitError(ExitUsageError, "--tui cannot be combined with --json, --plain, or --quiet", nil)
	}

	if app.noColor {
		_ = os.Setenv("NO_COLOR", "1")
	}

	console.DefaultOutput.SetMode(app.verbose, app.json, app.plain)
	platform.AutoYes = app.yes

	return ctx, nil
}

// createVersionCommand creates version command.
func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			console.DefaultOutput.SuccessResult(Version, "")

			return nil
		},
	}
}
