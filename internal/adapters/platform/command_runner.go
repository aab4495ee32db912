// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fontgrab/fontgrab/internal/console"
)

// CommandRunner implements the CommandRunner port for real system commands.
type CommandRunner struct {
	verbose bool
	dryRun  bool
	tuiMode bool // When true, suppress direct terminal output for TUI compatibility
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(verbose, dryRun bool) *CommandRunner {
	return &CommandRunner{
		verbose: verbose,
		dryRun:  dryRun,
		tuiMode: false,
	}
}

// NewTUICommandRunner creates a command runner that captures output so
// subprocesses cannot write over the terminal UI.
func NewTUICommandRunner(verbose, dryRun bool) *CommandRunner {
	return &CommandRunner{
		verbose: verbose,
		dryRun:  dryRun,
		tuiMode: true,
	}
}

// Execute runs a command and returns the result.
func (r *CommandRunner) Execute(ctx context.Context, name string, args ...string) error {
	if r.verbose && !r.tuiMode {
		console.DefaultOutput.Progressf("executing: %s %s", name, strings.Join(args, " "))
	}

	if r.dryRun {
		if !r.tuiMode {
			fmt.Fprintf(os.Stderr, "DRY RUN: %s %s\n", name, strings.Join(args, " "))
		}

		return nil
	}

	cmd := exec.CommandContext(ctx, name, args...)

	if r.tuiMode {
		return r.executeTUIMode(cmd)
	}

	return r.executeCLIMode(cmd)
}

// ExecuteWithOutput runs a command and returns the output.
func (r *CommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	if r.verbose && !r.tuiMode {
		console.DefaultOutput.Progressf("executing (with output): %s %s", name, strings.Join(args, " "))
	}

	if r.dryRun {
		if !r.tuiMode {
			fmt.Fprintf(os.Stderr, "DRY RUN (with output): %s %s\n", name, strings.Join(args, " "))
		}

		return "", nil
	}

	cmd := exec.CommandContext(ctx, name, args...)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// executeTUIMode captures all output to prevent terminal interference.
func (r *CommandRunner) executeTUIMode(cmd *exec.Cmd) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	_, _ = io.ReadAll(stdout)
	stderrBytes, _ := io.ReadAll(stderr)

	if err := cmd.Wait(); err != nil {
		stderrOutput := strings.TrimSpace(string(stderrBytes))
		if stderrOutput != "" {
			return fmt.Errorf("command failed: %w (stderr: %s)", err, stderrOutput)
		}

		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// executeCLIMode runs the command with normal terminal output.
func (r *CommandRunner) executeCLIMode(cmd *exec.Cmd) error {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
