// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for Fontgrab.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/fontgrab/fontgrab/internal/cli"
	"github.com/fontgrab/fontgrab/internal/console"
	"github.com/fontgrab/fontgrab/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// One fontgrab at a time; concurrent instances would race on the
	// archive cache and double up on the remote service.
	lock := flock.New(lockPath())

	locked, err := lock.TryLock()
	if err != nil {
		console.DefaultOutput.Errorf("failed to acquire process lock: %v", err)

		return cli.ExitGeneralError
	}

	if !locked {
		console.DefaultOutput.Errorf("another fontgrab instance is already running")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			console.DefaultOutput.Warningf("failed to release process lock: %v", unlockErr)
		}
	}()

	// Ctrl+C cancels the context; the pipeline finishes in-flight
	// downloads and reports what it got before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCLI().Run(ctx, os.Args); err != nil {
		var exitErr *domain.ExitError
		if errors.As(err, &exitErr) {
			console.DefaultOutput.Errorf("%s", exitErr.Message)

			return exitErr.Code
		}

		console.DefaultOutput.Errorf("%v", err)

		return cli.ExitGeneralError
	}

	return cli.ExitSuccess
}

// lockPath places the lock under the user cache directory so every
// invocation agrees on it regardless of working directory.
func lockPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return filepath.Join(cacheDir, "fontgrab.lock")
}
