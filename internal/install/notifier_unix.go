// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build !windows && !darwin

package install

import (
	"context"
	"fmt"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// NewCacheNotifier returns a notifier that rebuilds the fontconfig
// cache so newly copied fonts become visible to applications. When
// fc-cache is not installed the refresh is silently skipped; fonts
// still work after the next natural cache rebuild.
func NewCacheNotifier(runner domain.CommandRunner) domain.CacheNotifier {
	return &fontconfigNotifier{runner: runner}
}

type fontconfigNotifier struct {
	runner domain.CommandRunner
}

// NotifyFontsChanged forces a fontconfig cache rebuild.
func (n *fontconfigNotifier) NotifyFontsChanged(ctx context.Context) error {
	if !n.runner.CommandExists("fc-cache") {
		return nil
	}

	if err := n.runner.Execute(ctx, "fc-cache", "-f"); err != nil {
		return fmt.Errorf("%w: fc-cache: %w", domain.ErrInstall, err)
	}

	return nil
}
