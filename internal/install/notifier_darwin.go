// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install

import (
	"context"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// NewCacheNotifier returns a no-op notifier. macOS watches its font
// directories and needs no explicit refresh.
func NewCacheNotifier(_ domain.CommandRunner) domain.CacheNotifier {
	return noopNotifier{}
}

type noopNotifier struct{}

// NotifyFontsChanged does nothing.
func (noopNotifier) NotifyFontsChanged(context.Context) error {
	return nil
}
