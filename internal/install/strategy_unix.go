// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build !windows

package install

import (
	"github.com/fontgrab/fontgrab/internal/domain"
)

// PlatformStrategies returns the install chain for this OS: the user
// font directory first, the system directory as privileged fallback.
// Registration is implicit on Unix; the cache notifier handles
// visibility after the batch.
func PlatformStrategies(fileManager domain.FileManager, targets Targets) []domain.InstallStrategy {
	return []domain.InstallStrategy{
		NewDirStrategy("user-dir", targets.User, false, fileManager),
		NewDirStrategy("system-dir", targets.System, true, fileManager),
	}
}
