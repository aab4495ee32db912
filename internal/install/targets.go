// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install

import (
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/platform"
)

// Targets holds the candidate installation directories for a run.
type Targets struct {
	User   domain.InstallTarget
	System domain.InstallTarget
}

// ResolveTargets returns the user and system font directories for the
// current platform. FONTGRAB_FONT_DIR overrides the user directory.
func ResolveTargets() Targets {
	return Targets{
		User:   domain.InstallTarget{Dir: platform.UserFontDir(), Scope: domain.ScopeUser},
		System: domain.InstallTarget{Dir: platform.SystemFontDir(), Scope: domain.ScopeSystem},
	}
}

// ResolveTargetsWithEnv returns targets with custom environment overrides for testing.
func ResolveTargetsWithEnv(fontDir, xdgDataHome, goos, windir string) Targets {
	return Targets{
		User: domain.InstallTarget{
			Dir:   platform.UserFontDirWithEnv(fontDir, xdgDataHome, goos),
			Scope: domain.ScopeUser,
		},
		System: domain.InstallTarget{
			Dir:   platform.SystemFontDirWithEnv(goos, windir),
			Scope: domain.ScopeSystem,
		},
	}
}
