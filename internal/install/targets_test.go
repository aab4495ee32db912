// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/install"
)

func TestResolveTargetsLinux(t *testing.T) {
	t.Parallel()

	targets := install.ResolveTargetsWithEnv("", "/data", "linux", "")

	assert.Equal(t, domain.ScopeUser, targets.User.Scope)
	assert.Equal(t, filepath.Join("/data", "fonts"), targets.User.Dir)
	assert.Equal(t, domain.ScopeSystem, targets.System.Scope)
	assert.Equal(t, "/usr/local/share/fonts", targets.System.Dir)
}

func TestResolveTargetsDarwinSystem(t *testing.T) {
	t.Parallel()

	targets := install.ResolveTargetsWithEnv("", "", "darwin", "")

	assert.Equal(t, "/Library/Fonts", targets.System.Dir)
}

func TestResolveTargetsFontDirOverride(t *testing.T) {
	t.Parallel()

	targets := install.ResolveTargetsWithEnv("/custom/fonts", "/data", "linux", "")

	assert.Equal(t, "/custom/fonts", targets.User.Dir)
	assert.Equal(t, "/usr/local/share/fonts", targets.System.Dir)
}

func TestResolveTargetsWindowsSystem(t *testing.T) {
	t.Parallel()

	targets := install.ResolveTargetsWithEnv("", "", "windows", `D:\Windows`)

	assert.Equal(t, filepath.Join(`D:\Windows`, "Fonts"), targets.System.Dir)
}
