// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package install_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/install"
	"github.com/fontgrab/fontgrab/internal/testutil"
)

func TestDirStrategyCopiesFont(t *testing.T) {
	t.Parallel()

	fileManager := testutil.NewMemFileManager()
	target := domain.InstallTarget{Dir: filepath.Join("/fonts", "user"), Scope: domain.ScopeUser}
	strategy := install.NewDirStrategy("user-dir", target, false, fileManager)

	assert.Equal(t, "user-dir", strategy.Name())
	assert.Equal(t, domain.ScopeUser, strategy.Scope())
	assert.False(t, strategy.RequiresPrivilege())

	font := domain.FontFile{Name: "Satoshi-Regular.ttf", Data: []byte("glyphs")}
	require.NoError(t, strategy.Install(context.Background(), font))

	written, err := fileManager.ReadFile(filepath.Join("/fonts", "user", "Satoshi-Regular.ttf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("glyphs"), written)
}

func TestDirStrategyOverwritesExistingFile(t *testing.T) {
	t.Parallel()

	fileManager := testutil.NewMemFileManager()
	dest := filepath.Join("/fonts", "user", "Satoshi-Regular.ttf")
	fileManager.SetFile(dest, []byte("old glyphs"))

	target := domain.InstallTarget{Dir: filepath.Join("/fonts", "user"), Scope: domain.ScopeUser}
	strategy := install.NewDirStrategy("user-dir", target, false, fileManager)

	font := domain.FontFile{Name: "Satoshi-Regular.ttf", Data: []byte("new glyphs")}
	require.NoError(t, strategy.Install(context.Background(), font))

	written, err := fileManager.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("new glyphs"), written)
}

func TestDirStrategyMissingTargetDir(t *testing.T) {
	t.Parallel()

	target := domain.InstallTarget{Dir: "", Scope: domain.ScopeSystem}
	strategy := install.NewDirStrategy("system-dir", target, true, testutil.NewMemFileManager())

	err := strategy.Install(context.Background(), domain.FontFile{Name: "Satoshi-Regular.ttf"})
	require.ErrorIs(t, err, domain.ErrNoInstallTarget)
}

func TestDirStrategyWriteFailure(t *testing.T) {
	t.Parallel()

	fileManager := &testutil.MockFileManager{}
	fileManager.On("EnsureDir", mock.Anything).Return(nil)
	fileManager.On("WriteFile", mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	target := domain.InstallTarget{Dir: "/usr/local/share/fonts", Scope: domain.ScopeSystem}
	strategy := install.NewDirStrategy("system-dir", target, true, fileManager)

	err := strategy.Install(context.Background(), domain.FontFile{Name: "Satoshi-Regular.ttf", Data: []byte("glyphs")})
	require.ErrorIs(t, err, domain.ErrInstall)
	assert.Contains(t, err.Error(), "read-only file system")
}
