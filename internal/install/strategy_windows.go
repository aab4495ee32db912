// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build windows

package install

import (
	"context"
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// Registry key holding installed font records, relative to HKCU or HKLM.
const fontsRegistryKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`

const (
	hwndBroadcast = 0xFFFF
	wmFontChange  = 0x001D
)

//nolint:gochecknoglobals // DLL procs resolve once per process
var (
	gdi32               = windows.NewLazySystemDLL("gdi32.dll")
	user32              = windows.NewLazySystemDLL("user32.dll")
	procAddFontResource = gdi32.NewProc("AddFontResourceW")
	procSendMessage     = user32.NewProc("SendMessageW")
)

// PlatformStrategies returns the Windows install chain: session
// registration through GDI first, then per-user and system registry
// records.
func PlatformStrategies(fileManager domain.FileManager, targets Targets) []domain.InstallStrategy {
	return []domain.InstallStrategy{
		&nativeStrategy{
			dir:         targets.User.Dir,
			fileManager: fileManager,
		},
		&registryStrategy{
			name:        "registry-user",
			scope:       domain.ScopeUser,
			dir:         targets.User.Dir,
			root:        registry.CURRENT_USER,
			fileManager: fileManager,
		},
		&registryStrategy{
			name:        "registry-system",
			scope:       domain.ScopeSystem,
			privileged:  true,
			dir:         targets.System.Dir,
			root:        registry.LOCAL_MACHINE,
			fileManager: fileManager,
		},
	}
}

// nativeStrategy copies into the user font directory and loads the
// font into the current session via AddFontResourceW. The follow-up
// WM_FONTCHANGE broadcast makes running applications reread the font
// table immediately.
type nativeStrategy struct {
	dir         string
	fileManager domain.FileManager
}

// Name returns the strategy name.
func (s *nativeStrategy) Name() string {
	return "native-api"
}

// Scope returns the installation breadth.
func (s *nativeStrategy) Scope() domain.Scope {
	return domain.ScopeUser
}

// RequiresPrivilege reports that session registration needs no elevation.
func (s *nativeStrategy) RequiresPrivilege() bool {
	return false
}

// Install copies the font and registers it with the running session.
func (s *nativeStrategy) Install(ctx context.Context, font domain.FontFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest, err := copyFont(s.fileManager, s.dir, font)
	if err != nil {
		return err
	}

	if err := addFontResource(dest); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInstall, err)
	}

	procSendMessage.Call(hwndBroadcast, wmFontChange, 0, 0) //nolint:errcheck // broadcast result carries no failure signal

	return nil
}

// registryStrategy copies the font and writes a registry record so the
// installation persists across sessions. HKCU records hold the full
// installed path; HKLM records for the system font directory hold the
// bare file name.
type registryStrategy struct {
	name        string
	scope       domain.Scope
	privileged  bool
	dir         string
	root        registry.Key
	fileManager domain.FileManager
}

// Name returns the strategy name.
func (s *registryStrategy) Name() string {
	return s.name
}

// Scope returns the installation breadth.
func (s *registryStrategy) Scope() domain.Scope {
	return s.scope
}

// RequiresPrivilege reports whether the registry root needs elevation.
func (s *registryStrategy) RequiresPrivilege() bool {
	return s.privileged
}

// Install copies the font and writes its registry record. A copy that
// lands but fails to register counts as a strategy failure.
func (s *registryStrategy) Install(ctx context.Context, font domain.FontFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest, err := copyFont(s.fileManager, s.dir, font)
	if err != nil {
		return err
	}

	key, err := registry.OpenKey(s.root, fontsRegistryKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("%w: open fonts key: %w", domain.ErrInstall, err)
	}
	defer key.Close()

	value := dest
	if s.root == registry.LOCAL_MACHINE {
		value = font.Name
	}

	if err := key.SetStringValue(font.DisplayName()+" (TrueType)", value); err != nil {
		return fmt.Errorf("%w: register %s: %w", domain.ErrInstall, font.Name, err)
	}

	return nil
}

func addFontResource(path string) error {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}

	added, _, callErr := procAddFontResource.Call(uintptr(unsafe.Pointer(ptr)))
	if added == 0 {
		return fmt.Errorf("AddFontResourceW %s: %w", filepath.Base(path), callErr)
	}

	return nil
}
