// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides OS-level utilities for Fontgrab: font and
// config directory resolution, process execution, and proxy handling.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetXDGConfigHome returns the XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns the XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetXDGDataHome returns the XDG data directory.
func GetXDGDataHome() string {
	return GetXDGDataHomeWithEnv(os.Getenv("XDG_DATA_HOME"))
}

// GetXDGDataHomeWithEnv returns the XDG data directory with custom environment override for testing.
func GetXDGDataHomeWithEnv(xdgDataHome string) string {
	if xdgDataHome != "" {
		return xdgDataHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}

	return ""
}

// UserFontDir returns the per-user font directory for the current
// platform. FONTGRAB_FONT_DIR overrides the platform default.
func UserFontDir() string {
	return UserFontDirWithEnv(os.Getenv("FONTGRAB_FONT_DIR"), os.Getenv("XDG_DATA_HOME"), runtime.GOOS)
}

// UserFontDirWithEnv returns the per-user font directory with custom environment overrides for testing.
func UserFontDirWithEnv(fontDir, xdgDataHome, goos string) string {
	if fontDir != "" {
		return fontDir
	}

	switch goos {
	case "windows":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "AppData", "Local", "Microsoft", "Windows", "Fonts")
		}

		return ""
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Fonts")
		}

		return ""
	default:
		return filepath.Join(GetXDGDataHomeWithEnv(xdgDataHome), "fonts")
	}
}

// SystemFontDir returns the machine-wide font directory for the current platform.
func SystemFontDir() string {
	return SystemFontDirWithEnv(runtime.GOOS, os.Getenv("WINDIR"))
}

// SystemFontDirWithEnv returns the machine-wide font directory with custom environment overrides for testing.
func SystemFontDirWithEnv(goos, windir string) string {
	switch goos {
	case "windows":
		if windir == "" {
			windir = `C:\Windows`
		}

		return filepath.Join(windir, "Fonts")
	case "darwin":
		return "/Library/Fonts"
	default:
		return "/usr/local/share/fonts"
	}
}

// ExpandPath expands ~ and XDG environment variables.
func ExpandPath(path string) string {
	return ExpandPathWithEnv(path, "", "")
}

// ExpandPathWithEnv expands paths with custom XDG environment variables for testing.
func ExpandPathWithEnv(path, xdgConfigHome, xdgDataHome string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	if strings.HasPrefix(path, "$XDG_CONFIG_HOME") {
		configHome := xdgConfigHome
		if configHome == "" {
			configHome = GetXDGConfigHome()
		}

		if after, found := strings.CutPrefix(path, "$XDG_CONFIG_HOME"); found {
			return configHome + after
		}
	}

	if strings.HasPrefix(path, "$XDG_DATA_HOME") {
		dataHome := xdgDataHome
		if dataHome == "" {
			dataHome = GetXDGDataHome()
		}

		if after, found := strings.CutPrefix(path, "$XDG_DATA_HOME"); found {
			return dataHome + after
		}
	}

	return path
}
