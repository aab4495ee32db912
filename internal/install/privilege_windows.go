// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build windows

package install

import (
	"golang.org/x/sys/windows"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// NewPrivilegeChecker reports whether the process token carries
// administrator elevation.
func NewPrivilegeChecker() domain.PrivilegeChecker {
	return windowsPrivilege{}
}

type windowsPrivilege struct{}

// Elevated reports whether the process token is elevated.
func (windowsPrivilege) Elevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
