// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build !windows

package install

import (
	"os"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// NewPrivilegeChecker reports whether the process can write to system
// font locations. On Unix that means running as root.
func NewPrivilegeChecker() domain.PrivilegeChecker {
	return unixPrivilege{}
}

type unixPrivilege struct{}

// Elevated reports whether the effective user is root.
func (unixPrivilege) Elevated() bool {
	return os.Geteuid() == 0
}
