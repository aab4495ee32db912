// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"path/filepath"
)

// GetConfigPath returns the path of a file inside the Fontgrab
// configuration directory.
func GetConfigPath(name string) string {
	configHome := GetXDGConfigHome()

	return filepath.Join(configHome, "fontgrab", name)
}
