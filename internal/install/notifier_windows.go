// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

//go:build windows

package install

import (
	"context"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// NewCacheNotifier returns a notifier that broadcasts WM_FONTCHANGE so
// running applications reread the installed font table.
func NewCacheNotifier(_ domain.CommandRunner) domain.CacheNotifier {
	return broadcastNotifier{}
}

type broadcastNotifier struct{}

// NotifyFontsChanged broadcasts the font-change message to all windows.
func (broadcastNotifier) NotifyFontsChanged(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	procSendMessage.Call(hwndBroadcast, wmFontChange, 0, 0) //nolint:errcheck // broadcast result carries no failure signal

	return nil
}
