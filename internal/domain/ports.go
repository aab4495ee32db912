// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
)

// CommandRunner defines the interface for executing system commands.
type CommandRunner interface {
	// Execute runs a command and returns the result.
	Execute(ctx context.Context, name string, args ...string) error

	// ExecuteWithOutput runs a command and returns the output.
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// FileManager defines the interface for file operations.
type FileManager interface {
	// FileExists checks if a file exists.
	FileExists(path string) bool

	// FileSize returns the size of a file in bytes.
	FileSize(path string) (int64, error)

	// EnsureDir creates a directory and all parent directories if they don't exist.
	EnsureDir(path string) error

	// CopyFile copies a file from source to destination.
	CopyFile(src, dest string) error

	// WriteFile writes data to a file.
	WriteFile(path string, data []byte) error

	// ReadFile reads data from a file.
	ReadFile(path string) ([]byte, error)

	// RemoveFile removes a file.
	RemoveFile(path string) error

	// ListFiles returns the names of regular files directly inside dir.
	ListFiles(dir string) ([]string, error)

	// ListDirs returns the names of subdirectories directly inside dir.
	ListDirs(dir string) ([]string, error)
}

// NetworkClient defines the interface for catalog and download requests.
type NetworkClient interface {
	// Get fetches a URL and returns the response body. Non-200 statuses
	// are returned as errors wrapping ErrNetwork.
	Get(ctx context.Context, url string) ([]byte, error)

	// Head issues a metadata-only request and returns the status code.
	Head(ctx context.Context, url string) (int, error)

	// DownloadFile downloads a URL to a destination path atomically:
	// the file appears at destPath only after the body is fully written.
	DownloadFile(ctx context.Context, url, destPath string) error
}

// InstallStrategy is one installation method: copy the font into the
// strategy's target directory, then perform its registration side
// effect. Implementations exist per platform; the chain tries them in
// privilege order.
type InstallStrategy interface {
	// Name identifies the strategy in logs and failure reasons.
	Name() string

	// Scope reports the installation breadth this strategy writes to.
	Scope() Scope

	// RequiresPrivilege reports whether the strategy needs elevation.
	RequiresPrivilege() bool

	// Install copies and registers one font file.
	Install(ctx context.Context, font FontFile) error
}

// PrivilegeChecker reports whether the current process holds elevated
// privileges (root on Unix, administrator on Windows). Strategies that
// require elevation are skipped, not failed, when it returns false.
type PrivilegeChecker interface {
	Elevated() bool
}

// CacheNotifier broadcasts a system-wide "fonts changed" signal so
// running applications pick up newly installed fonts. The broadcast is
// idempotent and safe to issue even when nothing changed.
type CacheNotifier interface {
	NotifyFontsChanged(ctx context.Context) error
}

// ProgressStage identifies which pipeline phase an event belongs to.
type ProgressStage string

// Pipeline stages reported during a run.
const (
	StageDiscover ProgressStage = "discover"
	StageFetch    ProgressStage = "fetch"
	StageExtract  ProgressStage = "extract"
	StageInstall  ProgressStage = "install"
)

// ProgressEvent is one per-identifier lifecycle notification. Outcome is
// nil while the unit is still in progress. Count carries the identifier
// total on discover events and is zero otherwise.
type ProgressEvent struct {
	Stage      ProgressStage
	Identifier Identifier
	Outcome    *Outcome
	Message    string
	Count      int
}

// ProgressFunc receives progress events during a run. Implementations
// must be safe for concurrent use; fetch workers call it in parallel.
type ProgressFunc func(event ProgressEvent)
