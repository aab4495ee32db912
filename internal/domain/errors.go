// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
)

// Setup errors. Any of these aborts the whole run.
var (
	// ErrDiscoveryExhausted indicates every discovery strategy returned
	// zero identifiers, so there is nothing to do.
	ErrDiscoveryExhausted = errors.New("discovery exhausted: no identifiers from any source")
	// ErrOutputDir indicates the output directory could not be created.
	ErrOutputDir = errors.New("cannot create output directory")
	// ErrNoInstallTarget indicates no installation target directory could
	// be resolved for this platform.
	ErrNoInstallTarget = errors.New("no installation target available")
)

// Per-unit errors. These are captured into a unit's Outcome and never
// abort the run.
var (
	// ErrNetwork indicates a non-200 response or transport failure
	// during a fetch.
	ErrNetwork = errors.New("network error")
	// ErrArchive indicates an unreadable archive.
	ErrArchive = errors.New("archive error")
	// ErrNoFontFiles indicates an archive extracted to zero entries with
	// an accepted font extension.
	ErrNoFontFiles = errors.New("no font files found")
	// ErrInstall indicates a single strategy's copy or register step
	// failed; surfaced only when it was the last available strategy.
	ErrInstall = errors.New("install error")
	// ErrPrivilegeUnavailable marks a strategy skipped for lack of
	// elevation. It is a skip marker, never a failure.
	ErrPrivilegeUnavailable = errors.New("elevated privilege unavailable")
	// ErrInterrupted indicates the run context was canceled before the
	// unit completed.
	ErrInterrupted = errors.New("interrupted")
)

// HTTPError is a non-200 response during a fetch. Its message is the
// bare status ("HTTP 404") because that string becomes the recorded
// failure reason; errors.Is still matches ErrNetwork.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Is reports HTTPError as a kind of ErrNetwork.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNetwork
}

// ExitError carries a process exit code alongside the failure message so
// the CLI layer can map domain failures to Unix exit conventions.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *ExitError) Unwrap() error {
	return e.Err
}
