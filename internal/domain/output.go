// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import "time"

// OutputPort defines the interface for presenting command results.
// This is a domain port that adapters implement for different output formats.
type OutputPort interface {
	// Success outputs a success message with optional structured data
	Success(message string, data interface{}) error

	// Error outputs an error message
	Error(message string) error

	// Info outputs an informational message
	Info(message string) error

	// Progress outputs progress information for long-running operations
	Progress(message string) error

	// Table outputs tabular data
	Table(headers []string, rows [][]string) error

	// IsQuiet returns true if output should be suppressed
	IsQuiet() bool
}

// ListEntry describes one identifier's cache and install status for the
// list command.
type ListEntry struct {
	Identifier Identifier `json:"identifier"`
	Cached     bool       `json:"cached"`
	CacheSize  int64      `json:"cache_size,omitempty"`
	Installed  bool       `json:"installed"`
}

// ListResult enumerates known identifiers with their status.
type ListResult struct {
	Entries   []ListEntry `json:"entries"`
	Total     int         `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

// CheckStatus is the outcome of one doctor check.
type CheckStatus string

// Doctor check statuses.
const (
	CheckOK   CheckStatus = "ok"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// DoctorCheck is one environment diagnostic with its result.
type DoctorCheck struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// DoctorResult aggregates environment diagnostics.
type DoctorResult struct {
	Checks    []DoctorCheck `json:"checks"`
	Healthy   bool          `json:"healthy"`
	Timestamp time.Time     `json:"timestamp"`
}
