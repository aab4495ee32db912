// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutcomeKind classifies the terminal state of one unit of work.
type OutcomeKind string

// Terminal states for identifiers and font files.
const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the result attached to an Identifier or FontFile. Skipped
// means the unit required no work this run (archive already cached, or a
// strategy step not applicable); it never counts as a failure.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}

// Succeed returns a Success outcome.
func Succeed() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

// Skip returns a Skipped outcome.
func Skip() Outcome {
	return Outcome{Kind: OutcomeSkipped}
}

// Fail returns a Failed outcome carrying the given reason string.
func Fail(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// FailErr returns a Failed outcome carrying the error's message.
func FailErr(err error) Outcome {
	if err == nil {
		return Fail("unknown error")
	}

	return Fail(err.Error())
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeFailed
}

// FontFile is one extracted font, identified by its base name. The data
// is ephemeral and lives only between extraction and installation.
type FontFile struct {
	Name string `json:"name"`
	Data []byte `json:"-"`
}

// Extension returns the lowercased file extension including the dot.
func (f FontFile) Extension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// DisplayName returns the name without extension, used as the human
// label for registration records.
func (f FontFile) DisplayName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Scope is the breadth of an installation target.
type Scope string

// Installation scopes. System targets require elevated privilege.
const (
	ScopeUser   Scope = "user"
	ScopeSystem Scope = "system"
)

// InstallTarget is a destination directory with its scope.
type InstallTarget struct {
	Dir   string `json:"dir"`
	Scope Scope  `json:"scope"`
}

// Failure pairs a failed identifier with its reason string for the run
// report. Reasons are specific ("HTTP 404", "no font files found"),
// never generic.
type Failure struct {
	Identifier Identifier `json:"identifier"`
	Reason     string     `json:"reason"`
}

// Report aggregates the per-identifier outcomes of one run. Every input
// identifier is recorded exactly once regardless of completion order.
type Report struct {
	RunID     string        `json:"run_id"`
	Source    string        `json:"source,omitempty"`
	Total     int           `json:"total"`
	Success   int           `json:"success"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Failures  []Failure     `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewReport creates an empty report stamped with a fresh run ID.
func NewReport() *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// Record adds one identifier's outcome to the tallies.
func (r *Report) Record(id Identifier, outcome Outcome) {
	r.Total++

	switch outcome.Kind {
	case OutcomeSuccess:
		r.Success++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{Identifier: id, Reason: outcome.Reason})
	}
}

// RecordAll adds every outcome in the map, sorted by identifier so the
// failure list is stable across runs.
func (r *Report) RecordAll(outcomes map[Identifier]Outcome) {
	ids := make([]Identifier, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		r.Record(id, outcomes[id])
	}
}
