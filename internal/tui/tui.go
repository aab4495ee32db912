// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui renders a live progress view for a run: one spinner and
// progress bar per pipeline phase plus a scrolling tail of per-font
// results. The pipeline itself runs in a background goroutine and
// reports through the domain progress callback.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// Tokyo Night palette, matching the CLI accent colors.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bb9af7"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1, 2)
)

// phase is the pipeline stage currently on screen.
type phase int

const (
	phaseDiscovering phase = iota
	phaseFetching
	phaseInstalling
	phaseDone
	phaseError
)

const maxLogLines = 10

type logEntry struct {
	text  string
	style lipgloss.Style
}

// Message types delivered via Program.Send from the pipeline goroutine.
type (
	// eventMsg wraps one progress callback invocation.
	eventMsg struct {
		event domain.ProgressEvent
	}

	// doneMsg is sent once when the pipeline returns.
	doneMsg struct {
		report *domain.Report
		err    error
	}
)

// Model is the Bubble Tea model for the run view.
type Model struct {
	phase    phase
	spinner  spinner.Model
	progress progress.Model
	cancel   context.CancelFunc

	total     int
	fetched   int
	cached    int
	failed    int
	completed int
	installed int

	logs   []logEntry
	report *domain.Report
	err    error

	width int
}

// NewModel creates the run view model. The cancel function is invoked
// when the user interrupts the run; it must stop the pipeline.
func NewModel(cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		phase:    phaseDiscovering,
		spinner:  sp,
		progress: prog,
		cancel:   cancel,
		logs:     make([]logEntry, 0, maxLogLines),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = clamp(msg.Width-20, 20, 80)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.phase == phaseDone || m.phase == phaseError {
				return m, tea.Quit
			}

			if m.cancel != nil {
				m.cancel()
			}

			m.appendLog("stopping after in-flight downloads...", warningStyle)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)

	case eventMsg:
		cmds = append(cmds, m.applyEvent(msg.event)...)

	case doneMsg:
		m.report = msg.report
		m.err = msg.err

		if msg.err != nil {
			m.phase = phaseError
		} else {
			m.phase = phaseDone
		}

		return m, tea.Quit
	}

	return m, tea.Batch(cmds...)
}

// applyEvent folds one pipeline event into the view state.
func (m *Model) applyEvent(event domain.ProgressEvent) []tea.Cmd {
	switch event.Stage {
	case domain.StageDiscover:
		m.total = event.Count
		m.phase = phaseFetching
		m.appendLog(event.Message, infoStyle)

	case domain.StageFetch:
		m.completed++
		m.recordFetch(event)

		return []tea.Cmd{m.progress.SetPercent(m.percent())}

	case domain.StageExtract:
		m.enterInstallPhase()

		if event.Outcome != nil && event.Outcome.Failed() {
			m.completed++
			m.failed++
			m.appendLog(fmt.Sprintf("✗ %s: %s", event.Identifier, event.Outcome.Reason), errorStyle)

			return []tea.Cmd{m.progress.SetPercent(m.percent())}
		}

	case domain.StageInstall:
		m.enterInstallPhase()

		if event.Outcome == nil {
			break
		}

		m.completed++

		if event.Outcome.Failed() {
			m.failed++
			m.appendLog(fmt.Sprintf("✗ %s: %s", event.Identifier, event.Outcome.Reason), errorStyle)
		} else {
			m.installed++
			m.appendLog(fmt.Sprintf("✓ %s installed", event.Identifier), successStyle)
		}

		return []tea.Cmd{m.progress.SetPercent(m.percent())}
	}

	return nil
}

func (m *Model) recordFetch(event domain.ProgressEvent) {
	if event.Outcome == nil {
		return
	}

	switch event.Outcome.Kind {
	case domain.OutcomeSuccess:
		m.fetched++
		m.appendLog(fmt.Sprintf("✓ %s fetched", event.Identifier), successStyle)
	case domain.OutcomeSkipped:
		m.cached++
		m.appendLog(fmt.Sprintf("› %s already cached", event.Identifier), dimStyle)
	case domain.OutcomeFailed:
		m.failed++
		m.appendLog(fmt.Sprintf("✗ %s: %s", event.Identifier, event.Outcome.Reason), errorStyle)
	}
}

// enterInstallPhase resets the bar the first time an extract or install
// event arrives. Fetch failures stay counted; the remaining units go
// through extract and install.
func (m *Model) enterInstallPhase() {
	if m.phase == phaseInstalling {
		return
	}

	m.phase = phaseInstalling
	m.completed = m.failed
}

func (m *Model) percent() float64 {
	if m.total == 0 {
		return 0
	}

	return float64(m.completed) / float64(m.total)
}

func (m *Model) appendLog(text string, style lipgloss.Style) {
	m.logs = append(m.logs, logEntry{text: text, style: style})
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fontgrab"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseDiscovering:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Discovering fonts..."))
		b.WriteString("\n\n")
	case phaseFetching:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Fetching %d fonts", m.total)))
		b.WriteString("\n\n")
		b.WriteString(m.viewProgress())
	case phaseInstalling:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Installing"))
		b.WriteString("\n\n")
		b.WriteString(m.viewProgress())
	case phaseDone:
		b.WriteString(m.viewDone())
	case phaseError:
		b.WriteString(m.viewError())
	}

	b.WriteString(m.viewLogs())

	b.WriteString("\n")

	if m.phase == phaseDone || m.phase == phaseError {
		b.WriteString(dimStyle.Render("q: quit"))
	} else {
		b.WriteString(dimStyle.Render("ctrl+c: stop"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m Model) viewProgress() string {
	var b strings.Builder

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"%d/%d · fetched %d · cached %d · failed %d",
		m.completed, m.total, m.fetched, m.cached, m.failed,
	)))
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) viewDone() string {
	if m.report == nil {
		return ""
	}

	summary := fmt.Sprintf(
		"Run complete\n\nFonts:     %d\nInstalled: %d\nCached:    %d\nFailed:    %d\nDuration:  %s",
		m.report.Total,
		m.report.Success,
		m.report.Skipped,
		m.report.Failed,
		m.report.Duration.Round(timeRounding),
	)

	if m.report.Failed > 0 {
		return boxStyle.BorderForeground(lipgloss.Color("#e0af68")).Render(summary) + "\n\n"
	}

	return boxStyle.Render(summary) + "\n\n"
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Run failed"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(m.err.Error())
		b.WriteString("\n\n")
	}

	return b.String()
}

func (m Model) viewLogs() string {
	var b strings.Builder

	limit := m.width - 4
	if limit < 20 {
		limit = 76
	}

	for _, log := range m.logs {
		line := log.text
		if runewidth.StringWidth(line) > limit {
			line = runewidth.Truncate(line, limit, "...")
		}

		b.WriteString(log.style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
