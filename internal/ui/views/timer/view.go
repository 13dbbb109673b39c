package timer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "taskdeck/internal/modules/timer/dto"
	"taskdeck/internal/ui/theme"
)

// Model renders the focus timer. Polling and state transitions live in the
// app model; this view only draws the latest status it was handed.
type Model struct {
	status     timerdto.StatusOutput
	hasTimer   bool
	lastCommit *timerdto.CommitOutput
	bar        progress.Model
	width      int
	height     int
}

func New() Model {
	bar := progress.New(progress.WithGradient(string(theme.Mint), string(theme.Sky)))
	bar.ShowPercentage = false
	return Model{bar: bar}
}

func (m Model) Init() tea.Cmd { return nil }

// SetStatus replaces the rendered session state.
func (m *Model) SetStatus(s timerdto.StatusOutput) {
	m.status = s
	m.hasTimer = true
	m.lastCommit = nil
}

// SetCommit records a finished session for display until the next one opens.
func (m *Model) SetCommit(c timerdto.CommitOutput) {
	m.hasTimer = false
	m.lastCommit = &c
}

// Clear drops the session state, e.g. after dismiss or discard.
func (m *Model) Clear() {
	m.hasTimer = false
	m.lastCommit = nil
}

// HasTimer reports whether a session is currently shown.
func (m Model) HasTimer() bool { return m.hasTimer }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barW := m.width / 2
		if barW < 20 {
			barW = 20
		}
		m.bar.Width = barW
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch {
	case m.lastCommit != nil:
		verb := "committed"
		if m.lastCommit.Completed {
			verb = "completed with"
		}
		body = theme.Done.Render("✔ session finished") + "\n\n" +
			fmt.Sprintf("%s %d min of focus", verb, m.lastCommit.CommittedMinutes)
	case !m.hasTimer:
		body = theme.Muted.Render("No timer. Select a task and press o to open one.")
	default:
		body = m.renderSession()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderSession() string {
	s := m.status
	state := theme.Muted.Render("paused")
	if s.Running {
		state = theme.Hot.Render("running")
	}

	var clock, bar string
	if s.Mode == "countdown" {
		clock = formatSeconds(s.RemainingSeconds)
		ratio := 0.0
		if s.TargetSeconds > 0 {
			ratio = float64(s.ElapsedSeconds) / float64(s.TargetSeconds)
		}
		if ratio > 1 {
			ratio = 1
		}
		bar = m.bar.ViewAs(ratio)
	} else {
		clock = formatSeconds(s.ElapsedSeconds)
		bar = theme.Muted.Render("stopwatch")
	}

	title := theme.Title.Render(s.TaskTitle)
	big := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(clock)
	hint := theme.Muted.Render("s: start/pause  c: complete  x: cancel  d: dismiss")

	return lipgloss.JoinVertical(lipgloss.Center,
		title, "", big+"  "+state, "", bar, "", hint)
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
