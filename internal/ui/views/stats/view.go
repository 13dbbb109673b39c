package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	viewdto "taskdeck/internal/modules/view/dto"
	"taskdeck/internal/ui/theme"
)

type StatsPort interface {
	Stats(ctx context.Context, username string, since time.Time) (viewdto.StatsOutput, error)
}

type LoadedMsg struct {
	Stats viewdto.StatsOutput
	Err   error
}

type Model struct {
	port     StatsPort
	username string

	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port StatsPort, username string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Mint)

	return Model{port: port, username: username, body: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 2

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.body.SetContent(theme.Late.Render("stats: " + msg.Err.Error()))
			return m, nil
		}
		m.body.SetContent(render(msg.Stats))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		}
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching numbers…")
	}
	return m.body.View()
}

// Reload refetches the statistics.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Stats(context.Background(), m.username, time.Time{})
		return LoadedMsg{Stats: out, Err: err}
	}
}

func render(s viewdto.StatsOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus") + "\n\n")
	sb.WriteString(fmt.Sprintf("total    %s\n", formatMinutes(s.FocusTotalMinutes)))
	sb.WriteString(fmt.Sprintf("period   %s\n\n", formatMinutes(s.FocusSinceMinutes)))

	if len(s.DailyMinutes) > 0 {
		sb.WriteString(theme.Title.Render("This month") + "\n\n")
		sb.WriteString(barChart(s.DailyMinutes) + "\n")
	}

	if len(s.CancelReasons) > 0 {
		sb.WriteString(theme.Title.Render("Interruptions") + "\n\n")
		for _, r := range s.CancelReasons {
			sb.WriteString(fmt.Sprintf("%-12s %3d  %s\n", r.Reason, r.Count,
				theme.Muted.Render(fmt.Sprintf("%.0f%%", r.Percent))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(theme.Title.Render("Completion by group") + "\n\n")
	for _, g := range s.GroupCompletion {
		if g.Total == 0 {
			continue
		}
		ratio := float64(g.Done) / float64(g.Total)
		sb.WriteString(fmt.Sprintf("%-12s %s %d/%d\n", g.Name, meter(ratio, 20), g.Done, g.Total))
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))
	return sb.String()
}

func barChart(daily map[int]int) string {
	days := make([]int, 0, len(daily))
	max := 0
	for day, minutes := range daily {
		days = append(days, day)
		if minutes > max {
			max = minutes
		}
	}
	sort.Ints(days)

	var sb strings.Builder
	for _, day := range days {
		minutes := daily[day]
		width := 0
		if max > 0 {
			width = minutes * 24 / max
		}
		sb.WriteString(fmt.Sprintf("%2d  %s %s\n", day,
			theme.Done.Render(strings.Repeat("█", width)), formatMinutes(minutes)))
	}
	return sb.String()
}

func meter(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return theme.Done.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", width-filled))
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
