package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "taskdeck/internal/modules/task/dto"
	viewdto "taskdeck/internal/modules/view/dto"
	"taskdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ViewPort interface {
	Groups(ctx context.Context, username string) ([]viewdto.GroupSummary, error)
	Destinations(ctx context.Context, username string) ([]viewdto.DestinationCount, error)
	List(ctx context.Context, username, destination string) (viewdto.ListOutput, error)
	Search(ctx context.Context, username, keyword string, timeDesc, importanceLow bool) (viewdto.ListOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BoardLoadedMsg struct {
	Groups []viewdto.GroupSummary
	Dests  []viewdto.DestinationCount
	Tasks  []taskdto.TaskOutput
	Title  string
	Err    error
}

// ─── destinations ────────────────────────────────────────────────────────────

type destination struct {
	id    string
	label string
}

var virtualDests = []destination{
	{id: "today", label: "Today"},
	{id: "week", label: "Next 7 Days"},
	{id: "all", label: "All"},
	{id: "completed", label: "Completed"},
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task taskdto.TaskOutput
}

func (i taskItem) Title() string {
	mark := "[ ] "
	if i.task.Status == "done" {
		mark = "[x] "
	}
	return mark + i.task.Title
}

func (i taskItem) Description() string {
	desc := i.task.Kind + "  " + i.task.Importance
	if i.task.DueAt != nil {
		desc += "  due " + i.task.DueAt.Format("01-02 15:04")
	}
	if i.task.TargetValue > 0 {
		desc += fmt.Sprintf("  %.0f/%.0f %s", i.task.ProgressValue, i.task.TargetValue, i.task.TargetUnit)
	}
	return desc
}

func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     ViewPort
	username string

	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool

	groups     []viewdto.GroupSummary
	destCounts map[string]int
	dests      []destination
	destIdx    int

	width  int
	height int
}

func New(port ViewPort, username string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Mint).BorderForeground(theme.Mint)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sky).BorderForeground(theme.Mint)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Inbox"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Mint)

	return Model{
		port:     port,
		username: username,
		list:     l,
		detail:   vp,
		spinner:  sp,
		loading:  true,
		dests:    []destination{{id: "inbox", label: "Inbox"}},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BoardLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Tasks — " + msg.Err.Error()
			return m, nil
		}
		if msg.Groups != nil {
			m.groups = msg.Groups
			if !m.rebuildDests() {
				// The selected group was deleted; reload as inbox.
				cmds = append(cmds, m.Reload())
			}
		}
		if msg.Dests != nil {
			m.destCounts = make(map[string]int, len(msg.Dests))
			for _, d := range msg.Dests {
				m.destCounts[d.ID] = d.Count
			}
		}
		m.list.Title = msg.Title
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			items[i] = taskItem{task: t}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "]":
				m.destIdx = (m.destIdx + 1) % len(m.dests)
				return m, m.Reload()
			case "[":
				m.destIdx = (m.destIdx + len(m.dests) - 1) % len(m.dests)
				return m, m.Reload()
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}

	sideW := m.width / 5
	if sideW < 16 {
		sideW = 16
	}
	listW := (m.width - sideW) * 55 / 100
	detailW := m.width - sideW - listW

	sidePane := lipgloss.NewStyle().
		Width(sideW).
		Height(m.height).
		Background(theme.Mantle).
		Render(m.renderSidebar(sideW))

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidePane, listPane, detailPane)
}

// SelectedTaskID returns the current selection's task ID, if any.
func (m Model) SelectedTaskID() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

// SelectedTaskTitle returns the current selection's title.
func (m Model) SelectedTaskTitle() string {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.Title
	}
	return ""
}

// CurrentDestination returns the id of the list being shown.
func (m Model) CurrentDestination() string {
	return m.dests[m.destIdx].id
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refetches the sidebar and the current destination's tasks.
func (m Model) Reload() tea.Cmd {
	dest := m.dests[m.destIdx]
	return func() tea.Msg {
		groups, err := m.port.Groups(context.Background(), m.username)
		if err != nil {
			return BoardLoadedMsg{Err: err}
		}
		counts, err := m.port.Destinations(context.Background(), m.username)
		if err != nil {
			return BoardLoadedMsg{Err: err}
		}
		out, err := m.port.List(context.Background(), m.username, dest.id)
		return BoardLoadedMsg{Groups: groups, Dests: counts, Tasks: out.Tasks, Title: dest.label, Err: err}
	}
}

// GoTo switches to a destination by id and reloads. Unknown ids are
// tried as plain group destinations; once the reload reports they do
// not exist the selection settles on inbox.
func (m *Model) GoTo(destID string) tea.Cmd {
	for i, d := range m.dests {
		if d.id == destID {
			m.destIdx = i
			return m.Reload()
		}
	}
	m.dests = append(m.dests, destination{id: destID, label: destID})
	m.destIdx = len(m.dests) - 1
	return m.Reload()
}

// SearchFor replaces the task list with keyword matches.
func (m Model) SearchFor(keyword string, timeDesc, importanceLow bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Search(context.Background(), m.username, keyword, timeDesc, importanceLow)
		return BoardLoadedMsg{Tasks: out.Tasks, Title: "Search: " + keyword, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

// rebuildDests reconciles the destination list with fresh groups. It
// reports whether the previously selected destination still exists;
// when it does not the selection falls back to the inbox group.
func (m *Model) rebuildDests() bool {
	dests := make([]destination, 0, len(m.groups)+len(virtualDests))
	for _, v := range virtualDests {
		dests = append(dests, v)
	}
	for _, g := range m.groups {
		dests = append(dests, destination{id: g.ID, label: g.Name})
	}
	current := m.dests[m.destIdx].id
	m.dests = dests
	m.destIdx = m.indexOf(current)
	return m.dests[m.destIdx].id == current
}

// indexOf locates a destination id, falling back to the inbox group
// when the id no longer exists (its group was deleted).
func (m Model) indexOf(destID string) int {
	inbox := 0
	for i, d := range m.dests {
		if d.id == destID {
			return i
		}
		if d.id == "inbox" {
			inbox = i
		}
	}
	return inbox
}

func (m *Model) resize() {
	sideW := m.width / 5
	if sideW < 16 {
		sideW = 16
	}
	listW := (m.width - sideW) * 55 / 100
	detailW := m.width - sideW - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderSidebar(width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Lists") + "\n\n")
	current := m.dests[m.destIdx].id
	for _, v := range virtualDests {
		count := -1
		if c, ok := m.destCounts[v.id]; ok {
			count = c
		}
		sb.WriteString(m.sidebarLine(v.label, "", 0, v.id == current, count) + "\n")
	}
	sb.WriteString("\n" + theme.Title.Render("Groups") + "\n\n")
	for _, g := range m.groups {
		label := g.Name
		if g.Pinned {
			label = "★ " + label
		}
		sb.WriteString(m.sidebarLine(label, g.Color, g.Depth-1, g.ID == current, g.Count) + "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (m Model) sidebarLine(label, color string, indent int, active bool, count int) string {
	line := strings.Repeat("  ", indent)
	if color != "" {
		line += lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("● ")
	}
	line += label
	if count >= 0 {
		line += theme.Muted.Render(fmt.Sprintf(" %d", count))
	}
	if active {
		return theme.Hot.Render("▸ ") + line
	}
	return "  " + line
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return theme.Muted.Render("Select a task to see details")
	}
	t := item.task
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Title) + "\n\n")
	if t.Description != "" {
		sb.WriteString(t.Description + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("id:       ") + t.ID + "\n")
	sb.WriteString(theme.Muted.Render("group:    ") + t.GroupID + "\n")
	sb.WriteString(theme.Muted.Render("type:     ") + t.Kind + "\n")
	sb.WriteString(theme.Muted.Render("priority: ") + t.Importance + "\n")
	sb.WriteString(theme.Muted.Render("status:   ") + t.Status + "\n")
	if t.DueAt != nil {
		sb.WriteString(theme.Muted.Render("due:      ") + t.DueAt.Format("2006-01-02 15:04") + "\n")
	}
	if t.TargetValue > 0 {
		sb.WriteString(fmt.Sprintf("%s%.1f / %.1f %s\n",
			theme.Muted.Render("progress: "), t.ProgressValue, t.TargetValue, t.TargetUnit))
	}
	if t.TotalFocusMinutes > 0 {
		sb.WriteString(fmt.Sprintf("%s%d min\n", theme.Muted.Render("focus:    "), t.TotalFocusMinutes))
	}
	if len(t.CancelReasons) > 0 {
		sb.WriteString(theme.Muted.Render("breaks:   ") + strings.Join(t.CancelReasons, ", ") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: toggle  o: open timer  [ / ]: switch list"))
	return sb.String()
}
