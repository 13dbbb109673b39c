package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	groupdto "taskdeck/internal/modules/group/dto"
	taskdto "taskdeck/internal/modules/task/dto"
	timerdto "taskdeck/internal/modules/timer/dto"
	viewdto "taskdeck/internal/modules/view/dto"
	apperrors "taskdeck/internal/platform/errors"
	"taskdeck/internal/ui/components"
	"taskdeck/internal/ui/theme"
	statsview "taskdeck/internal/ui/views/stats"
	tasksview "taskdeck/internal/ui/views/tasks"
	timerview "taskdeck/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type viewPort interface {
	Groups(ctx context.Context, username string) ([]viewdto.GroupSummary, error)
	Destinations(ctx context.Context, username string) ([]viewdto.DestinationCount, error)
	List(ctx context.Context, username, destination string) (viewdto.ListOutput, error)
	Search(ctx context.Context, username, keyword string, timeDesc, importanceLow bool) (viewdto.ListOutput, error)
	Stats(ctx context.Context, username string, since time.Time) (viewdto.StatsOutput, error)
}

type groupPort interface {
	Create(ctx context.Context, username, name, color, parentID string) (groupdto.GroupOutput, error)
	Delete(ctx context.Context, username, groupID, policy string) (groupdto.DeleteOutput, error)
}

type taskPort interface {
	Create(ctx context.Context, input taskdto.CreateInput) (taskdto.TaskOutput, error)
	Toggle(ctx context.Context, username, taskID string) (taskdto.TaskOutput, error)
	AddProgress(ctx context.Context, username, taskID string, delta float64, note string) (taskdto.TaskOutput, error)
	Move(ctx context.Context, username, taskID, groupID string) (taskdto.TaskOutput, error)
	Delete(ctx context.Context, username, taskID string) error
	Restore(ctx context.Context, username, trashUniqueID string) (taskdto.TaskOutput, error)
	CheckReminders(ctx context.Context, username string) ([]taskdto.TaskOutput, error)
}

type timerPort interface {
	Open(ctx context.Context, username, taskID string) (timerdto.StatusOutput, error)
	Start(ctx context.Context, username string) (timerdto.StatusOutput, error)
	Pause(ctx context.Context, username string) (timerdto.StatusOutput, error)
	Poll(ctx context.Context, username string) (timerdto.StatusOutput, *timerdto.CommitOutput, error)
	Complete(ctx context.Context, username string) (timerdto.CommitOutput, error)
	Cancel(ctx context.Context, username, reason string) (*timerdto.CommitOutput, error)
	Dismiss(ctx context.Context, username string) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTasks tabID = iota
	tabTimer
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Tasks", "Timer", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type timerTickMsg time.Time

type reminderTickMsg time.Time

type remindersDueMsg struct {
	tasks []taskdto.TaskOutput
	err   error
}

type timerPolledMsg struct {
	status timerdto.StatusOutput
	commit *timerdto.CommitOutput
	err    error
}

type timerOpenedMsg struct {
	status timerdto.StatusOutput
	err    error
}

type timerClosedMsg struct {
	commit *timerdto.CommitOutput
	note   string
	err    error
}

type mutationDoneMsg struct {
	note string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Open    key.Binding
	Lists   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle task")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open timer")),
		Lists:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "switch list")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Lists},
		{k.Toggle, k.Open},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, timer polling,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	username string

	group groupPort
	task  taskPort
	timer timerPort

	tasksView tasksview.Model
	timerView timerview.Model
	statsView statsview.Model

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	polling       bool
	reminderEvery time.Duration
	status        string
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(username string, view viewPort, group groupPort, task taskPort, timer timerPort, reminderEvery time.Duration) Model {
	if reminderEvery <= 0 {
		reminderEvery = time.Minute
	}
	return Model{
		username:      username,
		group:         group,
		task:          task,
		timer:         timer,
		tasksView:     tasksview.New(view, username),
		timerView:     timerview.New(),
		statsView:     statsview.New(view, username),
		activeTab:     tabTasks,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		reminderEvery: reminderEvery,
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tasksView.Init(),
		m.statsView.Init(),
		m.pollTimerCmd(),
		m.checkRemindersCmd(),
		m.reminderTickCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case timerTickMsg:
		return m, m.pollTimerCmd()

	case reminderTickMsg:
		return m, tea.Batch(m.checkRemindersCmd(), m.reminderTickCmd())

	case remindersDueMsg:
		if msg.err != nil || len(msg.tasks) == 0 {
			return m, nil
		}
		titles := make([]string, len(msg.tasks))
		for i, t := range msg.tasks {
			titles[i] = t.Title
		}
		m.status = "⏰ " + strings.Join(titles, ", ")
		return m, nil

	case timerPolledMsg:
		if msg.err != nil {
			if msg.err != apperrors.ErrNoActiveTimer {
				m.status = "timer: " + msg.err.Error()
			}
			m.polling = false
			m.timerView.Clear()
			return m, nil
		}
		if msg.commit != nil {
			m.polling = false
			m.timerView.SetCommit(*msg.commit)
			m.status = fmt.Sprintf("countdown finished, +%d min", msg.commit.CommittedMinutes)
			return m, m.tasksView.Reload()
		}
		m.timerView.SetStatus(msg.status)
		if msg.status.Running {
			m.polling = true
			return m, tickCmd()
		}
		m.polling = false

	case timerOpenedMsg:
		if msg.err != nil {
			m.status = "timer open failed: " + msg.err.Error()
			return m, nil
		}
		m.timerView.SetStatus(msg.status)
		m.activeTab = tabTimer
		m.status = "timer ready: " + msg.status.TaskTitle

	case timerClosedMsg:
		if msg.err != nil {
			m.status = "timer: " + msg.err.Error()
			return m, nil
		}
		m.polling = false
		if msg.commit != nil {
			m.timerView.SetCommit(*msg.commit)
			m.status = fmt.Sprintf("%s, +%d min", msg.note, msg.commit.CommittedMinutes)
		} else {
			m.timerView.Clear()
			m.status = msg.note
		}
		return m, m.tasksView.Reload()

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.note + " failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.note
		cmds = append(cmds, m.tasksView.Reload())
		if m.activeTab == tabStats {
			cmds = append(cmds, m.statsView.Reload())
		}
		return m, tea.Batch(cmds...)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the task list while its search filter is active.
		if m.activeTab == tabTasks && m.tasksView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case " ":
			if m.activeTab == tabTasks {
				if id, ok := m.tasksView.SelectedTaskID(); ok {
					return m, m.toggleTaskCmd(id)
				}
			}
		case "o":
			if m.activeTab == tabTasks {
				if id, ok := m.tasksView.SelectedTaskID(); ok {
					return m, m.openTimerCmd(id)
				}
			}
		case "s":
			if m.activeTab == tabTimer && m.timerView.HasTimer() {
				return m, m.startPauseCmd()
			}
		case "c":
			if m.activeTab == tabTimer && m.timerView.HasTimer() {
				return m, m.completeTimerCmd()
			}
		case "x":
			if m.activeTab == tabTimer && m.timerView.HasTimer() {
				return m, m.cancelTimerCmd("")
			}
		case "d":
			if m.activeTab == tabTimer {
				return m, m.dismissTimerCmd()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTasks:
		m.tasksView, tabCmd = m.tasksView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTasks:
		return m.tasksView.View()
	case tabTimer:
		return m.timerView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "taskdeck  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.polling {
		left = theme.Hot.Render("● focus") + "  " + left
	}
	right := theme.Muted.Render(m.username + "  ?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected, _ := m.tasksView.SelectedTaskID()

	switch parts[0] {
	case "task:add":
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if title == "" {
			m.status = "usage: task:add <title>"
			return m, nil
		}
		return m, m.addTaskCmd(title)

	case "task:toggle":
		if selected == "" {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.toggleTaskCmd(selected)

	case "task:delete":
		if selected == "" {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.deleteTaskCmd(selected)

	case "task:move":
		if len(parts) < 2 {
			m.status = "usage: task:move <group-id>"
			return m, nil
		}
		if selected == "" {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.moveTaskCmd(selected, parts[1])

	case "task:progress":
		if len(parts) < 2 {
			m.status = "usage: task:progress <delta>"
			return m, nil
		}
		delta, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid delta"
			return m, nil
		}
		if selected == "" {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.addProgressCmd(selected, delta)

	case "group:add":
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if name == "" {
			m.status = "usage: group:add <name>"
			return m, nil
		}
		return m, m.addGroupCmd(name)

	case "group:delete":
		policy := "move"
		if len(parts) >= 2 {
			policy = parts[1]
		}
		return m, m.deleteGroupCmd(m.tasksView.CurrentDestination(), policy)

	case "go":
		if len(parts) < 2 {
			m.status = "usage: go <today|week|all|completed|group-id>"
			return m, nil
		}
		m.activeTab = tabTasks
		return m, m.tasksView.GoTo(parts[1])

	case "search":
		keyword := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if keyword == "" {
			m.status = "usage: search <keyword>"
			return m, nil
		}
		m.activeTab = tabTasks
		return m, m.tasksView.SearchFor(keyword, false, false)

	case "timer:open":
		if selected == "" {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.openTimerCmd(selected)

	case "timer:start", "timer:pause":
		return m, m.startPauseCmd()

	case "timer:complete":
		return m, m.completeTimerCmd()

	case "timer:cancel":
		reason := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.cancelTimerCmd(reason)

	case "timer:dismiss":
		return m, m.dismissTimerCmd()

	case "trash:restore":
		if len(parts) < 2 {
			m.status = "usage: trash:restore <trash-id>"
			return m, nil
		}
		return m, m.restoreTaskCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.tasksView, _ = m.tasksView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m Model) reminderTickCmd() tea.Cmd {
	return tea.Tick(m.reminderEvery, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

func (m Model) checkRemindersCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.task.CheckReminders(context.Background(), m.username)
		return remindersDueMsg{tasks: tasks, err: err}
	}
}

func (m Model) pollTimerCmd() tea.Cmd {
	return func() tea.Msg {
		status, commit, err := m.timer.Poll(context.Background(), m.username)
		return timerPolledMsg{status: status, commit: commit, err: err}
	}
}

func (m Model) openTimerCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.timer.Open(context.Background(), m.username, taskID)
		return timerOpenedMsg{status: status, err: err}
	}
}

func (m Model) startPauseCmd() tea.Cmd {
	return func() tea.Msg {
		status, _, err := m.timer.Poll(context.Background(), m.username)
		if err != nil {
			return timerPolledMsg{err: err}
		}
		if status.Running {
			status, err = m.timer.Pause(context.Background(), m.username)
		} else {
			status, err = m.timer.Start(context.Background(), m.username)
		}
		return timerPolledMsg{status: status, err: err}
	}
}

func (m Model) completeTimerCmd() tea.Cmd {
	return func() tea.Msg {
		commit, err := m.timer.Complete(context.Background(), m.username)
		if err != nil {
			return timerClosedMsg{err: err}
		}
		return timerClosedMsg{commit: &commit, note: "task completed"}
	}
}

func (m Model) cancelTimerCmd(reason string) tea.Cmd {
	return func() tea.Msg {
		commit, err := m.timer.Cancel(context.Background(), m.username, reason)
		if err != nil {
			return timerClosedMsg{err: err}
		}
		note := "session discarded"
		if commit != nil {
			note = "session interrupted"
		}
		return timerClosedMsg{commit: commit, note: note}
	}
}

func (m Model) dismissTimerCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.timer.Dismiss(context.Background(), m.username); err != nil {
			return timerClosedMsg{err: err}
		}
		return timerClosedMsg{note: "timer dismissed"}
	}
}

func (m Model) addTaskCmd(title string) tea.Cmd {
	groupID := m.tasksView.CurrentDestination()
	return func() tea.Msg {
		_, err := m.task.Create(context.Background(), taskdto.CreateInput{
			Username: m.username,
			Title:    title,
			GroupID:  groupID,
		})
		return mutationDoneMsg{note: "task added", err: err}
	}
}

func (m Model) toggleTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.task.Toggle(context.Background(), m.username, taskID)
		note := "toggled"
		if err == nil {
			note = out.Title + " → " + out.Status
		}
		return mutationDoneMsg{note: note, err: err}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		err := m.task.Delete(context.Background(), m.username, taskID)
		return mutationDoneMsg{note: "task moved to trash", err: err}
	}
}

func (m Model) moveTaskCmd(taskID, groupID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.task.Move(context.Background(), m.username, taskID, groupID)
		return mutationDoneMsg{note: "task moved", err: err}
	}
}

func (m Model) addProgressCmd(taskID string, delta float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.task.AddProgress(context.Background(), m.username, taskID, delta, "")
		note := "progress added"
		if err == nil && out.TargetValue > 0 {
			note = fmt.Sprintf("progress %.1f/%.1f", out.ProgressValue, out.TargetValue)
		}
		return mutationDoneMsg{note: note, err: err}
	}
}

func (m Model) restoreTaskCmd(trashID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.task.Restore(context.Background(), m.username, trashID)
		note := "restored"
		if err == nil {
			note = "restored " + out.Title
		}
		return mutationDoneMsg{note: note, err: err}
	}
}

func (m Model) addGroupCmd(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.group.Create(context.Background(), m.username, name, "#7cc4a3", "")
		note := "group added"
		if err == nil {
			note = "group added: " + out.Name
		}
		return mutationDoneMsg{note: note, err: err}
	}
}

func (m Model) deleteGroupCmd(groupID, policy string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.group.Delete(context.Background(), m.username, groupID, policy)
		note := "group deleted"
		if err == nil {
			note = fmt.Sprintf("group deleted (%d moved, %d trashed)", out.MovedTasks, out.TrashedTasks)
		}
		return mutationDoneMsg{note: note, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
