package bootstrap

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	accountinadapter "taskdeck/internal/modules/account/adapter/in"
	accountoutadapter "taskdeck/internal/modules/account/adapter/out"
	accountservice "taskdeck/internal/modules/account/service"
	accountusecase "taskdeck/internal/modules/account/usecase"
	groupinadapter "taskdeck/internal/modules/group/adapter/in"
	groupservice "taskdeck/internal/modules/group/service"
	groupusecase "taskdeck/internal/modules/group/usecase"
	taskinadapter "taskdeck/internal/modules/task/adapter/in"
	taskoutadapter "taskdeck/internal/modules/task/adapter/out"
	taskservice "taskdeck/internal/modules/task/service"
	taskusecase "taskdeck/internal/modules/task/usecase"
	timerinadapter "taskdeck/internal/modules/timer/adapter/in"
	timeroutadapter "taskdeck/internal/modules/timer/adapter/out"
	timerusecase "taskdeck/internal/modules/timer/usecase"
	viewinadapter "taskdeck/internal/modules/view/adapter/in"
	viewservice "taskdeck/internal/modules/view/service"
	viewusecase "taskdeck/internal/modules/view/usecase"
	workspaceoutadapter "taskdeck/internal/modules/workspace/adapter/out"
	"taskdeck/internal/platform/clock"
	"taskdeck/internal/platform/config"
	"taskdeck/internal/platform/id"
	uiapp "taskdeck/internal/ui/app"
)

type App struct {
	GroupCLI   groupinadapter.CLIHandler
	TaskCLI    taskinadapter.CLIHandler
	TimerCLI   timerinadapter.CLIHandler
	ViewCLI    viewinadapter.CLIHandler
	AccountCLI accountinadapter.CLIHandler

	ReminderInterval time.Duration
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	snapshots := workspaceoutadapter.NewJSONSnapshotStore(cfg.DataDir)

	projector, err := taskoutadapter.NewSQLiteTaskProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new task projector: %w", err)
	}
	reminded := taskoutadapter.NewFileRemindedStore(cfg.DataDir)
	taskUC := taskusecase.NewInteractor(
		taskservice.NewTaskService(clk, ids),
		snapshots,
		projector,
		reminded,
		nil,
		clk,
		cfg.TrashRetention(),
	)

	timerUC := timerusecase.NewInteractor(
		timeroutadapter.NewFileActiveTimerStore(cfg.DataDir),
		taskUC,
		clk,
		cfg.DefaultFocusMinutes,
	)
	taskUC.BindTimers(timerUC)

	groupUC := groupusecase.NewInteractor(groupservice.NewGroupService(clk, ids), snapshots)
	viewUC := viewusecase.NewInteractor(viewservice.NewViewService(), snapshots, clk)
	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(), accountoutadapter.NewFileAccountStore(cfg.DataDir), ids)

	return &App{
		GroupCLI:         groupinadapter.NewCLIHandler(groupUC),
		TaskCLI:          taskinadapter.NewCLIHandler(taskUC),
		TimerCLI:         timerinadapter.NewCLIHandler(timerUC),
		ViewCLI:          viewinadapter.NewCLIHandler(viewUC),
		AccountCLI:       accountinadapter.NewCLIHandler(accountUC),
		ReminderInterval: cfg.ReminderInterval,
	}, nil
}

func RunTUI(username string, app *App) error {
	model := uiapp.NewModel(username, app.ViewCLI, app.GroupCLI, app.TaskCLI, app.TimerCLI, app.ReminderInterval)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
