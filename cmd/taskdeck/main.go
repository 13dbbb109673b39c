package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/bootstrap"
	accountdto "taskdeck/internal/modules/account/dto"
	taskdto "taskdeck/internal/modules/task/dto"
	timerdto "taskdeck/internal/modules/timer/dto"
	"taskdeck/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	dataDir := defaultDataDir()

	root := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Personal task, habit and focus tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", dataDir, "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newAuthCmd(&dataDir))
	root.AddCommand(newGroupCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newListCmd(&dataDir))
	root.AddCommand(newSearchCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newTrashCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newProfileCmd(&dataDir))
	root.AddCommand(newRemindCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// requireUser resolves the logged-in account for commands that act on
// per-user data.
func requireUser(app *bootstrap.App) (string, error) {
	username, err := app.AccountCLI.Current(context.Background())
	if err != nil {
		return "", fmt.Errorf("not logged in, run `taskdeck auth login` first")
	}
	return username, nil
}

func parseDue(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if at, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &at, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", value)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the taskdeck terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			if _, err := app.TaskCLI.PurgeTrash(context.Background(), username); err != nil {
				return err
			}
			return bootstrap.RunTUI(username, app)
		},
	}
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account commands"}

	var password, confirm string
	registerCmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if confirm == "" {
				confirm = password
			}
			if err := app.AccountCLI.Register(context.Background(), args[0], password, confirm); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered and logged in as %s\n", args[0])
			return nil
		},
	}
	registerCmd.Flags().StringVar(&password, "password", "", "password")
	registerCmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (defaults to --password)")

	var loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.Login(context.Background(), args[0], loginPassword); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", args[0])
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")

	auth.AddCommand(registerCmd, loginCmd)

	auth.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return app.AccountCLI.Logout(context.Background())
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), username)
			return nil
		},
	})

	auth.AddCommand(&cobra.Command{
		Use:   "delete-account <username>",
		Short: "Delete an account and all its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.DeleteAccount(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	return auth
}

func newGroupCmd(dataDir *string) *cobra.Command {
	group := &cobra.Command{Use: "group", Short: "Group tree commands"}

	group.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List groups with open-task counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			dests, err := app.ViewCLI.Destinations(context.Background(), username)
			if err != nil {
				return err
			}
			for _, d := range dests {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) [%d]\n", d.Name, d.ID, d.Count)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			groups, err := app.ViewCLI.Groups(context.Background(), username)
			if err != nil {
				return err
			}
			for _, g := range groups {
				indent := strings.Repeat("  ", g.Depth-1)
				pin := ""
				if g.Pinned {
					pin = " *"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s (%s) [%d]%s\n", indent, g.Name, g.ID, g.Count, pin)
			}
			return nil
		},
	})

	var color, parentID string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.GroupCLI.Create(context.Background(), username, args[0], color, parentID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&color, "color", "#7cc4a3", "group color")
	addCmd.Flags().StringVar(&parentID, "parent", "", "parent group id")

	var renameColor string
	renameCmd := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename or recolor a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.GroupCLI.Rename(context.Background(), username, args[0], args[1], renameColor)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed %s\n", out.ID)
			return nil
		},
	}
	renameCmd.Flags().StringVar(&renameColor, "color", "", "new color (optional)")

	pinCmd := &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin a group to the top of the sidebar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(*dataDir, args[0], true)
		},
	}
	unpinCmd := &cobra.Command{
		Use:   "unpin <id>",
		Short: "Unpin a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setPinned(*dataDir, args[0], false)
		},
	}

	var below bool
	dropCmd := &cobra.Command{
		Use:   "drop <dragged-id> <target-id>",
		Short: "Move a group relative to another",
		Long:  "Dropping above the target reorders; dropping below nests into a top-level target or merges two nested groups under a new one.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			return app.GroupCLI.Drop(context.Background(), username, args[0], args[1], below)
		},
	}
	dropCmd.Flags().BoolVar(&below, "below", false, "drop below the target instead of above")

	promoteCmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Move a nested group to the top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			return app.GroupCLI.Promote(context.Background(), username, args[0])
		},
	}

	var policy string
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.GroupCLI.Delete(context.Background(), username, args[0], policy)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d group(s), moved %d task(s), trashed %d task(s)\n",
				len(out.RemovedGroupIDs), out.MovedTasks, out.TrashedTasks)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&policy, "policy", "move", "move: tasks go to inbox; delete: subtree and tasks go to trash")

	group.AddCommand(addCmd, renameCmd, pinCmd, unpinCmd, dropCmd, promoteCmd, deleteCmd)
	return group
}

func setPinned(dataDir, groupID string, pinned bool) error {
	app, err := loadApp(dataDir)
	if err != nil {
		return err
	}
	username, err := requireUser(app)
	if err != nil {
		return err
	}
	_, err = app.GroupCLI.Pin(context.Background(), username, groupID, pinned)
	return err
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task commands"}

	var (
		description, groupID, importance, kind, dueStr string
		timerMode, repeat, targetUnit                  string
		durationMinutes, remindHour                    int
		targetValue                                    float64
		remind                                         bool
	)
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			dueAt, err := parseDue(dueStr)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.Create(context.Background(), taskdto.CreateInput{
				Username:        username,
				Title:           args[0],
				Description:     description,
				GroupID:         groupID,
				Importance:      importance,
				Kind:            kind,
				DueAt:           dueAt,
				TimerMode:       timerMode,
				DurationMinutes: durationMinutes,
				Repeat:          repeat,
				TargetValue:     targetValue,
				TargetUnit:      targetUnit,
				Remind:          remind,
				RemindHour:      remindHour,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Title, out.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&description, "desc", "", "description")
	addCmd.Flags().StringVar(&groupID, "group", "inbox", "group id")
	addCmd.Flags().StringVar(&importance, "importance", "normal", "critical|high|normal")
	addCmd.Flags().StringVar(&kind, "type", "task", "task|focus|habit|goal")
	addCmd.Flags().StringVar(&dueStr, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&timerMode, "timer-mode", "", "countdown|countup (focus tasks)")
	addCmd.Flags().IntVar(&durationMinutes, "duration", 0, "focus minutes")
	addCmd.Flags().StringVar(&repeat, "repeat", "", "daily|weekly|monthly (habits)")
	addCmd.Flags().Float64Var(&targetValue, "target", 0, "goal target value")
	addCmd.Flags().StringVar(&targetUnit, "unit", "", "goal target unit")
	addCmd.Flags().BoolVar(&remind, "remind", false, "hourly reminder for habits and goals")
	addCmd.Flags().IntVar(&remindHour, "remind-hour", 9, "hour of day for the reminder")

	var (
		editTitle, editDesc, editGroup, editImportance, editKind, editDue string
		clearDue                                                          bool
	)
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task's form fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			dueAt, err := parseDue(editDue)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.Edit(context.Background(), taskdto.EditInput{
				Username:    username,
				TaskID:      args[0],
				Title:       editTitle,
				Description: editDesc,
				GroupID:     editGroup,
				Importance:  editImportance,
				Kind:        editKind,
				DueAt:       dueAt,
				ClearDueAt:  clearDue,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.ID)
			return nil
		},
	}
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "new description")
	editCmd.Flags().StringVar(&editGroup, "group", "", "new group id")
	editCmd.Flags().StringVar(&editImportance, "importance", "", "critical|high|normal")
	editCmd.Flags().StringVar(&editKind, "type", "", "task|focus|habit|goal")
	editCmd.Flags().StringVar(&editDue, "due", "", "new due date")
	editCmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")

	task.AddCommand(addCmd, editCmd)

	task.AddCommand(&cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a task (goals gain one progress step)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.Toggle(context.Background(), username, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Title, out.Status)
			return nil
		},
	})

	var progressNote string
	progressCmd := &cobra.Command{
		Use:   "progress <id> <delta>",
		Short: "Add progress to a habit or goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			var delta float64
			if _, err := fmt.Sscanf(args[1], "%f", &delta); err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}
			out, err := app.TaskCLI.AddProgress(context.Background(), username, args[0], delta, progressNote)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.1f", out.Title, out.ProgressValue)
			if out.TargetValue > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "/%.1f %s", out.TargetValue, out.TargetUnit)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	progressCmd.Flags().StringVar(&progressNote, "note", "", "history note")
	task.AddCommand(progressCmd)

	task.AddCommand(&cobra.Command{
		Use:   "reset <id>",
		Short: "Reset a habit or goal's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			_, err = app.TaskCLI.ResetProgress(context.Background(), username, args[0])
			return err
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "move <id> <group-id>",
		Short: "Move a task to another group",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			_, err = app.TaskCLI.Move(context.Background(), username, args[0], args[1])
			return err
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Move a task to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			return app.TaskCLI.Delete(context.Background(), username, args[0])
		},
	})

	return task
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Focus timer commands"}

	timer.AddCommand(&cobra.Command{
		Use:   "open <task-id>",
		Short: "Configure a timer for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Open(context.Background(), username, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer ready: %s %s\n", out.Mode, formatSeconds(out.TargetSeconds))
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Start(context.Background(), username)
			if err != nil {
				return err
			}
			printTimerStatus(cmd, out)
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Pause(context.Background(), username)
			if err != nil {
				return err
			}
			printTimerStatus(cmd, out)
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the timer, auto-completing a finished countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			status, commit, err := app.TimerCLI.Poll(context.Background(), username)
			if err != nil {
				return err
			}
			if commit != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "countdown finished, committed %d min to %s\n", commit.CommittedMinutes, commit.TaskID)
				return nil
			}
			printTimerStatus(cmd, status)
			return nil
		},
	})

	timer.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Finish the session now and mark the task done",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Complete(context.Background(), username)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "committed %d min to %s\n", out.CommittedMinutes, out.TaskID)
			return nil
		},
	})

	var reason string
	cancelCmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the session",
		Long:  "With --reason the elapsed minutes are committed and the reason recorded; without it the session is discarded.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			commit, err := app.TimerCLI.Cancel(context.Background(), username, reason)
			if err != nil {
				return err
			}
			if commit == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "committed %d min to %s\n", commit.CommittedMinutes, commit.TaskID)
			return nil
		},
	}
	cancelCmd.Flags().StringVar(&reason, "reason", "", "interruption reason")
	timer.AddCommand(cancelCmd)

	timer.AddCommand(&cobra.Command{
		Use:   "dismiss",
		Short: "Close the timer without committing anything",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			return app.TimerCLI.Dismiss(context.Background(), username)
		},
	})

	return timer
}

func printTimerStatus(cmd *cobra.Command, s timerdto.StatusOutput) {
	state := "paused"
	if s.Running {
		state = "running"
	}
	w := cmd.OutOrStdout()
	if s.Mode == "countdown" {
		_, _ = fmt.Fprintf(w, "%s [%s] %s remaining of %s\n", s.TaskTitle, state, formatSeconds(s.RemainingSeconds), formatSeconds(s.TargetSeconds))
		return
	}
	_, _ = fmt.Fprintf(w, "%s [%s] %s elapsed\n", s.TaskTitle, state, formatSeconds(s.ElapsedSeconds))
}

func fileToDataURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(raw)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image", path)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func newListCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list [destination]",
		Short: "List tasks for a group or virtual destination (today|week|all|completed|<group-id>)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			dest := "inbox"
			if len(args) == 1 {
				dest = args[0]
			}
			out, err := app.ViewCLI.List(context.Background(), username, dest)
			if err != nil {
				return err
			}
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range out.Tasks {
				printTaskLine(cmd, t)
			}
			return nil
		},
	}
}

func printTaskLine(cmd *cobra.Command, t taskdto.TaskOutput) {
	mark := "[ ]"
	if t.Status == "done" {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s (%s) %s/%s", mark, t.Title, t.ID, t.Kind, t.Importance)
	if t.DueAt != nil {
		line += " due " + t.DueAt.Format("2006-01-02 15:04")
	}
	if t.TargetValue > 0 {
		line += fmt.Sprintf(" %.1f/%.1f %s", t.ProgressValue, t.TargetValue, t.TargetUnit)
	}
	if t.TotalFocusMinutes > 0 {
		line += fmt.Sprintf(" focus %dmin", t.TotalFocusMinutes)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
}

func newSearchCmd(dataDir *string) *cobra.Command {
	var timeDesc, importanceLow bool
	search := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search tasks by title, ranked by importance and due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.ViewCLI.Search(context.Background(), username, args[0], timeDesc, importanceLow)
			if err != nil {
				return err
			}
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, t := range out.Tasks {
				printTaskLine(cmd, t)
			}
			return nil
		},
	}
	search.Flags().BoolVar(&timeDesc, "time-desc", false, "reverse the due-date ordering")
	search.Flags().BoolVar(&importanceLow, "importance-low", false, "rank low-priority tasks first")
	return search
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var sinceStr string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show focus statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			var since time.Time
			if sinceStr != "" {
				since, err = time.ParseInLocation("2006-01-02", sinceStr, time.Local)
				if err != nil {
					return fmt.Errorf("invalid since date %q", sinceStr)
				}
			}
			out, err := app.ViewCLI.Stats(context.Background(), username, since)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "focus total: %d min (%d min since period start)\n", out.FocusTotalMinutes, out.FocusSinceMinutes)
			if len(out.CancelReasons) > 0 {
				_, _ = fmt.Fprintln(w, "interruptions:")
				for _, r := range out.CancelReasons {
					_, _ = fmt.Fprintf(w, "  %s: %d (%.0f%%)\n", r.Reason, r.Count, r.Percent)
				}
			}
			_, _ = fmt.Fprintln(w, "completion by group:")
			for _, g := range out.GroupCompletion {
				if g.Total == 0 {
					continue
				}
				_, _ = fmt.Fprintf(w, "  %s: %d/%d\n", g.Name, g.Done, g.Total)
			}
			return nil
		},
	}
	stats.Flags().StringVar(&sinceStr, "since", "", "period start (YYYY-MM-DD, defaults to start of month)")
	return stats
}

func newTrashCmd(dataDir *string) *cobra.Command {
	trash := &cobra.Command{Use: "trash", Short: "Trash commands"}

	trash.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trashed tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			items, err := app.TaskCLI.ListTrash(context.Background(), username)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "trash is empty")
				return nil
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) deleted %s\n", item.Title, item.TrashUniqueID, item.DeletedAt.Format("2006-01-02"))
			}
			return nil
		},
	})

	trash.AddCommand(&cobra.Command{
		Use:   "restore <trash-id>",
		Short: "Restore a trashed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.TaskCLI.Restore(context.Background(), username, args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %s into %s\n", out.Title, out.GroupID)
			return nil
		},
	})

	trash.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Drop trash items past the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			purged, err := app.TaskCLI.PurgeTrash(context.Background(), username)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "purged %d item(s)\n", purged)
			return nil
		},
	})

	return trash
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Per-account settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.Settings(context.Background(), username)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", out.Theme)
			return nil
		},
	})

	var theme, homepageBg, todoBg string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			input := accountdto.SettingsInput{Username: username, Theme: theme}
			if homepageBg != "" {
				if input.HomepageBg, err = fileToDataURL(homepageBg); err != nil {
					return err
				}
			}
			if todoBg != "" {
				if input.TodoBg, err = fileToDataURL(todoBg); err != nil {
					return err
				}
			}
			_, err = app.AccountCLI.UpdateSettings(context.Background(), input)
			return err
		},
	}
	setCmd.Flags().StringVar(&theme, "theme", "", "theme name")
	setCmd.Flags().StringVar(&homepageBg, "homepage-bg", "", "homepage background image file")
	setCmd.Flags().StringVar(&todoBg, "todo-bg", "", "todo background image file")
	settings.AddCommand(setCmd)

	return settings
}

func newProfileCmd(dataDir *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Profile commands"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.Profile(context.Background(), username)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "nickname: %s\nsignature: %s\n", out.Nickname, out.Signature)
			if len(out.Photos) > 0 {
				_, _ = fmt.Fprintf(w, "photos: %d\n", len(out.Photos))
			}
			return nil
		},
	})

	var nickname, signature string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update the profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			_, err = app.AccountCLI.UpdateProfile(context.Background(), accountdto.ProfileInput{
				Username:  username,
				Nickname:  nickname,
				Signature: signature,
			})
			return err
		},
	}
	setCmd.Flags().StringVar(&nickname, "nickname", "", "nickname")
	setCmd.Flags().StringVar(&signature, "signature", "", "signature")
	profile.AddCommand(setCmd)

	var photoDesc string
	photoCmd := &cobra.Command{
		Use:   "photo-add <file>",
		Short: "Attach an image to the profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			dataURL, err := fileToDataURL(args[0])
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.AddPhoto(context.Background(), username, dataURL, photoDesc)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added photo %s\n", out.ID)
			return nil
		},
	}
	photoCmd.Flags().StringVar(&photoDesc, "desc", "", "photo caption")
	profile.AddCommand(photoCmd)

	profile.AddCommand(&cobra.Command{
		Use:   "photo-remove <photo-id>",
		Short: "Remove a profile photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			return app.AccountCLI.RemovePhoto(context.Background(), username, args[0])
		},
	})

	return profile
}

func newRemindCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Show habits and goals due this hour, once per day each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			due, err := app.TaskCLI.CheckReminders(context.Background(), username)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing due")
				return nil
			}
			for _, t := range due {
				printTaskLine(cmd, t)
			}
			return nil
		},
	}
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the task read model from the workspace snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			username, err := requireUser(app)
			if err != nil {
				return err
			}
			count, err := app.TaskCLI.Reindex(context.Background(), username)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d task(s)\n", count)
			return nil
		},
	}
}
