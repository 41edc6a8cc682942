package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/internal/taskr"
	"github.com/colonyops/taskr/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *taskr.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive task list",
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	n := cmd.app.Config.Notifications
	m := tui.New(cmd.app.Tasks, cmd.app.Bus, tui.Options{
		Context:        ctx,
		EmitterOptions: []notify.EmitterOption{notify.WithTimings(n.FadeAfter, n.ClearAfter)},
	})

	// Load after the model subscribes so the load result shows as a toast.
	if err := cmd.app.Load(ctx); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return checkSaved(cmd.app)
}
